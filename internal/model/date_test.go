package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDate_JSON(t *testing.T) {
	t.Run("marshals as YYYY-MM-DD", func(t *testing.T) {
		b, err := json.Marshal(NewDate(2026, time.September, 10))
		assert.NoError(t, err)
		assert.Equal(t, `"2026-09-10"`, string(b))
	})

	t.Run("zero date marshals as null", func(t *testing.T) {
		b, err := json.Marshal(Date{})
		assert.NoError(t, err)
		assert.Equal(t, "null", string(b))
	})

	t.Run("unmarshals YYYY-MM-DD", func(t *testing.T) {
		var d Date
		assert.NoError(t, json.Unmarshal([]byte(`"2026-09-10"`), &d))
		assert.Equal(t, NewDate(2026, time.September, 10), d)
	})

	t.Run("unmarshals null as zero", func(t *testing.T) {
		var d Date
		assert.NoError(t, json.Unmarshal([]byte("null"), &d))
		assert.True(t, d.IsZero())
	})

	t.Run("rejects other layouts", func(t *testing.T) {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(`"10/09/2026"`), &d))
	})
}

func TestDate_Scan(t *testing.T) {
	want := NewDate(2026, time.September, 10)

	t.Run("time.Time", func(t *testing.T) {
		var d Date
		assert.NoError(t, d.Scan(want.Time))
		assert.Equal(t, want, d)
	})

	t.Run("bytes", func(t *testing.T) {
		var d Date
		assert.NoError(t, d.Scan([]byte("2026-09-10")))
		assert.Equal(t, want, d)
	})

	t.Run("nil", func(t *testing.T) {
		var d Date
		assert.NoError(t, d.Scan(nil))
		assert.True(t, d.IsZero())
	})

	t.Run("unsupported type", func(t *testing.T) {
		var d Date
		assert.Error(t, d.Scan(42))
	})
}

func TestDate_Ordering(t *testing.T) {
	earlier := NewDate(2026, time.September, 10)
	later := NewDate(2026, time.September, 12)

	assert.True(t, later.After(earlier))
	assert.True(t, earlier.Before(later))
	assert.False(t, earlier.After(earlier))
	assert.False(t, earlier.Before(earlier))
}

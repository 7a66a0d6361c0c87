package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"

	"carrental/internal/model"
)

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	service := NewJWTService("test-secret")

	token, err := service.GenerateAccessToken("rider1", model.RoleUser)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "rider1", claims.Username)
	assert.Equal(t, model.RoleUser, claims.Role)
	assert.Equal(t, "rider1", claims.Subject)
	assert.Empty(t, claims.ID)
	assert.Equal(t, Principal{Username: "rider1", Role: model.RoleUser}, claims.Principal())
}

func TestJWTService_RefreshTokenCarriesID(t *testing.T) {
	service := NewJWTService("test-secret")

	tokenID, token, err := service.GenerateRefreshToken("boss", model.RoleAdmin)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, tokenID, claims.ID)
	assert.Equal(t, model.RoleAdmin, claims.Role)

	extracted, err := service.ExtractTokenID(token)
	assert.NoError(t, err)
	assert.Equal(t, tokenID, extracted)
}

func TestJWTService_ValidateToken_Errors(t *testing.T) {
	service := NewJWTService("test-secret")

	t.Run("garbage token", func(t *testing.T) {
		_, err := service.ValidateToken("not-a-token")
		assert.Equal(t, ErrTokenInvalid, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService("other-secret")
		token, err := other.GenerateAccessToken("rider1", model.RoleUser)
		assert.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.Equal(t, ErrTokenInvalid, err)
	})

	t.Run("expired token", func(t *testing.T) {
		now := time.Now()
		claims := &Claims{
			Username: "rider1",
			Role:     model.RoleUser,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "rider1",
				ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
				IssuedAt:  jwt.NewNumericDate(now.Add(-time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(service.secret)
		assert.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.Equal(t, ErrTokenExpired, err)
	})

	t.Run("wrong signing method", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Username: "rider1"}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		assert.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.Equal(t, ErrTokenInvalid, err)
	})
}

func TestJWTService_Validate(t *testing.T) {
	service := NewJWTService("test-secret")
	token, err := service.GenerateAccessToken("rider1", model.RoleUser)
	assert.NoError(t, err)

	assert.True(t, service.Validate(token, Principal{Username: "rider1", Role: model.RoleUser}))
	assert.False(t, service.Validate(token, Principal{Username: "rider2", Role: model.RoleUser}))
	assert.False(t, service.Validate("not-a-token", Principal{Username: "rider1"}))
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "carrental/internal/errors"
	"carrental/internal/model"
)

func TestUserService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Username: "rider1"}, nil)

		service := NewUserService(mockUsers, new(MockAdminRepository), nil, testLogger())
		user, err := service.Get(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, "rider1", user.Username)
	})

	t.Run("not found", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)

		service := NewUserService(mockUsers, new(MockAdminRepository), nil, testLogger())
		_, err := service.Get(context.Background(), 1)

		assert.Equal(t, apperrors.ErrUserNotFound, err)
	})
}

func TestUserService_Update(t *testing.T) {
	oldHash, _ := bcrypt.GenerateFromPassword([]byte("old-password"), 10)

	t.Run("empty password keeps the stored hash", func(t *testing.T) {
		stored := &model.User{ID: 1, Username: "rider1", Password: string(oldHash)}

		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByID", mock.Anything, uint(1)).Return(stored, nil)
		mockUsers.On("Save", mock.Anything, stored).Return(nil)

		service := NewUserService(mockUsers, new(MockAdminRepository), nil, testLogger())
		user, err := service.Update(context.Background(), UpdateUserParams{ID: 1, Name: "New Name"})

		assert.NoError(t, err)
		assert.Equal(t, "New Name", user.Name)
		assert.Equal(t, string(oldHash), user.Password)
	})

	t.Run("new password is re-hashed", func(t *testing.T) {
		stored := &model.User{ID: 1, Username: "rider1", Password: string(oldHash)}

		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByID", mock.Anything, uint(1)).Return(stored, nil)
		mockUsers.On("Save", mock.Anything, stored).Return(nil)

		service := NewUserService(mockUsers, new(MockAdminRepository), nil, testLogger())
		user, err := service.Update(context.Background(), UpdateUserParams{ID: 1, Password: "new-password"})

		assert.NoError(t, err)
		assert.NotEqual(t, string(oldHash), user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("new-password")))
	})

	t.Run("username change collides with an admin", func(t *testing.T) {
		stored := &model.User{ID: 1, Username: "rider1"}

		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByID", mock.Anything, uint(1)).Return(stored, nil)
		mockUsers.On("FindByUsername", mock.Anything, "boss").Return(nil, gorm.ErrRecordNotFound)
		mockAdmins := new(MockAdminRepository)
		mockAdmins.On("FindByUsername", mock.Anything, "boss").Return(&model.Admin{Username: "boss"}, nil)

		service := NewUserService(mockUsers, mockAdmins, nil, testLogger())
		_, err := service.Update(context.Background(), UpdateUserParams{ID: 1, Username: "boss"})

		assert.Equal(t, ErrUsernameTaken, err)
		mockUsers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unchanged username skips the uniqueness check", func(t *testing.T) {
		stored := &model.User{ID: 1, Username: "rider1"}

		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByID", mock.Anything, uint(1)).Return(stored, nil)
		mockUsers.On("Save", mock.Anything, stored).Return(nil)

		service := NewUserService(mockUsers, new(MockAdminRepository), nil, testLogger())
		_, err := service.Update(context.Background(), UpdateUserParams{ID: 1, Username: "rider1"})

		assert.NoError(t, err)
		mockUsers.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
	})
}

func TestUserService_Delete(t *testing.T) {
	t.Run("deletes an existing user", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1}, nil)
		mockUsers.On("Delete", mock.Anything, uint(1)).Return(nil)

		service := NewUserService(mockUsers, new(MockAdminRepository), nil, testLogger())
		assert.NoError(t, service.Delete(context.Background(), 1))
		mockUsers.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)

		service := NewUserService(mockUsers, new(MockAdminRepository), nil, testLogger())
		err := service.Delete(context.Background(), 1)

		assert.Equal(t, apperrors.ErrUserNotFound, err)
	})
}

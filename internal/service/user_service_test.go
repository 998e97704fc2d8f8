package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"filmoteca/internal/auth"
	apperrors "filmoteca/internal/errors"
	"filmoteca/internal/model"
)

func newTestUserService(repo *MockUserRepository) UserService {
	return NewUserService(repo, auth.NewPasswordHasher())
}

func TestUserService_CreateHashesPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newTestUserService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 1
	}).Return(nil)

	user, err := svc.CreateUser(context.Background(), "juan123", "mypassword123", "")
	assert.NoError(t, err)
	assert.Equal(t, "juan123", user.Name)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEqual(t, "mypassword123", user.Password)
	assert.True(t, auth.NewPasswordHasher().Verify("mypassword123", user.Password))
}

func TestUserService_CreateDuplicateName(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newTestUserService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)

	user, err := svc.CreateUser(context.Background(), "juan123", "mypassword123", model.RoleUser)
	assert.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
	assert.Nil(t, user)
}

func TestUserService_GetNotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newTestUserService(mockRepo)

	mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	user, err := svc.GetUser(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.Nil(t, user)
}

func TestUserService_UpdatePartial(t *testing.T) {
	t.Run("role only", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := newTestUserService(mockRepo)

		role := model.RoleAdmin
		mockRepo.On("Update", mock.Anything, uint(3), map[string]interface{}{"role": model.RoleAdmin}).Return(nil)
		mockRepo.On("FindByID", mock.Anything, uint(3)).Return(&model.User{ID: 3, Name: "juan123", Role: model.RoleAdmin}, nil)

		user, err := svc.UpdateUser(context.Background(), 3, UserUpdate{Role: &role})
		assert.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, user.Role)
		assert.Equal(t, "juan123", user.Name)

		mockRepo.AssertExpectations(t)
	})

	t.Run("password is hashed before the store sees it", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := newTestUserService(mockRepo)

		password := "newpassword"
		mockRepo.On("Update", mock.Anything, uint(3), mock.MatchedBy(func(fields map[string]interface{}) bool {
			digest, ok := fields["password"].(string)
			return len(fields) == 1 && ok && digest != "newpassword" &&
				auth.NewPasswordHasher().Verify("newpassword", digest)
		})).Return(nil)
		mockRepo.On("FindByID", mock.Anything, uint(3)).Return(&model.User{ID: 3, Name: "juan123"}, nil)

		_, err := svc.UpdateUser(context.Background(), 3, UserUpdate{Password: &password})
		assert.NoError(t, err)

		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_UpdateMissingRow(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newTestUserService(mockRepo)

	name := "ghost"
	mockRepo.On("Update", mock.Anything, uint(42), map[string]interface{}{"name": "ghost"}).Return(nil)
	mockRepo.On("FindByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)

	user, err := svc.UpdateUser(context.Background(), 42, UserUpdate{Name: &name})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.Nil(t, user)
}

func TestUserService_DeleteIdempotent(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newTestUserService(mockRepo)

	mockRepo.On("Delete", mock.Anything, uint(3)).Return(true, nil).Once()
	mockRepo.On("Delete", mock.Anything, uint(3)).Return(false, nil).Once()

	deleted, err := svc.DeleteUser(context.Background(), 3)
	assert.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.DeleteUser(context.Background(), 3)
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestUserService_List(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newTestUserService(mockRepo)

	mockRepo.On("List", mock.Anything).Return([]model.User{
		{ID: 1, Name: "Admin", Role: model.RoleAdmin},
		{ID: 2, Name: "User", Role: model.RoleUser},
	}, nil)

	users, err := svc.ListUsers(context.Background())
	assert.NoError(t, err)
	assert.Len(t, users, 2)
}

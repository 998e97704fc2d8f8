package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"filmoteca/internal/auth"
	apperrors "filmoteca/internal/errors"
	"filmoteca/internal/model"
	"filmoteca/internal/repository"
)

// UserUpdate carries the fields of a partial user update. Nil means the field
// was absent from the request and keeps its prior value.
type UserUpdate struct {
	Name     *string
	Password *string
	Role     *model.Role
}

// UserService exposes user CRUD operations.
type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	CreateUser(ctx context.Context, name, password string, role model.Role) (*model.User, error)
	UpdateUser(ctx context.Context, id uint, update UserUpdate) (*model.User, error)
	DeleteUser(ctx context.Context, id uint) (bool, error)
}

type userService struct {
	repo   repository.UserRepository
	hasher *auth.PasswordHasher
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository, hasher *auth.PasswordHasher) UserService {
	return &userService{repo: repo, hasher: hasher}
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) CreateUser(ctx context.Context, name, password string, role model.Role) (*model.User, error) {
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		Name:     name,
		Password: digest,
		Role:     role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser applies the provided fields and re-fetches the row. A nonexistent
// id surfaces as not-found from the re-fetch, not from the update itself.
func (s *userService) UpdateUser(ctx context.Context, id uint, update UserUpdate) (*model.User, error) {
	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Password != nil {
		digest, err := s.hasher.Hash(*update.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		fields["password"] = digest
	}
	if update.Role != nil {
		fields["role"] = *update.Role
	}

	if len(fields) > 0 {
		if err := s.repo.Update(ctx, id, fields); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperrors.ErrUserAlreadyExists
			}
			return nil, err
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) (bool, error) {
	return s.repo.Delete(ctx, id)
}

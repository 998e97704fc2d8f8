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

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, name, password string) (token string, user *model.User, err error)
	Register(ctx context.Context, name, password string, role model.Role) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	hasher     *auth.PasswordHasher
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, hasher *auth.PasswordHasher, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		hasher:     hasher,
		jwtService: jwtService,
	}
}

// Login verifies the credentials and issues an access token. The returned
// error never distinguishes an unknown name from a wrong password.
func (s *authService) Login(ctx context.Context, name, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByName(ctx, name)
	if err != nil {
		// Burn a verification against an empty digest so the miss costs
		// roughly the same as a wrong password.
		s.hasher.Verify(password, "")
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(password, user.Password) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Generate(user.ID, user.Name, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("generate access token: %w", err)
	}

	return token, user, nil
}

// Register creates a new user with a hashed password. The name must be free.
func (s *authService) Register(ctx context.Context, name, password string, role model.Role) (*model.User, error) {
	existing, err := s.userRepo.FindByName(ctx, name)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

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

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The pre-check and the insert are separate statements, so a
		// concurrent registration can still trip the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

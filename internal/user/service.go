package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"agrimart-be/internal/logger"
	"agrimart-be/internal/validation"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, input RegisterInput) (string, User, error)
	Login(ctx context.Context, input LoginInput) (string, User, error)
	Profile(ctx context.Context, id int64) (User, error)
	UpdateProfile(ctx context.Context, id int64, input UpdateProfileInput) (User, error)
	ChangePassword(ctx context.Context, id int64, input ChangePasswordInput) error
	ParseToken(token string) (*CustomClaims, error)
}

type service struct {
	repo   Repository
	tokens *TokenIssuer
}

func NewService(repo Repository, tokens *TokenIssuer) Service {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (string, User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := validation.Struct(input); err != nil {
		return "", User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	role := input.Role
	if role == "" {
		role = RoleCustomer
	}

	u, err := s.repo.Create(ctx, User{
		Name:     strings.TrimSpace(input.FirstName + " " + input.LastName),
		Email:    input.Email,
		Password: hashed,
		Role:     role,
	})
	if err != nil {
		if !errors.Is(err, ErrEmailExists) {
			log.Error("failed to create user", zap.String("email", input.Email), zap.Error(err))
		}
		return "", User{}, err
	}

	token, err := s.tokens.Generate(u)
	if err != nil {
		log.Error("failed to generate jwt", zap.Int64("user_id", u.ID), zap.Error(err))
		return "", User{}, err
	}

	log.Info("register service completed", zap.Int64("user_id", u.ID))
	return token, u, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (string, User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	u, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if errors.Is(err, ErrUserNotFound) {
		log.Info("email not found")
		return "", User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Error("failed to find user", zap.Error(err))
		return "", User{}, err
	}

	if !CheckPasswordHash(input.Password, u.Password) {
		log.Info("password not match", zap.Int64("user_id", u.ID))
		return "", User{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(u)
	return token, u, err
}

func (s *service) Profile(ctx context.Context, id int64) (User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, id int64, input UpdateProfileInput) (User, error) {
	if err := validation.Struct(input); err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	u, err := s.repo.UpdateProfile(ctx, id, input)
	if err != nil {
		return User{}, err
	}

	logger.FromCtx(ctx).Info("profile updated", zap.Int64("user_id", id))
	return u, nil
}

func (s *service) ChangePassword(ctx context.Context, id int64, input ChangePasswordInput) error {
	if err := validation.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !CheckPasswordHash(input.CurrentPassword, u.Password) {
		return ErrInvalidCredentials
	}

	hashed, err := HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, id, hashed)
}

func (s *service) ParseToken(token string) (*CustomClaims, error) {
	return s.tokens.Parse(token)
}

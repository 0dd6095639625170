package services

import (
	"context"

	"github.com/shashiranjanraj/kashvi-shop/app/models"
	"github.com/shashiranjanraj/kashvi-shop/app/repositories"
	"github.com/shashiranjanraj/kashvi-shop/pkg/auth"
	"github.com/shashiranjanraj/kashvi-shop/pkg/logger"
)

// NewUser is the input of UserService.Register.
type NewUser struct {
	Username string
	Email    string
	Password string
	Phone    string
	Address  string
}

type UserService struct {
	users *repositories.UserRepository
}

func NewUserService(users *repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

// Register creates a buyer account with a bcrypt-hashed password. Username
// and email must both be unused.
func (s *UserService) Register(ctx context.Context, in NewUser) (models.User, error) {
	taken, err := s.users.UsernameTaken(ctx, in.Username)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, conflict("username exists")
	}
	taken, err = s.users.EmailTaken(ctx, in.Email)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, conflict("email exists")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}
	u := models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        in.Phone,
		Address:      in.Address,
	}
	if err := s.users.Create(ctx, &u); err != nil {
		return models.User{}, err
	}
	logger.WithCtx(ctx).Info("user registered", "user_id", u.ID)
	return u, nil
}

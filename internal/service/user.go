package service

import (
	"context"
	"fmt"

	"github.com/DonkeyXBT/ticketplatform-sub000/internal/domain"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

// UpdateProfile lets a user change their display name, Discord link and base
// currency. Email and password stay as they are.
func (s *UserService) UpdateProfile(ctx context.Context, user domain.User) (domain.User, error) {
	if user.BaseCurrency == "" {
		user.BaseCurrency = "USD"
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/DonkeyXBT/ticketplatform-sub000/internal/domain"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/repository/dao"
)

var ErrPlatformAccountNotFound = dao.ErrPlatformAccountNotFound

type PlatformAccountDAO interface {
	Insert(ctx context.Context, account dao.PlatformAccount) (dao.PlatformAccount, error)
	FindByID(ctx context.Context, id uint) (dao.PlatformAccount, error)
	FindByUser(ctx context.Context, userID uint) ([]dao.PlatformAccount, error)
	Update(ctx context.Context, account dao.PlatformAccount) (dao.PlatformAccount, error)
	Delete(ctx context.Context, id uint) error
}

type PlatformAccountRepository struct {
	dao PlatformAccountDAO
}

func NewPlatformAccountRepository(dao PlatformAccountDAO) *PlatformAccountRepository {
	return &PlatformAccountRepository{
		dao: dao,
	}
}

// Create stores an account whose Password/TwoFASecret fields are already
// sealed by the caller.
func (r *PlatformAccountRepository) Create(ctx context.Context, account domain.PlatformAccount) (domain.PlatformAccount, error) {
	created, err := r.dao.Insert(ctx, accountDomainToDao(account))
	if err != nil {
		return domain.PlatformAccount{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return accountDaoToDomain(created), nil
}

func (r *PlatformAccountRepository) FindByID(ctx context.Context, id uint) (domain.PlatformAccount, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.PlatformAccount{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return accountDaoToDomain(found), nil
}

func (r *PlatformAccountRepository) FindByUser(ctx context.Context, userID uint) ([]domain.PlatformAccount, error) {
	found, err := r.dao.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUser -> %w", err)
	}

	accounts := make([]domain.PlatformAccount, 0, len(found))
	for _, a := range found {
		accounts = append(accounts, accountDaoToDomain(a))
	}

	return accounts, nil
}

func (r *PlatformAccountRepository) Update(ctx context.Context, account domain.PlatformAccount) (domain.PlatformAccount, error) {
	current, err := r.dao.FindByID(ctx, account.ID)
	if err != nil {
		return domain.PlatformAccount{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	current.Platform = account.Platform
	current.Email = account.Email
	current.EncryptedPassword = account.Password
	current.EncryptedTwoFA = account.TwoFASecret

	updated, err := r.dao.Update(ctx, current)
	if err != nil {
		return domain.PlatformAccount{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return accountDaoToDomain(updated), nil
}

func (r *PlatformAccountRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func accountDomainToDao(a domain.PlatformAccount) dao.PlatformAccount {
	return dao.PlatformAccount{
		ID:                a.ID,
		UserID:            a.UserID,
		Platform:          a.Platform,
		Email:             a.Email,
		EncryptedPassword: a.Password,
		EncryptedTwoFA:    a.TwoFASecret,
	}
}

func accountDaoToDomain(a dao.PlatformAccount) domain.PlatformAccount {
	return domain.PlatformAccount{
		ID:          a.ID,
		UserID:      a.UserID,
		Platform:    a.Platform,
		Email:       a.Email,
		Password:    a.EncryptedPassword,
		TwoFASecret: a.EncryptedTwoFA,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

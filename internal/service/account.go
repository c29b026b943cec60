package service

import (
	"context"
	"fmt"

	"github.com/DonkeyXBT/ticketplatform-sub000/internal/domain"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/pkg/cryptohelper"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/repository"
)

var ErrPlatformAccountNotFound = repository.ErrPlatformAccountNotFound

type PlatformAccountRepository interface {
	Create(ctx context.Context, account domain.PlatformAccount) (domain.PlatformAccount, error)
	FindByID(ctx context.Context, id uint) (domain.PlatformAccount, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.PlatformAccount, error)
	Update(ctx context.Context, account domain.PlatformAccount) (domain.PlatformAccount, error)
	Delete(ctx context.Context, id uint) error
}

// AccountService seals platform credentials before they reach the repository
// and opens them only for single-record reads.
type AccountService struct {
	repo   PlatformAccountRepository
	sealer *cryptohelper.Sealer
}

func NewAccountService(repo PlatformAccountRepository, sealer *cryptohelper.Sealer) *AccountService {
	return &AccountService{
		repo:   repo,
		sealer: sealer,
	}
}

func (s *AccountService) CreateAccount(ctx context.Context, account domain.PlatformAccount) (domain.PlatformAccount, error) {
	sealed, err := s.seal(account)
	if err != nil {
		return domain.PlatformAccount{}, err
	}

	created, err := s.repo.Create(ctx, sealed)
	if err != nil {
		return domain.PlatformAccount{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created.Redacted(), nil
}

// GetAccount returns the account with decrypted credentials.
func (s *AccountService) GetAccount(ctx context.Context, userID, accountID uint) (domain.PlatformAccount, error) {
	account, err := s.ownedAccount(ctx, userID, accountID)
	if err != nil {
		return domain.PlatformAccount{}, err
	}

	account.Password, err = s.sealer.Open(account.Password)
	if err != nil {
		return domain.PlatformAccount{}, fmt.Errorf("s.sealer.Open -> %w", err)
	}

	if account.TwoFASecret != "" {
		account.TwoFASecret, err = s.sealer.Open(account.TwoFASecret)
		if err != nil {
			return domain.PlatformAccount{}, fmt.Errorf("s.sealer.Open -> %w", err)
		}
	}

	return account, nil
}

func (s *AccountService) ListAccounts(ctx context.Context, userID uint) ([]domain.PlatformAccount, error) {
	accounts, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUser -> %w", err)
	}

	redacted := make([]domain.PlatformAccount, 0, len(accounts))
	for _, a := range accounts {
		redacted = append(redacted, a.Redacted())
	}

	return redacted, nil
}

func (s *AccountService) UpdateAccount(ctx context.Context, userID uint, account domain.PlatformAccount) (domain.PlatformAccount, error) {
	if _, err := s.ownedAccount(ctx, userID, account.ID); err != nil {
		return domain.PlatformAccount{}, err
	}

	sealed, err := s.seal(account)
	if err != nil {
		return domain.PlatformAccount{}, err
	}

	updated, err := s.repo.Update(ctx, sealed)
	if err != nil {
		return domain.PlatformAccount{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated.Redacted(), nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, userID, accountID uint) error {
	if _, err := s.ownedAccount(ctx, userID, accountID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, accountID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *AccountService) ownedAccount(ctx context.Context, userID, accountID uint) (domain.PlatformAccount, error) {
	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return domain.PlatformAccount{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if account.UserID != userID {
		return domain.PlatformAccount{}, ErrPlatformAccountNotFound
	}

	return account, nil
}

func (s *AccountService) seal(account domain.PlatformAccount) (domain.PlatformAccount, error) {
	var err error

	account.Password, err = s.sealer.Seal(account.Password)
	if err != nil {
		return domain.PlatformAccount{}, fmt.Errorf("s.sealer.Seal -> %w", err)
	}

	if account.TwoFASecret != "" {
		account.TwoFASecret, err = s.sealer.Seal(account.TwoFASecret)
		if err != nil {
			return domain.PlatformAccount{}, fmt.Errorf("s.sealer.Seal -> %w", err)
		}
	}

	return account, nil
}

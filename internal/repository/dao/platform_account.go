package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrPlatformAccountNotFound = errors.New("platform account not found")

// PlatformAccount rows hold the AES-GCM sealed credential blobs, never the
// plaintext. Sealing happens in the account service.
type PlatformAccount struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"not null;index"`

	Platform          string `gorm:"not null"`
	Email             string `gorm:"not null"`
	EncryptedPassword string `gorm:"not null"`
	EncryptedTwoFA    string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PlatformAccountDAO struct {
	db *gorm.DB
}

func NewPlatformAccountDAO(db *gorm.DB) *PlatformAccountDAO {
	return &PlatformAccountDAO{
		db: db,
	}
}

func (d *PlatformAccountDAO) Insert(ctx context.Context, account PlatformAccount) (PlatformAccount, error) {
	result := d.db.WithContext(ctx).Create(&account)
	if result.Error != nil {
		return PlatformAccount{}, result.Error
	}

	return account, nil
}

func (d *PlatformAccountDAO) FindByID(ctx context.Context, id uint) (PlatformAccount, error) {
	var account PlatformAccount

	result := d.db.WithContext(ctx).First(&account, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return PlatformAccount{}, ErrPlatformAccountNotFound
		}

		return PlatformAccount{}, result.Error
	}

	return account, nil
}

func (d *PlatformAccountDAO) FindByUser(ctx context.Context, userID uint) ([]PlatformAccount, error) {
	var accounts []PlatformAccount

	result := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("platform ASC").
		Find(&accounts)
	if result.Error != nil {
		return nil, result.Error
	}

	return accounts, nil
}

func (d *PlatformAccountDAO) Update(ctx context.Context, account PlatformAccount) (PlatformAccount, error) {
	result := d.db.WithContext(ctx).Save(&account)
	if result.Error != nil {
		return PlatformAccount{}, result.Error
	}

	return account, nil
}

func (d *PlatformAccountDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&PlatformAccount{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPlatformAccountNotFound
	}

	return nil
}

package domain

import "time"

// PlatformAccount stores a user's credentials for a resale platform.
// Password and TwoFASecret hold AES-GCM sealed values at rest; the service
// layer decrypts them only for a single-record fetch.
type PlatformAccount struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Platform    string    `json:"platform"`
	Email       string    `json:"email"`
	Password    string    `json:"password,omitempty"`
	TwoFASecret string    `json:"two_fa_secret,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Redacted strips the secret fields for list responses.
func (a PlatformAccount) Redacted() PlatformAccount {
	a.Password = ""
	a.TwoFASecret = ""

	return a
}

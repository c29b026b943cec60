package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type PlatformAccountRequest struct {
	Platform    string `json:"platform"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	TwoFASecret string `json:"two_fa_secret,omitempty"`
}

func (req *PlatformAccountRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Platform, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}

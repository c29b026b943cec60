package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type UpdateProfileRequest struct {
	Name         string `json:"name"`
	DiscordID    string `json:"discord_id,omitempty"`
	BaseCurrency string `json:"base_currency"`
}

func (req *UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.DiscordID, is.Digit),
		validation.Field(&req.BaseCurrency, validation.Required, validation.Length(3, 3), is.UpperCase),
	)
}

package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/shopspring/decimal"
)

type SaleRequest struct {
	Quantity     int             `json:"quantity"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	SaleCurrency string          `json:"sale_currency"`
	BuyerName    string          `json:"buyer_name,omitempty"`
	BuyerEmail   string          `json:"buyer_email,omitempty"`
	TicketsSent  bool            `json:"tickets_sent"`
}

func (req *SaleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&req.SalePrice, validation.By(nonNegativeDecimal)),
		validation.Field(&req.SaleCurrency, validation.Required, validation.Length(3, 3), is.UpperCase),
		validation.Field(&req.BuyerEmail, is.Email),
	)
}

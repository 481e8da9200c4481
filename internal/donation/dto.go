package donation

import (
	"time"

	errors "github.com/frahmantamala/hopecare/internal"
	"github.com/frahmantamala/hopecare/internal/core/common/validation"
	"github.com/frahmantamala/hopecare/internal/currency"
	"github.com/shopspring/decimal"
)

// MoneyDonationDTO names the currency by id or, failing that, by ISO code.
type MoneyDonationDTO struct {
	DonorID      int64           `json:"donor_id"`
	ProgramID    int64           `json:"program_id"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyID   *int64          `json:"currency_id,omitempty"`
	CurrencyCode string          `json:"currency_code,omitempty"`
	DonationDate *time.Time      `json:"donation_date,omitempty"`
	Notes        string          `json:"notes"`
}

func (d MoneyDonationDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("donor_id", d.DonorID).Required()
	v.Field("program_id", d.ProgramID).Required()
	v.Field("amount", d.Amount).Positive(errors.ErrCodeInvalidAmount)
	v.Field("currency_code", d.CurrencyCode).MaxLength(3)
	v.Field("notes", d.Notes).MaxLength(1000)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type ProductDonationDTO struct {
	DonorID            int64           `json:"donor_id"`
	ProgramID          int64           `json:"program_id"`
	ProductDescription string          `json:"product_description"`
	Quantity           int64           `json:"quantity"`
	UnitValue          decimal.Decimal `json:"unit_value"`
	DonationDate       *time.Time      `json:"donation_date,omitempty"`
	Notes              string          `json:"notes"`
}

func (d ProductDonationDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("donor_id", d.DonorID).Required()
	v.Field("program_id", d.ProgramID).Required()
	v.Field("product_description", d.ProductDescription).Required().MaxLength(200)
	v.Field("quantity", d.Quantity).MinInt(1, errors.ErrCodeInvalidQuantity)
	v.Field("unit_value", d.UnitValue).NotNegative(errors.ErrCodeInvalidUnitValue)
	v.Field("notes", d.Notes).MaxLength(1000)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type DonationsResponse struct {
	Donations []*Donation `json:"donations"`
}

type CurrenciesResponse struct {
	BaseCurrency string               `json:"base_currency"`
	Currencies   []*currency.Currency `json:"currencies"`
}

package currency

import (
	currencyDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/currency"
	"github.com/shopspring/decimal"
)

// BaseCode is the currency every amount is reported in.
const BaseCode = "PEN"

type Currency struct {
	ID         int64           `json:"id"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Symbol     string          `json:"symbol"`
	RateToBase decimal.Decimal `json:"rate_to_base"`
	IsActive   bool            `json:"is_active"`
}

// ToBase converts amount into the base currency, rounded to cents.
func (c *Currency) ToBase(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(c.RateToBase).Round(2)
}

func FromDataModel(c *currencyDatamodel.Currency) *Currency {
	return &Currency{
		ID:         c.ID,
		Code:       c.Code,
		Name:       c.Name,
		Symbol:     c.Symbol,
		RateToBase: c.RateToBase,
		IsActive:   c.IsActive,
	}
}

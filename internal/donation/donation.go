package donation

import (
	"time"

	donationDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/donation"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindMoney   Kind = "MONEY"
	KindProduct Kind = "PRODUCT"
)

// Donation is immutable once recorded. Money donations carry Amount,
// CurrencyID and BaseAmount; product donations carry the product fields and
// a BaseAmount of quantity times unit value.
type Donation struct {
	ID                 int64           `json:"id"`
	Code               string          `json:"code"`
	Kind               Kind            `json:"kind"`
	DonorID            int64           `json:"donor_id"`
	ProgramID          int64           `json:"program_id"`
	DonationDate       time.Time       `json:"donation_date"`
	Amount             decimal.Decimal `json:"amount"`
	CurrencyID         *int64          `json:"currency_id,omitempty"`
	BaseAmount         decimal.Decimal `json:"base_amount"`
	ProductDescription string          `json:"product_description,omitempty"`
	Quantity           int64           `json:"quantity,omitempty"`
	UnitValue          decimal.Decimal `json:"unit_value"`
	Notes              string          `json:"notes,omitempty"`
	CreatedBy          int64           `json:"created_by"`
	CreatedAt          time.Time       `json:"created_at"`
}

func ToDataModel(d *Donation) *donationDatamodel.Donation {
	return &donationDatamodel.Donation{
		ID:                 d.ID,
		Code:               d.Code,
		Kind:               string(d.Kind),
		DonorID:            d.DonorID,
		ProgramID:          d.ProgramID,
		DonationDate:       d.DonationDate,
		Amount:             d.Amount,
		CurrencyID:         d.CurrencyID,
		BaseAmount:         d.BaseAmount,
		ProductDescription: d.ProductDescription,
		Quantity:           d.Quantity,
		UnitValue:          d.UnitValue,
		Notes:              d.Notes,
		CreatedBy:          d.CreatedBy,
		CreatedAt:          d.CreatedAt,
	}
}

func FromDataModel(d *donationDatamodel.Donation) *Donation {
	return &Donation{
		ID:                 d.ID,
		Code:               d.Code,
		Kind:               Kind(d.Kind),
		DonorID:            d.DonorID,
		ProgramID:          d.ProgramID,
		DonationDate:       d.DonationDate,
		Amount:             d.Amount,
		CurrencyID:         d.CurrencyID,
		BaseAmount:         d.BaseAmount,
		ProductDescription: d.ProductDescription,
		Quantity:           d.Quantity,
		UnitValue:          d.UnitValue,
		Notes:              d.Notes,
		CreatedBy:          d.CreatedBy,
		CreatedAt:          d.CreatedAt,
	}
}

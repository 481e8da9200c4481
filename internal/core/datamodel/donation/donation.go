package donation

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donation rows are append-only. Money donations leave the product columns
// empty; product donations leave amount and currency empty. BaseAmount holds
// the value in base currency for both kinds.
type Donation struct {
	ID                 int64           `gorm:"primaryKey"`
	Code               string          `gorm:"column:donation_code;uniqueIndex;not null"`
	Kind               string          `gorm:"column:kind;not null"`
	DonorID            int64           `gorm:"column:donor_id;not null;index"`
	ProgramID          int64           `gorm:"column:program_id;not null;index:idx_donations_program_product"`
	DonationDate       time.Time       `gorm:"column:donation_date;not null"`
	Amount             decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null"`
	CurrencyID         *int64          `gorm:"column:currency_id"`
	BaseAmount         decimal.Decimal `gorm:"column:base_amount;type:numeric(14,2);not null"`
	ProductDescription string          `gorm:"column:product_description;index:idx_donations_program_product"`
	Quantity           int64           `gorm:"column:quantity;not null"`
	UnitValue          decimal.Decimal `gorm:"column:unit_value;type:numeric(14,2);not null"`
	Notes              string          `gorm:"column:notes"`
	CreatedBy          int64           `gorm:"column:created_by;not null"`
	CreatedAt          time.Time       `gorm:"column:created_at"`
}

func (Donation) TableName() string {
	return "donations"
}

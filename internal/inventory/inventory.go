package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusOutOfStock Status = "OUT_OF_STOCK"
	StatusLow        Status = "LOW"
	StatusInStock    Status = "IN_STOCK"
)

const DefaultLowStockThreshold = 10

// Tally is the raw sum behind a position: what came in through product
// donations and what went out through completed deliveries.
type Tally struct {
	Donated      int64
	DonatedValue decimal.Decimal
	Delivered    int64
}

func (t Tally) Available() int64 {
	return t.Donated - t.Delivered
}

// UnitValue is the quantity-weighted average unit value of the donations.
func (t Tally) UnitValue() decimal.Decimal {
	if t.Donated <= 0 {
		return decimal.Zero
	}
	return t.DonatedValue.Div(decimal.NewFromInt(t.Donated)).Round(2)
}

// Position is derived from the ledger and never stored.
type Position struct {
	ProgramID          int64           `json:"program_id"`
	ProgramCode        string          `json:"program_code"`
	ProgramName        string          `json:"program_name"`
	ProductDescription string          `json:"product_description"`
	Donated            int64           `json:"donated"`
	Available          int64           `json:"available"`
	Reserved           int64           `json:"reserved"`
	Delivered          int64           `json:"delivered"`
	UnitValue          decimal.Decimal `json:"unit_value"`
	AvailableValue     decimal.Decimal `json:"available_value"`
	Status             Status          `json:"stock_status"`
	LastUpdated        *time.Time      `json:"last_updated,omitempty"`
}

// NewPosition fills the derived figures from a tally. Reserved is always zero:
// deliveries debit stock at commit time.
func NewPosition(programID int64, programCode, programName, product string, t Tally, lastUpdated *time.Time) Position {
	unit := t.UnitValue()
	return Position{
		ProgramID:          programID,
		ProgramCode:        programCode,
		ProgramName:        programName,
		ProductDescription: product,
		Donated:            t.Donated,
		Available:          t.Available(),
		Delivered:          t.Delivered,
		UnitValue:          unit,
		AvailableValue:     unit.Mul(decimal.NewFromInt(t.Available())),
		LastUpdated:        lastUpdated,
	}
}

func Classify(available, lowThreshold int64) Status {
	switch {
	case available <= 0:
		return StatusOutOfStock
	case available < lowThreshold:
		return StatusLow
	}
	return StatusInStock
}

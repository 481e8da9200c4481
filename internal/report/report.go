package report

import (
	"time"

	"github.com/frahmantamala/hopecare/internal/inventory"
	"github.com/shopspring/decimal"
)

// Totals are the ledger-wide counters read straight from the store.
type Totals struct {
	ActiveDonors        int64           `db:"active_donors"`
	ActiveBeneficiaries int64           `db:"active_beneficiaries"`
	ActivePrograms      int64           `db:"active_programs"`
	Donations           int64           `db:"donations"`
	DonationValue       decimal.Decimal `db:"donation_value"`
	Deliveries          int64           `db:"deliveries"`
	DeliveryValue       decimal.Decimal `db:"delivery_value"`
	BeneficiariesServed int64           `db:"beneficiaries_served"`
}

// Snapshot holds every figure the dashboard needs, read in one transaction
// so counts and stock agree with each other.
type Snapshot struct {
	Totals    Totals
	Positions []inventory.Position
}

type Metrics struct {
	TotalDonors         int64           `json:"total_donors"`
	TotalBeneficiaries  int64           `json:"total_beneficiaries"`
	ActivePrograms      int64           `json:"active_programs"`
	TotalDonations      int64           `json:"total_donations"`
	TotalDonationValue  decimal.Decimal `json:"total_donation_value"`
	TotalDeliveries     int64           `json:"total_deliveries"`
	TotalDeliveryValue  decimal.Decimal `json:"total_delivery_value"`
	BeneficiariesServed int64           `json:"beneficiaries_served"`
	InventoryItems      int             `json:"inventory_items"`
	LowStockItems       int             `json:"low_stock_items"`
	OutOfStockItems     int             `json:"out_of_stock_items"`
	BaseCurrency        string          `json:"base_currency"`
	GeneratedAt         time.Time       `json:"generated_at"`
}

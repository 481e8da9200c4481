package delivery

import (
	"time"

	"github.com/shopspring/decimal"
)

type Delivery struct {
	ID                 int64           `gorm:"primaryKey"`
	Code               string          `gorm:"column:delivery_code;uniqueIndex;not null"`
	BeneficiaryID      int64           `gorm:"column:beneficiary_id;not null;index"`
	ProgramID          int64           `gorm:"column:program_id;not null;index:idx_deliveries_program_product"`
	ProductDescription string          `gorm:"column:product_description;not null;index:idx_deliveries_program_product"`
	Quantity           int64           `gorm:"column:quantity_delivered;not null"`
	UnitValue          decimal.Decimal `gorm:"column:unit_value;type:numeric(14,2);not null"`
	TotalValue         decimal.Decimal `gorm:"column:total_value;type:numeric(14,2);not null"`
	Status             string          `gorm:"column:status;not null"`
	Notes              string          `gorm:"column:notes"`
	CreatedBy          int64           `gorm:"column:created_by;not null"`
	ApprovedBy         *int64          `gorm:"column:approved_by"`
	DeliveryDate       time.Time       `gorm:"column:delivery_date;not null"`
	CreatedAt          time.Time       `gorm:"column:created_at"`
}

func (Delivery) TableName() string {
	return "deliveries"
}

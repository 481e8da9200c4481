package delivery

import (
	"time"

	deliveryDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/delivery"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Delivery is append-only. Only COMPLETED deliveries debit stock.
type Delivery struct {
	ID                 int64           `json:"id"`
	Code               string          `json:"code"`
	BeneficiaryID      int64           `json:"beneficiary_id"`
	ProgramID          int64           `json:"program_id"`
	ProductDescription string          `json:"product_description"`
	Quantity           int64           `json:"quantity"`
	UnitValue          decimal.Decimal `json:"unit_value"`
	TotalValue         decimal.Decimal `json:"total_value"`
	Status             Status          `json:"status"`
	Notes              string          `json:"notes,omitempty"`
	CreatedBy          int64           `json:"created_by"`
	ApprovedBy         *int64          `json:"approved_by,omitempty"`
	DeliveryDate       time.Time       `json:"delivery_date"`
	CreatedAt          time.Time       `json:"created_at"`
}

func ToDataModel(d *Delivery) *deliveryDatamodel.Delivery {
	return &deliveryDatamodel.Delivery{
		ID:                 d.ID,
		Code:               d.Code,
		BeneficiaryID:      d.BeneficiaryID,
		ProgramID:          d.ProgramID,
		ProductDescription: d.ProductDescription,
		Quantity:           d.Quantity,
		UnitValue:          d.UnitValue,
		TotalValue:         d.TotalValue,
		Status:             string(d.Status),
		Notes:              d.Notes,
		CreatedBy:          d.CreatedBy,
		ApprovedBy:         d.ApprovedBy,
		DeliveryDate:       d.DeliveryDate,
		CreatedAt:          d.CreatedAt,
	}
}

func FromDataModel(d *deliveryDatamodel.Delivery) *Delivery {
	return &Delivery{
		ID:                 d.ID,
		Code:               d.Code,
		BeneficiaryID:      d.BeneficiaryID,
		ProgramID:          d.ProgramID,
		ProductDescription: d.ProductDescription,
		Quantity:           d.Quantity,
		UnitValue:          d.UnitValue,
		TotalValue:         d.TotalValue,
		Status:             Status(d.Status),
		Notes:              d.Notes,
		CreatedBy:          d.CreatedBy,
		ApprovedBy:         d.ApprovedBy,
		DeliveryDate:       d.DeliveryDate,
		CreatedAt:          d.CreatedAt,
	}
}

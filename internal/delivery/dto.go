package delivery

import (
	"time"

	errors "github.com/frahmantamala/hopecare/internal"
	"github.com/frahmantamala/hopecare/internal/core/common/validation"
)

type PerformDeliveryDTO struct {
	BeneficiaryID      int64      `json:"beneficiary_id"`
	ProgramID          int64      `json:"program_id"`
	ProductDescription string     `json:"product_description"`
	Quantity           int64      `json:"quantity"`
	DeliveryDate       *time.Time `json:"delivery_date,omitempty"`
	Notes              string     `json:"notes"`
}

func (d PerformDeliveryDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("beneficiary_id", d.BeneficiaryID).Required()
	v.Field("program_id", d.ProgramID).Required()
	v.Field("product_description", d.ProductDescription).Required().MaxLength(200)
	v.Field("quantity", d.Quantity).MinInt(1, errors.ErrCodeInvalidQuantity)
	v.Field("notes", d.Notes).MaxLength(1000)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type DeliveriesResponse struct {
	Deliveries []*Delivery `json:"deliveries"`
}

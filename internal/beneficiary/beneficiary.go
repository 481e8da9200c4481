package beneficiary

import (
	"time"

	beneficiaryDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/beneficiary"
)

const DefaultFamilySize = 1

type Beneficiary struct {
	ID         int64     `json:"id"`
	Code       string    `json:"code"`
	FullName   string    `json:"full_name"`
	FamilySize int64     `json:"family_size"`
	Phone      string    `json:"phone,omitempty"`
	Address    string    `json:"address"`
	District   string    `json:"district,omitempty"`
	City       string    `json:"city,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ToDataModel(b *Beneficiary) *beneficiaryDatamodel.Beneficiary {
	return &beneficiaryDatamodel.Beneficiary{
		ID:         b.ID,
		Code:       b.Code,
		FullName:   b.FullName,
		FamilySize: b.FamilySize,
		Phone:      b.Phone,
		Address:    b.Address,
		District:   b.District,
		City:       b.City,
		Notes:      b.Notes,
		IsActive:   b.IsActive,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func FromDataModel(b *beneficiaryDatamodel.Beneficiary) *Beneficiary {
	return &Beneficiary{
		ID:         b.ID,
		Code:       b.Code,
		FullName:   b.FullName,
		FamilySize: b.FamilySize,
		Phone:      b.Phone,
		Address:    b.Address,
		District:   b.District,
		City:       b.City,
		Notes:      b.Notes,
		IsActive:   b.IsActive,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

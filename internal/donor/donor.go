package donor

import (
	"strings"
	"time"

	donorDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/donor"
)

type Type string

const (
	TypeIndividual Type = "INDIVIDUAL"
	TypeCorporate  Type = "CORPORATE"
	TypeGovernment Type = "GOVERNMENT"
)

var allTypes = []string{string(TypeIndividual), string(TypeCorporate), string(TypeGovernment)}

// ParseType accepts any casing and returns the canonical upper-case type.
func ParseType(s string) (Type, bool) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case TypeIndividual, TypeCorporate, TypeGovernment:
		return t, true
	}
	return "", false
}

type Donor struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Type      Type      `json:"donor_type"`
	Address   string    `json:"address,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToDataModel(d *Donor) *donorDatamodel.Donor {
	return &donorDatamodel.Donor{
		ID:        d.ID,
		Code:      d.Code,
		FullName:  d.FullName,
		Email:     d.Email,
		Phone:     d.Phone,
		DonorType: string(d.Type),
		Address:   d.Address,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func FromDataModel(d *donorDatamodel.Donor) *Donor {
	return &Donor{
		ID:        d.ID,
		Code:      d.Code,
		FullName:  d.FullName,
		Email:     d.Email,
		Phone:     d.Phone,
		Type:      Type(d.DonorType),
		Address:   d.Address,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func fromDataModels(rows []*donorDatamodel.Donor) []*Donor {
	donors := make([]*Donor, 0, len(rows))
	for _, row := range rows {
		donors = append(donors, FromDataModel(row))
	}
	return donors
}

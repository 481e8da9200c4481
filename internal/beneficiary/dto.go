package beneficiary

import (
	errors "github.com/frahmantamala/hopecare/internal"
	"github.com/frahmantamala/hopecare/internal/core/common/validation"
)

// RegisterBeneficiaryDTO leaves FamilySize nil to mean "not given"; the
// default of one member applies then.
type RegisterBeneficiaryDTO struct {
	FullName   string `json:"full_name"`
	FamilySize *int64 `json:"family_size,omitempty"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	District   string `json:"district"`
	City       string `json:"city"`
	Notes      string `json:"notes"`
}

type UpdateBeneficiaryDTO = RegisterBeneficiaryDTO

func (d RegisterBeneficiaryDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("full_name", d.FullName).Required().MaxLength(150)
	v.Field("address", d.Address).Required().MaxLength(255)
	v.Field("family_size", d.FamilySize).MinInt(1, errors.ErrCodeInvalidFamilySize)
	v.Field("phone", d.Phone).MaxLength(30)
	v.Field("district", d.District).MaxLength(100)
	v.Field("city", d.City).MaxLength(100)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d RegisterBeneficiaryDTO) familySize() int64 {
	if d.FamilySize == nil {
		return DefaultFamilySize
	}
	return *d.FamilySize
}

type BeneficiariesResponse struct {
	Beneficiaries []*Beneficiary `json:"beneficiaries"`
}

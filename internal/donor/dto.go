package donor

import (
	errors "github.com/frahmantamala/hopecare/internal"
	"github.com/frahmantamala/hopecare/internal/core/common/validation"
)

// RegisterDonorDTO is also used for updates; every field is replaced.
type RegisterDonorDTO struct {
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	DonorType string `json:"donor_type"`
	Address   string `json:"address"`
}

type UpdateDonorDTO = RegisterDonorDTO

func (d RegisterDonorDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("full_name", d.FullName).Required().MaxLength(150)
	v.Field("email", d.Email).MaxLength(150)
	v.Field("phone", d.Phone).MaxLength(30)
	v.Field("donor_type", d.DonorType).Required().OneOf(allTypes, errors.ErrCodeInvalidDonorType)
	v.Field("address", d.Address).MaxLength(255)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type DonorsResponse struct {
	Donors []*Donor `json:"donors"`
}

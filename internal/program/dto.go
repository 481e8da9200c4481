package program

import (
	"time"

	"github.com/frahmantamala/hopecare/internal/core/common/validation"
)

type CreateProgramDTO struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ProgramType string     `json:"program_type"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

func (d CreateProgramDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(150)
	v.Field("program_type", d.ProgramType).MaxLength(50)
	v.Field("end_date", d.EndDate).NotBefore(d.StartDate, "start_date")
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type ProgramsResponse struct {
	Programs []*Program `json:"programs"`
}

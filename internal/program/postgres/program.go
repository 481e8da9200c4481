package postgres

import (
	"context"
	goerrors "errors"

	errors "github.com/frahmantamala/hopecare/internal"
	"github.com/frahmantamala/hopecare/internal/core/dberr"
	programDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/program"
	"github.com/frahmantamala/hopecare/internal/program"
	"gorm.io/gorm"
)

type ProgramRepository struct {
	db *gorm.DB
}

func NewProgramRepository(db *gorm.DB) program.RepositoryAPI {
	return &ProgramRepository{db: db}
}

func (r *ProgramRepository) Create(ctx context.Context, p *programDatamodel.Program) error {
	err := r.db.WithContext(ctx).Create(p).Error
	if dberr.IsUniqueViolation(err) {
		return errors.NewConflictError("program code already exists", errors.ErrCodeDuplicateCode)
	}
	return err
}

func (r *ProgramRepository) GetByID(ctx context.Context, id int64) (*programDatamodel.Program, error) {
	var p programDatamodel.Program
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrProgramNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProgramRepository) List(ctx context.Context) ([]*programDatamodel.Program, error) {
	var programs []*programDatamodel.Program
	err := r.db.WithContext(ctx).Order("program_code ASC").Find(&programs).Error
	return programs, err
}

func (r *ProgramRepository) Deactivate(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&programDatamodel.Program{}).Where("id = ?", id).Update("is_active", false).Error
}

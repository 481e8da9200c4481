package postgres

import (
	"context"
	goerrors "errors"

	errors "github.com/frahmantamala/hopecare/internal"
	"github.com/frahmantamala/hopecare/internal/beneficiary"
	"github.com/frahmantamala/hopecare/internal/core/dberr"
	beneficiaryDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/beneficiary"
	"gorm.io/gorm"
)

type BeneficiaryRepository struct {
	db *gorm.DB
}

func NewBeneficiaryRepository(db *gorm.DB) beneficiary.RepositoryAPI {
	return &BeneficiaryRepository{db: db}
}

func (r *BeneficiaryRepository) Create(ctx context.Context, b *beneficiaryDatamodel.Beneficiary) error {
	err := r.db.WithContext(ctx).Create(b).Error
	if dberr.IsUniqueViolation(err) {
		return errors.NewConflictError("beneficiary code already exists", errors.ErrCodeDuplicateCode)
	}
	return err
}

func (r *BeneficiaryRepository) Update(ctx context.Context, b *beneficiaryDatamodel.Beneficiary) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BeneficiaryRepository) GetByID(ctx context.Context, id int64) (*beneficiaryDatamodel.Beneficiary, error) {
	var b beneficiaryDatamodel.Beneficiary
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrBeneficiaryNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BeneficiaryRepository) List(ctx context.Context) ([]*beneficiaryDatamodel.Beneficiary, error) {
	var list []*beneficiaryDatamodel.Beneficiary
	err := r.db.WithContext(ctx).Order("full_name ASC, id ASC").Find(&list).Error
	return list, err
}

func (r *BeneficiaryRepository) Deactivate(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&beneficiaryDatamodel.Beneficiary{}).Where("id = ?", id).Update("is_active", false).Error
}

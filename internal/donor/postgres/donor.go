package postgres

import (
	"context"
	goerrors "errors"
	"strings"

	errors "github.com/frahmantamala/hopecare/internal"
	"github.com/frahmantamala/hopecare/internal/core/dberr"
	donorDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/donor"
	"github.com/frahmantamala/hopecare/internal/donor"
	"gorm.io/gorm"
)

type DonorRepository struct {
	db *gorm.DB
}

func NewDonorRepository(db *gorm.DB) donor.RepositoryAPI {
	return &DonorRepository{db: db}
}

func (r *DonorRepository) Create(ctx context.Context, d *donorDatamodel.Donor) error {
	err := r.db.WithContext(ctx).Create(d).Error
	if dberr.IsUniqueViolation(err) {
		return errors.NewConflictError("donor code already exists", errors.ErrCodeDuplicateCode)
	}
	return err
}

func (r *DonorRepository) Update(ctx context.Context, d *donorDatamodel.Donor) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DonorRepository) GetByID(ctx context.Context, id int64) (*donorDatamodel.Donor, error) {
	var d donorDatamodel.Donor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrDonorNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DonorRepository) List(ctx context.Context) ([]*donorDatamodel.Donor, error) {
	var donors []*donorDatamodel.Donor
	err := r.db.WithContext(ctx).Order("full_name ASC, id ASC").Find(&donors).Error
	return donors, err
}

// likeEscaper makes LIKE wildcards in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func (r *DonorRepository) SearchActive(ctx context.Context, term string) ([]*donorDatamodel.Donor, error) {
	var donors []*donorDatamodel.Donor
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if term != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		q = q.Where(`(LOWER(full_name) LIKE ? ESCAPE '\' OR LOWER(donor_code) LIKE ? ESCAPE '\' OR LOWER(COALESCE(email, '')) LIKE ? ESCAPE '\')`, like, like, like)
	}
	err := q.Order("full_name ASC, id ASC").Find(&donors).Error
	return donors, err
}

func (r *DonorRepository) Deactivate(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&donorDatamodel.Donor{}).Where("id = ?", id).Update("is_active", false).Error
}

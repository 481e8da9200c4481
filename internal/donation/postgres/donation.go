package postgres

import (
	"context"

	errors "github.com/frahmantamala/hopecare/internal"
	"github.com/frahmantamala/hopecare/internal/core/dberr"
	donationDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/donation"
	"github.com/frahmantamala/hopecare/internal/donation"
	"gorm.io/gorm"
)

type DonationRepository struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) donation.RepositoryAPI {
	return &DonationRepository{db: db}
}

func (r *DonationRepository) Create(ctx context.Context, d *donationDatamodel.Donation) error {
	err := r.db.WithContext(ctx).Create(d).Error
	if dberr.IsUniqueViolation(err) {
		return errors.NewConflictError("donation code already exists", errors.ErrCodeDuplicateCode)
	}
	return err
}

func (r *DonationRepository) List(ctx context.Context) ([]*donationDatamodel.Donation, error) {
	var list []*donationDatamodel.Donation
	err := r.db.WithContext(ctx).Order("donation_date DESC, id DESC").Find(&list).Error
	return list, err
}

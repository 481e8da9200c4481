package postgres

import (
	"context"
	goerrors "errors"

	currencyDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/currency"
	"github.com/frahmantamala/hopecare/internal/currency"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CurrencyRepository struct {
	db *gorm.DB
}

func NewCurrencyRepository(db *gorm.DB) currency.RepositoryAPI {
	return &CurrencyRepository{db: db}
}

func (r *CurrencyRepository) GetActiveByID(ctx context.Context, id int64) (*currencyDatamodel.Currency, error) {
	return r.first(ctx, "id = ? AND is_active = ?", id, true)
}

func (r *CurrencyRepository) GetActiveByCode(ctx context.Context, code string) (*currencyDatamodel.Currency, error) {
	return r.first(ctx, "currency_code = ? AND is_active = ?", code, true)
}

func (r *CurrencyRepository) ListActive(ctx context.Context) ([]*currencyDatamodel.Currency, error) {
	var list []*currencyDatamodel.Currency
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("currency_code ASC").Find(&list).Error
	return list, err
}

// Create upserts by currency code so the seeder can run repeatedly.
func (r *CurrencyRepository) Create(ctx context.Context, c *currencyDatamodel.Currency) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "currency_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"currency_name", "symbol", "rate_to_base", "is_active"}),
	}).Create(c).Error
}

func (r *CurrencyRepository) first(ctx context.Context, query string, args ...interface{}) (*currencyDatamodel.Currency, error) {
	var c currencyDatamodel.Currency
	err := r.db.WithContext(ctx).Where(query, args...).First(&c).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, currency.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

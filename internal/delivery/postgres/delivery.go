package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"

	errors "github.com/frahmantamala/hopecare/internal"
	deliveryDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/delivery"
	"github.com/frahmantamala/hopecare/internal/core/dberr"
	"github.com/frahmantamala/hopecare/internal/delivery"
	"github.com/frahmantamala/hopecare/internal/inventory"
	inventoryPostgres "github.com/frahmantamala/hopecare/internal/inventory/postgres"
	"gorm.io/gorm"
)

type DeliveryRepository struct {
	db *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) delivery.RepositoryAPI {
	return &DeliveryRepository{db: db}
}

// WithStockLock runs fn in one transaction holding the stock lock for the
// (program, product) key. On Postgres the lock is a transaction-scoped
// advisory lock taken before fn runs. SQLite serializes writers on its own.
func (r *DeliveryRepository) WithStockLock(ctx context.Context, programID int64, product string, fn func(delivery.StockTx) error) error {
	db := r.db.WithContext(ctx)
	dialect := db.Dialector.Name()

	var opts []*sql.TxOptions
	if o := TxOptionsFor(dialect); o != nil {
		opts = append(opts, o)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if dialect == "postgres" {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", StockLockKey(programID, product)).Error; err != nil {
				return err
			}
		}
		return fn(&stockTx{tx: tx})
	}, opts...)
}

// TxOptionsFor returns the isolation the stock transaction runs at. Postgres
// uses READ COMMITTED: every statement after the advisory lock reads a fresh
// snapshot, so the tally sees deliveries committed by the previous lock
// holder. A serializable snapshot would be fixed before the lock wait.
func TxOptionsFor(dialect string) *sql.TxOptions {
	if dialect == "postgres" {
		return &sql.TxOptions{Isolation: sql.LevelReadCommitted}
	}
	return nil
}

func (r *DeliveryRepository) List(ctx context.Context) ([]*deliveryDatamodel.Delivery, error) {
	var list []*deliveryDatamodel.Delivery
	err := r.db.WithContext(ctx).Order("delivery_date DESC, id DESC").Find(&list).Error
	return list, err
}

// StockLockKey maps a stock key onto the bigint space of advisory locks.
func StockLockKey(programID int64, product string) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d\x00%s", programID, product)
	return int64(h.Sum64())
}

type stockTx struct {
	tx *gorm.DB
}

func (s *stockTx) Tally(programID int64, product string) (inventory.Tally, error) {
	return inventoryPostgres.QueryTally(s.tx, programID, product)
}

func (s *stockTx) Insert(d *deliveryDatamodel.Delivery) error {
	err := s.tx.Create(d).Error
	if dberr.IsUniqueViolation(err) {
		return errors.NewConflictError("delivery code already exists", errors.ErrCodeDuplicateCode)
	}
	return err
}

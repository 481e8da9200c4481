package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	goerrors "errors"
	"fmt"
	"time"

	errors "github.com/frahmantamala/hopecare/internal"
	programDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/program"
	"github.com/frahmantamala/hopecare/internal/inventory"
	"gorm.io/gorm"
)

// tallySQL is a single statement so the three sums come from one snapshot.
const tallySQL = `
SELECT
  (SELECT CAST(COALESCE(SUM(quantity), 0) AS BIGINT) FROM donations
     WHERE kind = 'PRODUCT' AND program_id = ? AND product_description = ?) AS donated,
  (SELECT COALESCE(SUM(quantity * unit_value), 0) FROM donations
     WHERE kind = 'PRODUCT' AND program_id = ? AND product_description = ?) AS donated_value,
  (SELECT CAST(COALESCE(SUM(quantity_delivered), 0) AS BIGINT) FROM deliveries
     WHERE status = 'COMPLETED' AND program_id = ? AND product_description = ?) AS delivered`

const positionsSQL = `
SELECT p.id, p.program_code, p.program_name, d.product_description,
       CAST(d.donated AS BIGINT), d.donated_value, CAST(COALESCE(v.delivered, 0) AS BIGINT),
       d.last_donation, v.last_delivery
FROM (
    SELECT program_id, product_description,
           SUM(quantity) AS donated,
           SUM(quantity * unit_value) AS donated_value,
           MAX(created_at) AS last_donation
    FROM donations
    WHERE kind = 'PRODUCT'
    GROUP BY program_id, product_description
) d
JOIN programs p ON p.id = d.program_id
LEFT JOIN (
    SELECT program_id, product_description,
           SUM(quantity_delivered) AS delivered,
           MAX(created_at) AS last_delivery
    FROM deliveries
    WHERE status = 'COMPLETED'
    GROUP BY program_id, product_description
) v ON v.program_id = d.program_id AND v.product_description = d.product_description
ORDER BY p.program_code ASC, d.product_description ASC`

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) inventory.RepositoryAPI {
	return &InventoryRepository{db: db}
}

// QueryTally computes the tally for one (program, product) key on db, which
// may be a transaction.
func QueryTally(db *gorm.DB, programID int64, product string) (inventory.Tally, error) {
	var t inventory.Tally
	row := db.Raw(tallySQL,
		programID, product,
		programID, product,
		programID, product,
	).Row()
	if err := row.Scan(&t.Donated, &t.DonatedValue, &t.Delivered); err != nil {
		return inventory.Tally{}, fmt.Errorf("query stock tally: %w", err)
	}
	return t, nil
}

func (r *InventoryRepository) PositionFor(ctx context.Context, programID int64, product string) (inventory.Position, error) {
	db := r.db.WithContext(ctx)

	var p programDatamodel.Program
	if err := db.Where("id = ?", programID).First(&p).Error; err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return inventory.Position{}, errors.ErrProgramNotFound
		}
		return inventory.Position{}, err
	}

	t, err := QueryTally(db, programID, product)
	if err != nil {
		return inventory.Position{}, err
	}
	return inventory.NewPosition(p.ID, p.Code, p.Name, product, t, nil), nil
}

func (r *InventoryRepository) ListPositions(ctx context.Context) ([]inventory.Position, error) {
	rows, err := r.db.WithContext(ctx).Raw(positionsSQL).Rows()
	if err != nil {
		return nil, fmt.Errorf("query positions: %w", err)
	}
	return scanPositions(rows)
}

// Querier is satisfied by *sql.DB, *sql.Tx, *sqlx.DB and *sqlx.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// QueryPositions lists positions on q, which may be a transaction shared with
// other reads. Status is left unset.
func QueryPositions(ctx context.Context, q Querier) ([]inventory.Position, error) {
	rows, err := q.QueryContext(ctx, positionsSQL)
	if err != nil {
		return nil, fmt.Errorf("query positions: %w", err)
	}
	return scanPositions(rows)
}

func scanPositions(rows *sql.Rows) ([]inventory.Position, error) {
	defer rows.Close()

	positions := make([]inventory.Position, 0)
	for rows.Next() {
		var (
			programID                 int64
			code, name, product       string
			t                         inventory.Tally
			lastDonation, lastDeliver looseTime
		)
		if err := rows.Scan(&programID, &code, &name, &product,
			&t.Donated, &t.DonatedValue, &t.Delivered,
			&lastDonation, &lastDeliver); err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		positions = append(positions, inventory.NewPosition(programID, code, name, product, t, latest(lastDonation, lastDeliver)))
	}
	return positions, rows.Err()
}

func latest(a, b looseTime) *time.Time {
	switch {
	case !a.Valid && !b.Valid:
		return nil
	case !b.Valid || (a.Valid && a.Time.After(b.Time)):
		return &a.Time
	}
	return &b.Time
}

// looseTime scans MAX(timestamp) results. Postgres hands back time.Time while
// SQLite returns the stored text.
type looseTime struct {
	Time  time.Time
	Valid bool
}

var looseLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func (t *looseTime) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		t.Valid = false
		return nil
	case time.Time:
		t.Time, t.Valid = v, true
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
	for _, layout := range looseLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time, t.Valid = parsed, true
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", raw)
}

func (t looseTime) Value() (driver.Value, error) {
	if !t.Valid {
		return nil, nil
	}
	return t.Time, nil
}


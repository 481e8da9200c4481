package postgres

import (
	"context"
	"database/sql"
	"fmt"

	inventoryPostgres "github.com/frahmantamala/hopecare/internal/inventory/postgres"
	"github.com/frahmantamala/hopecare/internal/report"
	"github.com/jmoiron/sqlx"
)

const totalsSQL = `
SELECT
  (SELECT COUNT(*) FROM donors WHERE is_active = TRUE) AS active_donors,
  (SELECT COUNT(*) FROM beneficiaries WHERE is_active = TRUE) AS active_beneficiaries,
  (SELECT COUNT(*) FROM programs WHERE is_active = TRUE) AS active_programs,
  (SELECT COUNT(*) FROM donations) AS donations,
  (SELECT COALESCE(SUM(base_amount), 0) FROM donations) AS donation_value,
  (SELECT COUNT(*) FROM deliveries WHERE status = 'COMPLETED') AS deliveries,
  (SELECT COALESCE(SUM(total_value), 0) FROM deliveries WHERE status = 'COMPLETED') AS delivery_value,
  (SELECT COUNT(DISTINCT beneficiary_id) FROM deliveries WHERE status = 'COMPLETED') AS beneficiaries_served`

type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) report.RepositoryAPI {
	return &ReportRepository{db: db}
}

// SnapshotTxOptions pins Postgres to one snapshot for the whole read. SQLite
// transactions already read from a single snapshot.
func SnapshotTxOptions(driver string) *sql.TxOptions {
	switch driver {
	case "pgx", "postgres":
		return &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	}
	return nil
}

func (r *ReportRepository) Snapshot(ctx context.Context) (report.Snapshot, error) {
	tx, err := r.db.BeginTxx(ctx, SnapshotTxOptions(r.db.DriverName()))
	if err != nil {
		return report.Snapshot{}, fmt.Errorf("begin report snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var snap report.Snapshot
	if err := tx.GetContext(ctx, &snap.Totals, totalsSQL); err != nil {
		return report.Snapshot{}, fmt.Errorf("query ledger totals: %w", err)
	}
	snap.Positions, err = inventoryPostgres.QueryPositions(ctx, tx)
	if err != nil {
		return report.Snapshot{}, err
	}
	if err := tx.Commit(); err != nil {
		return report.Snapshot{}, fmt.Errorf("end report snapshot: %w", err)
	}
	return snap, nil
}

// Package testdb opens the in-memory SQLite store the repository and ledger
// suites run against.
package testdb

import (
	"fmt"
	"os"
	"sync/atomic"

	beneficiaryDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/beneficiary"
	currencyDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/currency"
	deliveryDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/delivery"
	donationDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/donation"
	donorDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/donor"
	programDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/program"
	userDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/user"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var seq atomic.Int64

// Open returns a fresh, fully migrated database. Every call gets its own
// named in-memory database held on a single connection, so concurrent
// writers queue up the way they would behind a row lock.
func Open() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:hopecare_%d?mode=memory&cache=shared", seq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// PostgresDSNEnv names the variable that enables the suites running against
// a real Postgres server.
const PostgresDSNEnv = "HOPECARE_TEST_POSTGRES_DSN"

// PostgresDSN returns the configured test server, or "" when none is set.
func PostgresDSN() string {
	return os.Getenv(PostgresDSNEnv)
}

// OpenPostgres migrates the database at dsn and empties every table. The pool
// allows maxConns connections so concurrent transactions really overlap.
func OpenPostgres(dsn string, maxConns int) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetMaxIdleConns(maxConns)

	if err := migrate(db); err != nil {
		return nil, err
	}
	err = db.Exec("TRUNCATE deliveries, donations, currencies, programs, beneficiaries, donors, users RESTART IDENTITY CASCADE").Error
	if err != nil {
		return nil, err
	}
	return db, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userDatamodel.User{},
		&donorDatamodel.Donor{},
		&beneficiaryDatamodel.Beneficiary{},
		&programDatamodel.Program{},
		&currencyDatamodel.Currency{},
		&donationDatamodel.Donation{},
		&deliveryDatamodel.Delivery{},
	)
}

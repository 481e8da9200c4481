package cmd

import (
	"log/slog"

	"github.com/frahmantamala/hopecare/internal"
	"github.com/frahmantamala/hopecare/internal/beneficiary"
	beneficiaryPostgres "github.com/frahmantamala/hopecare/internal/beneficiary/postgres"
	"github.com/frahmantamala/hopecare/internal/core/events"
	"github.com/frahmantamala/hopecare/internal/currency"
	currencyPostgres "github.com/frahmantamala/hopecare/internal/currency/postgres"
	"github.com/frahmantamala/hopecare/internal/delivery"
	deliveryPostgres "github.com/frahmantamala/hopecare/internal/delivery/postgres"
	"github.com/frahmantamala/hopecare/internal/donation"
	donationPostgres "github.com/frahmantamala/hopecare/internal/donation/postgres"
	"github.com/frahmantamala/hopecare/internal/donor"
	donorPostgres "github.com/frahmantamala/hopecare/internal/donor/postgres"
	"github.com/frahmantamala/hopecare/internal/inventory"
	inventoryPostgres "github.com/frahmantamala/hopecare/internal/inventory/postgres"
	"github.com/frahmantamala/hopecare/internal/program"
	programPostgres "github.com/frahmantamala/hopecare/internal/program/postgres"
	"github.com/frahmantamala/hopecare/internal/report"
	reportPostgres "github.com/frahmantamala/hopecare/internal/report/postgres"
	"github.com/frahmantamala/hopecare/internal/user"
	userPostgres "github.com/frahmantamala/hopecare/internal/user/postgres"
	"github.com/frahmantamala/hopecare/pkg/metrics"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

type ledgerServices struct {
	Users         *user.Service
	Donors        *donor.Service
	Beneficiaries *beneficiary.Service
	Programs      *program.Service
	Currencies    *currency.Service
	CurrencyRepo  currency.RepositoryAPI
	Donations     *donation.Service
	Deliveries    *delivery.Service
	Inventory     *inventory.Service
	Reports       *report.Service
}

func newLedgerServices(cfg *internal.Config, gdb *gorm.DB, db *sqlx.DB, bus events.Publisher, m *metrics.Ledger, lg *slog.Logger) *ledgerServices {
	s := &ledgerServices{}
	s.Users = user.NewService(userPostgres.NewUserRepository(gdb), cfg.Security.BCryptCost, lg)
	s.Donors = donor.NewService(donorPostgres.NewDonorRepository(gdb), lg)
	s.Beneficiaries = beneficiary.NewService(beneficiaryPostgres.NewBeneficiaryRepository(gdb), lg)
	s.Programs = program.NewService(programPostgres.NewProgramRepository(gdb), lg)
	s.CurrencyRepo = currencyPostgres.NewCurrencyRepository(gdb)
	s.Currencies = currency.NewService(s.CurrencyRepo, lg)
	s.Inventory = inventory.NewService(inventoryPostgres.NewInventoryRepository(gdb), cfg.Inventory.LowStockThreshold, lg)

	s.Donations = donation.NewService(donation.Deps{
		Repo:       donationPostgres.NewDonationRepository(gdb),
		Donors:     s.Donors,
		Programs:   s.Programs,
		Currencies: s.Currencies,
		Actors:     s.Users,
		Events:     bus,
		Metrics:    m,
	}, lg)
	s.Deliveries = delivery.NewService(delivery.Deps{
		Repo:          deliveryPostgres.NewDeliveryRepository(gdb),
		Beneficiaries: s.Beneficiaries,
		Programs:      s.Programs,
		Actors:        s.Users,
		Events:        bus,
		Metrics:       m,
		Retries:       cfg.Security.DeliveryRetries,
	}, lg)

	if db != nil {
		s.Reports = report.NewService(reportPostgres.NewReportRepository(db), s.Inventory, lg)
	}
	return s
}

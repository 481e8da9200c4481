package report_test

import (
	"context"
	"database/sql"
	goerrors "errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	errors "github.com/frahmantamala/hopecare/internal"
	"github.com/frahmantamala/hopecare/internal/core/testdb"
	"github.com/frahmantamala/hopecare/internal/delivery"
	"github.com/frahmantamala/hopecare/internal/donation"
	"github.com/frahmantamala/hopecare/internal/donor"
	"github.com/frahmantamala/hopecare/internal/report"
	reportPostgres "github.com/frahmantamala/hopecare/internal/report/postgres"
	"github.com/frahmantamala/hopecare/pkg/logger"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

func TestReport(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Report Suite")
}

var _ = Describe("Dashboard metrics", func() {
	var (
		ledger  *testdb.Ledger
		service *report.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		var err error
		ledger, err = testdb.NewLedger()
		Expect(err).NotTo(HaveOccurred())
		ctx = context.Background()

		sqlDB, err := ledger.DB.DB()
		Expect(err).NotTo(HaveOccurred())
		repo := reportPostgres.NewReportRepository(sqlx.NewDb(sqlDB, "sqlite3"))
		service = report.NewService(repo, ledger.Inventory, logger.Nop())
	})

	It("reports an empty ledger as zeros", func() {
		m, err := service.DashboardMetrics(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.TotalDonations).To(BeZero())
		Expect(m.TotalDonationValue.IsZero()).To(BeTrue())
		Expect(m.InventoryItems).To(BeZero())
		Expect(m.BaseCurrency).To(Equal("PEN"))
	})

	It("summarises donations, deliveries and stock", func() {
		rice, err := ledger.Stock("Rice 1kg", 50, "4.50")
		Expect(err).NotTo(HaveOccurred())
		_, err = ledger.Stock("Oil 1l", 5, "8")
		Expect(err).NotTo(HaveOccurred())

		d, err := ledger.Donors.RegisterDonor(ctx, donor.RegisterDonorDTO{FullName: "Ana", DonorType: "INDIVIDUAL"})
		Expect(err).NotTo(HaveOccurred())
		_, err = ledger.Donations.RecordMoneyDonation(ctx, donation.MoneyDonationDTO{
			DonorID: d.ID, ProgramID: rice, Amount: decimal.NewFromInt(100), CurrencyCode: "USD",
		}, ledger.Admin)
		Expect(err).NotTo(HaveOccurred())

		beneficiaryID, err := ledger.Beneficiary("Rosa Huaman")
		Expect(err).NotTo(HaveOccurred())
		for i := 0; i < 2; i++ {
			_, err = ledger.Deliveries.PerformDelivery(ctx, delivery.PerformDeliveryDTO{
				BeneficiaryID: beneficiaryID, ProgramID: rice, ProductDescription: "Rice 1kg", Quantity: 10,
			}, ledger.Assistant)
			Expect(err).NotTo(HaveOccurred())
		}

		m, err := service.DashboardMetrics(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.TotalDonors).To(Equal(int64(3)))
		Expect(m.ActivePrograms).To(Equal(int64(2)))
		Expect(m.TotalDonations).To(Equal(int64(3)))
		// 225 + 40 in goods plus 100 USD at 3.75
		Expect(m.TotalDonationValue.StringFixed(2)).To(Equal("640.00"))
		Expect(m.TotalDeliveries).To(Equal(int64(2)))
		Expect(m.TotalDeliveryValue.StringFixed(2)).To(Equal("90.00"))
		Expect(m.BeneficiariesServed).To(Equal(int64(1)))
		Expect(m.InventoryItems).To(Equal(2))
		Expect(m.LowStockItems).To(Equal(1))
		Expect(m.OutOfStockItems).To(BeZero())
	})

	It("turns a failing query into a store failure", func() {
		db, mock, err := sqlmock.New()
		Expect(err).NotTo(HaveOccurred())
		defer db.Close()
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT").WillReturnError(goerrors.New("connection reset by peer"))
		mock.ExpectRollback()

		failing := report.NewService(reportPostgres.NewReportRepository(sqlx.NewDb(db, "sqlmock")), ledger.Inventory, logger.Nop())
		_, err = failing.DashboardMetrics(ctx)
		Expect(errors.IsStoreFailure(err)).To(BeTrue())
		Expect(mock.ExpectationsWereMet()).To(Succeed())
	})
})

var _ = Describe("Report snapshot", func() {
	It("reads totals and stock positions inside one transaction", func() {
		db, mock, err := sqlmock.New()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { _ = db.Close() })

		mock.ExpectBegin()
		mock.ExpectQuery("active_donors").WillReturnRows(sqlmock.NewRows([]string{
			"active_donors", "active_beneficiaries", "active_programs", "donations",
			"donation_value", "deliveries", "delivery_value", "beneficiaries_served",
		}).AddRow(3, 1, 2, 3, "640.00", 2, "90.00", 1))
		mock.ExpectQuery("FROM donations").WillReturnRows(sqlmock.NewRows([]string{
			"id", "program_code", "program_name", "product_description",
			"donated", "donated_value", "delivered", "last_donation", "last_delivery",
		}).
			AddRow(int64(1), "PRG-001", "Comedor", "Oil 1l", int64(5), "40.00", int64(0), "2026-01-02 10:00:00", nil).
			AddRow(int64(1), "PRG-001", "Comedor", "Rice 1kg", int64(50), "225.00", int64(50), "2026-01-02 10:00:00", "2026-01-03 09:00:00"))
		mock.ExpectCommit()

		ledger, err := testdb.NewLedger()
		Expect(err).NotTo(HaveOccurred())
		service := report.NewService(reportPostgres.NewReportRepository(sqlx.NewDb(db, "sqlmock")), ledger.Inventory, logger.Nop())

		m, err := service.DashboardMetrics(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(m.TotalDonations).To(Equal(int64(3)))
		Expect(m.TotalDonationValue.StringFixed(2)).To(Equal("640.00"))
		Expect(m.InventoryItems).To(Equal(2))
		Expect(m.LowStockItems).To(Equal(1))
		Expect(m.OutOfStockItems).To(Equal(1))
		Expect(mock.ExpectationsWereMet()).To(Succeed())
	})

	It("asks Postgres for a read-only repeatable read snapshot", func() {
		for _, driver := range []string{"pgx", "postgres"} {
			opts := reportPostgres.SnapshotTxOptions(driver)
			Expect(opts).NotTo(BeNil())
			Expect(opts.Isolation).To(Equal(sql.LevelRepeatableRead))
			Expect(opts.ReadOnly).To(BeTrue())
		}
		Expect(reportPostgres.SnapshotTxOptions("sqlite3")).To(BeNil())
	})
})

package postgres_test

import (
	"context"
	goerrors "errors"
	"testing"

	errors "github.com/frahmantamala/hopecare/internal"
	donorDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/donor"
	"github.com/frahmantamala/hopecare/internal/donor"
	donorPostgres "github.com/frahmantamala/hopecare/internal/donor/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestDonorPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Donor Postgres Suite")
}

var _ = Describe("Donor Repository", func() {
	var (
		repo donor.RepositoryAPI
		ctx  context.Context
	)

	seed := func(code, name, email string, active bool) *donorDatamodel.Donor {
		d := &donorDatamodel.Donor{Code: code, FullName: name, Email: email, DonorType: "INDIVIDUAL", IsActive: active}
		Expect(repo.Create(ctx, d)).To(Succeed())
		return d
	}

	BeforeEach(func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&donorDatamodel.Donor{})).To(Succeed())

		repo = donorPostgres.NewDonorRepository(db)
		ctx = context.Background()
	})

	It("searches active donors by name, code or email ignoring case", func() {
		seed("DNR-001", "Maria Flores", "maria@example.org", true)
		seed("DNR-002", "Banco Andino", "rse@bancoandino.pe", true)
		seed("DNR-003", "Mario Retired", "mario@example.org", false)

		byName, err := repo.SearchActive(ctx, "MAR")
		Expect(err).NotTo(HaveOccurred())
		Expect(byName).To(HaveLen(1))
		Expect(byName[0].Code).To(Equal("DNR-001"))

		byCode, err := repo.SearchActive(ctx, "dnr-002")
		Expect(err).NotTo(HaveOccurred())
		Expect(byCode).To(HaveLen(1))

		byEmail, err := repo.SearchActive(ctx, "bancoandino")
		Expect(err).NotTo(HaveOccurred())
		Expect(byEmail).To(HaveLen(1))

		all, err := repo.SearchActive(ctx, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(HaveLen(2))
	})

	It("matches LIKE wildcards in the term literally", func() {
		seed("DNR-030", "Acme Foods", "ops_team@acme.org", true)
		seed("DNR-031", "Maria Lopez", "maria.lopez@example.org", true)

		for _, term := range []string{"%", "a%", `\`, "100%"} {
			found, err := repo.SearchActive(ctx, term)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeEmpty(), "term %q", term)
		}

		underscore, err := repo.SearchActive(ctx, "_")
		Expect(err).NotTo(HaveOccurred())
		Expect(underscore).To(HaveLen(1))
		Expect(underscore[0].Code).To(Equal("DNR-030"))

		substring, err := repo.SearchActive(ctx, "lopez")
		Expect(err).NotTo(HaveOccurred())
		Expect(substring).To(HaveLen(1))
		Expect(substring[0].Code).To(Equal("DNR-031"))
	})

	It("soft deletes through the active flag", func() {
		d := seed("DNR-010", "Ana", "", true)
		Expect(repo.Deactivate(ctx, d.ID)).To(Succeed())

		found, err := repo.GetByID(ctx, d.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(found.IsActive).To(BeFalse())

		all, err := repo.List(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(HaveLen(1))
	})

	It("rejects duplicate codes as a conflict", func() {
		seed("DNR-020", "Ana", "", true)
		err := repo.Create(ctx, &donorDatamodel.Donor{Code: "DNR-020", FullName: "Other", DonorType: "CORPORATE", IsActive: true})
		appErr, ok := errors.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(errors.ErrorTypeConflict))
	})

	It("maps missing rows to the not found sentinel", func() {
		_, err := repo.GetByID(ctx, 404)
		Expect(goerrors.Is(err, errors.ErrDonorNotFound)).To(BeTrue())
	})
})

package donation_test

import (
	"context"
	goerrors "errors"
	"testing"

	errors "github.com/frahmantamala/hopecare/internal"
	donationDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/donation"
	"github.com/frahmantamala/hopecare/internal/core/codes"
	"github.com/frahmantamala/hopecare/internal/core/events"
	"github.com/frahmantamala/hopecare/internal/core/testdb"
	"github.com/frahmantamala/hopecare/internal/donation"
	"github.com/frahmantamala/hopecare/internal/donor"
	"github.com/frahmantamala/hopecare/internal/program"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

func TestDonation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Donation Suite")
}

var _ = Describe("Donation Service", func() {
	var (
		ledger    *testdb.Ledger
		ctx       context.Context
		donorID   int64
		programID int64
	)

	count := func() int64 {
		var n int64
		Expect(ledger.DB.Model(&donationDatamodel.Donation{}).Count(&n).Error).To(Succeed())
		return n
	}

	BeforeEach(func() {
		var err error
		ledger, err = testdb.NewLedger()
		Expect(err).NotTo(HaveOccurred())
		ctx = context.Background()

		d, err := ledger.Donors.RegisterDonor(ctx, donor.RegisterDonorDTO{FullName: "Banco Andino", DonorType: "corporate"})
		Expect(err).NotTo(HaveOccurred())
		donorID = d.ID

		p, err := ledger.Programs.CreateProgram(ctx, program.CreateProgramDTO{Name: "Winter campaign"})
		Expect(err).NotTo(HaveOccurred())
		programID = p.ID
	})

	Describe("RecordMoneyDonation", func() {
		It("stores the amount converted to base currency", func() {
			d, err := ledger.Donations.RecordMoneyDonation(ctx, donation.MoneyDonationDTO{
				DonorID:      donorID,
				ProgramID:    programID,
				Amount:       decimal.NewFromInt(100),
				CurrencyCode: "usd",
			}, ledger.Admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Kind).To(Equal(donation.KindMoney))
			Expect(d.BaseAmount.StringFixed(2)).To(Equal("375.00"))
			Expect(d.CurrencyID).NotTo(BeNil())
			Expect(d.CreatedBy).To(Equal(ledger.Admin.UserID))
			Expect(codes.HasPrefix(d.Code, codes.PrefixDonation)).To(BeTrue())
		})

		DescribeTable("rejects invalid donations before writing",
			func(mutate func(*donation.MoneyDonationDTO)) {
				dto := donation.MoneyDonationDTO{
					DonorID:      donorID,
					ProgramID:    programID,
					Amount:       decimal.NewFromInt(10),
					CurrencyCode: "PEN",
				}
				mutate(&dto)
				_, err := ledger.Donations.RecordMoneyDonation(ctx, dto, ledger.Admin)
				Expect(errors.IsValidation(err)).To(BeTrue())
				Expect(count()).To(BeZero())
			},
			Entry("zero amount", func(d *donation.MoneyDonationDTO) { d.Amount = decimal.Zero }),
			Entry("negative amount", func(d *donation.MoneyDonationDTO) { d.Amount = decimal.NewFromInt(-5) }),
			Entry("unknown currency", func(d *donation.MoneyDonationDTO) { d.CurrencyCode = "XXX" }),
			Entry("no currency", func(d *donation.MoneyDonationDTO) { d.CurrencyCode = "" }),
			Entry("unknown donor", func(d *donation.MoneyDonationDTO) { d.DonorID = 9999 }),
			Entry("unknown program", func(d *donation.MoneyDonationDTO) { d.ProgramID = 9999 }),
		)

		It("rejects a deactivated donor", func() {
			Expect(ledger.Donors.DeactivateDonor(ctx, donorID)).To(Succeed())
			_, err := ledger.Donations.RecordMoneyDonation(ctx, donation.MoneyDonationDTO{
				DonorID: donorID, ProgramID: programID, Amount: decimal.NewFromInt(10), CurrencyCode: "PEN",
			}, ledger.Admin)
			Expect(errors.IsValidation(err)).To(BeTrue())
		})

		It("treats a missing actor as an authentication failure", func() {
			_, err := ledger.Donations.RecordMoneyDonation(ctx, donation.MoneyDonationDTO{
				DonorID: donorID, ProgramID: programID, Amount: decimal.NewFromInt(10), CurrencyCode: "PEN",
			}, errors.Actor{})
			Expect(goerrors.Is(err, errors.ErrActorRequired)).To(BeTrue())
			Expect(count()).To(BeZero())
		})
	})

	Describe("RecordProductDonation", func() {
		It("values the donation at quantity times unit value and publishes it", func() {
			d, err := ledger.Donations.RecordProductDonation(ctx, donation.ProductDonationDTO{
				DonorID:            donorID,
				ProgramID:          programID,
				ProductDescription: " Rice 1kg ",
				Quantity:           50,
				UnitValue:          decimal.RequireFromString("4.50"),
			}, ledger.Assistant)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.ProductDescription).To(Equal("Rice 1kg"))
			Expect(d.BaseAmount.StringFixed(2)).To(Equal("225.00"))

			published := ledger.Events.OfType(events.EventTypeDonationRecorded)
			Expect(published).To(HaveLen(1))
			Expect(published[0].(*events.DonationRecordedEvent).DonationID).To(Equal(d.ID))

			p, err := ledger.Inventory.PositionFor(ctx, programID, "Rice 1kg")
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Available).To(Equal(int64(50)))
		})

		It("accepts a zero unit value", func() {
			_, err := ledger.Donations.RecordProductDonation(ctx, donation.ProductDonationDTO{
				DonorID: donorID, ProgramID: programID, ProductDescription: "Used clothes", Quantity: 3,
			}, ledger.Assistant)
			Expect(err).NotTo(HaveOccurred())
		})

		DescribeTable("rejects invalid products",
			func(mutate func(*donation.ProductDonationDTO)) {
				dto := donation.ProductDonationDTO{
					DonorID:            donorID,
					ProgramID:          programID,
					ProductDescription: "Rice 1kg",
					Quantity:           5,
					UnitValue:          decimal.NewFromInt(4),
				}
				mutate(&dto)
				_, err := ledger.Donations.RecordProductDonation(ctx, dto, ledger.Assistant)
				Expect(errors.IsValidation(err)).To(BeTrue())
				Expect(count()).To(BeZero())
			},
			Entry("zero quantity", func(d *donation.ProductDonationDTO) { d.Quantity = 0 }),
			Entry("empty description", func(d *donation.ProductDonationDTO) { d.ProductDescription = "" }),
			Entry("negative unit value", func(d *donation.ProductDonationDTO) { d.UnitValue = decimal.NewFromInt(-1) }),
			Entry("inactive program", func(d *donation.ProductDonationDTO) {
				Expect(ledger.Programs.DeactivateProgram(ctx, programID)).To(Succeed())
			}),
		)
	})

	It("lists the newest donations first", func() {
		for _, product := range []string{"Rice 1kg", "Oil 1l"} {
			_, err := ledger.Donations.RecordProductDonation(ctx, donation.ProductDonationDTO{
				DonorID: donorID, ProgramID: programID, ProductDescription: product, Quantity: 1,
			}, ledger.Admin)
			Expect(err).NotTo(HaveOccurred())
		}
		list, err := ledger.Donations.ListDonations(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(HaveLen(2))
		Expect(list[0].ProductDescription).To(Equal("Oil 1l"))

		currencies, err := ledger.Donations.ListCurrencies(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(currencies).To(HaveLen(2))
	})
})

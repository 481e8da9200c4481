package donor_test

import (
	"context"
	goerrors "errors"
	"testing"

	errors "github.com/frahmantamala/hopecare/internal"
	"github.com/frahmantamala/hopecare/internal/core/codes"
	donorDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/donor"
	"github.com/frahmantamala/hopecare/internal/donor"
	"github.com/frahmantamala/hopecare/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestDonor(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Donor Suite")
}

// MockRepository implements donor.RepositoryAPI in memory.
type MockRepository struct {
	donors    map[int64]*donorDatamodel.Donor
	nextID    int64
	creates   int
	failError error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{donors: make(map[int64]*donorDatamodel.Donor)}
}

func (m *MockRepository) Create(ctx context.Context, d *donorDatamodel.Donor) error {
	m.creates++
	if m.failError != nil {
		return m.failError
	}
	m.nextID++
	d.ID = m.nextID
	clone := *d
	m.donors[d.ID] = &clone
	return nil
}

func (m *MockRepository) Update(ctx context.Context, d *donorDatamodel.Donor) error {
	if m.failError != nil {
		return m.failError
	}
	clone := *d
	m.donors[d.ID] = &clone
	return nil
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*donorDatamodel.Donor, error) {
	if m.failError != nil {
		return nil, m.failError
	}
	d, ok := m.donors[id]
	if !ok {
		return nil, errors.ErrDonorNotFound
	}
	clone := *d
	return &clone, nil
}

func (m *MockRepository) List(ctx context.Context) ([]*donorDatamodel.Donor, error) {
	var out []*donorDatamodel.Donor
	for _, d := range m.donors {
		out = append(out, d)
	}
	return out, m.failError
}

func (m *MockRepository) SearchActive(ctx context.Context, term string) ([]*donorDatamodel.Donor, error) {
	var out []*donorDatamodel.Donor
	for _, d := range m.donors {
		if d.IsActive {
			out = append(out, d)
		}
	}
	return out, m.failError
}

func (m *MockRepository) Deactivate(ctx context.Context, id int64) error {
	if m.failError != nil {
		return m.failError
	}
	m.donors[id].IsActive = false
	return nil
}

var _ = Describe("Donor Service", func() {
	var (
		repo    *MockRepository
		service *donor.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		repo = NewMockRepository()
		service = donor.NewService(repo, logger.Nop())
		ctx = context.Background()
	})

	Describe("RegisterDonor", func() {
		It("stores a corporate donor with a generated code", func() {
			d, err := service.RegisterDonor(ctx, donor.RegisterDonorDTO{
				FullName:  "  Andes Foods SAC ",
				Email:     "giving@andesfoods.pe",
				DonorType: "CORPORATE",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(d.ID).To(BeNumerically(">", 0))
			Expect(d.FullName).To(Equal("Andes Foods SAC"))
			Expect(d.Type).To(Equal(donor.TypeCorporate))
			Expect(d.IsActive).To(BeTrue())
			Expect(codes.HasPrefix(d.Code, codes.PrefixDonor)).To(BeTrue())
		})

		It("normalises the donor type casing", func() {
			d, err := service.RegisterDonor(ctx, donor.RegisterDonorDTO{FullName: "Ana Quispe", DonorType: "individual"})
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Type).To(Equal(donor.TypeIndividual))
		})

		DescribeTable("rejects invalid input before touching the store",
			func(dto donor.RegisterDonorDTO) {
				_, err := service.RegisterDonor(ctx, dto)
				Expect(errors.IsValidation(err)).To(BeTrue())
				Expect(repo.creates).To(BeZero())
			},
			Entry("unknown type", donor.RegisterDonorDTO{FullName: "Ana", DonorType: "Unknown"}),
			Entry("missing type", donor.RegisterDonorDTO{FullName: "Ana"}),
			Entry("missing name", donor.RegisterDonorDTO{FullName: "  ", DonorType: "INDIVIDUAL"}),
		)

		It("wraps store failures", func() {
			repo.failError = goerrors.New("connection reset")
			_, err := service.RegisterDonor(ctx, donor.RegisterDonorDTO{FullName: "Ana", DonorType: "INDIVIDUAL"})
			Expect(errors.IsStoreFailure(err)).To(BeTrue())
		})
	})

	Describe("UpdateDonor", func() {
		It("replaces the editable fields and keeps the code", func() {
			d, err := service.RegisterDonor(ctx, donor.RegisterDonorDTO{FullName: "Ana", DonorType: "INDIVIDUAL"})
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.UpdateDonor(ctx, d.ID, donor.UpdateDonorDTO{FullName: "Ana Quispe", DonorType: "government"})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Code).To(Equal(d.Code))
			Expect(updated.FullName).To(Equal("Ana Quispe"))
			Expect(updated.Type).To(Equal(donor.TypeGovernment))
		})

		It("reports unknown donors as not found", func() {
			_, err := service.UpdateDonor(ctx, 42, donor.UpdateDonorDTO{FullName: "Ana", DonorType: "INDIVIDUAL"})
			Expect(goerrors.Is(err, errors.ErrDonorNotFound)).To(BeTrue())
		})
	})

	Describe("ResolveActive", func() {
		It("refuses deactivated donors", func() {
			d, err := service.RegisterDonor(ctx, donor.RegisterDonorDTO{FullName: "Ana", DonorType: "INDIVIDUAL"})
			Expect(err).NotTo(HaveOccurred())
			Expect(service.DeactivateDonor(ctx, d.ID)).To(Succeed())

			_, err = service.ResolveActive(ctx, d.ID)
			Expect(goerrors.Is(err, errors.ErrDonorNotFound)).To(BeTrue())

			found, err := service.GetDonor(ctx, d.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.IsActive).To(BeFalse())
		})
	})
})

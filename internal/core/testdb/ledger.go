package testdb

import (
	"context"
	"sync"

	errors "github.com/frahmantamala/hopecare/internal"
	"github.com/frahmantamala/hopecare/internal/beneficiary"
	beneficiaryPostgres "github.com/frahmantamala/hopecare/internal/beneficiary/postgres"
	currencyDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/currency"
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
	"github.com/frahmantamala/hopecare/internal/user"
	userPostgres "github.com/frahmantamala/hopecare/internal/user/postgres"
	"github.com/frahmantamala/hopecare/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Ledger is the full service graph over one fresh database, with an
// administrator and an assistant already provisioned.
type Ledger struct {
	DB            *gorm.DB
	Users         *user.Service
	Donors        *donor.Service
	Beneficiaries *beneficiary.Service
	Programs      *program.Service
	Currencies    *currency.Service
	Donations     *donation.Service
	Deliveries    *delivery.Service
	Inventory     *inventory.Service
	Events        *Recorder

	Admin     errors.Actor
	Assistant errors.Actor
}

func NewLedger() (*Ledger, error) {
	db, err := Open()
	if err != nil {
		return nil, err
	}
	return NewLedgerOn(db)
}

// NewLedgerOn builds the service graph over an already migrated, empty db.
func NewLedgerOn(db *gorm.DB) (*Ledger, error) {
	ctx := context.Background()
	lg := logger.Nop()

	l := &Ledger{DB: db, Events: &Recorder{}}
	l.Users = user.NewService(userPostgres.NewUserRepository(db), bcrypt.MinCost, lg)
	l.Donors = donor.NewService(donorPostgres.NewDonorRepository(db), lg)
	l.Beneficiaries = beneficiary.NewService(beneficiaryPostgres.NewBeneficiaryRepository(db), lg)
	l.Programs = program.NewService(programPostgres.NewProgramRepository(db), lg)
	l.Inventory = inventory.NewService(inventoryPostgres.NewInventoryRepository(db), inventory.DefaultLowStockThreshold, lg)

	currencyRepo := currencyPostgres.NewCurrencyRepository(db)
	for _, c := range []*currencyDatamodel.Currency{
		{Code: "PEN", Name: "Peruvian Sol", Symbol: "S/", RateToBase: decimal.NewFromInt(1), IsActive: true},
		{Code: "USD", Name: "US Dollar", Symbol: "$", RateToBase: decimal.RequireFromString("3.75"), IsActive: true},
	} {
		if err := currencyRepo.Create(ctx, c); err != nil {
			return nil, err
		}
	}
	l.Currencies = currency.NewService(currencyRepo, lg)

	l.Donations = donation.NewService(donation.Deps{
		Repo:       donationPostgres.NewDonationRepository(db),
		Donors:     l.Donors,
		Programs:   l.Programs,
		Currencies: l.Currencies,
		Actors:     l.Users,
		Events:     l.Events,
	}, lg)
	l.Deliveries = delivery.NewService(delivery.Deps{
		Repo:          deliveryPostgres.NewDeliveryRepository(db),
		Beneficiaries: l.Beneficiaries,
		Programs:      l.Programs,
		Actors:        l.Users,
		Events:        l.Events,
	}, lg)

	admin, err := l.provision("admin", "Administrator")
	if err != nil {
		return nil, err
	}
	assistant, err := l.provision("assistant", "Assistant")
	if err != nil {
		return nil, err
	}
	l.Admin, l.Assistant = admin, assistant
	return l, nil
}

func (l *Ledger) provision(username, role string) (errors.Actor, error) {
	u, err := l.Users.Provision(context.Background(), user.ProvisionDTO{
		Username: username,
		FullName: username,
		Password: username + "-password",
		Role:     role,
	})
	if err != nil {
		return errors.Actor{}, err
	}
	return errors.Actor{UserID: u.ID, Username: u.Username, Role: string(u.Role)}, nil
}

// Stock donates qty units of product into a new program from a new donor and
// returns the program id.
func (l *Ledger) Stock(product string, qty int64, unitValue string) (int64, error) {
	ctx := context.Background()
	p, err := l.Programs.CreateProgram(ctx, program.CreateProgramDTO{Name: "Program for " + product})
	if err != nil {
		return 0, err
	}
	d, err := l.Donors.RegisterDonor(ctx, donor.RegisterDonorDTO{FullName: "Donor of " + product, DonorType: "CORPORATE"})
	if err != nil {
		return 0, err
	}
	_, err = l.Donations.RecordProductDonation(ctx, donation.ProductDonationDTO{
		DonorID:            d.ID,
		ProgramID:          p.ID,
		ProductDescription: product,
		Quantity:           qty,
		UnitValue:          decimal.RequireFromString(unitValue),
	}, l.Admin)
	if err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (l *Ledger) Beneficiary(name string) (int64, error) {
	b, err := l.Beneficiaries.RegisterBeneficiary(context.Background(), beneficiary.RegisterBeneficiaryDTO{
		FullName: name,
		Address:  "Av. Central 100",
	})
	if err != nil {
		return 0, err
	}
	return b.ID, nil
}

// Recorder is a synchronous events.Publisher that keeps what it was given.
type Recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *Recorder) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *Recorder) OfType(eventType string) []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []events.Event
	for _, e := range r.events {
		if e.EventType() == eventType {
			out = append(out, e)
		}
	}
	return out
}

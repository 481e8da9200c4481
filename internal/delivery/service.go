package delivery

import (
	"context"
	"log/slog"
	"strings"
	"time"

	errors "github.com/frahmantamala/hopecare/internal"
	"github.com/frahmantamala/hopecare/internal/beneficiary"
	"github.com/frahmantamala/hopecare/internal/core/codes"
	deliveryDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/delivery"
	"github.com/frahmantamala/hopecare/internal/core/dberr"
	"github.com/frahmantamala/hopecare/internal/core/events"
	"github.com/frahmantamala/hopecare/internal/inventory"
	"github.com/frahmantamala/hopecare/internal/program"
	"github.com/frahmantamala/hopecare/internal/user"
	"github.com/frahmantamala/hopecare/pkg/metrics"
	"github.com/shopspring/decimal"
)

// DefaultRetries is how often a transaction aborted by a serialization
// failure or deadlock is re-run before the delivery fails.
const DefaultRetries = 3

// StockTx is the store as seen from inside a delivery transaction.
type StockTx interface {
	Tally(programID int64, product string) (inventory.Tally, error)
	Insert(d *deliveryDatamodel.Delivery) error
}

// RepositoryAPI runs fn in one transaction holding the stock lock for the
// (program, product) key. Returning an error from fn rolls everything back.
type RepositoryAPI interface {
	WithStockLock(ctx context.Context, programID int64, product string, fn func(tx StockTx) error) error
	List(ctx context.Context) ([]*deliveryDatamodel.Delivery, error)
}

type BeneficiaryResolver interface {
	ResolveActive(ctx context.Context, id int64) (*beneficiary.Beneficiary, error)
}

type ProgramResolver interface {
	ResolveActive(ctx context.Context, id int64) (*program.Program, error)
}

type ActorResolver interface {
	ResolveActor(ctx context.Context, actor errors.Actor) (*user.User, error)
}

type Deps struct {
	Repo          RepositoryAPI
	Beneficiaries BeneficiaryResolver
	Programs      ProgramResolver
	Actors        ActorResolver
	Events        events.Publisher
	Metrics       *metrics.Ledger
	Retries       int
}

type Service struct {
	Deps
	logger *slog.Logger
	now    func() time.Time
}

func NewService(deps Deps, logger *slog.Logger) *Service {
	if deps.Retries <= 0 {
		deps.Retries = DefaultRetries
	}
	return &Service{
		Deps:   deps,
		logger: logger,
		now:    time.Now,
	}
}

// PerformDelivery debits stock for one (program, product) key. The
// availability check and the insert happen in the same transaction, so two
// deliveries on one key can never both spend the same units.
func (s *Service) PerformDelivery(ctx context.Context, dto PerformDeliveryDTO, actor errors.Actor) (*Delivery, error) {
	if err := s.checkPreconditions(ctx, dto, actor); err != nil {
		if !errors.IsStoreFailure(err) {
			s.Metrics.DeliveryOutcome("rejected")
		}
		return nil, err
	}
	product := strings.TrimSpace(dto.ProductDescription)

	var (
		row *deliveryDatamodel.Delivery
		err error
	)
	for attempt := 1; ; attempt++ {
		row, err = s.attempt(ctx, dto, product, actor.UserID)
		if err == nil || !dberr.IsRetryable(err) || attempt > s.Retries {
			break
		}
		s.Metrics.DeliveryRetried()
		s.logger.WarnContext(ctx, "delivery transaction aborted, retrying",
			"attempt", attempt,
			"program_id", dto.ProgramID,
			"product", product,
			"error", err)
	}

	if err != nil {
		if shortage, ok := errors.AsInsufficientStock(err); ok {
			s.Metrics.DeliveryOutcome("insufficient_stock")
			s.logger.InfoContext(ctx, "delivery rejected for insufficient stock",
				"program_id", dto.ProgramID,
				"product", product,
				"requested", shortage.Requested,
				"available", shortage.Available)
			return nil, err
		}
		s.Metrics.DeliveryOutcome("failed")
		s.logger.ErrorContext(ctx, "failed to perform delivery",
			"program_id", dto.ProgramID,
			"product", product,
			"error", err)
		return nil, errors.WrapStore(err)
	}

	d := FromDataModel(row)
	s.Metrics.DeliveryOutcome("completed")
	s.logger.InfoContext(ctx, "delivery completed",
		"delivery_id", d.ID,
		"code", d.Code,
		"program_id", d.ProgramID,
		"product", d.ProductDescription,
		"quantity", d.Quantity)

	if s.Events != nil {
		evt := events.NewDeliveryCompletedEvent(d.ID, d.Code, d.BeneficiaryID, d.ProgramID,
			d.ProductDescription, d.Quantity, d.TotalValue, d.CreatedBy)
		if err := s.Events.Publish(ctx, evt); err != nil {
			s.logger.WarnContext(ctx, "failed to publish delivery event", "delivery_id", d.ID, "error", err)
		}
	}
	return d, nil
}

func (s *Service) ListDeliveries(ctx context.Context) ([]*Delivery, error) {
	rows, err := s.Repo.List(ctx)
	if err != nil {
		return nil, errors.WrapStore(err)
	}
	out := make([]*Delivery, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) checkPreconditions(ctx context.Context, dto PerformDeliveryDTO, actor errors.Actor) error {
	if err := dto.Validate(); err != nil {
		return err
	}
	if _, err := s.Actors.ResolveActor(ctx, actor); err != nil {
		return err
	}
	if _, err := s.Beneficiaries.ResolveActive(ctx, dto.BeneficiaryID); err != nil {
		return invalidReference(err, "beneficiary_id", "beneficiary does not exist or is inactive", errors.ErrCodeInvalidBeneficiary)
	}
	if _, err := s.Programs.ResolveActive(ctx, dto.ProgramID); err != nil {
		return invalidReference(err, "program_id", "program does not exist or is inactive", errors.ErrCodeInvalidProgram)
	}
	return nil
}

func (s *Service) attempt(ctx context.Context, dto PerformDeliveryDTO, product string, actorID int64) (*deliveryDatamodel.Delivery, error) {
	var row *deliveryDatamodel.Delivery
	err := s.Repo.WithStockLock(ctx, dto.ProgramID, product, func(tx StockTx) error {
		tally, err := tx.Tally(dto.ProgramID, product)
		if err != nil {
			return err
		}
		available := tally.Available()
		if dto.Quantity > available {
			return errors.NewInsufficientStockError(dto.Quantity, max(available, 0))
		}

		unit := tally.UnitValue()
		now := s.now().UTC()
		row = &deliveryDatamodel.Delivery{
			Code:               codes.New(codes.PrefixDelivery),
			BeneficiaryID:      dto.BeneficiaryID,
			ProgramID:          dto.ProgramID,
			ProductDescription: product,
			Quantity:           dto.Quantity,
			UnitValue:          unit,
			TotalValue:         unit.Mul(decimal.NewFromInt(dto.Quantity)),
			Status:             string(StatusCompleted),
			Notes:              strings.TrimSpace(dto.Notes),
			CreatedBy:          actorID,
			DeliveryDate:       deliveryDate(dto.DeliveryDate, now),
			CreatedAt:          now,
		}
		return tx.Insert(row)
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func deliveryDate(given *time.Time, now time.Time) time.Time {
	if given == nil || given.IsZero() {
		return now
	}
	return given.UTC()
}

func invalidReference(err error, field, message string, code errors.ErrorCode) error {
	if errors.IsNotFound(err) {
		return errors.NewValidationFieldError(field, message, code)
	}
	return errors.WrapStore(err)
}

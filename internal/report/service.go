package report

import (
	"context"
	"log/slog"
	"time"

	errors "github.com/frahmantamala/hopecare/internal"
	"github.com/frahmantamala/hopecare/internal/currency"
	"github.com/frahmantamala/hopecare/internal/inventory"
)

type RepositoryAPI interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

// StockClassifier applies the configured low stock threshold.
type StockClassifier interface {
	StockStatus(p inventory.Position) inventory.Status
}

type Service struct {
	repo   RepositoryAPI
	stock  StockClassifier
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, stock StockClassifier, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		stock:  stock,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) DashboardMetrics(ctx context.Context) (Metrics, error) {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to read ledger snapshot", "error", err)
		return Metrics{}, errors.WrapStore(err)
	}
	totals := snap.Totals

	m := Metrics{
		TotalDonors:         totals.ActiveDonors,
		TotalBeneficiaries:  totals.ActiveBeneficiaries,
		ActivePrograms:      totals.ActivePrograms,
		TotalDonations:      totals.Donations,
		TotalDonationValue:  totals.DonationValue.Round(2),
		TotalDeliveries:     totals.Deliveries,
		TotalDeliveryValue:  totals.DeliveryValue.Round(2),
		BeneficiariesServed: totals.BeneficiariesServed,
		InventoryItems:      len(snap.Positions),
		BaseCurrency:        currency.BaseCode,
		GeneratedAt:         s.now().UTC(),
	}
	for _, p := range snap.Positions {
		switch s.stock.StockStatus(p) {
		case inventory.StatusLow:
			m.LowStockItems++
		case inventory.StatusOutOfStock:
			m.OutOfStockItems++
		}
	}
	return m, nil
}

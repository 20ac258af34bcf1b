package service

import (
	"context"
	"errors"
	"time"

	"github.com/cafestock/cafestock-backend/internal/inventory/domain"
	"github.com/cafestock/cafestock-backend/internal/inventory/events"
	apperrors "github.com/cafestock/cafestock-backend/pkg/errors"
	"github.com/cafestock/cafestock-backend/pkg/logger"
)

// InventoryService evaluates caller-supplied inventory snapshots
type InventoryService struct {
	expiryWindow time.Duration
	publisher    *events.InventoryEventPublisher
	logger       *logger.Logger
	now          func() time.Time
}

// NewInventoryService creates a new inventory service.
// A nil publisher disables events; a nil clock uses time.Now.
func NewInventoryService(
	expiryWindow time.Duration,
	publisher *events.InventoryEventPublisher,
	log *logger.Logger,
	now func() time.Time,
) *InventoryService {
	if expiryWindow <= 0 {
		expiryWindow = domain.DefaultExpiryWindow
	}
	if now == nil {
		now = time.Now
	}
	return &InventoryService{
		expiryWindow: expiryWindow,
		publisher:    publisher,
		logger:       log.WithComponent("inventory"),
		now:          now,
	}
}

// Statuses returns a copy of items with status recomputed
func (s *InventoryService) Statuses(items []domain.InventoryItem) []domain.InventoryItem {
	return domain.RefreshStatuses(items, s.now())
}

// Alerts derives the current alerts for items
func (s *InventoryService) Alerts(items []domain.InventoryItem) []domain.StockAlert {
	return domain.DeriveAlertsWithin(items, s.now(), s.expiryWindow)
}

// Stats aggregates dashboard statistics for items
func (s *InventoryService) Stats(items []domain.InventoryItem) domain.InventoryStats {
	return domain.ComputeStatsWithin(items, s.now(), s.expiryWindow)
}

// MovementResult is an item after a movement, with the alerts the movement raised
type MovementResult struct {
	Item      domain.InventoryItem `json:"item"`
	NewAlerts []domain.StockAlert  `json:"newAlerts"`
}

// ApplyMovement applies movement to item and publishes the stock change.
// Alerts present after but not before the movement are published too.
func (s *InventoryService) ApplyMovement(ctx context.Context, item domain.InventoryItem, movement domain.StockMovement) (*MovementResult, error) {
	now := s.now()

	updated, err := domain.ApplyMovement(item, movement, now)
	if err != nil {
		if errors.Is(err, domain.ErrItemMismatch) {
			return nil, apperrors.BadRequest(err.Error())
		}
		return nil, err
	}

	before := make(map[string]bool)
	for _, a := range domain.DeriveAlertsWithin([]domain.InventoryItem{item}, now, s.expiryWindow) {
		before[a.ID] = true
	}

	raised := []domain.StockAlert{}
	for _, a := range domain.DeriveAlertsWithin([]domain.InventoryItem{updated}, now, s.expiryWindow) {
		if !before[a.ID] {
			raised = append(raised, a)
		}
	}

	s.publisher.PublishStockAdjusted(ctx, updated, movement)
	for _, a := range raised {
		s.publisher.PublishAlertGenerated(ctx, a)
	}

	s.logger.Info().
		Str("item_id", updated.ID).
		Str("movement_type", string(movement.Type)).
		Float64("quantity", movement.Quantity).
		Float64("new_stock", updated.CurrentStock).
		Str("status", string(updated.Status)).
		Int("alerts_raised", len(raised)).
		Msg("movement applied")

	return &MovementResult{Item: updated, NewAlerts: raised}, nil
}

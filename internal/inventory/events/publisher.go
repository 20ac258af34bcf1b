package events

import (
	"context"

	"github.com/cafestock/cafestock-backend/internal/inventory/domain"
	"github.com/cafestock/cafestock-backend/internal/inventory/export"
	"github.com/cafestock/cafestock-backend/pkg/logger"
	"github.com/cafestock/cafestock-backend/pkg/messaging"
)

// Sink is where encoded events go; *messaging.Publisher satisfies it
type Sink interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// InventoryEventPublisher publishes inventory-related events.
// A nil publisher drops every event, so callers need no broker to run.
type InventoryEventPublisher struct {
	sink   Sink
	logger *logger.Logger
}

// NewInventoryEventPublisher creates a publisher on the given exchange
func NewInventoryEventPublisher(rmq *messaging.RabbitMQ, exchange string, log *logger.Logger) (*InventoryEventPublisher, error) {
	if exchange == "" {
		exchange = messaging.ExchangeInventoryEvents
	}

	publisher, err := messaging.NewPublisher(rmq, exchange, "inventory-service", log)
	if err != nil {
		return nil, err
	}

	return NewWithSink(publisher, log), nil
}

// NewWithSink creates a publisher writing to sink
func NewWithSink(sink Sink, log *logger.Logger) *InventoryEventPublisher {
	return &InventoryEventPublisher{sink: sink, logger: log}
}

// PublishStockAdjusted publishes a stock adjusted event
func (p *InventoryEventPublisher) PublishStockAdjusted(ctx context.Context, item domain.InventoryItem, movement domain.StockMovement) {
	if p == nil {
		return
	}

	data := messaging.StockAdjustedEvent{
		ItemID:       item.ID,
		MovementID:   movement.ID,
		MovementType: string(movement.Type),
		Quantity:     movement.Quantity,
		NewStock:     item.CurrentStock,
		Status:       string(item.Status),
		StaffID:      movement.StaffID,
		Reason:       movement.Reason,
	}

	if err := p.sink.Publish(ctx, messaging.EventStockAdjusted, data); err != nil {
		p.logger.Error().Err(err).Str("item_id", item.ID).Msg("failed to publish stock adjusted event")
	}
}

// PublishAlertGenerated publishes an alert generated event
func (p *InventoryEventPublisher) PublishAlertGenerated(ctx context.Context, alert domain.StockAlert) {
	if p == nil {
		return
	}

	data := messaging.AlertGeneratedEvent{
		AlertID:   alert.ID,
		AlertType: string(alert.Type),
		Severity:  string(alert.Severity),
		Message:   alert.Message,
		ItemID:    alert.InventoryItemID,
	}

	if err := p.sink.Publish(ctx, messaging.EventAlertGenerated, data); err != nil {
		p.logger.Error().Err(err).Str("alert_id", alert.ID).Msg("failed to publish alert generated event")
	}
}

// PublishReportExported publishes a report exported event
func (p *InventoryEventPublisher) PublishReportExported(ctx context.Context, doc *export.Document, requestedBy string) {
	if p == nil {
		return
	}

	data := messaging.ReportExportedEvent{
		Kind:        string(doc.Kind),
		Filename:    doc.Filename,
		DataRows:    doc.Table.DataRows(),
		Bytes:       len(doc.Content),
		RequestedBy: requestedBy,
	}

	if err := p.sink.Publish(ctx, messaging.EventReportExported, data); err != nil {
		p.logger.Error().Err(err).Str("filename", doc.Filename).Msg("failed to publish report exported event")
	}
}

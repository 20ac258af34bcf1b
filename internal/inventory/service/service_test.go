package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafestock/cafestock-backend/internal/inventory/domain"
	"github.com/cafestock/cafestock-backend/internal/inventory/events"
	"github.com/cafestock/cafestock-backend/internal/inventory/export"
	"github.com/cafestock/cafestock-backend/internal/inventory/service"
	"github.com/cafestock/cafestock-backend/pkg/errors"
	"github.com/cafestock/cafestock-backend/pkg/logger"
	"github.com/cafestock/cafestock-backend/pkg/messaging"
)

var now = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

type recordingSink struct {
	types []string
}

func (s *recordingSink) Publish(_ context.Context, eventType string, _ interface{}) error {
	s.types = append(s.types, eventType)
	return nil
}

func newPublisher() (*events.InventoryEventPublisher, *recordingSink) {
	sink := &recordingSink{}
	return events.NewWithSink(sink, logger.Nop()), sink
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func newItem(id string, current, min, max float64) domain.InventoryItem {
	return domain.InventoryItem{
		ID:            id,
		Name:          "Espresso Beans " + id,
		Category:      "Coffee",
		Supplier:      "Acme",
		Unit:          "bags",
		CurrentStock:  current,
		MinStockLevel: min,
		MaxStockLevel: max,
		CostPerUnit:   12,
		LastRestocked: now.AddDate(0, 0, -3),
	}
}

// --- InventoryService ---

func TestInventoryService_Views(t *testing.T) {
	svc := service.NewInventoryService(24*time.Hour, nil, logger.Nop(), clock)

	soon := newItem("soon", 10, 2, 20)
	soon.ExpiryDate = timePtr(now.Add(36 * time.Hour))
	items := []domain.InventoryItem{newItem("low", 1, 2, 20), soon}

	statuses := svc.Statuses(items)
	assert.Equal(t, domain.StatusLowStock, statuses[0].Status)
	assert.Equal(t, domain.StatusInStock, statuses[1].Status)

	// 36h is outside the configured 24h window
	alerts := svc.Alerts(items)
	require.Len(t, alerts, 1)
	assert.Equal(t, domain.AlertLowStock, alerts[0].Type)

	stats := svc.Stats(items)
	assert.Equal(t, 2, stats.TotalItems)
	assert.Equal(t, 1, stats.LowStockItems)
	assert.Equal(t, 0, stats.ExpiringItems)
	assert.Equal(t, 132.0, stats.TotalValue)
}

func TestInventoryService_ApplyMovement(t *testing.T) {
	publisher, sink := newPublisher()
	svc := service.NewInventoryService(0, publisher, logger.Nop(), clock)

	t.Run("usage raises low stock alert", func(t *testing.T) {
		sink.types = nil
		movement := domain.StockMovement{ID: "m1", InventoryItemID: "a", Type: domain.MovementUsage, Quantity: -8, Timestamp: now}

		result, err := svc.ApplyMovement(context.Background(), newItem("a", 10, 5, 20), movement)
		require.NoError(t, err)

		assert.Equal(t, 2.0, result.Item.CurrentStock)
		assert.Equal(t, domain.StatusLowStock, result.Item.Status)
		require.Len(t, result.NewAlerts, 1)
		assert.Equal(t, "a-low_stock", result.NewAlerts[0].ID)
		assert.Equal(t, []string{messaging.EventStockAdjusted, messaging.EventAlertGenerated}, sink.types)
	})

	t.Run("alert already present is not raised again", func(t *testing.T) {
		sink.types = nil
		movement := domain.StockMovement{ID: "m2", InventoryItemID: "a", Type: domain.MovementWaste, Quantity: -1, Timestamp: now}

		result, err := svc.ApplyMovement(context.Background(), newItem("a", 3, 5, 20), movement)
		require.NoError(t, err)
		assert.Empty(t, result.NewAlerts)
		assert.Equal(t, []string{messaging.EventStockAdjusted}, sink.types)
	})

	t.Run("mismatched item is a bad request", func(t *testing.T) {
		movement := domain.StockMovement{ID: "m3", InventoryItemID: "other", Type: domain.MovementRestock, Quantity: 1}

		_, err := svc.ApplyMovement(context.Background(), newItem("a", 3, 5, 20), movement)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrBadRequest))
	})
}

// --- ExportService ---

func newExportService(publisher *events.InventoryEventPublisher) *service.ExportService {
	return service.NewExportService(service.ExportSettings{
		Location: time.UTC,
		Locale:   "en",
	}, publisher, logger.Nop(), clock)
}

func capture(docs *[]*export.Document) export.Delivery {
	return export.DeliveryFunc(func(_ context.Context, doc *export.Document) error {
		*docs = append(*docs, doc)
		return nil
	})
}

func TestExportService_DeliversOnceAndPublishes(t *testing.T) {
	publisher, sink := newPublisher()
	svc := newExportService(publisher)

	var delivered []*export.Document
	doc, err := svc.Export(context.Background(), service.ExportRequest{
		Request: export.Request{
			Kind:    export.KindInventory,
			Items:   []domain.InventoryItem{newItem("a", 10, 5, 20)},
			Options: export.DefaultOptions(),
		},
		RequestedBy: "staff-1",
	}, capture(&delivered))

	require.NoError(t, err)
	require.Len(t, delivered, 1)
	assert.Same(t, doc, delivered[0])
	assert.Equal(t, "inventory_export_2024-03-15T10-00-00.csv", doc.Filename)
	assert.Equal(t, []string{messaging.EventReportExported}, sink.types)
}

func TestExportService_DeliveryFailure(t *testing.T) {
	publisher, sink := newPublisher()
	svc := newExportService(publisher)

	calls := 0
	failing := export.DeliveryFunc(func(context.Context, *export.Document) error {
		calls++
		return assert.AnError
	})

	_, err := svc.Export(context.Background(), service.ExportRequest{
		Request: export.Request{Kind: export.KindLowStock, Options: export.DefaultOptions()},
	}, failing)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDelivery))
	assert.Equal(t, 1, calls)
	assert.Empty(t, sink.types)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "DELIVERY_FAILED", appErr.Code)
}

func TestExportService_BuildErrorsSkipDelivery(t *testing.T) {
	svc := newExportService(nil)

	var delivered []*export.Document
	_, err := svc.Export(context.Background(), service.ExportRequest{
		Request: export.Request{Kind: "weekly"},
	}, capture(&delivered))

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	assert.Empty(t, delivered)
}

func TestExportService_MovementDateRange(t *testing.T) {
	svc := newExportService(nil)
	items := []domain.InventoryItem{newItem("a", 10, 5, 20)}
	movements := []domain.StockMovement{
		{ID: "before", InventoryItemID: "a", Type: domain.MovementUsage, Quantity: -1, Timestamp: time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)},
		{ID: "first", InventoryItemID: "a", Type: domain.MovementUsage, Quantity: -2, Timestamp: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)},
		{ID: "last", InventoryItemID: "a", Type: domain.MovementUsage, Quantity: -3, Timestamp: time.Date(2024, 3, 12, 23, 59, 59, 0, time.UTC)},
		{ID: "after", InventoryItemID: "a", Type: domain.MovementUsage, Quantity: -4, Timestamp: time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)},
	}

	doc, err := svc.Build(service.ExportRequest{
		Request: export.Request{
			Kind:      export.KindMovements,
			Items:     items,
			Movements: movements,
			Options:   export.DefaultOptions(),
		},
		StartDate: timePtr(time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)),
		EndDate:   timePtr(time.Date(2024, 3, 12, 8, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	require.Equal(t, 2, doc.Table.DataRows())
	assert.Equal(t, "-2", doc.Table.Rows[0].Cells[3])
	assert.Equal(t, "-3", doc.Table.Rows[1].Cells[3])
}

func TestExportService_AlertsFallback(t *testing.T) {
	svc := newExportService(nil)
	items := []domain.InventoryItem{newItem("a", 0, 5, 20), newItem("b", 15, 5, 20)}

	doc, err := svc.Build(service.ExportRequest{
		Request: export.Request{Kind: export.KindAlerts, Items: items, Options: export.DefaultOptions()},
	})
	require.NoError(t, err)

	require.Equal(t, 1, doc.Table.DataRows())
	assert.Equal(t, "a-out_of_stock", doc.Table.Rows[0].Cells[0])
	assert.Equal(t, "3/15/2024", doc.Table.Rows[0].Cells[5])
}

func TestExportService_LocaleOverride(t *testing.T) {
	svc := newExportService(nil)

	doc, err := svc.Build(service.ExportRequest{
		Request: export.Request{
			Kind:    export.KindInventory,
			Items:   []domain.InventoryItem{newItem("a", 10, 5, 20)},
			Options: export.DefaultOptions(),
		},
		Locale: "de",
	})
	require.NoError(t, err)
	assert.Equal(t, "12.03.2024", doc.Table.Rows[0].Cells[13])
}

func TestParseDay(t *testing.T) {
	cet := time.FixedZone("CET", 3600)

	day, err := service.ParseDay("2024-03-10", cet)
	require.NoError(t, err)
	assert.True(t, day.Equal(time.Date(2024, 3, 10, 0, 0, 0, 0, cet)))

	instant, err := service.ParseDay("2024-03-10T15:04:05Z", cet)
	require.NoError(t, err)
	assert.True(t, instant.Equal(time.Date(2024, 3, 10, 15, 4, 5, 0, time.UTC)))

	open, err := service.ParseDay("", cet)
	require.NoError(t, err)
	assert.Nil(t, open)

	_, err = service.ParseDay("10/03/2024", cet)
	assert.True(t, errors.Is(err, errors.ErrBadRequest))
}

package domain_test

import (
	"testing"
	"time"

	"github.com/cafestock/cafestock-backend/internal/inventory/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time {
	return &t
}

func newItem(id string, current, min, max float64) domain.InventoryItem {
	return domain.InventoryItem{
		ID:            id,
		Name:          "Oat Milk " + id,
		Category:      "Dairy Alternatives",
		Supplier:      "Acme",
		Unit:          "cartons",
		CurrentStock:  current,
		MinStockLevel: min,
		MaxStockLevel: max,
		CostPerUnit:   2.5,
		LastRestocked: now.AddDate(0, 0, -7),
	}
}

// --- ClassifyStatus ---

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name   string
		stock  float64
		min    float64
		expiry *time.Time
		want   domain.Status
	}{
		{name: "in stock above min", stock: 20, min: 10, want: domain.StatusInStock},
		{name: "low stock at min", stock: 10, min: 10, want: domain.StatusLowStock},
		{name: "low stock below min", stock: 3, min: 10, want: domain.StatusLowStock},
		{name: "out of stock at zero", stock: 0, min: 10, want: domain.StatusOutOfStock},
		{name: "out of stock when negative", stock: -2, min: 10, want: domain.StatusOutOfStock},
		{name: "expired beats out of stock", stock: 0, min: 10, expiry: timePtr(now.Add(-time.Hour)), want: domain.StatusExpired},
		{name: "expired beats in stock", stock: 50, min: 10, expiry: timePtr(now.Add(-time.Minute)), want: domain.StatusExpired},
		{name: "future expiry does not expire", stock: 50, min: 10, expiry: timePtr(now.Add(time.Hour)), want: domain.StatusInStock},
		{name: "expiry exactly now is not expired", stock: 50, min: 10, expiry: timePtr(now), want: domain.StatusInStock},
		{name: "zero min with stock is in stock", stock: 1, min: 0, want: domain.StatusInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := newItem("1", tt.stock, tt.min, 100)
			item.ExpiryDate = tt.expiry
			assert.Equal(t, tt.want, domain.ClassifyStatus(item, now))
		})
	}
}

func TestClassifyStatus_IgnoresStoredStatus(t *testing.T) {
	item := newItem("1", 0, 10, 20)
	item.Status = domain.StatusInStock

	assert.Equal(t, domain.StatusOutOfStock, domain.ClassifyStatus(item, now))
}

func TestRefreshStatuses_DoesNotMutateInput(t *testing.T) {
	items := []domain.InventoryItem{newItem("1", 0, 10, 20), newItem("2", 15, 10, 20)}
	items[0].Status = domain.StatusInStock

	refreshed := domain.RefreshStatuses(items, now)

	assert.Equal(t, domain.StatusInStock, items[0].Status)
	assert.Equal(t, domain.StatusOutOfStock, refreshed[0].Status)
	assert.Equal(t, domain.StatusInStock, refreshed[1].Status)
}

// --- DeriveAlerts ---

func TestDeriveAlerts_OutOfStockNoExpiry(t *testing.T) {
	alerts := domain.DeriveAlerts([]domain.InventoryItem{newItem("1", 0, 10, 20)}, now)

	require.Len(t, alerts, 1)
	assert.Equal(t, domain.AlertOutOfStock, alerts[0].Type)
	assert.Equal(t, domain.SeverityCritical, alerts[0].Severity)
	assert.Equal(t, "1-out_of_stock", alerts[0].ID)
	assert.False(t, alerts[0].Acknowledged)
	assert.Equal(t, now, alerts[0].CreatedAt)
}

func TestDeriveAlerts_ExpiredAndOutOfStock(t *testing.T) {
	item := newItem("1", 0, 10, 20)
	item.ExpiryDate = timePtr(now.AddDate(0, 0, -1))

	alerts := domain.DeriveAlerts([]domain.InventoryItem{item}, now)

	require.Len(t, alerts, 2)
	assert.Equal(t, domain.AlertOutOfStock, alerts[0].Type)
	assert.Equal(t, domain.AlertExpired, alerts[1].Type)
	assert.Equal(t, domain.SeverityCritical, alerts[1].Severity)
}

func TestDeriveAlerts_LowStockMessageIncludesQuantityAndUnit(t *testing.T) {
	alerts := domain.DeriveAlerts([]domain.InventoryItem{newItem("7", 4, 10, 20)}, now)

	require.Len(t, alerts, 1)
	assert.Equal(t, domain.AlertLowStock, alerts[0].Type)
	assert.Equal(t, domain.SeverityHigh, alerts[0].Severity)
	assert.Contains(t, alerts[0].Message, "4 cartons")
}

func TestDeriveAlerts_ExpiringSoon(t *testing.T) {
	item := newItem("1", 50, 10, 100)
	item.ExpiryDate = timePtr(now.Add(48 * time.Hour))

	alerts := domain.DeriveAlerts([]domain.InventoryItem{item}, now)

	require.Len(t, alerts, 1)
	assert.Equal(t, domain.AlertExpiringSoon, alerts[0].Type)
	assert.Equal(t, domain.SeverityMedium, alerts[0].Severity)
	assert.Contains(t, alerts[0].Message, "Mar 17, 2024")
}

func TestDeriveAlerts_ExpiryOutsideWindow(t *testing.T) {
	item := newItem("1", 50, 10, 100)
	item.ExpiryDate = timePtr(now.Add(72 * time.Hour))

	assert.Empty(t, domain.DeriveAlerts([]domain.InventoryItem{item}, now))
}

func TestDeriveAlerts_OrderFollowsItems(t *testing.T) {
	expiring := newItem("b", 5, 10, 20)
	expiring.ExpiryDate = timePtr(now.Add(time.Hour))
	items := []domain.InventoryItem{newItem("a", 0, 1, 2), newItem("ok", 50, 1, 100), expiring}

	alerts := domain.DeriveAlerts(items, now)

	require.Len(t, alerts, 3)
	assert.Equal(t, "a-out_of_stock", alerts[0].ID)
	assert.Equal(t, "b-low_stock", alerts[1].ID)
	assert.Equal(t, "b-expiring_soon", alerts[2].ID)
}

func TestDeriveAlerts_Idempotent(t *testing.T) {
	items := []domain.InventoryItem{newItem("1", 0, 10, 20), newItem("2", 3, 10, 20)}

	assert.Equal(t, domain.DeriveAlerts(items, now), domain.DeriveAlerts(items, now))
}

func TestDeriveAlerts_EmptyInput(t *testing.T) {
	alerts := domain.DeriveAlerts(nil, now)
	assert.NotNil(t, alerts)
	assert.Empty(t, alerts)
}

// --- ComputeStats ---

func TestComputeStats_Empty(t *testing.T) {
	stats := domain.ComputeStats(nil, now)

	assert.Equal(t, 0, stats.TotalItems)
	assert.Equal(t, 0, stats.LowStockItems)
	assert.Equal(t, 0, stats.OutOfStockItems)
	assert.Equal(t, 0, stats.ExpiringItems)
	assert.Equal(t, 0.0, stats.TotalValue)
	assert.Equal(t, now, stats.LastUpdated)
}

func TestComputeStats_Counts(t *testing.T) {
	expiredFull := newItem("3", 40, 10, 50)
	expiredFull.ExpiryDate = timePtr(now.AddDate(0, 0, -2))
	soon := newItem("4", 40, 10, 50)
	soon.ExpiryDate = timePtr(now.AddDate(0, 0, 2))
	later := newItem("5", 40, 10, 50)
	later.ExpiryDate = timePtr(now.AddDate(0, 0, 10))

	items := []domain.InventoryItem{newItem("1", 0, 10, 20), newItem("2", 5, 10, 20), expiredFull, soon, later}
	stats := domain.ComputeStats(items, now)

	assert.Equal(t, 5, stats.TotalItems)
	assert.Equal(t, 1, stats.LowStockItems)
	assert.Equal(t, 1, stats.OutOfStockItems)
	assert.Equal(t, 2, stats.ExpiringItems)
	// (0 + 5 + 40 + 40 + 40) × 2.50
	assert.InDelta(t, 312.5, stats.TotalValue, 1e-9)
}

func TestComputeStats_NegativeStockAddsNoValue(t *testing.T) {
	stats := domain.ComputeStats([]domain.InventoryItem{newItem("1", -5, 10, 20)}, now)
	assert.Equal(t, 0.0, stats.TotalValue)
}

func TestComputeStats_SumsCentRoundedValues(t *testing.T) {
	a := newItem("1", 1.5, 1, 10)
	a.CostPerUnit = 0.33
	b := newItem("2", 1.5, 1, 10)
	b.CostPerUnit = 0.33

	assert.Equal(t, "0.50", domain.ItemValue(a).StringFixed(2))

	stats := domain.ComputeStats([]domain.InventoryItem{a, b}, now)
	assert.Equal(t, 1.0, stats.TotalValue)
}

func TestLineCost(t *testing.T) {
	tests := []struct {
		qty, cost float64
		want      string
	}{
		{1.5, 0.33, "0.50"},
		{3, 0.1, "0.30"},
		{10, 1.25, "12.50"},
		{-2, 1.005, "-2.01"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.LineCost(tt.qty, tt.cost).StringFixed(2))
	}
}

// --- ApplyMovement ---

func TestApplyMovement(t *testing.T) {
	item := newItem("1", 5, 10, 20)

	t.Run("restock adds stock and moves last restocked", func(t *testing.T) {
		ts := now.Add(-time.Hour)
		got, err := domain.ApplyMovement(item, domain.StockMovement{
			ID: "m1", InventoryItemID: "1", Type: domain.MovementRestock, Quantity: 15, Timestamp: ts,
		}, now)
		require.NoError(t, err)
		assert.Equal(t, 20.0, got.CurrentStock)
		assert.Equal(t, ts, got.LastRestocked)
		assert.Equal(t, domain.StatusInStock, got.Status)
	})

	t.Run("usage below zero clamps", func(t *testing.T) {
		got, err := domain.ApplyMovement(item, domain.StockMovement{
			ID: "m2", InventoryItemID: "1", Type: domain.MovementUsage, Quantity: -8, Timestamp: now,
		}, now)
		require.NoError(t, err)
		assert.Equal(t, 0.0, got.CurrentStock)
		assert.Equal(t, item.LastRestocked, got.LastRestocked)
		assert.Equal(t, domain.StatusOutOfStock, got.Status)
	})

	t.Run("wrong item is rejected", func(t *testing.T) {
		_, err := domain.ApplyMovement(item, domain.StockMovement{ID: "m3", InventoryItemID: "2"}, now)
		assert.ErrorIs(t, err, domain.ErrItemMismatch)
	})
}

// --- FilterMovements ---

func TestFilterMovements_InclusiveEndOfDay(t *testing.T) {
	loc := time.UTC
	movements := []domain.StockMovement{
		{ID: "before", Timestamp: time.Date(2024, 3, 9, 23, 59, 59, 0, loc)},
		{ID: "start", Timestamp: time.Date(2024, 3, 10, 0, 0, 0, 0, loc)},
		{ID: "late", Timestamp: time.Date(2024, 3, 12, 23, 59, 59, int(998*time.Millisecond), loc)},
		{ID: "after", Timestamp: time.Date(2024, 3, 13, 0, 0, 0, 0, loc)},
	}
	start := time.Date(2024, 3, 10, 15, 0, 0, 0, loc)
	end := time.Date(2024, 3, 12, 0, 0, 0, 0, loc)

	got := domain.FilterMovements(movements, &start, &end, loc)

	require.Len(t, got, 2)
	assert.Equal(t, "start", got[0].ID)
	assert.Equal(t, "late", got[1].ID)
}

func TestFilterMovements_OpenBounds(t *testing.T) {
	movements := []domain.StockMovement{{ID: "a", Timestamp: now}, {ID: "b", Timestamp: now.AddDate(-1, 0, 0)}}

	assert.Len(t, domain.FilterMovements(movements, nil, nil, time.UTC), 2)

	start := now.AddDate(0, 0, -1)
	got := domain.FilterMovements(movements, &start, nil, time.UTC)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

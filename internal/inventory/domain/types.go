package domain

import (
	"time"
)

// Status is the stock classification of an inventory item
type Status string

const (
	StatusInStock    Status = "in_stock"
	StatusLowStock   Status = "low_stock"
	StatusOutOfStock Status = "out_of_stock"
	StatusExpired    Status = "expired"
)

// MovementType is the kind of a stock movement
type MovementType string

const (
	MovementRestock    MovementType = "restock"
	MovementUsage      MovementType = "usage"
	MovementWaste      MovementType = "waste"
	MovementAdjustment MovementType = "adjustment"
)

// AlertType is the kind of a stock alert
type AlertType string

const (
	AlertLowStock     AlertType = "low_stock"
	AlertOutOfStock   AlertType = "out_of_stock"
	AlertExpiringSoon AlertType = "expiring_soon"
	AlertExpired      AlertType = "expired"
)

// Severity ranks how urgent an alert is
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// DefaultExpiryWindow is how far ahead an expiry date counts as "expiring soon"
const DefaultExpiryWindow = 3 * 24 * time.Hour

// InventoryItem represents a stocked product.
// Status is a stored hint only; use ClassifyStatus before relying on it.
type InventoryItem struct {
	ID            string     `json:"id" yaml:"id" validate:"required"`
	Name          string     `json:"name" yaml:"name" validate:"required"`
	Category      string     `json:"category" yaml:"category"`
	Supplier      string     `json:"supplier" yaml:"supplier"`
	Unit          string     `json:"unit" yaml:"unit"`
	Location      *string    `json:"location,omitempty" yaml:"location,omitempty"`
	Barcode       *string    `json:"barcode,omitempty" yaml:"barcode,omitempty"`
	Description   *string    `json:"description,omitempty" yaml:"description,omitempty"`
	CurrentStock  float64    `json:"currentStock" yaml:"currentStock"`
	MinStockLevel float64    `json:"minStockLevel" yaml:"minStockLevel"`
	MaxStockLevel float64    `json:"maxStockLevel" yaml:"maxStockLevel"`
	CostPerUnit   float64    `json:"costPerUnit" yaml:"costPerUnit" validate:"gte=0"`
	LastRestocked time.Time  `json:"lastRestocked" yaml:"lastRestocked"`
	ExpiryDate    *time.Time `json:"expiryDate,omitempty" yaml:"expiryDate,omitempty"`
	Status        Status     `json:"status,omitempty" yaml:"status,omitempty"`
}

// StockMovement is an immutable entry in the stock movement log
type StockMovement struct {
	ID              string       `json:"id" yaml:"id" validate:"required"`
	InventoryItemID string       `json:"inventoryItemId" yaml:"inventoryItemId" validate:"required"`
	Type            MovementType `json:"type" yaml:"type" validate:"required,oneof=restock usage waste adjustment"`
	Quantity        float64      `json:"quantity" yaml:"quantity"`
	Reason          string       `json:"reason" yaml:"reason"`
	StaffID         string       `json:"staffId" yaml:"staffId"`
	Timestamp       time.Time    `json:"timestamp" yaml:"timestamp"`
	Cost            *float64     `json:"cost,omitempty" yaml:"cost,omitempty"`
	Supplier        *string      `json:"supplier,omitempty" yaml:"supplier,omitempty"`
	Notes           *string      `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// StockAlert is a derived alert for one item and one alert type
type StockAlert struct {
	ID              string     `json:"id" yaml:"id"`
	InventoryItemID string     `json:"inventoryItemId" yaml:"inventoryItemId"`
	Type            AlertType  `json:"type" yaml:"type"`
	Message         string     `json:"message" yaml:"message"`
	Severity        Severity   `json:"severity" yaml:"severity"`
	CreatedAt       time.Time  `json:"createdAt" yaml:"createdAt"`
	Acknowledged    bool       `json:"acknowledged" yaml:"acknowledged"`
	AcknowledgedBy  *string    `json:"acknowledgedBy,omitempty" yaml:"acknowledgedBy,omitempty"`
	AcknowledgedAt  *time.Time `json:"acknowledgedAt,omitempty" yaml:"acknowledgedAt,omitempty"`
}

// InventoryStats is the summary of an item collection at one instant
type InventoryStats struct {
	TotalItems      int       `json:"totalItems"`
	LowStockItems   int       `json:"lowStockItems"`
	OutOfStockItems int       `json:"outOfStockItems"`
	ExpiringItems   int       `json:"expiringItems"`
	TotalValue      float64   `json:"totalValue"`
	LastUpdated     time.Time `json:"lastUpdated"`
}

// AlertID returns the deterministic identity of an alert for an item and type
func AlertID(itemID string, alertType AlertType) string {
	return itemID + "-" + string(alertType)
}

// IndexItems maps item IDs to items for joins
func IndexItems(items []InventoryItem) map[string]*InventoryItem {
	index := make(map[string]*InventoryItem, len(items))
	for i := range items {
		index[items[i].ID] = &items[i]
	}
	return index
}

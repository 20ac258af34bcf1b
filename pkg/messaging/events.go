package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	EventStockAdjusted  = "inventory.stock.adjusted"
	EventAlertGenerated = "inventory.alert.generated"
	EventReportExported = "inventory.report.exported"
)

// ExchangeInventoryEvents is the default exchange for inventory events
const ExchangeInventoryEvents = "inventory.events"

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            uuid.New().String(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// StockAdjustedEvent is published when a movement is applied to an item
type StockAdjustedEvent struct {
	ItemID       string  `json:"item_id"`
	MovementID   string  `json:"movement_id"`
	MovementType string  `json:"movement_type"`
	Quantity     float64 `json:"quantity"`
	NewStock     float64 `json:"new_stock"`
	Status       string  `json:"status"`
	StaffID      string  `json:"staff_id"`
	Reason       string  `json:"reason,omitempty"`
}

// AlertGeneratedEvent is published for each derived alert
type AlertGeneratedEvent struct {
	AlertID   string `json:"alert_id"`
	AlertType string `json:"alert_type"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	ItemID    string `json:"item_id"`
}

// ReportExportedEvent is published after a report has been delivered
type ReportExportedEvent struct {
	Kind        string `json:"kind"`
	Filename    string `json:"filename"`
	DataRows    int    `json:"data_rows"`
	Bytes       int    `json:"bytes"`
	RequestedBy string `json:"requested_by,omitempty"`
}

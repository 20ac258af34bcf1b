package domain

import (
	"fmt"
	"strconv"
	"time"
)

// DeriveAlerts derives the alerts for items at now using the default expiry window
func DeriveAlerts(items []InventoryItem, now time.Time) []StockAlert {
	return DeriveAlertsWithin(items, now, DefaultExpiryWindow)
}

// DeriveAlertsWithin derives alerts for items at now.
// Alerts follow item order; per item the stock alert precedes the expiry alert.
// Every alert is freshly minted and unacknowledged.
func DeriveAlertsWithin(items []InventoryItem, now time.Time, window time.Duration) []StockAlert {
	alerts := make([]StockAlert, 0)
	soon := now.Add(window)

	for _, item := range items {
		switch StockStatus(item) {
		case StatusOutOfStock:
			alerts = append(alerts, newAlert(item, AlertOutOfStock, SeverityCritical, now,
				fmt.Sprintf("%s is out of stock", item.Name)))
		case StatusLowStock:
			alerts = append(alerts, newAlert(item, AlertLowStock, SeverityHigh, now,
				fmt.Sprintf("%s is running low (%s %s remaining)", item.Name, FormatQuantity(item.CurrentStock), item.Unit)))
		}

		if item.ExpiryDate == nil {
			continue
		}

		if item.ExpiryDate.Before(now) {
			alerts = append(alerts, newAlert(item, AlertExpired, SeverityCritical, now,
				fmt.Sprintf("%s expired on %s", item.Name, item.ExpiryDate.Format("Jan 2, 2006"))))
		} else if item.ExpiryDate.Before(soon) {
			alerts = append(alerts, newAlert(item, AlertExpiringSoon, SeverityMedium, now,
				fmt.Sprintf("%s expires on %s", item.Name, item.ExpiryDate.Format("Jan 2, 2006"))))
		}
	}

	return alerts
}

func newAlert(item InventoryItem, alertType AlertType, severity Severity, now time.Time, message string) StockAlert {
	return StockAlert{
		ID:              AlertID(item.ID, alertType),
		InventoryItemID: item.ID,
		Type:            alertType,
		Message:         message,
		Severity:        severity,
		CreatedAt:       now,
	}
}

// FormatQuantity renders a quantity without trailing zeros, so whole numbers stay bare
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

package domain

import (
	"time"
)

// ClassifyStatus derives the status of an item at now.
// Expired beats out of stock, which beats low stock.
func ClassifyStatus(item InventoryItem, now time.Time) Status {
	switch {
	case item.ExpiryDate != nil && item.ExpiryDate.Before(now):
		return StatusExpired
	case item.CurrentStock <= 0:
		return StatusOutOfStock
	case item.CurrentStock <= item.MinStockLevel:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// StockStatus classifies an item on stock level alone, ignoring expiry.
// An expired item that is also empty yields both an expiry and a stock alert.
func StockStatus(item InventoryItem) Status {
	item.ExpiryDate = nil
	return ClassifyStatus(item, time.Time{})
}

// RefreshStatuses returns a copy of items with every Status recomputed at now
func RefreshStatuses(items []InventoryItem, now time.Time) []InventoryItem {
	result := make([]InventoryItem, len(items))
	for i, item := range items {
		item.Status = ClassifyStatus(item, now)
		result[i] = item
	}
	return result
}

// NeedsReorder reports whether an item belongs on a reorder list
func NeedsReorder(status Status) bool {
	return status == StatusLowStock || status == StatusOutOfStock
}

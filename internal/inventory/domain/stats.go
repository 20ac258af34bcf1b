package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComputeStats aggregates items at now using the default expiry window
func ComputeStats(items []InventoryItem, now time.Time) InventoryStats {
	return ComputeStatsWithin(items, now, DefaultExpiryWindow)
}

// ComputeStatsWithin aggregates items at now.
// ExpiringItems counts every expiry before now+window, expired items included.
func ComputeStatsWithin(items []InventoryItem, now time.Time, window time.Duration) InventoryStats {
	stats := InventoryStats{
		TotalItems:  len(items),
		LastUpdated: now,
	}

	soon := now.Add(window)
	total := decimal.Zero

	for _, item := range items {
		switch ClassifyStatus(item, now) {
		case StatusLowStock:
			stats.LowStockItems++
		case StatusOutOfStock:
			stats.OutOfStockItems++
		}

		if item.ExpiryDate != nil && item.ExpiryDate.Before(soon) {
			stats.ExpiringItems++
		}

		total = total.Add(ItemValue(item))
	}

	stats.TotalValue = total.InexactFloat64()
	return stats
}

// ItemValue returns currentStock × costPerUnit rounded to cents; negative stock counts as zero.
// Totals are sums of these rounded values, so they match the cells rendered per item.
func ItemValue(item InventoryItem) decimal.Decimal {
	if item.CurrentStock <= 0 {
		return decimal.Zero
	}
	return LineCost(item.CurrentStock, item.CostPerUnit)
}

// LineCost returns qty × unitCost rounded half away from zero to cents
func LineCost(qty, unitCost float64) decimal.Decimal {
	return decimal.NewFromFloat(qty).Mul(decimal.NewFromFloat(unitCost)).Round(2)
}

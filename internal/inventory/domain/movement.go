package domain

import (
	"errors"
	"time"
)

// ErrItemMismatch is returned when a movement is applied to the wrong item
var ErrItemMismatch = errors.New("movement does not reference this item")

// ApplyMovement returns item with the signed movement quantity applied.
// Stock never drops below zero; a restock also moves LastRestocked.
func ApplyMovement(item InventoryItem, movement StockMovement, now time.Time) (InventoryItem, error) {
	if movement.InventoryItemID != item.ID {
		return item, ErrItemMismatch
	}

	item.CurrentStock += movement.Quantity
	if item.CurrentStock < 0 {
		item.CurrentStock = 0
	}

	if movement.Type == MovementRestock {
		item.LastRestocked = movement.Timestamp
	}

	item.Status = ClassifyStatus(item, now)
	return item, nil
}

// FilterMovements keeps movements whose timestamp falls within [start, end].
// Bounds are calendar days in loc: start from 00:00, end through 23:59:59.999.
// A nil bound is open.
func FilterMovements(movements []StockMovement, start, end *time.Time, loc *time.Location) []StockMovement {
	if loc == nil {
		loc = time.Local
	}

	var from, to time.Time
	if start != nil {
		s := start.In(loc)
		from = time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, loc)
	}
	if end != nil {
		e := end.In(loc)
		to = time.Date(e.Year(), e.Month(), e.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
	}

	result := make([]StockMovement, 0, len(movements))
	for _, m := range movements {
		if start != nil && m.Timestamp.Before(from) {
			continue
		}
		if end != nil && m.Timestamp.After(to) {
			continue
		}
		result = append(result, m)
	}
	return result
}

package export

import (
	"github.com/cafestock/cafestock-backend/pkg/errors"
)

// Kind identifies one of the report variants
type Kind string

const (
	KindInventory     Kind = "inventory"
	KindLowStock      Kind = "low_stock"
	KindMovements     Kind = "movements"
	KindAlerts        Kind = "alerts"
	KindValuation     Kind = "valuation"
	KindPurchaseOrder Kind = "purchase_order"
)

// KindInfo describes a report kind
type KindInfo struct {
	Kind            Kind   `json:"kind" yaml:"kind"`
	Title           string `json:"title" yaml:"title"`
	DefaultFilename string `json:"defaultFilename" yaml:"defaultFilename"`
}

var kinds = []KindInfo{
	{KindInventory, "Full inventory", "inventory_export"},
	{KindLowStock, "Low stock report", "low_stock_report"},
	{KindMovements, "Stock movements", "stock_movements"},
	{KindAlerts, "Alerts", "stock_alerts"},
	{KindValuation, "Valuation report", "inventory_valuation"},
	{KindPurchaseOrder, "Purchase order", "purchase_order"},
}

// Kinds lists every report kind in display order
func Kinds() []KindInfo {
	out := make([]KindInfo, len(kinds))
	copy(out, kinds)
	return out
}

// ParseKind resolves a report kind name
func ParseKind(s string) (Kind, error) {
	for _, k := range kinds {
		if string(k.Kind) == s {
			return k.Kind, nil
		}
	}
	return "", errors.UnknownReport(s)
}

func (k Kind) info() (KindInfo, bool) {
	for _, info := range kinds {
		if info.Kind == k {
			return info, true
		}
	}
	return KindInfo{}, false
}

package export

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cafestock/cafestock-backend/internal/inventory/domain"
)

// UnknownItemName stands in for a movement or alert whose item is missing
const UnknownItemName = "Unknown Item"

// inventoryReport lists every item with its computed total value
func inventoryReport(f Formatter) Definition[domain.InventoryItem] {
	return Definition[domain.InventoryItem]{
		Columns: []Column[domain.InventoryItem]{
			{"ID", func(i domain.InventoryItem) string { return i.ID }},
			{"Name", func(i domain.InventoryItem) string { return i.Name }},
			{"Category", func(i domain.InventoryItem) string { return i.Category }},
			{"Supplier", func(i domain.InventoryItem) string { return i.Supplier }},
			{"Current Stock", func(i domain.InventoryItem) string { return Quantity(i.CurrentStock) }},
			{"Min Stock Level", func(i domain.InventoryItem) string { return Quantity(i.MinStockLevel) }},
			{"Max Stock Level", func(i domain.InventoryItem) string { return Quantity(i.MaxStockLevel) }},
			{"Unit", func(i domain.InventoryItem) string { return i.Unit }},
			{"Cost Per Unit", func(i domain.InventoryItem) string { return MoneyFloat(i.CostPerUnit) }},
			{"Total Value", func(i domain.InventoryItem) string { return Money(domain.ItemValue(i)) }},
			{"Status", func(i domain.InventoryItem) string { return string(i.Status) }},
			{"Location", func(i domain.InventoryItem) string { return Optional(i.Location) }},
			{"Barcode", func(i domain.InventoryItem) string { return Optional(i.Barcode) }},
			{"Last Restocked", func(i domain.InventoryItem) string { return f.Date(i.LastRestocked) }},
			{"Expiry Date", func(i domain.InventoryItem) string { return f.OptionalDate(i.ExpiryDate) }},
			{"Description", func(i domain.InventoryItem) string { return Optional(i.Description) }},
		},
	}
}

// unitsNeeded is how far stock sits below the minimum level
func unitsNeeded(i domain.InventoryItem) float64 {
	if need := i.MinStockLevel - i.CurrentStock; need > 0 {
		return need
	}
	return 0
}

func reorderCost(i domain.InventoryItem) decimal.Decimal {
	return domain.LineCost(unitsNeeded(i), i.CostPerUnit)
}

// lowStockReport lists items that must be reordered to reach their minimum
func lowStockReport() Definition[domain.InventoryItem] {
	return Definition[domain.InventoryItem]{
		Filter: func(i domain.InventoryItem) bool { return domain.NeedsReorder(i.Status) },
		Columns: []Column[domain.InventoryItem]{
			{"ID", func(i domain.InventoryItem) string { return i.ID }},
			{"Name", func(i domain.InventoryItem) string { return i.Name }},
			{"Category", func(i domain.InventoryItem) string { return i.Category }},
			{"Supplier", func(i domain.InventoryItem) string { return i.Supplier }},
			{"Current Stock", func(i domain.InventoryItem) string { return Quantity(i.CurrentStock) }},
			{"Min Stock Level", func(i domain.InventoryItem) string { return Quantity(i.MinStockLevel) }},
			{"Units Needed", func(i domain.InventoryItem) string { return Quantity(unitsNeeded(i)) }},
			{"Unit", func(i domain.InventoryItem) string { return i.Unit }},
			{"Cost Per Unit", func(i domain.InventoryItem) string { return MoneyFloat(i.CostPerUnit) }},
			{"Reorder Cost", func(i domain.InventoryItem) string { return Money(reorderCost(i)) }},
			{"Status", func(i domain.InventoryItem) string { return string(i.Status) }},
			{"Priority", func(i domain.InventoryItem) string {
				if i.Status == domain.StatusOutOfStock {
					return "CRITICAL"
				}
				return "HIGH"
			}},
		},
	}
}

// movementRecord is a movement joined to its item, which may be missing
type movementRecord struct {
	domain.StockMovement
	item *domain.InventoryItem
}

func joinMovements(movements []domain.StockMovement, items []domain.InventoryItem) []movementRecord {
	index := domain.IndexItems(items)
	records := make([]movementRecord, len(movements))
	for i, m := range movements {
		records[i] = movementRecord{StockMovement: m, item: index[m.InventoryItemID]}
	}
	return records
}

func (r movementRecord) itemName() string {
	if r.item == nil {
		return UnknownItemName
	}
	return r.item.Name
}

func (r movementRecord) itemUnit() string {
	if r.item == nil {
		return ""
	}
	return r.item.Unit
}

// movementsReport lists movements in caller order
func movementsReport(f Formatter) Definition[movementRecord] {
	return Definition[movementRecord]{
		Columns: []Column[movementRecord]{
			{"Date", func(m movementRecord) string { return f.Date(m.Timestamp) }},
			{"Item Name", movementRecord.itemName},
			{"Type", func(m movementRecord) string { return string(m.Type) }},
			{"Quantity", func(m movementRecord) string { return Quantity(m.Quantity) }},
			{"Unit", movementRecord.itemUnit},
			{"Reason", func(m movementRecord) string { return m.Reason }},
			{"Staff ID", func(m movementRecord) string { return m.StaffID }},
			{"Cost", func(m movementRecord) string { return OptionalMoney(m.Cost) }},
			{"Supplier", func(m movementRecord) string { return Optional(m.Supplier) }},
			{"Notes", func(m movementRecord) string { return Optional(m.Notes) }},
		},
	}
}

// alertRecord is an alert joined to its item, which may be missing
type alertRecord struct {
	domain.StockAlert
	item *domain.InventoryItem
}

func joinAlerts(alerts []domain.StockAlert, items []domain.InventoryItem) []alertRecord {
	index := domain.IndexItems(items)
	records := make([]alertRecord, len(alerts))
	for i, a := range alerts {
		records[i] = alertRecord{StockAlert: a, item: index[a.InventoryItemID]}
	}
	return records
}

// alertsReport lists alerts with their acknowledgment state
func alertsReport(f Formatter) Definition[alertRecord] {
	return Definition[alertRecord]{
		Columns: []Column[alertRecord]{
			{"Alert ID", func(a alertRecord) string { return a.ID }},
			{"Item Name", func(a alertRecord) string {
				if a.item == nil {
					return UnknownItemName
				}
				return a.item.Name
			}},
			{"Type", func(a alertRecord) string { return string(a.Type) }},
			{"Severity", func(a alertRecord) string { return string(a.Severity) }},
			{"Message", func(a alertRecord) string { return a.Message }},
			{"Created At", func(a alertRecord) string { return f.Date(a.CreatedAt) }},
			{"Acknowledged", func(a alertRecord) string { return YesNo(a.Acknowledged) }},
			{"Acknowledged By", func(a alertRecord) string { return Optional(a.AcknowledgedBy) }},
			{"Acknowledged At", func(a alertRecord) string { return f.OptionalDate(a.AcknowledgedAt) }},
		},
	}
}

const (
	valuationWidth       = 7
	valuationValueColumn = 5
)

func categoryLabel(category string) string {
	if strings.TrimSpace(category) == "" {
		return "Uncategorized"
	}
	return category
}

func sumValues(items []domain.InventoryItem) decimal.Decimal {
	total := decimal.Zero
	for _, i := range items {
		total = total.Add(domain.ItemValue(i))
	}
	return total
}

// valuationReport groups items by category with subtotals and a grand total
func valuationReport() Definition[domain.InventoryItem] {
	return Definition[domain.InventoryItem]{
		Columns: []Column[domain.InventoryItem]{
			{"Category", func(i domain.InventoryItem) string { return categoryLabel(i.Category) }},
			{"Item Name", func(i domain.InventoryItem) string { return i.Name }},
			{"Current Stock", func(i domain.InventoryItem) string { return Quantity(i.CurrentStock) }},
			{"Unit", func(i domain.InventoryItem) string { return i.Unit }},
			{"Cost Per Unit", func(i domain.InventoryItem) string { return MoneyFloat(i.CostPerUnit) }},
			{"Total Value", func(i domain.InventoryItem) string { return Money(domain.ItemValue(i)) }},
			{"Stock Level %", func(i domain.InventoryItem) string { return Percent(i.CurrentStock, i.MaxStockLevel) }},
		},
		GroupBy: func(i domain.InventoryItem) string { return categoryLabel(i.Category) },
		Subtotal: func(category string, members []domain.InventoryItem) Row {
			return sparseRow(RowSubtotal, valuationWidth, map[int]string{
				0:                    strings.ToUpper(category) + " SUBTOTAL",
				valuationValueColumn: Money(sumValues(members)),
			})
		},
		Trailer: func(kept []domain.InventoryItem) []Row {
			return []Row{sparseRow(RowGrandTotal, valuationWidth, map[int]string{
				0:                    "GRAND TOTAL",
				valuationValueColumn: Money(sumValues(kept)),
			})}
		},
	}
}

const (
	purchaseOrderWidth      = 11
	purchaseOrderCostColumn = 9
)

func suggestedQty(i domain.InventoryItem) float64 {
	return i.MaxStockLevel - i.CurrentStock
}

func orderCost(i domain.InventoryItem) decimal.Decimal {
	return domain.LineCost(suggestedQty(i), i.CostPerUnit)
}

// purchaseOrderReport lists reorder quantities up to the maximum level,
// optionally for one supplier, followed by the order total.
func purchaseOrderReport(supplier, generatedAt string) Definition[domain.InventoryItem] {
	return Definition[domain.InventoryItem]{
		Filter: func(i domain.InventoryItem) bool {
			return domain.NeedsReorder(i.Status) && (supplier == "" || i.Supplier == supplier)
		},
		Columns: []Column[domain.InventoryItem]{
			{"Supplier", func(i domain.InventoryItem) string { return i.Supplier }},
			{"Item Name", func(i domain.InventoryItem) string { return i.Name }},
			{"Category", func(i domain.InventoryItem) string { return i.Category }},
			{"Current Stock", func(i domain.InventoryItem) string { return Quantity(i.CurrentStock) }},
			{"Min Stock Level", func(i domain.InventoryItem) string { return Quantity(i.MinStockLevel) }},
			{"Max Stock Level", func(i domain.InventoryItem) string { return Quantity(i.MaxStockLevel) }},
			{"Suggested Qty", func(i domain.InventoryItem) string { return Quantity(suggestedQty(i)) }},
			{"Unit", func(i domain.InventoryItem) string { return i.Unit }},
			{"Cost Per Unit", func(i domain.InventoryItem) string { return MoneyFloat(i.CostPerUnit) }},
			{"Total Cost", func(i domain.InventoryItem) string { return Money(orderCost(i)) }},
			{"Priority", func(i domain.InventoryItem) string {
				if i.Status == domain.StatusOutOfStock {
					return "URGENT"
				}
				return "NORMAL"
			}},
		},
		Trailer: func(kept []domain.InventoryItem) []Row {
			total := decimal.Zero
			for _, i := range kept {
				total = total.Add(orderCost(i))
			}
			return []Row{
				{Kind: RowBlank},
				sparseRow(RowSummary, purchaseOrderWidth, map[int]string{
					0:                       "TOTAL ORDER VALUE",
					purchaseOrderCostColumn: Money(total),
				}),
				{Kind: RowSummary, Cells: []string{"Generated on", generatedAt}},
			}
		},
	}
}

// supplierSuffix turns a supplier name into a filename suffix
func supplierSuffix(supplier string) string {
	if strings.TrimSpace(supplier) == "" {
		return ""
	}
	return "_" + strings.Join(strings.Fields(strings.ToLower(supplier)), "_")
}

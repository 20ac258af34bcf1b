package export

import (
	"time"

	"github.com/cafestock/cafestock-backend/internal/inventory/domain"
	"github.com/cafestock/cafestock-backend/pkg/i18n"
)

// ContentType is the media type of produced documents
const ContentType = "text/csv; charset=utf-8"

// Request is one report to build. Collections are read-only snapshots.
type Request struct {
	Kind      Kind
	Items     []domain.InventoryItem
	Movements []domain.StockMovement
	Alerts    []domain.StockAlert
	Options   Options
	// Supplier restricts a purchase order to one supplier
	Supplier string
}

// Document is a finished export ready for delivery
type Document struct {
	Kind        Kind
	Filename    string
	ContentType string
	Content     string
	Table       Table
}

// Bytes returns the UTF-8 encoded document
func (d *Document) Bytes() []byte {
	return []byte(d.Content)
}

// Builder turns requests into documents
type Builder struct {
	loc    *time.Location
	locale string
	now    func() time.Time
}

// NewBuilder creates a builder rendering dates in loc with locale layouts.
// A nil clock uses time.Now.
func NewBuilder(loc *time.Location, locale string, now func() time.Time) *Builder {
	if loc == nil {
		loc = time.Local
	}
	if !i18n.IsSupported(locale) {
		locale = i18n.DefaultLocale
	}
	if now == nil {
		now = time.Now
	}
	return &Builder{loc: loc, locale: locale, now: now}
}

// Now returns the builder's evaluation instant
func (b *Builder) Now() time.Time {
	return b.now()
}

// Build produces the document for req at the builder's current instant
func (b *Builder) Build(req Request) (*Document, error) {
	info, ok := req.Kind.info()
	if !ok {
		_, err := ParseKind(string(req.Kind))
		return nil, err
	}

	if err := req.Options.Validate(); err != nil {
		return nil, err
	}

	now := b.now()
	f := NewFormatter(req.Options.DateFormat, b.locale, b.loc)
	items := domain.RefreshStatuses(req.Items, now)

	var (
		table  Table
		suffix string
	)
	switch req.Kind {
	case KindInventory:
		table = inventoryReport(f).Build(items)
	case KindLowStock:
		table = lowStockReport().Build(items)
	case KindMovements:
		table = movementsReport(f).Build(joinMovements(req.Movements, items))
	case KindAlerts:
		table = alertsReport(f).Build(joinAlerts(req.Alerts, items))
	case KindValuation:
		table = valuationReport().Build(items)
	case KindPurchaseOrder:
		table = purchaseOrderReport(req.Supplier, f.Date(now)).Build(items)
		suffix = supplierSuffix(req.Supplier)
	}

	stem := info.DefaultFilename
	if req.Options.Filename != "" {
		stem = req.Options.Filename
	}

	return &Document{
		Kind:        req.Kind,
		Filename:    Filename(stem, suffix, now),
		ContentType: ContentType,
		Content:     Serialize(table, req.Options.IncludeHeaders),
		Table:       table,
	}, nil
}

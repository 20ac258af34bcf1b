package export

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cafestock/cafestock-backend/internal/inventory/domain"
	"github.com/cafestock/cafestock-backend/pkg/i18n"
)

const isoLayout = "2006-01-02T15:04:05.000Z"

// Formatter renders typed values into cell strings
type Formatter struct {
	format      DateFormat
	loc         *time.Location
	shortLayout string
	longLayout  string
}

// NewFormatter creates a formatter for a date format, locale and timezone
func NewFormatter(format DateFormat, locale string, loc *time.Location) Formatter {
	if loc == nil {
		loc = time.Local
	}
	l := i18n.NewLocalizer(locale)
	return Formatter{
		format:      format,
		loc:         loc,
		shortLayout: l.DateLayout(string(DateShort)),
		longLayout:  l.DateLayout(string(DateLong)),
	}
}

// Date renders t per the date format; the zero time renders empty
func (f Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	switch f.format {
	case DateISO:
		return t.UTC().Format(isoLayout)
	case DateLong:
		return t.In(f.loc).Format(f.longLayout)
	default:
		return t.In(f.loc).Format(f.shortLayout)
	}
}

// OptionalDate renders a missing date as empty
func (f Formatter) OptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return f.Date(*t)
}

// Money renders a currency amount with two decimals
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// MoneyFloat renders a float currency amount with two decimals
func MoneyFloat(v float64) string {
	return Money(decimal.NewFromFloat(v))
}

// OptionalMoney renders a missing amount as empty
func OptionalMoney(v *float64) string {
	if v == nil {
		return ""
	}
	return MoneyFloat(*v)
}

// Quantity renders a stock quantity; whole numbers stay bare
func Quantity(v float64) string {
	return domain.FormatQuantity(v)
}

// Percent renders part/whole × 100 with one decimal and a % suffix
func Percent(part, whole float64) string {
	if whole <= 0 {
		return "0.0%"
	}
	return strconv.FormatFloat(part/whole*100, 'f', 1, 64) + "%"
}

// Optional dereferences an optional string
func Optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// YesNo renders a boolean flag
func YesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

package export

import (
	"github.com/go-playground/validator/v10"

	"github.com/cafestock/cafestock-backend/pkg/errors"
)

// DateFormat selects how date cells are rendered
type DateFormat string

const (
	DateShort DateFormat = "short" // locale date
	DateLong  DateFormat = "long"  // locale date and time
	DateISO   DateFormat = "iso"   // ISO-8601 instant in UTC
)

// Options control header emission, date rendering and the filename stem
type Options struct {
	IncludeHeaders bool       `json:"includeHeaders" yaml:"includeHeaders"`
	DateFormat     DateFormat `json:"dateFormat" yaml:"dateFormat" validate:"omitempty,oneof=short long iso"`
	Filename       string     `json:"filename,omitempty" yaml:"filename,omitempty" validate:"max=120,excludesall=/\\"`
}

// DefaultOptions returns headers on, short dates, default filename
func DefaultOptions() Options {
	return Options{IncludeHeaders: true, DateFormat: DateShort}
}

var validate = validator.New()

// Validate checks the options
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		details := make(map[string]string)
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, e := range fieldErrs {
				switch e.Tag() {
				case "oneof":
					details[e.Field()] = "must be one of: " + e.Param()
				case "max":
					details[e.Field()] = "must be at most " + e.Param() + " characters"
				case "excludesall":
					details[e.Field()] = "must not contain path separators"
				default:
					details[e.Field()] = "invalid value"
				}
			}
		}
		return errors.Validation(details)
	}
	return nil
}

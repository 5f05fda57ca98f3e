package t12

import (
	"strconv"
	"strings"
	"time"

	"t12fmt/internal/logger"

	"github.com/xuri/excelize/v2"
)

// DateResolver is a last-resort interpreter for a date cell none of the
// built-in formats understand.
type DateResolver interface {
	ResolvePeriod(text string) (time.Time, error)
}

const (
	unknownDate     = "Unknown_Date"
	defaultProperty = "Property"
	outputExt       = ".xlsx"
	periodLayout    = "2006-01"
)

// Accepted date cell formats, first match wins.
var dateLayouts = []string{
	"January 2, 2006",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"2006-01-02",
	"January 2006",
	"Jan 2006",
}

// Destination cells read for the output name.
var (
	propertyCell = Cell{Row: 1, Col: 1}
	dateCell     = Cell{Row: 3, Col: 1}
)

// ParsePeriod turns a date cell into a YYYY-MM token. text is the displayed
// value, raw the stored one; they differ when a number format renders a
// serial date. Returns Unknown_Date and false when nothing matches.
func ParsePeriod(text, raw string, resolver DateResolver) (string, bool) {
	text = strings.TrimSpace(text)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t.Format(periodLayout), true
		}
	}

	raw = strings.TrimSpace(raw)
	if raw != "" && raw != text {
		if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial > 0 {
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return t.Format(periodLayout), true
			}
		}
	}

	if resolver != nil && text != "" {
		t, err := resolver.ResolvePeriod(text)
		if err == nil {
			return t.Format(periodLayout), true
		}
		logger.Warn("Date resolver could not read report date", "text", text, "error", err)
	}

	return unknownDate, false
}

// SanitizeProperty makes a property name safe for a file name.
func SanitizeProperty(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return defaultProperty
	}
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, `\`, "-")
	return name
}

// OutputName composes {property}_{suffix}_{period}.xlsx.
func OutputName(property, suffix, period string) string {
	return SanitizeProperty(property) + "_" + suffix + "_" + period + outputExt
}

package render

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// TimestampLayout is the en-US short date and time form.
const TimestampLayout = "1/2/2006, 3:04:05 PM"

var (
	leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	usPrinter     = message.NewPrinter(language.AmericanEnglish)
)

// ParseAmount reads the numeric prefix of s, ignoring leading whitespace.
func ParseAmount(s string) (float64, bool) {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FormatAmount renders raw as a dollar amount with digit grouping and at most
// three fraction digits. Non-numeric input is kept verbatim after the dollar sign.
func FormatAmount(raw string) string {
	f, ok := ParseAmount(raw)
	if !ok {
		return "$" + raw
	}
	return "$" + usPrinter.Sprintf("%v", number.Decimal(f, number.MaxFractionDigits(3)))
}

// Timestamp renders t in loc using TimestampLayout.
func Timestamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(TimestampLayout)
}

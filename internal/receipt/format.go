// Package receipt turns billing input into display strings and renders them
// with interchangeable visual themes.
package receipt

import (
	"strings"
	"time"

	"github.com/Veraticus/poultry-receipt/internal/billing"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DatePlaceholder is shown for an empty or unreadable date.
const DatePlaceholder = "--/--/----"

const displayDateLayout = "02/01/2006"

// FormatDate renders an ISO date as DD/MM/YYYY. It never fails: empty or
// unparsable input yields DatePlaceholder.
func FormatDate(iso string) string {
	s := strings.TrimSpace(iso)
	if s == "" {
		return DatePlaceholder
	}
	if d, err := time.Parse(billing.DateLayout, s); err == nil {
		return d.Format(displayDateLayout)
	}
	if d, err := time.Parse(time.RFC3339, s); err == nil {
		return d.Format(displayDateLayout)
	}
	return DatePlaceholder
}

// Formatter renders numbers with locale grouping. Values are only formatted,
// never rounded in place.
type Formatter struct {
	printer  *message.Printer
	currency string
	locale   language.Tag
}

// DefaultLocale is used when no locale, or an invalid one, is configured.
const DefaultLocale = "en-PK"

// NewFormatter builds a formatter for a BCP 47 locale such as "en-PK" or "ur-PK".
func NewFormatter(locale, currency string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return &Formatter{
		printer:  message.NewPrinter(tag),
		currency: currency,
		locale:   tag,
	}
}

// Locale returns the resolved locale tag.
func (f *Formatter) Locale() string {
	return f.locale.String()
}

// Amount groups digits and shows at most two decimals.
func (f *Formatter) Amount(v float64) string {
	return f.printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(2)))
}

// Money prefixes Amount with the currency symbol, if one is configured.
func (f *Formatter) Money(v float64) string {
	if f.currency == "" {
		return f.Amount(v)
	}
	return f.currency + " " + f.Amount(v)
}

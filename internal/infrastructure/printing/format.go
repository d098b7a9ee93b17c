package printing

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// EmptyCell is shown for a month with neither amount nor quantity.
const EmptyCell = "-"

// NumberFormatter renders report figures with locale digit grouping.
// Digits come from the exact decimal; only the separators are taken from
// the locale.
type NumberFormatter struct {
	group string
	point string
}

// NewNumberFormatter creates a formatter for tag, for example language.AmericanEnglish.
func NewNumberFormatter(tag language.Tag) *NumberFormatter {
	p := message.NewPrinter(tag)
	thousand := p.Sprintf("%d", 1000)
	half := p.Sprintf("%.1f", 0.5)
	f := &NumberFormatter{group: ",", point: "."}
	if len(thousand) > 4 {
		f.group = thousand[1 : len(thousand)-3]
	} else if len(thousand) == 4 {
		f.group = ""
	}
	if len(half) > 2 {
		f.point = half[1 : len(half)-1]
	}
	return f
}

// Amount formats with two fraction digits and grouping, e.g. 1,234.50.
func (f *NumberFormatter) Amount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	return sign + f.groupDigits(intPart) + f.point + frac
}

func (f *NumberFormatter) groupDigits(digits string) string {
	if len(digits) <= 3 || f.group == "" {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(f.group)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Quantity formats without forced fraction digits, e.g. 12 or 2.5.
func (f *NumberFormatter) Quantity(d decimal.Decimal) string {
	return d.String()
}

// AmountCell is the summary table cell: the amount, or EmptyCell when both
// amount and quantity are zero. A zero amount with a quantity still shows 0.00.
func (f *NumberFormatter) AmountCell(amount, quantity decimal.Decimal) string {
	if amount.IsZero() && quantity.IsZero() {
		return EmptyCell
	}
	return f.Amount(amount)
}

// AmountQuantityCell is the product table cell: "amount (quantity)".
func (f *NumberFormatter) AmountQuantityCell(amount, quantity decimal.Decimal) string {
	if amount.IsZero() && quantity.IsZero() {
		return EmptyCell
	}
	return f.Amount(amount) + " (" + f.Quantity(quantity) + ")"
}

package numeric

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Input filters for the two kinds of price fields: unit prices accept a
// decimal fraction, totals and discounts are whole currency units.

// SanitizeDecimal keeps digits and at most one decimal separator,
// discarding everything else. "," is accepted as a separator alias.
func SanitizeDecimal(raw string) string {
	var b strings.Builder
	seenSep := false
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case (r == '.' || r == ',') && !seenSep:
			b.WriteByte('.')
			seenSep = true
		}
	}
	return b.String()
}

// SanitizeInteger keeps digits only.
func SanitizeInteger(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Amount converts sanitized text to a non-negative decimal. Coercion never
// fails: blank or unparseable input degrades to zero so typing is never
// interrupted by validation errors.
func Amount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" || s == "." {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Format renders an amount for display, trimming insignificant trailing
// zero fraction digits ("12.50" -> "12.5", "50.00" -> "50").
func Format(d decimal.Decimal) string {
	s := d.String()
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	if s == "" || s == "-0" {
		return "0"
	}
	return s
}

// FormatINR renders a whole rupee amount with Indian digit grouping,
// e.g. 123456 -> "₹1,23,456".
func FormatINR(amount int64) string {
	if amount < 0 {
		amount = 0
	}
	digits := strconv.FormatInt(amount, 10)
	if len(digits) <= 3 {
		return "₹" + digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return "₹" + strings.Join(groups, ",") + "," + tail
}

// RoundWhole rounds to the nearest whole currency unit, floored at zero.
func RoundWhole(d decimal.Decimal) int64 {
	r := d.Round(0)
	if r.IsNegative() {
		return 0
	}
	return r.IntPart()
}

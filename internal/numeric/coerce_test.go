package numeric

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeDecimal(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"plain decimal", "12.5", "12.5"},
		{"comma separator", "12,5", "12.5"},
		{"second separator dropped", "1.2.5", "1.25"},
		{"currency noise stripped", "₹ 1,200", "1.200"},
		{"letters stripped", "abc12x5", "125"},
		{"empty", "", ""},
		{"minus sign dropped", "-42", "42"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeDecimal(tc.in))
		})
	}
}

func TestSanitizeInteger(t *testing.T) {
	assert.Equal(t, "1250", SanitizeInteger("1,250.00"))
	assert.Equal(t, "", SanitizeInteger("n/a"))
	assert.Equal(t, "40", SanitizeInteger("40"))
}

func TestAmount(t *testing.T) {
	assert.True(t, Amount("12.5").Equal(decimal.RequireFromString("12.5")))
	assert.True(t, Amount("").IsZero())
	assert.True(t, Amount(".").IsZero())
	assert.True(t, Amount("not a number").IsZero())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "12.5", Format(decimal.RequireFromString("12.50")))
	assert.Equal(t, "50", Format(decimal.RequireFromString("50.00")))
	assert.Equal(t, "10", Format(decimal.RequireFromString("40").Div(decimal.RequireFromString("4"))))
	assert.Equal(t, "0", Format(decimal.Zero))
}

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "₹0", FormatINR(0))
	assert.Equal(t, "₹500", FormatINR(500))
	assert.Equal(t, "₹1,500", FormatINR(1500))
	assert.Equal(t, "₹1,23,456", FormatINR(123456))
	assert.Equal(t, "₹12,34,56,789", FormatINR(123456789))
	assert.Equal(t, "₹0", FormatINR(-5))
}

func TestRoundWhole(t *testing.T) {
	assert.Equal(t, int64(50), RoundWhole(decimal.RequireFromString("12.5").Mul(decimal.NewFromInt(4))))
	assert.Equal(t, int64(13), RoundWhole(decimal.RequireFromString("12.5")))
	assert.Equal(t, int64(0), RoundWhole(decimal.RequireFromString("-3")))
}

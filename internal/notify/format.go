package notify

import (
	"math"
	"strconv"
	"strings"
)

// smsBudget is the character budget for SMS bodies, ellipsis included
const smsBudget = 160

// FormatEstimateRange renders an estimate range for message templates.
// Equal bounds collapse to a single amount: (5000, 5000) -> "$5,000",
// (5000, 8000) -> "$5,000 - $8,000".
func FormatEstimateRange(min, max float64) string {
	if min == max {
		return formatMoney(min)
	}
	return formatMoney(min) + " - " + formatMoney(max)
}

// formatMoney renders a whole-dollar amount with thousands separators
func formatMoney(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}

	negative := amount < 0
	digits := strconv.FormatInt(int64(math.Round(math.Abs(amount))), 10)

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteByte('$')

	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte(',')
		}
	}
	return b.String()
}

// TruncateSMS enforces the SMS character budget, replacing the tail
// with an ellipsis when the body runs over
func TruncateSMS(body string) string {
	if len(body) <= smsBudget {
		return body
	}
	return body[:smsBudget-3] + "..."
}

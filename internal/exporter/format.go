package exporter

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"glcli/internal/errors"
)

// FormatIndian renders an integer amount with Indian digit grouping: the
// last three digits form one group, every group above it has two digits.
// 1234567 becomes "12,34,567". The sign is preserved and zero is "0".
func FormatIndian(value int64) string {
	negative := value < 0
	digits := strconv.FormatInt(value, 10)
	if negative {
		digits = digits[1:]
	}

	grouped := groupIndian(digits)
	if negative {
		return "-" + grouped
	}
	return grouped
}

// FormatDecimal renders a decimal amount with Indian grouping on the integer
// part. Amounts are rounded to two decimal places; a zero fraction is
// dropped, so whole amounts render exactly like FormatIndian.
func FormatDecimal(value decimal.Decimal) string {
	rounded := value.Round(2)
	if rounded.IsInteger() {
		return FormatIndian(rounded.IntPart())
	}

	s := rounded.Abs().StringFixed(2)
	dot := strings.IndexByte(s, '.')
	out := groupIndian(s[:dot]) + s[dot:]
	if rounded.IsNegative() {
		return "-" + out
	}
	return out
}

// ParseIndian recovers the integer value from a string produced by
// FormatIndian. It is the round-trip inverse: ParseIndian(FormatIndian(n))
// returns n for every int64.
func ParseIndian(display string) (int64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(display), ",", "")
	if cleaned == "" {
		return 0, errors.NewParsingError("empty amount string", nil)
	}
	value, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, errors.NewParsingError("malformed amount string", err)
	}
	return value, nil
}

// groupIndian inserts separators into an unsigned digit string.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	groups = append(groups, tail)

	return strings.Join(groups, ",")
}

package cw20

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrAmount = errors.New("invalid token amount")

// FormatAmount renders a raw token amount using the token's decimals, e.g. "304000" with 2
// decimals is "3040.00".
func FormatAmount(amount string, decimals uint8) (string, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrAmount, amount)
	}
	return d.Shift(-int32(decimals)).StringFixed(int32(decimals)), nil
}

// ParseAmount is the inverse of FormatAmount, e.g. "1.5" with 2 decimals is "150". Negative
// amounts and digits beyond the token's decimals are rejected.
func ParseAmount(display string, decimals uint8) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(display))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrAmount, display)
	}
	raw := d.Shift(int32(decimals))
	if raw.IsNegative() {
		return "", fmt.Errorf("%w: %s is negative", ErrAmount, display)
	}
	if !raw.Equal(raw.Truncate(0)) {
		return "", fmt.Errorf("%w: %s has more than %d decimals", ErrAmount, display, decimals)
	}
	return raw.String(), nil
}

// ValidateRaw checks that amount is a non-negative integer of base units.
func ValidateRaw(amount string) error {
	_, err := ParseAmount(amount, 0)
	return err
}

package contracts

import (
	"fmt"
	"strconv"
	"strings"
)

// Money is an amount in cents.
type Money int64

// MaxMoney is the largest amount a NUMERIC(12,2) column holds.
const MaxMoney Money = 999_999_999_999

// ParseMoney reads "1200", "1200.5" or "1,200.50". At most two decimals are accepted.
func ParseMoney(s string) (Money, error) {
	raw := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(s, ",", ""), "_", ""))
	if raw == "" {
		return 0, fmt.Errorf("empty amount")
	}
	neg := strings.HasPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "-")

	whole, frac, hasFrac := strings.Cut(raw, ".")
	if whole == "" && !hasFrac {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount %q has more than two decimals", s)
	}
	if whole == "" {
		whole = "0"
	}
	if !digitsOnly(whole) || !digitsOnly(frac) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > int64(MaxMoney/100) {
		return 0, fmt.Errorf("amount %q is out of range", s)
	}
	var cents int64
	if frac != "" {
		for len(frac) < 2 {
			frac += "0"
		}
		cents, _ = strconv.ParseInt(frac, 10, 64)
	}
	total := units*100 + cents
	if neg {
		total = -total
	}
	return Money(total), nil
}

func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Float returns the amount in currency units.
func (m Money) Float() float64 {
	return float64(m) / 100
}

func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign, v = "-", -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func moneyPtr(m *Money) *int64 {
	if m == nil {
		return nil
	}
	v := int64(*m)
	return &v
}

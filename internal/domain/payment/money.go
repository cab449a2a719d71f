package payment

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
)

// Money is a USD amount held in cents; the gateway takes two fraction digits.
type Money struct {
	cents int64
}

func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrInvalidAmount
	}
	return Money{cents: cents}, nil
}

// ParseMoney accepts "10", "10.5" and "10.50". More than two fraction digits is rejected.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if hasFrac && (len(frac) == 0 || len(frac) > 2) {
		return Money{}, ErrInvalidAmount
	}
	for len(frac) < 2 {
		frac += "0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || w < 0 {
		return Money{}, ErrInvalidAmount
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil || f < 0 {
		return Money{}, ErrInvalidAmount
	}
	return Money{cents: w*100 + f}, nil
}

func NewMoneyFromFloat(v float64) (Money, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return Money{}, ErrInvalidAmount
	}
	return Money{cents: int64(math.Round(v * 100))}, nil
}

// NewPositiveMoney parses s and rejects zero.
func NewPositiveMoney(s string) (Money, error) {
	m, err := ParseMoney(s)
	if err != nil {
		return Money{}, err
	}
	if m.IsZero() {
		return Money{}, ErrAmountNotPositive
	}
	return m, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) IsZero() bool {
	return m.cents == 0
}

// String formats with two fraction digits, e.g. "10.50".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}

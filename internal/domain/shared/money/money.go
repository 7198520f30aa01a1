package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCurrency  = errors.New("money: invalid currency code")
	ErrCurrencyMismatch = errors.New("money: currency mismatch")
	ErrInvalidAmount    = errors.New("money: invalid amount")
)

// DefaultCurrency is the currency every quote in the system is expressed in.
const DefaultCurrency = "BRL"

// Money keeps amounts in integer centavos to avoid floating point issues.
type Money struct {
	Amount   int64
	Currency string
}

// New constructs a Money value validating minimal invariants.
func New(amount int64, currency string) (Money, error) {
	if len(currency) != 3 {
		return Money{}, ErrInvalidCurrency
	}
	currency = strings.ToUpper(currency)
	return Money{Amount: amount, Currency: currency}, nil
}

// Must creates Money and panics if validation fails; useful in tests and fixtures.
func Must(amount int64, currency string) Money {
	m, err := New(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// BRL builds a Money value in the default currency.
func BRL(centavos int64) Money {
	return Money{Amount: centavos, Currency: DefaultCurrency}
}

// Add adds two money values ensuring currencies match.
func (m Money) Add(other Money) (Money, error) {
	if err := m.ensureSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

// Sub subtracts other from the receiver.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.ensureSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount - other.Amount, Currency: m.Currency}, nil
}

// Multiply multiplies the amount by the provided factor.
func (m Money) Multiply(times int64) Money {
	return Money{Amount: m.Amount * times, Currency: m.Currency}
}

// IsZero returns true if the amount equals zero.
func (m Money) IsZero() bool {
	return m.Amount == 0
}

func (m Money) ensureSameCurrency(other Money) error {
	if m.Currency == "" || other.Currency == "" {
		return ErrInvalidCurrency
	}
	if m.Currency != other.Currency {
		return ErrCurrencyMismatch
	}
	return nil
}

// ParseBRL converts a decimal string such as "150.00" into centavos.
// Fixture and config files carry amounts in major units.
func ParseBRL(value string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	centavos := d.Mul(decimal.NewFromInt(100))
	if !centavos.IsInteger() {
		return Money{}, ErrInvalidAmount
	}
	return BRL(centavos.IntPart()), nil
}

// FormatBRL renders the amount in pt-BR display style ("R$ 1.234,56").
// Display only: engine math never touches formatted values.
func FormatBRL(m Money) string {
	d := decimal.NewFromInt(m.Amount).Div(decimal.NewFromInt(100))
	plain := d.StringFixed(2)

	negative := strings.HasPrefix(plain, "-")
	plain = strings.TrimPrefix(plain, "-")

	parts := strings.SplitN(plain, ".", 2)
	whole, frac := parts[0], parts[1]

	var grouped strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}

	out := "R$ " + grouped.String() + "," + frac
	if negative {
		out = "-" + out
	}
	return out
}

package numeral

import (
	"errors"
	"fmt"
)

// DefaultMaxLength bounds the combined additive length of two summands.
// With M as the largest symbol, the largest sum is about DefaultMaxLength*1000.
const DefaultMaxLength = 5000

var errEmptyNumeral = errors.New("empty numeral")

// Calculator adds and subtracts numerals using a shared Table.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	table     *Table
	maxLength int
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithTable makes the calculator use an existing table.
func WithTable(t *Table) Option {
	return func(c *Calculator) {
		if t != nil {
			c.table = t
		}
	}
}

// WithMaxLength overrides DefaultMaxLength. Non-positive values are ignored.
func WithMaxLength(n int) Option {
	return func(c *Calculator) {
		if n > 0 {
			c.maxLength = n
		}
	}
}

// NewCalculator creates a Calculator.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{maxLength: DefaultMaxLength}
	for _, opt := range opts {
		opt(c)
	}
	if c.table == nil {
		c.table = NewTable()
	}
	return c
}

// Table returns the rule tables the calculator uses.
func (c *Calculator) Table() *Table {
	return c.table
}

// MaxLength returns the configured limit on combined summand length.
func (c *Calculator) MaxLength() int {
	return c.maxLength
}

// Add returns the sum of two numerals in minimal form.
func (c *Calculator) Add(augend, addend string) (string, error) {
	a, err := c.additiveTally("add", augend)
	if err != nil {
		return "", err
	}
	b, err := c.additiveTally("add", addend)
	if err != nil {
		return "", err
	}

	if n := a.Len() + b.Len(); n > c.maxLength {
		return "", &OpError{
			Op:   "add",
			Kind: KindNumeralTooLarge,
			Err:  fmt.Errorf("combined additive length %d exceeds %d", n, c.maxLength),
		}
	}

	sum := AddAdditive(a, b)
	return c.table.Contract(c.table.Bundle(sum)), nil
}

// Subtract returns minuend less subtrahend in minimal form. There is no
// numeral for zero or a negative amount, so those report ErrUnderflow.
//
// Operands are bundled before tallying, so IIIIIIIIII less V is V. Deficits
// are then settled from M down to I rather than from I up; see borrow.
func (c *Calculator) Subtract(minuend, subtrahend string) (string, error) {
	m, err := c.bundledTally("subtract", minuend)
	if err != nil {
		return "", err
	}
	s, err := c.bundledTally("subtract", subtrahend)
	if err != nil {
		return "", err
	}

	diff, err := c.borrow(m.Sub(s))
	if err != nil {
		return "", err
	}
	if diff.Len() == 0 {
		return "", &OpError{
			Op:   "subtract",
			Kind: KindUnderflow,
			Err:  fmt.Errorf("%s less %s leaves nothing", minuend, subtrahend),
		}
	}

	return c.table.Contract(c.table.Bundle(diff.String())), nil
}

// Expand returns the additive form of a numeral after checking its symbols.
func (c *Calculator) Expand(numeral string) (string, error) {
	t, err := c.additiveTally("expand", numeral)
	if err != nil {
		return "", err
	}
	return t.String(), nil
}

// Normalize rewrites a numeral into the minimal form the calculator
// produces, e.g. IM becomes CMXCIX and IIIII becomes V.
func (c *Calculator) Normalize(numeral string) (string, error) {
	t, err := c.additiveTally("normalize", numeral)
	if err != nil {
		return "", err
	}
	return c.table.Contract(c.table.Bundle(t.String())), nil
}

// borrow clears negative counts the way one makes change: a deficit in a
// symbol is covered by exchanging one of the next larger symbol still on
// hand, repeatedly, until the count is no longer negative. Larger deficits
// are settled first so a small one never spends the symbol a larger one
// needs (L less XI must not change the L into I's).
func (c *Calculator) borrow(t Tally) (Tally, error) {
	if _, short := t.Negative(); !short {
		return t, nil
	}

	for i := len(Symbols) - 1; i >= 0; i-- {
		s := Symbols[i]
		for t[s] < 0 {
			lender, ok := t.lender(s)
			if !ok {
				return Tally{}, &OpError{
					Op:   "subtract",
					Kind: KindUnderflow,
					Err:  fmt.Errorf("nothing larger than %s left to borrow from", s),
				}
			}
			t[lender]--
			t[s] += c.table.Rate(lender, s)
		}
	}
	return t, nil
}

// lender returns the smallest symbol above s with a positive count.
func (t Tally) lender(s Symbol) (Symbol, bool) {
	for next := s + 1; next <= M; next++ {
		if t[next] > 0 {
			return next, true
		}
	}
	return 0, false
}

func (c *Calculator) additiveTally(op, numeral string) (Tally, error) {
	if numeral == "" {
		return Tally{}, &OpError{Op: op, Kind: KindInvalidSymbol, Err: errEmptyNumeral}
	}
	if _, err := CountSymbols(numeral); err != nil {
		var oe *OpError
		if errors.As(err, &oe) {
			oe.Op = op
		}
		return Tally{}, err
	}
	return CountSymbols(c.table.ToAdditive(numeral))
}

// bundledTally tallies a numeral after carrying its runs, so a tally never
// holds five I's where a V would do.
func (c *Calculator) bundledTally(op, numeral string) (Tally, error) {
	t, err := c.additiveTally(op, numeral)
	if err != nil {
		return Tally{}, err
	}
	return CountSymbols(c.table.Bundle(t.String()))
}

var defaultCalculator = NewCalculator()

// Add returns the sum of two numerals using DefaultMaxLength.
func Add(augend, addend string) (string, error) {
	return defaultCalculator.Add(augend, addend)
}

// Subtract returns the difference of two numerals.
func Subtract(minuend, subtrahend string) (string, error) {
	return defaultCalculator.Subtract(minuend, subtrahend)
}

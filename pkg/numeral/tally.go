package numeral

import "strings"

// Tally counts how many of each symbol a numeral holds. Counts may go
// negative while a subtraction borrows.
type Tally [symbolCount]int

// CountSymbols tallies an additive numeral.
func CountSymbols(additive string) (Tally, error) {
	var t Tally
	for i, r := range additive {
		s, ok := ParseSymbol(r)
		if !ok {
			return Tally{}, &OpError{
				Op:      "tally",
				Kind:    KindInvalidSymbol,
				Numeral: additive,
				Pos:     i,
			}
		}
		t[s]++
	}
	return t, nil
}

// Add returns the symbol-by-symbol sum of t and o.
func (t Tally) Add(o Tally) Tally {
	for s := range t {
		t[s] += o[s]
	}
	return t
}

// Sub returns the symbol-by-symbol difference of t and o.
func (t Tally) Sub(o Tally) Tally {
	for s := range t {
		t[s] -= o[s]
	}
	return t
}

// Len returns the number of symbols the tally writes out to.
func (t Tally) Len() int {
	n := 0
	for _, c := range t {
		if c > 0 {
			n += c
		}
	}
	return n
}

// Negative returns the smallest symbol with a negative count.
func (t Tally) Negative() (Symbol, bool) {
	for _, s := range Symbols {
		if t[s] < 0 {
			return s, true
		}
	}
	return 0, false
}

// String writes the tally as an additive numeral, largest symbols first.
// Negative counts are written as nothing.
func (t Tally) String() string {
	var b strings.Builder
	b.Grow(t.Len())
	for s := M; s >= I; s-- {
		if t[s] > 0 {
			b.WriteString(strings.Repeat(s.String(), t[s]))
		}
	}
	return b.String()
}

// AddAdditive merges two tallies into one additive numeral. The result is
// pure repetition, ready for bundling.
func AddAdditive(a, b Tally) string {
	return a.Add(b).String()
}

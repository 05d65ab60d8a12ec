// Package numeral adds and subtracts Roman numerals the way a Roman could:
// by moving symbols around, without converting to integers.
//
// A numeral is first written additively (IV becomes IIII), symbols are
// tallied and combined, runs of symbols are bundled into larger ones
// (IIIII becomes V), and finally subtractive forms are put back.
package numeral

// Symbol is one of the seven Roman numeral symbols, ordered by value.
type Symbol int

const (
	I Symbol = iota
	V
	X
	L
	C
	D
	M

	symbolCount = int(M) + 1
)

// Symbols lists every symbol in ascending order of value.
var Symbols = [symbolCount]Symbol{I, V, X, L, C, D, M}

var symbolRunes = [symbolCount]rune{'I', 'V', 'X', 'L', 'C', 'D', 'M'}

var symbolValues = [symbolCount]int{1, 5, 10, 50, 100, 500, 1000}

// Value returns the decimal value the symbol stands for. It is used only to
// derive the symbol table, never to evaluate a numeral.
func (s Symbol) Value() int {
	return symbolValues[s]
}

// Rune returns the character for the symbol.
func (s Symbol) Rune() rune {
	return symbolRunes[s]
}

func (s Symbol) String() string {
	if s < I || s > M {
		return "?"
	}
	return string(symbolRunes[s])
}

// ParseSymbol returns the symbol written as r.
func ParseSymbol(r rune) (Symbol, bool) {
	switch r {
	case 'I':
		return I, true
	case 'V':
		return V, true
	case 'X':
		return X, true
	case 'L':
		return L, true
	case 'C':
		return C, true
	case 'D':
		return D, true
	case 'M':
		return M, true
	}
	return 0, false
}

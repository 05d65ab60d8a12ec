package numeral

import (
	"strings"

	"github.com/shunichi-ikebuchi/roman-calculator/pkg/rewrite"
)

// Digraph is a subtractive form: a lower symbol written before a higher one.
type Digraph struct {
	Low  Symbol
	High Symbol
}

// Short returns the two-character subtractive form, e.g. "IV".
func (d Digraph) Short() string {
	return string([]rune{d.Low.Rune(), d.High.Rune()})
}

// Expansion returns the additive form the digraph stands for, found by
// taking Low away from High and writing what is left with the symbols
// below High, largest first: IV is IIII, IL is XXXXVIIII, DM is D.
func (d Digraph) Expansion() string {
	remaining := d.High.Value() - d.Low.Value()

	var b strings.Builder
	for s := d.High - 1; s >= I; s-- {
		for remaining >= s.Value() {
			b.WriteRune(s.Rune())
			remaining -= s.Value()
		}
	}
	return b.String()
}

func (d Digraph) String() string {
	return d.Short()
}

// Contractions that would only lengthen a bundled numeral. They are kept in
// the digraph list so that normalization still understands them.
var contractionSkip = []string{"VX", "LC", "DM"}

// Table holds the rule tables shared by every calculation. It is built once
// by NewTable and never modified afterwards, so one Table may be used from
// many goroutines.
type Table struct {
	digraphs     []Digraph
	expansions   []rewrite.Rule
	contractions []rewrite.Rule
	bundles      []rewrite.Rule
	rates        [symbolCount][symbolCount]int
}

// NewTable derives the digraph, bundling and exchange-rate tables.
func NewTable() *Table {
	t := &Table{}

	// Canonical order: by low symbol, then by high symbol.
	for low := I; low < M; low++ {
		for high := low + 1; high <= M; high++ {
			d := Digraph{Low: low, High: high}
			t.digraphs = append(t.digraphs, d)
			t.expansions = append(t.expansions, rewrite.Rule{
				Pattern:     d.Short(),
				Replacement: d.Expansion(),
			})
			t.contractions = append(t.contractions, rewrite.Rule{
				Pattern:     d.Expansion(),
				Replacement: d.Short(),
			})
		}
	}

	// From I upward: ten of a decade symbol, then five of it, then a pair of
	// the half-decade symbol produced above.
	for _, s := range []Symbol{I, X, C} {
		t.bundles = append(t.bundles,
			rewrite.Rule{Pattern: strings.Repeat(s.String(), 10), Replacement: (s + 2).String()},
			rewrite.Rule{Pattern: strings.Repeat(s.String(), 5), Replacement: (s + 1).String()},
			rewrite.Rule{Pattern: strings.Repeat((s + 1).String(), 2), Replacement: (s + 2).String()},
		)
	}

	for _, high := range Symbols {
		for _, low := range Symbols[:high+1] {
			t.rates[high][low] = high.Value() / low.Value()
		}
	}

	return t
}

// Digraphs returns the 21 subtractive forms in canonical order.
func (t *Table) Digraphs() []Digraph {
	out := make([]Digraph, len(t.digraphs))
	copy(out, t.digraphs)
	return out
}

// Rate returns how many low symbols one high symbol exchanges for.
// It is zero when high is smaller than low.
func (t *Table) Rate(high, low Symbol) int {
	return t.rates[high][low]
}

// ToAdditive rewrites every subtractive form in numeral as plain repetition.
// Forms are expanded from IV up to DM, matching only the digraphs written in
// the input so expansions are never expanded twice.
func (t *Table) ToAdditive(numeral string) string {
	return rewrite.ReplaceRules(numeral, t.expansions)
}

// Bundle carries runs of symbols into larger ones (IIIII becomes V, VV
// becomes X) until at most three of I, X or C and one of V, L or D stand
// together. Bundling a bundled numeral returns it unchanged.
func (t *Table) Bundle(additive string) string {
	out := rewrite.ReplaceRules(additive, t.bundles)

	// A carry can land behind a smaller symbol, e.g. when VVVV precedes
	// IIIIIIIIII. Put the symbols back in order and carry again.
	for !descending(out) {
		tally, err := CountSymbols(out)
		if err != nil {
			break
		}
		out = rewrite.ReplaceRules(tally.String(), t.bundles)
	}

	return out
}

// Contract reintroduces subtractive forms into a bundled additive numeral,
// from DM down to IV.
func (t *Table) Contract(bundled string) string {
	return rewrite.ReplaceRange(bundled, t.contractions, len(t.contractions)-1, -1, contractionSkip)
}

// descending reports whether no symbol is followed by a larger one.
func descending(numeral string) bool {
	prev := M
	for _, r := range numeral {
		s, ok := ParseSymbol(r)
		if !ok {
			return true
		}
		if s > prev {
			return false
		}
		prev = s
	}
	return true
}

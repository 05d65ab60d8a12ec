// Package rewrite provides table-driven substring replacement.
//
// Every function returns a newly built string; inputs are never modified.
package rewrite

import "strings"

// Rule replaces every occurrence of Pattern with Replacement.
type Rule struct {
	Pattern     string
	Replacement string
}

// ReplaceAll replaces all non-overlapping occurrences of pattern in text,
// scanning left to right. Matches are found in the original text only, so
// characters written by a replacement are never scanned again.
// An empty pattern leaves text unchanged.
func ReplaceAll(text, pattern, replacement string) string {
	if pattern == "" {
		return text
	}

	matches := strings.Count(text, pattern)
	if matches == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + matches*(len(replacement)-len(pattern)))

	rest := text
	for {
		i := strings.Index(rest, pattern)
		if i < 0 {
			break
		}
		b.WriteString(rest[:i])
		b.WriteString(replacement)
		rest = rest[i+len(pattern):]
	}
	b.WriteString(rest)

	return b.String()
}

// ReplaceRange applies rules[start], rules[start±1], ... up to but excluding
// rules[stop]. The walk runs backward when stop < start. Rules whose
// replacement appears in skip are not applied. Each rule is applied to the
// whole text before the next one starts.
func ReplaceRange(text string, rules []Rule, start, stop int, skip []string) string {
	step := 1
	if stop < start {
		step = -1
	}

	for i := start; i != stop; i += step {
		rule := rules[i]
		if skipped(rule.Replacement, skip) {
			continue
		}
		text = ReplaceAll(text, rule.Pattern, rule.Replacement)
	}

	return text
}

// ReplaceRules applies every rule in table order.
func ReplaceRules(text string, rules []Rule, skip ...string) string {
	return ReplaceRange(text, rules, 0, len(rules), skip)
}

func skipped(replacement string, skip []string) bool {
	for _, s := range skip {
		if s == replacement {
			return true
		}
	}
	return false
}

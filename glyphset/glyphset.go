// Package glyphset builds the ordered codepoint lists an atlas font request
// rasterizes.
//
// Order matters: the atlas packer is deterministic for a given input order,
// so every constructor here returns codepoints in a stable order without
// duplicates.
package glyphset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// First and last codepoints of the printable ASCII range.
const (
	PrintableFirst rune = 32
	PrintableLast  rune = 126
)

// ErrInvalidExpr is returned by Parse for malformed glyph set expressions.
var ErrInvalidExpr = errors.New("glyphset: invalid expression")

// Printable returns the 95 printable ASCII codepoints 32..126.
func Printable() []rune {
	return Range(PrintableFirst, PrintableLast)
}

// Range returns lo..hi inclusive. It returns nil if hi < lo.
func Range(lo, hi rune) []rune {
	if hi < lo {
		return nil
	}
	out := make([]rune, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		out = append(out, r)
	}
	return out
}

// FromString returns the distinct runes of s in order of first appearance.
func FromString(s string) []rune {
	return Merge([]rune(s))
}

// FromTables returns every codepoint of the given Unicode tables in
// ascending order.
func FromTables(tables ...*unicode.RangeTable) []rune {
	if len(tables) == 0 {
		return nil
	}
	var out []rune
	rangetable.Visit(rangetable.Merge(tables...), func(r rune) {
		out = append(out, r)
	})
	return out
}

// Merge concatenates sets, dropping repeated codepoints.
func Merge(sets ...[]rune) []rune {
	seen := make(map[rune]struct{})
	var out []rune
	for _, set := range sets {
		for _, r := range set {
			if _, ok := seen[r]; ok {
				continue
			}
			seen[r] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}

// Parse builds a set from a comma separated expression. Each item is one of:
//
//	ascii          printable ASCII 32..126
//	65             a single codepoint (decimal, 0x41 or U+0041)
//	0x400-0x4ff    an inclusive range
//	Cyrillic       a Unicode script or category name (unicode.Scripts,
//	               unicode.Categories)
//	=abc           the literal characters after '='
//
// A literal runs to the end of the expression, so it may contain commas
// and must come last: "ascii,=äöü,«»".
func Parse(expr string) ([]rune, error) {
	var sets [][]rune
	for rest := expr; rest != ""; {
		var item string
		if lit := strings.TrimLeft(rest, " \t"); strings.HasPrefix(lit, "=") {
			item, rest = lit, ""
		} else {
			item, rest, _ = strings.Cut(rest, ",")
			item = strings.TrimSpace(item)
		}
		if item == "" {
			continue
		}
		set, err := parseItem(item)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	out := Merge(sets...)
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %q selects no glyphs", ErrInvalidExpr, expr)
	}
	return out, nil
}

func parseItem(item string) ([]rune, error) {
	if strings.HasPrefix(item, "=") {
		return FromString(item[1:]), nil
	}
	if strings.EqualFold(item, "ascii") {
		return Printable(), nil
	}
	if t, ok := unicode.Scripts[item]; ok {
		return FromTables(t), nil
	}
	if t, ok := unicode.Categories[item]; ok {
		return FromTables(t), nil
	}

	lo, hi, isRange := strings.Cut(item, "-")
	a, err := parseRune(lo)
	if err != nil {
		return nil, err
	}
	if !isRange {
		return []rune{a}, nil
	}
	b, err := parseRune(hi)
	if err != nil {
		return nil, err
	}
	if b < a {
		return nil, fmt.Errorf("%w: empty range %q", ErrInvalidExpr, item)
	}
	return Range(a, b), nil
}

func parseRune(s string) (rune, error) {
	s = strings.TrimSpace(s)
	base := 10
	switch {
	case strings.HasPrefix(s, "U+"), strings.HasPrefix(s, "u+"):
		s, base = s[2:], 16
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s, base = s[2:], 16
	}
	v, err := strconv.ParseInt(s, base, 32)
	if err != nil || v < 0 || v > unicode.MaxRune {
		return 0, fmt.Errorf("%w: bad codepoint %q", ErrInvalidExpr, s)
	}
	return rune(v), nil
}

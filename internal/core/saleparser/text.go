package saleparser

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// amountExpr matches a plain money amount: "50", "1,200", "12.50".
const amountExpr = `(\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?)`

// rule is one row of an extractor dispatch table. Rows are evaluated in
// order and the first row whose build accepts a match wins.
type rule[T any] struct {
	name       string
	pattern    *regexp.Regexp
	confidence float64
	when       func(text string) bool // optional gate on the whole text
	build      func(m []string) (T, bool)
}

// firstMatch walks the table in priority order. Every match of a row is
// offered to build before moving on to the next row.
func firstMatch[T any](rules []rule[T], text string) (value T, confidence float64, name string, ok bool) {
	for _, r := range rules {
		if r.when != nil && !r.when(text) {
			continue
		}
		for _, m := range r.pattern.FindAllStringSubmatch(text, -1) {
			if v, accepted := r.build(m); accepted {
				return v, r.confidence, r.name, true
			}
		}
	}
	return value, 0, "", false
}

// parseAmount turns a captured amount into a decimal, dropping thousands
// separators. Amounts that do not fit a finite float64 are rejected.
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	if f := d.InexactFloat64(); math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Zero, false
	}
	return d, true
}

// amountFloat is parseAmount for callers that want the float value directly.
func amountFloat(s string) (float64, bool) {
	d, ok := parseAmount(s)
	if !ok {
		return 0, false
	}
	return d.InexactFloat64(), true
}

// titleCase upper-cases the first letter of every whitespace-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// normalize is the single lower-case/trim pass every extractor shares.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

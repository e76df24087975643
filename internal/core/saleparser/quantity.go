package saleparser

import (
	"regexp"
	"strings"
)

// ounceUnitExpr matches the unit after an ounce fraction: "oz", "an oz",
// "of an ounce".
const ounceUnitExpr = `(?:(?:of\s+)?an?\s+)?(?:oz|ounce)`

// Gram equivalents for ounce fractions.
const (
	gramsPerEighth  = 3.5
	gramsPerQuarter = 7
	gramsPerHalf    = 14
	gramsPerOunce   = 28
)

var ounceFractions = map[string]float64{
	"eighth":  gramsPerEighth,
	"1/8":     gramsPerEighth,
	"quarter": gramsPerQuarter,
	"1/4":     gramsPerQuarter,
	"half":    gramsPerHalf,
	"1/2":     gramsPerHalf,
}

var quantityRules = []rule[float64]{
	{
		name:       "grams",
		pattern:    regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:grams?|g)\b`),
		confidence: 0.9,
		build:      positiveNumber,
	},
	{
		name:       "ounce_fraction",
		pattern:    regexp.MustCompile(`(half|quarter|eighth|1/2|1/4|1/8)\s*` + ounceUnitExpr),
		confidence: 0.8,
		build: func(m []string) (float64, bool) {
			g, ok := ounceFractions[m[1]]
			return g, ok
		},
	},
	{
		// weak co-occurrence check: only trusted when a "g" appears somewhere
		name:       "bare_number",
		pattern:    regexp.MustCompile(`(\d+(?:\.\d+)?)\s+(?:of|in|for|at)\b`),
		confidence: 0.7,
		when:       func(text string) bool { return strings.Contains(text, "g") },
		build:      positiveNumber,
	},
	{
		name:       "parenthesized_grams",
		pattern:    regexp.MustCompile(`\((\d+(?:\.\d+)?)\s*g\)`),
		confidence: 0.9,
		build:      positiveNumber,
	},
}

// quantityKeywords backfill a quantity from loose slang, most specific first.
var quantityKeywords = []struct {
	words []string
	grams float64
}{
	{[]string{"eighth"}, gramsPerEighth},
	{[]string{"quarter", "quad"}, gramsPerQuarter},
	{[]string{"half"}, gramsPerHalf},
	{[]string{"ounce", " oz", "zip"}, gramsPerOunce},
}

const keywordConfidence = 0.8

// extractQuantity resolves a gram quantity from normalized text.
func extractQuantity(text string) (float64, float64) {
	quantity, confidence, _, _ := firstMatch(quantityRules, text)

	// Keyword layer: fills an unresolved quantity, or lifts a weaker match
	// that agrees with the slang used.
	for _, kw := range quantityKeywords {
		if !containsAny(text, kw.words) {
			continue
		}
		if quantity == 0 {
			quantity = kw.grams
			confidence = max(confidence, keywordConfidence)
		} else if quantity == kw.grams {
			confidence = max(confidence, keywordConfidence)
		}
		break
	}

	return quantity, confidence
}

func positiveNumber(m []string) (float64, bool) {
	v, ok := amountFloat(m[1])
	return v, ok && v > 0
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

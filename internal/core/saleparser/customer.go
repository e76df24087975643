package saleparser

import (
	"regexp"
	"strings"
)

const (
	// up to three words; apostrophes and hyphens allowed inside a word
	nameExpr = `([a-z][a-z'-]*(?:\s+[a-z][a-z'-]*){0,2}?)`
	// a name ends at punctuation, a preposition, an article or weight word,
	// a relative date word, a money sign, a digit, or the end of the text
	nameStopExpr = `(?:\s*[,.!?;:]|\s+(?:(?:on|at|for|with|and|a|an|the|some|half|quarter|eighth|yesterday|today|tomorrow|last|this|next)\b|\$|\d)|\s*$)`
)

// nonNames are words a name capture must never start with.
var nonNames = map[string]bool{
	"i": true, "me": true, "him": true, "her": true, "them": true, "us": true,
	"it": true, "you": true, "he": true, "she": true, "we": true, "they": true,
	"a": true, "an": true, "the": true, "some": true, "my": true, "his": true,
	"their": true, "our": true, "your": true, "cash": true, "credit": true,
	"tick": true, "free": true, "half": true, "quarter": true, "eighth": true,
	"ounce": true, "oz": true, "total": true, "profit": true, "paid": true,
	"to": true, "for": true, "on": true, "at": true, "with": true, "from": true,
	"and": true, "of": true, "in": true,
}

var customerRules = []rule[string]{
	{
		name:       "to_for_name",
		pattern:    regexp.MustCompile(`\b(?:to|for)\s+` + nameExpr + nameStopExpr),
		confidence: 0.8,
		build:      acceptName,
	},
	{
		name:       "name_bought",
		pattern:    regexp.MustCompile(`^([a-z][a-z'-]*(?:\s+[a-z][a-z'-]*)?)\s+(?:bought|got|purchased)\b`),
		confidence: 0.7,
		build:      acceptName,
	},
	{
		name:       "sold_gave_name",
		pattern:    regexp.MustCompile(`\b(?:sold|gave)\s+` + nameExpr + nameStopExpr),
		confidence: 0.9,
		build:      acceptName,
	},
	{
		name:       "dropped_to_name",
		pattern:    regexp.MustCompile(`\b(?:dropped|fronted|ticked)\b.*?\bto\s+` + nameExpr + nameStopExpr),
		confidence: 0.8,
		build:      acceptName,
	},
}

var descriptorRule = rule[string]{
	name:       "descriptor_name",
	pattern:    regexp.MustCompile(`\b(fat|big|little|lil|tall|skinny|old|young|crazy)\s+([a-z][a-z'-]*)\b`),
	confidence: 0.7,
	build: func(m []string) (string, bool) {
		if nonNames[m[2]] || isWeightWord(m[2]) {
			return "", false
		}
		return m[1] + " " + m[2], true
	},
}

// extractCustomer resolves the counterparty name from normalized text.
func extractCustomer(text string) (string, float64) {
	name, confidence, _, ok := firstMatch(customerRules, text)
	if !ok {
		name, confidence, _, ok = firstMatch([]rule[string]{descriptorRule}, text)
	}
	if !ok {
		return "", 0
	}
	return name, confidence
}

func acceptName(m []string) (string, bool) {
	name := strings.TrimSpace(m[1])
	if name == "" {
		return "", false
	}
	first := strings.Fields(name)[0]
	if nonNames[first] || isWeightWord(first) {
		return "", false
	}
	return name, true
}

package saleparser

import "regexp"

const (
	tickConfidence    = 0.9
	notTickConfidence = 0.7
)

// tickPatterns mark a deferred-payment ("tick") sale. Any hit is enough.
var tickPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:tick|ticked|front|fronted)\b`),
	regexp.MustCompile(`\bon\s+(?:tick|credit)\b`),
	regexp.MustCompile(`\b(?:credit|no pay|not paid|unpaid)\b`),
	regexp.MustCompile(`\b(?:owe|owes|owing)\b`),
	regexp.MustCompile(`\b(?:pending|payment pending)\b`),
	regexp.MustCompile(`\$0\s*paid\b|\bpaid\s*\$0\b|\b0\s+paid\b`),
}

// detectTick classifies normalized text as a tick sale.
func detectTick(text string) (bool, float64) {
	for _, p := range tickPatterns {
		if p.MatchString(text) {
			return true, tickConfidence
		}
	}
	return false, notTickConfidence
}

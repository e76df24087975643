package saleparser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// strainFallbackRules run on normalized text when the matcher finds nothing.
var strainFallbackRules = []rule[string]{
	{
		name:       "of_got_before_preposition",
		pattern:    regexp.MustCompile(`\b(?:of|got)\s+([a-z][a-z\s'-]*?)\s+(?:to|for|from|at|on|with)\b`),
		confidence: 0.7,
		build:      cleanStrain,
	},
	{
		name:       "after_grams",
		pattern:    regexp.MustCompile(`\d+(?:\.\d+)?\s*(?:grams?|g)\s+(?:of\s+)?([a-z][a-z\s'-]*?)\s+(?:to|for)\b`),
		confidence: 0.6,
		build:      cleanStrain,
	},
	{
		name:       "after_sale_verb",
		pattern:    regexp.MustCompile(`\b(?:sold|fronted|ticked)\s+([a-z][a-z\s'-]*?)\s+(?:to|for)\b`),
		confidence: 0.5,
		build:      cleanStrain,
	},
}

var leadingArticles = map[string]bool{"a": true, "an": true, "the": true, "some": true}

const maxStrainWords = 4

// Parser turns free-text sale descriptions into ParsedSale records.
// A Parser holds no per-call state and is safe for concurrent use.
type Parser struct {
	now     func() time.Time
	matcher *StrainMatcher
	logger  zerolog.Logger
}

// Option configures a Parser
type Option func(*Parser)

// WithClock sets the time source used for "now" defaults and relative dates.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

// WithMatcher sets the known-strain matcher.
func WithMatcher(m *StrainMatcher) Option {
	return func(p *Parser) {
		if m != nil {
			p.matcher = m
		}
	}
}

// WithLogger sets the logger used to report recovered failures.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Parser) {
		p.logger = l
	}
}

var defaultMatcher = NewStrainMatcher(defaultStrains)

// New creates a parser. Without options it uses the wall clock and the
// built-in strain list.
func New(opts ...Option) *Parser {
	p := &Parser{
		now:     time.Now,
		matcher: defaultMatcher,
		logger:  log.Logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = New()

// Parse parses text with the default parser.
func Parse(text string) ParsedSale {
	return defaultParser.Parse(text)
}

// Parse never fails: any internal panic yields the full-failure record
// (all defaults, every confidence zero) instead of a partial result.
func (p *Parser) Parse(text string) (sale ParsedSale) {
	now := p.now()
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().
				Err(fmt.Errorf("%v", r)).
				Str("raw_input", text).
				Msg("sale parse failed, returning empty result")
			sale = failedSale(text, now)
		}
	}()
	return p.parse(text, now)
}

func (p *Parser) parse(raw string, now time.Time) ParsedSale {
	text := normalize(raw)

	// Stage 1: independent extractors
	strain, strainConf := p.resolveStrain(raw, text)
	quantity, quantityConf := extractQuantity(text)
	customer, customerConf := extractCustomer(text)
	salePrice, priceConf := extractPrice(text)
	date, dateConf := extractDate(text, now)
	isTick, _ := detectTick(text)

	// Stage 2: extractors fed by stage 1 results
	profit, profitConf := extractProfit(text, salePrice)

	sale := ParsedSale{
		Customer:  titleCase(customer),
		Strain:    titleCase(strain),
		Date:      date,
		Quantity:  quantity,
		SalePrice: salePrice,
		Profit:    profit,
		IsTick:    isTick,
		RawInput:  raw,
		Confidence: ConfidenceScores{
			Customer:  customerConf,
			Strain:    strainConf,
			Date:      dateConf,
			Quantity:  quantityConf,
			SalePrice: priceConf,
			Profit:    profitConf,
		}.Clamp(),
	}
	if isTick {
		paid, _ := extractPaidAmount(text, isTick)
		sale.PaidSoFar = &paid
	}
	return sale
}

// resolveStrain tries the matcher on the original casing first, then the
// fallback patterns on the normalized text in fixed priority.
func (p *Parser) resolveStrain(raw, text string) (string, float64) {
	if m := p.matcher.Match(strings.TrimSpace(raw)); m.Strain != "" {
		return m.Strain, m.Confidence
	}
	strain, confidence, _, ok := firstMatch(strainFallbackRules, text)
	if !ok {
		return "", 0
	}
	return strain, confidence
}

// cleanStrain drops leading articles and rejects captures that are only
// weight words ("a half oz") or too long to be a product name.
func cleanStrain(m []string) (string, bool) {
	words := strings.Fields(m[1])
	for len(words) > 0 && leadingArticles[words[0]] {
		words = words[1:]
	}
	if len(words) == 0 || len(words) > maxStrainWords {
		return "", false
	}
	allWeight := true
	for _, w := range words {
		if !isWeightWord(w) {
			allWeight = false
			break
		}
	}
	if allWeight {
		return "", false
	}
	return strings.Join(words, " "), true
}

package saleparser

import (
	"regexp"

	"github.com/shopspring/decimal"
)

const (
	profitEstimateConfidence = 0.3
	paidConfidence           = 0.8
)

// profitEstimateRatio is the share of the sale price assumed to be profit
// when the text names no profit.
var profitEstimateRatio = decimal.RequireFromString("0.6")

var priceRules = []rule[decimal.Decimal]{
	{
		name:       "dollar_amount",
		pattern:    regexp.MustCompile(`\$\s*` + amountExpr),
		confidence: 0.9,
		build:      decimalAmount,
	},
	{
		name:       "for_amount",
		pattern:    regexp.MustCompile(`\bfor\s+` + amountExpr),
		confidence: 0.8,
		build:      decimalAmount,
	},
	{
		name:       "price_keyword",
		pattern:    regexp.MustCompile(`\b(?:sold for|price|cost|paid)\s*:?\s*\$?\s*` + amountExpr),
		confidence: 0.7,
		build:      decimalAmount,
	},
	{
		name:       "owes_amount",
		pattern:    regexp.MustCompile(`\b(?:owes|owe|owing)\s+(?:me\s+)?\$?\s*` + amountExpr),
		confidence: 0.6,
		build:      decimalAmount,
	},
}

var profitRules = []rule[decimal.Decimal]{
	{
		name:       "profit_keyword",
		pattern:    regexp.MustCompile(`\b(?:profit|made)\s*(?:of\s+)?:?\s*\$?\s*` + amountExpr),
		confidence: 0.9,
		build:      decimalAmount,
	},
	{
		name:       "with_amount_profit",
		pattern:    regexp.MustCompile(`\bwith\s+\$?\s*` + amountExpr + `\s+(?:in\s+)?profit\b`),
		confidence: 0.8,
		build:      decimalAmount,
	},
}

var paidRules = []rule[decimal.Decimal]{
	{
		name:       "paid_amount",
		pattern:    regexp.MustCompile(`\b(?:paid|gave|received|got)\s+(?:me\s+)?\$?\s*` + amountExpr + `(\s*(?:grams?|g|oz)\b)?`),
		confidence: paidConfidence,
		build: func(m []string) (decimal.Decimal, bool) {
			// "got 3.5g" is a quantity, not a payment
			if m[2] != "" {
				return decimal.Zero, false
			}
			return parseAmount(m[1])
		},
	},
	{
		name:       "amount_paid",
		pattern:    regexp.MustCompile(`\$?\s*` + amountExpr + `\s+(?:paid|given|received)\b`),
		confidence: paidConfidence,
		build:      decimalAmount,
	},
}

// extractPrice resolves the sale price from normalized text.
func extractPrice(text string) (float64, float64) {
	price, confidence, _, ok := firstMatch(priceRules, text)
	if !ok {
		return 0, 0
	}
	return price.InexactFloat64(), confidence
}

// extractProfit resolves an explicit profit, or estimates one from the
// resolved sale price. The estimate carries a deliberately low confidence
// so it is always flagged for review.
func extractProfit(text string, salePrice float64) (float64, float64) {
	if profit, confidence, _, ok := firstMatch(profitRules, text); ok {
		return profit.InexactFloat64(), confidence
	}
	if salePrice > 0 {
		estimate := decimal.NewFromFloat(salePrice).Mul(profitEstimateRatio).Round(0)
		return estimate.InexactFloat64(), profitEstimateConfidence
	}
	return 0, 0
}

// extractPaidAmount resolves how much of a tick sale is already paid.
// Non-tick sales are never searched.
func extractPaidAmount(text string, isTick bool) (float64, float64) {
	if !isTick {
		return 0, 0
	}
	paid, confidence, _, ok := firstMatch(paidRules, text)
	if !ok {
		return 0, 0
	}
	return paid.InexactFloat64(), confidence
}

func decimalAmount(m []string) (decimal.Decimal, bool) {
	return parseAmount(m[1])
}

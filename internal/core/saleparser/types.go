package saleparser

import "time"

// ParsedSale is the structured result of parsing one free-text sale description
type ParsedSale struct {
	Customer   string           `json:"customer"`
	Strain     string           `json:"strain"`
	Date       time.Time        `json:"date"`
	Quantity   float64          `json:"quantity"` // grams
	SalePrice  float64          `json:"sale_price"`
	Profit     float64          `json:"profit"`
	IsTick     bool             `json:"is_tick"`
	PaidSoFar  *float64         `json:"paid_so_far,omitempty"` // only set for tick sales
	RawInput   string           `json:"raw_input,omitempty"`
	Confidence ConfidenceScores `json:"confidence"`
}

// ConfidenceScores holds one [0,1] score per extracted field
type ConfidenceScores struct {
	Customer  float64 `json:"customer"`
	Strain    float64 `json:"strain"`
	Date      float64 `json:"date"`
	Quantity  float64 `json:"quantity"`
	SalePrice float64 `json:"sale_price"`
	Profit    float64 `json:"profit"`
}

// Field names as reported by NeedsReview, in fixed order.
const (
	FieldCustomer  = "customer"
	FieldStrain    = "strain"
	FieldDate      = "date"
	FieldQuantity  = "quantity"
	FieldSalePrice = "sale_price"
	FieldProfit    = "profit"
)

// Fields returns the scores paired with their field names, in review order.
func (c ConfidenceScores) Fields() []FieldScore {
	return []FieldScore{
		{Field: FieldCustomer, Score: c.Customer},
		{Field: FieldStrain, Score: c.Strain},
		{Field: FieldDate, Score: c.Date},
		{Field: FieldQuantity, Score: c.Quantity},
		{Field: FieldSalePrice, Score: c.SalePrice},
		{Field: FieldProfit, Score: c.Profit},
	}
}

// FieldScore pairs a field name with its confidence
type FieldScore struct {
	Field string
	Score float64
}

// Clamp forces every score into [0,1]
func (c ConfidenceScores) Clamp() ConfidenceScores {
	return ConfidenceScores{
		Customer:  clamp01(c.Customer),
		Strain:    clamp01(c.Strain),
		Date:      clamp01(c.Date),
		Quantity:  clamp01(c.Quantity),
		SalePrice: clamp01(c.SalePrice),
		Profit:    clamp01(c.Profit),
	}
}

// NeedsReview returns the fields whose confidence is below threshold.
// Callers surface these for human edit before the sale is saved.
func (s ParsedSale) NeedsReview(threshold float64) []string {
	fields := []string{}
	for _, f := range s.Confidence.Fields() {
		if f.Score < threshold {
			fields = append(fields, f.Field)
		}
	}
	return fields
}

// Failed reports whether s is the full-failure record. A completed parse
// always scores the date at 0.5 or higher.
func (s ParsedSale) Failed() bool {
	return s.Confidence == ConfidenceScores{}
}

// StrainMatch is the transient result of the strain matcher
type StrainMatch struct {
	Strain     string
	Confidence float64
}

// KnownStrain is a canonical strain name plus the aliases people write for it
type KnownStrain struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
}

// failedSale is the full-failure sentinel: all defaults, every confidence zero.
func failedSale(raw string, now time.Time) ParsedSale {
	return ParsedSale{
		Date:     now,
		RawInput: raw,
	}
}

func clamp01(v float64) float64 {
	switch {
	case v != v: // NaN
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

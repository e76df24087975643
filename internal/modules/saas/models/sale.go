package models

import (
	"github.com/google/uuid"

	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/core/saleparser"
)

// MaxBatchLines caps a batch parse request
const MaxBatchLines = 100

// ParseSaleRequest represents a single parse request
type ParseSaleRequest struct {
	Text string `json:"text"`
}

// ParseBatchRequest takes either explicit lines or one multi-line text
type ParseBatchRequest struct {
	Lines []string `json:"lines,omitempty"`
	Text  string   `json:"text,omitempty"`
}

// ParseResult is one parsed sale plus the fields a human should confirm
type ParseResult struct {
	ParseID     uuid.UUID             `json:"parse_id"`
	Sale        saleparser.ParsedSale `json:"sale"`
	NeedsReview []string              `json:"needs_review"`
}

// ParseBatchResponse wraps batch results
type ParseBatchResponse struct {
	Results []ParseResult `json:"results"`
	Count   int           `json:"count"`
	Flagged int           `json:"flagged"`
}

package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/core/saleparser"
)

// ParseLog records one parse: the raw text, the headline fields, the full
// result as JSON and the fields that were flagged for review.
type ParseLog struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	RawInput  string  `json:"raw_input" gorm:"type:text;not null"`
	Customer  string  `json:"customer" gorm:"type:text"`
	Strain    string  `json:"strain" gorm:"type:text"`
	Quantity  float64 `json:"quantity"`
	SalePrice float64 `json:"sale_price"`
	Profit    float64 `json:"profit"`
	IsTick    bool    `json:"is_tick"`

	Flagged     bool           `json:"flagged" gorm:"index"`
	NeedsReview pq.StringArray `json:"needs_review" gorm:"type:text[]"`
	Result      datatypes.JSON `json:"result,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// TableName specifies the table name
func (ParseLog) TableName() string {
	return "parse_logs"
}

// BeforeCreate sets UUID before creating
func (l *ParseLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// NewParseLog builds the log row for a parsed sale
func NewParseLog(id uuid.UUID, sale saleparser.ParsedSale, needsReview []string) (*ParseLog, error) {
	result, err := json.Marshal(sale)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize parse result: %w", err)
	}
	return &ParseLog{
		ID:          id,
		RawInput:    sale.RawInput,
		Customer:    sale.Customer,
		Strain:      sale.Strain,
		Quantity:    sale.Quantity,
		SalePrice:   sale.SalePrice,
		Profit:      sale.Profit,
		IsTick:      sale.IsTick,
		Flagged:     len(needsReview) > 0,
		NeedsReview: pq.StringArray(needsReview),
		Result:      datatypes.JSON(result),
	}, nil
}

// Sale decodes the stored result
func (l *ParseLog) Sale() (saleparser.ParsedSale, error) {
	var sale saleparser.ParsedSale
	if len(l.Result) == 0 {
		return sale, fmt.Errorf("parse log %s has no stored result", l.ID)
	}
	if err := json.Unmarshal(l.Result, &sale); err != nil {
		return sale, fmt.Errorf("failed to decode parse result: %w", err)
	}
	return sale, nil
}

// ParseLogFilter represents filters for listing parse logs
type ParseLogFilter struct {
	NeedsReview *bool
	Since       *time.Time
	Page        int
	PageSize    int
}

func (f *ParseLogFilter) normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 50
	}
	if f.PageSize > 200 {
		f.PageSize = 200
	}
}

func (f ParseLogFilter) offset() int {
	return (f.Page - 1) * f.PageSize
}

// ParseLogResponse represents a paginated parse log list
type ParseLogResponse struct {
	Logs       []ParseLog `json:"logs"`
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

func newResponse(logs []ParseLog, total int64, f ParseLogFilter) *ParseLogResponse {
	if logs == nil {
		logs = []ParseLog{}
	}
	totalPages := int(total) / f.PageSize
	if int(total)%f.PageSize > 0 {
		totalPages++
	}
	return &ParseLogResponse{
		Logs:       logs,
		TotalCount: total,
		Page:       f.Page,
		PageSize:   f.PageSize,
		TotalPages: totalPages,
	}
}

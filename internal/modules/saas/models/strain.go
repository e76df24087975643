package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/core/saleparser"
)

// Strain is a catalog entry the parser recognizes by name or alias
type Strain struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string         `gorm:"type:text;not null" json:"name"`
	Aliases   pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"aliases"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Strain) TableName() string {
	return "strains"
}

// BeforeCreate sets UUID before creating
func (s *Strain) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Known converts the row into the parser's reference type
func (s Strain) Known() saleparser.KnownStrain {
	return saleparser.KnownStrain{Name: s.Name, Aliases: append([]string(nil), s.Aliases...)}
}

// CreateStrainRequest represents strain creation request
type CreateStrainRequest struct {
	Name    string   `json:"name" validate:"required,min=1,max=100"`
	Aliases []string `json:"aliases,omitempty"`
}

// Normalize trims the name and drops blank or repeated aliases
func (r *CreateStrainRequest) Normalize() {
	r.Name = strings.Join(strings.Fields(r.Name), " ")
	seen := map[string]bool{strings.ToLower(r.Name): true}
	aliases := r.Aliases[:0]
	for _, a := range r.Aliases {
		a = strings.TrimSpace(a)
		key := strings.ToLower(a)
		if a == "" || seen[key] {
			continue
		}
		seen[key] = true
		aliases = append(aliases, a)
	}
	r.Aliases = aliases
}

// StrainListResponse lists the catalog the parser currently uses
type StrainListResponse struct {
	Strains  []saleparser.KnownStrain `json:"strains"`
	Total    int                      `json:"total"`
	LoadedAt time.Time                `json:"loaded_at"`
}

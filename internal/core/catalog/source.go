package catalog

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/core/saleparser"
)

// Source supplies known strain names to the catalog
type Source interface {
	Name() string
	LoadStrains(ctx context.Context) ([]saleparser.KnownStrain, error)
}

// StaticSource serves a fixed list
type StaticSource struct {
	name    string
	strains []saleparser.KnownStrain
}

func NewStaticSource(name string, strains []saleparser.KnownStrain) *StaticSource {
	return &StaticSource{name: name, strains: strains}
}

// DefaultSource serves the parser's built-in common strain list
func DefaultSource() *StaticSource {
	return NewStaticSource("builtin", saleparser.DefaultStrains())
}

func (s *StaticSource) Name() string { return s.name }

func (s *StaticSource) LoadStrains(ctx context.Context) ([]saleparser.KnownStrain, error) {
	out := make([]saleparser.KnownStrain, len(s.strains))
	copy(out, s.strains)
	return out, nil
}

// ReadStrainList reads one strain per line in the form
//
//	Girl Scout Cookies|gsc,cookies
//
// Blank lines and lines starting with # are skipped.
func ReadStrainList(r io.Reader) ([]saleparser.KnownStrain, error) {
	var strains []saleparser.KnownStrain
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, aliasList, _ := strings.Cut(line, "|")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("line %d: missing strain name", lineNo)
		}

		strain := saleparser.KnownStrain{Name: name}
		for _, alias := range strings.Split(aliasList, ",") {
			if alias = strings.TrimSpace(alias); alias != "" {
				strain.Aliases = append(strain.Aliases, alias)
			}
		}
		strains = append(strains, strain)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read strain list: %w", err)
	}
	return strains, nil
}

// merge dedupes by lower-cased name. The first spelling of a name wins;
// later sources only contribute extra aliases.
func merge(lists ...[]saleparser.KnownStrain) []saleparser.KnownStrain {
	var merged []saleparser.KnownStrain
	index := make(map[string]int)
	seenAlias := make(map[string]map[string]bool)

	for _, list := range lists {
		for _, s := range list {
			name := strings.TrimSpace(s.Name)
			if name == "" {
				continue
			}
			key := strings.ToLower(name)
			i, ok := index[key]
			if !ok {
				i = len(merged)
				index[key] = i
				seenAlias[key] = make(map[string]bool)
				merged = append(merged, saleparser.KnownStrain{Name: name})
			}
			for _, alias := range s.Aliases {
				a := strings.ToLower(strings.TrimSpace(alias))
				if a == "" || a == key || seenAlias[key][a] {
					continue
				}
				seenAlias[key][a] = true
				merged[i].Aliases = append(merged[i].Aliases, strings.TrimSpace(alias))
			}
		}
	}
	return merged
}

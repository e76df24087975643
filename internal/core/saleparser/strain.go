package saleparser

import (
	"regexp"
	"sort"
	"strings"
)

const (
	knownStrainConfidence = 1.0
	capitalRunConfidence  = 0.8
	capitalWordConfidence = 0.6
)

// defaultStrains is the built-in reference set used when no catalog is wired.
var defaultStrains = []KnownStrain{
	{Name: "Blue Dream"},
	{Name: "OG Kush", Aliases: []string{"og"}},
	{Name: "Sour Diesel", Aliases: []string{"sour d", "sd"}},
	{Name: "Girl Scout Cookies", Aliases: []string{"gsc", "cookies"}},
	{Name: "Northern Lights"},
	{Name: "Granddaddy Purple", Aliases: []string{"gdp"}},
	{Name: "Green Crack"},
	{Name: "Jack Herer"},
	{Name: "White Widow"},
	{Name: "Pineapple Express"},
	{Name: "Gelato"},
	{Name: "Wedding Cake"},
	{Name: "Gorilla Glue", Aliases: []string{"gg4", "gorilla glue #4"}},
	{Name: "Purple Haze"},
	{Name: "AK-47", Aliases: []string{"ak47"}},
	{Name: "Durban Poison"},
	{Name: "Trainwreck"},
	{Name: "Bubba Kush"},
	{Name: "Zkittlez", Aliases: []string{"skittles"}},
	{Name: "Runtz"},
	{Name: "Sherbet", Aliases: []string{"sunset sherbet"}},
	{Name: "Skywalker OG"},
	{Name: "Lemon Haze"},
	{Name: "Super Lemon Haze", Aliases: []string{"slh"}},
	{Name: "Strawberry Cough"},
	{Name: "Cherry Pie"},
	{Name: "Tangie"},
	{Name: "Maui Wowie"},
	{Name: "Chemdawg"},
	{Name: "Headband"},
	{Name: "Mimosa"},
	{Name: "Do-Si-Dos", Aliases: []string{"dosidos", "dosi"}},
	{Name: "Purple Punch"},
	{Name: "Ice Cream Cake"},
}

// DefaultStrains returns a copy of the built-in strain reference set.
func DefaultStrains() []KnownStrain {
	out := make([]KnownStrain, len(defaultStrains))
	for i, s := range defaultStrains {
		out[i] = KnownStrain{Name: s.Name, Aliases: append([]string(nil), s.Aliases...)}
	}
	return out
}

// Words that are capitalized in prose but are never a strain.
var strainDenylist = map[string]bool{
	"sold": true, "ticked": true, "fronted": true, "dropped": true, "gave": true,
	"got": true, "bought": true, "purchased": true, "made": true, "paid": true,
	"owes": true, "owe": true, "sent": true, "traded": true, "picked": true,
	"today": true, "yesterday": true, "tomorrow": true, "tonight": true,
	"total": true, "profit": true, "the": true, "and": true,
	"january": true, "february": true, "march": true, "april": true, "may": true,
	"june": true, "july": true, "august": true, "september": true, "october": true,
	"november": true, "december": true, "jan": true, "feb": true, "mar": true,
	"apr": true, "jun": true, "jul": true, "aug": true, "sep": true, "sept": true,
	"oct": true, "nov": true, "dec": true,
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
	"fat": true, "big": true, "little": true, "lil": true, "tall": true,
	"skinny": true, "old": true, "young": true, "crazy": true,
}

// A capitalized word right after one of these is a person, not a product.
var personLeadIns = map[string]bool{
	"to": true, "for": true, "from": true, "with": true, "by": true,
	"fat": true, "big": true, "little": true, "lil": true, "tall": true,
	"skinny": true, "old": true, "young": true, "crazy": true,
}

var weightWords = map[string]bool{
	"g": true, "gram": true, "grams": true, "oz": true, "ounce": true, "ounces": true,
	"half": true, "quarter": true, "eighth": true, "quad": true, "zip": true, "of": true,
}

var capitalizedWord = regexp.MustCompile(`^[A-Z][a-z]+$`)

type strainNeedle struct {
	needle    string
	canonical string
}

// StrainMatcher looks strains up in a known set, falling back to a
// capitalization heuristic on the original-cased text. It is immutable
// once built and safe for concurrent use.
type StrainMatcher struct {
	needles []strainNeedle
	names   []string
}

// NewStrainMatcher builds a matcher over the given strains. Names and
// aliases are matched case-insensitively; the longest needle wins.
func NewStrainMatcher(known []KnownStrain) *StrainMatcher {
	m := &StrainMatcher{}
	seen := map[string]bool{}
	for _, k := range known {
		name := strings.TrimSpace(k.Name)
		if name == "" {
			continue
		}
		m.names = append(m.names, name)
		for _, n := range append([]string{name}, k.Aliases...) {
			n = strings.ToLower(strings.TrimSpace(n))
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			m.needles = append(m.needles, strainNeedle{needle: n, canonical: name})
		}
	}
	sort.SliceStable(m.needles, func(i, j int) bool {
		return len(m.needles[i].needle) > len(m.needles[j].needle)
	})
	return m
}

// Names returns the canonical strain names the matcher knows.
func (m *StrainMatcher) Names() []string {
	return append([]string(nil), m.names...)
}

// Match finds a strain in raw (original-cased) text.
func (m *StrainMatcher) Match(raw string) StrainMatch {
	lower := strings.ToLower(raw)
	for _, n := range m.needles {
		if containsWholeWord(lower, n.needle) {
			return StrainMatch{Strain: n.canonical, Confidence: knownStrainConfidence}
		}
	}
	return matchCapitalized(raw)
}

// matchCapitalized is a low-precision fallback: runs of capitalized words
// that are not sentence-initial, not denylisted and not someone's name.
func matchCapitalized(raw string) StrainMatch {
	var runs [][]string
	var current []string
	prev := ""

	flush := func() {
		if len(current) > 0 {
			runs = append(runs, current)
			current = nil
		}
	}

	for i, tok := range strings.Fields(raw) {
		word := strings.Trim(tok, `,.!?;:()"'`)
		brokeAfter := strings.TrimRight(tok, `,.!?;:)"'`) != tok
		lower := strings.ToLower(word)

		eligible := i > 0 && capitalizedWord.MatchString(word) && !strainDenylist[lower]
		if eligible && len(current) == 0 && personLeadIns[prev] {
			eligible = false
		}
		if eligible {
			current = append(current, word)
		} else {
			flush()
		}
		if brokeAfter {
			flush()
		}
		prev = lower
	}
	flush()

	for _, r := range runs {
		if len(r) >= 2 {
			return StrainMatch{Strain: strings.Join(r, " "), Confidence: capitalRunConfidence}
		}
	}
	if len(runs) > 0 {
		return StrainMatch{Strain: runs[0][0], Confidence: capitalWordConfidence}
	}
	return StrainMatch{}
}

// containsWholeWord reports whether needle occurs in s bounded by non-word bytes.
func containsWholeWord(s, needle string) bool {
	for start := 0; start <= len(s)-len(needle); {
		idx := strings.Index(s[start:], needle)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(needle)
		if (idx == 0 || !isWordByte(s[idx-1])) && (end == len(s) || !isWordByte(s[end])) {
			return true
		}
		start = idx + 1
	}
	return false
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func isWeightWord(w string) bool {
	return weightWords[w]
}

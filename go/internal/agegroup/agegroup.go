// Package agegroup resolves age-group descriptors once at configuration time
// and matches athletes into a season's buckets.
package agegroup

import (
	"strconv"
	"strings"

	"github.com/mcdev12/rosterpool/go/internal/models"
)

// rangeSeparators split a descriptor like "8U-9U" or "8U/9U" into its bounds.
var rangeSeparators = []string{"-", "/"}

// Parse resolves raw descriptors into tagged age groups. A descriptor whose
// two sides both carry a numeric prefix becomes a RANGE group; everything else
// stays a LABEL group matched by string equality.
func Parse(descriptors []string) []models.AgeGroup {
	groups := make([]models.AgeGroup, 0, len(descriptors))
	for _, desc := range descriptors {
		groups = append(groups, ParseOne(desc))
	}
	return groups
}

// ParseOne resolves a single descriptor.
func ParseOne(desc string) models.AgeGroup {
	normalized := Normalize(desc)
	for _, sep := range rangeSeparators {
		lo, hi, ok := splitRange(normalized, sep)
		if !ok {
			continue
		}
		return models.AgeGroup{
			ID:     normalized,
			Label:  desc,
			Kind:   models.AgeGroupKindRange,
			MinAge: lo,
			MaxAge: hi,
		}
	}
	return models.AgeGroup{
		ID:    normalized,
		Label: desc,
		Kind:  models.AgeGroupKindLabel,
	}
}

// Match resolves an athlete's age-group label against a season's buckets.
// Exact label equality wins first, then inclusive numeric-range containment;
// first structural match in iteration order wins. With no configured groups at
// all the athlete's own label becomes a one-off bucket. An empty label never
// matches: the caller must prompt for a manual selection.
func Match(label string, groups []models.AgeGroup) (models.AgeGroup, bool) {
	normalized := Normalize(label)
	if normalized == "" {
		return models.AgeGroup{}, false
	}

	for _, g := range groups {
		if g.ID == normalized || Normalize(g.Label) == normalized {
			return g, true
		}
	}

	if age, ok := NumericPrefix(normalized); ok {
		for _, g := range groups {
			if g.Kind != models.AgeGroupKindRange {
				continue
			}
			if age >= g.MinAge && age <= g.MaxAge {
				return g, true
			}
		}
	}

	if len(groups) == 0 {
		// Degenerate season configuration: treat the athlete's own label
		// as a one-off bucket.
		return models.AgeGroup{
			ID:    normalized,
			Label: label,
			Kind:  models.AgeGroupKindLabel,
		}, true
	}

	return models.AgeGroup{}, false
}

// LabelForBirthDate derives an "NU" style label from an age in years, used
// when the athlete has no stored label.
func LabelForBirthDate(age int) string {
	if age <= 0 {
		return ""
	}
	return strconv.Itoa(age) + "U"
}

// Normalize uppercases and trims a label.
func Normalize(label string) string {
	return strings.ToUpper(strings.TrimSpace(label))
}

// NumericPrefix extracts the leading number of a label, stripping non-digit
// characters ("9U" -> 9).
func NumericPrefix(label string) (int, bool) {
	var digits strings.Builder
	for _, r := range label {
		if r < '0' || r > '9' {
			break
		}
		digits.WriteRune(r)
	}
	if digits.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, false
	}
	return n, true
}

func splitRange(desc, sep string) (int, int, bool) {
	parts := strings.SplitN(desc, sep, 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lo, okLo := NumericPrefix(strings.TrimSpace(parts[0]))
	hi, okHi := NumericPrefix(strings.TrimSpace(parts[1]))
	if !okLo || !okHi {
		return 0, 0, false
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo, hi, true
}

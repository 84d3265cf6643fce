package template

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
)

// Scoring weights. Fixed data, not tunable at runtime.
const (
	personaWeight       = 25
	vibeWeight          = 20
	budgetWeight        = 15
	interestWeight      = 10
	durationExactWeight = 10
	durationNearWeight  = 5
)

// NormalizeCity flattens caller casing to the catalog's canonical form:
// first rune upper, remainder lower. Multi-word names collapse too
// ("Hoi An" becomes "Hoi an"), which matches how the catalog stores
// single-word cities; widening the city domain means revisiting this.
func NormalizeCity(city string) string {
	if city == "" {
		return ""
	}
	runes := []rune(strings.ToLower(city))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Score computes the match percentage of one template against a query,
// plus the human-readable criteria that matched. Pure; safe for
// unlimited concurrent calls.
func Score(tpl Template, q Query) (int, []string) {
	score := 0
	matched := []string{}

	if len(q.Personas) > 0 {
		hits := overlap(q.Personas, tpl.TargetPersonas)
		score += len(hits) * personaWeight
		if len(hits) > 0 {
			matched = append(matched, "persona: "+strings.Join(hits, ", "))
		}
	}

	if len(q.Vibes) > 0 {
		hits := overlap(q.Vibes, tpl.TargetVibes)
		score += len(hits) * vibeWeight
		if len(hits) > 0 {
			matched = append(matched, "vibe: "+strings.Join(hits, ", "))
		}
	}

	if q.Budget != "" && tpl.TargetBudget == q.Budget {
		score += budgetWeight
		matched = append(matched, "budget: "+q.Budget)
	}

	if len(q.Interests) > 0 {
		hits := overlap(q.Interests, tpl.TargetInterests)
		score += len(hits) * interestWeight
		if len(hits) > 0 {
			matched = append(matched, "interests: "+strings.Join(hits, ", "))
		}
	}

	if q.DurationDays > 0 && tpl.DurationDays > 0 {
		diff := tpl.DurationDays - q.DurationDays
		if diff < 0 {
			diff = -diff
		}
		switch {
		case diff == 0:
			score += durationExactWeight
			matched = append(matched, fmt.Sprintf("duration: %d days", q.DurationDays))
		case diff == 1:
			score += durationNearWeight
		}
	}

	// The denominator treats every dimension as if it had at least one
	// queried tag, so sparse queries can never reach 100. Kept for
	// behavioral parity with recorded scores.
	denominator := atLeastOne(len(q.Personas))*personaWeight +
		atLeastOne(len(q.Vibes))*vibeWeight +
		budgetWeight +
		atLeastOne(len(q.Interests))*interestWeight +
		durationExactWeight

	pct := int(math.Round(float64(score) / float64(denominator) * 100))
	if pct > 100 {
		pct = 100
	}
	return pct, matched
}

// Rank scores every template and orders them best-first; equal scores
// fall back to the template's display order. Zero-score templates are
// kept, never filtered.
func Rank(templates []Template, q Query) []Scored {
	scored := make([]Scored, 0, len(templates))
	for _, tpl := range templates {
		pct, matched := Score(tpl, q)
		scored = append(scored, Scored{Template: tpl, MatchScore: pct, MatchedCriteria: matched})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].MatchScore != scored[j].MatchScore {
			return scored[i].MatchScore > scored[j].MatchScore
		}
		return scored[i].DisplayOrder < scored[j].DisplayOrder
	})
	return scored
}

func overlap(query, target []string) []string {
	hits := []string{}
	for _, q := range query {
		for _, t := range target {
			if q == t {
				hits = append(hits, q)
				break
			}
		}
	}
	return hits
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

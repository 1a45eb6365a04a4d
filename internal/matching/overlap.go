package matching

import "strings"

// AgeOverlap sums the audience percentage falling into the desired age
// buckets. desired holds bucket labels ("18-24"), distribution maps bucket ->
// percentage in [0,100]. Empty inputs score 0.
func AgeOverlap(desired []string, distribution map[string]float64) float64 {
	if len(desired) == 0 || len(distribution) == 0 {
		return 0
	}
	total := 0.0
	for _, bucket := range desired {
		total += distribution[bucket]
	}
	return clamp01(total / 100)
}

// InterestOverlap counts business interests covered by at least one KOL
// interest, using case-insensitive substring containment in either direction,
// and divides by the number of business interests. Empty business list -> 0.
//
// Substring containment (not exact match) tolerates loosely tagged taxonomies
// ("fitness" matches "fitness coaching") at the cost of false positives on
// coincidental substrings.
func InterestOverlap(businessInterests, kolInterests []string) float64 {
	return containmentRatio(businessInterests, kolInterests)
}

// CategoryRelevance applies the same containment algorithm to category lists.
func CategoryRelevance(businessCategories, kolCategories []string) float64 {
	return containmentRatio(businessCategories, kolCategories)
}

func containmentRatio(wanted, have []string) float64 {
	if len(wanted) == 0 {
		return 0
	}
	matched := 0
	for _, w := range wanted {
		if anyContains(have, w) {
			matched++
		}
	}
	return float64(matched) / float64(len(wanted))
}

func anyContains(list []string, term string) bool {
	t := strings.ToLower(strings.TrimSpace(term))
	if t == "" {
		return false
	}
	for _, item := range list {
		i := strings.ToLower(strings.TrimSpace(item))
		if i == "" {
			continue
		}
		if strings.Contains(i, t) || strings.Contains(t, i) {
			return true
		}
	}
	return false
}

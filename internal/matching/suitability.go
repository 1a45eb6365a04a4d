package matching

// Composite score weights.
const (
	weightAudienceMatch    = 0.4
	weightContentRelevance = 0.3
	weightEngagement       = 0.2
	weightHistorical       = 0.1
)

// HistoricalPerformance supplies a [0,1] factor for how a KOL performed in
// past campaigns. Real campaign-history data is not wired in yet; callers
// that have none should use ConstantHistoricalPerformance.
type HistoricalPerformance func(target TargetProfile, candidate CandidateProfile) float64

// DefaultHistoricalScore is the placeholder factor used until real
// campaign-history data exists.
const DefaultHistoricalScore = 0.7

// ConstantHistoricalPerformance returns a fixed historical factor.
func ConstantHistoricalPerformance(v float64) HistoricalPerformance {
	return func(TargetProfile, CandidateProfile) float64 { return clamp01(v) }
}

// SuitabilityBreakdown exposes the contributing sub-scores of a composite
// score, each already in [0,1].
type SuitabilityBreakdown struct {
	AudienceMatch         float64 `json:"audience_match"`
	ContentRelevance      float64 `json:"content_relevance"`
	EngagementQuality     float64 `json:"engagement_quality"`
	HistoricalPerformance float64 `json:"historical_performance"`
}

// SuitabilityScore computes the weighted composite in [0,1]:
//
//	0.4*audience + 0.3*content + 0.2*engagement + 0.1*historical
//
// Audience match is the mean of whichever of {age overlap, interest overlap}
// have inputs on both sides; with only one available it is that factor alone,
// with neither it is 0. Missing data always degrades the score, never errors.
func SuitabilityScore(target TargetProfile, candidate CandidateProfile, hist HistoricalPerformance) (float64, SuitabilityBreakdown) {
	if hist == nil {
		hist = ConstantHistoricalPerformance(DefaultHistoricalScore)
	}

	var audienceParts []float64
	if len(target.AgeRanges) > 0 && len(candidate.AgeDistribution) > 0 {
		audienceParts = append(audienceParts, AgeOverlap(target.AgeRanges, candidate.AgeDistribution))
	}
	if len(target.Interests) > 0 && len(candidate.TopInterests) > 0 {
		audienceParts = append(audienceParts, InterestOverlap(target.Interests, candidate.TopInterests))
	}
	audience := 0.0
	for _, p := range audienceParts {
		audience += p
	}
	if len(audienceParts) > 0 {
		audience /= float64(len(audienceParts))
	}

	b := SuitabilityBreakdown{
		AudienceMatch:         audience,
		ContentRelevance:      CategoryRelevance(target.Categories, candidate.Categories),
		EngagementQuality:     EngagementQuality(candidate.EngagementRate),
		HistoricalPerformance: clamp01(hist(target, candidate)),
	}

	score := b.AudienceMatch*weightAudienceMatch +
		b.ContentRelevance*weightContentRelevance +
		b.EngagementQuality*weightEngagement +
		b.HistoricalPerformance*weightHistorical

	return clamp01(score), b
}

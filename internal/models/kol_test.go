package models

import "testing"

func TestTotalFollowersAndBestEngagement(t *testing.T) {
	p := KOLProfile{
		Analytics: []PlatformAnalytics{
			{Platform: PlatformYouTube, Followers: 120_000, EngagementRate: 0.021},
			{Platform: PlatformInstagram, Followers: 45_000, EngagementRate: 0.048},
		},
	}

	if got := p.TotalFollowers(); got != 165_000 {
		t.Errorf("TotalFollowers() = %d, want 165000", got)
	}
	if got := p.BestEngagementRate(); got != 0.048 {
		t.Errorf("BestEngagementRate() = %v, want 0.048", got)
	}

	if a := p.AnalyticsFor(PlatformYouTube); a == nil || a.Followers != 120_000 {
		t.Errorf("AnalyticsFor(youtube) = %+v, want 120000 followers", a)
	}
	if a := p.AnalyticsFor(PlatformTikTok); a != nil {
		t.Errorf("AnalyticsFor(tiktok) = %+v, want nil", a)
	}
}

func TestRecommendationTier(t *testing.T) {
	tests := []struct {
		score float64
		tier  string
	}{
		{0.95, "excellent"},
		{0.8, "excellent"},
		{0.79, "good"},
		{0.6, "good"},
		{0.59, "fair"},
		{0.4, "fair"},
		{0.39, "poor"},
		{0, "poor"},
	}

	for _, tt := range tests {
		if got := RecommendationTier(tt.score); got != tt.tier {
			t.Errorf("RecommendationTier(%v) = %q, want %q", tt.score, got, tt.tier)
		}
	}
}

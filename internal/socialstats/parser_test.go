package socialstats

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"1.2K", 1200},
		{"1.5M", 1500000},
		{"123", 123},
		{"12,345", 12345},
		{"1 234", 1234},
		{"100K", 100000},
		{"2.3M", 2300000},
		{"0", 0},
		{"", 0},
		{"no number", 0},
		{"42k", 42000},
		{"3.14k", 3140},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parseCount(tt.input)
			if result != tt.expected {
				t.Errorf("parseCount(%q) = %d, want %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseProfileDocInstagramStyle(t *testing.T) {
	html := `<html><head>
		<meta property="og:description" content="1.2M Followers, 310 Following, 870 Posts - fitanna on Instagram" />
	</head><body></body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}

	stats := parseProfileDoc(doc, "instagram", "fitanna")
	if stats.Followers == nil || *stats.Followers != 1200000 {
		t.Errorf("followers = %v, want 1200000", stats.Followers)
	}
	if stats.Platform != "instagram" || stats.Handle != "fitanna" {
		t.Errorf("unexpected identity fields: %+v", stats)
	}
}

func TestParseProfileDocYouTubeStyle(t *testing.T) {
	html := `<html><head>
		<meta name="description" content="TechReviews has 85.4K subscribers. Weekly gadget reviews with 12K views per video." />
	</head><body></body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}

	stats := parseProfileDoc(doc, "youtube", "techreviews")
	if stats.Followers == nil || *stats.Followers != 85400 {
		t.Errorf("followers = %v, want 85400", stats.Followers)
	}
	if stats.AvgViews == nil || *stats.AvgViews != 12000 {
		t.Errorf("avg views = %v, want 12000", stats.AvgViews)
	}
}

func TestParseProfileDocNoCounts(t *testing.T) {
	html := `<html><head><title>nothing here</title></head><body></body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}

	stats := parseProfileDoc(doc, "tiktok", "ghost")
	if stats.Followers != nil {
		t.Errorf("expected nil followers, got %d", *stats.Followers)
	}
}

package socialstats

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// ProfileStats is one scrape of a public social-profile page.
type ProfileStats struct {
	Platform  string    `json:"platform"`
	Handle    string    `json:"handle"`
	Followers *int64    `json:"followers,omitempty"`
	AvgViews  *int64    `json:"avg_views,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Parser fetches public profile pages and extracts follower counts from
// their meta tags. It only sees what the platform exposes without auth, so
// engagement rates stay manual/API-fed; followers and view counts are enough
// to keep analytics snapshots from going stale.
type Parser struct {
	httpClient *http.Client
	log        *zap.Logger
	maxRetries int
}

func NewParser(timeoutMS, maxRetries int, log *zap.Logger) *Parser {
	return &Parser{
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutMS) * time.Millisecond,
		},
		log:        log,
		maxRetries: maxRetries,
	}
}

var profileURLs = map[string]string{
	"instagram": "https://www.instagram.com/%s/",
	"youtube":   "https://www.youtube.com/@%s/about",
	"tiktok":    "https://www.tiktok.com/@%s",
}

// FetchAndParse scrapes the public page for a platform handle.
func (p *Parser) FetchAndParse(ctx context.Context, platform, handle string) (*ProfileStats, error) {
	pattern, ok := profileURLs[platform]
	if !ok {
		return nil, fmt.Errorf("unsupported platform %q", platform)
	}
	url := fmt.Sprintf(pattern, strings.TrimPrefix(handle, "@"))

	var doc *goquery.Document
	var lastErr error

	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")

		resp, err := p.httpClient.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
			time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
			continue
		}

		doc, err = goquery.NewDocumentFromReader(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		lastErr = nil
		break
	}

	if lastErr != nil {
		return nil, lastErr
	}

	stats := parseProfileDoc(doc, platform, handle)
	if stats.Followers == nil {
		p.log.Debug("no follower count found on profile page",
			zap.String("platform", platform),
			zap.String("handle", handle),
		)
	}
	return stats, nil
}

var (
	followersRE  = regexp.MustCompile(`(?i)([\d][\d,. ]*[KkMm]?)\s*(followers|subscribers|fans)`)
	avgViewsRE   = regexp.MustCompile(`(?i)([\d][\d,. ]*[KkMm]?)\s*(views|likes)`)
	countTokenRE = regexp.MustCompile(`[\d,.]+[KkMm]?`)
)

func parseProfileDoc(doc *goquery.Document, platform, handle string) *ProfileStats {
	stats := &ProfileStats{
		Platform:  platform,
		Handle:    handle,
		FetchedAt: time.Now(),
	}

	// Public pages advertise counts in og/twitter description meta tags,
	// e.g. "1.2M Followers, 310 Following, 870 Posts".
	var descriptions []string
	doc.Find(`meta[property="og:description"], meta[name="description"], meta[name="twitter:description"]`).
		Each(func(_ int, s *goquery.Selection) {
			if content, ok := s.Attr("content"); ok {
				descriptions = append(descriptions, content)
			}
		})

	for _, desc := range descriptions {
		if stats.Followers == nil {
			if m := followersRE.FindStringSubmatch(desc); m != nil {
				if n := parseCount(m[1]); n > 0 {
					stats.Followers = &n
				}
			}
		}
		if stats.AvgViews == nil {
			if m := avgViewsRE.FindStringSubmatch(desc); m != nil {
				if n := parseCount(m[1]); n > 0 {
					stats.AvgViews = &n
				}
			}
		}
	}

	return stats
}

func parseCount(text string) int64 {
	text = strings.ReplaceAll(text, " ", "")
	text = strings.ReplaceAll(text, ",", "")

	match := countTokenRE.FindString(text)
	if match == "" {
		return 0
	}

	multiplier := int64(1)
	if strings.HasSuffix(match, "K") || strings.HasSuffix(match, "k") {
		multiplier = 1_000
		match = match[:len(match)-1]
	} else if strings.HasSuffix(match, "M") || strings.HasSuffix(match, "m") {
		multiplier = 1_000_000
		match = match[:len(match)-1]
	}

	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return int64(f * float64(multiplier))
}

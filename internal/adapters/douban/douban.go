package douban

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jqwang17/MediaSearch-API/internal/adapters/markup"
	"github.com/jqwang17/MediaSearch-API/internal/domain"
)

const (
	defaultBaseURL = "https://www.douban.com"
	maxCandidates  = 8

	browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Provider implements ports.MediaProvider for Douban search-page scraping.
// Only the listing page is fetched: there is no per-item detail request, so
// the poster URL is intentionally left empty at this layer. Enrichment, if
// any, happens through merging with another source.
type Provider struct {
	client *http.Client

	// BaseURL overrides the site root (used by tests).
	BaseURL string
}

// NewProvider creates a new Douban provider. If client is nil,
// http.DefaultClient is used.
func NewProvider(client *http.Client) *Provider {
	if client == nil {
		client = http.DefaultClient
	}
	return &Provider{client: client}
}

func (p *Provider) Name() string {
	return string(domain.SourceDouban)
}

func (p *Provider) baseURL() string {
	if p.BaseURL != "" {
		return strings.TrimRight(p.BaseURL, "/")
	}
	return defaultBaseURL
}

// subjectIDRe extracts the provider-internal subject id from the inline
// click-handler attribute on a result link. The href itself is a redirect
// URL and does not carry the id.
var subjectIDRe = regexp.MustCompile(`sid:\s*'?(\d+)`)

// -- MediaProvider implementation --------------------------------------------

func (p *Provider) Search(ctx context.Context, query string) ([]domain.Record, error) {
	endpoint := p.baseURL() + "/search?cat=1002&q=" + url.QueryEscape(query)

	body, err := p.fetch(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("douban: search fetch failed: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("douban: failed to parse search page: %w", err)
	}

	var records []domain.Record
	doc.Find("div.result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		rec, ok := p.listingRecord(s)
		if !ok {
			return true // skip malformed entries, keep the rest of the batch
		}
		records = append(records, rec)
		return len(records) < maxCandidates
	})

	return records, nil
}

func (p *Provider) listingRecord(s *goquery.Selection) (domain.Record, bool) {
	title := cleanTitle(markup.Text(s, "div.title a"))
	if title == "" {
		return domain.Record{}, false
	}

	onclick := markup.Attr(s, "div.title a", "onclick")
	m := subjectIDRe.FindStringSubmatch(onclick)
	if m == nil {
		return domain.Record{}, false
	}
	id := m[1]

	rating := 0.0
	if txt := markup.Text(s, "span.rating_nums"); txt != "" {
		if v, err := strconv.ParseFloat(txt, 64); err == nil && v > 0 {
			rating = v
		}
	}

	info := markup.ParseInfoLine(markup.Text(s, "span.subject-cast"))

	rec := domain.Record{
		SourceType:  domain.SourceDouban,
		SourceID:    id,
		SourceURL:   "https://movie.douban.com/subject/" + id + "/",
		MediaType:   domain.MediaMovie,
		Title:       title,
		ReleaseDate: info.ReleaseDate,
		Year:        info.Year,
		Staff:       info.Credits,
		Rating:      rating,
		Ratings:     domain.SourceRatings{Douban: rating},
		MatchCount:  1,
	}
	return rec, true
}

// -- HTTP helpers ------------------------------------------------------------

func (p *Provider) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUA)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("douban returned status %d", resp.StatusCode)
	}

	return body, nil
}

// -- Helpers -----------------------------------------------------------------

// cleanTitle strips playability markers Douban appends to result titles.
func cleanTitle(title string) string {
	title = strings.ReplaceAll(title, "[可播放]", "")
	return strings.TrimSpace(title)
}

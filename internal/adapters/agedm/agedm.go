package agedm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/jqwang17/MediaSearch-API/internal/adapters/markup"
	"github.com/jqwang17/MediaSearch-API/internal/domain"
)

const (
	defaultBaseURL = "https://www.agedm.org"
	maxCandidates  = 10

	// The site throttles search requests that arrive without a session
	// cookie; sending one up front bypasses the check.
	searchCookie = "search_ok=1"
	browserUA    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Provider implements ports.MediaProvider for the agedm anime site, which is
// reachable only through hypertext scraping. Each listing entry triggers a
// secondary detail-page fetch to recover the synopsis and the authoritative
// episode count.
type Provider struct {
	client *http.Client

	// BaseURL overrides the site root (used by tests).
	BaseURL string
}

// NewProvider creates a new agedm provider. If client is nil,
// http.DefaultClient is used.
func NewProvider(client *http.Client) *Provider {
	if client == nil {
		client = http.DefaultClient
	}
	return &Provider{client: client}
}

func (p *Provider) Name() string {
	return string(domain.SourceAgedm)
}

func (p *Provider) baseURL() string {
	if p.BaseURL != "" {
		return strings.TrimRight(p.BaseURL, "/")
	}
	return defaultBaseURL
}

// -- MediaProvider implementation --------------------------------------------

func (p *Provider) Search(ctx context.Context, query string) ([]domain.Record, error) {
	endpoint := p.baseURL() + "/search?query=" + url.QueryEscape(query)

	body, err := p.fetch(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("agedm: search fetch failed: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("agedm: failed to parse search page: %w", err)
	}

	var records []domain.Record
	doc.Find("div.video_item").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		rec, ok := p.listingRecord(s)
		if !ok {
			return true // skip malformed entries, keep the rest of the batch
		}
		records = append(records, rec)
		return len(records) < maxCandidates
	})

	// Detail pages carry the synopsis and the authoritative episode count.
	// A failed detail fetch degrades only that item's enrichment.
	var wg sync.WaitGroup
	for i := range records {
		wg.Add(1)
		go func(rec *domain.Record) {
			defer wg.Done()
			if err := p.enrich(ctx, rec); err != nil {
				log.Printf("[agedm] detail fetch for %s failed: %v", rec.SourceID, err)
			}
		}(&records[i])
	}
	wg.Wait()

	return records, nil
}

// listingRecord maps one search-result entry to a canonical record using
// listing-level fields only.
func (p *Provider) listingRecord(s *goquery.Selection) (domain.Record, bool) {
	title := markup.Text(s, "a.video_name")
	href := markup.Attr(s, "a.video_name", "href")
	if title == "" || href == "" {
		return domain.Record{}, false
	}

	poster := markup.Attr(s, "img.video_thumbs", "data-original")
	if poster == "" {
		poster = markup.Attr(s, "img.video_thumbs", "src")
	}

	info := markup.ParseInfoLine(markup.Text(s, "div.video_info"))

	rec := domain.Record{
		SourceType:  domain.SourceAgedm,
		SourceID:    idFromHref(href),
		SourceURL:   absoluteHref(p.baseURL(), href),
		MediaType:   domain.MediaAnime,
		Title:       title,
		ReleaseDate: info.ReleaseDate,
		Year:        info.Year,
		Duration:    info.Episodes, // listing estimate, detail page may override
		PosterURL:   markup.AbsoluteURL(poster),
		Staff:       info.Credits,
		MatchCount:  1,
	}
	return rec, true
}

// enrich fetches the per-item detail page and fills synopsis and episode
// count into rec.
func (p *Provider) enrich(ctx context.Context, rec *domain.Record) error {
	body, err := p.fetch(ctx, rec.SourceURL)
	if err != nil {
		return err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to parse detail page: %w", err)
	}

	if synopsis := markup.Text(doc.Selection, "div.video_detail_desc"); synopsis != "" {
		rec.Summary = paragraphs(synopsis)
	}
	if episodes := markup.Text(doc.Selection, "span.video_detail_episodes"); episodes != "" {
		rec.Duration = episodes
	}
	return nil
}

// -- HTTP helpers ------------------------------------------------------------

func (p *Provider) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUA)
	req.Header.Set("Cookie", searchCookie)

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
		return nil, fmt.Errorf("agedm returned status %d", resp.StatusCode)
	}

	return body, nil
}

// -- Helpers -----------------------------------------------------------------

var whitespaceRuns = regexp.MustCompile(`\s{2,}`)

// paragraphs restores paragraph breaks in a synopsis whose markup-level line
// breaks were lost during text extraction: whitespace runs become blank lines.
func paragraphs(s string) string {
	return whitespaceRuns.ReplaceAllString(strings.TrimSpace(s), "\n\n")
}

func idFromHref(href string) string {
	trimmed := strings.Trim(href, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	return strings.TrimSuffix(trimmed, ".html")
}

func absoluteHref(base, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return base + href
}

package maoyan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jqwang17/MediaSearch-API/internal/domain"
)

const (
	defaultBaseURL = "https://m.maoyan.com"
	maxCandidates  = 8

	// The mobile search endpoint requires a city id; results are pinned to
	// Beijing since the metadata itself is city-independent.
	cityID = "1"
)

// Provider implements ports.MediaProvider for the Maoyan mobile-web JSON API.
// One request, no secondary fetch: every entry maps directly to a canonical
// record.
type Provider struct {
	client *http.Client

	// BaseURL overrides the API root (used by tests).
	BaseURL string
}

// NewProvider creates a new Maoyan provider. If client is nil,
// http.DefaultClient is used.
func NewProvider(client *http.Client) *Provider {
	if client == nil {
		client = http.DefaultClient
	}
	return &Provider{client: client}
}

func (p *Provider) Name() string {
	return string(domain.SourceMaoyan)
}

func (p *Provider) baseURL() string {
	if p.BaseURL != "" {
		return strings.TrimRight(p.BaseURL, "/")
	}
	return defaultBaseURL
}

// -- API response types (internal) ------------------------------------------

type searchResponse struct {
	Movies movieList `json:"movies"`
}

type movieList struct {
	List []movieItem `json:"list"`
}

type movieItem struct {
	ID          int         `json:"id"`
	Name        string      `json:"nm"`
	EnglishName string      `json:"enm"`
	Image       string      `json:"img"`
	ReleaseTime string      `json:"rt"`
	Score       float64     `json:"sc"`
	Wish        int         `json:"wish"`
	Stars       string      `json:"star"`
	Categories  string      `json:"cat"`
	Synopsis    string      `json:"dra"`
	ShowState   stateButton `json:"showStateButton"`
}

type stateButton struct {
	Content string `json:"content"`
}

// -- MediaProvider implementation --------------------------------------------

func (p *Provider) Search(ctx context.Context, query string) ([]domain.Record, error) {
	endpoint := fmt.Sprintf("%s/ajax/search?kw=%s&cityId=%s&stype=-1",
		p.baseURL(), url.QueryEscape(query), cityID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("maoyan: search failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("maoyan: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("maoyan API returned status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("maoyan: failed to parse search response: %w", err)
	}

	var records []domain.Record
	for _, item := range parsed.Movies.List {
		if item.Name == "" {
			continue
		}
		records = append(records, toRecord(item))
		if len(records) == maxCandidates {
			break
		}
	}

	return records, nil
}

// -- Helpers -----------------------------------------------------------------

func toRecord(item movieItem) domain.Record {
	id := strconv.Itoa(item.ID)

	return domain.Record{
		SourceType:    domain.SourceMaoyan,
		SourceID:      id,
		SourceURL:     "https://m.maoyan.com/movie/" + id,
		MediaType:     domain.MediaMovie,
		Title:         item.Name,
		OriginalTitle: strings.TrimSpace(item.EnglishName),
		ReleaseDate:   item.ReleaseTime,
		Year:          yearOf(item.ReleaseTime),
		PosterURL:     posterURL(item.Image),
		Summary:       strings.TrimSpace(item.Synopsis),
		Staff:         strings.TrimSpace(item.Stars),
		Actors:        splitNames(item.Stars, 5),
		Rating:        item.Score,
		Ratings:       domain.SourceRatings{Maoyan: item.Score},
		Genres:        splitNames(item.Categories, 0),
		Wish:          strconv.Itoa(item.Wish),
		IsNew:         imminentRelease(item.ShowState.Content),
		MatchCount:    1,
	}
}

// imminentRelease reports whether the ticket call-to-action indicates the
// title is on pre-sale or on sale now.
func imminentRelease(button string) bool {
	return strings.Contains(button, "预售") || strings.Contains(button, "购票")
}

// posterURL fills the resolution placeholder Maoyan leaves in its image
// paths; without the substitution the URL does not resolve.
func posterURL(img string) string {
	return strings.Replace(img, "/w.h/", "/464.644/", 1)
}

func yearOf(release string) string {
	if len(release) >= 4 {
		if _, err := strconv.Atoi(release[:4]); err == nil {
			return release[:4]
		}
	}
	return ""
}

func splitNames(joined string, limit int) []string {
	var names []string
	for _, n := range strings.Split(joined, ",") {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		names = append(names, n)
		if limit > 0 && len(names) == limit {
			break
		}
	}
	return names
}

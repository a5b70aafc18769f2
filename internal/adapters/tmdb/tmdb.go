package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/jqwang17/MediaSearch-API/internal/domain"
)

const (
	defaultBaseURL  = "https://api.themoviedb.org/3"
	defaultImageURL = "https://image.tmdb.org/t/p/w500"
	maxCandidates   = 8
	maxDirectors    = 3
	maxActors       = 5
)

// Provider implements ports.MediaProvider for the TMDB structured metadata
// API. Search results are enriched with a parallel per-candidate detail fetch
// for runtime/episode counts and credited crew and cast.
type Provider struct {
	client *http.Client
	token  string

	// BaseURL overrides the API root (used by tests). Empty means the
	// production endpoint.
	BaseURL string
}

// NewProvider creates a new TMDB provider. If client is nil,
// http.DefaultClient is used. An empty token is allowed: Search then degrades
// to returning no results instead of failing the request.
func NewProvider(client *http.Client, token string) *Provider {
	if client == nil {
		client = http.DefaultClient
	}
	return &Provider{client: client, token: token}
}

func (p *Provider) Name() string {
	return string(domain.SourceTMDB)
}

func (p *Provider) baseURL() string {
	if p.BaseURL != "" {
		return strings.TrimRight(p.BaseURL, "/")
	}
	return defaultBaseURL
}

// -- API response types (internal) ------------------------------------------

type multiSearchResponse struct {
	Results []multiResult `json:"results"`
}

type multiResult struct {
	ID            int     `json:"id"`
	MediaType     string  `json:"media_type"`
	Title         string  `json:"title"`          // movie
	Name          string  `json:"name"`           // tv
	OriginalTitle string  `json:"original_title"` // movie
	OriginalName  string  `json:"original_name"`  // tv
	ReleaseDate   string  `json:"release_date"`   // movie
	FirstAirDate  string  `json:"first_air_date"` // tv
	PosterPath    string  `json:"poster_path"`
	Overview      string  `json:"overview"`
	VoteAverage   float64 `json:"vote_average"`
}

type detailResponse struct {
	Runtime          int         `json:"runtime"`            // movie
	NumberOfEpisodes int         `json:"number_of_episodes"` // tv
	Genres           []genreData `json:"genres"`
	CreatedBy        []nameData  `json:"created_by"` // tv
	Credits          creditsData `json:"credits"`
}

type genreData struct {
	Name string `json:"name"`
}

type nameData struct {
	Name string `json:"name"`
}

type creditsData struct {
	Cast []castData `json:"cast"`
	Crew []crewData `json:"crew"`
}

type castData struct {
	Name string `json:"name"`
}

type crewData struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// -- MediaProvider implementation --------------------------------------------

func (p *Provider) Search(ctx context.Context, query string) ([]domain.Record, error) {
	if p.token == "" {
		log.Printf("[tmdb] no API token configured, skipping provider")
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/search/multi?language=zh-CN&include_adult=false&query=%s",
		p.baseURL(), url.QueryEscape(query))

	body, err := p.doGet(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("tmdb: search failed: %w", err)
	}

	var resp multiSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("tmdb: failed to parse search response: %w", err)
	}

	candidates := make([]multiResult, 0, maxCandidates)
	for _, item := range resp.Results {
		if item.MediaType != "movie" && item.MediaType != "tv" {
			continue
		}
		candidates = append(candidates, item)
		if len(candidates) == maxCandidates {
			break
		}
	}

	// One detail fetch per candidate, in parallel. A failed detail fetch
	// degrades that record to its summary-level fields only.
	records := make([]domain.Record, len(candidates))
	var wg sync.WaitGroup
	for i, item := range candidates {
		wg.Add(1)
		go func(i int, item multiResult) {
			defer wg.Done()
			rec := p.summaryRecord(item)
			if err := p.enrich(ctx, &rec, item); err != nil {
				log.Printf("[tmdb] detail fetch for %s %d failed: %v", item.MediaType, item.ID, err)
			}
			records[i] = rec
		}(i, item)
	}
	wg.Wait()

	return records, nil
}

// summaryRecord maps a multi-search entry to a canonical record without any
// detail-level fields.
func (p *Provider) summaryRecord(item multiResult) domain.Record {
	title, original, release := item.Title, item.OriginalTitle, item.ReleaseDate
	mediaType := domain.MediaMovie
	if item.MediaType == "tv" {
		title, original, release = item.Name, item.OriginalName, item.FirstAirDate
		mediaType = domain.MediaTV
	}

	poster := ""
	if item.PosterPath != "" {
		poster = defaultImageURL + item.PosterPath
	}

	return domain.Record{
		SourceType:    domain.SourceTMDB,
		SourceID:      strconv.Itoa(item.ID),
		SourceURL:     fmt.Sprintf("https://www.themoviedb.org/%s/%d", item.MediaType, item.ID),
		MediaType:     mediaType,
		Title:         title,
		OriginalTitle: original,
		ReleaseDate:   release,
		Year:          yearOf(release),
		PosterURL:     poster,
		Summary:       strings.TrimSpace(item.Overview),
		Rating:        item.VoteAverage,
		Ratings:       domain.SourceRatings{TMDB: item.VoteAverage},
		MatchCount:    1,
	}
}

// enrich performs the per-candidate detail fetch and fills duration, genres,
// and crew/cast credits into rec.
func (p *Provider) enrich(ctx context.Context, rec *domain.Record, item multiResult) error {
	endpoint := fmt.Sprintf("%s/%s/%d?language=zh-CN&append_to_response=credits",
		p.baseURL(), item.MediaType, item.ID)

	body, err := p.doGet(ctx, endpoint)
	if err != nil {
		return err
	}

	var detail detailResponse
	if err := json.Unmarshal(body, &detail); err != nil {
		return fmt.Errorf("failed to parse detail response: %w", err)
	}

	if item.MediaType == "movie" && detail.Runtime > 0 {
		rec.Duration = fmt.Sprintf("%d分钟", detail.Runtime)
	}
	if item.MediaType == "tv" && detail.NumberOfEpisodes > 0 {
		rec.Duration = fmt.Sprintf("全%d集", detail.NumberOfEpisodes)
	}

	for _, g := range detail.Genres {
		if g.Name != "" {
			rec.Genres = append(rec.Genres, g.Name)
		}
	}

	for _, c := range detail.Credits.Crew {
		if c.Job != "Director" {
			continue
		}
		rec.Directors = append(rec.Directors, c.Name)
		if len(rec.Directors) == maxDirectors {
			break
		}
	}
	// Series creators count as directing credits too.
	for _, c := range detail.CreatedBy {
		if len(rec.Directors) == maxDirectors {
			break
		}
		rec.Directors = append(rec.Directors, c.Name)
	}

	for _, c := range detail.Credits.Cast {
		rec.Actors = append(rec.Actors, c.Name)
		if len(rec.Actors) == maxActors {
			break
		}
	}

	rec.Staff = staffLine(rec.Directors, rec.Actors)
	return nil
}

// -- HTTP helpers ------------------------------------------------------------

func (p *Provider) doGet(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Accept", "application/json")

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
		return nil, fmt.Errorf("tmdb API returned status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// -- Helpers -----------------------------------------------------------------

func yearOf(release string) string {
	if len(release) >= 4 {
		if _, err := strconv.Atoi(release[:4]); err == nil {
			return release[:4]
		}
	}
	return ""
}

func staffLine(directors, actors []string) string {
	var parts []string
	if len(directors) > 0 {
		parts = append(parts, "导演: "+strings.Join(directors, " / "))
	}
	if len(actors) > 0 {
		parts = append(parts, "主演: "+strings.Join(actors, " / "))
	}
	return strings.Join(parts, "  ")
}

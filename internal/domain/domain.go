package domain

// SourceType identifies the upstream provider a record came from.
// A SourceID is unique only within its own SourceType, never globally.
type SourceType string

const (
	SourceTMDB   SourceType = "tmdb"
	SourceAgedm  SourceType = "agedm"
	SourceMaoyan SourceType = "maoyan"
	SourceDouban SourceType = "douban"
)

// MediaType classifies the kind of title a record describes.
type MediaType string

const (
	MediaMovie MediaType = "movie"
	MediaTV    MediaType = "tv"
	MediaAnime MediaType = "anime"
)

// Display sentinels used only at the serialization boundary. Internally an
// unknown field is the zero value; merge and ranking logic never compares
// against these strings.
const (
	SentinelUnknown      = "未知"
	SentinelUnknownDate  = "未知日期"
	SentinelNoYear       = "----"
	SentinelNoSummary    = "暂无简介"
	SentinelNoStaff      = "暂无演职人员信息"
	SentinelUnknownTitle = "未知标题"
)

// SourceRatings holds the per-provider scores for a record. A zero value
// means the provider reported no score; ratings are never negative.
type SourceRatings struct {
	TMDB   float64 `json:"tmdb"`
	Agedm  float64 `json:"agedm"`
	Maoyan float64 `json:"maoyan"`
	Douban float64 `json:"douban"`
}

// Record is the canonical media description every adapter produces and the
// merge engine operates on. Unknown string fields are empty, unknown numeric
// fields are zero; display sentinels are applied by Render.
type Record struct {
	SourceType    SourceType
	SourceID      string
	SourceURL     string
	MediaType     MediaType
	Title         string // localized display title
	OriginalTitle string
	ReleaseDate   string // ISO-like or empty
	Year          string // 4-digit or empty
	Duration      string // free text, localized
	PosterURL     string
	Summary       string
	Staff         string // free-text credit summary
	Directors     []string
	Actors        []string
	Rating        float64
	Ratings       SourceRatings
	Genres        []string
	Wish          string // provider-specific want-to-see count
	IsNew         bool   // imminently releasing / pre-sale
	MatchCount    int    // number of source observations folded in, >= 1
}

// RecordView is the wire shape of a Record. Every field is always present in
// the serialized output; absent data is an empty slice, empty string, zero,
// or a display sentinel, never a missing key.
type RecordView struct {
	SourceType    SourceType    `json:"sourceType"`
	SourceID      string        `json:"sourceId"`
	SourceURL     string        `json:"sourceUrl"`
	MediaType     MediaType     `json:"mediaType"`
	Title         string        `json:"title"`
	OriginalTitle string        `json:"originalTitle"`
	ReleaseDate   string        `json:"releaseDate"`
	Year          string        `json:"year"`
	Duration      string        `json:"duration"`
	PosterURL     string        `json:"posterUrl"`
	Summary       string        `json:"summary"`
	Staff         string        `json:"staff"`
	Directors     []string      `json:"directors"`
	Actors        []string      `json:"actors"`
	Rating        float64       `json:"rating"`
	Ratings       SourceRatings `json:"ratings"`
	Genres        []string      `json:"genres"`
	Wish          string        `json:"wish"`
	IsNew         bool          `json:"isNew"`
	MatchCount    int           `json:"matchCount"`
}

// Render converts a Record to its wire shape, substituting display sentinels
// for unknown fields and guaranteeing non-nil slices.
func (r Record) Render() RecordView {
	v := RecordView{
		SourceType:    r.SourceType,
		SourceID:      r.SourceID,
		SourceURL:     r.SourceURL,
		MediaType:     r.MediaType,
		Title:         fallback(r.Title, SentinelUnknownTitle),
		OriginalTitle: r.OriginalTitle,
		ReleaseDate:   fallback(r.ReleaseDate, SentinelUnknownDate),
		Year:          fallback(r.Year, SentinelNoYear),
		Duration:      fallback(r.Duration, SentinelUnknown),
		PosterURL:     r.PosterURL,
		Summary:       fallback(r.Summary, SentinelNoSummary),
		Staff:         fallback(r.Staff, SentinelNoStaff),
		Directors:     r.Directors,
		Actors:        r.Actors,
		Rating:        r.Rating,
		Ratings:       r.Ratings,
		Genres:        r.Genres,
		Wish:          fallback(r.Wish, "0"),
		IsNew:         r.IsNew,
		MatchCount:    r.MatchCount,
	}
	if v.MatchCount < 1 {
		v.MatchCount = 1
	}
	if v.Directors == nil {
		v.Directors = []string{}
	}
	if v.Actors == nil {
		v.Actors = []string{}
	}
	if v.Genres == nil {
		v.Genres = []string{}
	}
	return v
}

func fallback(s, sentinel string) string {
	if s == "" {
		return sentinel
	}
	return s
}

// SearchRequest is the inbound request body. Type selects the provider set:
// "anime", "movie", or anything else for all providers.
type SearchRequest struct {
	Query string `json:"query"`
	Type  string `json:"type"`
}

// SearchResponse wraps the ranked result list.
type SearchResponse struct {
	Results []RecordView `json:"results"`
}

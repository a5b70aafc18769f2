package app

import (
	"testing"

	"github.com/jqwang17/MediaSearch-API/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- Hard filter -------------------------------------------------------------

func TestRank_DropsUnrenderableRecords(t *testing.T) {
	records := []domain.Record{
		{Title: domain.SentinelUnknownTitle, PosterURL: "http://x/a.jpg", MatchCount: 1},
		{Title: "", PosterURL: "http://x/b.jpg", MatchCount: 1},
		{Title: "没有海报的电影", PosterURL: "", Ratings: domain.SourceRatings{Douban: 9.0}, MatchCount: 1},
	}

	ranked := Rank(records, "电影")
	assert.Empty(t, ranked, "records without a poster or usable title are dropped unconditionally")
}

// -- Scoring tiers -----------------------------------------------------------

func TestRank_ExactMatchBeatsNearTitle(t *testing.T) {
	exact := domain.Record{
		SourceType: domain.SourceMaoyan,
		Title:      "铃芽户缔",
		Year:       "2022",
		PosterURL:  "http://x/a.jpg",
		Ratings:    domain.SourceRatings{Maoyan: 9.0},
		MatchCount: 2,
	}
	near := domain.Record{
		SourceType: domain.SourceDouban,
		Title:      "铃芽之旅",
		Year:       "2023",
		PosterURL:  "http://x/b.jpg",
		Ratings:    domain.SourceRatings{Douban: 8.0},
		MatchCount: 1,
	}

	// The year gap of 1 keeps the pair comparison-eligible, but the titles
	// neither equal nor contain one another, so they stay distinct.
	require.False(t, sameMedia(exact, near))

	ranked := Rank([]domain.Record{near, exact}, "铃芽户缔")
	require.Len(t, ranked, 2)
	assert.Equal(t, "铃芽户缔", ranked[0].Title)
	assert.Equal(t, "铃芽之旅", ranked[1].Title)
}

func TestRank_TierScores(t *testing.T) {
	nq := normalizeTitle("进击的巨人")

	rec := func(title string) domain.Record {
		return domain.Record{Title: title, PosterURL: "http://x/p.jpg", MatchCount: 1}
	}

	assert.Equal(t, 100, relevance(rec("进击的巨人"), nq), "exact match")
	assert.Equal(t, 80, relevance(rec("进击的巨人 最终季"), nq), "title starts with query")
	assert.Equal(t, 70, relevance(rec("进击"), nq), "query expands a short title")
	assert.Equal(t, 60, relevance(rec("TV动画 进击的巨人 第一季"), nq), "title contains query")
}

func TestRank_OriginalTitleMatches(t *testing.T) {
	r := domain.Record{
		Title:         "铃芽之旅",
		OriginalTitle: "すずめの戸締まり",
		PosterURL:     "http://x/p.jpg",
		MatchCount:    1,
	}
	assert.Equal(t, 100, relevance(r, normalizeTitle("すずめの戸締まり")))
}

func TestRank_CharOverlapFallback(t *testing.T) {
	r := domain.Record{Title: "铃芽之旅", PosterURL: "http://x/p.jpg", MatchCount: 1}

	// 铃 and 芽 occur in the title, 户 and 缔 do not: fraction 0.5 -> +20.
	assert.Equal(t, 20, relevance(r, normalizeTitle("铃芽户缔")))

	// Below the 0.5 threshold nothing is contributed.
	assert.Equal(t, 0, relevance(r, normalizeTitle("户缔门锁")))
}

func TestRank_CorroborationAndRatingBonuses(t *testing.T) {
	r := domain.Record{
		SourceType: domain.SourceTMDB,
		Title:      "流浪地球",
		PosterURL:  "http://x/p.jpg",
		Ratings:    domain.SourceRatings{TMDB: 7.9},
		MatchCount: 3,
	}
	// 2 extra observations (+60), exact match (+100), rating (+10), tmdb (+5)
	assert.Equal(t, 175, relevance(r, normalizeTitle("流浪地球")))
}

func TestRank_DropsLowScores(t *testing.T) {
	unrelated := domain.Record{
		SourceType: domain.SourceAgedm,
		Title:      "完全无关的番剧",
		PosterURL:  "http://x/p.jpg",
		MatchCount: 1,
	}
	ranked := Rank([]domain.Record{unrelated}, "铃芽户缔")
	assert.Empty(t, ranked, "scores below 10 are dropped")
}

func TestRank_StableOnTies(t *testing.T) {
	a := domain.Record{SourceType: domain.SourceMaoyan, Title: "同分电影甲", PosterURL: "http://x/a.jpg", MatchCount: 1}
	b := domain.Record{SourceType: domain.SourceMaoyan, Title: "同分电影乙", PosterURL: "http://x/b.jpg", MatchCount: 1}

	require.Equal(t, relevance(a, normalizeTitle("同分电影")), relevance(b, normalizeTitle("同分电影")))

	ranked := Rank([]domain.Record{a, b}, "同分电影")
	require.Len(t, ranked, 2)
	assert.Equal(t, "同分电影甲", ranked[0].Title)
	assert.Equal(t, "同分电影乙", ranked[1].Title)
}

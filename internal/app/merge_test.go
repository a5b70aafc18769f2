package app

import (
	"testing"

	"github.com/jqwang17/MediaSearch-API/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- Title normalization -----------------------------------------------------

func TestNormalizeTitle(t *testing.T) {
	cases := map[string]string{
		"Suzume no Tojimari":  "suzumenotojimari",
		"铃芽之旅":                "铃芽之旅",
		"すずめの戸締まり":            "すずめの戸締まり",
		"  Spider-Man: 纵横宇宙！": "spiderman纵横宇宙",
		"【OVA】某某剧场版·第二季":      "ova某某剧场版第二季",
		"":                    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeTitle(in), "input: %q", in)
	}
}

func TestNormalizeTitle_Idempotent(t *testing.T) {
	inputs := []string{
		"Suzume no Tojimari", "铃芽之旅（2022）", "ＡＢＣ・ｄｅｆ", "君の名は。", "---",
	}
	for _, in := range inputs {
		once := normalizeTitle(in)
		assert.Equal(t, once, normalizeTitle(once), "input: %q", in)
	}
}

// -- Same-media predicate ----------------------------------------------------

func TestSameMedia_Symmetric(t *testing.T) {
	pairs := [][2]domain.Record{
		{
			{Title: "铃芽之旅", Year: "2022"},
			{Title: "铃芽之旅 剧场版", Year: "2023"},
		},
		{
			{Title: "铃芽户缔", Year: "2022"},
			{Title: "铃芽之旅", Year: "2023"},
		},
		{
			{Title: "你的名字。", OriginalTitle: "君の名は。"},
			{Title: "君の名は", Year: "2016"},
		},
		{
			{Title: "A", Year: "2001"},
			{Title: "B", Year: "2020"},
		},
	}
	for i, p := range pairs {
		assert.Equal(t, sameMedia(p[0], p[1]), sameMedia(p[1], p[0]), "pair %d", i)
	}
}

func TestSameMedia_YearGate(t *testing.T) {
	a := domain.Record{Title: "铃芽之旅", Year: "2020"}
	b := domain.Record{Title: "铃芽之旅", Year: "2022"}
	assert.False(t, sameMedia(a, b), "a two-year gap disqualifies identical titles")

	b.Year = "2021"
	assert.True(t, sameMedia(a, b), "adjacent years are compatible")

	b.Year = ""
	assert.True(t, sameMedia(a, b), "an unknown year never disqualifies")
}

func TestSameMedia_TitleRelations(t *testing.T) {
	// Containment links records when the shorter side has >= 2 runes.
	assert.True(t, sameMedia(
		domain.Record{Title: "进击的巨人"},
		domain.Record{Title: "进击的巨人 最终季"},
	))

	// Single-rune fragments never link.
	assert.False(t, sameMedia(
		domain.Record{Title: "你"},
		domain.Record{Title: "你的名字"},
	))

	// Cross comparison: one side's localized title vs the other's original.
	assert.True(t, sameMedia(
		domain.Record{Title: "某部电影", OriginalTitle: "Some Movie"},
		domain.Record{Title: "SOME MOVIE"},
	))

	// Similar years but unrelated titles stay distinct.
	assert.False(t, sameMedia(
		domain.Record{Title: "铃芽户缔", Year: "2022"},
		domain.Record{Title: "铃芽之旅", Year: "2023"},
	))
}

// -- Completeness ------------------------------------------------------------

func TestCompleteness_Weights(t *testing.T) {
	bare := domain.Record{SourceType: domain.SourceDouban}
	assert.Equal(t, 3, completeness(bare), "empty douban record keeps only its source prior")

	full := domain.Record{
		SourceType:    domain.SourceTMDB,
		PosterURL:     "http://x/p.jpg",
		Summary:       "一段足够长的剧情简介文本内容",
		Ratings:       domain.SourceRatings{TMDB: 8.1, Agedm: 9, Maoyan: 9.2, Douban: 8.4},
		Directors:     []string{"新海诚"},
		Actors:        []string{"原菜乃华"},
		Genres:        []string{"动画"},
		Duration:      "121分钟",
		OriginalTitle: "すずめの戸締まり",
	}
	// 20+15+10+10+10+8+8+8+5+5+5 + prior 10
	assert.Equal(t, 114, completeness(full))
}

func TestCompleteness_ShortSummaryIgnored(t *testing.T) {
	r := domain.Record{SourceType: domain.SourceMaoyan, Summary: "十个字以内"}
	assert.Equal(t, 5, completeness(r), "a summary of 10 runes or fewer earns no bonus")
}

// -- Merge -------------------------------------------------------------------

func TestMerge_PosterEnrichment(t *testing.T) {
	// The richer record lacks a poster; the poorer one has it. After merge
	// the unified record must carry the non-empty poster regardless of which
	// side won the completeness ordering.
	rich := domain.Record{
		SourceType:    domain.SourceTMDB,
		SourceID:      "603",
		Title:         "铃芽之旅",
		Year:          "2022",
		Summary:       "灾难与旅行交织的冒险物语",
		Ratings:       domain.SourceRatings{TMDB: 8.0},
		Directors:     []string{"新海诚"},
		Actors:        []string{"原菜乃华"},
		Genres:        []string{"动画"},
		Duration:      "121分钟",
		OriginalTitle: "すずめの戸締まり",
		MatchCount:    1,
	}
	poor := domain.Record{
		SourceType: domain.SourceMaoyan,
		SourceID:   "1445",
		Title:      "铃芽之旅",
		Year:       "2023",
		PosterURL:  "http://x/poster.jpg",
		Ratings:    domain.SourceRatings{Maoyan: 9.1},
		MatchCount: 1,
	}
	require.Greater(t, completeness(rich), completeness(poor))

	merged := Merge([]domain.Record{rich, poor})
	require.Len(t, merged, 1)

	got := merged[0]
	assert.Equal(t, domain.SourceTMDB, got.SourceType, "provenance stays with the completeness winner")
	assert.Equal(t, "603", got.SourceID)
	assert.Equal(t, "http://x/poster.jpg", got.PosterURL)
	assert.Equal(t, 2, got.MatchCount)
	assert.Equal(t, 8.0, got.Ratings.TMDB)
	assert.Equal(t, 9.1, got.Ratings.Maoyan, "secondary rating fills the primary's zero slot")
}

func TestMerge_RatingCommutative(t *testing.T) {
	a := domain.Record{
		SourceType: domain.SourceTMDB, Title: "某电影", Year: "2020",
		PosterURL: "http://x/a.jpg", Ratings: domain.SourceRatings{TMDB: 7.5}, MatchCount: 1,
	}
	b := domain.Record{
		SourceType: domain.SourceDouban, Title: "某电影", Year: "2020",
		Ratings: domain.SourceRatings{Douban: 8.2}, MatchCount: 1,
	}

	ab := Merge([]domain.Record{a, b})
	ba := Merge([]domain.Record{b, a})
	require.Len(t, ab, 1)
	require.Len(t, ba, 1)

	assert.Equal(t, ab[0].Ratings, ba[0].Ratings)
	assert.Equal(t, ab[0].MatchCount, ba[0].MatchCount)
	assert.Equal(t, ab[0].PosterURL, ba[0].PosterURL)
}

func TestMerge_Idempotent(t *testing.T) {
	records := []domain.Record{
		{SourceType: domain.SourceTMDB, Title: "铃芽之旅", Year: "2022", Ratings: domain.SourceRatings{TMDB: 8}, MatchCount: 1},
		{SourceType: domain.SourceMaoyan, Title: "铃芽之旅", Year: "2023", PosterURL: "http://x/p.jpg", MatchCount: 1},
		{SourceType: domain.SourceDouban, Title: "流浪地球2", Year: "2023", Ratings: domain.SourceRatings{Douban: 8.3}, MatchCount: 1},
	}

	once := Merge(records)
	twice := Merge(once)

	require.Equal(t, len(once), len(twice))
	assert.Equal(t, once, twice)

	for i := range once {
		for j := i + 1; j < len(once); j++ {
			assert.False(t, sameMedia(once[i], once[j]),
				"merge output must contain no further duplicates")
		}
	}
}

func TestMerge_StableOnTies(t *testing.T) {
	// Identical completeness scores keep their concatenation order.
	records := []domain.Record{
		{SourceType: domain.SourceMaoyan, Title: "电影甲", Year: "2020", MatchCount: 1},
		{SourceType: domain.SourceMaoyan, Title: "电影乙", Year: "2020", MatchCount: 1},
		{SourceType: domain.SourceMaoyan, Title: "电影丙", Year: "2020", MatchCount: 1},
	}

	merged := Merge(records)
	require.Len(t, merged, 3)
	assert.Equal(t, "电影甲", merged[0].Title)
	assert.Equal(t, "电影乙", merged[1].Title)
	assert.Equal(t, "电影丙", merged[2].Title)
}

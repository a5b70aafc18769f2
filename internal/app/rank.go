package app

import (
	"sort"
	"strings"

	"github.com/jqwang17/MediaSearch-API/internal/domain"
)

const minRelevance = 10

// sourceBonus is a small per-provider tie-break applied during relevance
// scoring. Agedm gets none here: it only participates in anime-specific
// flows where it is the sole provider anyway.
var sourceBonus = map[domain.SourceType]int{
	domain.SourceTMDB:   5,
	domain.SourceMaoyan: 4,
	domain.SourceDouban: 3,
}

// Rank drops unrenderable records, scores the rest against the query, and
// returns the survivors ordered by descending relevance (stable on ties).
func Rank(records []domain.Record, query string) []domain.Record {
	nq := normalizeTitle(query)

	type scored struct {
		rec   domain.Record
		score int
	}

	var kept []scored
	for _, r := range records {
		// A record without a poster or a usable title cannot be rendered
		// as a result card, regardless of how relevant it is.
		if r.PosterURL == "" || r.Title == "" || r.Title == domain.SentinelUnknownTitle {
			continue
		}
		if s := relevance(r, nq); s >= minRelevance {
			kept = append(kept, scored{rec: r, score: s})
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].score > kept[j].score
	})

	out := make([]domain.Record, len(kept))
	for i, s := range kept {
		out[i] = s.rec
	}
	return out
}

func relevance(r domain.Record, nq string) int {
	// Multi-source corroboration is the strongest relevance signal.
	score := 30 * (r.MatchCount - 1)

	nt := normalizeTitle(r.Title)
	no := normalizeTitle(r.OriginalTitle)

	switch {
	case nq == "":
	case nt == nq || (no != "" && no == nq):
		score += 100
	case strings.HasPrefix(nt, nq) || (no != "" && strings.HasPrefix(no, nq)):
		score += 80
	case (nt != "" && strings.HasPrefix(nq, nt)) || (no != "" && strings.HasPrefix(nq, no)):
		// The query is a prefix expansion of a short title.
		score += 70
	case strings.Contains(nt, nq) || (no != "" && strings.Contains(no, nq)):
		score += 60
	default:
		if frac := overlapFraction(nq, nt, no); frac >= 0.5 {
			score += int(frac * 40)
		}
	}

	if r.Rating > 0 || r.Ratings.TMDB > 0 || r.Ratings.Agedm > 0 ||
		r.Ratings.Maoyan > 0 || r.Ratings.Douban > 0 {
		score += 10
	}

	return score + sourceBonus[r.SourceType]
}

// overlapFraction is the character-overlap fallback: the fraction of query
// runes individually present in either title. Repeated query runes are
// counted each time they occur.
func overlapFraction(nq, nt, no string) float64 {
	total, hits := 0, 0
	for _, c := range nq {
		total++
		if strings.ContainsRune(nt, c) || strings.ContainsRune(no, c) {
			hits++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

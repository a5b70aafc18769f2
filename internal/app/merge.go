package app

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jqwang17/MediaSearch-API/internal/domain"
)

// sourcePrior reflects the known data quality of each provider and biases
// the completeness ordering so that richer sources win ties.
var sourcePrior = map[domain.SourceType]int{
	domain.SourceTMDB:   10,
	domain.SourceAgedm:  8,
	domain.SourceMaoyan: 5,
	domain.SourceDouban: 3,
}

// completeness scores how much usable data a record carries. The most
// complete duplicate becomes the merge primary and keeps its provenance.
func completeness(r domain.Record) int {
	score := 0
	if r.PosterURL != "" {
		score += 20
	}
	if utf8.RuneCountInString(r.Summary) > 10 {
		score += 15
	}
	if r.Ratings.TMDB > 0 {
		score += 10
	}
	if r.Ratings.Agedm > 0 {
		score += 10
	}
	if r.Ratings.Maoyan > 0 {
		score += 10
	}
	if r.Ratings.Douban > 0 {
		score += 8
	}
	if len(r.Directors) > 0 {
		score += 8
	}
	if len(r.Actors) > 0 {
		score += 8
	}
	if len(r.Genres) > 0 {
		score += 5
	}
	if r.Duration != "" {
		score += 5
	}
	if r.OriginalTitle != "" {
		score += 5
	}
	return score + sourcePrior[r.SourceType]
}

// titleChars keeps word characters and CJK/Hiragana/Katakana; everything
// else (whitespace, full- and half-width punctuation) is stripped.
var titleChars = regexp.MustCompile(`[^0-9a-z_\x{4E00}-\x{9FFF}\x{3040}-\x{309F}\x{30A0}-\x{30FF}]+`)

// normalizeTitle lowercases a title and strips every rune that cannot
// contribute to identity matching. The result is stable under repeated
// application.
func normalizeTitle(title string) string {
	return titleChars.ReplaceAllString(strings.ToLower(title), "")
}

// titlesAlike reports whether two already-normalized titles are equal or one
// contains the other. Containment only counts when the shorter form has at
// least two runes, so single-character fragments never link records.
func titlesAlike(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	shorter, longer := a, b
	if utf8.RuneCountInString(a) > utf8.RuneCountInString(b) {
		shorter, longer = b, a
	}
	if utf8.RuneCountInString(shorter) < 2 {
		return false
	}
	return strings.Contains(longer, shorter)
}

// yearsCompatible treats an unknown year on either side as non-disqualifying;
// otherwise the years must be within one of each other.
func yearsCompatible(a, b string) bool {
	if a == "" || b == "" {
		return true
	}
	ya, errA := strconv.Atoi(a)
	yb, errB := strconv.Atoi(b)
	if errA != nil || errB != nil {
		return true
	}
	diff := ya - yb
	if diff < 0 {
		diff = -diff
	}
	return diff <= 1
}

// sameMedia is the symmetric predicate deciding whether two records describe
// the same real-world title. Incompatible years disqualify regardless of
// title similarity; otherwise any localized/original title pairing may match.
func sameMedia(a, b domain.Record) bool {
	if !yearsCompatible(a.Year, b.Year) {
		return false
	}

	at, ao := normalizeTitle(a.Title), normalizeTitle(a.OriginalTitle)
	bt, bo := normalizeTitle(b.Title), normalizeTitle(b.OriginalTitle)

	return titlesAlike(at, bt) ||
		titlesAlike(ao, bo) ||
		titlesAlike(at, bo) ||
		titlesAlike(ao, bt)
}

// mergeInto folds the incoming record into the primary. The primary was the
// more complete of the two, so its fields win; the incoming record only fills
// gaps. Provenance stays with the primary.
func mergeInto(primary *domain.Record, incoming domain.Record) {
	primary.MatchCount += incoming.MatchCount

	if primary.Ratings.TMDB == 0 {
		primary.Ratings.TMDB = incoming.Ratings.TMDB
	}
	if primary.Ratings.Agedm == 0 {
		primary.Ratings.Agedm = incoming.Ratings.Agedm
	}
	if primary.Ratings.Maoyan == 0 {
		primary.Ratings.Maoyan = incoming.Ratings.Maoyan
	}
	if primary.Ratings.Douban == 0 {
		primary.Ratings.Douban = incoming.Ratings.Douban
	}

	if primary.PosterURL == "" {
		primary.PosterURL = incoming.PosterURL
	}
	if primary.Summary == "" {
		primary.Summary = incoming.Summary
	}
	if len(primary.Directors) == 0 {
		primary.Directors = incoming.Directors
	}
	if len(primary.Actors) == 0 {
		primary.Actors = incoming.Actors
	}
	if len(primary.Genres) == 0 {
		primary.Genres = incoming.Genres
	}
	if primary.Duration == "" {
		primary.Duration = incoming.Duration
	}
	if primary.OriginalTitle == "" {
		primary.OriginalTitle = incoming.OriginalTitle
	}
}

// Merge collapses the concatenated adapter outputs into one record per
// real-world title. Records are ordered by descending completeness (stable on
// ties, preserving provider priority order), then each record either joins an
// already-accepted duplicate or becomes a new unique entry.
func Merge(records []domain.Record) []domain.Record {
	type scored struct {
		rec   domain.Record
		score int
	}

	ordered := make([]scored, len(records))
	for i, r := range records {
		ordered[i] = scored{rec: r, score: completeness(r)}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].score > ordered[j].score
	})

	var unique []domain.Record
	for _, s := range ordered {
		merged := false
		for i := range unique {
			if sameMedia(unique[i], s.rec) {
				mergeInto(&unique[i], s.rec)
				merged = true
				break
			}
		}
		if !merged {
			unique = append(unique, s.rec)
		}
	}
	return unique
}

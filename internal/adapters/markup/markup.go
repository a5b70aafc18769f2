// Package markup provides stateless helpers shared by the scraping adapters:
// selector-based field extraction, image URL normalization, and info-line
// token segmentation.
package markup

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Text returns the trimmed text of the first element matching selector.
func Text(doc *goquery.Selection, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().Text())
}

// Attr returns the trimmed value of the named attribute on the first element
// matching selector, or "" when absent.
func Attr(doc *goquery.Selection, selector, name string) string {
	val, _ := doc.Find(selector).First().Attr(name)
	return strings.TrimSpace(val)
}

// AbsoluteURL resolves protocol-relative image URLs ("//img.example.com/x")
// to absolute https URLs. Already-absolute and empty inputs pass through.
func AbsoluteURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "//") {
		return "https:" + raw
	}
	return raw
}

// UpgradeDoubanPoster rewrites the resolution segment Douban encodes in its
// image paths, turning the small search-result thumbnail into the large
// poster variant. URLs without a recognized segment are returned unchanged.
func UpgradeDoubanPoster(u string) string {
	if strings.Contains(u, "s_ratio_poster") {
		return strings.Replace(u, "s_ratio_poster", "l_ratio_poster", 1)
	}
	if strings.Contains(u, "/photo/s/") {
		return strings.Replace(u, "/photo/s/", "/photo/l/", 1)
	}
	return u
}

// InfoLine holds the typed tokens recovered from a slash-delimited listing
// info line such as "2023年11月17日 / 全24集 / 新海诚 / 原菜乃华".
type InfoLine struct {
	ReleaseDate string // full-date token, as written
	Year        string // 4-digit year
	Episodes    string // episode-count token, as written
	Credits     string // remaining free-text tokens joined with " / "
}

var (
	fullDateRe  = regexp.MustCompile(`^(\d{4})年\d{1,2}月\d{1,2}日$`)
	yearMonthRe = regexp.MustCompile(`^(\d{4})年\d{1,2}月$`)
	yearOnlyRe  = regexp.MustCompile(`^(\d{4})年?$`)
	episodesRe  = regexp.MustCompile(`^(?:全|更新至|第)\d+集.*$`)
)

// ParseInfoLine splits a slash-delimited info line into typed tokens. The
// first matching date-shaped token wins for ReleaseDate/Year; unrecognized
// tokens are treated as credit information.
func ParseInfoLine(line string) InfoLine {
	var info InfoLine
	var credits []string

	for _, tok := range strings.Split(line, "/") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}

		switch {
		case fullDateRe.MatchString(tok):
			if info.ReleaseDate == "" {
				info.ReleaseDate = tok
				info.Year = fullDateRe.FindStringSubmatch(tok)[1]
				continue
			}
		case yearMonthRe.MatchString(tok):
			if info.Year == "" {
				info.Year = yearMonthRe.FindStringSubmatch(tok)[1]
				continue
			}
		case yearOnlyRe.MatchString(tok):
			if info.Year == "" {
				info.Year = yearOnlyRe.FindStringSubmatch(tok)[1]
				continue
			}
		case episodesRe.MatchString(tok):
			if info.Episodes == "" {
				info.Episodes = tok
				continue
			}
		}
		credits = append(credits, tok)
	}

	info.Credits = strings.Join(credits, " / ")
	return info
}

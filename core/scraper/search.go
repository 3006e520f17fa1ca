package scraper

import (
	"iter"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"film2subtitle-api/core/domain"
	"film2subtitle-api/pkg/utils/parse"
)

const paginationSelector = ".page-numbers"

// SearchParser parses a legacy search results page.
type SearchParser struct {
	doc   *goquery.Document
	query string
	page  int
}

// NewSearchParser creates a parser for a fetched search page
func NewSearchParser(doc *goquery.Document, query string, page int) *SearchParser {
	return &SearchParser{doc: doc, query: query, page: page}
}

// Results yields the articles of the page lazily
func (p *SearchParser) Results() iter.Seq[domain.SubtitleArticle] {
	return ArticleSeq(p.doc.Selection)
}

// TotalPages is the largest numeric pagination control on the page, or 1
// when there is none. Both links and the current-page span count, so the
// last page still reports itself.
func (p *SearchParser) TotalPages() int {
	total := 0
	p.doc.Find(paginationSelector).Each(func(_ int, s *goquery.Selection) {
		if n, ok := parse.Digits(strings.TrimSpace(s.Text())); ok && n > total {
			total = n
		}
	})
	if total < 1 {
		return 1
	}
	return total
}

// Parse builds the LegacySearchResult. An empty page is not an error.
func (p *SearchParser) Parse() domain.LegacySearchResult {
	return domain.NewLegacySearchResult(p.query, p.page, p.TotalPages(), ExtractArticles(p.doc.Selection))
}

func (*SearchParser) parser() {}

package scraper

import (
	"iter"
	"slices"

	"github.com/PuerkitoBio/goquery"

	"film2subtitle-api/core/domain"
)

const articleSelector = ".sub-article-detail"

// ArticleSeq yields one SubtitleArticle per article block under root, in
// document order. Blocks without an <h1> are skipped: download pages reuse
// the same class for unrelated boxes.
//
// Each range walks the tree again; the page is never refetched.
func ArticleSeq(root *goquery.Selection) iter.Seq[domain.SubtitleArticle] {
	return func(yield func(domain.SubtitleArticle) bool) {
		blocks := root.Find(articleSelector)
		for i := range blocks.Nodes {
			block := blocks.Eq(i)
			if block.Find("h1").Length() == 0 {
				continue
			}
			if !yield(ParseArticle(block)) {
				return
			}
		}
	}
}

// ExtractArticles collects ArticleSeq into a slice (never nil).
func ExtractArticles(root *goquery.Selection) []domain.SubtitleArticle {
	articles := slices.Collect(ArticleSeq(root))
	if articles == nil {
		articles = []domain.SubtitleArticle{}
	}
	return articles
}

// ParseArticle builds a SubtitleArticle from a single article block.
func ParseArticle(block *goquery.Selection) domain.SubtitleArticle {
	href, _ := block.Find("a").First().Attr("href")
	src, _ := block.Find("img").First().Attr("src")

	return domain.SubtitleArticle{
		Title:     strippedText(block.Find("h1").First()),
		URL:       href,
		Thumbnail: src,
		Metadata:  ParseMetadata(block),
	}
}

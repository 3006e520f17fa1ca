package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"film2subtitle-api/core/domain"
	"film2subtitle-api/core/errors"
)

const (
	downloadBoxSelector = ".sub-download-box"

	// seasonMarker is the Persian word for "season".
	seasonMarker = "فصل"
)

var (
	seasonPattern  = regexp.MustCompile(`(?i)s\d+`)
	episodePattern = regexp.MustCompile(`(?i)e\d+`)
)

// DownloadPageParser parses a subtitle download page.
type DownloadPageParser struct {
	doc *goquery.Document
	box *goquery.Selection
}

// NewDownloadPageParser fails with *errors.NotFoundError when the page has no download box.
func NewDownloadPageParser(doc *goquery.Document) (*DownloadPageParser, error) {
	box := doc.Find(downloadBoxSelector).First()
	if box.Length() == 0 {
		return nil, errors.NewNotFoundError("No download box found.")
	}
	return &DownloadPageParser{doc: doc, box: box}, nil
}

// Articles returns the article blocks that carry a heading
func (p *DownloadPageParser) Articles() []domain.SubtitleArticle {
	return ExtractArticles(p.doc.Selection)
}

// DownloadBox classifies the box and builds its link map
func (p *DownloadPageParser) DownloadBox() domain.DownloadBox {
	return ParseDownloadBox(p.box)
}

// Parse builds the DownloadPage
func (p *DownloadPageParser) Parse() domain.DownloadPage {
	return domain.DownloadPage{
		Articles:    p.Articles(),
		DownloadBox: p.DownloadBox(),
	}
}

func (*DownloadPageParser) parser() {}

// ParseDownloadBox classifies box as series or movie and places every link.
//
// Series links without a season token in their URL are dropped.
func ParseDownloadBox(box *goquery.Selection) domain.DownloadBox {
	dl := domain.DownloadBox{
		Type:  ClassifyDownloadBox(box.Text()),
		Links: map[string]any{},
	}

	box.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		if dl.Type == domain.SubtitleTypeSeries {
			placeSeriesLink(dl.Links, href)
			return
		}
		dl.Links[MovieLinkKey(href)] = href
	})
	return dl
}

// ClassifyDownloadBox returns series when the box text mentions a season.
func ClassifyDownloadBox(text string) domain.SubtitleType {
	if strings.Contains(text, seasonMarker) {
		return domain.SubtitleTypeSeries
	}
	return domain.SubtitleTypeMovie
}

// MovieLinkKey returns "trailer" for trailer URLs and "download" otherwise.
func MovieLinkKey(href string) string {
	if strings.Contains(strings.ToLower(href), "trailer") {
		return "trailer"
	}
	return "download"
}

// SeriesLinkKeys extracts the lowercase season and episode tokens of a URL.
// episode is "all" when the URL has a season but no episode token.
func SeriesLinkKeys(href string) (season, episode string, ok bool) {
	season = seasonPattern.FindString(href)
	if season == "" {
		return "", "", false
	}
	episode = "all"
	if e := episodePattern.FindString(href); e != "" {
		episode = e
	}
	return strings.ToLower(season), strings.ToLower(episode), true
}

func placeSeriesLink(links map[string]any, href string) {
	season, episode, ok := SeriesLinkKeys(href)
	if !ok {
		return
	}
	episodes, _ := links[season].(map[string]string)
	if episodes == nil {
		episodes = map[string]string{}
		links[season] = episodes
	}
	episodes[episode] = href
}

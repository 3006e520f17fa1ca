// ABOUTME: Subtitle domain models scraped from film2subtitle.com pages
// ABOUTME: Value objects built fresh per request and owned by the caller

package domain

import (
	"encoding/json"
	"fmt"
)

// SubtitleType classifies a download box
type SubtitleType string

const (
	SubtitleTypeMovie  SubtitleType = "movie"
	SubtitleTypeSeries SubtitleType = "series"
)

// SubtitleMetadata is the metadata list attached to a subtitle article.
// IMDbRating is either a parsed non-negative decimal or exactly 0.
type SubtitleMetadata struct {
	Name               string   `json:"name"`
	Duration           string   `json:"duration"`
	Language           string   `json:"language"`
	Country            string   `json:"country"`
	SubtitleFileFormat string   `json:"subtitle_file_format"`
	Quality            string   `json:"quality"`
	IMDbID             string   `json:"imdb_id"`
	IMDbRating         float64  `json:"imdb_rating"`
	Actors             []string `json:"actors"`
	Writers            []string `json:"writers"`
}

// SubtitleArticle is one "sub-article-detail" block
type SubtitleArticle struct {
	Title     string           `json:"title"`
	URL       string           `json:"url"`
	Thumbnail string           `json:"thumbnail"`
	Metadata  SubtitleMetadata `json:"metadata"`
}

// LegacySearchResult is a scraped search results page
type LegacySearchResult struct {
	Query      string            `json:"query"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
	NextPage   int               `json:"next_page"`
	Results    []SubtitleArticle `json:"results"`
}

// NewLegacySearchResult builds a result and derives NextPage, which wraps to
// the first page once the last page is reached.
func NewLegacySearchResult(query string, page, totalPages int, results []SubtitleArticle) LegacySearchResult {
	if totalPages < 1 {
		totalPages = 1
	}
	if results == nil {
		results = []SubtitleArticle{}
	}

	nextPage := 1
	if page < totalPages {
		nextPage = page + 1
	}

	return LegacySearchResult{
		Query:      query,
		Page:       page,
		TotalPages: totalPages,
		NextPage:   nextPage,
		Results:    results,
	}
}

// DownloadBox holds the download links of a subtitle page.
//
// For movies Links maps "download" and optionally "trailer" to a URL string.
// For series Links maps a season token ("s01") to a map[string]string of
// episode token ("e03") or "all" to URL.
type DownloadBox struct {
	Type  SubtitleType   `json:"type"`
	Links map[string]any `json:"links"`
}

// UnmarshalJSON restores the typed link values, so a box read back from a
// cache behaves like a freshly parsed one.
func (b *DownloadBox) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type  SubtitleType               `json:"type"`
		Links map[string]json.RawMessage `json:"links"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	b.Type = raw.Type
	b.Links = make(map[string]any, len(raw.Links))
	for key, msg := range raw.Links {
		var link string
		if err := json.Unmarshal(msg, &link); err == nil {
			b.Links[key] = link
			continue
		}
		var episodes map[string]string
		if err := json.Unmarshal(msg, &episodes); err != nil {
			return fmt.Errorf("download box link %q: %w", key, err)
		}
		b.Links[key] = episodes
	}
	return nil
}

// Link returns a movie link by key, or "" when absent
func (b DownloadBox) Link(key string) string {
	s, _ := b.Links[key].(string)
	return s
}

// Season returns the episode links of a season, or nil when absent
func (b DownloadBox) Season(token string) map[string]string {
	m, _ := b.Links[token].(map[string]string)
	return m
}

// DownloadPage is a parsed subtitle download page
type DownloadPage struct {
	Articles    []SubtitleArticle `json:"articles"`
	DownloadBox DownloadBox       `json:"download_box"`
}

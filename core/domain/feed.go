// ABOUTME: Models for the site's RSS feed and JSON quick search
// ABOUTME: Lighter than SubtitleArticle; no markup scraping is involved

package domain

import "time"

// FeedEntry is one item of the site's latest-posts feed
type FeedEntry struct {
	Title      string     `json:"title"`
	URL        string     `json:"url"`
	Published  *time.Time `json:"published,omitempty"`
	Categories []string   `json:"categories"`
}

// QuickSearchHit is one hit returned by the site's JSON search endpoint
type QuickSearchHit struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Type    string `json:"type"`
	Subtype string `json:"subtype"`
}

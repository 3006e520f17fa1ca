package scraper

import "film2subtitle-api/core/domain"

// Result is the closed set of values a Parser produces.
type Result interface {
	domain.LegacySearchResult | domain.DownloadPage
}

// Parser turns a fetched page into a typed result. The set of parsers is
// sealed: only *SearchParser and *DownloadPageParser implement it.
type Parser[T Result] interface {
	Parse() T
	parser()
}

var (
	_ Parser[domain.LegacySearchResult] = (*SearchParser)(nil)
	_ Parser[domain.DownloadPage]       = (*DownloadPageParser)(nil)
)

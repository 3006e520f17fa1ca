// Package core contains the scraping engine of the Film2Subtitle API.
// It does not depend on the web framework and can be used on its own.
//
// The core package is organized into several sub-packages:
//
// - domain: value objects scraped from the site (articles, search results, download boxes)
// - scraper: markup parsers for search and download pages
// - subtitles: the service that fetches, parses and caches pages
// - errors: the error taxonomy shared by the transport and the API
// - interfaces: contracts for external dependencies (cache, session, logger)
//
// # Usage Example
//
//	import (
//	    "film2subtitle-api/core/interfaces"
//	    "film2subtitle-api/core/subtitles"
//	)
//
//	deps := interfaces.Dependencies{
//	    Cache:   myCache,   // implements interfaces.Cache; optional
//	    Session: mySession, // implements interfaces.Session
//	    Logger:  myLogger,  // implements interfaces.Logger
//	}
//
//	service := subtitles.NewService(deps, time.Hour)
//
//	result, err := service.LegacySearch(ctx, "ozark", 1)
//	page, err := service.DownloadPage(ctx, "https://film2subtitle.com/ozark/")
package core

// Package scraper turns film2subtitle.com markup into domain records.
//
// Everything here is pure: functions take an already-parsed goquery tree and
// return values, so they can be tested against fixture HTML without a network.
// Selectors and label tables follow the site's current WordPress theme and are
// expected to break when the theme changes.
//
//	doc, _ := session.FetchMarkup(ctx, "/?s=ozark", nil)
//	result := scraper.NewSearchParser(doc, "ozark", 1).Parse()
//
//	p, err := scraper.NewDownloadPageParser(doc)
//	if err != nil {
//	    // *errors.NotFoundError: the page has no download box
//	}
//	page := p.Parse()
package scraper

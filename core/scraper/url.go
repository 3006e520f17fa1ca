package scraper

import (
	"regexp"
	"strings"
)

// SiteDomain is the registrable domain every accepted URL must contain.
const SiteDomain = "film2subtitle.com"

var httpURLPattern = regexp.MustCompile(
	`^https?://(www\.)?[-a-zA-Z\d@:%._+~#=]{1,256}` +
		`\.[a-zA-Z\d()]{1,6}\b([-a-zA-Z\d()@:%_+.~#?&/=]*)`,
)

// IsSiteURL reports whether raw looks like an HTTP(S) URL and mentions the
// site's domain. It never touches the network.
func IsSiteURL(raw string) bool {
	return httpURLPattern.MatchString(raw) && strings.Contains(raw, SiteDomain)
}

package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"film2subtitle-api/core/domain"
	"film2subtitle-api/pkg/utils/parse"
)

// Canonical metadata field names, matching the JSON names of domain.SubtitleMetadata.
const (
	FieldName               = "name"
	FieldDuration           = "duration"
	FieldLanguage           = "language"
	FieldCountry            = "country"
	FieldSubtitleFileFormat = "subtitle_file_format"
	FieldQuality            = "quality"
	FieldIMDbRating         = "imdb_rating"
	FieldActors             = "actors"
	FieldWriters            = "writers"
)

// MetadataRule maps a localized label token to a canonical field.
// Apply receives the cleaned value and performs the field's coercion.
type MetadataRule struct {
	Label string
	Field string
	Apply func(m *domain.SubtitleMetadata, value string)
}

// metadataRules is evaluated in order; the first rule whose Label is a
// substring of the cleaned raw label wins.
var metadataRules = []MetadataRule{
	{"نام", FieldName, func(m *domain.SubtitleMetadata, v string) { m.Name = v }},
	{"زمان", FieldDuration, func(m *domain.SubtitleMetadata, v string) { m.Duration = v }},
	{"زبان", FieldLanguage, func(m *domain.SubtitleMetadata, v string) { m.Language = v }},
	{"کشور", FieldCountry, func(m *domain.SubtitleMetadata, v string) { m.Country = v }},
	{"فرمت", FieldSubtitleFileFormat, func(m *domain.SubtitleMetadata, v string) { m.SubtitleFileFormat = v }},
	{"کیفیت", FieldQuality, func(m *domain.SubtitleMetadata, v string) { m.Quality = v }},
	{"امتیاز", FieldIMDbRating, func(m *domain.SubtitleMetadata, v string) { m.IMDbRating = parse.FirstFloat(v) }},
	{"بازیگران", FieldActors, func(m *domain.SubtitleMetadata, v string) { m.Actors = splitNames(v) }},
	{"نویسنده", FieldWriters, func(m *domain.SubtitleMetadata, v string) { m.Writers = splitNames(v) }},
}

var imdbIDPattern = regexp.MustCompile(`tt\d+`)

// LabelValue is one raw "label: value" pair scraped from a metadata list.
type LabelValue struct {
	Label string
	Value string
}

// MetadataRules returns a copy of the label table in evaluation order.
func MetadataRules() []MetadataRule {
	return append([]MetadataRule(nil), metadataRules...)
}

// MatchRule returns the rule a raw label maps to.
func MatchRule(label string) (MetadataRule, bool) {
	label = cleanLabel(label)
	for _, rule := range metadataRules {
		if strings.Contains(label, rule.Label) {
			return rule, true
		}
	}
	return MetadataRule{}, false
}

// MapMetadata folds raw pairs into a SubtitleMetadata. Pairs whose label
// matches no rule are dropped; later pairs overwrite earlier ones.
func MapMetadata(pairs []LabelValue) domain.SubtitleMetadata {
	m := domain.SubtitleMetadata{Actors: []string{}, Writers: []string{}}
	for _, p := range pairs {
		rule, ok := MatchRule(p.Label)
		if !ok {
			continue
		}
		rule.Apply(&m, cleanValue(p.Value))
	}
	return m
}

// ParseMetadata reads the metadata list and IMDb link of an article block.
func ParseMetadata(block *goquery.Selection) domain.SubtitleMetadata {
	m := MapMetadata(metadataPairs(block))

	if href, ok := block.Find(`[href*="imdb.com"]`).First().Attr("href"); ok {
		m.IMDbID = imdbIDPattern.FindString(href)
	}
	return m
}

func metadataPairs(block *goquery.Selection) []LabelValue {
	var pairs []LabelValue
	block.Find("*").FilterFunction(hasClassPrefix("sub-meta")).Each(func(_ int, item *goquery.Selection) {
		for _, side := range []string{".sub-meta-left", ".sub-meta-right"} {
			s := item.Find(side).First()
			if s.Length() == 0 {
				continue
			}
			label, value, ok := strings.Cut(strippedText(s), ":")
			if !ok {
				continue
			}
			pairs = append(pairs, LabelValue{Label: label, Value: value})
		}
	})
	return pairs
}

func cleanLabel(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	return strings.ToLower(s)
}

func cleanValue(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", ""))
}

func splitNames(s string) []string {
	names := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}

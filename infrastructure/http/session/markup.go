package session

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

// Markup backend identifiers accepted by Config.HTMLParser.
const (
	ParserHTML    = "html"
	ParserCharset = "charset"
)

type markupParser func(body io.Reader, contentType string) (*goquery.Document, error)

var markupParsers = map[string]markupParser{
	ParserHTML:    parseUTF8,
	ParserCharset: parseWithCharset,
}

// Parsers lists the accepted backend identifiers in sorted order.
func Parsers() []string {
	names := make([]string, 0, len(markupParsers))
	for name := range markupParsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupParser(name string) (markupParser, error) {
	if name == "" {
		name = ParserHTML
	}
	p, ok := markupParsers[name]
	if !ok {
		return nil, fmt.Errorf("unknown HTML parser %q, must be one of: %s", name, strings.Join(Parsers(), ", "))
	}
	return p, nil
}

func parseUTF8(body io.Reader, _ string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(body)
}

// parseWithCharset decodes the body by its declared or sniffed charset first.
func parseWithCharset(body io.Reader, contentType string) (*goquery.Document, error) {
	r, err := charset.NewReader(body, contentType)
	if err != nil {
		return nil, fmt.Errorf("decode charset: %w", err)
	}
	return goquery.NewDocumentFromReader(r)
}

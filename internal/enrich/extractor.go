package enrich

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Meta holds the metadata pulled from a rendered page.
type Meta struct {
	Title       string
	Description string
}

// ExtractMeta parses rendered markup and pulls the title and description.
// Missing tags come back as empty strings.
func ExtractMeta(html string) (Meta, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Meta{}, err
	}

	meta := Meta{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}
	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		meta.Description = strings.TrimSpace(desc)
	}
	return meta, nil
}

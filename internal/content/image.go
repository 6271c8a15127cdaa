package content

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LeadImage returns the first high quality image (data-src) referenced by
// the rendered contents, falling back to the first src attribute. SVG
// images are swapped for their JPEG rendition, which social previews accept.
func LeadImage(contents string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contents))
	if err != nil {
		return ""
	}

	url, ok := doc.Find("[data-src]").First().Attr("data-src")
	if !ok {
		url, ok = doc.Find("[src]").First().Attr("src")
	}
	if !ok || url == "" {
		return ""
	}
	if strings.HasSuffix(url, ".svg") {
		url = strings.TrimSuffix(url, "svg") + "jpeg"
	}
	return url
}

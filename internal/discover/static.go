package discover

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
)

// HrefsFromHTML collects every hyperlink reference in a static HTML
// document. It backs the direct-listing fallback, where no browser is
// involved: the caller runs Filter over the result with the listing URL
// as the base.
func HrefsFromHTML(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing listing HTML: %w", err)
	}

	var hrefs []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok && href != "" {
			hrefs = append(hrefs, href)
		}
	})
	return hrefs, nil
}

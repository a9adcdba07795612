package wikipedia

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// page is the decoded shape of one action=query result.
type page struct {
	Title          string
	Extract        string
	Missing        bool
	Disambiguation bool
}

// parseQueryResponse decodes the first (and only) page out of an
// action=query response body.
func parseQueryResponse(body []byte) (*page, error) {
	pages := gjson.GetBytes(body, "query.pages")
	if !pages.Exists() {
		return nil, errors.New("malformed query response: no pages")
	}

	var p *page
	pages.ForEach(func(_, value gjson.Result) bool {
		p = &page{
			Title:          value.Get("title").String(),
			Extract:        value.Get("extract").String(),
			Missing:        value.Get("missing").Exists(),
			Disambiguation: value.Get("pageprops.disambiguation").Exists(),
		}
		return false
	})
	if p == nil {
		return nil, errors.New("malformed query response: empty page set")
	}
	return p, nil
}

// parseRenderedHTML pulls the rendered article HTML out of an action=parse
// response body.
func parseRenderedHTML(body []byte) (string, error) {
	html := gjson.GetBytes(body, "parse.text.*")
	if !html.Exists() {
		return "", errors.New("malformed parse response: no rendered text")
	}
	return html.String(), nil
}

// namespacePrefixes are the MediaWiki namespaces that appear as links on
// disambiguation pages. Titles under them are project pages, not articles.
// A colon alone does not mark a namespace ("Star Wars: Episode IV" is an
// article).
var namespacePrefixes = []string{
	"Category:", "Draft:", "File:", "Help:", "MediaWiki:", "Module:",
	"Portal:", "Special:", "Talk:", "Template:", "User:", "Wikipedia:",
}

func isNamespaced(title string) bool {
	for _, prefix := range namespacePrefixes {
		if strings.HasPrefix(title, prefix) {
			return true
		}
	}
	return false
}

// parseAlternatives scrapes the ordered list of alternative article titles
// out of a disambiguation page's rendered HTML. Namespaced links (Help:,
// Wikipedia:, ...) are not articles and are skipped.
func parseAlternatives(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errors.Wrap(err, "parsing disambiguation page")
	}

	seen := make(map[string]bool)
	var alternatives []string
	doc.Find("ul li a[href^='/wiki/']").Each(func(_ int, sel *goquery.Selection) {
		title, ok := sel.Attr("title")
		if !ok || title == "" {
			title = strings.TrimSpace(sel.Text())
		}
		if title == "" || isNamespaced(title) {
			return
		}
		if seen[title] {
			return
		}
		seen[title] = true
		alternatives = append(alternatives, title)
	})
	return alternatives, nil
}

// summaryFromExtract returns the intro portion of a plaintext extract: the
// text before the first section heading.
func summaryFromExtract(extract string) string {
	if idx := strings.Index(extract, "\n=="); idx >= 0 {
		return strings.TrimSpace(extract[:idx])
	}
	return strings.TrimSpace(extract)
}

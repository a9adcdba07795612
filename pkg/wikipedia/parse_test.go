package wikipedia

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryResponseNormalPage(t *testing.T) {
	body := []byte(`{
		"query": {
			"pages": {
				"736": {
					"pageid": 736,
					"title": "Alan Turing",
					"extract": "Alan Turing was an English mathematician.\n== Early life ==\nDetails."
				}
			}
		}
	}`)

	p, err := parseQueryResponse(body)
	require.NoError(t, err)
	assert.Equal(t, "Alan Turing", p.Title)
	assert.False(t, p.Missing)
	assert.False(t, p.Disambiguation)
	assert.Contains(t, p.Extract, "Early life")
}

func TestParseQueryResponseMissingPage(t *testing.T) {
	body := []byte(`{
		"query": {
			"pages": {
				"-1": {
					"title": "No Such Page",
					"missing": ""
				}
			}
		}
	}`)

	p, err := parseQueryResponse(body)
	require.NoError(t, err)
	assert.True(t, p.Missing)
}

func TestParseQueryResponseDisambiguationPage(t *testing.T) {
	body := []byte(`{
		"query": {
			"pages": {
				"19021": {
					"title": "Mercury",
					"extract": "Mercury may refer to:",
					"pageprops": {"disambiguation": ""}
				}
			}
		}
	}`)

	p, err := parseQueryResponse(body)
	require.NoError(t, err)
	assert.True(t, p.Disambiguation)
}

func TestParseQueryResponseMalformed(t *testing.T) {
	_, err := parseQueryResponse([]byte(`{"batchcomplete": ""}`))
	require.Error(t, err)

	_, err = parseQueryResponse([]byte(`{"query": {"pages": {}}}`))
	require.Error(t, err)
}

func TestParseRenderedHTML(t *testing.T) {
	body := []byte(`{"parse": {"title": "Mercury", "text": {"*": "<div>rendered</div>"}}}`)

	html, err := parseRenderedHTML(body)
	require.NoError(t, err)
	assert.Equal(t, "<div>rendered</div>", html)

	_, err = parseRenderedHTML([]byte(`{"error": {"code": "missingtitle"}}`))
	require.Error(t, err)
}

func TestParseAlternativesKeepsOrderAndDeduplicates(t *testing.T) {
	html := `<div>
		<ul>
			<li><a href="/wiki/Mercury_(planet)" title="Mercury (planet)">Mercury (planet)</a></li>
			<li><a href="/wiki/Mercury_(mythology)" title="Mercury (mythology)">Mercury (mythology)</a></li>
			<li><a href="/wiki/Mercury_(planet)" title="Mercury (planet)">the planet again</a></li>
			<li><a href="/wiki/Help:Disambiguation" title="Help:Disambiguation">Help page</a></li>
			<li><a href="https://example.com/wiki/External">External</a></li>
		</ul>
	</div>`

	alternatives, err := parseAlternatives(html)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mercury (planet)", "Mercury (mythology)"}, alternatives)
}

func TestParseAlternativesKeepsColonTitles(t *testing.T) {
	html := `<ul>
		<li><a href="/wiki/Star_Wars:_Episode_IV" title="Star Wars: Episode IV – A New Hope">Star Wars: Episode IV</a></li>
		<li><a href="/wiki/Category:Planets" title="Category:Planets">Category:Planets</a></li>
		<li><a href="/wiki/Template:Infobox" title="Template:Infobox">Template:Infobox</a></li>
	</ul>`

	alternatives, err := parseAlternatives(html)
	require.NoError(t, err)
	assert.Equal(t, []string{"Star Wars: Episode IV – A New Hope"}, alternatives)
}

func TestParseAlternativesFallsBackToLinkText(t *testing.T) {
	html := `<ul><li><a href="/wiki/Mercury_Records">Mercury Records</a></li></ul>`

	alternatives, err := parseAlternatives(html)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mercury Records"}, alternatives)
}

func TestSummaryFromExtract(t *testing.T) {
	extract := "Intro paragraph.\n\n== Early life ==\nBody."
	assert.Equal(t, "Intro paragraph.", summaryFromExtract(extract))

	assert.Equal(t, "No sections at all.", summaryFromExtract("No sections at all.\n"))
	assert.Equal(t, "", summaryFromExtract(""))
}

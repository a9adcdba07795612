package wikipedia

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athapong/wikigraph/pkg/graph"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, WithHTTPClient(server.Client()))
}

func TestFetchResolvedArticle(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "query", r.URL.Query().Get("action"))
		assert.Equal(t, "Alan Turing", r.URL.Query().Get("titles"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		fmt.Fprint(w, `{
			"query": {
				"pages": {
					"736": {
						"title": "Alan Turing",
						"extract": "Alan Turing was an English mathematician.\n== Early life ==\nDetails."
					}
				}
			}
		}`)
	})

	article, err := client.Fetch(context.Background(), "Alan Turing")
	require.NoError(t, err)
	assert.Equal(t, "Alan Turing", article.Title)
	assert.Equal(t, "Alan Turing was an English mathematician.", article.Summary)
	assert.Contains(t, article.Content, "Early life")
}

func TestFetchMissingPage(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"query": {"pages": {"-1": {"title": "Nope", "missing": ""}}}}`)
	})

	_, err := client.Fetch(context.Background(), "Nope")
	require.Error(t, err)
	assert.True(t, graph.IsNotFound(err))
}

func TestFetchDisambiguationPage(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("action") {
		case "query":
			fmt.Fprint(w, `{
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
		case "parse":
			assert.Equal(t, "Mercury", r.URL.Query().Get("page"))
			fmt.Fprint(w, `{
				"parse": {
					"text": {"*": "<ul><li><a href=\"/wiki/Mercury_(planet)\" title=\"Mercury (planet)\">Mercury (planet)</a></li><li><a href=\"/wiki/Mercury_(mythology)\" title=\"Mercury (mythology)\">Mercury (mythology)</a></li></ul>"}
				}
			}`)
		default:
			t.Errorf("unexpected action %q", r.URL.Query().Get("action"))
		}
	})

	_, err := client.Fetch(context.Background(), "Mercury")
	require.Error(t, err)

	disamb, ok := graph.AsDisambiguation(err)
	require.True(t, ok)
	assert.Equal(t, "Mercury", disamb.Title)
	assert.Equal(t, []string{"Mercury (planet)", "Mercury (mythology)"}, disamb.Alternatives)
}

func TestFetchServerError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.Fetch(context.Background(), "Anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
	assert.False(t, graph.IsNotFound(err))
}

// Package wikipedia implements the knowledge-base article source on top of
// the MediaWiki action API.
package wikipedia

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/athapong/wikigraph/pkg/graph"
)

// DefaultAPIURL is the English Wikipedia action API endpoint.
const DefaultAPIURL = "https://en.wikipedia.org/w/api.php"

const defaultUserAgent = "wikigraph/1.0 (https://github.com/athapong/wikigraph)"

// Client fetches articles through the MediaWiki action API. Titles are
// matched exactly (redirects are followed, but there is no fuzzy search
// fallback), so a typo'd query fails fast instead of resolving to an
// unrelated page.
type Client struct {
	apiURL     string
	userAgent  string
	httpClient *http.Client
	logger     *logrus.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithUserAgent overrides the User-Agent header sent to the API.
func WithUserAgent(agent string) Option {
	return func(c *Client) { c.userAgent = agent }
}

// NewClient creates a client for a MediaWiki API endpoint. An empty apiURL
// selects English Wikipedia.
func NewClient(apiURL string, opts ...Option) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	c := &Client{
		apiURL:     apiURL,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch implements graph.ArticleSource. It returns the resolved article, a
// *graph.DisambiguationError with the page's ordered alternatives, or an
// error wrapping graph.ErrNotFound.
func (c *Client) Fetch(ctx context.Context, title string) (*graph.Article, error) {
	body, err := c.get(ctx, url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"prop":        {"extracts|pageprops"},
		"ppprop":      {"disambiguation"},
		"explaintext": {"1"},
		"redirects":   {"1"},
		"titles":      {title},
	})
	if err != nil {
		return nil, err
	}

	p, err := parseQueryResponse(body)
	if err != nil {
		return nil, err
	}

	if p.Missing {
		return nil, errors.Wrapf(graph.ErrNotFound, "no page for %q", title)
	}

	if p.Disambiguation {
		alternatives, err := c.fetchAlternatives(ctx, p.Title)
		if err != nil {
			return nil, errors.Wrapf(err, "listing alternatives for %q", p.Title)
		}
		return nil, &graph.DisambiguationError{Title: p.Title, Alternatives: alternatives}
	}

	return &graph.Article{
		Title:   p.Title,
		Summary: summaryFromExtract(p.Extract),
		Content: p.Extract,
	}, nil
}

// fetchAlternatives renders the disambiguation page and scrapes its ordered
// list of alternative article titles.
func (c *Client) fetchAlternatives(ctx context.Context, title string) ([]string, error) {
	body, err := c.get(ctx, url.Values{
		"action": {"parse"},
		"format": {"json"},
		"prop":   {"text"},
		"page":   {title},
	})
	if err != nil {
		return nil, err
	}

	html, err := parseRenderedHTML(body)
	if err != nil {
		return nil, err
	}
	return parseAlternatives(html)
}

func (c *Client) get(ctx context.Context, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.WithFields(logrus.Fields{
		"action": params.Get("action"),
		"title":  params.Get("titles") + params.Get("page"),
	}).Debug("API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "calling MediaWiki API")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("MediaWiki API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}
	return body, nil
}

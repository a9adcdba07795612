package graph

import (
	"context"

	"github.com/pkg/errors"
)

// fakeSource is an in-memory ArticleSource with per-title fetch counting.
type fakeSource struct {
	articles map[string]*Article
	disambig map[string][]string
	fail     map[string]error
	fetches  map[string]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		articles: make(map[string]*Article),
		disambig: make(map[string][]string),
		fail:     make(map[string]error),
		fetches:  make(map[string]int),
	}
}

func (f *fakeSource) add(title, content string) *Article {
	article := &Article{Title: title, Summary: content, Content: content}
	f.articles[title] = article
	return article
}

func (f *fakeSource) Fetch(ctx context.Context, title string) (*Article, error) {
	f.fetches[title]++

	if err, ok := f.fail[title]; ok {
		return nil, err
	}
	if alternatives, ok := f.disambig[title]; ok {
		return nil, &DisambiguationError{Title: title, Alternatives: alternatives}
	}
	if article, ok := f.articles[title]; ok {
		return article, nil
	}
	return nil, errors.Wrapf(ErrNotFound, "no page for %q", title)
}

// fakeExtractor returns canned mentions keyed by chunk text.
type fakeExtractor struct {
	mentions map[string][]Mention
	err      error
	calls    int
}

func newFakeExtractor() *fakeExtractor {
	return &fakeExtractor{mentions: make(map[string][]Mention)}
}

func (f *fakeExtractor) Extract(ctx context.Context, text string) ([]Mention, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.mentions[text], nil
}

// repeat emits a mention n times so aggregation yields a count of n.
func repeat(text string, entityType EntityType, n int) []Mention {
	out := make([]Mention, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Mention{Text: text, Type: entityType})
	}
	return out
}

func concat(groups ...[]Mention) []Mention {
	var out []Mention
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

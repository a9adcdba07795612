package storage

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athapong/wikigraph/pkg/graph"
)

type stubSource struct {
	articles map[string]*graph.Article
	fetches  map[string]int
}

func newStubSource() *stubSource {
	return &stubSource{
		articles: make(map[string]*graph.Article),
		fetches:  make(map[string]int),
	}
}

func (s *stubSource) add(title, content string) {
	s.articles[title] = &graph.Article{Title: title, Summary: content, Content: content}
}

func (s *stubSource) Fetch(ctx context.Context, title string) (*graph.Article, error) {
	s.fetches[title]++
	if article, ok := s.articles[title]; ok {
		return article, nil
	}
	return nil, errors.Wrapf(graph.ErrNotFound, "no page for %q", title)
}

type stubExtractor struct {
	mentions map[string][]graph.Mention
}

func (e *stubExtractor) Extract(ctx context.Context, text string) ([]graph.Mention, error) {
	return e.mentions[text], nil
}

func TestResumedSessionExtendsGraph(t *testing.T) {
	store := NewSessionStore(t.TempDir())
	require.NoError(t, store.Save(context.Background(), "turing", buildSampleGraph()))

	restored, err := store.Load(context.Background(), "turing")
	require.NoError(t, err)
	require.Equal(t, 2, restored.NodeCount())
	require.Equal(t, 1, restored.EdgeCount())

	source := newStubSource()
	source.add("Grace Hopper", "hopper-body")
	extractor := &stubExtractor{mentions: map[string][]graph.Mention{
		"hopper-body": {
			{Text: "Alan Turing", Type: graph.EntityPerson},
			{Text: "Alan Turing", Type: graph.EntityPerson},
		},
	}}

	builder := graph.NewBuilder(source, extractor, restored)
	node := graph.NewNode("Grace Hopper", graph.EntityPerson)
	require.NoError(t, builder.Expand(context.Background(), node, restored.Depth, restored.Width, ""))

	// The new query is fetched and registered alongside the saved nodes.
	assert.Equal(t, 1, source.fetches["Grace Hopper"])
	assert.True(t, restored.HasNode("Grace Hopper"))
	assert.Equal(t, 3, restored.NodeCount())

	// Its mention of a saved node becomes an edge without re-fetching it.
	assert.Equal(t, 0, source.fetches["Alan Turing"])
	assert.Equal(t, 2, restored.EdgeCount())
	assert.Contains(t, restored.Edges(), graph.NewEdge("Grace Hopper", "Alan Turing", graph.RelationUnknown))
	assert.Contains(t, restored.Edges(), graph.NewEdge("Alan Turing", "Christopher Morcom", graph.RelationUnknown))
}

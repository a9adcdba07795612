package storage

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athapong/wikigraph/pkg/graph"
)

func buildSampleGraph() *graph.RelationshipGraph {
	g := graph.NewRelationshipGraph("Alan Turing", 2, 2)

	root := graph.NewNode("Alan Turing", graph.EntityPerson)
	root.Article = &graph.Article{
		Title:   "Alan Turing",
		Summary: "Alan Turing was an English mathematician.",
		Content: "Alan Turing was an English mathematician. Christopher Morcom was his friend.",
	}
	root.Mentions = graph.MentionCounts{
		{Text: "Christopher Morcom", Type: graph.EntityPerson}: 3,
		{Text: "Cambridge", Type: graph.EntityLocation}:        1,
	}
	root.Selected = []graph.Mention{{Text: "Christopher Morcom", Type: graph.EntityPerson}}
	g.UpsertNode(root)

	child := graph.NewNode("Christopher Morcom", graph.EntityPerson)
	child.Article = &graph.Article{Title: "Christopher Morcom", Summary: "s", Content: "c"}
	g.UpsertNode(child)

	g.AddEdge("Alan Turing", "Christopher Morcom", graph.RelationUnknown)
	return g
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewSessionStore(t.TempDir())
	original := buildSampleGraph()

	require.NoError(t, store.Save(context.Background(), "turing", original))
	assert.True(t, store.Exists("turing"))

	restored, err := store.Load(context.Background(), "turing")
	require.NoError(t, err)

	assert.Equal(t, original.Query, restored.Query)
	assert.Equal(t, original.Depth, restored.Depth)
	assert.Equal(t, original.Width, restored.Width)
	assert.Equal(t, original.NodeCount(), restored.NodeCount())
	assert.Equal(t, original.Edges(), restored.Edges())

	for _, node := range original.Nodes() {
		got := restored.Node(node.Title())
		require.NotNil(t, got, "missing node %q", node.Title())
		assert.Equal(t, node.Type, got.Type)
		assert.Equal(t, node.Article.Summary, got.Article.Summary)
		assert.Equal(t, node.Article.Content, got.Article.Content)
		assert.Equal(t, node.Mentions, got.Mentions)
		assert.Equal(t, node.Selected, got.Selected)
	}
}

func TestLoadMissingSession(t *testing.T) {
	store := NewSessionStore(t.TempDir())

	_, err := store.Load(context.Background(), "nope")
	require.Error(t, err)
	assert.False(t, store.Exists("nope"))
}

func TestLoadRejectsUnknownVersion(t *testing.T) {
	dir := t.TempDir()
	store := NewSessionStore(dir)

	data, err := json.Marshal(map[string]interface{}{"version": SnapshotVersion + 1})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.Path("future"), data, 0644))

	_, err = store.Load(context.Background(), "future")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported snapshot version")
}

func TestSnapshotMentionsSortedByCount(t *testing.T) {
	snapshot := FromGraph(buildSampleGraph())

	var root *NodeSnapshot
	for i := range snapshot.Nodes {
		if snapshot.Nodes[i].Title == "Alan Turing" {
			root = &snapshot.Nodes[i]
		}
	}
	require.NotNil(t, root)
	require.Len(t, root.Mentions, 2)
	assert.Equal(t, "Christopher Morcom", root.Mentions[0].Text)
	assert.Equal(t, 3, root.Mentions[0].Count)
	assert.Equal(t, "Cambridge", root.Mentions[1].Text)
}

func TestSnapshotCarriesVersionAndID(t *testing.T) {
	snapshot := FromGraph(buildSampleGraph())
	assert.Equal(t, SnapshotVersion, snapshot.Version)
	assert.NotEmpty(t, snapshot.ID)
	assert.False(t, snapshot.SavedAt.IsZero())
}

package storage

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/athapong/wikigraph/pkg/graph"
)

// SnapshotVersion is bumped whenever the stored format changes shape. The
// snapshot is an explicit flat format (node list + edge list) rather than a
// serialization of internal structures, so it stays stable across
// implementation changes.
const SnapshotVersion = 1

// Snapshot is a complete, resumable dump of one relationship graph.
type Snapshot struct {
	Version int       `json:"version"`
	ID      string    `json:"id"`
	SavedAt time.Time `json:"saved_at"`

	Query string `json:"query"`
	Depth int    `json:"depth"`
	Width int    `json:"width"`

	Nodes []NodeSnapshot `json:"nodes"`
	Edges []EdgeSnapshot `json:"edges"`
}

// NodeSnapshot flattens one graph node with its resolved article and
// mention-count table.
type NodeSnapshot struct {
	Title    string           `json:"title"`
	Query    string           `json:"query"`
	Type     graph.EntityType `json:"type,omitempty"`
	Summary  string           `json:"summary"`
	Content  string           `json:"content"`
	Mentions []MentionCount   `json:"mentions,omitempty"`
	Selected []graph.Mention  `json:"selected,omitempty"`
}

// MentionCount is one row of a node's mention-count table.
type MentionCount struct {
	Text  string           `json:"text"`
	Type  graph.EntityType `json:"type"`
	Count int              `json:"count"`
}

// EdgeSnapshot is one normalized edge.
type EdgeSnapshot struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

// FromGraph captures a snapshot of g.
func FromGraph(g *graph.RelationshipGraph) *Snapshot {
	snapshot := &Snapshot{
		Version: SnapshotVersion,
		ID:      uuid.New().String(),
		SavedAt: time.Now().UTC(),
		Query:   g.Query,
		Depth:   g.Depth,
		Width:   g.Width,
	}

	for _, node := range g.Nodes() {
		ns := NodeSnapshot{
			Title:    node.Title(),
			Query:    node.Query,
			Type:     node.Type,
			Selected: node.Selected,
		}
		if node.Article != nil {
			ns.Summary = node.Article.Summary
			ns.Content = node.Article.Content
		}
		ns.Mentions = sortedMentions(node.Mentions)
		snapshot.Nodes = append(snapshot.Nodes, ns)
	}

	for _, edge := range g.Edges() {
		snapshot.Edges = append(snapshot.Edges, EdgeSnapshot(edge))
	}
	return snapshot
}

// Restore rebuilds a relationship graph from a snapshot. The result can be
// handed to a Builder to extend an interrupted build.
func (s *Snapshot) Restore() *graph.RelationshipGraph {
	g := graph.NewRelationshipGraph(s.Query, s.Depth, s.Width)

	for _, ns := range s.Nodes {
		node := graph.NewNode(ns.Query, ns.Type)
		node.Article = &graph.Article{
			Title:   ns.Title,
			Summary: ns.Summary,
			Content: ns.Content,
		}
		node.Selected = ns.Selected
		if len(ns.Mentions) > 0 {
			node.Mentions = make(graph.MentionCounts, len(ns.Mentions))
			for _, mc := range ns.Mentions {
				node.Mentions[graph.Mention{Text: mc.Text, Type: mc.Type}] = mc.Count
			}
		}
		g.UpsertNode(node)
	}

	for _, edge := range s.Edges {
		g.AddEdge(edge.Source, edge.Target, edge.Label)
	}
	return g
}

func sortedMentions(counts graph.MentionCounts) []MentionCount {
	if len(counts) == 0 {
		return nil
	}

	mentions := make([]MentionCount, 0, len(counts))
	for mention, count := range counts {
		mentions = append(mentions, MentionCount{Text: mention.Text, Type: mention.Type, Count: count})
	}
	sort.Slice(mentions, func(i, j int) bool {
		if mentions[i].Count != mentions[j].Count {
			return mentions[i].Count > mentions[j].Count
		}
		return mentions[i].Text < mentions[j].Text
	})
	return mentions
}

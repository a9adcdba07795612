package graph

import (
	"sort"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"

	"github.com/athapong/wikigraph/pkg/graph/metrics"
)

// RelationUnknown is the placeholder relation label for edges. The model
// leaves room for typed relations later.
const RelationUnknown = "UNK"

// Edge links two nodes by canonical title. Source and Target are ordered
// lexicographically so that (A,B) and (B,A) are the same edge.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

// NewEdge builds a normalized edge between two canonical titles.
func NewEdge(a, b, label string) Edge {
	if b < a {
		a, b = b, a
	}
	return Edge{Source: a, Target: b, Label: label}
}

// RelationshipGraph owns the node map and the deduplicated edge set for one
// build, along with the traversal budgets and the original seed query. All
// mutation goes through UpsertNode and AddEdge; the mutex keeps that
// discipline safe if sibling expansions are ever parallelized.
type RelationshipGraph struct {
	// Query is the original seed string. It may differ from the resolved
	// root title.
	Query string
	Depth int
	Width int

	mu    sync.RWMutex
	nodes map[string]*Node
	edges mapset.Set[Edge]

	logger *logrus.Logger
}

// NewRelationshipGraph creates an empty graph for a seed query with the
// given traversal budgets.
func NewRelationshipGraph(query string, depth, width int) *RelationshipGraph {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &RelationshipGraph{
		Query:  query,
		Depth:  depth,
		Width:  width,
		nodes:  make(map[string]*Node),
		edges:  mapset.NewSet[Edge](),
		logger: logger,
	}
}

// UpsertNode registers a resolved node under its canonical title. It is a
// no-op when the title is already present, so a title is never represented
// twice within one graph.
func (g *RelationshipGraph) UpsertNode(node *Node) {
	g.mu.Lock()
	defer g.mu.Unlock()

	title := node.Title()
	if _, exists := g.nodes[title]; exists {
		return
	}
	g.nodes[title] = node
	metrics.GraphNodeCount.WithLabelValues(string(node.Type)).Inc()
	g.logger.WithFields(logrus.Fields{
		"title": title,
		"type":  node.Type,
	}).Debug("Node registered")
}

// HasNode reports whether a canonical title is already registered.
func (g *RelationshipGraph) HasNode(title string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.nodes[title]
	return ok
}

// Node returns the registered node for a canonical title, or nil.
func (g *RelationshipGraph) Node(title string) *Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.nodes[title]
}

// AddEdge records an edge between two canonical titles. The pair is
// normalized before insertion so insertion is idempotent regardless of
// discovery direction.
func (g *RelationshipGraph) AddEdge(a, b, label string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.edges.Add(NewEdge(a, b, label)) {
		metrics.GraphEdgeCount.WithLabelValues(label).Inc()
	}
}

// NodeCount returns the number of registered nodes.
func (g *RelationshipGraph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// EdgeCount returns the number of distinct edges.
func (g *RelationshipGraph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edges.Cardinality()
}

// Nodes returns a snapshot of all registered nodes, sorted by title for
// stable output.
func (g *RelationshipGraph) Nodes() []*Node {
	g.mu.RLock()
	defer g.mu.RUnlock()

	nodes := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Title() < nodes[j].Title() })
	return nodes
}

// Edges returns a snapshot of the edge set, sorted for stable output.
func (g *RelationshipGraph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	edges := g.edges.ToSlice()
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
	return edges
}

// Neighbors returns the titles connected to a node by any edge.
func (g *RelationshipGraph) Neighbors(title string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []string
	for edge := range g.edges.Iter() {
		switch title {
		case edge.Source:
			out = append(out, edge.Target)
		case edge.Target:
			out = append(out, edge.Source)
		}
	}
	sort.Strings(out)
	return out
}

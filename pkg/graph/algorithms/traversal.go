package algorithms

import (
	"fmt"

	"github.com/athapong/wikigraph/pkg/graph"
)

type TraversalType string

const (
	BFS TraversalType = "BFS"
	DFS TraversalType = "DFS"
)

// GraphTraversal walks a built relationship graph along its edges.
type GraphTraversal struct {
	graph *graph.RelationshipGraph
}

func NewGraphTraversal(g *graph.RelationshipGraph) *GraphTraversal {
	return &GraphTraversal{graph: g}
}

// Traverse returns the titles reachable from start within maxDepth hops, in
// visit order. The start node itself is included at depth 0.
func (t *GraphTraversal) Traverse(start string, maxDepth int, traversalType TraversalType) ([]string, error) {
	if !t.graph.HasNode(start) {
		return nil, fmt.Errorf("node not found: %s", start)
	}

	visited := make(map[string]bool)

	switch traversalType {
	case BFS:
		return t.bfs(start, maxDepth, visited), nil
	case DFS:
		result := make([]string, 0)
		t.dfs(start, maxDepth, visited, &result)
		return result, nil
	default:
		return nil, fmt.Errorf("unsupported traversal type: %s", traversalType)
	}
}

func (t *GraphTraversal) bfs(start string, maxDepth int, visited map[string]bool) []string {
	queue := []string{start}
	result := make([]string, 0)
	depth := 0

	for len(queue) > 0 && depth <= maxDepth {
		levelSize := len(queue)
		for i := 0; i < levelSize; i++ {
			current := queue[0]
			queue = queue[1:]

			if visited[current] {
				continue
			}
			visited[current] = true
			result = append(result, current)

			for _, neighbor := range t.graph.Neighbors(current) {
				if !visited[neighbor] {
					queue = append(queue, neighbor)
				}
			}
		}
		depth++
	}

	return result
}

func (t *GraphTraversal) dfs(current string, maxDepth int, visited map[string]bool, result *[]string) {
	if maxDepth < 0 || visited[current] {
		return
	}

	visited[current] = true
	*result = append(*result, current)

	for _, neighbor := range t.graph.Neighbors(current) {
		if !visited[neighbor] {
			t.dfs(neighbor, maxDepth-1, visited, result)
		}
	}
}

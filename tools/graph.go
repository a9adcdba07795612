package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/athapong/wikigraph/pkg/graph"
	"github.com/athapong/wikigraph/pkg/graph/algorithms"
	"github.com/athapong/wikigraph/pkg/graph/storage"
	"github.com/athapong/wikigraph/services"
)

const (
	defaultDepth = 2
	defaultWidth = 2
)

// RegisterGraphTools exposes the relationship-graph builder over MCP.
func RegisterGraphTools(s *server.MCPServer) {
	buildTool := mcp.NewTool("build_relationship_graph",
		mcp.WithDescription("Builds a bounded relationship graph rooted at a named query. Starting from the seed article, related people, organizations and locations mentioned in each article are resolved and linked recursively. Returns the graph snapshot as JSON."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Seed query to resolve as the root article"),
		),
		mcp.WithString("type",
			mcp.Description("Entity type of the seed: PERSON, ORGANIZATION or LOCATION"),
		),
		mcp.WithNumber("depth",
			mcp.Description("Maximum recursion depth (default 2)"),
		),
		mcp.WithNumber("width",
			mcp.Description("Maximum new person nodes per expansion (default 2)"),
		),
	)
	s.AddTool(buildTool, buildGraphHandler)

	inspectTool := mcp.NewTool("inspect_article",
		mcp.WithDescription("Resolves one query to an article and returns its named-entity mention counts without building a graph."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Query to resolve"),
		),
		mcp.WithString("type",
			mcp.Description("Entity type hint: PERSON, ORGANIZATION or LOCATION"),
		),
	)
	s.AddTool(inspectTool, inspectArticleHandler)

	relatedTool := mcp.NewTool("related_entities",
		mcp.WithDescription("Walks a previously saved graph session and returns the article titles reachable from a start title within a given number of hops."),
		mcp.WithString("session",
			mcp.Required(),
			mcp.Description("Name of the saved session"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Canonical article title to start from"),
		),
		mcp.WithNumber("depth",
			mcp.Description("Maximum number of hops (default 1)"),
		),
	)
	s.AddTool(relatedTool, relatedEntitiesHandler)
}

func buildGraphHandler(arguments map[string]interface{}) (*mcp.CallToolResult, error) {
	query, ok := arguments["query"].(string)
	if !ok || query == "" {
		return mcp.NewToolResultError("query must be a non-empty string"), nil
	}

	entityType, err := entityTypeArg(arguments)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	depth := intArg(arguments, "depth", defaultDepth)
	width := intArg(arguments, "width", defaultWidth)

	g := graph.NewRelationshipGraph(query, depth, width)
	builder := graph.NewBuilder(services.DefaultWikipediaSource(), services.DefaultExtractor(), g)

	if err := builder.Build(context.Background(), entityType); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build graph: %s", err)), nil
	}

	data, err := json.MarshalIndent(storage.FromGraph(g), "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode graph: %s", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func inspectArticleHandler(arguments map[string]interface{}) (*mcp.CallToolResult, error) {
	query, ok := arguments["query"].(string)
	if !ok || query == "" {
		return mcp.NewToolResultError("query must be a non-empty string"), nil
	}

	entityType, err := entityTypeArg(arguments)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	g := graph.NewRelationshipGraph(query, 0, 0)
	builder := graph.NewBuilder(services.DefaultWikipediaSource(), services.DefaultExtractor(), g)

	node, err := builder.SinglePage(context.Background(), query, entityType)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to inspect article: %s", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Title: %s\n\nEntities:\n", node.Title())
	for mention, count := range node.Mentions {
		fmt.Fprintf(&sb, "%s\t%s\t%d\n", mention.Text, mention.Type, count)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func relatedEntitiesHandler(arguments map[string]interface{}) (*mcp.CallToolResult, error) {
	session, ok := arguments["session"].(string)
	if !ok || session == "" {
		return mcp.NewToolResultError("session must be a non-empty string"), nil
	}
	title, ok := arguments["title"].(string)
	if !ok || title == "" {
		return mcp.NewToolResultError("title must be a non-empty string"), nil
	}
	depth := intArg(arguments, "depth", 1)

	store := storage.NewSessionStore(sessionDir())
	g, err := store.Load(context.Background(), session)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load session: %s", err)), nil
	}

	titles, err := algorithms.NewGraphTraversal(g).Traverse(title, depth, algorithms.BFS)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("traversal failed: %s", err)), nil
	}
	return mcp.NewToolResultText(strings.Join(titles, "\n")), nil
}

func sessionDir() string {
	if dir := os.Getenv("WIKIGRAPH_SESSION_DIR"); dir != "" {
		return dir
	}
	return "sessions"
}

func entityTypeArg(arguments map[string]interface{}) (graph.EntityType, error) {
	raw, ok := arguments["type"].(string)
	if !ok || raw == "" {
		return "", nil
	}

	entityType := graph.EntityType(strings.ToUpper(raw))
	if !graph.AllowedTypes[entityType] {
		return "", fmt.Errorf("type must be one of PERSON, ORGANIZATION, LOCATION")
	}
	return entityType, nil
}

func intArg(arguments map[string]interface{}, key string, fallback int) int {
	if value, ok := arguments[key].(float64); ok {
		return int(value)
	}
	return fallback
}

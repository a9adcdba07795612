package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/athapong/wikigraph/pkg/graph"
	"github.com/athapong/wikigraph/pkg/graph/metrics"
	"github.com/athapong/wikigraph/pkg/graph/storage"
	"github.com/athapong/wikigraph/pkg/graph/visualizer"
	"github.com/athapong/wikigraph/services"
)

var (
	entityType  = flag.String("type", "", "Entity type of the seed query (PERSON, ORGANIZATION or LOCATION)")
	depth       = flag.Int("depth", 2, "Max graph depth")
	width       = flag.Int("width", 2, "Neighbours to fetch for each node being expanded")
	singlePage  = flag.Bool("single-page", false, "Print the mention table for a single page instead of building a graph")
	session     = flag.String("session", "", "Session name; an existing session is resumed, and the result saved back")
	sessionDir  = flag.String("session-dir", "sessions", "Directory holding session snapshots")
	output      = flag.String("output", "output.html", "Output file for the graph visualization")
	noViz       = flag.Bool("no-viz", false, "Skip generating the HTML visualization")
	neo4jExport = flag.Bool("neo4j", false, "Export the graph to Neo4j (NEO4J_URI, NEO4J_USERNAME, NEO4J_PASSWORD)")
	logLevel    = flag.String("log-level", "info", "Logging level (debug, info, warn, error)")
	envFile     = flag.String("env", ".env", "Path to environment file")
)

func main() {
	flag.Parse()

	logger := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logger.Fatalf("Invalid log level: %v", err)
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if err := godotenv.Load(*envFile); err != nil {
		logger.Debugf("No env file loaded from %s: %v", *envFile, err)
	}

	query := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if query == "" {
		logger.Fatal("A seed query must be specified")
	}

	rootType := graph.EntityType(strings.ToUpper(*entityType))
	if *entityType != "" && !graph.AllowedTypes[rootType] {
		logger.Fatalf("Invalid entity type %q: must be PERSON, ORGANIZATION or LOCATION", *entityType)
	}

	ctx := context.Background()
	source := services.DefaultWikipediaSource()
	extractor := services.DefaultExtractor()

	if *singlePage {
		builder := graph.NewBuilder(source, extractor, graph.NewRelationshipGraph(query, 0, 0))
		node, err := builder.SinglePage(ctx, query, rootType)
		if err != nil {
			logger.Fatalf("Failed to inspect %q: %v", query, err)
		}
		printMentionTable(node)
		return
	}

	store := storage.NewSessionStore(*sessionDir)

	var g *graph.RelationshipGraph
	resumed := false
	if *session != "" && store.Exists(*session) {
		g, err = store.Load(ctx, *session)
		if err != nil {
			logger.Fatalf("Failed to resume session %q: %v", *session, err)
		}
		resumed = true
		logger.Infof("Resumed session %q with %d nodes (depth %d, width %d from the snapshot)",
			*session, g.NodeCount(), g.Depth, g.Width)
	} else {
		g = graph.NewRelationshipGraph(query, *depth, *width)
	}

	builder := graph.NewBuilder(source, extractor, g)
	if resumed {
		// Expand the query given on this invocation into the restored graph;
		// already-registered titles become edges instead of re-fetches.
		err = builder.Expand(ctx, graph.NewNode(query, rootType), g.Depth, g.Width, "")
	} else {
		err = builder.Build(ctx, rootType)
	}
	if err != nil {
		logger.Fatalf("Failed to build graph: %v", err)
	}
	metrics.UpdateSystemMetrics()
	logger.Infof("Graph built with %d nodes and %d edges", g.NodeCount(), g.EdgeCount())

	if *session != "" {
		if err := store.Save(ctx, *session, g); err != nil {
			logger.Fatalf("Failed to save session %q: %v", *session, err)
		}
		logger.Infof("Session saved to %s", store.Path(*session))
	}

	if !*noViz {
		viz := visualizer.NewD3Visualizer(*output)
		if err := viz.Visualize(g); err != nil {
			logger.Errorf("Failed to visualize graph: %v", err)
		} else {
			logger.Infof("Visualization saved to %s", *output)
		}
	}

	if *neo4jExport {
		exportNeo4j(ctx, logger, g)
	}
}

func exportNeo4j(ctx context.Context, logger *logrus.Logger, g *graph.RelationshipGraph) {
	uri := os.Getenv("NEO4J_URI")
	if uri == "" {
		logger.Fatal("NEO4J_URI must be set for Neo4j export")
	}

	neo, err := storage.NewNeo4jStorage(uri, os.Getenv("NEO4J_USERNAME"), os.Getenv("NEO4J_PASSWORD"))
	if err != nil {
		logger.Fatalf("Failed to connect to Neo4j: %v", err)
	}
	defer neo.Close()

	if err := neo.StoreGraph(ctx, g); err != nil {
		logger.Fatalf("Failed to export graph to Neo4j: %v", err)
	}
	logger.Infof("Graph exported to %s", uri)
}

// printMentionTable writes the node's mention counts, most frequent first,
// filtered to the expandable entity types.
func printMentionTable(node *graph.Node) {
	type row struct {
		text  string
		typ   graph.EntityType
		count int
	}

	rows := make([]row, 0, len(node.Mentions))
	for mention, count := range node.Mentions {
		if !graph.AllowedTypes[mention.Type] {
			continue
		}
		rows = append(rows, row{text: mention.Text, typ: mention.Type, count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].text < rows[j].text
	})

	fmt.Printf("\n%s\n\nEntities:\n\n", node.Title())
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TEXT\tTYPE\tCOUNT")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%d\n", r.text, r.typ, r.count)
	}
	w.Flush()
}

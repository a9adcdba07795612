package graph

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/athapong/wikigraph/pkg/graph/metrics"
)

// Builder drives the recursive expansion: fetch, extract, select, recurse,
// link. It is the only writer of the graph store it owns.
type Builder struct {
	extractor Extractor
	resolver  *Disambiguator
	selector  *Selector
	graph     *RelationshipGraph
	logger    *logrus.Logger
}

// NewBuilder creates a builder over an article source and an entity
// extractor, writing into g. Passing a graph loaded from a saved session
// resumes it: already-registered titles become edges instead of re-fetches.
func NewBuilder(source ArticleSource, extractor Extractor, g *RelationshipGraph) *Builder {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	resolver := NewDisambiguator(source)
	return &Builder{
		extractor: extractor,
		resolver:  resolver,
		selector:  NewSelector(resolver),
		graph:     g,
		logger:    logger,
	}
}

// Graph returns the store the builder writes into.
func (b *Builder) Graph() *RelationshipGraph {
	return b.graph
}

// Build expands the graph's seed query with its depth and width budgets.
// rootType may be empty when the caller does not know the seed's entity
// type. A resolution failure at the root aborts the whole build.
func (b *Builder) Build(ctx context.Context, rootType EntityType) error {
	root := NewNode(b.graph.Query, rootType)
	return b.Expand(ctx, root, b.graph.Depth, b.graph.Width, "")
}

// Expand resolves node, registers it, and recursively expands its selected
// candidates. Registration happens before any child is expanded so that a
// child pointing back at this node is detected as a cycle and recorded as an
// edge, never re-fetched. depth 0 makes the node a leaf: no extraction, no
// expansion. Resolution failure for node itself propagates to the caller;
// failures inside a child branch are swallowed and the candidate skipped.
func (b *Builder) Expand(ctx context.Context, node *Node, depth, width int, hintText string) error {
	if _, err := b.resolver.ResolveNode(ctx, node, hintText); err != nil {
		return errors.Wrapf(err, "resolving %q", node.Query)
	}

	b.graph.UpsertNode(node)

	if depth <= 0 {
		return nil
	}

	counts, err := b.extractMentions(ctx, node.Article)
	if err != nil {
		return errors.Wrapf(err, "extracting entities from %q", node.Title())
	}
	node.Mentions = counts

	for _, child := range b.selector.Select(ctx, b.graph, node, width) {
		// Organizations and locations are always leaves; only persons
		// continue the recursive chain.
		childDepth := 0
		if child.Type == EntityPerson {
			childDepth = depth - 1
		}

		if err := b.Expand(ctx, child, childDepth, width, node.Article.Content); err != nil {
			if !IsNotFound(err) {
				return err
			}
			b.logger.WithError(err).WithField("candidate", child.Query).Warn("Skipping candidate branch")
			continue
		}
		b.graph.AddEdge(node.Title(), child.Title(), RelationUnknown)
	}

	b.logger.WithFields(logrus.Fields{
		"title": node.Title(),
		"depth": depth,
	}).Info("Node expanded")
	return nil
}

// SinglePage resolves one query and extracts its mention-count table without
// building a graph. Debug surface for inspecting what the extractor sees.
func (b *Builder) SinglePage(ctx context.Context, query string, entityType EntityType) (*Node, error) {
	node := NewNode(query, entityType)
	if _, err := b.resolver.ResolveNode(ctx, node, ""); err != nil {
		return nil, errors.Wrapf(err, "resolving %q", query)
	}

	counts, err := b.extractMentions(ctx, node.Article)
	if err != nil {
		return nil, errors.Wrapf(err, "extracting entities from %q", node.Title())
	}
	node.Mentions = counts
	return node, nil
}

// extractMentions runs the extractor over the article body in fixed-size
// chunks, truncated before trailing reference sections, and aggregates the
// per-mention occurrence counts.
func (b *Builder) extractMentions(ctx context.Context, article *Article) (MentionCounts, error) {
	timer := prometheus.NewTimer(metrics.ExtractionDuration.WithLabelValues("chunked"))
	defer timer.ObserveDuration()

	body := TruncateSections(article.Content)
	counts := make(MentionCounts)
	for _, chunk := range ChunkText(body, ChunkSize) {
		mentions, err := b.extractor.Extract(ctx, chunk)
		if err != nil {
			return nil, err
		}
		for _, mention := range mentions {
			counts[mention]++
			metrics.EntitiesExtracted.WithLabelValues(string(mention.Type)).Inc()
		}
	}
	return counts, nil
}

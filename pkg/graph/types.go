package graph

import (
	"context"
)

// EntityType classifies a graph node or an extracted mention.
type EntityType string

const (
	EntityPerson       EntityType = "PERSON"
	EntityOrganization EntityType = "ORGANIZATION"
	EntityLocation     EntityType = "LOCATION"
)

// AllowedTypes is the fixed set of entity types the builder expands into
// nodes. Extractors may emit other labels; they are filtered out during
// candidate selection.
var AllowedTypes = map[EntityType]bool{
	EntityPerson:       true,
	EntityOrganization: true,
	EntityLocation:     true,
}

// Article is a resolved knowledge-base page. Immutable once fetched.
type Article struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
}

// Mention is a named-entity surface string with its type. Occurrence counts
// are aggregated per article in a MentionCounts table.
type Mention struct {
	Text string     `json:"text"`
	Type EntityType `json:"type"`
}

// MentionCounts aggregates how often each mention occurs in one article.
type MentionCounts map[Mention]int

// Node is one entry in the relationship graph. It is created when first
// discovered as an expansion candidate and becomes resolved once its Article
// has been fetched. Nodes are keyed in the graph by Article.Title.
type Node struct {
	// Query is the surface text the node was discovered under. It may differ
	// from the canonical title the query eventually resolves to.
	Query string `json:"query"`

	// Type is the declared entity type. Empty for the root node when the
	// caller did not specify one.
	Type EntityType `json:"type,omitempty"`

	Article *Article `json:"article,omitempty"`

	// Mentions is the full mention-count table extracted from the article
	// body. Nil until the node has been expanded.
	Mentions MentionCounts `json:"-"`

	// Selected is the ordered list of mentions chosen for expansion.
	Selected []Mention `json:"selected,omitempty"`
}

// NewNode creates an unresolved node for a query.
func NewNode(query string, entityType EntityType) *Node {
	return &Node{Query: query, Type: entityType}
}

// Title returns the canonical title once resolved, falling back to the
// original query text for unresolved nodes.
func (n *Node) Title() string {
	if n.Article != nil {
		return n.Article.Title
	}
	return n.Query
}

// Resolved reports whether the node's article has been fetched.
func (n *Node) Resolved() bool {
	return n.Article != nil
}

// ArticleSource fetches articles from the knowledge base. Fetch returns the
// resolved article for an exact title, a *DisambiguationError carrying the
// ordered alternative titles when the title is ambiguous, or an error
// wrapping ErrNotFound when no page exists.
type ArticleSource interface {
	Fetch(ctx context.Context, title string) (*Article, error)
}

// Extractor produces named-entity mentions from a piece of text. Inputs must
// be chunked by the caller; extractors have a practical input-length limit.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]Mention, error)
}

package graph

import (
	"context"
	"regexp"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/athapong/wikigraph/pkg/graph/metrics"
)

// Disambiguator resolves a query to exactly one article. When the source
// reports an ambiguous title, the parenthetical hints of the alternatives
// are scored against a hint text (typically the body of the node that
// discovered the query) to pick the contextually relevant sense.
type Disambiguator struct {
	source ArticleSource
	logger *logrus.Logger
}

// NewDisambiguator creates a disambiguator over an article source.
func NewDisambiguator(source ArticleSource) *Disambiguator {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &Disambiguator{
		source: source,
		logger: logger,
	}
}

// Resolve fetches the article for query. An ambiguous title is resolved by
// scoring alternatives against hintText; the alternative list itself serves
// as the retry sequence, so per-candidate fetch failures are skipped. Fails
// with ErrNotFound when the knowledge base has no matching title and all
// alternatives are exhausted.
func (d *Disambiguator) Resolve(ctx context.Context, query string, expected EntityType, hintText string) (*Article, error) {
	d.logger.WithField("query", query).Info("Fetching article")

	article, err := d.source.Fetch(ctx, query)
	if err == nil {
		metrics.ArticleFetchesTotal.WithLabelValues("ok").Inc()
		return article, nil
	}

	disamb, ok := AsDisambiguation(err)
	if !ok {
		metrics.ArticleFetchesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	scored := d.pickAlternative(disamb.Alternatives, expected, hintText)
	if scored != "" {
		d.logger.WithFields(logrus.Fields{
			"query":       query,
			"alternative": scored,
		}).Info("Disambiguating by hint score")
		metrics.DisambiguationsTotal.WithLabelValues("scored").Inc()
	} else {
		metrics.DisambiguationsTotal.WithLabelValues("first").Inc()
	}

	// The scored pick goes first; the source's original ordering is the
	// fallback sequence on any per-candidate failure.
	candidates := make([]string, 0, len(disamb.Alternatives)+1)
	if scored != "" {
		candidates = append(candidates, scored)
	}
	candidates = append(candidates, disamb.Alternatives...)

	tried := mapset.NewSet[string]()
	for _, candidate := range candidates {
		if !tried.Add(candidate) {
			continue
		}
		article, err := d.source.Fetch(ctx, candidate)
		if err != nil {
			d.logger.WithError(err).WithField("candidate", candidate).Debug("Alternative failed")
			continue
		}
		metrics.ArticleFetchesTotal.WithLabelValues("ok").Inc()
		return article, nil
	}

	metrics.ArticleFetchesTotal.WithLabelValues("not_found").Inc()
	return nil, errors.Wrapf(ErrNotFound, "no resolvable alternative for %q", query)
}

// ResolveNode resolves a node's query and caches the article on the node, so
// repeated calls never re-fetch.
func (d *Disambiguator) ResolveNode(ctx context.Context, node *Node, hintText string) (*Article, error) {
	if node.Article != nil {
		return node.Article, nil
	}

	article, err := d.Resolve(ctx, node.Query, node.Type, hintText)
	if err != nil {
		return nil, err
	}
	node.Article = article
	return article, nil
}

// pickAlternative returns the alternative with the strictly highest hint
// score, or "" when no alternative scores above zero (ties and the no-hint
// case fall back to the source's original ordering).
func (d *Disambiguator) pickAlternative(alternatives []string, expected EntityType, hintText string) string {
	if hintText == "" {
		return ""
	}

	best := ""
	bestScore := 0
	for _, alternative := range alternatives {
		// Meta entries are never valid concept pages for a person query.
		if expected == EntityPerson && IsMetaTitle(alternative) {
			continue
		}
		hint, ok := ParentheticalHint(alternative)
		if !ok {
			continue
		}
		if score := ScoreHint(hint, hintText); score > bestScore {
			bestScore = score
			best = alternative
		}
	}
	return best
}

var metaMarkers = []string{"(name)", "(surname)", "(given name)", "(disambiguation)"}

// IsMetaTitle reports whether a title is a name/surname/given-name or
// disambiguation meta entry rather than a concept page.
func IsMetaTitle(title string) bool {
	for _, marker := range metaMarkers {
		if strings.Contains(title, marker) {
			return true
		}
	}
	return false
}

var parentheticalRe = regexp.MustCompile(`^.+ \((.+)\)$`)

// ParentheticalHint extracts the parenthetical suffix of a title of the form
// "<base> (<hint>)".
func ParentheticalHint(title string) (string, bool) {
	m := parentheticalRe.FindStringSubmatch(title)
	if m == nil {
		return "", false
	}
	return m[1], true
}

var hintStopwords = mapset.NewSet[string](
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to",
	"for", "of", "with", "by", "born",
)

// ScoreHint scores a parenthetical hint against a hint text by summing, over
// the hint's non-stopword tokens, how many times each token occurs in the
// text. Matching is case-insensitive.
func ScoreHint(hint, hintText string) int {
	lowerText := strings.ToLower(hintText)

	score := 0
	for _, token := range strings.Fields(strings.ToLower(hint)) {
		token = strings.Trim(token, ".,;:!?\"'")
		if token == "" || hintStopwords.Contains(token) {
			continue
		}
		score += strings.Count(lowerText, token)
	}
	return score
}

package graph

import (
	"context"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"

	"github.com/athapong/wikigraph/pkg/graph/metrics"
)

// extraBucketSize caps how many ORGANIZATION and LOCATION continuations an
// expansion may add on top of the PERSON width budget.
const extraBucketSize = 2

// Selector turns a node's raw mention counts into an ordered, capped,
// type-bucketed list of next-node candidates. Each accepted candidate is
// resolved eagerly (with the current node's body as disambiguation hint) so
// that duplicates of already-registered nodes become edges instead of
// re-fetches.
type Selector struct {
	resolver *Disambiguator
	logger   *logrus.Logger
}

// NewSelector creates a selector that resolves candidates through resolver.
func NewSelector(resolver *Disambiguator) *Selector {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &Selector{
		resolver: resolver,
		logger:   logger,
	}
}

type rankedMention struct {
	Mention
	count int
}

// Select picks the expansion candidates for node. It never returns more than
// width PERSON continuations, plus up to two ORGANIZATION and two LOCATION
// continuations regardless of width. Candidates resolving to the node itself
// or to an already-registered node are recorded as edges on g and returned
// nowhere; resolution failures discard the candidate and selection
// continues.
func (s *Selector) Select(ctx context.Context, g *RelationshipGraph, node *Node, width int) []*Node {
	candidates := rankMentions(node.Mentions)

	var persons, orgs, locations []*Node
	processed := mapset.NewSet[string]()
	linkedPersons := 0

	for len(candidates) > 0 && len(persons)+linkedPersons < width {
		// Highest occurrence count first.
		candidate := candidates[len(candidates)-1]
		candidates = candidates[:len(candidates)-1]

		if processed.Contains(candidate.Text) {
			continue
		}
		processed.Add(candidate.Text)

		// A full name wins over a bare first or last name fragment when both
		// were extracted.
		if candidate.Type == EntityPerson && len(strings.Fields(candidate.Text)) == 1 {
			if promoted, ok := promote(candidate, candidates); ok {
				s.logger.WithFields(logrus.Fields{
					"from": candidate.Text,
					"to":   promoted.Text,
				}).Info("Promoting multi-word candidate")
				metrics.CandidatesPromoted.Inc()
				candidate = promoted
				processed.Add(candidate.Text)
			}
		}

		if candidate.Text == node.Title() {
			metrics.CandidatesDiscarded.WithLabelValues("self").Inc()
			continue
		}

		// Memoization by canonical title: a mention whose surface text is
		// already a registered title needs no fetch at all.
		if g.HasNode(candidate.Text) {
			g.AddEdge(node.Title(), candidate.Text, RelationUnknown)
			if candidate.Type == EntityPerson {
				linkedPersons++
			}
			continue
		}

		child := NewNode(candidate.Text, candidate.Type)
		article, err := s.resolver.ResolveNode(ctx, child, node.Article.Content)
		if err != nil {
			s.logger.WithError(err).WithField("candidate", candidate.Text).Debug("Discarding candidate")
			metrics.CandidatesDiscarded.WithLabelValues("unresolved").Inc()
			continue
		}
		if IsMetaTitle(article.Title) {
			metrics.CandidatesDiscarded.WithLabelValues("meta_page").Inc()
			continue
		}

		if article.Title == node.Title() {
			metrics.CandidatesDiscarded.WithLabelValues("self").Inc()
			continue
		}
		if g.HasNode(article.Title) {
			// Rediscovery of a registered node: edge only, no new node, and
			// no charge against the width budget beyond the person stop
			// condition.
			g.AddEdge(node.Title(), article.Title, RelationUnknown)
			if candidate.Type == EntityPerson {
				linkedPersons++
			}
			continue
		}

		switch candidate.Type {
		case EntityPerson:
			persons = append(persons, child)
		case EntityOrganization:
			orgs = append(orgs, child)
		case EntityLocation:
			locations = append(locations, child)
		}
	}

	if len(orgs) > extraBucketSize {
		orgs = orgs[:extraBucketSize]
	}
	if len(locations) > extraBucketSize {
		locations = locations[:extraBucketSize]
	}

	selected := make([]*Node, 0, len(locations)+len(orgs)+len(persons))
	selected = append(selected, locations...)
	selected = append(selected, orgs...)
	selected = append(selected, persons...)

	node.Selected = node.Selected[:0]
	for _, child := range selected {
		node.Selected = append(node.Selected, Mention{Text: child.Query, Type: child.Type})
	}
	return selected
}

// rankMentions filters a mention-count table to expandable candidates and
// sorts it ascending by count, so selection can pop from the end to process
// the most frequent mentions first.
func rankMentions(counts MentionCounts) []rankedMention {
	candidates := make([]rankedMention, 0, len(counts))
	for mention, count := range counts {
		if !AllowedTypes[mention.Type] {
			continue
		}
		// Sub-word fragments are partial-token markers from the extractor,
		// not surface names.
		if strings.Contains(mention.Text, "##") {
			continue
		}
		if len([]rune(mention.Text)) <= 1 {
			continue
		}
		candidates = append(candidates, rankedMention{Mention: mention, count: count})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].count != candidates[j].count {
			return candidates[i].count < candidates[j].count
		}
		return candidates[i].Text > candidates[j].Text
	})
	return candidates
}

// promote finds the highest-priority multi-word candidate still remaining
// that contains the single-word candidate, case-insensitively.
func promote(candidate rankedMention, remaining []rankedMention) (rankedMention, bool) {
	needle := strings.ToLower(candidate.Text)
	for i := len(remaining) - 1; i >= 0; i-- {
		other := remaining[i]
		if other.Type == EntityPerson &&
			len(strings.Fields(other.Text)) > 1 &&
			strings.Contains(strings.ToLower(other.Text), needle) {
			return other, true
		}
	}
	return candidate, false
}

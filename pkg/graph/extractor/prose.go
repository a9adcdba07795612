package extractor

import (
	"context"

	"github.com/jdkato/prose/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/athapong/wikigraph/pkg/graph"
)

// labelMap translates prose NER labels into graph entity types. Labels
// without a mapping pass through unchanged and are filtered downstream.
var labelMap = map[string]graph.EntityType{
	"PERSON":       graph.EntityPerson,
	"GPE":          graph.EntityLocation,
	"LOC":          graph.EntityLocation,
	"ORG":          graph.EntityOrganization,
	"ORGANIZATION": graph.EntityOrganization,
}

// ProseExtractor extracts named-entity mentions using the prose NLP library.
type ProseExtractor struct {
	logger *logrus.Logger
}

// NewProseExtractor creates a prose-backed extractor.
func NewProseExtractor() *ProseExtractor {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &ProseExtractor{logger: logger}
}

// Extract implements graph.Extractor. The input is expected to be a single
// chunk within the extractor's practical length limit; callers chunk long
// article bodies with graph.ChunkText.
func (e *ProseExtractor) Extract(ctx context.Context, text string) ([]graph.Mention, error) {
	if text == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, errors.Wrap(err, "creating prose document")
	}

	entities := doc.Entities()
	mentions := make([]graph.Mention, 0, len(entities))
	for _, entity := range entities {
		entityType, ok := labelMap[entity.Label]
		if !ok {
			entityType = graph.EntityType(entity.Label)
		}
		mentions = append(mentions, graph.Mention{Text: entity.Text, Type: entityType})
	}

	e.logger.WithFields(logrus.Fields{
		"chunk_length": len(text),
		"mentions":     len(mentions),
	}).Debug("Chunk extracted")
	return mentions, nil
}

package extractor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athapong/wikigraph/pkg/graph"
)

func TestLabelMapCoversGraphTypes(t *testing.T) {
	assert.Equal(t, graph.EntityPerson, labelMap["PERSON"])
	assert.Equal(t, graph.EntityLocation, labelMap["GPE"])
	assert.Equal(t, graph.EntityLocation, labelMap["LOC"])
	assert.Equal(t, graph.EntityOrganization, labelMap["ORG"])
	assert.Equal(t, graph.EntityOrganization, labelMap["ORGANIZATION"])
}

func TestExtractEmptyText(t *testing.T) {
	mentions, err := NewProseExtractor().Extract(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, mentions)
}

func TestExtractFindsPersonMentions(t *testing.T) {
	text := "Barack Obama met Angela Merkel in Berlin. Barack Obama spoke first."

	mentions, err := NewProseExtractor().Extract(context.Background(), text)
	require.NoError(t, err)

	var persons []string
	for _, mention := range mentions {
		if mention.Type == graph.EntityPerson {
			persons = append(persons, mention.Text)
		}
	}
	assert.Contains(t, persons, "Barack Obama")
}

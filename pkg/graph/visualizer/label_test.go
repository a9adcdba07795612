package visualizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptionLabelCopula(t *testing.T) {
	assert.Equal(t,
		"planet in the Solar System",
		DescriptionLabel("Mercury is a planet in the Solar System. It is the smallest."))

	assert.Equal(t,
		"English mathematician",
		DescriptionLabel("Alan Turing was an English mathematician."))

	assert.Equal(t,
		"16th president of the United States",
		DescriptionLabel("Abraham Lincoln was the 16th president of the United States."))
}

func TestDescriptionLabelNoMatch(t *testing.T) {
	assert.Empty(t, DescriptionLabel("Born in 1912, he studied at Cambridge."))
	assert.Empty(t, DescriptionLabel(""))
}

func TestDescriptionLabelTruncates(t *testing.T) {
	long := strings.Repeat("x", 150)
	label := DescriptionLabel("This was a " + long + ".")
	assert.Equal(t, strings.Repeat("x", maxLabelLength)+"...", label)
}

func TestFirstSentence(t *testing.T) {
	assert.Equal(t, "One.", firstSentence("One. Two. Three."))
	assert.Equal(t, "Does it work?", firstSentence("Does it work? Yes."))
	assert.Equal(t, "No terminator here", firstSentence("No terminator here"))
}

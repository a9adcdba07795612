package visualizer

import (
	"regexp"
	"strings"
)

// maxLabelLength bounds the display label; longer descriptions are cut with
// an ellipsis.
const maxLabelLength = 100

var (
	sentenceRe = regexp.MustCompile(`(?s)^(.*?[.!?])(?:\s|$)`)
	labelRe    = regexp.MustCompile(`^.*(?:is|was) (?:a|an|the) (.+)\.$`)
)

// DescriptionLabel derives a short display label from an article summary:
// the "<description>" of the first sentence matching "is a|is an|was a|
// was an|was the|is the <description>.". A summary that does not match
// yields an empty label.
func DescriptionLabel(summary string) string {
	sentence := firstSentence(summary)
	m := labelRe.FindStringSubmatch(sentence)
	if m == nil {
		return ""
	}

	label := m[1]
	if runes := []rune(label); len(runes) > maxLabelLength {
		label = string(runes[:maxLabelLength]) + "..."
	}
	return label
}

func firstSentence(text string) string {
	text = strings.TrimSpace(text)
	if m := sentenceRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return text
}

package services

import (
	"sync"

	"github.com/athapong/wikigraph/pkg/graph/extractor"
)

// DefaultExtractor returns the process-wide prose entity extractor. It is a
// lazy singleton because the underlying model is expensive to initialize,
// but callers that need a fake for tests construct builders with their own
// Extractor instead of going through this.
var DefaultExtractor = sync.OnceValue(func() *extractor.ProseExtractor {
	return extractor.NewProseExtractor()
})

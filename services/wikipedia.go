package services

import (
	"os"
	"sync"

	"github.com/athapong/wikigraph/pkg/wikipedia"
)

// DefaultWikipediaSource returns the process-wide Wikipedia client,
// configured from WIKIPEDIA_API_URL and WIKIPEDIA_USER_AGENT. An unset URL
// selects English Wikipedia.
var DefaultWikipediaSource = sync.OnceValue(func() *wikipedia.Client {
	apiURL := os.Getenv("WIKIPEDIA_API_URL")

	var opts []wikipedia.Option
	if agent := os.Getenv("WIKIPEDIA_USER_AGENT"); agent != "" {
		opts = append(opts, wikipedia.WithUserAgent(agent))
	}

	return wikipedia.NewClient(apiURL, opts...)
})

package graph

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotFound reports that the knowledge base has no page for a title and,
// during disambiguation, that every alternative failed as well.
var ErrNotFound = errors.New("article not found")

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// DisambiguationError is returned by an ArticleSource when a title refers to
// a disambiguation page. Alternatives preserves the source's original
// relevance ordering.
type DisambiguationError struct {
	Title        string
	Alternatives []string
}

func (e *DisambiguationError) Error() string {
	return fmt.Sprintf("%q is ambiguous (%d alternatives)", e.Title, len(e.Alternatives))
}

// AsDisambiguation unwraps err into a *DisambiguationError if it is one.
func AsDisambiguation(err error) (*DisambiguationError, bool) {
	var d *DisambiguationError
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}

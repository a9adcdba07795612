package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/athapong/wikigraph/pkg/graph"
)

// SessionStore persists graph snapshots as JSON files, keyed by a session
// name, so an interrupted or extendable build can be resumed later.
type SessionStore struct {
	dir string
}

// NewSessionStore creates a store rooted at dir.
func NewSessionStore(dir string) *SessionStore {
	return &SessionStore{dir: dir}
}

// Path returns the file a session is stored under.
func (s *SessionStore) Path(session string) string {
	return filepath.Join(s.dir, session+".json")
}

// Exists reports whether a session has been saved before.
func (s *SessionStore) Exists(session string) bool {
	_, err := os.Stat(s.Path(session))
	return err == nil
}

// Save snapshots g under the session name.
func (s *SessionStore) Save(ctx context.Context, session string, g *graph.RelationshipGraph) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return errors.Wrap(err, "creating session directory")
	}

	data, err := json.MarshalIndent(FromGraph(g), "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding snapshot")
	}
	return os.WriteFile(s.Path(session), data, 0644)
}

// Load restores the graph saved under the session name.
func (s *SessionStore) Load(ctx context.Context, session string) (*graph.RelationshipGraph, error) {
	data, err := os.ReadFile(s.Path(session))
	if err != nil {
		return nil, errors.Wrapf(err, "reading session %q", session)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, errors.Wrapf(err, "decoding session %q", session)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, errors.Errorf("unsupported snapshot version %d", snapshot.Version)
	}
	return snapshot.Restore(), nil
}

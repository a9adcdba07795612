package storage

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v4/neo4j"

	"github.com/athapong/wikigraph/pkg/graph"
)

// Neo4jStorage exports relationship graphs into Neo4j. Articles become
// :Article nodes keyed by canonical title; edges become RELATES
// relationships. Everything is MERGE-based so repeated exports of the same
// session are idempotent.
type Neo4jStorage struct {
	driver neo4j.Driver
	uri    string
	auth   neo4j.AuthToken
}

// NewNeo4jStorage creates a new Neo4j storage instance.
func NewNeo4jStorage(uri, username, password string) (*Neo4jStorage, error) {
	auth := neo4j.BasicAuth(username, password, "")
	driver, err := neo4j.NewDriver(uri, auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j driver: %v", err)
	}

	return &Neo4jStorage{
		driver: driver,
		uri:    uri,
		auth:   auth,
	}, nil
}

// Close releases the underlying driver.
func (s *Neo4jStorage) Close() error {
	if s.driver != nil {
		return s.driver.Close()
	}
	return nil
}

// StoreGraph writes all nodes and edges of g in one transaction.
func (s *Neo4jStorage) StoreGraph(ctx context.Context, g *graph.RelationshipGraph) error {
	session := s.driver.NewSession(neo4j.SessionConfig{})
	defer session.Close()

	_, err := session.WriteTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		for _, node := range g.Nodes() {
			params := map[string]interface{}{
				"title": node.Title(),
				"type":  string(node.Type),
				"query": node.Query,
			}
			if node.Article != nil {
				params["summary"] = node.Article.Summary
			} else {
				params["summary"] = ""
			}

			_, err := tx.Run(`
				MERGE (a:Article {title: $title})
				SET a.type = $type,
				    a.query = $query,
				    a.summary = $summary,
				    a.updated_at = datetime()
			`, params)
			if err != nil {
				return nil, err
			}
		}

		for _, edge := range g.Edges() {
			params := map[string]interface{}{
				"source": edge.Source,
				"target": edge.Target,
				"label":  edge.Label,
			}

			_, err := tx.Run(`
				MATCH (from:Article {title: $source})
				MATCH (to:Article {title: $target})
				MERGE (from)-[r:RELATES {label: $label}]->(to)
				SET r.updated_at = datetime()
			`, params)
			if err != nil {
				return nil, err
			}
		}

		return nil, nil
	})

	return err
}

package encoder

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// PGVectorCache persists compile-time-fixed embeddings (taxonomy
// prototypes, rewrite templates, case-law entries) to Postgres using the
// pgvector extension, so a restarted process doesn't need to re-embed its
// static indexes against a remote Encoder. Pointed at the small fixed
// indexes this engine owns rather than arbitrary uploaded documents.
type PGVectorCache struct {
	pool *pgxpool.Pool
}

// NewPGVectorCache opens a pool against dsn and ensures the backing table
// exists. The table stores one row per (namespace, key) pair — e.g.
// namespace="prototype", key=clause type; namespace="template", key=template
// id; namespace="caselaw", key=case id.
func NewPGVectorCache(ctx context.Context, dsn string) (*PGVectorCache, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgvector cache: connect: %w", err)
	}
	c := &PGVectorCache{pool: pool}
	if err := c.init(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return c, nil
}

func (c *PGVectorCache) init(ctx context.Context) error {
	const schema = `
		CREATE EXTENSION IF NOT EXISTS vector;
		CREATE TABLE IF NOT EXISTS embedding_cache (
			namespace  TEXT NOT NULL,
			key        TEXT NOT NULL,
			embedding  vector(384) NOT NULL,
			PRIMARY KEY (namespace, key)
		);
	`
	_, err := c.pool.Exec(ctx, schema)
	if err != nil {
		return fmt.Errorf("pgvector cache: init schema: %w", err)
	}
	return nil
}

// Get returns the cached embedding for (namespace, key), if present.
func (c *PGVectorCache) Get(ctx context.Context, namespace, key string) ([]float32, bool, error) {
	row := c.pool.QueryRow(ctx,
		`SELECT embedding FROM embedding_cache WHERE namespace = $1 AND key = $2`,
		namespace, key)

	var v pgvector.Vector
	if err := row.Scan(&v); err != nil {
		return nil, false, nil
	}
	return v.Slice(), true, nil
}

// Put stores (or replaces) the embedding for (namespace, key).
func (c *PGVectorCache) Put(ctx context.Context, namespace, key string, embedding []float32) error {
	_, err := c.pool.Exec(ctx,
		`INSERT INTO embedding_cache (namespace, key, embedding) VALUES ($1, $2, $3)
		 ON CONFLICT (namespace, key) DO UPDATE SET embedding = EXCLUDED.embedding`,
		namespace, key, pgvector.NewVector(embedding))
	if err != nil {
		return fmt.Errorf("pgvector cache: put %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (c *PGVectorCache) Close() { c.pool.Close() }

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps every collection in a single documents table with a
// JSONB payload column. The pool is opened at process start and injected;
// the store never creates its own connections.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an existing pgx pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Collection returns a handle for the named collection.
func (s *PostgresStore) Collection(name string) Collection {
	return &pgCollection{pool: s.pool, name: name}
}

type pgCollection struct {
	pool *pgxpool.Pool
	name string
}

func (c *pgCollection) Insert(ctx context.Context, doc Document) (Document, error) {
	if doc == nil {
		doc = Document{}
	}
	if ID(doc) == "" {
		doc[IDField] = uuid.NewString()
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	const query = `INSERT INTO documents (collection, id, doc) VALUES ($1, $2, $3)`
	if _, err := c.pool.Exec(ctx, query, c.name, ID(doc), string(payload)); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *pgCollection) FindByID(ctx context.Context, id string) (Document, error) {
	const query = `SELECT doc FROM documents WHERE collection=$1 AND id=$2`

	var raw []byte
	if err := c.pool.QueryRow(ctx, query, c.name, id).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decodeDocument(raw)
}

func (c *pgCollection) FindOneByField(ctx context.Context, field string, value any) (Document, error) {
	match, err := json.Marshal(Filter{field: value})
	if err != nil {
		return nil, fmt.Errorf("encode filter: %w", err)
	}

	const query = `
        SELECT doc FROM documents
        WHERE collection=$1 AND doc @> $2
        ORDER BY seq LIMIT 1`

	var raw []byte
	if err := c.pool.QueryRow(ctx, query, c.name, string(match)).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decodeDocument(raw)
}

func (c *pgCollection) Find(ctx context.Context, filter Filter) ([]Document, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if len(filter) == 0 {
		const query = `SELECT doc FROM documents WHERE collection=$1 ORDER BY seq`
		rows, err = c.pool.Query(ctx, query, c.name)
	} else {
		match, merr := json.Marshal(filter)
		if merr != nil {
			return nil, fmt.Errorf("encode filter: %w", merr)
		}
		const query = `SELECT doc FROM documents WHERE collection=$1 AND doc @> $2 ORDER BY seq`
		rows, err = c.pool.Query(ctx, query, c.name, string(match))
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		doc, err := decodeDocument(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (c *pgCollection) Merge(ctx context.Context, id string, patch Document) (Document, error) {
	if patch == nil {
		patch = Document{}
	}
	// the id column stays authoritative
	delete(patch, IDField)

	payload, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("encode patch: %w", err)
	}

	const query = `
        UPDATE documents SET doc = doc || $3
        WHERE collection=$1 AND id=$2
        RETURNING doc`

	var raw []byte
	if err := c.pool.QueryRow(ctx, query, c.name, id, string(payload)).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decodeDocument(raw)
}

func (c *pgCollection) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM documents WHERE collection=$1 AND id=$2`

	cmd, err := c.pool.Exec(ctx, query, c.name, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func decodeDocument(raw []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

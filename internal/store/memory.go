package store

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is a document store held in process memory. It backs tests and
// keeps the server usable when no Postgres DSN is configured. Documents pass
// through a JSON round-trip so field types match the Postgres-backed store.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memCollection
}

// NewMemoryStore builds an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*memCollection)}
}

// Collection returns a handle for the named collection, creating it on first use.
func (s *MemoryStore) Collection(name string) Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.collections[name]
	if !ok {
		col = &memCollection{index: make(map[string]int)}
		s.collections[name] = col
	}
	return col
}

type memCollection struct {
	mu    sync.RWMutex
	docs  []Document // storage order
	index map[string]int
}

func (c *memCollection) Insert(_ context.Context, doc Document) (Document, error) {
	if doc == nil {
		doc = Document{}
	}
	if ID(doc) == "" {
		doc[IDField] = uuid.NewString()
	}
	normalized, err := normalize(doc)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.index[ID(normalized)]; exists {
		return nil, fmt.Errorf("duplicate document id %q", ID(normalized))
	}
	c.index[ID(normalized)] = len(c.docs)
	c.docs = append(c.docs, normalized)
	return normalized, nil
}

func (c *memCollection) FindByID(_ context.Context, id string) (Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	pos, ok := c.index[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(c.docs[pos]), nil
}

func (c *memCollection) FindOneByField(_ context.Context, field string, value any) (Document, error) {
	match, err := normalize(Filter{field: value})
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, doc := range c.docs {
		if contains(doc, match) {
			return clone(doc), nil
		}
	}
	return nil, ErrNotFound
}

func (c *memCollection) Find(_ context.Context, filter Filter) ([]Document, error) {
	match, err := normalize(filter)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Document, 0)
	for _, doc := range c.docs {
		if len(match) == 0 || contains(doc, match) {
			out = append(out, clone(doc))
		}
	}
	return out, nil
}

func (c *memCollection) Merge(_ context.Context, id string, patch Document) (Document, error) {
	normalized, err := normalize(patch)
	if err != nil {
		return nil, err
	}
	delete(normalized, IDField)

	c.mu.Lock()
	defer c.mu.Unlock()
	pos, ok := c.index[id]
	if !ok {
		return nil, ErrNotFound
	}
	merged := clone(c.docs[pos])
	for k, v := range normalized {
		merged[k] = v
	}
	c.docs[pos] = merged
	return clone(merged), nil
}

func (c *memCollection) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	pos, ok := c.index[id]
	if !ok {
		return ErrNotFound
	}
	c.docs = append(c.docs[:pos], c.docs[pos+1:]...)
	delete(c.index, id)
	for i := pos; i < len(c.docs); i++ {
		c.index[ID(c.docs[i])] = i
	}
	return nil
}

// normalize round-trips a document through JSON so values carry the same
// types a JSONB column would return.
func normalize(doc Document) (Document, error) {
	if doc == nil {
		return Document{}, nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var out Document
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return out, nil
}

// contains mirrors JSONB containment for object filters: every filter field
// must be present, with nested objects matched recursively.
func contains(doc, match Document) bool {
	for key, want := range match {
		have, ok := doc[key]
		if !ok {
			return false
		}
		wantObj, wantIsObj := want.(map[string]any)
		haveObj, haveIsObj := have.(map[string]any)
		if wantIsObj && haveIsObj {
			if !contains(haveObj, wantObj) {
				return false
			}
			continue
		}
		if !reflect.DeepEqual(have, want) {
			return false
		}
	}
	return true
}

func clone(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

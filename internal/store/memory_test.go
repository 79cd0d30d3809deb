package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAssignsID(t *testing.T) {
	col := NewMemoryStore().Collection("things")

	doc, err := col.Insert(context.Background(), Document{"name": "widget"})
	require.NoError(t, err)
	assert.NotEmpty(t, ID(doc))

	found, err := col.FindByID(context.Background(), ID(doc))
	require.NoError(t, err)
	assert.Equal(t, "widget", found["name"])
}

func TestInsertKeepsProvidedID(t *testing.T) {
	col := NewMemoryStore().Collection("things")

	doc, err := col.Insert(context.Background(), Document{IDField: "fixed", "name": "widget"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", ID(doc))

	_, err = col.Insert(context.Background(), Document{IDField: "fixed"})
	assert.Error(t, err)
}

func TestFindByIDMissing(t *testing.T) {
	col := NewMemoryStore().Collection("things")

	_, err := col.FindByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindOneByField(t *testing.T) {
	col := NewMemoryStore().Collection("users")
	ctx := context.Background()

	_, err := col.Insert(ctx, Document{"email": "a@example.com", "n": 1})
	require.NoError(t, err)
	_, err = col.Insert(ctx, Document{"email": "b@example.com", "n": 2})
	require.NoError(t, err)

	doc, err := col.FindOneByField(ctx, "email", "b@example.com")
	require.NoError(t, err)
	assert.Equal(t, float64(2), doc["n"])

	_, err = col.FindOneByField(ctx, "email", "c@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindPreservesStorageOrder(t *testing.T) {
	col := NewMemoryStore().Collection("things")
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		_, err := col.Insert(ctx, Document{"name": name})
		require.NoError(t, err)
	}

	docs, err := col.Find(ctx, nil)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "first", docs[0]["name"])
	assert.Equal(t, "second", docs[1]["name"])
	assert.Equal(t, "third", docs[2]["name"])
}

func TestFindWithNestedFilter(t *testing.T) {
	col := NewMemoryStore().Collection("orders")
	ctx := context.Background()

	_, err := col.Insert(ctx, Document{"item": "a", "user": Document{IDField: "u1", "email": "a@example.com"}})
	require.NoError(t, err)
	_, err = col.Insert(ctx, Document{"item": "b", "user": Document{IDField: "u2", "email": "b@example.com"}})
	require.NoError(t, err)
	_, err = col.Insert(ctx, Document{"item": "c", "user": Document{IDField: "u1", "email": "a@example.com"}})
	require.NoError(t, err)

	docs, err := col.Find(ctx, Filter{"user": Filter{IDField: "u1"}})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0]["item"])
	assert.Equal(t, "c", docs[1]["item"])
}

func TestMergePatchesOnlySuppliedFields(t *testing.T) {
	col := NewMemoryStore().Collection("orders")
	ctx := context.Background()

	doc, err := col.Insert(ctx, Document{"status": "pending", "item": "a", "qty": 2})
	require.NoError(t, err)

	merged, err := col.Merge(ctx, ID(doc), Document{"status": "paid"})
	require.NoError(t, err)
	assert.Equal(t, "paid", merged["status"])
	assert.Equal(t, "a", merged["item"])
	assert.Equal(t, float64(2), merged["qty"])

	// same patch twice yields the same record
	again, err := col.Merge(ctx, ID(doc), Document{"status": "paid"})
	require.NoError(t, err)
	assert.Equal(t, merged, again)
}

func TestMergeCannotChangeID(t *testing.T) {
	col := NewMemoryStore().Collection("things")
	ctx := context.Background()

	doc, err := col.Insert(ctx, Document{"name": "widget"})
	require.NoError(t, err)

	merged, err := col.Merge(ctx, ID(doc), Document{IDField: "hijack", "name": "gadget"})
	require.NoError(t, err)
	assert.Equal(t, ID(doc), ID(merged))
	assert.Equal(t, "gadget", merged["name"])
}

func TestMergeMissing(t *testing.T) {
	col := NewMemoryStore().Collection("things")

	_, err := col.Merge(context.Background(), "nope", Document{"a": 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	col := NewMemoryStore().Collection("things")
	ctx := context.Background()

	doc, err := col.Insert(ctx, Document{"name": "widget"})
	require.NoError(t, err)

	require.NoError(t, col.Delete(ctx, ID(doc)))
	_, err = col.FindByID(ctx, ID(doc))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, col.Delete(ctx, ID(doc)), ErrNotFound)
}

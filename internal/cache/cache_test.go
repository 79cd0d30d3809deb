package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medimart/marketplace-service/internal/store"
)

func TestNilClientDegradesToMisses(t *testing.T) {
	c := New(nil)
	ctx := context.Background()

	_, err := c.GetCategories(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)

	assert.NoError(t, c.SetCategories(ctx, []store.Document{{"name": "Antibiotics"}}))
	assert.NoError(t, c.InvalidateCategories(ctx))

	_, err = c.GetCategories(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

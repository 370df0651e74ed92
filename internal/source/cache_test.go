package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-elt-dashboard/internal/model"
)

func TestCache_MemoizesWithinTTL(t *testing.T) {
	calls := 0
	fn := func(ctx context.Context, url string) ([]model.Record, error) {
		calls++
		return []model.Record{{"id": "x"}}, nil
	}

	c := NewCache(time.Minute)
	ctx := context.Background()

	rows, err := c.Fetch(ctx, "u1", fn)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	_, err = c.Fetch(ctx, "u1", fn)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "second fetch inside TTL is served from cache")

	_, err = c.Fetch(ctx, "u2", fn)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "different URL is a cache miss")
}

func TestCache_ReturnsIndependentRows(t *testing.T) {
	fn := func(ctx context.Context, url string) ([]model.Record, error) {
		return []model.Record{{"id": "x", "mag": 6.1}}, nil
	}

	c := NewCache(time.Minute)
	ctx := context.Background()

	first, err := c.Fetch(ctx, "u", fn)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// One caller's in-place derivation must not show up for the next.
	first[0]["mag_bucket"] = ">=5"

	second, err := c.Fetch(ctx, "u", fn)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.NotContains(t, second[0], "mag_bucket")
	assert.Equal(t, 6.1, second[0]["mag"])
}

func TestCache_ExpiryRefetches(t *testing.T) {
	calls := 0
	fn := func(ctx context.Context, url string) ([]model.Record, error) {
		calls++
		return nil, nil
	}

	c := NewCache(time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	ctx := context.Background()
	_, err := c.Fetch(ctx, "u", fn)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = c.Fetch(ctx, "u", fn)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	calls := 0
	fn := func(ctx context.Context, url string) ([]model.Record, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("feed down")
		}
		return []model.Record{{"id": "ok"}}, nil
	}

	c := NewCache(time.Minute)
	ctx := context.Background()

	_, err := c.Fetch(ctx, "u", fn)
	require.Error(t, err)

	rows, err := c.Fetch(ctx, "u", fn)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 2, calls)
}

func TestCache_Invalidate(t *testing.T) {
	calls := 0
	fn := func(ctx context.Context, url string) ([]model.Record, error) {
		calls++
		return nil, nil
	}

	c := NewCache(time.Minute)
	ctx := context.Background()

	c.Fetch(ctx, "u", fn)
	c.Invalidate("u")
	c.Fetch(ctx, "u", fn)
	assert.Equal(t, 2, calls)
}

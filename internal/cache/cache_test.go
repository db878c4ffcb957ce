package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyCacheIsStale(t *testing.T) {
	c := New[int](time.Minute)
	v, ok := c.Get()
	assert.False(t, ok)
	assert.Zero(t, v)
	assert.True(t, c.Stale())
}

func TestNewLoaded(t *testing.T) {
	c := NewLoaded("rates", time.Hour)
	v, ok := c.Get()
	require.True(t, ok)
	assert.Equal(t, "rates", v)
	assert.False(t, c.Stale())
}

func TestStaleAfterTTL(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := New[int](time.Minute)
	c.now = func() time.Time { return now }

	require.True(t, c.Commit(c.Begin(), 1))
	assert.False(t, c.Stale())

	now = now.Add(59 * time.Second)
	assert.False(t, c.Stale())

	now = now.Add(time.Second)
	assert.True(t, c.Stale())

	v, ok := c.Get()
	assert.True(t, ok, "stale values are still served")
	assert.Equal(t, 1, v)
}

func TestCommitDropsOutOfOrderResponse(t *testing.T) {
	c := New[string](time.Minute)
	slow := c.Begin()
	fast := c.Begin()

	assert.True(t, c.Commit(fast, "new"))
	assert.False(t, c.Commit(slow, "old"))

	v, _ := c.Get()
	assert.Equal(t, "new", v)
}

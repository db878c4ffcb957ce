package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPreferences(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryPreferences()

	_, ok, err := m.Get(ctx, "u1", PrefCurrency)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "u1", PrefCurrency, "EUR"))
	require.NoError(t, m.Set(ctx, "u1", PrefCurrency, "JPY"))
	require.NoError(t, m.Set(ctx, "u2", PrefReferralCode, "FRIEND10"))

	v, ok, err := m.Get(ctx, "u1", PrefCurrency)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "JPY", v)

	_, ok, _ = m.Get(ctx, "u2", PrefCurrency)
	assert.False(t, ok, "preferences are per user")
	assert.NoError(t, m.Ping(ctx))
}

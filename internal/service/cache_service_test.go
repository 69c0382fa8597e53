package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheServiceDisabledWithoutRepository(t *testing.T) {
	svc := NewCacheService(nil, nil, time.Minute, nil)
	assert.False(t, svc.Enabled())

	var dest []string
	hit, err := svc.Get(context.Background(), "key", &dest)
	require.NoError(t, err)
	assert.False(t, hit)

	assert.NoError(t, svc.Set(context.Background(), "key", []string{"a"}, time.Minute))
	svc.Invalidate(context.Background(), "key")
}

func TestCacheServiceRoundTrip(t *testing.T) {
	repo := newCacheRepoMock()
	svc := NewCacheService(repo, nil, time.Minute, nil)

	var dest []string
	hit, err := svc.Get(context.Background(), "key", &dest)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, svc.Set(context.Background(), "key", []string{"a", "b"}, 0))
	hit, err = svc.Get(context.Background(), "key", &dest)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"a", "b"}, dest)

	svc.Invalidate(context.Background(), "key")
	hit, err = svc.Get(context.Background(), "key", &dest)
	require.NoError(t, err)
	assert.False(t, hit)
}

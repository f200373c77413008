package credential

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvSourceReadsLazilyOnce(t *testing.T) {
	t.Setenv("TEST_COMPLETION_KEY", "first")
	src := NewEnvSource("TEST_COMPLETION_KEY")

	key, err := src.APIKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", key)

	t.Setenv("TEST_COMPLETION_KEY", "second")
	key, err = src.APIKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", key)
}

func TestEnvSourceMissing(t *testing.T) {
	t.Setenv("TEST_COMPLETION_KEY_EMPTY", "")
	_, err := NewEnvSource("TEST_COMPLETION_KEY_EMPTY").APIKey(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestChainPrefersRequestKey(t *testing.T) {
	chain := Chain{RequestSource{}, Static("server")}

	key, err := chain.APIKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "server", key)

	ctx := WithRequestKey(context.Background(), " client ")
	key, err = chain.APIKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "client", key)
}

func TestChainEmpty(t *testing.T) {
	_, err := Chain{RequestSource{}, Static("")}.APIKey(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

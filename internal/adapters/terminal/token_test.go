package terminal

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadToken_FromEnvironment(t *testing.T) {
	t.Setenv(TokenEnv, "secret")
	a := NewAdapter(strings.NewReader(""), &bytes.Buffer{})

	token, err := a.ReadToken(context.Background(), "Token: ")

	require.NoError(t, err)
	assert.Equal(t, "secret", token)
}

func TestReadToken_NonInteractive(t *testing.T) {
	t.Setenv(TokenEnv, "")
	var stderr bytes.Buffer
	a := NewAdapter(strings.NewReader("typed"), &stderr)

	_, err := a.ReadToken(context.Background(), "Token: ")

	require.Error(t, err)
	assert.Contains(t, err.Error(), TokenEnv)
	assert.False(t, a.IsInteractive())
	assert.Empty(t, stderr.String())
}

func TestReadToken_CancelledContext(t *testing.T) {
	t.Setenv(TokenEnv, "secret")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAdapter(strings.NewReader(""), &bytes.Buffer{}).ReadToken(ctx, "Token: ")

	assert.ErrorIs(t, err, context.Canceled)
}

package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_ReadFileAndStat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requests.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"1\"\n"), 0o600))
	a := New()

	data, err := a.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "version: \"1\"\n", string(data))

	info, err := a.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	_, err = a.Stat(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

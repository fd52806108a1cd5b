package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.json", "b.YAML", "nested/c.yml", "nested/skip.txt", "d.hcl"} {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	}

	got, err := FindFilesByExtension(root, ".json", ".yaml", ".yml")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.json"),
		filepath.Join(root, "b.YAML"),
		filepath.Join(root, "nested", "c.yml"),
	}, got)
}

func TestFindFilesByExtension_MissingRoot(t *testing.T) {
	_, err := FindFilesByExtension(filepath.Join(t.TempDir(), "nope"), ".json")
	assert.Error(t, err)
}

func TestFindFilesByExtension_PanicsWithoutExtensions(t *testing.T) {
	assert.Panics(t, func() { _, _ = FindFilesByExtension(".") })
}

func TestHasExtension(t *testing.T) {
	assert.True(t, HasExtension("x.JSON", ".json"))
	assert.True(t, HasExtension("dir/x.yml", ".yaml", ".yml"))
	assert.False(t, HasExtension("x.json.bak", ".json"))
	assert.False(t, HasExtension("json", ".json"))
}

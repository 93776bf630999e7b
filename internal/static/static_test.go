package static

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"files/hooks/a.sh":  {Data: []byte("echo a\n")},
		"files/readme.txt":  {Data: []byte("hello\n")},
		"other/ignored.txt": {Data: []byte("nope\n")},
	}

	dir := t.TempDir()
	dest := func(rel string) (string, error) {
		return filepath.Join(dir, rel), nil
	}

	require.NoError(t, copyFiles(fsys, "files", dest))

	b, err := os.ReadFile(filepath.Join(dir, "hooks", "a.sh"))
	require.NoError(t, err)
	assert.Equal(t, "echo a\n", string(b))

	_, err = os.Stat(filepath.Join(dir, "ignored.txt"))
	assert.True(t, os.IsNotExist(err))

	// existing files are kept
	readme := filepath.Join(dir, "readme.txt")
	require.NoError(t, os.WriteFile(readme, []byte("edited\n"), 0o644))
	require.NoError(t, copyFiles(fsys, "files", dest))

	b, err = os.ReadFile(readme)
	require.NoError(t, err)
	assert.Equal(t, "edited\n", string(b))
}

func TestEmbeddedHooks(t *testing.T) {
	_, err := embeddedFiles.ReadFile("files/hooks/log-session.sh")
	assert.NoError(t, err)
}

package walk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/scour/internal/exclude"
	"github.com/bamsammich/scour/internal/stats"
)

func TestRunParallelFixtureTree(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "deep"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "top.bin"), make([]byte, 100), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "one.bin"), make([]byte, 200), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "deep", "two.bin"), make([]byte, 300), 0o644))
	require.NoError(t, os.Symlink("top.bin", filepath.Join(root, "link")))

	c := stats.NewCollector()
	require.NoError(t, RunParallel(root, nil, c, 2))

	snap := c.Snapshot()
	assert.Equal(t, int64(3), snap.Files)
	assert.Equal(t, int64(3), snap.Dirs)
	assert.Equal(t, int64(1), snap.Symlinks)
	assert.Equal(t, int64(600), snap.Logical)
	assert.Positive(t, snap.Physical)
}

func TestRunParallelExcludes(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, os.Mkdir(filepath.Join(root, "keep"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "skip"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "keep", "k"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "skip", "s"), make([]byte, 4096), 0o644))

	excl := exclude.New()
	require.NoError(t, excl.Add(filepath.Join(root, "skip")))

	c := stats.NewCollector()
	require.NoError(t, RunParallel(root, excl, c, 2))

	snap := c.Snapshot()
	assert.Equal(t, int64(1), snap.Files)
	assert.Equal(t, int64(1), snap.Dirs)
	assert.Equal(t, int64(1), snap.Logical)
}

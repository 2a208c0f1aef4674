package walk

import (
	"io/fs"
	"syscall"

	"github.com/charlievieth/fastwalk"

	"github.com/bamsammich/scour/internal/exclude"
	"github.com/bamsammich/scour/internal/stats"
)

// RunParallel walks root with a multi-worker readdir walk instead of the
// serial bulk-fetch loop, feeding the same accumulators. It trades the
// amortized syscall cost of the bulk primitive for parallelism, which
// wins on filesystems without a fast attribute-batch path.
func RunParallel(root string, excl *exclude.Set, c *stats.Collector, workers int) error {
	conf := &fastwalk.Config{
		Follow:     false,
		NumWorkers: workers,
	}

	return fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			c.AddErrors(1)
			return nil
		}
		if path == root {
			c.AddDirsWalked(1)
			return nil
		}

		if d.IsDir() {
			if excl != nil && excl.Match(path) {
				return fs.SkipDir
			}
			c.AddDirs(1)
			c.AddDirsWalked(1)
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			c.AddSymlinks(1)
			return nil
		}
		if !d.Type().IsRegular() {
			c.AddOther(1)
			return nil
		}

		info, err := d.Info()
		if err != nil {
			c.AddErrors(1)
			return nil
		}
		c.AddFiles(1)
		c.AddLogical(info.Size())
		c.AddPhysical(physicalBytes(info))
		return nil
	})
}

// physicalBytes returns the allocated on-disk size, falling back to the
// logical size when the platform stat carries no block count.
func physicalBytes(info fs.FileInfo) int64 {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return st.Blocks * 512
	}
	return info.Size()
}

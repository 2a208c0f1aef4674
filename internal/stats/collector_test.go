package stats

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorConcurrent(t *testing.T) {
	c := NewCollector()
	const goroutines = 100
	const opsPerGoroutine = 1000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for op := 0; op < opsPerGoroutine; op++ {
				c.AddFiles(1)
				c.AddDirs(1)
				c.AddSymlinks(1)
				c.AddOther(1)
				c.AddErrors(1)
				c.AddDirsWalked(1)
				c.AddLogical(4096)
				c.AddPhysical(8192)
			}
		}()
	}
	wg.Wait()

	s := c.Snapshot()
	expected := int64(goroutines * opsPerGoroutine)
	assert.Equal(t, expected, s.Files)
	assert.Equal(t, expected, s.Dirs)
	assert.Equal(t, expected, s.Symlinks)
	assert.Equal(t, expected, s.Other)
	assert.Equal(t, expected, s.Errors)
	assert.Equal(t, expected, s.DirsWalked)
	assert.Equal(t, expected*4096, s.Logical)
	assert.Equal(t, expected*8192, s.Physical)
}

func TestSnapshotString(t *testing.T) {
	s := Snapshot{
		Files:    10,
		Dirs:     3,
		Symlinks: 1,
		Other:    2,
		Errors:   1,
		Logical:  4096,
		Physical: 8192,
	}
	expected := "files=10 dirs=3 symlinks=1 other=2 errors=1 logical=4096 physical=8192"
	assert.Equal(t, expected, s.String())
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
		{1073741824, "1.0 GiB"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			require.Equal(t, tt.expected, FormatBytes(tt.input))
		})
	}
}

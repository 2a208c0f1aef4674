// Package stats accumulates running totals for a metadata walk.
package stats

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Collector tracks walk counters using lock-free atomics. The bulk
// walker is single-threaded, but the parallel engine shares one
// collector across its workers, so every counter is atomic.
type Collector struct {
	files      atomic.Int64
	dirs       atomic.Int64
	symlinks   atomic.Int64
	other      atomic.Int64
	errors     atomic.Int64
	dirsWalked atomic.Int64
	logical    atomic.Int64
	physical   atomic.Int64
	startTime  time.Time
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

func (c *Collector) AddFiles(n int64)      { c.files.Add(n) }
func (c *Collector) AddDirs(n int64)       { c.dirs.Add(n) }
func (c *Collector) AddSymlinks(n int64)   { c.symlinks.Add(n) }
func (c *Collector) AddOther(n int64)      { c.other.Add(n) }
func (c *Collector) AddErrors(n int64)     { c.errors.Add(n) }
func (c *Collector) AddDirsWalked(n int64) { c.dirsWalked.Add(n) }
func (c *Collector) AddLogical(n int64)    { c.logical.Add(n) }
func (c *Collector) AddPhysical(n int64)   { c.physical.Add(n) }

// DirsWalked returns the number of directories opened so far. The walker
// reads it for progress cadence without taking a full snapshot.
func (c *Collector) DirsWalked() int64 { return c.dirsWalked.Load() }

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	Files      int64
	Dirs       int64
	Symlinks   int64
	Other      int64
	Errors     int64
	DirsWalked int64
	Logical    int64 // bytes of file data
	Physical   int64 // bytes allocated on storage
	Elapsed    time.Duration
}

// Snapshot returns a consistent point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		Files:      c.files.Load(),
		Dirs:       c.dirs.Load(),
		Symlinks:   c.symlinks.Load(),
		Other:      c.other.Load(),
		Errors:     c.errors.Load(),
		DirsWalked: c.dirsWalked.Load(),
		Logical:    c.logical.Load(),
		Physical:   c.physical.Load(),
		Elapsed:    time.Since(c.startTime),
	}
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"files=%d dirs=%d symlinks=%d other=%d errors=%d logical=%d physical=%d",
		s.Files, s.Dirs, s.Symlinks, s.Other, s.Errors, s.Logical, s.Physical,
	)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

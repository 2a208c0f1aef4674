package walk

import (
	"log/slog"

	"github.com/bamsammich/scour/internal/attrbulk"
	"github.com/bamsammich/scour/internal/exclude"
	"github.com/bamsammich/scour/internal/stats"
)

// Lister is the port over the bulk attribute-fetch primitive. The darwin
// implementation batches getattrlistbulk calls; other platforms emulate
// the same contract with batched readdir plus lstat.
type Lister interface {
	OpenDir(path string) (DirHandle, error)
}

// DirHandle drains one opened directory. Entries returned by Next are
// valid only until the following Next call, which reuses the underlying
// fetch buffer.
type DirHandle interface {
	// Next returns the next batch of entries, or (nil, nil) once the
	// directory is exhausted.
	Next() ([]attrbulk.Entry, error)
	Close() error
}

// Config controls a Walker.
type Config struct {
	Root     string
	Lister   Lister
	Excludes *exclude.Set
	Stats    *stats.Collector

	// ProgressEvery emits OnProgress after that many directories have
	// been walked. Zero disables progress reporting.
	ProgressEvery int64
	OnProgress    func(stats.Snapshot)
}

// Walker drains a Frontier of directory tasks through the Lister,
// classifying every entry and accumulating totals. Single directory
// failures are counted, never fatal: a walk always runs to completion.
type Walker struct {
	cfg      Config
	frontier *Frontier
}

// New creates a Walker rooted at cfg.Root.
func New(cfg Config) *Walker {
	var veto func(string) bool
	if cfg.Excludes != nil && !cfg.Excludes.Empty() {
		veto = cfg.Excludes.Match
	}
	return &Walker{
		cfg:      cfg,
		frontier: NewFrontier(veto),
	}
}

// Run walks the tree to exhaustion and returns the final totals.
// The root directory itself is not counted in the directory counter;
// only discovered descendants are.
func (w *Walker) Run() stats.Snapshot {
	w.frontier.Push(w.cfg.Root)
	for {
		dir, ok := w.frontier.Pop()
		if !ok {
			break
		}
		w.walkDir(dir)
	}
	return w.cfg.Stats.Snapshot()
}

func (w *Walker) walkDir(dir string) {
	c := w.cfg.Stats

	h, err := w.cfg.Lister.OpenDir(dir)
	if err != nil {
		c.AddErrors(1)
		slog.Debug("open failed", "dir", dir, "error", err)
		return
	}
	defer h.Close()

	c.AddDirsWalked(1)

	for {
		entries, err := h.Next()
		if err != nil {
			// The rest of this directory is unavailable; whatever was
			// decoded before the fault still counts.
			for i := range entries {
				w.handleEntry(dir, &entries[i])
			}
			c.AddErrors(1)
			slog.Debug("fetch failed", "dir", dir, "error", err)
			break
		}
		if len(entries) == 0 {
			break
		}
		for i := range entries {
			w.handleEntry(dir, &entries[i])
		}
	}

	if n := w.cfg.ProgressEvery; n > 0 && w.cfg.OnProgress != nil && c.DirsWalked()%n == 0 {
		w.cfg.OnProgress(c.Snapshot())
	}
}

func (w *Walker) handleEntry(dir string, e *attrbulk.Entry) {
	c := w.cfg.Stats
	switch e.Kind {
	case attrbulk.ObjRegular:
		c.AddFiles(1)
		if e.HasLogical {
			c.AddLogical(e.Logical)
		}
		if e.HasPhysical {
			c.AddPhysical(e.Physical)
		}
	case attrbulk.ObjDir:
		// The bulk call does not emit "." or "..", but the frontier
		// rejects them anyway. A vetoed or rejected directory is not
		// counted and never opened.
		if w.frontier.Push(JoinChild(dir, e.Name)) {
			c.AddDirs(1)
		}
	case attrbulk.ObjSymlink:
		c.AddSymlinks(1)
	default:
		c.AddOther(1)
	}
}

// JoinChild joins a parent directory and a child name without doubling
// the separator when the parent is the filesystem root.
func JoinChild(parent, name string) string {
	if parent == "/" {
		return "/" + name
	}
	return parent + "/" + name
}

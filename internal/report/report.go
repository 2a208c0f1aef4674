// Package report writes progress and summaries: human-readable output on
// stderr, one machine-parsable key=value line on stdout.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bamsammich/scour/internal/stats"
)

// Reporter formats walk and search output. Progress lines rewrite
// themselves in place with a carriage return, so the summary clears the
// line before printing.
type Reporter struct {
	out      io.Writer
	errOut   io.Writer
	progress bool // a progress line is on screen
}

// New creates a Reporter writing machine output to out and human output
// to errOut.
func New(out, errOut io.Writer) *Reporter {
	return &Reporter{out: out, errOut: errOut}
}

// WalkProgress rewrites the in-place progress line.
func (r *Reporter) WalkProgress(s stats.Snapshot) {
	fmt.Fprintf(r.errOut, "\r  %s dirs, %s files, %s / %s...",
		FormatCount(s.DirsWalked), FormatCount(s.Files),
		stats.FormatBytes(s.Logical), stats.FormatBytes(s.Physical))
	r.progress = true
}

func (r *Reporter) clearProgress() {
	if !r.progress {
		return
	}
	fmt.Fprintf(r.errOut, "\r%s\r", strings.Repeat(" ", 70))
	r.progress = false
}

// WalkSummary prints the final walk report to stderr and the machine
// line to stdout.
func (r *Reporter) WalkSummary(s stats.Snapshot) {
	r.clearProgress()
	fmt.Fprintf(r.errOut, "  Files:     %d\n", s.Files)
	fmt.Fprintf(r.errOut, "  Dirs:      %d\n", s.Dirs)
	fmt.Fprintf(r.errOut, "  Symlinks:  %d\n", s.Symlinks)
	fmt.Fprintf(r.errOut, "  Other:     %d\n", s.Other)
	fmt.Fprintf(r.errOut, "  Errors:    %d\n", s.Errors)
	fmt.Fprintf(r.errOut, "  Logical:   %s\n", stats.FormatBytes(s.Logical))
	fmt.Fprintf(r.errOut, "  Physical:  %s\n", stats.FormatBytes(s.Physical))
	fmt.Fprintf(r.errOut, "  Elapsed:   %s\n", s.Elapsed.Round(time.Millisecond))
	fmt.Fprintln(r.out, s.String())
}

// Statusf prints a human-readable line to stderr.
func (r *Reporter) Statusf(format string, args ...any) {
	r.clearProgress()
	fmt.Fprintf(r.errOut, format+"\n", args...)
}

// Resultf prints a machine-parsable line to stdout.
func (r *Reporter) Resultf(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// FormatCount renders large counts compactly: 950, 12.3k, 4.5M.
func FormatCount(n int64) string {
	switch {
	case n < 1000:
		return fmt.Sprintf("%d", n)
	case n < 1_000_000:
		return fmt.Sprintf("%.1fk", float64(n)/1000)
	default:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	}
}

// Package walk enumerates a directory tree through the bulk
// attribute-fetch primitive, driving an explicit work stack instead of
// call-stack recursion so pathologically deep trees cannot overflow the
// native stack.
package walk

import "path"

// Frontier is the pending-work set of directories not yet walked. It is
// a growable array-backed stack: ordering across pops is unspecified, and
// it comfortably holds hundreds of thousands of pending paths. It is a
// single-owner structure and is not safe for concurrent use.
type Frontier struct {
	stack []string
	veto  func(string) bool
}

// NewFrontier creates a Frontier. veto, if non-nil, is consulted on every
// Push; vetoed paths are dropped.
func NewFrontier(veto func(string) bool) *Frontier {
	return &Frontier{veto: veto}
}

// Push adds an absolute directory path to the frontier and reports
// whether it was accepted. The dot entries "." and ".." are never
// accepted, so the frontier cannot cycle the walk back on itself.
func (f *Frontier) Push(p string) bool {
	if base := path.Base(p); base == "." || base == ".." {
		return false
	}
	if f.veto != nil && f.veto(p) {
		return false
	}
	f.stack = append(f.stack, p)
	return true
}

// Pop removes and returns a pending path, or ok=false when the frontier
// is empty.
func (f *Frontier) Pop() (string, bool) {
	n := len(f.stack)
	if n == 0 {
		return "", false
	}
	p := f.stack[n-1]
	f.stack = f.stack[:n-1]
	return p, true
}

// Len returns the number of pending paths.
func (f *Frontier) Len() int {
	return len(f.stack)
}

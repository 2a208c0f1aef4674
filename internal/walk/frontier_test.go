package walk

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontierPushPop(t *testing.T) {
	f := NewFrontier(nil)
	require.True(t, f.Push("/a"))
	require.True(t, f.Push("/b"))
	assert.Equal(t, 2, f.Len())

	seen := map[string]bool{}
	for {
		p, ok := f.Pop()
		if !ok {
			break
		}
		seen[p] = true
	}
	assert.Equal(t, map[string]bool{"/a": true, "/b": true}, seen)
	assert.Equal(t, 0, f.Len())

	_, ok := f.Pop()
	assert.False(t, ok)
}

func TestFrontierRejectsDotEntries(t *testing.T) {
	f := NewFrontier(nil)
	assert.False(t, f.Push("/a/."))
	assert.False(t, f.Push("/a/.."))
	assert.False(t, f.Push("."))
	assert.False(t, f.Push(".."))
	assert.Equal(t, 0, f.Len())

	// Hidden directories are ordinary names.
	assert.True(t, f.Push("/a/.git"))
}

func TestFrontierVeto(t *testing.T) {
	f := NewFrontier(func(p string) bool { return p == "/skip" })
	assert.False(t, f.Push("/skip"))
	assert.True(t, f.Push("/keep"))
	assert.Equal(t, 1, f.Len())
}

// The frontier must hold large pending sets without touching the call
// stack: pushing and draining a few hundred thousand paths is routine on
// wide trees.
func TestFrontierLargeVolume(t *testing.T) {
	f := NewFrontier(nil)
	const n = 300_000
	for i := 0; i < n; i++ {
		f.Push(fmt.Sprintf("/dir/%d", i))
	}
	require.Equal(t, n, f.Len())

	count := 0
	for {
		if _, ok := f.Pop(); !ok {
			break
		}
		count++
	}
	assert.Equal(t, n, count)
}

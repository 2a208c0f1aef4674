package exclude

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixRule(t *testing.T) {
	s := New()
	require.NoError(t, s.Add("/System/Volumes/Data"))

	assert.True(t, s.Match("/System/Volumes/Data"))
	assert.True(t, s.Match("/System/Volumes/Data/home"))
	assert.False(t, s.Match("/System/Volumes/Database")) // not a path component match
	assert.False(t, s.Match("/System/Volumes"))
	assert.False(t, s.Match("/Users"))
}

func TestPrefixRuleTrailingSlash(t *testing.T) {
	s := New()
	require.NoError(t, s.Add("/Volumes/naspi/"))

	assert.True(t, s.Match("/Volumes/naspi"))
	assert.True(t, s.Match("/Volumes/naspi/media"))
	assert.False(t, s.Match("/Volumes"))
}

func TestGlobBasename(t *testing.T) {
	s := New()
	require.NoError(t, s.Add("node_modules"))

	assert.True(t, s.Match("/Users/x/proj/node_modules"))
	assert.True(t, s.Match("/node_modules"))
	assert.False(t, s.Match("/Users/x/proj/node_modules_backup"))
}

func TestGlobStar(t *testing.T) {
	s := New()
	require.NoError(t, s.Add("*.noindex"))

	assert.True(t, s.Match("/Users/x/Library/Caches/foo.noindex"))
	assert.False(t, s.Match("/Users/x/Library/Caches/foo.index"))
}

func TestGlobAnchored(t *testing.T) {
	s := New()
	require.NoError(t, s.Add("/private/var/*"))

	assert.True(t, s.Match("/private/var/tmp"))
	assert.False(t, s.Match("/private/var")) // rule only matches children
	assert.False(t, s.Match("/var/tmp"))
}

func TestGlobDoubleStar(t *testing.T) {
	s := New()
	require.NoError(t, s.Add("/Users/**/Caches"))

	assert.True(t, s.Match("/Users/x/Library/Caches"))
	assert.True(t, s.Match("/Users/Caches"))
	assert.False(t, s.Match("/Library/Caches"))
}

func TestEmptySet(t *testing.T) {
	s := New()
	assert.True(t, s.Empty())
	assert.False(t, s.Match("/anything"))

	require.NoError(t, s.Add("/tmp"))
	assert.False(t, s.Empty())
}

func TestAddAllUnclosedClass(t *testing.T) {
	s := New()
	err := s.AddAll([]string{"good", "[unclosed"})
	// An unclosed class falls back to a literal bracket, so it compiles.
	require.NoError(t, err)
	assert.True(t, s.Match("/a/good"))
}

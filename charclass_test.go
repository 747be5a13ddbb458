package genre

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAlphabet(t *testing.T) {
	require.Len(t, DefaultAlphabet, 95)
	assert.Equal(t, ' ', DefaultAlphabet[0])
	assert.Equal(t, '~', DefaultAlphabet[len(DefaultAlphabet)-1])
}

func TestShorthandClass(t *testing.T) {
	d, ok := shorthandClass('d')
	require.True(t, ok)
	assert.Equal(t, "0123456789", string(d))

	s, ok := shorthandClass('s')
	require.True(t, ok)
	assert.Contains(t, string(s), " ")
	assert.Contains(t, string(s), "\t")

	w, ok := shorthandClass('w')
	require.True(t, ok)
	assert.Len(t, w, 63)
	assert.Contains(t, string(w), "_")

	_, ok = shorthandClass('x')
	assert.False(t, ok)
}

func TestPosixClass(t *testing.T) {
	for _, name := range []string{"digit", "space", "word", "alpha", "lower", "upper", "alnum"} {
		chars, ok := posixClass(name)
		assert.True(t, ok, "posix class %q", name)
		assert.NotEmpty(t, chars, "posix class %q", name)
	}
	alpha, _ := posixClass("alpha")
	assert.Len(t, alpha, 52)
	alnum, _ := posixClass("alnum")
	assert.Len(t, alnum, 62)
	_, ok := posixClass("nope")
	assert.False(t, ok)
}

func TestComplement(t *testing.T) {
	got := complement([]rune("abc"))
	assert.Len(t, got, 92)
	for _, c := range got {
		assert.NotContains(t, "abc", string(c))
	}

	// Members outside the default alphabet do not shrink the complement.
	assert.Len(t, complement([]rune{'\t', '\n'}), 95)
}

func TestDedupRunes(t *testing.T) {
	assert.Equal(t, "abc", string(dedupRunes([]rune("abcabc"))))
	assert.Equal(t, "ab", string(dedupRunes([]rune("aab"))))
	assert.Empty(t, dedupRunes(nil))
}

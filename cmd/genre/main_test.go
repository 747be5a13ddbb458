package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunFixedPattern(t *testing.T) {
	out, err := run(t, "-n", "3", "a{2}")
	require.NoError(t, err)
	assert.Equal(t, "aa\naa\naa\n", out)
}

func TestRunSeedReproducible(t *testing.T) {
	first, err := run(t, "-n", "5", "--seed", "42", "[abc]{4~Geo(0.5)}")
	require.NoError(t, err)
	second, err := run(t, "-n", "5", "--seed", "42", "[abc]{4~Geo(0.5)}")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRunMaxRepeat(t *testing.T) {
	out, err := run(t, "-n", "50", "--seed", "7", "--max-repeat", "3", "a+")
	require.NoError(t, err)
	for _, line := range bytes.Split(bytes.TrimSpace([]byte(out)), []byte("\n")) {
		assert.GreaterOrEqual(t, len(line), 1)
		assert.LessOrEqual(t, len(line), 3)
	}
}

func TestRunBadPattern(t *testing.T) {
	_, err := run(t, "a(b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax error at 1")
}

func TestRunMissingPattern(t *testing.T) {
	_, err := run(t)
	require.Error(t, err)
}

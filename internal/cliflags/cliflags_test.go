package cliflags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNoArgsIsHelp(t *testing.T) {
	opts, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, OpHelp, opts.Op)
}

func TestParseLongFlags(t *testing.T) {
	opts, err := Parse([]string{"--create", "--verbose", "out.tar", "a.txt", "b.txt"})
	require.NoError(t, err)
	assert.Equal(t, OpCreate, opts.Op)
	assert.True(t, opts.Verbose)
	assert.Equal(t, "out.tar", opts.Archive)
	assert.Equal(t, []string{"a.txt", "b.txt"}, opts.Files)
}

func TestParseCombinedShortFlags(t *testing.T) {
	opts, err := Parse([]string{"-cv", "out.tar", "a.txt"})
	require.NoError(t, err)
	assert.Equal(t, OpCreate, opts.Op)
	assert.True(t, opts.Verbose)
}

func TestParseArchiveByTarSuffixRegardlessOfPosition(t *testing.T) {
	opts, err := Parse([]string{"a.txt", "-x", "out.tar"})
	require.NoError(t, err)
	assert.Equal(t, OpExtract, opts.Op)
	assert.Equal(t, "out.tar", opts.Archive)
	assert.Equal(t, []string{"a.txt"}, opts.Files)
}

func TestParseLastOperationFlagWins(t *testing.T) {
	opts, err := Parse([]string{"--create", "--list", "out.tar"})
	require.NoError(t, err)
	assert.Equal(t, OpList, opts.Op)
}

func TestParseMissingArchiveIsUsageError(t *testing.T) {
	_, err := Parse([]string{"--create", "a.txt"})
	assert.Error(t, err)
}

func TestParseNoOperationIsUsageError(t *testing.T) {
	_, err := Parse([]string{"out.tar", "a.txt"})
	assert.Error(t, err)
}

func TestParseHelpShortCircuits(t *testing.T) {
	opts, err := Parse([]string{"--help"})
	require.NoError(t, err)
	assert.Equal(t, OpHelp, opts.Op)
}

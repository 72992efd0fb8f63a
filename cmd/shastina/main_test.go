package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.sn")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateReportsSuccess(t *testing.T) {
	path := writeTemp(t, "foo |;")
	out, err := runCLI(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ok")
}

func TestValidateReportsParseError(t *testing.T) {
	path := writeTemp(t, ") |;")
	_, err := runCLI(t, "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unmatched closing parenthesis")
}

func TestValidateFingerprintIsStable(t *testing.T) {
	path := writeTemp(t, "foo |;")
	out1, err := runCLI(t, "validate", path, "--fingerprint")
	require.NoError(t, err)
	out2, err := runCLI(t, "validate", path, "--fingerprint")
	require.NoError(t, err)
	assert.Equal(t, out1, out2)
	assert.Contains(t, out1, "fingerprint:")
}

func TestValidateStrictTrailerRejectsTrailingJunk(t *testing.T) {
	path := writeTemp(t, "foo |; garbage")
	_, err := runCLI(t, "validate", path, "--strict-trailer")
	require.Error(t, err)
}

func TestValidateStrictTrailerAcceptsTrailingBlank(t *testing.T) {
	path := writeTemp(t, "foo |;   \n")
	out, err := runCLI(t, "validate", path, "--strict-trailer")
	require.NoError(t, err)
	assert.Contains(t, out, "ok")
}

func TestDumpTextListsEntities(t *testing.T) {
	path := writeTemp(t, "[ 1 ] |;")
	out, err := runCLI(t, "dump", path)
	require.NoError(t, err)
	assert.Contains(t, out, "BeginGroup")
	assert.Contains(t, out, "Array")
}

func TestDumpRejectsUnknownFormat(t *testing.T) {
	path := writeTemp(t, "|;")
	_, err := runCLI(t, "dump", path, "--format=xml")
	require.Error(t, err)
}

func TestExplainExactMatch(t *testing.T) {
	out, err := runCLI(t, "explain", "LongToken")
	require.NoError(t, err)
	assert.Contains(t, out, "too long")
}

func TestExplainSuggestsCloseMatches(t *testing.T) {
	out, err := runCLI(t, "explain", "longtokn")
	require.NoError(t, err)
	assert.Contains(t, out, "LongToken")
}

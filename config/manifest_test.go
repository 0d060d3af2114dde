package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(contents), 0o644))
}

func TestLoadMissingManifestUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	m, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultTargetTriple, m.TargetTriple)
	assert.Equal(t, OptNone, m.Opt)
}

func TestLoadValidManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
target = "aarch64-apple-darwin"
out-dir = "build"
optimize = "speed"
emit-comments = true
`)

	m, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "aarch64-apple-darwin", m.TargetTriple)
	assert.Equal(t, "build", m.OutDir)
	assert.Equal(t, OptSpeed, m.Opt)
	assert.True(t, m.EmitComments)
}

func TestLoadInvalidOptimizeHint(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `optimize = "ludicrous"`)

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoadMalformedToml(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `target = [1, 2`)

	_, err := Load(dir)
	assert.Error(t, err)
}

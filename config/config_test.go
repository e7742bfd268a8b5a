package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/itohio/ndexpr/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	d := Default()
	require.NoError(t, d.Validate())
	assert.Equal(t, shape.RowMajor, d.LayoutValue())
}

func TestLoadOverridesLayout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ndexpr.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layout: col-major\nmax_rank: 4\n"), 0o644))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, shape.ColMajor, d.LayoutValue())
	assert.Equal(t, 4, d.MaxRank)
}

func TestLoadRejectsUnknownLayout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ndexpr.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layout: sideways\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

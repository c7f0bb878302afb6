package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog/internal/config"
)

func TestLoadCatalog(t *testing.T) {
	seeded, err := loadCatalog(config.Default())
	require.NoError(t, err)
	assert.Equal(t, 4, seeded.Len())

	path := filepath.Join(t.TempDir(), "posts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`- {id: 1, slug: only, title: Only, date: "2026-03-01", categories: [Misc]}`), 0o644))
	cfg := config.Default()
	cfg.Catalog = path

	custom, err := loadCatalog(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"Misc"}, custom.ListCategories())
}

func TestRootCmdRejectsMissingConfig(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	cmd.SetErr(os.Stderr)

	assert.Error(t, cmd.Execute())
}

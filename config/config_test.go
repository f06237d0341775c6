package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-screen/app"
	"todo-screen/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "title: Groceries\nactive_filter: open\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", cfg.Title)
	assert.Equal(t, DefaultPlaceholder, cfg.Placeholder)
	assert.Zero(t, cfg.CharLimit)

	mode, err := cfg.ActiveMode()
	require.NoError(t, err)
	assert.Equal(t, app.ActiveOpen, mode)
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "{{bad yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_InvalidFilter(t *testing.T) {
	_, err := Load(writeConfig(t, "initial_filter: done\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnknownFilter)
}

func TestLoad_InvalidActiveFilter(t *testing.T) {
	_, err := Load(writeConfig(t, "active_filter: fixed\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, app.ErrUnknownActiveMode)
}

func TestLoad_CharLimitIsOptIn(t *testing.T) {
	cfg, err := Load(writeConfig(t, "char_limit: 40\n"))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.CharLimit)

	_, err = Load(writeConfig(t, "char_limit: -1\n"))
	assert.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "config.yaml")
	cfg := Default()
	cfg.Title = "Work"
	cfg.InitialFilter = "completed"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestStoreOptions(t *testing.T) {
	cfg := Default()
	cfg.InitialFilter = "active"
	cfg.ActiveFilter = "open"

	opts, err := cfg.StoreOptions()
	require.NoError(t, err)

	s := app.NewStore(opts...)
	assert.Equal(t, model.FilterActive, s.Filter())

	s.AddTask("A")
	s.AddTask("B")
	s.ToggleComplete(1)
	visible := s.VisibleTasks()
	require.Len(t, visible, 1)
	assert.Equal(t, 2, visible[0].ID)
}

package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/techshop/internal/config"
	"github.com/mrlokans/techshop/internal/database"
	"github.com/mrlokans/techshop/internal/entities"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Database: config.Database{
			Path:     filepath.Join(t.TempDir(), "demo.db3"),
			Driver:   config.DefaultDatabaseDriver,
			LogLevel: "silent",
		},
		Log: config.Log{Level: "error", Format: "console"},
	}
}

func countProducts(t *testing.T, path string) int64 {
	t.Helper()
	store := database.New(database.Options{Path: path, Logger: logger.Default.LogMode(logger.Silent)})
	defer store.Close()

	n, err := database.For[entities.Product](store).Count(context.Background())
	require.NoError(t, err)
	return n
}

func TestGenerateDemo(t *testing.T) {
	cfg := testConfig(t)

	cmd := newRootCommand(cfg)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, int64(len(demoProducts())), countProducts(t, cfg.Database.Path))
}

func TestGenerateDemo_StartsFresh(t *testing.T) {
	cfg := testConfig(t)

	for i := 0; i < 2; i++ {
		cmd := newRootCommand(cfg)
		cmd.SetArgs([]string{})
		require.NoError(t, cmd.Execute())
	}

	assert.Equal(t, int64(len(demoProducts())), countProducts(t, cfg.Database.Path))
}

func TestGenerateDemo_Keep(t *testing.T) {
	cfg := testConfig(t)

	for i := 0; i < 2; i++ {
		cmd := newRootCommand(cfg)
		cmd.SetArgs([]string{"--keep"})
		require.NoError(t, cmd.Execute())
	}

	assert.Equal(t, int64(2*len(demoProducts())), countProducts(t, cfg.Database.Path))
}

func TestGenerateDemo_ModerncDriver(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(t.TempDir(), "pure.db3")

	cmd := newRootCommand(cfg)
	cmd.SetArgs([]string{"--db", path, "--driver", "modernc"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, int64(len(demoProducts())), countProducts(t, path))
}

package database

import (
	"context"
	"path/filepath"
	"testing"

	"recipe-finder/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID   uint `gorm:"primaryKey"`
	Text string
}

func TestOpenAndMigrate(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "test.db")
	db, err := Open(config.DatabaseConfig{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, Migrate(db, &note{}))
	require.NoError(t, db.Create(&note{Text: "hello"}).Error)

	var got note
	require.NoError(t, db.First(&got).Error)
	assert.Equal(t, "hello", got.Text)

	assert.NoError(t, HealthCheck(context.Background(), db))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "postgres", DSN: "host=localhost"})
	assert.Error(t, err)
}

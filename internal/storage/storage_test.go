package storage

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wealthdesk/internal/config"
	"wealthdesk/internal/database"
	"wealthdesk/internal/memory"
	"wealthdesk/internal/models"
)

func quiet() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestOpen_Memory(t *testing.T) {
	s, closeFn, err := Open(context.Background(), config.StoreConfig{Driver: "memory"}, quiet())
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, s)
	assert.NoError(t, closeFn())
}

func TestOpen_SQLiteCreatesDirAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "wealthdesk.db")
	s, closeFn, err := Open(context.Background(), config.StoreConfig{Driver: "sqlite", SQLitePath: path}, quiet())
	require.NoError(t, err)
	t.Cleanup(func() { closeFn() })
	assert.IsType(t, &database.Repo{}, s)

	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), config.StoreConfig{Driver: "mongo"}, quiet())
	assert.ErrorIs(t, err, models.ErrConfiguration)
}

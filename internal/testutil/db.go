// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/iyunix/go-chatbot/internal/database"
)

// NewTestDB returns a migrated in-memory database private to the test.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(":memory:", logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.Migrate(db))
	return db
}

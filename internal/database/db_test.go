package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gastropro/backoffice/internal/models"
)

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "oracle"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported database driver")
}

func TestAutoMigrateAndSeedOnFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "backoffice.db")

	db, err := Open(Config{Driver: "sqlite", Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, AutoMigrateAndSeed(db, true))

	var items int64
	require.NoError(t, db.Model(&models.InventoryItem{}).Count(&items).Error)
	require.EqualValues(t, 8, items)

	var staff int64
	require.NoError(t, db.Model(&models.StaffMember{}).Count(&staff).Error)
	require.EqualValues(t, 6, staff)

	// Seeding twice must not duplicate rows.
	require.NoError(t, AutoMigrateAndSeed(db, true))
	require.NoError(t, db.Model(&models.InventoryItem{}).Count(&items).Error)
	require.EqualValues(t, 8, items)

	require.True(t, db.Migrator().HasIndex(&models.Notification{}, "idx_notifications_category_dedup"))
}

func TestAutoMigrateAndSeedRejectsNilHandle(t *testing.T) {
	require.Error(t, AutoMigrateAndSeed(nil, false))
}

func TestCloseNilIsNoop(t *testing.T) {
	require.NoError(t, Close(nil))
}

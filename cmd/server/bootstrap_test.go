package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gastropro/backoffice/internal/app"
	"github.com/gastropro/backoffice/internal/models"
)

func TestConvertDatabaseConfigDefaultsToSQLite(t *testing.T) {
	cfg := &app.Config{}
	cfg.Database.Path = "  data/gastropro.db "
	cfg.Database.MaxOpenConns = 4

	dbCfg := convertDatabaseConfig(cfg)
	require.Equal(t, "sqlite", dbCfg.Driver)
	require.Equal(t, "data/gastropro.db", dbCfg.Path)
	require.Equal(t, 4, dbCfg.MaxOpenConns)
	require.Empty(t, dbCfg.Host)
}

func TestConvertDatabaseConfigPostgres(t *testing.T) {
	cfg := &app.Config{}
	cfg.Database.Driver = "PostgreSQL"
	cfg.Database.Postgres = app.DBAuthConfig{
		Host:     " db.internal ",
		Port:     5432,
		Database: "gastropro",
		Username: "kitchen",
		Password: "secret",
		Options:  map[string]string{"sslmode": "disable"},
	}

	dbCfg := convertDatabaseConfig(cfg)
	require.Equal(t, "postgres", dbCfg.Driver)
	require.Equal(t, "db.internal", dbCfg.Host)
	require.Equal(t, 5432, dbCfg.Port)
	require.Equal(t, "gastropro", dbCfg.Name)
	require.Equal(t, "kitchen", dbCfg.User)
	require.Equal(t, "secret", dbCfg.Password)
	require.Equal(t, "disable", dbCfg.Options["sslmode"])
}

func TestConvertDatabaseConfigUnknownDriverPassesThrough(t *testing.T) {
	cfg := &app.Config{}
	cfg.Database.Driver = "oracle"

	dbCfg := convertDatabaseConfig(cfg)
	require.Equal(t, "oracle", dbCfg.Driver)
}

func TestLoadApplicationConfigMissingPath(t *testing.T) {
	_, err := loadApplicationConfig(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "does not exist")
}

func TestBootstrapRuntimeServesHealth(t *testing.T) {
	cfg, err := loadApplicationConfig(t.TempDir())
	require.NoError(t, err)

	cfg.Database.Driver = "sqlite"
	cfg.Database.Path = filepath.Join(t.TempDir(), "gastropro.db")
	cfg.Database.SeedDemo = true
	cfg.Maintenance.Enabled = true

	stack, err := bootstrapRuntime(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { stack.Shutdown(context.Background(), zap.NewNop()) })

	require.NotNil(t, stack.Router)
	require.NotNil(t, stack.Cleaner)
	require.True(t, stack.Cleaner.Enabled())
	require.NotNil(t, stack.Hub)

	var items int64
	require.NoError(t, stack.DB.Model(&models.InventoryItem{}).Count(&items).Error)
	require.Positive(t, items)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	stack.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"database"`)
	require.Contains(t, rec.Body.String(), `"maintenance"`)
}

func TestRuntimeShutdownIsIdempotent(t *testing.T) {
	cfg, err := loadApplicationConfig(t.TempDir())
	require.NoError(t, err)
	cfg.Database.Driver = "sqlite"
	cfg.Database.Path = filepath.Join(t.TempDir(), "gastropro.db")
	cfg.Maintenance.Enabled = false
	cfg.Realtime.Enabled = false

	stack, err := bootstrapRuntime(cfg, zap.NewNop())
	require.NoError(t, err)
	require.Nil(t, stack.Cleaner)
	require.Nil(t, stack.Hub)

	stack.Shutdown(context.Background(), zap.NewNop())
	require.Nil(t, stack.DB)
	stack.Shutdown(context.Background(), zap.NewNop())
}

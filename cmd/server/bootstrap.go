package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gastropro/backoffice/internal/api"
	"github.com/gastropro/backoffice/internal/app"
	"github.com/gastropro/backoffice/internal/app/maintenance"
	"github.com/gastropro/backoffice/internal/database"
	"github.com/gastropro/backoffice/internal/monitoring"
	"github.com/gastropro/backoffice/internal/monitoring/checks"
	"github.com/gastropro/backoffice/internal/realtime"
	"github.com/gastropro/backoffice/internal/services"
	"github.com/gastropro/backoffice/pkg/logger"
)

// maintenanceStaleAfter tolerates one missed daily purge before reporting degraded.
const maintenanceStaleAfter = 49 * time.Hour

// runtimeStack bundles long-lived services used by the HTTP server.
type runtimeStack struct {
	DB            *gorm.DB
	Hub           *realtime.Hub
	Notifications *services.NotificationService
	Inventory     *services.InventoryService
	Orders        *services.OrderService
	Staff         *services.StaffService
	Cleaner       *maintenance.Cleaner
	Health        *monitoring.HealthManager
	Router        *gin.Engine

	runOnShutdown bool
}

// bootstrapRuntime initialises the database, the notification engine and its
// collaborators, background maintenance, and the HTTP router.
func bootstrapRuntime(cfg *app.Config, log *zap.Logger) (*runtimeStack, error) {
	stack := &runtimeStack{runOnShutdown: cfg.Maintenance.RunOnShutdown}
	var err error
	success := false

	defer func() {
		if !success {
			stack.Shutdown(context.Background(), log)
		}
	}()

	if debug, _ := os.LookupEnv("GIN_DEBUG"); debug != "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	stack.DB, err = initialiseDatabase(cfg)
	if err != nil {
		return nil, err
	}

	opts := cfg.Notifications.EngineOptions()
	if cfg.Realtime.Enabled {
		stack.Hub = realtime.NewHub()
		opts = append(opts, services.WithPublisher(stack.Hub))
	}

	stack.Notifications, err = services.NewNotificationService(stack.DB, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialise notification service: %w", err)
	}
	stack.Inventory, err = services.NewInventoryService(stack.DB, stack.Notifications)
	if err != nil {
		return nil, fmt.Errorf("initialise inventory service: %w", err)
	}
	stack.Orders, err = services.NewOrderService(stack.DB, stack.Notifications)
	if err != nil {
		return nil, fmt.Errorf("initialise order service: %w", err)
	}
	stack.Staff, err = services.NewStaffService(stack.DB, stack.Notifications)
	if err != nil {
		return nil, fmt.Errorf("initialise staff service: %w", err)
	}

	if cfg.Maintenance.Enabled {
		stack.Cleaner = maintenance.NewCleaner(stack.Notifications, stack.Inventory,
			maintenance.WithPurgeSchedule(cfg.Maintenance.PurgeSchedule),
			maintenance.WithStockSweepSchedule(cfg.Maintenance.StockSweepSchedule),
		)
		if err := stack.Cleaner.Start(); err != nil {
			return nil, fmt.Errorf("start maintenance jobs: %w", err)
		}
	}

	stack.Health = buildHealthManager(stack)

	stack.Router, err = api.NewRouter(cfg, api.Dependencies{
		Notifications: stack.Notifications,
		Inventory:     stack.Inventory,
		Orders:        stack.Orders,
		Staff:         stack.Staff,
		Hub:           stack.Hub,
		Health:        stack.Health,
	})
	if err != nil {
		return nil, fmt.Errorf("build api router: %w", err)
	}

	success = true
	return stack, nil
}

func buildHealthManager(stack *runtimeStack) *monitoring.HealthManager {
	manager := monitoring.NewHealthManager()
	manager.RegisterReadiness(checks.Database(stack.DB, 0))
	if stack.Cleaner != nil {
		manager.RegisterReadiness(checks.Maintenance(stack.Cleaner, maintenanceStaleAfter, nil))
	}
	if stack.Hub != nil {
		manager.RegisterLiveness(checks.Realtime(stack.Hub))
	}
	return manager
}

// Shutdown stops background jobs, optionally runs a final maintenance pass,
// and releases the database.
func (s *runtimeStack) Shutdown(ctx context.Context, log *zap.Logger) {
	if s == nil {
		return
	}

	if s.Cleaner != nil {
		select {
		case <-s.Cleaner.Stop().Done():
		case <-ctx.Done():
			log.Warn("maintenance jobs still running at shutdown")
		}
		if s.runOnShutdown {
			if err := s.Cleaner.RunOnce(ctx); err != nil {
				log.Warn("maintenance shutdown cleanup failed", zap.Error(err))
			}
		}
	}

	if s.DB != nil {
		if err := database.Close(s.DB); err != nil {
			log.Warn("failed to close database", zap.Error(err))
		}
		s.DB = nil
	}
}

func initialiseDatabase(cfg *app.Config) (*gorm.DB, error) {
	dbCfg := convertDatabaseConfig(cfg)
	db, err := database.Open(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := database.AutoMigrateAndSeed(db, cfg.Database.SeedDemo); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("auto-migrate database: %w", err)
	}

	logger.WithModule("database").Info("database connected",
		zap.String("driver", dbCfg.Driver),
		zap.Bool("seed_demo", cfg.Database.SeedDemo),
	)
	return db, nil
}

func convertDatabaseConfig(cfg *app.Config) database.Config {
	dbCfg := database.Config{
		Driver:       strings.ToLower(strings.TrimSpace(cfg.Database.Driver)),
		Path:         strings.TrimSpace(cfg.Database.Path),
		DSN:          strings.TrimSpace(cfg.Database.DSN),
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		LogQueries:   cfg.Database.LogQueries,
	}

	var auth app.DBAuthConfig
	switch dbCfg.Driver {
	case "", "sqlite":
		dbCfg.Driver = "sqlite"
		return dbCfg
	case "postgres", "postgresql":
		dbCfg.Driver = "postgres"
		auth = cfg.Database.Postgres
	case "mysql":
		auth = cfg.Database.MySQL
	default:
		// Leave driver as-is to surface unsupported driver error during open.
		return dbCfg
	}

	dbCfg.Host = strings.TrimSpace(auth.Host)
	dbCfg.Port = auth.Port
	dbCfg.Name = strings.TrimSpace(auth.Database)
	dbCfg.User = strings.TrimSpace(auth.Username)
	dbCfg.Password = auth.Password
	dbCfg.Options = auth.Options
	return dbCfg
}

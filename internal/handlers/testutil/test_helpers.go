package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gastropro/backoffice/internal/api"
	"github.com/gastropro/backoffice/internal/app"
	sharedtestutil "github.com/gastropro/backoffice/internal/database/testutil"
	"github.com/gastropro/backoffice/internal/monitoring"
	"github.com/gastropro/backoffice/internal/monitoring/checks"
	"github.com/gastropro/backoffice/internal/realtime"
	"github.com/gastropro/backoffice/internal/services"
	"github.com/gastropro/backoffice/pkg/response"
)

// Clock is a settable time source shared by the engine and tests.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Env encapsulates a fully-wired API instance backed by an in-memory database for handler tests.
type Env struct {
	T             *testing.T
	DB            *gorm.DB
	Router        *gin.Engine
	Clock         *Clock
	Hub           *realtime.Hub
	Notifications *services.NotificationService
	Inventory     *services.InventoryService
	Orders        *services.OrderService
	Staff         *services.StaffService
}

// NewEnv provisions a fresh API with migrations and demo data applied.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db := sharedtestutil.MustOpenTestDB(t, sharedtestutil.WithSeedData())
	clock := &Clock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	hub := realtime.NewHub()

	engine, err := services.NewNotificationService(db,
		services.WithClock(clock.Now),
		services.WithPublisher(hub),
	)
	require.NoError(t, err)
	inventory, err := services.NewInventoryService(db, engine)
	require.NoError(t, err)
	orders, err := services.NewOrderService(db, engine)
	require.NoError(t, err)
	staff, err := services.NewStaffService(db, engine)
	require.NoError(t, err)

	health := monitoring.NewHealthManager()
	health.RegisterReadiness(checks.Database(db, time.Second))
	health.RegisterLiveness(checks.Realtime(hub))

	cfg := &app.Config{
		Monitoring: app.MonitoringConfig{
			Prometheus: app.PrometheusConfig{Enabled: true, Endpoint: "/metrics"},
			Health:     app.HealthConfig{Enabled: true},
		},
	}

	router, err := api.NewRouter(cfg, api.Dependencies{
		Notifications: engine,
		Inventory:     inventory,
		Orders:        orders,
		Staff:         staff,
		Hub:           hub,
		Health:        health,
	})
	require.NoError(t, err)

	return &Env{
		T:             t,
		DB:            db,
		Router:        router,
		Clock:         clock,
		Hub:           hub,
		Notifications: engine,
		Inventory:     inventory,
		Orders:        orders,
		Staff:         staff,
	}
}

// APIResponse represents the canonical API envelope returned by handlers.
type APIResponse struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Error   *response.ErrorInfo `json:"error"`
	Meta    *response.Meta      `json:"meta"`
}

// DecodeResponse parses the standard API response object from a recorder.
func DecodeResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

// DecodeInto unmarshals the data payload into the provided destination.
func DecodeInto[T any](t *testing.T, raw json.RawMessage, dest *T) {
	t.Helper()
	if dest == nil {
		t.Fatal("destination must not be nil")
	}
	require.NoError(t, json.Unmarshal(raw, dest))
}

// Request executes an HTTP request against the test router, JSON-encoding body when present.
func (e *Env) Request(method, path string, body any) *httptest.ResponseRecorder {
	e.T.Helper()

	var reader io.Reader
	if body != nil {
		switch v := body.(type) {
		case string:
			reader = bytes.NewBufferString(v)
		default:
			payload, err := json.Marshal(v)
			require.NoError(e.T, err)
			reader = bytes.NewReader(payload)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

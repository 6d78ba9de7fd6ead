package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	testutil "github.com/gastropro/backoffice/internal/database/testutil"
	"github.com/gastropro/backoffice/internal/services"
	"github.com/gastropro/backoffice/pkg/response"
)

func newNotificationHandler(t *testing.T) *NotificationHandler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	service, err := services.NewNotificationService(db,
		services.WithClock(func() time.Time { return now }),
		services.WithListLimits(2, 5),
	)
	require.NoError(t, err)
	return NewNotificationHandler(service, nil)
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var payload response.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	return payload
}

func TestNotificationHandlerListClampsLimitInMeta(t *testing.T) {
	handler := newNotificationHandler(t)

	for i := 0; i < 3; i++ {
		_, err := handler.service.Create(testContext(), services.CreateNotificationInput{
			Title:   "Delivery window",
			Message: "Produce arrives between 6 and 7",
		})
		require.NoError(t, err)
	}

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/notifications?limit=50&skip=-3", nil)
	handler.List(c)

	require.Equal(t, http.StatusOK, recorder.Code)
	payload := decode(t, recorder)
	require.True(t, payload.Success)
	require.Equal(t, &response.Meta{Skip: 0, Limit: 5, Count: 3}, payload.Meta)
	require.Len(t, payload.Data, 3)
}

func TestNotificationHandlerRejectsBadIDs(t *testing.T) {
	handler := newNotificationHandler(t)

	for _, raw := range []string{"abc", "0", "-1"} {
		recorder := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(recorder)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/notifications/"+raw, nil)
		c.Params = gin.Params{{Key: "id", Value: raw}}
		handler.Get(c)
		require.Equal(t, http.StatusBadRequest, recorder.Code, raw)
	}
}

func TestNotificationHandlerMarkAllReadReadsBody(t *testing.T) {
	handler := newNotificationHandler(t)

	userID := uint(4)
	_, err := handler.service.Create(testContext(), services.CreateNotificationInput{
		UserID:  &userID,
		Title:   "Shift swap",
		Message: "Approved",
	})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/notifications/mark-all-read",
		bytes.NewBufferString(`{"user_id": 4}`))
	c.Request.Header.Set("Content-Type", "application/json")
	handler.MarkAllRead(c)

	require.Equal(t, http.StatusOK, recorder.Code)
	data := decode(t, recorder).Data.(map[string]any)
	require.Equal(t, float64(1), data["updated"])

	recorder = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/notifications/mark-all-read",
		bytes.NewBufferString(`{"category": "desserts"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	handler.MarkAllRead(c)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Contains(t, decode(t, recorder).Error.Message, "category must be one of")
}

func TestNotificationHandlerStreamDisabledWithoutHub(t *testing.T) {
	handler := newNotificationHandler(t)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/notifications/stream", nil)
	handler.Stream(c)

	require.Equal(t, http.StatusNotFound, recorder.Code)
	require.Equal(t, "Notification stream not found", decode(t, recorder).Error.Message)
}

func TestNotificationHandlerRaiseRejectsMalformedContext(t *testing.T) {
	handler := newNotificationHandler(t)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/notifications/events",
		bytes.NewBufferString(`{"event": "low_stock", "context": {"item_id": "seven"}}`))
	c.Request.Header.Set("Content-Type", "application/json")
	handler.Raise(c)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "invalid event context", decode(t, recorder).Error.Message)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gastropro/backoffice/internal/models"
	"github.com/gastropro/backoffice/internal/realtime"
	"github.com/gastropro/backoffice/internal/services"
	"github.com/gastropro/backoffice/pkg/errors"
	"github.com/gastropro/backoffice/pkg/response"
)

// NotificationHandler exposes HTTP endpoints for the notification engine.
type NotificationHandler struct {
	service *services.NotificationService
	hub     *realtime.Hub
}

// NewNotificationHandler constructs a notification handler. hub may be nil to disable the stream.
func NewNotificationHandler(service *services.NotificationService, hub *realtime.Hub) *NotificationHandler {
	return &NotificationHandler{service: service, hub: hub}
}

type raiseEventRequest struct {
	Event   string          `json:"event" validate:"required"`
	Context json.RawMessage `json:"context"`
}

// List returns notifications matching the query filters, newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := parseUserQuery(c)
	if !ok {
		return
	}

	skip := parseIntQuery(c, "skip", 0)
	if skip < 0 {
		skip = 0
	}
	limit := h.service.ListLimit(parseIntQuery(c, "limit", 0))

	items, total, err := h.service.List(requestContext(c), services.ListNotificationsInput{
		UserID:           userID,
		Category:         models.Category(c.Query("category")),
		Priority:         models.Priority(c.Query("priority")),
		UnreadOnly:       parseBoolQuery(c, "unread_only"),
		IncludeDismissed: parseBoolQuery(c, "include_dismissed"),
		IncludeExpired:   parseBoolQuery(c, "include_expired"),
		Skip:             skip,
		Limit:            limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, items, &response.Meta{
		Skip:  skip,
		Limit: limit,
		Count: int(total),
	})
}

// Stats aggregates active notifications.
func (h *NotificationHandler) Stats(c *gin.Context) {
	userID, ok := parseUserQuery(c)
	if !ok {
		return
	}

	stats, err := h.service.Stats(requestContext(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// UnreadCount reports active unread notifications.
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := parseUserQuery(c)
	if !ok {
		return
	}

	count, err := h.service.UnreadCount(requestContext(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unread_count": count})
}

// Get returns a single notification.
func (h *NotificationHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	dto, err := h.service.Get(requestContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto)
}

// Create injects a notification manually.
func (h *NotificationHandler) Create(c *gin.Context) {
	var payload services.CreateNotificationInput
	if !bindAndValidate(c, &payload) {
		return
	}

	dto, err := h.service.Create(requestContext(c), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, dto)
}

// Raise turns a business event into a notification, honouring deduplication.
// A suppressed event answers 200 with the existing notification.
func (h *NotificationHandler) Raise(c *gin.Context) {
	var payload raiseEventRequest
	if !bindAndValidate(c, &payload) {
		return
	}

	kind, err := services.ParseEventKind(payload.Event)
	if err != nil {
		response.Error(c, err)
		return
	}

	var eventCtx services.EventContext
	if len(payload.Context) > 0 && string(payload.Context) != "null" {
		if err := json.Unmarshal(payload.Context, &eventCtx); err != nil {
			response.Error(c, errors.NewBadRequest("invalid event context"))
			return
		}
	}

	result, err := h.service.Raise(requestContext(c), kind, eventCtx)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusCreated
	if result.Suppressed {
		status = http.StatusOK
	}
	response.Success(c, status, result)
}

// Update applies read/dismiss transitions.
func (h *NotificationHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload services.UpdateNotificationInput
	if !bindAndValidate(c, &payload) {
		return
	}

	dto, err := h.service.Update(requestContext(c), id, payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto)
}

// MarkRead marks a notification read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	dto, err := h.service.MarkRead(requestContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto)
}

// Dismiss hides a notification from active views.
func (h *NotificationHandler) Dismiss(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	dto, err := h.service.Dismiss(requestContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto)
}

// MarkAllRead marks every unread notification in scope read. Scope comes
// from the JSON body or, when absent, the query string.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	var payload services.MarkAllReadInput
	if c.Request.ContentLength > 0 {
		if !bindAndValidate(c, &payload) {
			return
		}
	} else {
		userID, ok := parseUserQuery(c)
		if !ok {
			return
		}
		payload.UserID = userID
		payload.Category = models.Category(c.Query("category"))
	}

	updated, err := h.service.MarkAllRead(requestContext(c), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": updated})
}

// Delete removes a notification.
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(requestContext(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// CleanupExpired purges notifications past their expiry.
func (h *NotificationHandler) CleanupExpired(c *gin.Context) {
	deleted, err := h.service.PurgeExpired(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": deleted})
}

// Stream upgrades the connection to a websocket notification feed. An
// optional user_id narrows the feed to that user plus broadcasts.
func (h *NotificationHandler) Stream(c *gin.Context) {
	if h.hub == nil {
		response.Error(c, errors.NewNotFound("Notification stream"))
		return
	}

	userID, ok := parseUserQuery(c)
	if !ok {
		return
	}

	h.hub.Serve(c.Writer, c.Request, userID)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gastropro/backoffice/internal/models"
	apperrors "github.com/gastropro/backoffice/pkg/errors"
	"github.com/gastropro/backoffice/pkg/logger"
	"github.com/gastropro/backoffice/pkg/metrics"
)

// Realtime event names published after notification mutations.
const (
	EventNotificationCreated = "notification.created"
	EventNotificationUpdated = "notification.updated"
	EventNotificationReadAll = "notification.read_all"
	EventNotificationDeleted = "notification.deleted"
	EventNotificationPurged  = "notification.purged"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Publisher pushes notification feed events to live subscribers. A nil
// userID addresses every subscriber. Implementations must not block.
type Publisher interface {
	Publish(event string, userID *uint, payload any)
}

// NotificationDTO represents the API-friendly notification payload.
type NotificationDTO struct {
	ID               uint                    `json:"id"`
	UserID           *uint                   `json:"user_id"`
	Title            string                  `json:"title"`
	Message          string                  `json:"message"`
	NotificationType models.NotificationType `json:"notification_type"`
	Priority         models.Priority         `json:"priority"`
	Category         models.Category         `json:"category"`
	EventKind        string                  `json:"event_kind,omitempty"`
	IsRead           bool                    `json:"is_read"`
	IsDismissed      bool                    `json:"is_dismissed"`
	ActionURL        string                  `json:"action_url,omitempty"`
	ActionLabel      string                  `json:"action_label,omitempty"`
	ExtraData        map[string]any          `json:"extra_data,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
	ReadAt           *time.Time              `json:"read_at"`
	ExpiresAt        *time.Time              `json:"expires_at"`
	Raw              *models.Notification    `json:"-"`
}

// RaiseResult reports the notification an event resolved to. Suppressed is
// true when an existing active notification absorbed the event.
type RaiseResult struct {
	Notification *NotificationDTO `json:"notification"`
	Suppressed   bool             `json:"suppressed"`
}

// CreateNotificationInput defines attributes for manual notification injection.
type CreateNotificationInput struct {
	UserID           *uint                   `json:"user_id"`
	Title            string                  `json:"title" validate:"required,max=255"`
	Message          string                  `json:"message" validate:"required"`
	NotificationType models.NotificationType `json:"notification_type" validate:"omitempty,oneof=info warning error success"`
	Priority         models.Priority         `json:"priority" validate:"omitempty,oneof=low normal medium high urgent"`
	Category         models.Category         `json:"category" validate:"omitempty,oneof=inventory orders staff system general"`
	ActionURL        string                  `json:"action_url" validate:"omitempty,max=2048"`
	ActionLabel      string                  `json:"action_label" validate:"omitempty,max=64"`
	ExtraData        map[string]any          `json:"extra_data"`
	ExpiresAt        *time.Time              `json:"expires_at"`
}

// UpdateNotificationInput carries read/dismiss transitions. Nil fields are left untouched.
type UpdateNotificationInput struct {
	IsRead      *bool `json:"is_read"`
	IsDismissed *bool `json:"is_dismissed"`
}

// ListNotificationsInput defines filters for querying notifications.
type ListNotificationsInput struct {
	UserID           *uint
	Category         models.Category
	Priority         models.Priority
	UnreadOnly       bool
	IncludeDismissed bool
	IncludeExpired   bool
	Skip             int
	Limit            int
}

// MarkAllReadInput scopes a bulk read. Empty fields match everything.
type MarkAllReadInput struct {
	UserID   *uint           `json:"user_id"`
	Category models.Category `json:"category" validate:"omitempty,oneof=inventory orders staff system general"`
}

// NotificationStats aggregates active notifications in scope.
type NotificationStats struct {
	TotalNotifications int64            `json:"total_notifications"`
	UnreadCount        int64            `json:"unread_count"`
	ByCategory         map[string]int64 `json:"by_category"`
	ByPriority         map[string]int64 `json:"by_priority"`
	ByType             map[string]int64 `json:"by_type"`
}

// StockLevel describes an inventory item's current position for alert evaluation.
type StockLevel struct {
	ItemID       uint
	Name         string
	CurrentStock float64
	Threshold    float64
	Unit         string
	Supplier     string
}

// NotificationEventPayload represents data sent to realtime consumers.
type NotificationEventPayload struct {
	Notification   *NotificationDTO `json:"notification,omitempty"`
	NotificationID uint             `json:"notification_id,omitempty"`
	Count          int64            `json:"count,omitempty"`
	Category       models.Category  `json:"category,omitempty"`
}

// NotificationOption customises a NotificationService.
type NotificationOption func(*NotificationService)

// WithPolicy overrides the default event policy.
func WithPolicy(policy Policy) NotificationOption {
	return func(s *NotificationService) {
		s.policy = policy
	}
}

// WithPublisher attaches a realtime publisher.
func WithPublisher(publisher Publisher) NotificationOption {
	return func(s *NotificationService) {
		s.publisher = publisher
	}
}

// WithClock injects the time source used for windows, expiry and read stamps.
func WithClock(now func() time.Time) NotificationOption {
	return func(s *NotificationService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithListLimits overrides the default and maximum page size.
func WithListLimits(defaultLimit, maxLimit int) NotificationOption {
	return func(s *NotificationService) {
		if defaultLimit > 0 {
			s.defaultLimit = defaultLimit
		}
		if maxLimit > 0 {
			s.maxLimit = maxLimit
		}
	}
}

// NotificationService is the single notification engine: it turns domain
// events into deduplicated, expiring notifications and serves views over them.
type NotificationService struct {
	db           *gorm.DB
	policy       Policy
	publisher    Publisher
	now          func() time.Time
	locks        *keyedMutex
	log          *zap.Logger
	defaultLimit int
	maxLimit     int
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(db *gorm.DB, opts ...NotificationOption) (*NotificationService, error) {
	if db == nil {
		return nil, errors.New("notification service: db is required")
	}

	svc := &NotificationService{
		db:           db,
		policy:       DefaultPolicy(),
		now:          time.Now,
		locks:        newKeyedMutex(),
		log:          logger.WithModule("notifications"),
		defaultLimit: defaultListLimit,
		maxLimit:     maxListLimit,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.maxLimit < svc.defaultLimit {
		svc.maxLimit = svc.defaultLimit
	}
	return svc, nil
}

// Raise turns a domain event into a notification. When an active notification
// for the same subject exists inside the kind's suppression window it is
// returned unchanged and nothing is written.
func (s *NotificationService) Raise(ctx context.Context, kind EventKind, input EventContext) (*RaiseResult, error) {
	ctx = ensureContext(ctx)

	rule, ok := s.policy.Rule(kind)
	if !ok {
		return nil, apperrors.ErrUnknownEvent.WithMessage(fmt.Sprintf("Unknown notification event %q", kind))
	}

	draft, err := buildEvent(kind, input, s.policy)
	if err != nil {
		return nil, err
	}

	extra, err := encodeJSON(draft.extra)
	if err != nil {
		return nil, fmt.Errorf("notification service: marshal extra data: %w", err)
	}

	now := s.clock()
	notification := draft.notification
	notification.EventKind = string(kind)
	notification.DedupKey = draft.dedupKey
	notification.ExtraData = extra
	notification.CreatedAt = now
	if rule.Expiry > 0 {
		expiresAt := now.Add(rule.Expiry)
		notification.ExpiresAt = &expiresAt
	}

	dedup := draft.dedupKey != "" && rule.SuppressionWindow > 0
	if dedup {
		unlock := s.locks.Lock(draft.dedupKey)
		defer unlock()
	}

	var existing *models.Notification
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if dedup {
			if err := lockSubject(tx, draft.dedupKey); err != nil {
				return err
			}
			row, err := findActiveDuplicate(tx, notification.Category, draft.dedupKey, now, rule.SuppressionWindow)
			if err != nil {
				return err
			}
			if row != nil {
				existing = row
				return nil
			}
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, fmt.Errorf("notification service: raise %s: %w", kind, err)
	}

	if existing != nil {
		metrics.NotificationsRaised.WithLabelValues(string(kind), "suppressed").Inc()
		s.log.Debug("notification suppressed",
			zap.String("kind", string(kind)),
			zap.String("dedup_key", draft.dedupKey),
			zap.Uint("existing_id", existing.ID),
		)
		dto := mapNotification(*existing)
		return &RaiseResult{Notification: &dto, Suppressed: true}, nil
	}

	metrics.NotificationsRaised.WithLabelValues(string(kind), "created").Inc()
	dto := mapNotification(notification)
	s.publish(EventNotificationCreated, notification.UserID, &NotificationEventPayload{Notification: &dto})
	return &RaiseResult{Notification: &dto}, nil
}

// EvaluateStock raises out_of_stock at or below zero and low_stock at or
// below the threshold. Healthy stock returns a nil result.
func (s *NotificationService) EvaluateStock(ctx context.Context, level StockLevel) (*RaiseResult, error) {
	current := level.CurrentStock
	threshold := level.Threshold
	input := EventContext{
		ItemID:       level.ItemID,
		ItemName:     level.Name,
		CurrentStock: &current,
		Threshold:    &threshold,
		Unit:         level.Unit,
		Supplier:     level.Supplier,
	}

	switch {
	case current <= 0:
		return s.Raise(ctx, EventOutOfStock, input)
	case current <= threshold:
		return s.Raise(ctx, EventLowStock, input)
	default:
		return nil, nil
	}
}

// Create persists a manually injected notification.
func (s *NotificationService) Create(ctx context.Context, input CreateNotificationInput) (*NotificationDTO, error) {
	ctx = ensureContext(ctx)

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewBadRequest("Title is required")
	}

	notificationType := models.NotificationType(defaultIfEmpty(string(input.NotificationType), string(models.TypeInfo)))
	if !notificationType.Valid() {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("Invalid notification type %q", input.NotificationType))
	}
	priority := models.Priority(defaultIfEmpty(string(input.Priority), string(models.PriorityNormal)))
	if !priority.Valid() {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("Invalid priority %q", input.Priority))
	}
	category := models.Category(defaultIfEmpty(string(input.Category), string(models.CategoryGeneral)))
	if !category.Valid() {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("Invalid category %q", input.Category))
	}

	now := s.clock()
	var expiresAt *time.Time
	switch {
	case input.ExpiresAt != nil:
		if !input.ExpiresAt.After(now) {
			return nil, apperrors.NewBadRequest("expires_at must be in the future")
		}
		value := input.ExpiresAt.UTC()
		expiresAt = &value
	case s.policy.DefaultExpiry > 0:
		value := now.Add(s.policy.DefaultExpiry)
		expiresAt = &value
	}

	extra, err := encodeJSON(input.ExtraData)
	if err != nil {
		return nil, fmt.Errorf("notification service: marshal extra data: %w", err)
	}

	notification := models.Notification{
		BaseModel:        models.BaseModel{CreatedAt: now},
		UserID:           input.UserID,
		Title:            title,
		Message:          strings.TrimSpace(input.Message),
		NotificationType: notificationType,
		Priority:         priority,
		Category:         category,
		ActionURL:        strings.TrimSpace(input.ActionURL),
		ActionLabel:      strings.TrimSpace(input.ActionLabel),
		ExtraData:        extra,
		ExpiresAt:        expiresAt,
	}

	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return nil, fmt.Errorf("notification service: create notification: %w", err)
	}

	dto := mapNotification(notification)
	s.publish(EventNotificationCreated, notification.UserID, &NotificationEventPayload{Notification: &dto})
	return &dto, nil
}

// Get loads a notification by id.
func (s *NotificationService) Get(ctx context.Context, id uint) (*NotificationDTO, error) {
	ctx = ensureContext(ctx)

	row, err := s.load(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	dto := mapNotification(*row)
	return &dto, nil
}

// MarkRead sets the read flag. A second call keeps the original read_at.
func (s *NotificationService) MarkRead(ctx context.Context, id uint) (*NotificationDTO, error) {
	read := true
	return s.Update(ctx, id, UpdateNotificationInput{IsRead: &read})
}

// Dismiss hides the notification from default views. Repeated calls are no-ops.
func (s *NotificationService) Dismiss(ctx context.Context, id uint) (*NotificationDTO, error) {
	dismissed := true
	return s.Update(ctx, id, UpdateNotificationInput{IsDismissed: &dismissed})
}

// Update applies read/dismiss transitions. Both flags only move forward:
// clearing a set flag fails with ErrInvalidTransition.
func (s *NotificationService) Update(ctx context.Context, id uint, input UpdateNotificationInput) (*NotificationDTO, error) {
	ctx = ensureContext(ctx)

	var (
		row     *models.Notification
		changed bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		row, err = s.load(tx, id)
		if err != nil {
			return err
		}

		updates, err := s.transition(row, input)
		if err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(row).Updates(updates).Error; err != nil {
			return fmt.Errorf("notification service: update notification: %w", err)
		}
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	dto := mapNotification(*row)
	if changed {
		s.publish(EventNotificationUpdated, row.UserID, &NotificationEventPayload{
			Notification:   &dto,
			NotificationID: row.ID,
		})
	}
	return &dto, nil
}

// transition validates input against row, mutates row in place and returns
// the column updates to persist.
func (s *NotificationService) transition(row *models.Notification, input UpdateNotificationInput) (map[string]any, error) {
	updates := make(map[string]any, 4)
	now := s.clock()

	if input.IsRead != nil {
		switch {
		case !*input.IsRead && row.IsRead:
			return nil, apperrors.ErrInvalidTransition.WithMessage("A read notification cannot be marked unread")
		case *input.IsRead && !row.IsRead:
			row.IsRead = true
			row.ReadAt = &now
			updates["is_read"] = true
			updates["read_at"] = now
		}
	}

	if input.IsDismissed != nil {
		switch {
		case !*input.IsDismissed && row.IsDismissed:
			return nil, apperrors.ErrInvalidTransition.WithMessage("A dismissed notification cannot be restored")
		case *input.IsDismissed && !row.IsDismissed:
			row.IsDismissed = true
			updates["is_dismissed"] = true
		}
	}

	if len(updates) > 0 {
		row.UpdatedAt = now
		updates["updated_at"] = now
	}
	return updates, nil
}

// MarkAllRead marks every unread notification in scope as read and returns the count.
func (s *NotificationService) MarkAllRead(ctx context.Context, input MarkAllReadInput) (int64, error) {
	ctx = ensureContext(ctx)

	if input.Category != "" && !input.Category.Valid() {
		return 0, apperrors.NewBadRequest(fmt.Sprintf("Invalid category %q", input.Category))
	}

	now := s.clock()
	query := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("is_read = ?", false)
	if input.UserID != nil {
		query = query.Where("user_id = ?", *input.UserID)
	}
	if input.Category != "" {
		query = query.Where("category = ?", input.Category)
	}

	result := query.Updates(map[string]any{
		"is_read":    true,
		"read_at":    now,
		"updated_at": now,
	})
	if result.Error != nil {
		return 0, fmt.Errorf("notification service: mark all read: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		s.publish(EventNotificationReadAll, input.UserID, &NotificationEventPayload{
			Count:    result.RowsAffected,
			Category: input.Category,
		})
	}
	return result.RowsAffected, nil
}

// Delete removes a notification permanently.
func (s *NotificationService) Delete(ctx context.Context, id uint) error {
	ctx = ensureContext(ctx)

	row, err := s.load(s.db.WithContext(ctx), id)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).Delete(&models.Notification{}, id)
	if result.Error != nil {
		return fmt.Errorf("notification service: delete notification: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("Notification")
	}

	s.publish(EventNotificationDeleted, row.UserID, &NotificationEventPayload{NotificationID: id})
	return nil
}

// List returns notifications matching the filters, newest first, and the
// total number of matches ignoring pagination.
func (s *NotificationService) List(ctx context.Context, input ListNotificationsInput) ([]NotificationDTO, int64, error) {
	ctx = ensureContext(ctx)

	if input.Category != "" && !input.Category.Valid() {
		return nil, 0, apperrors.NewBadRequest(fmt.Sprintf("Invalid category %q", input.Category))
	}
	if input.Priority != "" && !input.Priority.Valid() {
		return nil, 0, apperrors.NewBadRequest(fmt.Sprintf("Invalid priority %q", input.Priority))
	}

	query := s.db.WithContext(ctx).Model(&models.Notification{})
	if input.UserID != nil {
		query = query.Where("user_id = ?", *input.UserID)
	}
	if input.Category != "" {
		query = query.Where("category = ?", input.Category)
	}
	if input.Priority != "" {
		query = query.Where("priority = ?", input.Priority)
	}
	if input.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if !input.IncludeDismissed {
		query = query.Where("is_dismissed = ?", false)
	}
	if !input.IncludeExpired {
		query = query.Where("expires_at IS NULL OR expires_at > ?", s.clock())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("notification service: count notifications: %w", err)
	}

	var rows []models.Notification
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Offset(max(0, input.Skip)).
		Limit(s.ListLimit(input.Limit)).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("notification service: list notifications: %w", err)
	}

	return mapNotificationRows(rows), total, nil
}

// Stats aggregates active notifications, optionally scoped to a user.
func (s *NotificationService) Stats(ctx context.Context, userID *uint) (*NotificationStats, error) {
	ctx = ensureContext(ctx)

	type bucket struct {
		Category         string
		Priority         string
		NotificationType string
		IsRead           bool
		Total            int64
	}

	query := s.activeScope(s.db.WithContext(ctx).Model(&models.Notification{}))
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var buckets []bucket
	if err := query.
		Select("category, priority, notification_type, is_read, COUNT(*) AS total").
		Group("category, priority, notification_type, is_read").
		Scan(&buckets).Error; err != nil {
		return nil, fmt.Errorf("notification service: stats: %w", err)
	}

	stats := &NotificationStats{
		ByCategory: make(map[string]int64),
		ByPriority: make(map[string]int64),
		ByType:     make(map[string]int64),
	}
	for _, b := range buckets {
		stats.TotalNotifications += b.Total
		if !b.IsRead {
			stats.UnreadCount += b.Total
		}
		stats.ByCategory[b.Category] += b.Total
		stats.ByPriority[b.Priority] += b.Total
		stats.ByType[b.NotificationType] += b.Total
	}
	return stats, nil
}

// UnreadCount counts active unread notifications, optionally scoped to a user.
func (s *NotificationService) UnreadCount(ctx context.Context, userID *uint) (int64, error) {
	ctx = ensureContext(ctx)

	query := s.activeScope(s.db.WithContext(ctx).Model(&models.Notification{})).
		Where("is_read = ?", false)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("notification service: unread count: %w", err)
	}
	return count, nil
}

// PurgeExpired deletes every notification that is no longer active because of
// its expiry (expires_at at or before now), whatever its state.
func (s *NotificationService) PurgeExpired(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)

	result := s.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", s.clock()).
		Delete(&models.Notification{})
	if result.Error != nil {
		return 0, fmt.Errorf("notification service: purge expired: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		metrics.NotificationsPurged.Add(float64(result.RowsAffected))
		s.log.Info("purged expired notifications", zap.Int64("count", result.RowsAffected))
		s.publish(EventNotificationPurged, nil, &NotificationEventPayload{Count: result.RowsAffected})
	}
	return result.RowsAffected, nil
}

func (s *NotificationService) load(db *gorm.DB, id uint) (*models.Notification, error) {
	var row models.Notification
	if err := db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Notification")
		}
		return nil, fmt.Errorf("notification service: load notification: %w", err)
	}
	return &row, nil
}

func (s *NotificationService) activeScope(query *gorm.DB) *gorm.DB {
	return query.
		Where("is_dismissed = ?", false).
		Where("expires_at IS NULL OR expires_at > ?", s.clock())
}

// ListLimit resolves a requested page size against the configured default and maximum.
func (s *NotificationService) ListLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}

func (s *NotificationService) clock() time.Time {
	return s.now().UTC()
}

func (s *NotificationService) publish(event string, userID *uint, payload *NotificationEventPayload) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(event, userID, payload)
}

func findActiveDuplicate(tx *gorm.DB, category models.Category, key string, now time.Time, window time.Duration) (*models.Notification, error) {
	var row models.Notification
	err := tx.
		Where("category = ? AND dedup_key = ?", category, key).
		Where("is_dismissed = ?", false).
		Where("created_at > ?", now.Add(-window)).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("created_at DESC").
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, fmt.Errorf("lookup duplicate: %w", err)
	}
	if row.ID == 0 {
		return nil, nil
	}
	return &row, nil
}

// lockSubject takes a transaction-scoped advisory lock on postgres so
// replicas sharing one database serialise on the same subject. Other
// drivers rely on the in-process lock alone.
func lockSubject(tx *gorm.DB, key string) error {
	if tx.Dialector == nil || tx.Dialector.Name() != "postgres" {
		return nil
	}
	if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
		return fmt.Errorf("lock subject: %w", err)
	}
	return nil
}

func mapNotificationRows(rows []models.Notification) []NotificationDTO {
	items := make([]NotificationDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapNotification(row))
	}
	return items
}

func mapNotification(row models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:               row.ID,
		UserID:           row.UserID,
		Title:            row.Title,
		Message:          row.Message,
		NotificationType: row.NotificationType,
		Priority:         row.Priority,
		Category:         row.Category,
		EventKind:        row.EventKind,
		IsRead:           row.IsRead,
		IsDismissed:      row.IsDismissed,
		ActionURL:        row.ActionURL,
		ActionLabel:      row.ActionLabel,
		ExtraData:        decodeJSON(row.ExtraData),
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
		ReadAt:           row.ReadAt,
		ExpiresAt:        row.ExpiresAt,
		Raw:              &row,
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gastropro/backoffice/internal/models"
	apperrors "github.com/gastropro/backoffice/pkg/errors"
	"github.com/gastropro/backoffice/pkg/logger"
	"github.com/gastropro/backoffice/pkg/metrics"
)

// EventRaiser raises notification events on behalf of collaborators.
type EventRaiser interface {
	Raise(ctx context.Context, kind EventKind, input EventContext) (*RaiseResult, error)
}

// CreateOrderInput describes a newly placed order.
type CreateOrderInput struct {
	TableNumber  int     `json:"table_number" validate:"gte=0"`
	CustomerName string  `json:"customer_name" validate:"omitempty,max=255"`
	TotalAmount  float64 `json:"total_amount" validate:"gte=0"`
}

// UpdateOrderStatusInput moves an order to a new status.
type UpdateOrderStatusInput struct {
	Status       models.OrderStatus `json:"status" validate:"required,oneof=pending preparing ready delayed served completed cancelled"`
	DelayMinutes int                `json:"delay_minutes" validate:"gte=0"`
}

// OrderResult reports the stored order and any notification the change raised.
type OrderResult struct {
	Order *models.Order `json:"order"`
	Alert *RaiseResult  `json:"alert,omitempty"`
}

// OrderService records order lifecycle changes and raises order events.
type OrderService struct {
	db     *gorm.DB
	raiser EventRaiser
	log    *zap.Logger
}

// NewOrderService constructs an OrderService. raiser may be nil to disable alerts.
func NewOrderService(db *gorm.DB, raiser EventRaiser) (*OrderService, error) {
	if db == nil {
		return nil, errors.New("order service: db is required")
	}
	return &OrderService{db: db, raiser: raiser, log: logger.WithModule("orders")}, nil
}

// Create stores a pending order and raises order_created.
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (*OrderResult, error) {
	ctx = ensureContext(ctx)

	if input.TableNumber < 0 || input.TotalAmount < 0 {
		return nil, apperrors.NewBadRequest("Table number and total amount cannot be negative")
	}

	order := models.Order{
		TableNumber:  input.TableNumber,
		CustomerName: strings.TrimSpace(input.CustomerName),
		Status:       models.OrderPending,
		TotalAmount:  input.TotalAmount,
	}
	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, fmt.Errorf("order service: create order: %w", err)
	}

	return &OrderResult{Order: &order, Alert: s.raise(ctx, EventOrderCreated, &order, 0)}, nil
}

// Get loads an order by id.
func (s *OrderService) Get(ctx context.Context, id uint) (*models.Order, error) {
	ctx = ensureContext(ctx)

	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Order")
		}
		return nil, fmt.Errorf("order service: load order: %w", err)
	}
	return &order, nil
}

// UpdateStatus persists a status change. Moving into ready or delayed raises
// the matching event; repeating the current status changes nothing. The
// write is conditional on the status differing, so only the caller whose
// update changed the row raises.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, input UpdateOrderStatusInput) (*OrderResult, error) {
	ctx = ensureContext(ctx)

	if !input.Status.Valid() {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("Invalid order status %q", input.Status))
	}

	result := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status <> ?", id, input.Status).
		Update("status", input.Status)
	if result.Error != nil {
		return nil, fmt.Errorf("order service: update status: %w", result.Error)
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected == 0 {
		return &OrderResult{Order: order}, nil
	}

	var alert *RaiseResult
	switch input.Status {
	case models.OrderReady:
		alert = s.raise(ctx, EventOrderReady, order, 0)
	case models.OrderDelayed:
		alert = s.raise(ctx, EventOrderDelayed, order, input.DelayMinutes)
	}
	return &OrderResult{Order: order, Alert: alert}, nil
}

func (s *OrderService) raise(ctx context.Context, kind EventKind, order *models.Order, delayMinutes int) *RaiseResult {
	if s.raiser == nil {
		return nil
	}

	result, err := s.raiser.Raise(ctx, kind, EventContext{
		OrderID:      order.ID,
		TableNumber:  order.TableNumber,
		CustomerName: order.CustomerName,
		TotalAmount:  order.TotalAmount,
		DelayMinutes: delayMinutes,
	})
	if err != nil {
		metrics.NotificationRaiseFailures.WithLabelValues(string(kind)).Inc()
		s.log.Warn("order notification failed",
			zap.String("kind", string(kind)),
			zap.Uint("order_id", order.ID),
			zap.Error(err),
		)
		return nil
	}
	return result
}

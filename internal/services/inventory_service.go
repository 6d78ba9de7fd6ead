package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gastropro/backoffice/internal/models"
	apperrors "github.com/gastropro/backoffice/pkg/errors"
	"github.com/gastropro/backoffice/pkg/logger"
	"github.com/gastropro/backoffice/pkg/metrics"
)

// StockEvaluator decides whether a stock level warrants an alert.
type StockEvaluator interface {
	EvaluateStock(ctx context.Context, level StockLevel) (*RaiseResult, error)
}

// CreateInventoryItemInput describes a stocked item.
type CreateInventoryItemInput struct {
	Name         string  `json:"name" validate:"required,max=255"`
	Category     string  `json:"category" validate:"omitempty,max=64"`
	CurrentStock float64 `json:"current_stock" validate:"gte=0"`
	Unit         string  `json:"unit" validate:"omitempty,max=16"`
	Threshold    float64 `json:"threshold" validate:"gte=0"`
	Supplier     string  `json:"supplier" validate:"omitempty,max=255"`
}

// StockAdjustment reports the stored item and any alert the change raised.
type StockAdjustment struct {
	Item  *models.InventoryItem `json:"item"`
	Alert *RaiseResult          `json:"alert,omitempty"`
}

// InventoryService owns stock levels and feeds stock alerts to the notification engine.
type InventoryService struct {
	db        *gorm.DB
	evaluator StockEvaluator
	now       func() time.Time
	log       *zap.Logger
}

// NewInventoryService constructs an InventoryService. evaluator may be nil to disable alerts.
func NewInventoryService(db *gorm.DB, evaluator StockEvaluator) (*InventoryService, error) {
	if db == nil {
		return nil, errors.New("inventory service: db is required")
	}
	return &InventoryService{
		db:        db,
		evaluator: evaluator,
		now:       time.Now,
		log:       logger.WithModule("inventory"),
	}, nil
}

// Create stores a new inventory item.
func (s *InventoryService) Create(ctx context.Context, input CreateInventoryItemInput) (*models.InventoryItem, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewBadRequest("Item name is required")
	}
	if input.CurrentStock < 0 || input.Threshold < 0 {
		return nil, apperrors.NewBadRequest("Stock and threshold cannot be negative")
	}

	item := models.InventoryItem{
		Name:         name,
		Category:     strings.TrimSpace(input.Category),
		CurrentStock: input.CurrentStock,
		Unit:         strings.TrimSpace(input.Unit),
		Threshold:    input.Threshold,
		Supplier:     strings.TrimSpace(input.Supplier),
		LastUpdated:  s.now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("inventory service: create item: %w", err)
	}
	return &item, nil
}

// Get loads an inventory item by id.
func (s *InventoryService) Get(ctx context.Context, id uint) (*models.InventoryItem, error) {
	ctx = ensureContext(ctx)

	var item models.InventoryItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Inventory item")
		}
		return nil, fmt.Errorf("inventory service: load item: %w", err)
	}
	return &item, nil
}

// AdjustStock applies delta to the item's stock and then evaluates alerts.
// The stock change is committed before alerting, and alert failures are
// logged rather than returned.
func (s *InventoryService) AdjustStock(ctx context.Context, id uint, delta float64) (*StockAdjustment, error) {
	ctx = ensureContext(ctx)

	var item models.InventoryItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("Inventory item")
			}
			return fmt.Errorf("inventory service: load item: %w", err)
		}

		next := item.CurrentStock + delta
		if next < 0 {
			return apperrors.NewBadRequest("Stock cannot be negative")
		}

		item.CurrentStock = next
		item.LastUpdated = s.now().UTC()
		if err := tx.Model(&item).Updates(map[string]any{
			"current_stock": item.CurrentStock,
			"last_updated":  item.LastUpdated,
		}).Error; err != nil {
			return fmt.Errorf("inventory service: update stock: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &StockAdjustment{Item: &item, Alert: s.evaluate(ctx, &item)}, nil
}

// SweepStock checks every item and raises alerts for low or empty stock.
// It returns how many new notifications were created; per-item failures do
// not stop the sweep and are returned together.
func (s *InventoryService) SweepStock(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)
	if s.evaluator == nil {
		return 0, nil
	}

	var items []models.InventoryItem
	if err := s.db.WithContext(ctx).
		Where("current_stock <= threshold").
		Order("id ASC").
		Find(&items).Error; err != nil {
		return 0, fmt.Errorf("inventory service: load items: %w", err)
	}

	var (
		created int
		errs    error
	)
	for i := range items {
		if !items[i].IsLow() {
			continue
		}
		result, err := s.evaluator.EvaluateStock(ctx, stockLevel(&items[i]))
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("evaluate item %d: %w", items[i].ID, err))
			continue
		}
		if result != nil && !result.Suppressed {
			created++
		}
	}

	if created > 0 {
		s.log.Info("stock sweep raised alerts", zap.Int("created", created), zap.Int("checked", len(items)))
	}
	if errs != nil {
		return created, fmt.Errorf("inventory service: stock sweep: %w", errs)
	}
	return created, nil
}

func (s *InventoryService) evaluate(ctx context.Context, item *models.InventoryItem) *RaiseResult {
	if s.evaluator == nil || !item.IsLow() {
		return nil
	}

	result, err := s.evaluator.EvaluateStock(ctx, stockLevel(item))
	if err != nil {
		metrics.NotificationRaiseFailures.WithLabelValues(string(stockEventKind(item))).Inc()
		s.log.Warn("stock alert failed",
			zap.Uint("item_id", item.ID),
			zap.Float64("current_stock", item.CurrentStock),
			zap.Error(err),
		)
		return nil
	}
	return result
}

func stockLevel(item *models.InventoryItem) StockLevel {
	return StockLevel{
		ItemID:       item.ID,
		Name:         item.Name,
		CurrentStock: item.CurrentStock,
		Threshold:    item.Threshold,
		Unit:         item.Unit,
		Supplier:     item.Supplier,
	}
}

func stockEventKind(item *models.InventoryItem) EventKind {
	if item.CurrentStock <= 0 {
		return EventOutOfStock
	}
	return EventLowStock
}

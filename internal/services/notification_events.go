package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gastropro/backoffice/internal/models"
	apperrors "github.com/gastropro/backoffice/pkg/errors"
)

// EventContext carries the subject details an event needs. Only the fields
// relevant to the raised kind are read.
type EventContext struct {
	ItemID       uint     `json:"item_id,omitempty"`
	ItemName     string   `json:"item_name,omitempty"`
	CurrentStock *float64 `json:"current_stock,omitempty"`
	Threshold    *float64 `json:"threshold,omitempty"`
	Unit         string   `json:"unit,omitempty"`
	Supplier     string   `json:"supplier,omitempty"`

	OrderID      uint    `json:"order_id,omitempty"`
	TableNumber  int     `json:"table_number,omitempty"`
	CustomerName string  `json:"customer_name,omitempty"`
	TotalAmount  float64 `json:"total_amount,omitempty"`
	DelayMinutes int     `json:"delay_minutes,omitempty"`

	StaffID   uint   `json:"staff_id,omitempty"`
	StaffName string `json:"staff_name,omitempty"`
	ShiftTime string `json:"shift_time,omitempty"`

	Message  string          `json:"message,omitempty"`
	Priority models.Priority `json:"priority,omitempty"`
	UserID   *uint           `json:"user_id,omitempty"`
}

const (
	subjectInventoryItem = "inventory_item"
	subjectOrder         = "order"
	subjectStaffMember   = "staff_member"

	defaultDelayMinutes       = 15
	defaultMaintenanceMessage = "System maintenance scheduled"
)

// eventDraft is a notification ready for insertion plus its dedup key.
type eventDraft struct {
	notification models.Notification
	extra        map[string]any
	dedupKey     string
}

func buildEvent(kind EventKind, ec EventContext, policy Policy) (*eventDraft, error) {
	switch kind {
	case EventLowStock:
		return buildLowStock(ec, policy)
	case EventOutOfStock:
		return buildOutOfStock(ec)
	case EventOrderCreated:
		return buildOrderCreated(ec)
	case EventOrderReady:
		return buildOrderReady(ec)
	case EventOrderDelayed:
		return buildOrderDelayed(ec)
	case EventSystemMaintenance:
		return buildSystemMaintenance(ec)
	case EventShiftReminder:
		return buildShiftReminder(ec)
	default:
		return nil, apperrors.ErrUnknownEvent.WithMessage(fmt.Sprintf("Unknown notification event %q", kind))
	}
}

func buildLowStock(ec EventContext, policy Policy) (*eventDraft, error) {
	if err := requireItem(EventLowStock, ec); err != nil {
		return nil, err
	}
	if ec.CurrentStock == nil || ec.Threshold == nil {
		return nil, missingField(EventLowStock, "current_stock and threshold")
	}

	priority := models.PriorityNormal
	if *ec.CurrentStock <= policy.StockEscalationLevel {
		priority = models.PriorityHigh
	}

	return &eventDraft{
		notification: models.Notification{
			Title: fmt.Sprintf("Low Stock Alert: %s", ec.ItemName),
			Message: fmt.Sprintf("%s is running low. Current stock: %s. Threshold: %s.",
				ec.ItemName, quantity(*ec.CurrentStock, ec.Unit), quantity(*ec.Threshold, ec.Unit)),
			NotificationType: models.TypeWarning,
			Priority:         priority,
			Category:         models.CategoryInventory,
			ActionURL:        fmt.Sprintf("/inventory#%d", ec.ItemID),
			ActionLabel:      "Restock Item",
			UserID:           ec.UserID,
		},
		extra: map[string]any{
			"item_id":       ec.ItemID,
			"current_stock": *ec.CurrentStock,
			"threshold":     *ec.Threshold,
			"unit":          ec.Unit,
			"supplier":      ec.Supplier,
		},
		dedupKey: dedupKey(models.CategoryInventory, EventLowStock, subjectInventoryItem, ec.ItemID),
	}, nil
}

func buildOutOfStock(ec EventContext) (*eventDraft, error) {
	if err := requireItem(EventOutOfStock, ec); err != nil {
		return nil, err
	}

	extra := map[string]any{
		"item_id":   ec.ItemID,
		"supplier":  ec.Supplier,
		"emergency": true,
	}
	if ec.CurrentStock != nil {
		extra["current_stock"] = *ec.CurrentStock
	}

	return &eventDraft{
		notification: models.Notification{
			Title:            fmt.Sprintf("Out of Stock: %s", ec.ItemName),
			Message:          fmt.Sprintf("%s is completely out of stock! Immediate restocking required.", ec.ItemName),
			NotificationType: models.TypeError,
			Priority:         models.PriorityHigh,
			Category:         models.CategoryInventory,
			ActionURL:        fmt.Sprintf("/inventory#%d", ec.ItemID),
			ActionLabel:      "Emergency Restock",
			UserID:           ec.UserID,
		},
		extra:    extra,
		dedupKey: dedupKey(models.CategoryInventory, EventOutOfStock, subjectInventoryItem, ec.ItemID),
	}, nil
}

func buildOrderCreated(ec EventContext) (*eventDraft, error) {
	if ec.OrderID == 0 {
		return nil, missingField(EventOrderCreated, "order_id")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Order #%d has been placed", ec.OrderID)
	if ec.TableNumber > 0 {
		fmt.Fprintf(&b, " for table %d", ec.TableNumber)
	}
	if ec.CustomerName != "" {
		fmt.Fprintf(&b, " by %s", ec.CustomerName)
	}
	b.WriteString(" and requires attention")

	return &eventDraft{
		notification: orderNotification(ec, "New Order Received", b.String(), models.TypeInfo, models.PriorityNormal),
		extra: map[string]any{
			"order_id":      ec.OrderID,
			"event_type":    string(EventOrderCreated),
			"table_number":  ec.TableNumber,
			"customer_name": ec.CustomerName,
			"total_amount":  ec.TotalAmount,
		},
		dedupKey: dedupKey(models.CategoryOrders, EventOrderCreated, subjectOrder, ec.OrderID),
	}, nil
}

func buildOrderReady(ec EventContext) (*eventDraft, error) {
	if ec.OrderID == 0 {
		return nil, missingField(EventOrderReady, "order_id")
	}

	message := fmt.Sprintf("Order #%d%s is ready for pickup/delivery", ec.OrderID, tableSuffix(ec.TableNumber))
	return &eventDraft{
		notification: orderNotification(ec, "Order Ready", message, models.TypeSuccess, models.PriorityNormal),
		extra: map[string]any{
			"order_id":      ec.OrderID,
			"event_type":    string(EventOrderReady),
			"table_number":  ec.TableNumber,
			"customer_name": ec.CustomerName,
		},
		dedupKey: dedupKey(models.CategoryOrders, EventOrderReady, subjectOrder, ec.OrderID),
	}, nil
}

func buildOrderDelayed(ec EventContext) (*eventDraft, error) {
	if ec.OrderID == 0 {
		return nil, missingField(EventOrderDelayed, "order_id")
	}
	delay := ec.DelayMinutes
	if delay <= 0 {
		delay = defaultDelayMinutes
	}

	message := fmt.Sprintf("Order #%d%s is delayed by approximately %d minutes", ec.OrderID, tableSuffix(ec.TableNumber), delay)
	return &eventDraft{
		notification: orderNotification(ec, "Order Delayed", message, models.TypeWarning, models.PriorityHigh),
		extra: map[string]any{
			"order_id":      ec.OrderID,
			"event_type":    string(EventOrderDelayed),
			"delay_minutes": delay,
			"table_number":  ec.TableNumber,
		},
		dedupKey: dedupKey(models.CategoryOrders, EventOrderDelayed, subjectOrder, ec.OrderID),
	}, nil
}

func buildSystemMaintenance(ec EventContext) (*eventDraft, error) {
	priority := ec.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}
	if !priority.Valid() {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("Invalid priority %q", ec.Priority))
	}

	message := strings.TrimSpace(ec.Message)
	if message == "" {
		message = defaultMaintenanceMessage
	}

	// Maintenance broadcasts have no subject, so they never deduplicate.
	return &eventDraft{
		notification: models.Notification{
			Title:            "System Maintenance Scheduled",
			Message:          message,
			NotificationType: models.TypeInfo,
			Priority:         priority,
			Category:         models.CategorySystem,
			UserID:           ec.UserID,
		},
		extra: map[string]any{
			"event_type": string(EventSystemMaintenance),
			"priority":   string(priority),
		},
	}, nil
}

func buildShiftReminder(ec EventContext) (*eventDraft, error) {
	if ec.StaffID == 0 {
		return nil, missingField(EventShiftReminder, "staff_id")
	}
	shiftTime := strings.TrimSpace(ec.ShiftTime)
	if shiftTime == "" {
		return nil, missingField(EventShiftReminder, "shift_time")
	}

	staffID := ec.StaffID
	return &eventDraft{
		notification: models.Notification{
			Title:            "Shift Reminder",
			Message:          fmt.Sprintf("Reminder: Your shift starts at %s", shiftTime),
			NotificationType: models.TypeInfo,
			Priority:         models.PriorityNormal,
			Category:         models.CategoryStaff,
			UserID:           &staffID,
		},
		extra: map[string]any{
			"event_type": string(EventShiftReminder),
			"staff_id":   ec.StaffID,
			"shift_time": shiftTime,
			"staff_name": ec.StaffName,
		},
		dedupKey: dedupKey(models.CategoryStaff, EventShiftReminder, subjectStaffMember, ec.StaffID),
	}, nil
}

func orderNotification(ec EventContext, title, message string, kind models.NotificationType, priority models.Priority) models.Notification {
	return models.Notification{
		Title:            title,
		Message:          message,
		NotificationType: kind,
		Priority:         priority,
		Category:         models.CategoryOrders,
		ActionURL:        fmt.Sprintf("/orders#%d", ec.OrderID),
		ActionLabel:      "View Order",
		UserID:           ec.UserID,
	}
}

func requireItem(kind EventKind, ec EventContext) error {
	if ec.ItemID == 0 {
		return missingField(kind, "item_id")
	}
	if strings.TrimSpace(ec.ItemName) == "" {
		return missingField(kind, "item_name")
	}
	return nil
}

func missingField(kind EventKind, field string) error {
	return apperrors.NewBadRequest(fmt.Sprintf("%s is required for %s events", field, kind))
}

// dedupKey builds the structured subject key, e.g. inventory:low_stock:inventory_item:12.
func dedupKey(category models.Category, kind EventKind, subjectType string, subjectID uint) string {
	return fmt.Sprintf("%s:%s:%s:%d", category, kind, subjectType, subjectID)
}

func tableSuffix(table int) string {
	if table <= 0 {
		return ""
	}
	return fmt.Sprintf(" for table %d", table)
}

// quantity renders a stock level with the shortest exact decimal form.
func quantity(value float64, unit string) string {
	formatted := strconv.FormatFloat(value, 'f', -1, 64)
	if unit == "" {
		return formatted
	}
	return formatted + " " + unit
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

// NotificationType is the display severity of a notification.
type NotificationType string

const (
	TypeInfo    NotificationType = "info"
	TypeWarning NotificationType = "warning"
	TypeError   NotificationType = "error"
	TypeSuccess NotificationType = "success"
)

// Valid reports whether t is a known notification type.
func (t NotificationType) Valid() bool {
	switch t {
	case TypeInfo, TypeWarning, TypeError, TypeSuccess:
		return true
	}
	return false
}

// Priority is a sort and escalation hint.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Category groups notifications for filtering and dedup scope.
type Category string

const (
	CategoryInventory Category = "inventory"
	CategoryOrders    Category = "orders"
	CategoryStaff     Category = "staff"
	CategorySystem    Category = "system"
	CategoryGeneral   Category = "general"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryInventory, CategoryOrders, CategoryStaff, CategorySystem, CategoryGeneral:
		return true
	}
	return false
}

// Notification is a user-facing alert record. A nil UserID marks a broadcast.
//
// DedupKey identifies the subject of an event-raised notification
// (category:kind:subject-type:subject-id) and is empty for manual entries.
type Notification struct {
	BaseModel

	UserID           *uint            `gorm:"index" json:"user_id"`
	Title            string           `gorm:"type:varchar(255);not null" json:"title"`
	Message          string           `gorm:"type:text" json:"message"`
	NotificationType NotificationType `gorm:"type:varchar(16);not null;default:'info'" json:"notification_type"`
	Priority         Priority         `gorm:"type:varchar(16);not null;default:'normal';index" json:"priority"`
	Category         Category         `gorm:"type:varchar(16);not null;default:'general';index:idx_notifications_category_dedup" json:"category"`
	EventKind        string           `gorm:"type:varchar(32)" json:"event_kind,omitempty"`
	DedupKey         string           `gorm:"type:varchar(128);index:idx_notifications_category_dedup" json:"-"`

	IsRead      bool       `gorm:"default:false;index" json:"is_read"`
	IsDismissed bool       `gorm:"default:false;index" json:"is_dismissed"`
	ReadAt      *time.Time `json:"read_at"`
	ExpiresAt   *time.Time `gorm:"index" json:"expires_at"`

	ActionURL   string         `gorm:"type:text" json:"action_url,omitempty"`
	ActionLabel string         `gorm:"type:varchar(64)" json:"action_label,omitempty"`
	ExtraData   datatypes.JSON `json:"extra_data,omitempty"`
}

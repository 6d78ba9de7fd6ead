package models

import "time"

// InventoryItem is a stocked ingredient or product tracked by the back office.
type InventoryItem struct {
	BaseModel

	Name         string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Category     string    `gorm:"type:varchar(64)" json:"category"`
	CurrentStock float64   `gorm:"not null;default:0" json:"current_stock"`
	Unit         string    `gorm:"type:varchar(16)" json:"unit"`
	Threshold    float64   `gorm:"not null;default:0" json:"threshold"`
	Supplier     string    `gorm:"type:varchar(255)" json:"supplier"`
	LastUpdated  time.Time `json:"last_updated"`
}

// IsLow reports whether the item is at or below its restock threshold.
func (i *InventoryItem) IsLow() bool {
	return i.CurrentStock <= i.Threshold
}

package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/gastropro/backoffice/internal/models"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Notification{},
		&models.InventoryItem{},
		&models.Order{},
		&models.StaffMember{},
	)
}

// SeedDemoData populates a starter inventory and staff roster. Rows are only
// inserted into empty tables so repeated start-ups leave operator data alone.
func SeedDemoData(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := seedInventory(tx); err != nil {
			return err
		}
		return seedStaff(tx)
	})
}

func seedInventory(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&models.InventoryItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	items := []models.InventoryItem{
		{Name: "Chicken Breast", Category: "Meat", CurrentStock: 8.5, Unit: "kg", Threshold: 5, Supplier: "Fresh Meat Co."},
		{Name: "Mozzarella Cheese", Category: "Dairy", CurrentStock: 2, Unit: "kg", Threshold: 5, Supplier: "Dairy Fresh"},
		{Name: "White Rum", Category: "Alcohol", CurrentStock: 1, Unit: "bottles", Threshold: 3, Supplier: "Spirits Wholesale"},
		{Name: "Fresh Mint", Category: "Produce", CurrentStock: 0.1, Unit: "kg", Threshold: 0.3, Supplier: "Green Gardens"},
		{Name: "Beef Patties", Category: "Meat", CurrentStock: 15, Unit: "pieces", Threshold: 30, Supplier: "Premium Meat"},
		{Name: "Tomatoes", Category: "Produce", CurrentStock: 5.2, Unit: "kg", Threshold: 3, Supplier: "Local Farm"},
		{Name: "Olive Oil", Category: "Pantry", CurrentStock: 1.5, Unit: "L", Threshold: 2, Supplier: "Mediterranean Imports"},
		{Name: "Red Wine", Category: "Alcohol", CurrentStock: 12, Unit: "bottles", Threshold: 8, Supplier: "Wine Distributors"},
	}
	for i := range items {
		items[i].LastUpdated = now
	}
	return tx.Create(&items).Error
}

func seedStaff(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&models.StaffMember{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	staff := []models.StaffMember{
		{Name: "Sarah Johnson", Position: "Manager", Email: "sarah@gastropro.com", Phone: "(555) 123-4567", IsActive: true},
		{Name: "Michael Brown", Position: "Head Chef", Email: "michael@gastropro.com", Phone: "(555) 234-5678", IsActive: true},
		{Name: "Emma Wilson", Position: "Waitress", Email: "emma@gastropro.com", Phone: "(555) 345-6789", IsActive: true},
		{Name: "David Martinez", Position: "Bartender", Email: "david@gastropro.com", Phone: "(555) 456-7890", IsActive: true},
		{Name: "Lisa Chen", Position: "Waitress", Email: "lisa@gastropro.com", Phone: "(555) 567-8901", IsActive: true},
		{Name: "James Thompson", Position: "Sous Chef", Email: "james@gastropro.com", Phone: "(555) 678-9012", IsActive: true},
	}
	return tx.Create(&staff).Error
}

package models

// OrderStatus enumerates the lifecycle of a guest order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderDelayed   OrderStatus = "delayed"
	OrderServed    OrderStatus = "served"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPreparing, OrderReady, OrderDelayed, OrderServed, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Order is a guest order placed at a table.
type Order struct {
	BaseModel

	TableNumber  int         `json:"table_number"`
	CustomerName string      `gorm:"type:varchar(255)" json:"customer_name,omitempty"`
	Status       OrderStatus `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	TotalAmount  float64     `json:"total_amount"`
}

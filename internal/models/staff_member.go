package models

// StaffMember is an employee who can receive user-scoped notifications.
type StaffMember struct {
	BaseModel

	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Position string `gorm:"type:varchar(64)" json:"position"`
	Email    string `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	Phone    string `gorm:"type:varchar(32)" json:"phone,omitempty"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

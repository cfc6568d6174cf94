package model

import "time"

// Notification is a persisted copy of an emitted domain event, kept for
// the dashboard read path. Delivery over an external channel happens
// separately and is best-effort.
type Notification struct {
	ID          uint   `gorm:"primaryKey"`
	RecipientID uint   `gorm:"index"`
	Kind        string `gorm:"index"`
	Message     string
	PlanID      uint
	Read        bool `gorm:"default:false"`
	CreatedAt   time.Time
}

package model

import "time"

// Draft is the advisory autosave copy of an unsubmitted plan, one
// per owner and date. It is a lower-authority store: nothing here is
// ever promoted to a Plan without an explicit submit carrying the
// content.
type Draft struct {
	ID        uint   `gorm:"primaryKey"`
	OwnerID   uint   `gorm:"index:idx_draft_owner_date,unique"`
	Date      string `gorm:"index:idx_draft_owner_date,unique"`
	Payload   string // JSON exactly as the client sent it
	SavedAt   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

package model

import "time"

// Checkbox is an optional sub-item of one task. It is keyed by a
// generated CheckboxID and references its task by the task's stable
// TaskID, never by array position, so reordering or partially editing
// the task list cannot detach it from its owner.
//
// A checked box must carry a label and a valid time allocation; an
// unchecked one may stay incomplete while the plan is being drafted.
type Checkbox struct {
	ID             uint   `gorm:"primaryKey"`
	PlanID         uint   `gorm:"index"`
	TaskID         string `gorm:"index"`
	CheckboxID     string `gorm:"index"`
	Label          string
	Checked        bool `gorm:"default:false"`
	TimeAllocation string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

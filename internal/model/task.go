package model

import "time"

// TaskStatus is the per-task execution state reported with the
// end-of-day update. Plans start with every task not_started.
type TaskStatus string

const (
	TaskNotStarted TaskStatus = "not_started"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskPending    TaskStatus = "pending"
)

// ValidEODStatus reports whether the status may appear in an
// end-of-day report. not_started is the pre-report default only.
func (s TaskStatus) ValidEODStatus() bool {
	return s == TaskCompleted || s == TaskInProgress || s == TaskPending
}

// RequiresRemarks reports whether an end-of-day line with this status
// must carry an explanation.
func (s TaskStatus) RequiresRemarks() bool {
	return s == TaskInProgress || s == TaskPending
}

// Task is a single timed item in a day plan. TaskID is a generated
// identifier that stays stable across edits and reorders; Position only
// records display order.
type Task struct {
	ID             uint   `gorm:"primaryKey"`
	PlanID         uint   `gorm:"index"`
	TaskID         string `gorm:"index"`
	Position       int
	Title          string
	TimeAllocation string
	Description    string
	Status         TaskStatus `gorm:"type:varchar(20);default:'not_started'"`
	Remarks        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

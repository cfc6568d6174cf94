package model

import "time"

// EODUpdate is the trainee's end-of-day report for one plan. The row is
// absent until the report is filed, and SubmittedAt never changes once
// set; a rejected review voids the report instead of editing it.
type EODUpdate struct {
	ID             uint `gorm:"primaryKey"`
	PlanID         uint `gorm:"uniqueIndex"`
	OverallRemarks string
	SubmittedAt    time.Time
	ReviewComments string
	ReviewedBy     *uint
	ReviewedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Reviewed reports whether a trainer has already decided on the report.
func (e *EODUpdate) Reviewed() bool {
	return e != nil && e.ReviewedAt != nil
}

package model

import (
	"fmt"
	"strings"
	"time"
)

// PlanStatus tracks where a day plan sits in its submission/review
// lifecycle. Transitions between statuses are governed by the planner
// package; nothing else may change a plan's status.
type PlanStatus string

const (
	PlanDraft         PlanStatus = "draft"
	PlanSubmitted     PlanStatus = "submitted"
	PlanInProgress    PlanStatus = "in_progress"
	PlanPendingReview PlanStatus = "pending_review"
	PlanCompleted     PlanStatus = "completed"
	PlanRejected      PlanStatus = "rejected"
)

// Terminal reports whether the status ends the lifecycle for its date.
// Rejected plans may still be resubmitted, so only completed is truly
// final, but both are retained for history and never hard-deleted.
func (s PlanStatus) Terminal() bool {
	return s == PlanCompleted || s == PlanRejected
}

// Plan is one trainee's set of timed tasks for a single calendar date.
// The (owner, date) pair is the plan's identity: two records for the
// same pair would be the same lifecycle, so the unique index forbids
// them. Version is the optimistic-lock counter checked on every save.
type Plan struct {
	ID          uint       `gorm:"primaryKey"`
	OwnerID     uint       `gorm:"index:idx_plan_owner_date,unique"`
	Date        string     `gorm:"index:idx_plan_owner_date,unique"` // YYYY-MM-DD
	Status      PlanStatus `gorm:"type:varchar(20);default:'draft';index"`
	CreatedBy   Role       `gorm:"type:varchar(10)"`
	SubmittedAt *time.Time
	Version     uint       `gorm:"default:1"`
	Tasks       []Task     `gorm:"foreignKey:PlanID"`
	Checkboxes  []Checkbox `gorm:"foreignKey:PlanID"`
	EOD         *EODUpdate `gorm:"foreignKey:PlanID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CheckboxGroups arranges the plan's checkboxes by owning task and then
// by checkbox identifier. Both keys are generated ids, so the grouping
// survives task reordering and partial edits.
func (p *Plan) CheckboxGroups() map[string]map[string]Checkbox {
	groups := make(map[string]map[string]Checkbox)
	for _, cb := range p.Checkboxes {
		group, ok := groups[cb.TaskID]
		if !ok {
			group = make(map[string]Checkbox)
			groups[cb.TaskID] = group
		}
		group[cb.CheckboxID] = cb
	}
	return groups
}

// NormalizeDate reduces a client-supplied date to its YYYY-MM-DD form.
// RFC3339 timestamps are accepted and truncated to the calendar day.
func NormalizeDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
}

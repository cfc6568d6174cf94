// Package reminder runs the advisory end-of-day nudge. It sits outside
// the lifecycle state machine: it only reads plans and sends
// notifications, never transitions anything.
package reminder

import (
	"context"
	"fmt"
	"log"
	"time"

	"dayplan-tracker/internal/model"
	"dayplan-tracker/internal/notify"
	"dayplan-tracker/internal/repository"
)

// Reminder nudges trainees whose plan for today was accepted but still
// has no end-of-day report filed.
type Reminder struct {
	plans    *repository.PlanRepository
	notifier notify.Notifier
}

func New(plans *repository.PlanRepository, notifier notify.Notifier) *Reminder {
	return &Reminder{plans: plans, notifier: notifier}
}

// Run sends one reminder per open plan for the given day. Send failures
// are logged per plan; one bad recipient does not stop the rest.
func (r *Reminder) Run(ctx context.Context, now time.Time) error {
	date := now.Format("2006-01-02")
	plans, err := r.plans.List(ctx, repository.PlanFilter{
		Date:   date,
		Status: model.PlanInProgress,
	})
	if err != nil {
		return fmt.Errorf("list open plans: %w", err)
	}

	for _, plan := range plans {
		if plan.EOD != nil {
			continue
		}
		ev := notify.Event{
			Kind:        notify.KindEODReminder,
			RecipientID: plan.OwnerID,
			PlanID:      plan.ID,
			PlanDate:    date,
		}
		if err := r.notifier.Notify(ctx, ev); err != nil {
			log.Printf("[warn] remind user %d: %v", plan.OwnerID, err)
		}
	}
	return nil
}

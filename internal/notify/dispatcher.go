package notify

import (
	"context"
	"fmt"

	"dayplan-tracker/internal/model"
	"dayplan-tracker/internal/repository"
)

// Dispatcher records every event in the notifications table and then
// forwards it to the delivery channel. Recording happens first so the
// dashboard sees the event even when delivery fails.
type Dispatcher struct {
	notes    *repository.NotificationRepository
	delivery Notifier
}

func NewDispatcher(notes *repository.NotificationRepository, delivery Notifier) *Dispatcher {
	return &Dispatcher{notes: notes, delivery: delivery}
}

func (d *Dispatcher) Notify(ctx context.Context, ev Event) error {
	note := &model.Notification{
		RecipientID: ev.RecipientID,
		Kind:        string(ev.Kind),
		Message:     messageFor(ev),
		PlanID:      ev.PlanID,
	}
	if err := d.notes.Create(ctx, note); err != nil {
		return fmt.Errorf("record %s: %w", ev.Kind, err)
	}
	return d.delivery.Notify(ctx, ev)
}

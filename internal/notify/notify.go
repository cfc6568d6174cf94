// Package notify carries domain events out of the plan lifecycle to
// whoever should hear about them. Delivery is fire-and-forget: the
// state transition has already committed by the time an event is
// emitted, and a failed send never rolls it back.
package notify

import "context"

// Kind enumerates the domain events that trigger a notification.
type Kind string

const (
	KindPlanSubmitted Kind = "plan_submitted"
	KindEODSubmitted  Kind = "eod_submitted"
	KindEODReviewed   Kind = "eod_reviewed"
	KindEODReminder   Kind = "eod_reminder"
)

// Event is a single notification to one recipient.
type Event struct {
	Kind        Kind
	RecipientID uint
	PlanID      uint
	PlanDate    string
	ActorName   string // who triggered the event
	Decision    string // eod_reviewed only: approved or rejected
	Comments    string // eod_reviewed only: trainer comments, may be empty
}

// Notifier delivers one event to its recipient.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

package notify

import (
	"context"
	"log"
)

// LogNotifier writes events to the process log. It stands in for a real
// delivery channel when none is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(_ context.Context, ev Event) error {
	log.Printf("[info] notify %s -> user %d (plan %d, %s)", ev.Kind, ev.RecipientID, ev.PlanID, ev.PlanDate)
	return nil
}

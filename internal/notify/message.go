package notify

import (
	"fmt"
	"html"
	"strings"
)

// messageFor renders an event as a short HTML message for chat
// delivery. The same text is stored in the notifications table.
func messageFor(ev Event) string {
	var sb strings.Builder

	actor := html.EscapeString(strings.TrimSpace(ev.ActorName))

	switch ev.Kind {
	case KindPlanSubmitted:
		sb.WriteString("📋 <b>Day plan submitted</b>\n")
		fmt.Fprintf(&sb, "%s submitted a plan for %s.", actor, ev.PlanDate)
	case KindEODSubmitted:
		sb.WriteString("🌙 <b>End-of-day update filed</b>\n")
		fmt.Fprintf(&sb, "%s filed the end-of-day update for %s. It is waiting for your review.", actor, ev.PlanDate)
	case KindEODReviewed:
		if ev.Decision == "approved" {
			sb.WriteString("✅ <b>Day plan approved</b>\n")
		} else {
			sb.WriteString("↩️ <b>Day plan sent back</b>\n")
		}
		fmt.Fprintf(&sb, "%s reviewed your plan for %s.", actor, ev.PlanDate)
		if c := strings.TrimSpace(ev.Comments); c != "" {
			fmt.Fprintf(&sb, "\n💬 %s", html.EscapeString(c))
		}
	case KindEODReminder:
		sb.WriteString("⏰ <b>End-of-day reminder</b>\n")
		fmt.Fprintf(&sb, "Your plan for %s has no end-of-day update yet.", ev.PlanDate)
	default:
		fmt.Fprintf(&sb, "Update on your plan for %s.", ev.PlanDate)
	}

	return sb.String()
}

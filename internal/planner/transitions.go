// Package planner holds the day-plan domain rules: the lifecycle state
// machine, the content invariants checked before any save, and the
// end-of-day report validation. Everything here is pure; persistence
// and notification live elsewhere.
package planner

import "dayplan-tracker/internal/model"

// Event identifies a lifecycle action a user can take on a plan.
type Event string

const (
	EventSubmit   Event = "submit"
	EventIntake   Event = "intake"
	EventEdit     Event = "edit"
	EventFileEOD  Event = "file_eod"
	EventApprove  Event = "approve"
	EventReject   Event = "reject"
	EventResubmit Event = "resubmit"
)

type transition struct {
	from model.PlanStatus
	role model.Role
	to   model.PlanStatus
}

// transitions is the complete lifecycle table. Each entry names the
// role allowed to trigger it; any (state, event, role) combination not
// listed is a protocol violation. Editing drops the plan back to draft,
// which hides it from trainer-visible listings until resubmission.
var transitions = map[Event][]transition{
	EventSubmit: {
		{from: model.PlanDraft, role: model.RoleTrainee, to: model.PlanSubmitted},
	},
	EventIntake: {
		{from: model.PlanSubmitted, role: model.RoleTrainer, to: model.PlanInProgress},
	},
	EventEdit: {
		{from: model.PlanInProgress, role: model.RoleTrainee, to: model.PlanDraft},
		{from: model.PlanRejected, role: model.RoleTrainee, to: model.PlanDraft},
	},
	EventFileEOD: {
		{from: model.PlanInProgress, role: model.RoleTrainee, to: model.PlanPendingReview},
	},
	EventApprove: {
		{from: model.PlanPendingReview, role: model.RoleTrainer, to: model.PlanCompleted},
	},
	EventReject: {
		{from: model.PlanPendingReview, role: model.RoleTrainer, to: model.PlanRejected},
	},
	EventResubmit: {
		{from: model.PlanRejected, role: model.RoleTrainee, to: model.PlanSubmitted},
	},
}

// Next returns the state a plan in from moves to when role triggers
// event. It fails with a ProtocolViolation when the event is not
// allowed from that state or for that role; callers must perform no
// mutation in that case.
func Next(from model.PlanStatus, event Event, role model.Role) (model.PlanStatus, error) {
	for _, t := range transitions[event] {
		if t.from != from {
			continue
		}
		if t.role != role {
			return "", &ProtocolViolation{From: from, Event: event, Role: role}
		}
		return t.to, nil
	}
	return "", &ProtocolViolation{From: from, Event: event, Role: role}
}

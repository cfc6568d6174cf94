package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"dayplan-tracker/internal/model"
	"dayplan-tracker/internal/notify"
	"dayplan-tracker/internal/planner"
	"dayplan-tracker/internal/repository"
)

// ReviewDecision is the trainer's verdict on a filed end-of-day update.
type ReviewDecision string

const (
	DecisionApproved ReviewDecision = "approved"
	DecisionRejected ReviewDecision = "rejected"
)

// PlanService orchestrates every lifecycle operation: load the plan,
// check the transition, apply it, and commit through the repository's
// version check as one unit. Notifications go out only after the commit
// and never undo it.
type PlanService struct {
	plans    *repository.PlanRepository
	users    *repository.UserRepository
	drafts   *repository.DraftRepository
	notifier notify.Notifier
	now      func() time.Time
}

func NewPlanService(plans *repository.PlanRepository, users *repository.UserRepository, drafts *repository.DraftRepository, notifier notify.Notifier) *PlanService {
	return &PlanService{
		plans:    plans,
		users:    users,
		drafts:   drafts,
		notifier: notifier,
		now:      time.Now,
	}
}

// SubmitPlan validates and submits the trainee's own plan for a date.
// A brand-new plan is created directly in submitted; an existing draft
// or rejected plan re-enters the intake queue carrying the new content.
// The assigned trainer is notified.
func (s *PlanService) SubmitPlan(ctx context.Context, actor *model.User, date string, tasks []planner.TaskInput) (*model.Plan, error) {
	date, err := model.NormalizeDate(date)
	if err != nil {
		return nil, &planner.ValidationError{Problems: []string{err.Error()}}
	}
	if err := planner.ValidateContent(tasks); err != nil {
		return nil, err
	}

	now := s.now()
	plan, err := s.plans.Load(ctx, actor.ID, date)
	switch {
	case errors.Is(err, planner.ErrNotFound):
		if actor.Role != model.RoleTrainee {
			return nil, &planner.ProtocolViolation{From: model.PlanDraft, Event: planner.EventSubmit, Role: actor.Role}
		}
		plan = buildPlan(actor.ID, date, model.RoleTrainee, tasks)
		plan.Status = model.PlanSubmitted
		plan.SubmittedAt = &now
		if err := s.plans.Create(ctx, plan); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		event := planner.EventSubmit
		if plan.Status == model.PlanRejected {
			event = planner.EventResubmit
		}
		next, err := planner.Next(plan.Status, event, actor.Role)
		if err != nil {
			return nil, err
		}
		expected := plan.Version
		applyContent(plan, tasks)
		plan.Status = next
		if plan.SubmittedAt == nil {
			plan.SubmittedAt = &now
		}
		if event == planner.EventResubmit {
			// The reject reopened the plan; the old report is void.
			plan.EOD = nil
		}
		if err := s.plans.Save(ctx, plan, expected); err != nil {
			return nil, err
		}
	}

	s.clearDraft(ctx, actor.ID, date)
	s.emit(ctx, notify.Event{
		Kind:        notify.KindPlanSubmitted,
		RecipientID: derefID(actor.TrainerID),
		PlanID:      plan.ID,
		PlanDate:    date,
		ActorName:   actor.Name,
	})
	return plan, nil
}

// IntakePlan accepts a submitted plan so the trainee can start working
// it. When no plan exists for the date the trainer may create one
// directly (CreatedBy records that); such a plan starts in_progress at
// once since the trainer has trivially accepted it.
func (s *PlanService) IntakePlan(ctx context.Context, actor *model.User, ownerID uint, date string, tasks []planner.TaskInput) (*model.Plan, error) {
	date, err := model.NormalizeDate(date)
	if err != nil {
		return nil, &planner.ValidationError{Problems: []string{err.Error()}}
	}

	plan, err := s.plans.Load(ctx, ownerID, date)
	if errors.Is(err, planner.ErrNotFound) {
		if len(tasks) == 0 {
			return nil, planner.ErrNotFound
		}
		if actor.Role != model.RoleTrainer {
			return nil, &planner.ProtocolViolation{From: model.PlanSubmitted, Event: planner.EventIntake, Role: actor.Role}
		}
		if err := planner.ValidateContent(tasks); err != nil {
			return nil, err
		}
		now := s.now()
		plan = buildPlan(ownerID, date, model.RoleTrainer, tasks)
		plan.Status = model.PlanInProgress
		plan.SubmittedAt = &now
		if err := s.plans.Create(ctx, plan); err != nil {
			return nil, err
		}
		return plan, nil
	}
	if err != nil {
		return nil, err
	}

	next, err := planner.Next(plan.Status, planner.EventIntake, actor.Role)
	if err != nil {
		return nil, err
	}
	expected := plan.Version
	plan.Status = next
	if err := s.plans.Save(ctx, plan, expected); err != nil {
		return nil, err
	}
	return plan, nil
}

// EditPlan lets the trainee rework an accepted or rejected plan. The
// plan drops back to draft and disappears from trainer-visible listings
// until it is resubmitted, so a half-edited plan can never be reviewed.
func (s *PlanService) EditPlan(ctx context.Context, actor *model.User, date string, tasks []planner.TaskInput) (*model.Plan, error) {
	date, err := model.NormalizeDate(date)
	if err != nil {
		return nil, &planner.ValidationError{Problems: []string{err.Error()}}
	}
	if err := planner.ValidateContent(tasks); err != nil {
		return nil, err
	}

	plan, err := s.plans.Load(ctx, actor.ID, date)
	if err != nil {
		return nil, err
	}

	wasRejected := plan.Status == model.PlanRejected
	next, err := planner.Next(plan.Status, planner.EventEdit, actor.Role)
	if err != nil {
		return nil, err
	}
	expected := plan.Version
	applyContent(plan, tasks)
	plan.Status = next
	if wasRejected {
		plan.EOD = nil
	}
	if err := s.plans.Save(ctx, plan, expected); err != nil {
		return nil, err
	}
	return plan, nil
}

// FileEOD records the trainee's end-of-day report, keyed by stable task
// id. The whole report is validated before anything is written: one bad
// line rejects it all with every failing task title reported, and no
// task status is persisted.
func (s *PlanService) FileEOD(ctx context.Context, actor *model.User, date string, entries map[string]planner.EODEntry, overallRemarks string) (*model.Plan, error) {
	date, err := model.NormalizeDate(date)
	if err != nil {
		return nil, &planner.ValidationError{Problems: []string{err.Error()}}
	}

	plan, err := s.plans.Load(ctx, actor.ID, date)
	if err != nil {
		return nil, err
	}

	next, err := planner.Next(plan.Status, planner.EventFileEOD, actor.Role)
	if err != nil {
		return nil, err
	}
	if plan.EOD != nil {
		// A filed report is immutable; filing again is a protocol
		// violation, not an overwrite.
		return nil, &planner.ProtocolViolation{From: plan.Status, Event: planner.EventFileEOD, Role: actor.Role}
	}
	if err := planner.ValidateEOD(plan.Tasks, entries); err != nil {
		return nil, err
	}

	expected := plan.Version
	for i := range plan.Tasks {
		entry := entries[plan.Tasks[i].TaskID]
		plan.Tasks[i].Status = entry.Status
		if entry.Status == model.TaskCompleted {
			plan.Tasks[i].Remarks = ""
		} else {
			plan.Tasks[i].Remarks = strings.TrimSpace(entry.Remarks)
		}
	}
	plan.EOD = &model.EODUpdate{
		OverallRemarks: strings.TrimSpace(overallRemarks),
		SubmittedAt:    s.now(),
	}
	plan.Status = next
	if err := s.plans.Save(ctx, plan, expected); err != nil {
		return nil, err
	}

	s.emit(ctx, notify.Event{
		Kind:        notify.KindEODSubmitted,
		RecipientID: derefID(actor.TrainerID),
		PlanID:      plan.ID,
		PlanDate:    date,
		ActorName:   actor.Name,
	})
	return plan, nil
}

// ReviewEOD records the trainer's decision on a filed report. Approval
// completes the plan; rejection stores the comments and lets the
// trainee edit and resubmit. A report reviewed once cannot be reviewed
// again. The trainee is notified either way.
func (s *PlanService) ReviewEOD(ctx context.Context, actor *model.User, ownerID uint, date string, decision ReviewDecision, comments string) (*model.Plan, error) {
	date, err := model.NormalizeDate(date)
	if err != nil {
		return nil, &planner.ValidationError{Problems: []string{err.Error()}}
	}

	var event planner.Event
	switch decision {
	case DecisionApproved:
		event = planner.EventApprove
	case DecisionRejected:
		event = planner.EventReject
	default:
		return nil, &planner.ValidationError{Problems: []string{fmt.Sprintf("unknown decision %q", decision)}}
	}

	plan, err := s.plans.Load(ctx, ownerID, date)
	if err != nil {
		return nil, err
	}

	next, err := planner.Next(plan.Status, event, actor.Role)
	if err != nil {
		return nil, err
	}
	if plan.EOD == nil || plan.EOD.Reviewed() {
		return nil, &planner.ProtocolViolation{From: plan.Status, Event: event, Role: actor.Role}
	}

	expected := plan.Version
	now := s.now()
	plan.EOD.ReviewComments = strings.TrimSpace(comments)
	plan.EOD.ReviewedBy = &actor.ID
	plan.EOD.ReviewedAt = &now
	plan.Status = next
	if err := s.plans.Save(ctx, plan, expected); err != nil {
		return nil, err
	}

	s.emit(ctx, notify.Event{
		Kind:        notify.KindEODReviewed,
		RecipientID: plan.OwnerID,
		PlanID:      plan.ID,
		PlanDate:    date,
		ActorName:   actor.Name,
		Decision:    string(decision),
		Comments:    plan.EOD.ReviewComments,
	})
	return plan, nil
}

// GetPlan returns one plan. Trainees may only read their own.
func (s *PlanService) GetPlan(ctx context.Context, actor *model.User, ownerID uint, date string) (*model.Plan, error) {
	date, err := model.NormalizeDate(date)
	if err != nil {
		return nil, &planner.ValidationError{Problems: []string{err.Error()}}
	}
	if actor.Role == model.RoleTrainee && actor.ID != ownerID {
		return nil, planner.ErrNotFound
	}
	return s.plans.Load(ctx, ownerID, date)
}

// ListPlans serves the dashboard read path. Trainees see only their own
// plans; trainers see the non-draft plans of their trainees, since a
// plan under edit is hidden until resubmitted.
func (s *PlanService) ListPlans(ctx context.Context, actor *model.User, date string, status model.PlanStatus) ([]model.Plan, error) {
	if date != "" {
		var err error
		if date, err = model.NormalizeDate(date); err != nil {
			return nil, &planner.ValidationError{Problems: []string{err.Error()}}
		}
	}

	filter := repository.PlanFilter{Date: date, Status: status}
	if actor.Role == model.RoleTrainee {
		filter.OwnerID = actor.ID
	} else {
		filter.TrainerID = actor.ID
		filter.VisibleOnly = true
	}
	return s.plans.List(ctx, filter)
}

// emit dispatches a notification after the transition has committed.
// Failures are logged and swallowed: delivery must never undo a commit.
func (s *PlanService) emit(ctx context.Context, ev notify.Event) {
	if ev.RecipientID == 0 {
		return
	}
	if err := s.notifier.Notify(ctx, ev); err != nil {
		log.Printf("[warn] notify %s: %v", ev.Kind, err)
	}
}

// clearDraft drops the advisory autosave once a real submit landed.
func (s *PlanService) clearDraft(ctx context.Context, ownerID uint, date string) {
	if err := s.drafts.Delete(ctx, ownerID, date); err != nil {
		log.Printf("[warn] clear draft for user %d on %s: %v", ownerID, date, err)
	}
}

// applyContent replaces the plan's tasks and checkboxes with freshly
// authored content. Provided identifiers are kept so sub-items stay
// attached across edits; missing ones are generated.
func applyContent(plan *model.Plan, tasks []planner.TaskInput) {
	rows := make([]model.Task, 0, len(tasks))
	var boxes []model.Checkbox

	for i, t := range tasks {
		id := t.TaskID
		if id == "" {
			id = uuid.NewString()
		}
		rows = append(rows, model.Task{
			TaskID:         id,
			Position:       i,
			Title:          strings.TrimSpace(t.Title),
			TimeAllocation: strings.TrimSpace(t.TimeAllocation),
			Description:    strings.TrimSpace(t.Description),
			Status:         model.TaskNotStarted,
		})
		for _, cb := range t.Checkboxes {
			cid := cb.CheckboxID
			if cid == "" {
				cid = uuid.NewString()
			}
			boxes = append(boxes, model.Checkbox{
				TaskID:         id,
				CheckboxID:     cid,
				Label:          strings.TrimSpace(cb.Label),
				Checked:        cb.Checked,
				TimeAllocation: strings.TrimSpace(cb.TimeAllocation),
			})
		}
	}

	plan.Tasks = rows
	plan.Checkboxes = boxes
}

func buildPlan(ownerID uint, date string, createdBy model.Role, tasks []planner.TaskInput) *model.Plan {
	plan := &model.Plan{
		OwnerID:   ownerID,
		Date:      date,
		CreatedBy: createdBy,
		Status:    model.PlanDraft,
	}
	applyContent(plan, tasks)
	return plan
}

func derefID(id *uint) uint {
	if id == nil {
		return 0
	}
	return *id
}

package service

import (
	"context"

	"dayplan-tracker/internal/model"
	"dayplan-tracker/internal/planner"
)

// Draft autosaves are advisory only. They live beside plans in a
// separate, lower-authority store; the client reconciles them against
// the real plan on load, and only an explicit SubmitPlan carrying the
// content ever turns one into authoritative state.

// SaveDraft upserts the trainee's autosave payload for a date.
func (s *PlanService) SaveDraft(ctx context.Context, actor *model.User, date, payload string) error {
	date, err := model.NormalizeDate(date)
	if err != nil {
		return &planner.ValidationError{Problems: []string{err.Error()}}
	}
	return s.drafts.Save(ctx, actor.ID, date, payload, s.now())
}

// LoadDraft returns the trainee's autosave for a date, or
// planner.ErrNotFound when none was saved.
func (s *PlanService) LoadDraft(ctx context.Context, actor *model.User, date string) (*model.Draft, error) {
	date, err := model.NormalizeDate(date)
	if err != nil {
		return nil, &planner.ValidationError{Problems: []string{err.Error()}}
	}
	return s.drafts.Load(ctx, actor.ID, date)
}

// DiscardDraft drops the autosave without touching the plan.
func (s *PlanService) DiscardDraft(ctx context.Context, actor *model.User, date string) error {
	date, err := model.NormalizeDate(date)
	if err != nil {
		return &planner.ValidationError{Problems: []string{err.Error()}}
	}
	return s.drafts.Delete(ctx, actor.ID, date)
}

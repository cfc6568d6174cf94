package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"dayplan-tracker/internal/model"
	"dayplan-tracker/internal/planner"
)

// PlanRepository persists day plans. Every write goes through an
// optimistic version check so concurrent updates to the same plan
// surface as conflicts instead of silently overwriting each other.
type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// Load fetches the plan for one owner and date, with tasks in display
// order, all checkboxes, and the EOD row when filed.
func (r *PlanRepository) Load(ctx context.Context, ownerID uint, date string) (*model.Plan, error) {
	var plan model.Plan
	err := r.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Checkboxes").
		Preload("EOD").
		Where("owner_id = ? AND date = ?", ownerID, date).
		First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, planner.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load plan: %w", err)
	}
	return &plan, nil
}

// Create inserts a brand-new plan at version 1. The unique
// (owner, date) index keeps one authoritative plan per trainee per day;
// a second insert for the same pair fails with ErrDuplicatePlan.
func (r *PlanRepository) Create(ctx context.Context, plan *model.Plan) error {
	plan.Version = 1
	if err := r.db.WithContext(ctx).Create(plan).Error; err != nil {
		if isUniqueViolation(err) {
			return planner.ErrDuplicatePlan
		}
		return fmt.Errorf("create plan: %w", err)
	}
	return nil
}

// Save commits a full read-modify-write of the plan as one transaction.
// The caller passes the version it loaded; if another writer committed
// in between, the version check matches zero rows, nothing is written,
// and ErrConflict is returned so the caller can reload and retry.
func (r *PlanRepository) Save(ctx context.Context, plan *model.Plan, expectedVersion uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Plan{}).
			Where("id = ? AND version = ?", plan.ID, expectedVersion).
			Updates(map[string]interface{}{
				"status":       plan.Status,
				"submitted_at": plan.SubmittedAt,
				"version":      expectedVersion + 1,
			})
		if res.Error != nil {
			return fmt.Errorf("update plan: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return planner.ErrConflict
		}
		plan.Version = expectedVersion + 1

		// The version check on the plan row above is the concurrency
		// gate for everything owned by it, so the owned rows can be
		// replaced wholesale.
		if err := tx.Where("plan_id = ?", plan.ID).Delete(&model.Task{}).Error; err != nil {
			return fmt.Errorf("clear tasks: %w", err)
		}
		for i := range plan.Tasks {
			plan.Tasks[i].ID = 0
			plan.Tasks[i].PlanID = plan.ID
			plan.Tasks[i].Position = i
		}
		if len(plan.Tasks) > 0 {
			if err := tx.Create(&plan.Tasks).Error; err != nil {
				return fmt.Errorf("save tasks: %w", err)
			}
		}

		if err := tx.Where("plan_id = ?", plan.ID).Delete(&model.Checkbox{}).Error; err != nil {
			return fmt.Errorf("clear checkboxes: %w", err)
		}
		for i := range plan.Checkboxes {
			plan.Checkboxes[i].ID = 0
			plan.Checkboxes[i].PlanID = plan.ID
		}
		if len(plan.Checkboxes) > 0 {
			if err := tx.Create(&plan.Checkboxes).Error; err != nil {
				return fmt.Errorf("save checkboxes: %w", err)
			}
		}

		if err := tx.Where("plan_id = ?", plan.ID).Delete(&model.EODUpdate{}).Error; err != nil {
			return fmt.Errorf("clear eod: %w", err)
		}
		if plan.EOD != nil {
			plan.EOD.ID = 0
			plan.EOD.PlanID = plan.ID
			if err := tx.Create(plan.EOD).Error; err != nil {
				return fmt.Errorf("save eod: %w", err)
			}
		}
		return nil
	})
}

// PlanFilter narrows List results for the dashboard read path. Zero
// values mean "any". VisibleOnly drops draft plans, which are hidden
// while the trainee is editing them.
type PlanFilter struct {
	OwnerID     uint
	TrainerID   uint // plans whose owner reports to this trainer
	Date        string
	Status      model.PlanStatus
	VisibleOnly bool
}

// List returns plans matching the filter, newest date first.
func (r *PlanRepository) List(ctx context.Context, f PlanFilter) ([]model.Plan, error) {
	q := r.db.WithContext(ctx).Model(&model.Plan{}).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Checkboxes").
		Preload("EOD")

	if f.OwnerID != 0 {
		q = q.Where("owner_id = ?", f.OwnerID)
	}
	if f.TrainerID != 0 {
		q = q.Where("owner_id IN (?)",
			r.db.Model(&model.User{}).Select("id").Where("trainer_id = ?", f.TrainerID))
	}
	if f.Date != "" {
		q = q.Where("date = ?", f.Date)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.VisibleOnly {
		q = q.Where("status <> ?", model.PlanDraft)
	}

	var plans []model.Plan
	if err := q.Order("date DESC, owner_id ASC").Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return plans, nil
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

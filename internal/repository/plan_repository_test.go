package repository

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"dayplan-tracker/internal/model"
	"dayplan-tracker/internal/planner"
)

// newTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections
// in the pool, which is required to exercise real concurrent access.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "plans_test.db") +
		"?_journal_mode=WAL&_busy_timeout=5000"
	db, err := NewDB(dsn)
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func testPlan(ownerID uint, date string) *model.Plan {
	return &model.Plan{
		OwnerID:   ownerID,
		Date:      date,
		Status:    model.PlanSubmitted,
		CreatedBy: model.RoleTrainee,
		Tasks: []model.Task{
			{TaskID: "t1", Position: 0, Title: "Write report", TimeAllocation: "9:05am-12:20pm", Status: model.TaskNotStarted},
			{TaskID: "t2", Position: 1, Title: "Pair session", TimeAllocation: "1:00pm-3:30pm", Status: model.TaskNotStarted},
		},
		Checkboxes: []model.Checkbox{
			{TaskID: "t1", CheckboxID: "c1", Label: "outline", Checked: true, TimeAllocation: "9:05am-9:30am"},
		},
	}
}

func TestPlanRepository_CreateAndLoad(t *testing.T) {
	repo := NewPlanRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testPlan(1, "2026-09-01")))

	plan, err := repo.Load(ctx, 1, "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, model.PlanSubmitted, plan.Status)
	assert.Equal(t, uint(1), plan.Version)
	require.Len(t, plan.Tasks, 2)
	assert.Equal(t, "Write report", plan.Tasks[0].Title)
	assert.Nil(t, plan.EOD)

	groups := plan.CheckboxGroups()
	require.Contains(t, groups, "t1")
	assert.Equal(t, "outline", groups["t1"]["c1"].Label)
}

func TestPlanRepository_LoadAbsent(t *testing.T) {
	repo := NewPlanRepository(newTestDB(t))

	_, err := repo.Load(context.Background(), 42, "2026-09-01")
	assert.ErrorIs(t, err, planner.ErrNotFound)
}

func TestPlanRepository_OnePlanPerOwnerAndDate(t *testing.T) {
	repo := NewPlanRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testPlan(1, "2026-09-01")))
	err := repo.Create(ctx, testPlan(1, "2026-09-01"))
	assert.ErrorIs(t, err, planner.ErrDuplicatePlan)

	// Different date and different owner are independent lifecycles.
	require.NoError(t, repo.Create(ctx, testPlan(1, "2026-09-02")))
	require.NoError(t, repo.Create(ctx, testPlan(2, "2026-09-01")))
}

func TestPlanRepository_SaveReplacesOwnedRows(t *testing.T) {
	repo := NewPlanRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testPlan(1, "2026-09-01")))
	plan, err := repo.Load(ctx, 1, "2026-09-01")
	require.NoError(t, err)

	plan.Status = model.PlanPendingReview
	plan.Tasks = []model.Task{
		{TaskID: "t1", Title: "Write report", TimeAllocation: "9:05am-12:20pm", Status: model.TaskCompleted},
	}
	plan.Checkboxes = nil
	plan.EOD = &model.EODUpdate{OverallRemarks: "done early", SubmittedAt: time.Now()}
	require.NoError(t, repo.Save(ctx, plan, 1))
	assert.Equal(t, uint(2), plan.Version)

	reloaded, err := repo.Load(ctx, 1, "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, model.PlanPendingReview, reloaded.Status)
	assert.Equal(t, uint(2), reloaded.Version)
	require.Len(t, reloaded.Tasks, 1)
	assert.Equal(t, model.TaskCompleted, reloaded.Tasks[0].Status)
	assert.Empty(t, reloaded.Checkboxes)
	require.NotNil(t, reloaded.EOD)
	assert.Equal(t, "done early", reloaded.EOD.OverallRemarks)
}

func TestPlanRepository_SaveStaleVersionConflicts(t *testing.T) {
	repo := NewPlanRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testPlan(1, "2026-09-01")))
	plan, err := repo.Load(ctx, 1, "2026-09-01")
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, plan, 1)) // now at version 2

	stale, err := repo.Load(ctx, 1, "2026-09-01")
	require.NoError(t, err)
	stale.Status = model.PlanCompleted
	err = repo.Save(ctx, stale, 1) // expected version is stale
	assert.ErrorIs(t, err, planner.ErrConflict)

	// The conflicting write must not have landed.
	reloaded, err := repo.Load(ctx, 1, "2026-09-01")
	require.NoError(t, err)
	assert.NotEqual(t, model.PlanCompleted, reloaded.Status)
	assert.Equal(t, uint(2), reloaded.Version)
}

// Two writers race with the same expected version: exactly one commits,
// the other gets ErrConflict.
func TestPlanRepository_ConcurrentSaves(t *testing.T) {
	repo := NewPlanRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testPlan(1, "2026-09-01")))

	const writers = 2
	results := make(chan error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(status model.PlanStatus) {
			defer wg.Done()
			plan, err := repo.Load(ctx, 1, "2026-09-01")
			if err != nil {
				results <- err
				return
			}
			plan.Status = status
			results <- repo.Save(ctx, plan, 1)
		}(model.PlanInProgress)
	}
	wg.Wait()
	close(results)

	var ok, conflicts int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, planner.ErrConflict):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactly one writer must win")
	assert.Equal(t, writers-1, conflicts)
}

func TestPlanRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlanRepository(db)
	users := NewUserRepository(db)
	ctx := context.Background()

	trainerID := uint(10)
	require.NoError(t, users.Create(ctx, &model.User{ID: trainerID, Name: "Dana", Email: "dana@example.com", Role: model.RoleTrainer}))
	require.NoError(t, users.Create(ctx, &model.User{ID: 1, Name: "Alex", Email: "alex@example.com", Role: model.RoleTrainee, TrainerID: &trainerID}))
	require.NoError(t, users.Create(ctx, &model.User{ID: 2, Name: "Sam", Email: "sam@example.com", Role: model.RoleTrainee}))

	require.NoError(t, repo.Create(ctx, testPlan(1, "2026-09-01")))
	require.NoError(t, repo.Create(ctx, testPlan(2, "2026-09-01")))

	hidden := testPlan(1, "2026-09-02")
	hidden.Status = model.PlanDraft
	require.NoError(t, repo.Create(ctx, hidden))

	byOwner, err := repo.List(ctx, PlanFilter{OwnerID: 1})
	require.NoError(t, err)
	assert.Len(t, byOwner, 2)

	byStatus, err := repo.List(ctx, PlanFilter{Status: model.PlanSubmitted})
	require.NoError(t, err)
	assert.Len(t, byStatus, 2)

	// Draft plans are under edit and invisible to trainers.
	visible, err := repo.List(ctx, PlanFilter{OwnerID: 1, VisibleOnly: true})
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "2026-09-01", visible[0].Date)

	// Trainer scope covers only assigned trainees.
	forTrainer, err := repo.List(ctx, PlanFilter{TrainerID: trainerID, VisibleOnly: true})
	require.NoError(t, err)
	require.Len(t, forTrainer, 1)
	assert.Equal(t, uint(1), forTrainer[0].OwnerID)
}

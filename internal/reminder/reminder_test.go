package reminder

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dayplan-tracker/internal/model"
	"dayplan-tracker/internal/notify"
	"dayplan-tracker/internal/repository"
)

type captureNotifier struct {
	events []notify.Event
}

func (c *captureNotifier) Notify(_ context.Context, ev notify.Event) error {
	c.events = append(c.events, ev)
	return nil
}

func TestReminder_NudgesOnlyOpenPlansWithoutEOD(t *testing.T) {
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "reminder_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	plans := repository.NewPlanRepository(db)
	ctx := context.Background()

	now := time.Date(2026, 9, 1, 18, 30, 0, 0, time.UTC)
	today := now.Format("2006-01-02")

	open := &model.Plan{
		OwnerID: 1, Date: today, Status: model.PlanInProgress, CreatedBy: model.RoleTrainee,
		Tasks: []model.Task{{TaskID: "t1", Title: "Write report", TimeAllocation: "9:05am-12:20pm"}},
	}
	require.NoError(t, plans.Create(ctx, open))

	reported := &model.Plan{
		OwnerID: 2, Date: today, Status: model.PlanInProgress, CreatedBy: model.RoleTrainee,
		Tasks: []model.Task{{TaskID: "t1", Title: "Pair session", TimeAllocation: "1:00pm-3:30pm"}},
		EOD:   &model.EODUpdate{SubmittedAt: now},
	}
	require.NoError(t, plans.Create(ctx, reported))

	notReady := &model.Plan{
		OwnerID: 3, Date: today, Status: model.PlanSubmitted, CreatedBy: model.RoleTrainee,
		Tasks: []model.Task{{TaskID: "t1", Title: "Demo prep", TimeAllocation: "2:00pm-4:00pm"}},
	}
	require.NoError(t, plans.Create(ctx, notReady))

	notifier := &captureNotifier{}
	require.NoError(t, New(plans, notifier).Run(ctx, now))

	require.Len(t, notifier.events, 1)
	assert.Equal(t, notify.KindEODReminder, notifier.events[0].Kind)
	assert.Equal(t, uint(1), notifier.events[0].RecipientID)
}

func TestBuildDailySpec(t *testing.T) {
	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{"18:30", "0 30 18 * * *", true},
		{"0:00", "0 0 0 * * *", true},
		{"23:59", "0 59 23 * * *", true},
		{"24:00", "", false},
		{"12:60", "", false},
		{"noon", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		spec, err := buildDailySpec(tc.input)
		if tc.ok {
			require.NoError(t, err, "input %q", tc.input)
			assert.Equal(t, tc.want, spec)
		} else {
			assert.Error(t, err, "input %q", tc.input)
		}
	}
}

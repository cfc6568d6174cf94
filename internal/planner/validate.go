package planner

import (
	"fmt"
	"strings"

	"dayplan-tracker/internal/model"
	"dayplan-tracker/internal/timerange"
)

// CheckboxInput is one sub-item of a task as authored by the trainee.
type CheckboxInput struct {
	CheckboxID     string
	Label          string
	Checked        bool
	TimeAllocation string
}

// TaskInput is one task of a plan as authored by the trainee. TaskID
// and CheckboxID may be blank on first authoring; the service generates
// stable identifiers for them.
type TaskInput struct {
	TaskID         string
	Title          string
	TimeAllocation string
	Description    string
	Checkboxes     []CheckboxInput
}

// ValidateContent checks a plan's authored content before it may be
// persisted. Problems are collected so the caller sees every offending
// field at once. Unchecked checkboxes may stay incomplete while
// drafting; checked ones must be fully filled in.
func ValidateContent(tasks []TaskInput) error {
	var problems []string

	if len(tasks) == 0 {
		problems = append(problems, "a plan needs at least one task")
	}

	for i, t := range tasks {
		name := strings.TrimSpace(t.Title)
		label := name
		if label == "" {
			label = fmt.Sprintf("task %d", i+1)
		}

		if name == "" {
			problems = append(problems, fmt.Sprintf("%s: title is required", label))
		}
		if !timerange.Valid(t.TimeAllocation) {
			problems = append(problems, fmt.Sprintf("%s: time allocation must look like %s", label, timerange.Example))
		}

		for j, cb := range t.Checkboxes {
			if !cb.Checked {
				continue
			}
			cbLabel := strings.TrimSpace(cb.Label)
			if cbLabel == "" {
				problems = append(problems, fmt.Sprintf("%s: checkbox %d needs a label", label, j+1))
				cbLabel = fmt.Sprintf("checkbox %d", j+1)
			}
			if !timerange.Valid(cb.TimeAllocation) {
				problems = append(problems, fmt.Sprintf("%s: %s needs a time allocation like %s", label, cbLabel, timerange.Example))
			}
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// EODEntry is one task's line in the end-of-day report.
type EODEntry struct {
	Status  model.TaskStatus
	Remarks string
}

// ValidateEOD checks the end-of-day report against the plan's current
// task set: every task needs a status from the report vocabulary, and
// in_progress or pending tasks must explain themselves in remarks.
// Failing task titles are gathered so the whole report can be corrected
// in one pass; any failure rejects the entire submission.
func ValidateEOD(tasks []model.Task, entries map[string]EODEntry) error {
	var problems []string

	for _, task := range tasks {
		entry, ok := entries[task.TaskID]
		if !ok || entry.Status == "" {
			problems = append(problems, fmt.Sprintf("%s: select a status", task.Title))
			continue
		}
		if !entry.Status.ValidEODStatus() {
			problems = append(problems, fmt.Sprintf("%s: %q is not a valid end-of-day status", task.Title, entry.Status))
			continue
		}
		if entry.Status.RequiresRemarks() && strings.TrimSpace(entry.Remarks) == "" {
			problems = append(problems, fmt.Sprintf("%s: remarks are required for in-progress and pending tasks", task.Title))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

package server

import (
	"time"

	"dayplan-tracker/internal/model"
	"dayplan-tracker/internal/planner"
)

type checkboxPayload struct {
	CheckboxID     string `json:"checkboxId,omitempty"`
	Label          string `json:"label"`
	Checked        bool   `json:"checked"`
	TimeAllocation string `json:"timeAllocation,omitempty"`
}

type taskPayload struct {
	TaskID         string            `json:"taskId,omitempty"`
	Title          string            `json:"title"`
	TimeAllocation string            `json:"timeAllocation"`
	Description    string            `json:"description,omitempty"`
	Checkboxes     []checkboxPayload `json:"checkboxes,omitempty"`
}

type submitRequest struct {
	Date  string        `json:"date"`
	Tasks []taskPayload `json:"tasks"`
}

type eodRequest struct {
	OverallRemarks string              `json:"overallRemarks"`
	Tasks          map[string]eodEntry `json:"tasks"` // keyed by taskId
}

type eodEntry struct {
	Status  string `json:"status"`
	Remarks string `json:"remarks"`
}

type reviewRequest struct {
	Decision string `json:"decision"`
	Comments string `json:"comments"`
}

type draftRequest struct {
	Payload string `json:"payload"`
}

type draftResponse struct {
	Date    string    `json:"date"`
	Payload string    `json:"payload"`
	SavedAt time.Time `json:"savedAt"`
}

type taskResponse struct {
	TaskID         string `json:"taskId"`
	Title          string `json:"title"`
	TimeAllocation string `json:"timeAllocation"`
	Description    string `json:"description,omitempty"`
	Status         string `json:"status"`
	Remarks        string `json:"remarks,omitempty"`
}

type checkboxResponse struct {
	Label          string `json:"label"`
	Checked        bool   `json:"checked"`
	TimeAllocation string `json:"timeAllocation,omitempty"`
}

type eodResponse struct {
	OverallRemarks string     `json:"overallRemarks,omitempty"`
	SubmittedAt    time.Time  `json:"submittedAt"`
	ReviewComments string     `json:"reviewComments,omitempty"`
	ReviewedBy     *uint      `json:"reviewedBy,omitempty"`
	ReviewedAt     *time.Time `json:"reviewedAt,omitempty"`
}

// planResponse is the read shape consumed by dashboards: the plan and
// task statuses plus the EOD record, with checkboxes grouped by owning
// task id and checkbox id.
type planResponse struct {
	ID          uint                                   `json:"id"`
	Owner       uint                                   `json:"owner"`
	Date        string                                 `json:"date"`
	Status      string                                 `json:"status"`
	CreatedBy   string                                 `json:"createdBy"`
	SubmittedAt *time.Time                             `json:"submittedAt,omitempty"`
	Version     uint                                   `json:"version"`
	Tasks       []taskResponse                         `json:"tasks"`
	Checkboxes  map[string]map[string]checkboxResponse `json:"checkboxes,omitempty"`
	EOD         *eodResponse                           `json:"eodUpdate,omitempty"`
}

type notificationResponse struct {
	ID        uint      `json:"id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	PlanID    uint      `json:"planId"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func toTaskInputs(tasks []taskPayload) []planner.TaskInput {
	out := make([]planner.TaskInput, 0, len(tasks))
	for _, t := range tasks {
		in := planner.TaskInput{
			TaskID:         t.TaskID,
			Title:          t.Title,
			TimeAllocation: t.TimeAllocation,
			Description:    t.Description,
		}
		for _, cb := range t.Checkboxes {
			in.Checkboxes = append(in.Checkboxes, planner.CheckboxInput{
				CheckboxID:     cb.CheckboxID,
				Label:          cb.Label,
				Checked:        cb.Checked,
				TimeAllocation: cb.TimeAllocation,
			})
		}
		out = append(out, in)
	}
	return out
}

func toPlanResponse(plan *model.Plan) planResponse {
	resp := planResponse{
		ID:          plan.ID,
		Owner:       plan.OwnerID,
		Date:        plan.Date,
		Status:      string(plan.Status),
		CreatedBy:   string(plan.CreatedBy),
		SubmittedAt: plan.SubmittedAt,
		Version:     plan.Version,
		Tasks:       make([]taskResponse, 0, len(plan.Tasks)),
	}

	for _, t := range plan.Tasks {
		resp.Tasks = append(resp.Tasks, taskResponse{
			TaskID:         t.TaskID,
			Title:          t.Title,
			TimeAllocation: t.TimeAllocation,
			Description:    t.Description,
			Status:         string(t.Status),
			Remarks:        t.Remarks,
		})
	}

	if groups := plan.CheckboxGroups(); len(groups) > 0 {
		resp.Checkboxes = make(map[string]map[string]checkboxResponse, len(groups))
		for taskID, group := range groups {
			boxes := make(map[string]checkboxResponse, len(group))
			for cbID, cb := range group {
				boxes[cbID] = checkboxResponse{
					Label:          cb.Label,
					Checked:        cb.Checked,
					TimeAllocation: cb.TimeAllocation,
				}
			}
			resp.Checkboxes[taskID] = boxes
		}
	}

	if plan.EOD != nil {
		resp.EOD = &eodResponse{
			OverallRemarks: plan.EOD.OverallRemarks,
			SubmittedAt:    plan.EOD.SubmittedAt,
			ReviewComments: plan.EOD.ReviewComments,
			ReviewedBy:     plan.EOD.ReviewedBy,
			ReviewedAt:     plan.EOD.ReviewedAt,
		}
	}

	return resp
}

func toNotificationResponses(notes []model.Notification) []notificationResponse {
	out := make([]notificationResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, notificationResponse{
			ID:        n.ID,
			Kind:      n.Kind,
			Message:   n.Message,
			PlanID:    n.PlanID,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}

package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"dayplan-tracker/internal/model"
	"dayplan-tracker/internal/planner"
	"dayplan-tracker/internal/repository"
	"dayplan-tracker/internal/service"
)

type handler struct {
	svc   *service.PlanService
	users *repository.UserRepository
	notes *repository.NotificationRepository
}

// actor resolves the calling user from the X-User-ID header. Real
// authentication sits in front of this service; the trusted header is
// the contract with it.
func (h *handler) actor(c echo.Context) (*model.User, error) {
	raw := c.Request().Header.Get("X-User-ID")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed X-User-ID header")
	}
	user, err := h.users.FindByID(c.Request().Context(), uint(id))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
	}
	return user, nil
}

func (h *handler) ownerParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("owner"), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "malformed owner id")
	}
	return uint(id), nil
}

func (h *handler) submit(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}

	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot parse request body")
	}

	plan, err := h.svc.SubmitPlan(c.Request().Context(), actor, req.Date, toTaskInputs(req.Tasks))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, toPlanResponse(plan))
}

// submitFor resubmits a rejected plan addressed by owner and date. Only
// the owner may do it; the service applies the same guards as a fresh
// submit.
func (h *handler) submitFor(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	owner, err := h.ownerParam(c)
	if err != nil {
		return err
	}
	if actor.ID != owner {
		return echo.NewHTTPError(http.StatusForbidden, "only the plan owner may resubmit it")
	}

	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot parse request body")
	}

	plan, err := h.svc.SubmitPlan(c.Request().Context(), actor, c.Param("date"), toTaskInputs(req.Tasks))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, toPlanResponse(plan))
}

func (h *handler) edit(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	owner, err := h.ownerParam(c)
	if err != nil {
		return err
	}
	if actor.ID != owner {
		return echo.NewHTTPError(http.StatusForbidden, "only the plan owner may edit it")
	}

	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot parse request body")
	}

	plan, err := h.svc.EditPlan(c.Request().Context(), actor, c.Param("date"), toTaskInputs(req.Tasks))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, toPlanResponse(plan))
}

func (h *handler) intake(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	owner, err := h.ownerParam(c)
	if err != nil {
		return err
	}

	// Body is optional: with tasks the trainer creates a plan directly
	// for the date, without it this is a plain intake of a submission.
	var req submitRequest
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "cannot parse request body")
		}
	}

	plan, err := h.svc.IntakePlan(c.Request().Context(), actor, owner, c.Param("date"), toTaskInputs(req.Tasks))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, toPlanResponse(plan))
}

func (h *handler) fileEOD(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	owner, err := h.ownerParam(c)
	if err != nil {
		return err
	}
	if actor.ID != owner {
		return echo.NewHTTPError(http.StatusForbidden, "only the plan owner may file its end-of-day update")
	}

	var req eodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot parse request body")
	}

	entries := make(map[string]planner.EODEntry, len(req.Tasks))
	for taskID, e := range req.Tasks {
		entries[taskID] = planner.EODEntry{
			Status:  model.TaskStatus(e.Status),
			Remarks: e.Remarks,
		}
	}

	plan, err := h.svc.FileEOD(c.Request().Context(), actor, c.Param("date"), entries, req.OverallRemarks)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, toPlanResponse(plan))
}

func (h *handler) review(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	owner, err := h.ownerParam(c)
	if err != nil {
		return err
	}

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot parse request body")
	}

	plan, err := h.svc.ReviewEOD(c.Request().Context(), actor, owner, c.Param("date"),
		service.ReviewDecision(req.Decision), req.Comments)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, toPlanResponse(plan))
}

func (h *handler) get(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	owner, err := h.ownerParam(c)
	if err != nil {
		return err
	}

	plan, err := h.svc.GetPlan(c.Request().Context(), actor, owner, c.Param("date"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, toPlanResponse(plan))
}

func (h *handler) list(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}

	plans, err := h.svc.ListPlans(c.Request().Context(), actor,
		c.QueryParam("date"), model.PlanStatus(c.QueryParam("status")))
	if err != nil {
		return writeErr(c, err)
	}

	out := make([]planResponse, 0, len(plans))
	for i := range plans {
		out = append(out, toPlanResponse(&plans[i]))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *handler) saveDraft(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	owner, err := h.ownerParam(c)
	if err != nil {
		return err
	}
	if actor.ID != owner {
		return echo.NewHTTPError(http.StatusForbidden, "drafts are private to their owner")
	}

	var req draftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot parse request body")
	}

	if err := h.svc.SaveDraft(c.Request().Context(), actor, c.Param("date"), req.Payload); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *handler) loadDraft(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	owner, err := h.ownerParam(c)
	if err != nil {
		return err
	}
	if actor.ID != owner {
		return echo.NewHTTPError(http.StatusForbidden, "drafts are private to their owner")
	}

	draft, err := h.svc.LoadDraft(c.Request().Context(), actor, c.Param("date"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, draftResponse{
		Date:    draft.Date,
		Payload: draft.Payload,
		SavedAt: draft.SavedAt,
	})
}

func (h *handler) discardDraft(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	owner, err := h.ownerParam(c)
	if err != nil {
		return err
	}
	if actor.ID != owner {
		return echo.NewHTTPError(http.StatusForbidden, "drafts are private to their owner")
	}

	if err := h.svc.DiscardDraft(c.Request().Context(), actor, c.Param("date")); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *handler) notifications(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}

	notes, err := h.notes.ListByRecipient(c.Request().Context(), actor.ID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, toNotificationResponses(notes))
}

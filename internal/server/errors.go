package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"dayplan-tracker/internal/planner"
)

// errorBody is the JSON error shape shared by every endpoint. Details
// carries the per-field validation problems so a client can surface all
// of them at once.
type errorBody struct {
	Reason  string   `json:"reason"`
	Details []string `json:"details,omitempty"`
}

// writeErr maps domain errors onto HTTP responses: validation failures
// are 422, protocol violations and write conflicts are 409, absent
// plans are 404. Anything else is an opaque 500.
func writeErr(c echo.Context, err error) error {
	var verr *planner.ValidationError
	var perr *planner.ProtocolViolation

	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusUnprocessableEntity, errorBody{
			Reason:  "validation failed",
			Details: verr.Problems,
		})
	case errors.As(err, &perr):
		return c.JSON(http.StatusConflict, errorBody{Reason: perr.Error()})
	case errors.Is(err, planner.ErrConflict):
		return c.JSON(http.StatusConflict, errorBody{
			Reason: "plan was modified concurrently, reload and retry",
		})
	case errors.Is(err, planner.ErrDuplicatePlan):
		return c.JSON(http.StatusConflict, errorBody{Reason: err.Error()})
	case errors.Is(err, planner.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorBody{Reason: "no plan for that owner and date"})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorBody{Reason: "internal error"})
	}
}

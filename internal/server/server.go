// Package server exposes the day-plan lifecycle over HTTP. It is a thin
// shell: request decoding, actor resolution, and error mapping; every
// rule lives in the planner and service layers.
package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"dayplan-tracker/internal/repository"
	"dayplan-tracker/internal/service"
)

// New builds the echo router with all routes mounted.
func New(svc *service.PlanService, users *repository.UserRepository, notes *repository.NotificationRepository) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	h := &handler{svc: svc, users: users, notes: notes}

	api := e.Group("/api")
	api.POST("/dayplans", h.submit)
	api.GET("/dayplans", h.list)
	api.GET("/dayplans/:owner/:date", h.get)
	api.PUT("/dayplans/:owner/:date", h.edit)
	api.POST("/dayplans/:owner/:date/resubmit", h.submitFor)
	api.POST("/dayplans/:owner/:date/intake", h.intake)
	api.POST("/dayplans/:owner/:date/eod", h.fileEOD)
	api.POST("/dayplans/:owner/:date/review", h.review)
	api.PUT("/dayplans/:owner/:date/draft", h.saveDraft)
	api.GET("/dayplans/:owner/:date/draft", h.loadDraft)
	api.DELETE("/dayplans/:owner/:date/draft", h.discardDraft)
	api.GET("/notifications", h.notifications)

	return e
}

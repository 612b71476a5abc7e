package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kayan2004/dracofit-backend/internal/model"
	"github.com/kayan2004/dracofit-backend/internal/service"
)

// ScheduleHandler exposes the weekly schedule.
type ScheduleHandler struct {
	Schedules *service.ScheduleService
}

func NewScheduleHandler(s *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{Schedules: s}
}

type updateEntryReq struct {
	WorkoutPlanID *uint64 `json:"workout_plan_id"` // null clears the day to rest
	PreferredTime *string `json:"preferred_time"`
	Notes         *string `json:"notes"`
}
type renameScheduleReq struct {
	Name string `json:"name"`
}

// Get returns the base schedule, created lazily on first access.
func (h *ScheduleHandler) Get(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return errUnauthorized(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Schedules.Get(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load schedule failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// Week returns the effective week: base entries with this week's
// temporary reschedules merged in.
func (h *ScheduleHandler) Week(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return errUnauthorized(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	view, err := h.Schedules.WeekView(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load week failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"days": view})
}

// UpdateEntry edits one weekday of the base schedule.
func (h *ScheduleHandler) UpdateEntry(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return errUnauthorized(c)
	}
	day := model.WeekDay(strings.ToLower(c.Param("day")))
	if !day.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid day of week"})
	}
	var req updateEntryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Schedules.UpdateEntry(ctx, uid, day, req.WorkoutPlanID, req.PreferredTime, req.Notes)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update entry failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// SetRest clears one weekday back to a rest day.
func (h *ScheduleHandler) SetRest(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return errUnauthorized(c)
	}
	day := model.WeekDay(strings.ToLower(c.Param("day")))
	if !day.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid day of week"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Schedules.UpdateEntry(ctx, uid, day, nil, nil, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update entry failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// Reset clears every day back to rest.
func (h *ScheduleHandler) Reset(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return errUnauthorized(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Schedules.Reset(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reset failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// Rename sets the schedule's display name.
func (h *ScheduleHandler) Rename(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return errUnauthorized(c)
	}
	var req renameScheduleReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Schedules.Rename(ctx, uid, strings.TrimSpace(req.Name))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "rename failed"})
	}
	return c.JSON(http.StatusOK, s)
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kayan2004/dracofit-backend/internal/clock"
	"github.com/kayan2004/dracofit-backend/internal/model"
	"github.com/kayan2004/dracofit-backend/internal/repository"
	"github.com/kayan2004/dracofit-backend/internal/service"
)

// WorkoutLogHandler records workout sessions. Finishing a session is
// what feeds the pet: it awards XP and credits the streak.
type WorkoutLogHandler struct {
	Logs    *repository.WorkoutLogRepo
	Plans   *repository.WorkoutPlanRepo
	Streaks *service.StreakService
	Pets    *service.PetService
	Clock   clock.Clock
	Log     *zap.SugaredLogger
}

func NewWorkoutLogHandler(logs *repository.WorkoutLogRepo, plans *repository.WorkoutPlanRepo, streaks *service.StreakService, pets *service.PetService, clk clock.Clock, log *zap.SugaredLogger) *WorkoutLogHandler {
	return &WorkoutLogHandler{Logs: logs, Plans: plans, Streaks: streaks, Pets: pets, Clock: clk, Log: log}
}

type startLogReq struct {
	WorkoutPlanID uint64 `json:"workout_plan_id"`
}

// Start opens a workout session against one of the user's plans. Only
// one session per plan may be open at a time.
func (h *WorkoutLogHandler) Start(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return errUnauthorized(c)
	}
	var req startLogReq
	if err := c.Bind(&req); err != nil || req.WorkoutPlanID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "workout_plan_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Plans.GetByID(ctx, req.WorkoutPlanID, uid); err != nil {
		if errors.Is(err, repository.ErrPlanNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "plan not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load plan failed"})
	}
	if _, err := h.Logs.FindOpen(ctx, uid, req.WorkoutPlanID); err == nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "session already in progress"})
	} else if !errors.Is(err, repository.ErrLogNotFound) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "check open session failed"})
	}
	// One completed session per plan per calendar day.
	dayStart := h.Clock.Today()
	done, err := h.Logs.CompletedInRange(ctx, uid, dayStart, dayStart.AddDate(0, 0, 1), req.WorkoutPlanID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "check completed session failed"})
	}
	if len(done) > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "plan already completed today"})
	}

	l := model.WorkoutLog{
		UserID:        uid,
		WorkoutPlanID: req.WorkoutPlanID,
		StartTime:     h.Clock.Now(),
	}
	if err := h.Logs.Create(ctx, &l); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "start session failed"})
	}
	return c.JSON(http.StatusCreated, l)
}

// Finish closes an open session, awards plan XP and credits the
// streak. A pet update failure does not fail the request: the session
// itself is already persisted, so the error is only logged.
func (h *WorkoutLogHandler) Finish(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return errUnauthorized(c)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid log id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l, err := h.Logs.GetByID(ctx, id, uid)
	if err != nil {
		if errors.Is(err, repository.ErrLogNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "log not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load log failed"})
	}
	if l.Completed() {
		return c.JSON(http.StatusConflict, echo.Map{"error": "session already finished"})
	}

	plan, err := h.Plans.GetByID(ctx, l.WorkoutPlanID, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load plan failed"})
	}
	xp := plan.CompletionXP()
	end := h.Clock.Now()

	if err := h.Logs.Finish(ctx, id, end, xp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "finish session failed"})
	}
	l.EndTime = &end
	l.XPEarned = xp

	if _, err := h.Streaks.RecordWorkoutCompletion(ctx, uid); err != nil {
		h.Log.Errorw("workout finished but streak update failed", "user_id", uid, "log_id", id, "error", err)
	}
	pet, err := h.Pets.AddXP(ctx, uid, xp)
	if err != nil {
		h.Log.Errorw("workout finished but xp grant failed", "user_id", uid, "log_id", id, "error", err)
		return c.JSON(http.StatusOK, echo.Map{"log": l})
	}
	return c.JSON(http.StatusOK, echo.Map{"log": l, "pet": pet})
}

// List returns the user's workout history, newest first. With both
// `from` and `to` date params (YYYY-MM-DD) only completed sessions in
// that range are returned.
func (h *WorkoutLogHandler) List(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return errUnauthorized(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	from, to := c.QueryParam("from"), c.QueryParam("to")
	if from != "" && to != "" {
		start, err1 := time.Parse("2006-01-02", from)
		end, err2 := time.Parse("2006-01-02", to)
		if err1 != nil || err2 != nil || end.Before(start) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "from/to must be YYYY-MM-DD"})
		}
		logs, err := h.Logs.CompletedInRange(ctx, uid, start, end.AddDate(0, 0, 1), 0)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list logs failed"})
		}
		return c.JSON(http.StatusOK, echo.Map{"logs": logs})
	}

	logs, err := h.Logs.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list logs failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"logs": logs})
}

func (h *WorkoutLogHandler) Get(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return errUnauthorized(c)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid log id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l, err := h.Logs.GetByID(ctx, id, uid)
	if err != nil {
		if errors.Is(err, repository.ErrLogNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "log not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load log failed"})
	}
	return c.JSON(http.StatusOK, l)
}

// Delete removes a log. Streak and XP already granted are not clawed
// back.
func (h *WorkoutLogHandler) Delete(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return errUnauthorized(c)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid log id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Logs.Delete(ctx, id, uid); err != nil {
		if errors.Is(err, repository.ErrLogNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "log not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete log failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

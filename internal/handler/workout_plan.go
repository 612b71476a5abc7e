package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kayan2004/dracofit-backend/internal/model"
	"github.com/kayan2004/dracofit-backend/internal/repository"
)

// WorkoutPlanHandler exposes CRUD over the user's workout plans.
type WorkoutPlanHandler struct {
	Plans *repository.WorkoutPlanRepo
}

func NewWorkoutPlanHandler(p *repository.WorkoutPlanRepo) *WorkoutPlanHandler {
	return &WorkoutPlanHandler{Plans: p}
}

type planReq struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Type            string `json:"type"`
	DurationMinutes int    `json:"duration_minutes"`
	ExerciseCount   int    `json:"exercise_count"`
}

func (r *planReq) validate() (model.WorkoutPlan, string) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return model.WorkoutPlan{}, "name required"
	}
	t := model.WorkoutPlanType(strings.ToLower(strings.TrimSpace(r.Type)))
	if !model.ValidPlanType(t) {
		return model.WorkoutPlan{}, "invalid plan type"
	}
	if r.DurationMinutes < 0 || r.ExerciseCount < 0 {
		return model.WorkoutPlan{}, "duration and exercise count must be non-negative"
	}
	return model.WorkoutPlan{
		Name:            name,
		Description:     strings.TrimSpace(r.Description),
		Type:            t,
		DurationMinutes: r.DurationMinutes,
		ExerciseCount:   r.ExerciseCount,
	}, ""
}

func (h *WorkoutPlanHandler) Create(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return errUnauthorized(c)
	}
	var req planReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	plan, msg := req.validate()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	plan.UserID = uid

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Plans.Create(ctx, &plan); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create plan failed"})
	}
	return c.JSON(http.StatusCreated, plan)
}

func (h *WorkoutPlanHandler) List(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return errUnauthorized(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	plans, err := h.Plans.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list plans failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"plans": plans})
}

func (h *WorkoutPlanHandler) Get(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return errUnauthorized(c)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid plan id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	plan, err := h.Plans.GetByID(ctx, id, uid)
	if err != nil {
		if errors.Is(err, repository.ErrPlanNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "plan not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load plan failed"})
	}
	return c.JSON(http.StatusOK, plan)
}

func (h *WorkoutPlanHandler) Update(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return errUnauthorized(c)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid plan id"})
	}
	var req planReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	plan, msg := req.validate()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	plan.ID = id
	plan.UserID = uid

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Plans.Update(ctx, &plan); err != nil {
		if errors.Is(err, repository.ErrPlanNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "plan not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update plan failed"})
	}
	return c.JSON(http.StatusOK, plan)
}

func (h *WorkoutPlanHandler) Delete(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return errUnauthorized(c)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid plan id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Plans.Delete(ctx, id, uid); err != nil {
		if errors.Is(err, repository.ErrPlanNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "plan not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete plan failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

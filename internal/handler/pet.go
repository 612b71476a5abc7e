package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kayan2004/dracofit-backend/internal/repository"
	"github.com/kayan2004/dracofit-backend/internal/service"
)

// PetHandler exposes the user's pet.
type PetHandler struct {
	Pets *service.PetService
}

func NewPetHandler(pets *service.PetService) *PetHandler {
	return &PetHandler{Pets: pets}
}

type createPetReq struct {
	Name string `json:"name"`
}
type renamePetReq struct {
	Name string `json:"name"`
}
type setHealthReq struct {
	HealthPoints int `json:"health_points"`
}
type addXPReq struct {
	Amount int `json:"amount"`
}

// Get returns the authenticated user's pet.
func (h *PetHandler) Get(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return errUnauthorized(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pet, err := h.Pets.FindByUser(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrPetNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "pet not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load pet failed"})
	}
	return c.JSON(http.StatusOK, pet)
}

// Create makes the user's pet explicitly. Normally the queue consumer
// does this on signup; the endpoint covers users whose event was lost
// before the outbox existed.
func (h *PetHandler) Create(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return errUnauthorized(c)
	}
	var req createPetReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		req.Name = "Draco"
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pet, err := h.Pets.Create(ctx, uid, req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrPetExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "pet already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create pet failed"})
	}
	return c.JSON(http.StatusCreated, pet)
}

// Rename updates the pet's display name.
func (h *PetHandler) Rename(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return errUnauthorized(c)
	}
	var req renamePetReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pet, err := h.Pets.Rename(ctx, uid, strings.TrimSpace(req.Name))
	if err != nil {
		if errors.Is(err, repository.ErrPetNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "pet not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "rename failed"})
	}
	return c.JSON(http.StatusOK, pet)
}

// AddXP grants the pet experience directly, for clients rewarding
// activity outside logged workouts.
func (h *PetHandler) AddXP(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return errUnauthorized(c)
	}
	var req addXPReq
	if err := c.Bind(&req); err != nil || req.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be positive"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pet, err := h.Pets.AddXP(ctx, uid, req.Amount)
	if err != nil {
		if errors.Is(err, repository.ErrPetNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "pet not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add xp failed"})
	}
	return c.JSON(http.StatusOK, pet)
}

// Resurrect revives a dead pet at half health.
func (h *PetHandler) Resurrect(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return errUnauthorized(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pet, err := h.Pets.Resurrect(ctx, uid)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPetNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "pet not found"})
		case errors.Is(err, repository.ErrPetNotDead):
			return c.JSON(http.StatusConflict, echo.Map{"error": "pet is not dead"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "resurrect failed"})
	}
	return c.JSON(http.StatusOK, pet)
}

// RestartJourney wipes the pet back to a level-one baby, keeping the
// name.
func (h *PetHandler) RestartJourney(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return errUnauthorized(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pet, err := h.Pets.RestartJourney(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrPetNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "pet not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "restart failed"})
	}
	return c.JSON(http.StatusOK, pet)
}

// SetHealth force-sets the pet's health. Admin-only.
func (h *PetHandler) SetHealth(c echo.Context) error {
	uid, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req setHealthReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pet, err := h.Pets.SetHealth(ctx, uid, req.HealthPoints)
	if err != nil {
		if errors.Is(err, repository.ErrPetNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "pet not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, pet)
}

package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kayan2004/dracofit-backend/internal/clock"
	"github.com/kayan2004/dracofit-backend/internal/service"
)

// DebugHandler exposes the fake clock and manual job triggers used to
// exercise the date-sensitive logic in dev and test environments. The
// router only mounts it outside prod, behind the ADMIN role.
type DebugHandler struct {
	Clock       *clock.Fake
	Pets        *service.PetService
	Reschedules *service.RescheduleService
}

func NewDebugHandler(clk *clock.Fake, pets *service.PetService, reschedules *service.RescheduleService) *DebugHandler {
	return &DebugHandler{Clock: clk, Pets: pets, Reschedules: reschedules}
}

type setClockReq struct {
	Time string `json:"time"` // RFC 3339
}
type advanceClockReq struct {
	Days int `json:"days"`
}

// GetClock reports the clock the engine currently runs on.
func (h *DebugHandler) GetClock(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"now":   h.Clock.Now(),
		"today": h.Clock.Today(),
	})
}

// SetClock pins the fake clock to an absolute time.
func (h *DebugHandler) SetClock(c echo.Context) error {
	var req setClockReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	t, err := time.Parse(time.RFC3339, req.Time)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "time must be RFC 3339"})
	}
	h.Clock.Set(t)
	return c.JSON(http.StatusOK, echo.Map{"now": h.Clock.Now()})
}

// AdvanceClock moves the fake clock forward (or back) whole days.
func (h *DebugHandler) AdvanceClock(c echo.Context) error {
	var req advanceClockReq
	if err := c.Bind(&req); err != nil || req.Days == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "days required"})
	}
	h.Clock.AdvanceDays(req.Days)
	return c.JSON(http.StatusOK, echo.Map{"now": h.Clock.Now()})
}

// ResetClock returns to real time.
func (h *DebugHandler) ResetClock(c echo.Context) error {
	h.Clock.Reset()
	return c.JSON(http.StatusOK, echo.Map{"now": h.Clock.Now()})
}

// RunDecay triggers the daily health decay sweep immediately.
func (h *DebugHandler) RunDecay(c echo.Context) error {
	h.Pets.ApplyDailyHealthDecayToAllActivePets(c.Request().Context())
	return c.JSON(http.StatusOK, echo.Map{"ran": "decay"})
}

// RunReschedule triggers the skipped-workout scan immediately.
func (h *DebugHandler) RunReschedule(c echo.Context) error {
	h.Reschedules.CheckSkippedWorkouts(c.Request().Context())
	return c.JSON(http.StatusOK, echo.Map{"ran": "reschedule"})
}

// RunCleanup triggers the weekly reschedule cleanup immediately.
func (h *DebugHandler) RunCleanup(c echo.Context) error {
	h.Reschedules.CleanupOldReschedules(c.Request().Context())
	return c.JSON(http.StatusOK, echo.Map{"ran": "cleanup"})
}

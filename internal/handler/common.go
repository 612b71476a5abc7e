package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentUserID reads the authenticated user's id injected by the JWT
// middleware. JSON numbers decode as float64, so both forms are
// accepted.
func currentUserID(c echo.Context) (uint64, bool) {
	switch v := c.Get("user_id").(type) {
	case float64:
		if v > 0 {
			return uint64(v), true
		}
	case uint64:
		return v, true
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// errUnauthorized writes the standard 401 body.
func errUnauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

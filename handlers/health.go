package handlers

import (
	"net/http"

	"attorney_directory_go/db"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports whether the attorney document is reachable
func HealthHandler(c echo.Context) error {
	if db.Attorneys == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "starting"})
	}
	exists, err := db.Attorneys.Exists(c.Request().Context())
	if err != nil || !exists {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "storage unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

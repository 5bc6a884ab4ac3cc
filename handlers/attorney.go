package handlers

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"attorney_directory_go/db"
	"attorney_directory_go/middleware"
	"attorney_directory_go/models"
	"attorney_directory_go/services"
	"attorney_directory_go/services/i18n"
	"attorney_directory_go/templates/pages"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RegisterAttorneyRoutes mounts the attorney API on e. writeMiddleware is
// applied to the mutating verbs only.
func RegisterAttorneyRoutes(e *echo.Echo, writeMiddleware ...echo.MiddlewareFunc) {
	// The collection answers on both the bare and the /api path
	for _, path := range []string{"/attorneys", "/api/attorneys"} {
		e.GET(path, ListAttorneysHandler)
		e.POST(path, CreateAttorneyHandler, writeMiddleware...)
		e.PUT(path, UpdateAttorneyHandler, writeMiddleware...)
		e.DELETE(path, DeleteAttorneyHandler, writeMiddleware...)
	}

	e.GET("/api/attorneys/export", ExportAttorneysHandler)
	e.GET("/api/attorneys/:id/dashboard", AttorneyDashboardHandler)

	e.GET("/api/specialties", ListSpecialtiesHandler)
	e.GET("/api/language", GetLanguageHandler)
	e.POST("/api/language", SetLanguageHandler)
}

// ListAttorneysHandler returns the whole collection in stored order
func ListAttorneysHandler(c echo.Context) error {
	attorneys, err := services.ListAttorneys(c.Request().Context(), db.Attorneys)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, attorneys)
}

// CreateAttorneyHandler appends a new record and returns it with its id
func CreateAttorneyHandler(c echo.Context) error {
	var in models.AttorneyInput
	if err := c.Bind(&in); err != nil {
		return &services.ValidationError{MessageKey: services.MsgInvalidBody}
	}

	attorney, err := services.CreateAttorney(c.Request().Context(), db.Attorneys, in)
	if err != nil {
		return err
	}

	services.LogAuditEvent(log.Logger, middleware.GetAuditContext(c), services.AuditActionCreate,
		attorney.ID, attorney.FullName(), nil, attorney)
	return c.JSON(http.StatusCreated, attorney)
}

// UpdateAttorneyHandler replaces the record carrying the body's id
func UpdateAttorneyHandler(c echo.Context) error {
	var update models.AttorneyUpdate
	if err := c.Bind(&update); err != nil {
		return &services.ValidationError{MessageKey: services.MsgInvalidBody}
	}

	attorney, err := services.UpdateAttorney(c.Request().Context(), db.Attorneys, update)
	if err != nil {
		return err
	}

	services.LogAuditEvent(log.Logger, middleware.GetAuditContext(c), services.AuditActionUpdate,
		attorney.ID, attorney.FullName(), nil, attorney)
	return c.JSON(http.StatusOK, attorney)
}

// DeleteAttorneyHandler removes the record named by the id query parameter
func DeleteAttorneyHandler(c echo.Context) error {
	raw := c.QueryParam("id")
	if raw == "" {
		return &services.ValidationError{MessageKey: services.MsgIDRequired, Fields: []string{"id"}}
	}
	id, ok := parseRecordID(raw)
	if !ok {
		return &services.ValidationError{MessageKey: services.MsgInvalidID, Fields: []string{"id"}}
	}

	ctx := c.Request().Context()
	if err := services.DeleteAttorney(ctx, db.Attorneys, id); err != nil {
		return err
	}

	services.LogAuditEvent(log.Logger, middleware.GetAuditContext(c), services.AuditActionDelete, id, "", nil, nil)
	return c.JSON(http.StatusOK, map[string]string{
		"message": i18n.T(ctx, "attorneys.deleted", map[string]interface{}{"id": id}),
	})
}

// parseRecordID accepts an id with surrounding spaces or written as a whole
// decimal ("12.0"), the way form and query values often arrive.
func parseRecordID(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return id, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, false
	}
	return int64(f), true
}

// AttorneyDashboardHandler returns the detail view of one attorney
func AttorneyDashboardHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return &services.ValidationError{MessageKey: services.MsgInvalidID, Fields: []string{"id"}}
	}

	ctx := c.Request().Context()
	attorney, err := services.GetAttorney(ctx, db.Attorneys, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pages.NewAttorneyDetail(ctx, attorney))
}

// ExportAttorneysHandler downloads the roster as an Excel workbook
func ExportAttorneysHandler(c echo.Context) error {
	ctx := c.Request().Context()
	attorneys, err := services.ListAttorneys(ctx, db.Attorneys)
	if err != nil {
		return err
	}

	buf, err := services.GenerateRosterWorkbook(ctx, attorneys)
	if err != nil {
		return fmt.Errorf("failed to export attorneys: %w", err)
	}

	c.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=attorneys_%s.xlsx", time.Now().Format("2006-01-02")))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

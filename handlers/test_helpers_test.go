package handlers

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"attorney_directory_go/config"
	"attorney_directory_go/db"
	"attorney_directory_go/middleware"
	"attorney_directory_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// setupAttorneyDocument points the global document at an empty array in a
// temp dir and restores the previous one after the test.
func setupAttorneyDocument(t *testing.T) *db.AttorneyFile {
	t.Helper()

	previous := db.Attorneys
	t.Cleanup(func() { db.Attorneys = previous })

	file := db.NewAttorneyFile(services.NewLocalStorage(t.TempDir()), "attorneys.json")
	require.NoError(t, services.EnsureAttorneyFile(context.Background(), file, false))
	db.Attorneys = file
	return file
}

// newTestServer builds an echo instance wired the way the server wires it
func newTestServer() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler
	e.Use(middleware.RequestID())
	e.Use(middleware.Locale(&config.Config{Environment: "development"}))
	e.Use(middleware.AuditContext())
	RegisterAttorneyRoutes(e)
	e.GET("/healthz", HealthHandler)
	return e
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	c.Set("config", &config.Config{
		Environment: "development",
	})

	return e, c, rec
}

package middleware

import (
	"attorney_directory_go/services"

	"github.com/labstack/echo/v4"
)

const ContextKeyAuditContext = "audit_context"

// AuditContext is middleware that collects request info for audit logging.
// It runs after RequestID and Locale so both are available.
func AuditContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := services.AuditContext{
				RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
				IPAddress: c.RealIP(),
				UserAgent: c.Request().UserAgent(),
				Language:  GetLocale(c),
			}

			c.Set(ContextKeyAuditContext, ctx)
			return next(c)
		}
	}
}

// GetAuditContext retrieves the audit context from the request
func GetAuditContext(c echo.Context) services.AuditContext {
	if ctx, ok := c.Get(ContextKeyAuditContext).(services.AuditContext); ok {
		return ctx
	}
	return services.AuditContext{IPAddress: c.RealIP()}
}

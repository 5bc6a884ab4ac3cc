package services

import (
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog"
)

// AuditAction names a change made to the attorney collection
type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

// AuditContext contains contextual information for audit logging
type AuditContext struct {
	RequestID string
	IPAddress string
	UserAgent string
	Language  string
}

// LogAuditEvent writes one audit line for a change to an attorney record.
// oldValues and newValues are marshalled as JSON when present.
func LogAuditEvent(
	logger zerolog.Logger,
	ctx AuditContext,
	action AuditAction,
	attorneyID int64,
	attorneyName string,
	oldValues interface{},
	newValues interface{},
) {
	event := logger.Info().
		Bool("audit", true).
		Str("action", string(action)).
		Str("resource_type", "attorney").
		Str("resource_id", strconv.FormatInt(attorneyID, 10)).
		Str("ip_address", ctx.IPAddress).
		Str("user_agent", ctx.UserAgent)

	if attorneyName != "" {
		event = event.Str("resource_name", attorneyName)
	}
	if ctx.RequestID != "" {
		event = event.Str("request_id", ctx.RequestID)
	}
	if ctx.Language != "" {
		event = event.Str("language", ctx.Language)
	}
	if oldValues != nil {
		if b, err := json.Marshal(oldValues); err == nil {
			event = event.RawJSON("old_values", b)
		}
	}
	if newValues != nil {
		if b, err := json.Marshal(newValues); err == nil {
			event = event.RawJSON("new_values", b)
		}
	}

	event.Msg("Attorney " + string(action))
}

package services

import (
	"bytes"
	"encoding/json"
	"testing"

	"attorney_directory_go/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogAuditEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	ctx := AuditContext{RequestID: "req-1", IPAddress: "192.0.2.1", UserAgent: "test", Language: "fr"}
	jane := models.Attorney{ID: 42, FirstName: "Jane", LastName: "Doe"}

	LogAuditEvent(logger, ctx, AuditActionCreate, jane.ID, jane.FullName(), nil, jane)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, true, entry["audit"])
	assert.Equal(t, "create", entry["action"])
	assert.Equal(t, "42", entry["resource_id"])
	assert.Equal(t, "Jane Doe", entry["resource_name"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "fr", entry["language"])
	assert.NotContains(t, entry, "old_values")

	newValues, ok := entry["new_values"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Jane", newValues["firstName"])
}

func TestLogAuditEventMinimal(t *testing.T) {
	var buf bytes.Buffer
	LogAuditEvent(zerolog.New(&buf), AuditContext{}, AuditActionDelete, 7, "", nil, nil)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "delete", entry["action"])
	assert.Equal(t, "Attorney delete", entry["message"])
	assert.NotContains(t, entry, "request_id")
	assert.NotContains(t, entry, "resource_name")
}

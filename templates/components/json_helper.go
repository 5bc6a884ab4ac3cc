package components

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// JSON marshals an object to an indented JSON string, returning "{}" on error
func JSON(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal JSON")
		return "{}"
	}
	return string(b)
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"attorney_directory_go/services"
	"attorney_directory_go/services/i18n"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the body of every failed API call
type ErrorResponse struct {
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// HTTPErrorHandler renders errors returned by handlers as {"message": ...}
// with a status derived from the error type.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	ctx := c.Request().Context()
	code := http.StatusInternalServerError
	resp := ErrorResponse{}

	var validationErr *services.ValidationError
	var storageErr *services.StorageError
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &validationErr):
		code = http.StatusBadRequest
		resp.Message = i18n.T(ctx, validationErr.MessageKey)
		resp.Fields = validationErr.Fields
	case errors.Is(err, services.ErrAttorneyNotFound):
		code = http.StatusNotFound
		resp.Message = i18n.T(ctx, services.MsgNotFound)
	case errors.As(err, &storageErr):
		log.Error().Err(err).Str("op", storageErr.Op).Str("key", storageErr.Key).Msg("Attorney storage failure")
		resp.Message = i18n.T(ctx, services.MsgStorage)
	case errors.As(err, &httpErr):
		code = httpErr.Code
		if code == http.StatusMethodNotAllowed {
			resp.Message = i18n.T(ctx, services.MsgMethodNotAllowed)
		} else {
			resp.Message = fmt.Sprint(httpErr.Message)
		}
	default:
		log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("Unhandled error")
		resp.Message = http.StatusText(code)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, resp)
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to write error response")
	}
}

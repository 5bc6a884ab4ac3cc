package handlers

import (
	"net/http"

	"attorney_directory_go/middleware"
	"attorney_directory_go/services"
	"attorney_directory_go/services/i18n"

	"github.com/labstack/echo/v4"
)

// LanguageResponse reports the active language and the available ones
type LanguageResponse struct {
	Language  string   `json:"language"`
	Supported []string `json:"supported"`
}

// GetLanguageHandler returns the language chosen for this request
func GetLanguageHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, LanguageResponse{
		Language:  middleware.GetLocale(c),
		Supported: i18n.Languages(),
	})
}

// SetLanguageHandler persists the language choice in the lang cookie
func SetLanguageHandler(c echo.Context) error {
	var body struct {
		Language string `json:"language" form:"language"`
	}
	if err := c.Bind(&body); err != nil {
		return &services.ValidationError{MessageKey: services.MsgInvalidBody}
	}
	if !i18n.IsSupported(body.Language) {
		return &services.ValidationError{MessageKey: "errors.unsupported_language", Fields: []string{"language"}}
	}

	middleware.SetLanguageCookie(c, body.Language)
	return c.JSON(http.StatusOK, LanguageResponse{
		Language:  body.Language,
		Supported: i18n.Languages(),
	})
}

package middleware

import (
	"net/http"
	"time"

	"attorney_directory_go/config"
	"attorney_directory_go/services/i18n"

	"github.com/labstack/echo/v4"
)

// LangCookie stores the chosen interface language
const LangCookie = "lang"

// Locale middleware handles language detection and persistence.
// Priority:
// 1. Query param "lang" (sets cookie)
// 2. Cookie "lang"
// 3. Accept-Language header
// 4. Default ("en")
func Locale(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)

			lang := c.QueryParam("lang")
			if lang != "" {
				if !i18n.IsSupported(lang) {
					lang = i18n.DefaultLanguage
				}
				SetLanguageCookie(c, lang)
			} else if cookie, err := c.Cookie(LangCookie); err == nil && i18n.IsSupported(cookie.Value) {
				lang = cookie.Value
			}

			if lang == "" {
				lang = i18n.Match(c.Request().Header.Get("Accept-Language"))
			}

			c.Set("locale", lang)
			c.SetRequest(c.Request().WithContext(i18n.WithLocale(c.Request().Context(), lang)))

			return next(c)
		}
	}
}

// SetLanguageCookie sets the language cookie
func SetLanguageCookie(c echo.Context, lang string) {
	cfg, ok := c.Get("config").(*config.Config)

	cookie := new(http.Cookie)
	cookie.Name = LangCookie
	cookie.Value = lang
	cookie.Expires = time.Now().Add(24 * 365 * time.Hour) // 1 year
	cookie.Path = "/"
	cookie.HttpOnly = true
	cookie.SameSite = http.SameSiteLaxMode

	if ok && cfg.Environment == "production" {
		cookie.Secure = true
	}

	c.SetCookie(cookie)
}

// GetLocale returns the current locale from context
func GetLocale(c echo.Context) string {
	if lang, ok := c.Get("locale").(string); ok {
		return lang
	}
	return i18n.DefaultLanguage
}

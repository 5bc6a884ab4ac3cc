package handlers

import (
	"net/http"

	"attorney_directory_go/models"
	"attorney_directory_go/services"

	"github.com/labstack/echo/v4"
)

// SpecialtyOption is one entry of the specialty picker
type SpecialtyOption struct {
	Key   string                `json:"key"`
	Label string                `json:"label"`
	Style models.SpecialtyStyle `json:"style"`
}

// ListSpecialtiesHandler returns the catalogue with translated labels
func ListSpecialtiesHandler(c echo.Context) error {
	ctx := c.Request().Context()
	catalogue := models.Specialties()

	options := make([]SpecialtyOption, 0, len(catalogue))
	for _, s := range catalogue {
		options = append(options, SpecialtyOption{
			Key:   s.Key,
			Label: services.SpecialtyLabel(ctx, s.Key),
			Style: s.SpecialtyStyle,
		})
	}
	return c.JSON(http.StatusOK, options)
}

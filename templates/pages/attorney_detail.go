package pages

import (
	"context"
	"math"

	"attorney_directory_go/models"
	"attorney_directory_go/services/i18n"
)

// ChartSlice is one segment of the won/lost pie
type ChartSlice struct {
	Label   string  `json:"label"`
	Value   int     `json:"value"`
	Percent float64 `json:"percent"`
}

// AttorneyDetail holds the data for the attorney dashboard
type AttorneyDetail struct {
	Title          string                `json:"title"`
	ID             int64                 `json:"id"`
	Name           string                `json:"name"`
	Specialty      string                `json:"specialty"`
	SpecialtyLabel string                `json:"specialtyLabel"`
	SpecialtyStyle models.SpecialtyStyle `json:"specialtyStyle"`
	Email          string                `json:"email"`
	PhoneNumber    string                `json:"phoneNumber"`
	Description    string                `json:"description"`
	TotalCases     int                   `json:"totalCases"`
	Cases          []ChartSlice          `json:"cases"`
}

// NewAttorneyDetail builds the dashboard for a, translated to the language in ctx
func NewAttorneyDetail(ctx context.Context, a models.Attorney) AttorneyDetail {
	label := a.Specialty
	if t := i18n.T(ctx, "specialties."+a.Specialty); t != "specialties."+a.Specialty {
		label = t
	}

	lost := a.LostCases()
	// Shares are of won+lost so the pie always closes, even when the
	// record reports more wins than cases.
	base := a.WonCases + lost

	return AttorneyDetail{
		Title:          i18n.T(ctx, "app.detail_title"),
		ID:             a.ID,
		Name:           a.FullName(),
		Specialty:      a.Specialty,
		SpecialtyLabel: label,
		SpecialtyStyle: models.SpecialtyStyleFor(a.Specialty),
		Email:          a.Email,
		PhoneNumber:    a.PhoneNumber,
		Description:    a.Description,
		TotalCases:     a.TotalCases,
		Cases: []ChartSlice{
			{Label: i18n.T(ctx, "detail.won"), Value: a.WonCases, Percent: percent(a.WonCases, base)},
			{Label: i18n.T(ctx, "detail.lost"), Value: lost, Percent: percent(lost, base)},
		},
	}
}

func percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*10000) / 100
}

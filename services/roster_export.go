package services

import (
	"bytes"
	"context"
	"fmt"

	"attorney_directory_go/models"
	"attorney_directory_go/services/i18n"

	"github.com/xuri/excelize/v2"
)

// rosterColumns are the i18n keys of the exported columns, in order
var rosterColumns = []string{
	"fields.id",
	"fields.first_name",
	"fields.last_name",
	"fields.specialty",
	"fields.phone_number",
	"fields.indicator",
	"fields.country_phone",
	"fields.email",
	"fields.description",
	"fields.total_cases",
	"fields.won_cases",
	"fields.lost_cases",
	"fields.win_rate",
}

// GenerateRosterWorkbook writes attorneys to an xlsx workbook. Headers and
// specialty labels use the language in ctx.
func GenerateRosterWorkbook(ctx context.Context, attorneys []models.Attorney) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := i18n.T(ctx, "export.sheet")
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E0E0E0"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, key := range rosterColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, i18n.T(ctx, key))
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(rosterColumns), 1)
	f.SetCellStyle(sheet, "A1", lastHeader, headerStyle)

	for r, a := range attorneys {
		row := []interface{}{
			a.ID,
			a.FirstName,
			a.LastName,
			SpecialtyLabel(ctx, a.Specialty),
			a.PhoneNumber,
			a.Indicator,
			a.CountryPhone,
			a.Email,
			a.Description,
			a.TotalCases,
			a.WonCases,
			a.LostCases(),
			fmt.Sprintf("%.2f%%", a.WinRate()),
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", r+2, err)
		}
	}

	f.SetColWidth(sheet, "A", "A", 16)
	f.SetColWidth(sheet, "B", "H", 20)
	f.SetColWidth(sheet, "I", "I", 50)
	f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

// SpecialtyLabel translates a specialty key, keeping unknown keys as-is
func SpecialtyLabel(ctx context.Context, key string) string {
	if key == "" {
		return ""
	}
	full := "specialties." + key
	if label := i18n.T(ctx, full); label != full {
		return label
	}
	return key
}

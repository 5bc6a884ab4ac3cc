package services

import (
	"context"
	"html"
	"strings"
	"time"

	"attorney_directory_go/db"
	"attorney_directory_go/models"

	"github.com/microcosm-cc/bluemonday"
)

// Every operation below reads the whole document on entry and mutations
// write the whole array back. There is no locking: two concurrent mutations
// can interleave and the last write wins. The intended deployment has a
// single client at a time.

// now is the id clock, replaced in tests
var now = time.Now

var descriptionPolicy = bluemonday.StrictPolicy()

// ListAttorneys returns the collection in stored order
func ListAttorneys(ctx context.Context, file *db.AttorneyFile) ([]models.Attorney, error) {
	attorneys, err := file.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	AttorneyRecords.Set(float64(len(attorneys)))
	return attorneys, nil
}

// GetAttorney returns a single record by id
func GetAttorney(ctx context.Context, file *db.AttorneyFile, id int64) (models.Attorney, error) {
	attorneys, err := ListAttorneys(ctx, file)
	if err != nil {
		return models.Attorney{}, err
	}
	if i := indexOf(attorneys, id); i >= 0 {
		return attorneys[i], nil
	}
	return models.Attorney{}, ErrAttorneyNotFound
}

// CreateAttorney sanitises and validates the input, assigns an id and
// appends the record.
func CreateAttorney(ctx context.Context, file *db.AttorneyFile, in models.AttorneyInput) (models.Attorney, error) {
	in.Description = SanitizeDescription(in.Description)
	if err := ValidateAttorneyInput(in); err != nil {
		return models.Attorney{}, err
	}

	attorneys, err := file.ReadAll(ctx)
	if err != nil {
		return models.Attorney{}, err
	}

	attorney := in.Record(NextAttorneyID(attorneys, now()))

	attorneys = append(attorneys, attorney)
	if err := file.WriteAll(ctx, attorneys); err != nil {
		return models.Attorney{}, err
	}

	AttorneyRecords.Set(float64(len(attorneys)))
	return attorney, nil
}

// UpdateAttorney replaces the full record with the same id. Fields missing
// from the update are lost; there is no partial patch. A description made of
// markup only is rejected rather than stored empty.
func UpdateAttorney(ctx context.Context, file *db.AttorneyFile, update models.AttorneyUpdate) (models.Attorney, error) {
	if update.ID == nil {
		return models.Attorney{}, &ValidationError{MessageKey: MsgIDRequired, Fields: []string{"id"}}
	}

	attorney := update.Record()
	attorney.Description = SanitizeDescription(update.Description)
	if strings.TrimSpace(update.Description) != "" && strings.TrimSpace(attorney.Description) == "" {
		return models.Attorney{}, &ValidationError{MessageKey: MsgMissingFields, Fields: []string{"description"}}
	}
	if err := rejectNegativeCounts(attorney.TotalCases, attorney.WonCases); err != nil {
		return models.Attorney{}, err
	}

	attorneys, err := file.ReadAll(ctx)
	if err != nil {
		return models.Attorney{}, err
	}

	i := indexOf(attorneys, *update.ID)
	if i < 0 {
		return models.Attorney{}, ErrAttorneyNotFound
	}

	attorneys[i] = attorney

	if err := file.WriteAll(ctx, attorneys); err != nil {
		return models.Attorney{}, err
	}
	return attorney, nil
}

// DeleteAttorney removes the record with id
func DeleteAttorney(ctx context.Context, file *db.AttorneyFile, id int64) error {
	attorneys, err := file.ReadAll(ctx)
	if err != nil {
		return err
	}

	if indexOf(attorneys, id) < 0 {
		return ErrAttorneyNotFound
	}

	kept := make([]models.Attorney, 0, len(attorneys)-1)
	for _, a := range attorneys {
		if a.ID != id {
			kept = append(kept, a)
		}
	}

	if err := file.WriteAll(ctx, kept); err != nil {
		return err
	}

	AttorneyRecords.Set(float64(len(kept)))
	return nil
}

// ValidateAttorneyInput checks presence of every required field. Zero is a
// valid case count; missing and negative counts are rejected.
func ValidateAttorneyInput(in models.AttorneyInput) error {
	required := []struct {
		name  string
		value string
	}{
		{"firstName", in.FirstName},
		{"lastName", in.LastName},
		{"specialty", in.Specialty},
		{"phoneNumber", in.PhoneNumber},
		{"email", in.Email},
		{"indicator", in.Indicator},
		{"countryPhone", in.CountryPhone},
		{"description", in.Description},
	}

	var missing []string
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if in.TotalCases == nil {
		missing = append(missing, "totalCases")
	}
	if in.WonCases == nil {
		missing = append(missing, "wonCases")
	}
	if len(missing) > 0 {
		return &ValidationError{MessageKey: MsgMissingFields, Fields: missing}
	}

	return rejectNegativeCounts(*in.TotalCases, *in.WonCases)
}

func rejectNegativeCounts(total, won int) error {
	var negative []string
	if total < 0 {
		negative = append(negative, "totalCases")
	}
	if won < 0 {
		negative = append(negative, "wonCases")
	}
	if len(negative) > 0 {
		return &ValidationError{MessageKey: MsgNegativeCount, Fields: negative}
	}
	return nil
}

// NextAttorneyID returns the creation instant in milliseconds, bumped past
// any id already taken so ids stay unique within the collection.
func NextAttorneyID(existing []models.Attorney, at time.Time) int64 {
	taken := make(map[int64]struct{}, len(existing))
	for _, a := range existing {
		taken[a.ID] = struct{}{}
	}

	id := at.UnixMilli()
	for {
		if _, ok := taken[id]; !ok {
			return id
		}
		id++
	}
}

// SanitizeDescription strips markup from free text while keeping the text
// itself readable (no HTML entities in the stored value).
func SanitizeDescription(s string) string {
	return html.UnescapeString(descriptionPolicy.Sanitize(s))
}

func indexOf(attorneys []models.Attorney, id int64) int {
	for i, a := range attorneys {
		if a.ID == id {
			return i
		}
	}
	return -1
}

package services

import (
	"regexp"
	"strconv"
	"strings"

	"attorney_directory_go/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail checks the basic local@domain.tld shape
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// AttorneyForm is the raw, user-typed content of the add dialog. Every field
// is text, the way it arrives from a form or command-line flags.
type AttorneyForm struct {
	FirstName   string
	LastName    string
	Specialty   string
	PhoneNumber string
	Email       string
	Description string
	TotalCases  string
	WonCases    string
}

// Validate turns the form into a create input. Checks run in the order the
// user sees them: required fields, specialty, email, phone, numbers. The
// specialty must be a catalogue key and the phone number is parsed to derive
// the indicator and country code.
func (f AttorneyForm) Validate() (models.AttorneyInput, error) {
	fields := map[string]string{
		"firstName":   f.FirstName,
		"lastName":    f.LastName,
		"specialty":   f.Specialty,
		"phoneNumber": f.PhoneNumber,
		"email":       f.Email,
		"description": f.Description,
		"totalCases":  f.TotalCases,
		"wonCases":    f.WonCases,
	}
	var missing []string
	for _, name := range []string{"firstName", "lastName", "specialty", "phoneNumber", "email", "description", "totalCases", "wonCases"} {
		if strings.TrimSpace(fields[name]) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return models.AttorneyInput{}, &ValidationError{MessageKey: MsgFieldsRequired, Fields: missing}
	}

	specialty := strings.TrimSpace(f.Specialty)
	if !models.IsKnownSpecialty(specialty) {
		return models.AttorneyInput{}, &ValidationError{MessageKey: MsgInvalidSpecialty, Fields: []string{"specialty"}}
	}

	email := strings.TrimSpace(f.Email)
	if !IsValidEmail(email) {
		return models.AttorneyInput{}, &ValidationError{MessageKey: MsgInvalidEmail, Fields: []string{"email"}}
	}

	phone, err := ParsePhone(f.PhoneNumber)
	if err != nil {
		return models.AttorneyInput{}, &ValidationError{MessageKey: MsgInvalidPhone, Fields: []string{"phoneNumber"}}
	}

	total, won, err := parseCounts(f.TotalCases, f.WonCases)
	if err != nil {
		return models.AttorneyInput{}, err
	}

	return models.AttorneyInput{
		FirstName:    strings.TrimSpace(f.FirstName),
		LastName:     strings.TrimSpace(f.LastName),
		Specialty:    specialty,
		PhoneNumber:  phone.E164,
		Email:        email,
		Indicator:    phone.Indicator,
		CountryPhone: phone.Country,
		Description:  f.Description,
		TotalCases:   &total,
		WonCases:     &won,
	}, nil
}

// AttorneyEdit holds the editable fields of the edit dialog. Empty values
// keep the current content. Names are not editable.
type AttorneyEdit struct {
	Specialty   string
	PhoneNumber string
	Email       string
	Description string
	TotalCases  string
	WonCases    string
}

// Apply returns existing with the edit applied. A changed phone number is
// re-parsed so indicator and countryPhone follow it.
func (e AttorneyEdit) Apply(existing models.Attorney) (models.Attorney, error) {
	updated := existing

	if s := strings.TrimSpace(e.Specialty); s != "" {
		if !models.IsKnownSpecialty(s) {
			return existing, &ValidationError{MessageKey: MsgInvalidSpecialty, Fields: []string{"specialty"}}
		}
		updated.Specialty = s
	}
	if s := strings.TrimSpace(e.Email); s != "" {
		if !IsValidEmail(s) {
			return existing, &ValidationError{MessageKey: MsgInvalidEmail, Fields: []string{"email"}}
		}
		updated.Email = s
	}
	if e.Description != "" {
		updated.Description = e.Description
	}
	if strings.TrimSpace(e.PhoneNumber) != "" {
		phone, err := ParsePhone(e.PhoneNumber)
		if err != nil {
			return existing, &ValidationError{MessageKey: MsgInvalidPhone, Fields: []string{"phoneNumber"}}
		}
		updated.PhoneNumber = phone.E164
		updated.Indicator = phone.Indicator
		updated.CountryPhone = phone.Country
	}

	total := strconv.Itoa(updated.TotalCases)
	won := strconv.Itoa(updated.WonCases)
	if strings.TrimSpace(e.TotalCases) != "" {
		total = e.TotalCases
	}
	if strings.TrimSpace(e.WonCases) != "" {
		won = e.WonCases
	}
	t, w, err := parseCounts(total, won)
	if err != nil {
		return existing, err
	}
	updated.TotalCases, updated.WonCases = t, w

	return updated, nil
}

// UpdateFrom converts a record into the body of an update request
func UpdateFrom(a models.Attorney) models.AttorneyUpdate {
	id := a.ID
	return models.AttorneyUpdate{
		ID:           &id,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Specialty:    a.Specialty,
		PhoneNumber:  a.PhoneNumber,
		Email:        a.Email,
		Indicator:    a.Indicator,
		CountryPhone: a.CountryPhone,
		Description:  a.Description,
		TotalCases:   a.TotalCases,
		WonCases:     a.WonCases,
	}
}

func parseCounts(totalRaw, wonRaw string) (int, int, error) {
	total, errTotal := strconv.Atoi(strings.TrimSpace(totalRaw))
	won, errWon := strconv.Atoi(strings.TrimSpace(wonRaw))
	if errTotal != nil || errWon != nil || total < 0 || won < 0 {
		return 0, 0, &ValidationError{MessageKey: MsgInvalidNumber, Fields: []string{"totalCases", "wonCases"}}
	}
	if won > total {
		return 0, 0, &ValidationError{MessageKey: MsgWonExceedsTotal, Fields: []string{"wonCases"}}
	}
	return total, won, nil
}

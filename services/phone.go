package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is used for numbers typed without a leading "+"
const DefaultPhoneRegion = "FR"

// ParsedPhone is the result of parsing a phone number
type ParsedPhone struct {
	E164      string // +33612345678
	Indicator string // +33
	Country   string // FR
}

// ParsePhone parses raw and derives the calling code and region. Numbers that
// do not parse, or parse but are not valid for their region, return
// ErrInvalidPhone.
func ParsePhone(raw string) (ParsedPhone, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ParsedPhone{}, ErrInvalidPhone
	}

	num, err := phonenumbers.Parse(raw, DefaultPhoneRegion)
	if err != nil {
		return ParsedPhone{}, fmt.Errorf("%w: %v", ErrInvalidPhone, err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return ParsedPhone{}, ErrInvalidPhone
	}

	return ParsedPhone{
		E164:      phonenumbers.Format(num, phonenumbers.E164),
		Indicator: "+" + strconv.Itoa(int(num.GetCountryCode())),
		Country:   phonenumbers.GetRegionCodeForNumber(num),
	}, nil
}

package models

// Attorney is a single record of the directory. The whole collection is
// persisted as one JSON array, so field names here are the wire format.
type Attorney struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Specialty    string `json:"specialty"`
	PhoneNumber  string `json:"phoneNumber"`
	Email        string `json:"email"`
	Indicator    string `json:"indicator"`    // "+" and the country calling code, derived from PhoneNumber
	CountryPhone string `json:"countryPhone"` // ISO region code, derived from PhoneNumber
	Description  string `json:"description"`
	TotalCases   int    `json:"totalCases"`
	WonCases     int    `json:"wonCases"`
}

// AttorneyInput is the body of a create request. Counts are pointers so a
// missing field can be told apart from an explicit zero.
type AttorneyInput struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Specialty    string `json:"specialty"`
	PhoneNumber  string `json:"phoneNumber"`
	Email        string `json:"email"`
	Indicator    string `json:"indicator"`
	CountryPhone string `json:"countryPhone"`
	Description  string `json:"description"`
	TotalCases   *int   `json:"totalCases"`
	WonCases     *int   `json:"wonCases"`
}

// AttorneyUpdate is the body of an update request: a full record whose id
// must be present.
type AttorneyUpdate struct {
	ID           *int64 `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Specialty    string `json:"specialty"`
	PhoneNumber  string `json:"phoneNumber"`
	Email        string `json:"email"`
	Indicator    string `json:"indicator"`
	CountryPhone string `json:"countryPhone"`
	Description  string `json:"description"`
	TotalCases   int    `json:"totalCases"`
	WonCases     int    `json:"wonCases"`
}

// FullName returns "First Last".
func (a Attorney) FullName() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// LostCases is the number of cases not won. Records where WonCases exceeds
// TotalCases are allowed and report zero.
func (a Attorney) LostCases() int {
	if lost := a.TotalCases - a.WonCases; lost > 0 {
		return lost
	}
	return 0
}

// WinRate returns the won share of total cases as a percentage.
func (a Attorney) WinRate() float64 {
	if a.TotalCases <= 0 {
		return 0
	}
	return float64(a.WonCases) / float64(a.TotalCases) * 100
}

// Record builds the stored record for a validated create input.
func (in AttorneyInput) Record(id int64) Attorney {
	a := Attorney{
		ID:           id,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Specialty:    in.Specialty,
		PhoneNumber:  in.PhoneNumber,
		Email:        in.Email,
		Indicator:    in.Indicator,
		CountryPhone: in.CountryPhone,
		Description:  in.Description,
	}
	if in.TotalCases != nil {
		a.TotalCases = *in.TotalCases
	}
	if in.WonCases != nil {
		a.WonCases = *in.WonCases
	}
	return a
}

// Record builds the stored record for an update. Callers check ID first.
func (u AttorneyUpdate) Record() Attorney {
	var id int64
	if u.ID != nil {
		id = *u.ID
	}
	return Attorney{
		ID:           id,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Specialty:    u.Specialty,
		PhoneNumber:  u.PhoneNumber,
		Email:        u.Email,
		Indicator:    u.Indicator,
		CountryPhone: u.CountryPhone,
		Description:  u.Description,
		TotalCases:   u.TotalCases,
		WonCases:     u.WonCases,
	}
}

// InputFrom converts a record into a create input, dropping its id.
func InputFrom(a Attorney) AttorneyInput {
	total, won := a.TotalCases, a.WonCases
	return AttorneyInput{
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Specialty:    a.Specialty,
		PhoneNumber:  a.PhoneNumber,
		Email:        a.Email,
		Indicator:    a.Indicator,
		CountryPhone: a.CountryPhone,
		Description:  a.Description,
		TotalCases:   &total,
		WonCases:     &won,
	}
}

// IntPtr is a small helper for building inputs.
func IntPtr(v int) *int {
	return &v
}

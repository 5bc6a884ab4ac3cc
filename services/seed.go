package services

import (
	"context"
	"fmt"
	"time"

	"attorney_directory_go/db"
	"attorney_directory_go/models"

	"github.com/rs/zerolog/log"
)

// sampleAttorneys is written on first start when sample data is requested
var sampleAttorneys = []models.AttorneyInput{
	{
		FirstName: "Claire", LastName: "Martin", Specialty: "Family Law",
		PhoneNumber: "+33612345678", Email: "claire.martin@example.com",
		Indicator: "+33", CountryPhone: "FR",
		Description: "Divorce, custody and adoption proceedings.",
		TotalCases:  models.IntPtr(120), WonCases: models.IntPtr(94),
	},
	{
		FirstName: "Thomas", LastName: "Bernard", Specialty: "Criminal Law",
		PhoneNumber: "+33698765432", Email: "t.bernard@example.com",
		Indicator: "+33", CountryPhone: "FR",
		Description: "Defence counsel before the criminal courts.",
		TotalCases:  models.IntPtr(85), WonCases: models.IntPtr(51),
	},
	{
		FirstName: "Emily", LastName: "Clarke", Specialty: "Intellectual Property Law",
		PhoneNumber: "+442070313000", Email: "emily.clarke@example.com",
		Indicator: "+44", CountryPhone: "GB",
		Description: "Trademark and patent litigation.",
		TotalCases:  models.IntPtr(40), WonCases: models.IntPtr(33),
	},
}

// EnsureAttorneyFile creates the document when it does not exist yet: an
// empty array, or a few sample records when withSamples is set. An existing
// document is never touched.
func EnsureAttorneyFile(ctx context.Context, file *db.AttorneyFile, withSamples bool) error {
	exists, err := file.Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		log.Debug().Str("key", file.Key()).Msg("[SEED] Attorney document already exists, skipping seed")
		return nil
	}

	attorneys := []models.Attorney{}
	if withSamples {
		attorneys = SampleAttorneys(now())
	}

	if err := file.WriteAll(ctx, attorneys); err != nil {
		return fmt.Errorf("failed to create attorney document: %w", err)
	}

	log.Info().Str("key", file.Key()).Int("records", len(attorneys)).Msg("[SEED] Attorney document created")
	return nil
}

// SampleAttorneys returns the sample records with ids derived from at
func SampleAttorneys(at time.Time) []models.Attorney {
	out := make([]models.Attorney, 0, len(sampleAttorneys))
	for _, in := range sampleAttorneys {
		out = append(out, in.Record(NextAttorneyID(out, at)))
	}
	return out
}

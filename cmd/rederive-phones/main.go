package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"attorney_directory_go/config"
	"attorney_directory_go/db"
	"attorney_directory_go/models"
	"attorney_directory_go/services"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "rederive-phones",
		Short: "Recompute indicator and countryPhone from each stored phone number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			run(dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report divergent records without writing")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(dryRun bool) {
	// Load configuration
	cfg := config.Load()
	logger := services.NewLogger(cfg.LogLevel, cfg.Environment)

	// Initialize storage
	storage := services.InitializeStorage(cfg)
	if err := db.Initialize(storage, cfg.AttorneysFile); err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize attorney document")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	logger.Info().Msg("Re-deriving phone fields for existing attorneys...")

	attorneys, err := services.ListAttorneys(ctx, db.Attorneys)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to read attorneys")
	}

	fixed, changed := rederivePhones(attorneys)
	if changed == 0 {
		logger.Info().Msg("No attorneys need phone migration. All derived fields match.")
		return
	}

	logger.Info().Int("count", changed).Bool("dry_run", dryRun).Msg("Found attorneys with divergent phone fields")
	if dryRun {
		return
	}

	if err := db.Attorneys.WriteAll(ctx, fixed); err != nil {
		logger.Fatal().Err(err).Msg("Failed to write attorneys")
	}
	logger.Info().Msg("Phone migration completed successfully!")
}

// rederivePhones normalises every parseable phone number and recomputes the
// indicator and country from it. Unparseable numbers are left as they are.
func rederivePhones(attorneys []models.Attorney) ([]models.Attorney, int) {
	out := make([]models.Attorney, len(attorneys))
	changed := 0

	for i, a := range attorneys {
		out[i] = a

		phone, err := services.ParsePhone(a.PhoneNumber)
		if err != nil {
			log.Warn().Int64("id", a.ID).Str("phone", a.PhoneNumber).Msg("Skipping unparseable phone number")
			continue
		}
		if a.PhoneNumber == phone.E164 && a.Indicator == phone.Indicator && a.CountryPhone == phone.Country {
			continue
		}

		out[i].PhoneNumber = phone.E164
		out[i].Indicator = phone.Indicator
		out[i].CountryPhone = phone.Country
		changed++

		log.Info().
			Int64("id", a.ID).
			Str("name", a.FullName()).
			Str("indicator", phone.Indicator).
			Str("country", phone.Country).
			Msg("Re-derived phone fields")
	}

	return out, changed
}

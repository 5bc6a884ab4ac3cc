// Package main provides attorneyctl, a command-line client for the attorney
// directory API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"attorney_directory_go/config"
	"attorney_directory_go/services"
	"attorney_directory_go/services/i18n"
	"attorney_directory_go/store"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd(config.Load(), os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// cli carries the flags shared by every subcommand
type cli struct {
	out      io.Writer
	apiURL   string
	lang     string
	logLevel string
	logger   zerolog.Logger
}

// ctx returns a context carrying the chosen language
func (c *cli) ctx(parent context.Context) context.Context {
	return i18n.WithLocale(parent, c.lang)
}

// openStore returns a store bound to the API and a func releasing it
func (c *cli) openStore() (*store.Store, func()) {
	gw := store.NewHTTPGateway(c.apiURL, c.lang)
	return store.New(gw, c.logger), gw.Close
}

// explain turns validation errors into the translated message
func (c *cli) explain(err error) error {
	var v *services.ValidationError
	if errors.As(err, &v) {
		return fmt.Errorf("%s", i18n.Translate(c.lang, v.MessageKey))
	}
	return err
}

func rootCmd(cfg *config.Config, out io.Writer) *cobra.Command {
	c := &cli{out: out}

	cmd := &cobra.Command{
		Use:   "attorneyctl",
		Short: "Manage the attorney directory",
		Long: `attorneyctl lists, adds, edits and deletes attorneys through the
attorney directory API.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !i18n.IsSupported(c.lang) {
				return fmt.Errorf("unsupported language %q (available: %v)", c.lang, i18n.Languages())
			}
			level, err := zerolog.ParseLevel(c.logLevel)
			if err != nil {
				level = zerolog.WarnLevel
			}
			c.logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&c.apiURL, "api", cfg.APIBaseURL, "Attorney API base URL")
	cmd.PersistentFlags().StringVar(&c.lang, "lang", cfg.Language, "Language for labels and messages (en, fr)")
	cmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		listCmd(c),
		showCmd(c),
		addCmd(c),
		editCmd(c),
		deleteCmd(c),
		specialtiesCmd(c),
	)
	return cmd
}

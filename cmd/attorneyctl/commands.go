package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"attorney_directory_go/models"
	"attorney_directory_go/services"
	"attorney_directory_go/services/i18n"
	"attorney_directory_go/templates/components"
	"attorney_directory_go/templates/pages"

	"github.com/spf13/cobra"
)

func listCmd(c *cli) *cobra.Command {
	var (
		specialty string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List attorneys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := c.ctx(cmd.Context())
			s, done := c.openStore()
			defer done()

			if err := s.Load(ctx); err != nil {
				return fmt.Errorf("%s: %w", i18n.T(ctx, "attorneys.load_error"), err)
			}
			attorneys := s.Filter(specialty)

			if asJSON {
				fmt.Fprintln(c.out, components.JSON(attorneys))
				return nil
			}
			if len(attorneys) == 0 {
				fmt.Fprintln(c.out, i18n.T(ctx, "attorneys.empty"))
				return nil
			}

			w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				i18n.T(ctx, "fields.id"),
				i18n.T(ctx, "fields.name"),
				i18n.T(ctx, "fields.specialty"),
				i18n.T(ctx, "fields.email"),
				i18n.T(ctx, "fields.phone"),
				i18n.T(ctx, "fields.win_rate"),
			)
			for _, a := range attorneys {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d/%d\n",
					a.ID, a.FullName(), services.SpecialtyLabel(ctx, a.Specialty), a.Email, a.PhoneNumber, a.WonCases, a.TotalCases)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&specialty, "specialty", "", "Only list attorneys of this specialty")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func showCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show the dashboard of one attorney",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := c.ctx(cmd.Context())
			id, err := parseID(c, args[0])
			if err != nil {
				return err
			}

			s, done := c.openStore()
			defer done()
			if err := s.Load(ctx); err != nil {
				return fmt.Errorf("%s: %w", i18n.T(ctx, "attorneys.load_error"), err)
			}

			a, ok := s.Find(id)
			if !ok {
				return fmt.Errorf("%s", i18n.T(ctx, services.MsgNotFound))
			}
			fmt.Fprintln(c.out, components.JSON(pages.NewAttorneyDetail(ctx, a)))
			return nil
		},
	}
}

func addCmd(c *cli) *cobra.Command {
	var form services.AttorneyForm

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an attorney",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := c.ctx(cmd.Context())
			in, err := form.Validate()
			if err != nil {
				return c.explain(err)
			}

			s, done := c.openStore()
			defer done()
			created, err := s.Create(ctx, in)
			if err != nil {
				return fmt.Errorf("%s: %w", i18n.T(ctx, "attorneys.save_failed"), err)
			}

			fmt.Fprintf(c.out, "%s (%s %d)\n", i18n.T(ctx, "attorneys.saved"), i18n.T(ctx, "fields.id"), created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&form.FirstName, "first", "", "First name")
	cmd.Flags().StringVar(&form.LastName, "last", "", "Last name")
	cmd.Flags().StringVar(&form.Specialty, "specialty", "", "Specialty key (see 'attorneyctl specialties')")
	cmd.Flags().StringVar(&form.PhoneNumber, "phone", "", "Phone number, international or French format")
	cmd.Flags().StringVar(&form.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&form.Description, "description", "", "Description")
	cmd.Flags().StringVar(&form.TotalCases, "total", "", "Total cases")
	cmd.Flags().StringVar(&form.WonCases, "won", "", "Won cases")
	return cmd
}

func editCmd(c *cli) *cobra.Command {
	var edit services.AttorneyEdit

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit an attorney; names cannot be changed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := c.ctx(cmd.Context())
			id, err := parseID(c, args[0])
			if err != nil {
				return err
			}

			s, done := c.openStore()
			defer done()
			if err := s.Load(ctx); err != nil {
				return fmt.Errorf("%s: %w", i18n.T(ctx, "attorneys.load_error"), err)
			}

			existing, ok := s.Find(id)
			if !ok {
				return fmt.Errorf("%s", i18n.T(ctx, services.MsgNotFound))
			}
			updated, err := edit.Apply(existing)
			if err != nil {
				return c.explain(err)
			}
			if _, err := s.Update(ctx, updated); err != nil {
				return fmt.Errorf("%s: %w", i18n.T(ctx, "attorneys.save_failed"), err)
			}

			fmt.Fprintln(c.out, i18n.T(ctx, "attorneys.updated"))
			return nil
		},
	}

	cmd.Flags().StringVar(&edit.Specialty, "specialty", "", "New specialty key")
	cmd.Flags().StringVar(&edit.PhoneNumber, "phone", "", "New phone number")
	cmd.Flags().StringVar(&edit.Email, "email", "", "New email address")
	cmd.Flags().StringVar(&edit.Description, "description", "", "New description")
	cmd.Flags().StringVar(&edit.TotalCases, "total", "", "New total cases")
	cmd.Flags().StringVar(&edit.WonCases, "won", "", "New won cases")
	return cmd
}

func deleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an attorney",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := c.ctx(cmd.Context())
			id, err := parseID(c, args[0])
			if err != nil {
				return err
			}

			s, done := c.openStore()
			defer done()
			if err := s.Remove(ctx, id); err != nil {
				return fmt.Errorf("%s: %w", i18n.T(ctx, "attorneys.delete_failed"), err)
			}

			fmt.Fprintln(c.out, i18n.T(ctx, "attorneys.delete_success"))
			return nil
		},
	}
}

func specialtiesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "specialties",
		Short: "List the specialty keys and their labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := c.ctx(cmd.Context())
			w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			for _, s := range models.Specialties() {
				fmt.Fprintf(w, "%s\t%s\n", s.Key, services.SpecialtyLabel(ctx, s.Key))
			}
			return w.Flush()
		},
	}
}

func parseID(c *cli, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s", i18n.Translate(c.lang, services.MsgInvalidID))
	}
	return id, nil
}

package cli

import (
	"github.com/rpupo63/projectblox-backend/database"
	"github.com/rpupo63/projectblox-backend/models"
	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	var report bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the catalog tables",
		Long:  "Runs the catalog schema migration against a Postgres or SQLite backend. D1 schemas are managed with wrangler.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.open(cmd)
			if err != nil {
				return err
			}
			db, err := store.RequireSQL()
			if err != nil {
				return err
			}

			if err := models.AutoMigrate(db); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Catalog tables are up to date")

			if report {
				models.GenerateColumnMismatchReport(db)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&report, "report", false, "print columns the models do not account for")
	return cmd
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <fixtures.yaml>",
		Short: "Load catalog fixtures into a Postgres or SQLite backend",
		Long:  "Migrates the schema, then inserts the categories, projects and steps from a YAML fixtures file. Rows whose id already exists are left alone.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fixtures, err := database.LoadFixtures(args[0])
			if err != nil {
				return err
			}

			store, err := opts.open(cmd)
			if err != nil {
				return err
			}
			db, err := store.RequireSQL()
			if err != nil {
				return err
			}

			if err := models.AutoMigrate(db); err != nil {
				return err
			}
			if err := database.Seed(db, fixtures); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "Seeded %d categories and %d projects", len(fixtures.Categories), len(fixtures.Projects))
			return nil
		},
	}
}

// Package cli implements catalogctl, a command line client for the ProjectBlox catalog.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/rpupo63/projectblox-backend/backend"
	"github.com/rpupo63/projectblox-backend/config"
	"github.com/spf13/cobra"
)

// rootOptions are the persistent flags shared by every command
type rootOptions struct {
	envFile    string
	dbType     string
	sqlitePath string
	jsonOutput bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Query the ProjectBlox project catalog",
		Long:          "catalogctl reads categories, projects and build steps from the configured catalog backend (Cloudflare D1, Supabase Postgres or a local SQLite file)",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	flags.StringVar(&opts.dbType, "db-type", "", "backend to use: d1, supa or sqlite (overrides DB_TYPE)")
	flags.StringVar(&opts.sqlitePath, "sqlite-path", "", "SQLite database file (overrides SQLITE_PATH)")
	flags.BoolVar(&opts.jsonOutput, "json", false, "print JSON instead of tables")

	rootCmd.AddCommand(
		newCategoriesCmd(opts),
		newProjectsCmd(opts),
		newProjectCmd(opts),
		newStepsCmd(opts),
		newBrowseCmd(opts),
		newMigrateCmd(opts),
		newSeedCmd(opts),
	)
	return rootCmd
}

// Execute runs the CLI
func Execute() error {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd.ErrOrStderr(), "%v", err)
		return err
	}
	return nil
}

// settings merges the environment, the dotenv file and the flag overrides
func (o *rootOptions) settings() map[string]string {
	if o.envFile != "" {
		// a missing dotenv file is normal outside development
		_ = godotenv.Load(o.envFile)
	}

	c := config.New()
	if o.dbType != "" {
		c["DB_TYPE"] = o.dbType
	}
	if o.sqlitePath != "" {
		c["SQLITE_PATH"] = o.sqlitePath
	}
	return c
}

func (o *rootOptions) open(cmd *cobra.Command) (*backend.Backend, error) {
	return backend.Open(cmd.Context(), o.settings())
}

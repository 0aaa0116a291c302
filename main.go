package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	api "github.com/rpupo63/projectblox-backend/api"
	"github.com/rpupo63/projectblox-backend/backend"
	"github.com/rpupo63/projectblox-backend/config"
	"github.com/rpupo63/projectblox-backend/database"
	"github.com/rpupo63/projectblox-backend/models"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()
	fmt.Printf("DB_TYPE: %s\n", config.GetString(c, "DB_TYPE", backend.TypeD1))

	ctx := context.Background()
	store, err := backend.Open(ctx, c)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	if store.DB != nil {
		// If generating models, run generation and exit
		if config.GetBool(c, "GENERATE_MODELS", false) {
			fmt.Println("Generating models and query helpers...")
			models.GenerateModels(store.DB)
			return
		}

		// If generating column mismatch report, run report and exit
		if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
			fmt.Println("Generating column mismatch report...")
			models.GenerateColumnMismatchReportStandalone(store.DB)
			return
		}

		if store.Type == backend.TypeSQLite {
			if err := prepareLocalDatabase(store, config.GetString(c, "SEED_FILE", "")); err != nil {
				fmt.Printf("Error preparing local database: %v\n", err)
				os.Exit(1)
			}
		}
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(store.Database())
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// prepareLocalDatabase creates the catalog tables and loads the seed file, if any
func prepareLocalDatabase(store *backend.Backend, seedFile string) error {
	if err := models.AutoMigrate(store.DB); err != nil {
		return err
	}
	if seedFile == "" {
		return nil
	}

	fixtures, err := database.LoadFixtures(seedFile)
	if err != nil {
		return err
	}
	if err := database.Seed(store.DB, fixtures); err != nil {
		return err
	}
	log.Info().Str("file", seedFile).Int("projects", len(fixtures.Projects)).Msg("Seeded local database")
	return nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	api "github.com/rpupo63/research-lab-backend/api"
	"github.com/rpupo63/research-lab-backend/config"
	"github.com/rpupo63/research-lab-backend/database"
	"github.com/rpupo63/research-lab-backend/models"
	"github.com/rpupo63/research-lab-backend/services"
)

func main() {
	// Load environment variables from .env file
	envErr := godotenv.Load()

	c := config.New()
	setupLogging(c)
	if envErr != nil {
		log.Debug().Err(envErr).Msg("no .env file loaded")
	}

	log.Info().Msg("Initializing app...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	settings, err := database.SettingsFromConfig(c)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid database configuration")
	}

	db, err := database.Open(ctx, settings, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		reportColumns(db)
		return
	}

	if config.GetBool(c, "AUTO_MIGRATE", true) {
		if err := models.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("Error migrating schema")
		}
	}

	// A nil interface, not a nil *ObjectStorage, makes /upload answer 503.
	var uploader api.Uploader
	storageSettings := services.StorageSettingsFromConfig(c)
	if storageSettings.Enabled() {
		storage, err := services.NewObjectStorage(ctx, storageSettings)
		if err != nil {
			log.Fatal().Err(err).Msg("Error initializing object storage")
		}
		uploader = storage
	} else {
		log.Warn().Msg("S3_BUCKET not set, uploads are disabled")
	}

	// server.Start and listenToInterrupt each send at most once
	errChannel := make(chan error, 2)

	server, err := api.NewServer(c, database.New(db), uploader)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(config.GetSeconds(c, "SHUTDOWN_TIMEOUT_SECONDS", 30))
}

// setupLogging configures the global zerolog logger from LOG_LEVEL and LOG_FORMAT.
func setupLogging(c map[string]string) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(c, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if config.GetString(c, "LOG_FORMAT", "json") == "console" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// reportColumns logs how each table differs from its model.
func reportColumns(db *gorm.DB) {
	log.Info().Msg("Generating column mismatch report...")

	report, err := models.ColumnReport(db)
	if err != nil {
		log.Fatal().Err(err).Msg("Error generating column report")
	}

	for _, table := range report {
		event := log.Info()
		if !table.Clean() {
			event = log.Warn()
		}
		event.
			Str("table", table.Table).
			Bool("exists", table.Exists).
			Strs("missingColumns", table.Missing).
			Strs("extraColumns", table.Extra).
			Msg("column report")
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}

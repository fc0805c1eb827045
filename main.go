// main.go
package main

import (
	"context"
	"log"
	"time"

	"resort-booking/cmd"
	"resort-booking/internal/data/repository"
	"resort-booking/internal/notification"
	"resort-booking/internal/wire"
	"resort-booking/pkg/database"
	"resort-booking/pkg/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Notification dispatch runs asynchronously; a delivery failure can
	// never block or roll back a booking state change.
	dispatcher := notification.NewDispatcher(
		notification.NewLogNotifier(logger),
		config.Notification.Buffer,
		logger,
	)
	defer dispatcher.Close()

	// Wire all dependencies
	app := wire.Wiring(repos, config, dispatcher, logger)

	// Completion sweep: approved bookings past their check-out move to
	// completed on a schedule. The status machine validates the
	// transition like any other.
	sweeper := cron.New()
	_, err = sweeper.AddFunc(config.Booking.SweepSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if _, err := app.Service.Booking.CompleteElapsed(ctx, time.Now()); err != nil {
			logger.Error("Completion sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		logger.Fatal("Failed to schedule completion sweep", zap.Error(err))
	}
	sweeper.Start()
	defer sweeper.Stop()

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}

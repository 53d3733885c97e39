// main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"food-delivery/cmd"
	"food-delivery/internal/data/repository"
	"food-delivery/internal/wire"
	"food-delivery/pkg/database"
	"food-delivery/pkg/mailer"
	"food-delivery/pkg/ratelimit"
	"food-delivery/pkg/storage"
	"food-delivery/pkg/utils"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func main() {
	createAdmin := flag.Bool("create-admin", false, "create the admin account from ADMIN_* settings and exit")
	flag.Parse()

	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database connected successfully")

	redisClient, err := database.InitRedis(config.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
		logger.Info("Redis connected, rate limiting enabled")
	} else {
		logger.Warn("REDIS_ADDR not set, rate limiting disabled")
	}

	images, err := storage.NewImageStore(afero.NewOsFs(), config.Upload)
	if err != nil {
		logger.Fatal("Failed to prepare upload directory", zap.Error(err))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(
		repos,
		config,
		ratelimit.NewLimiter(redisClient, config.RateLimit),
		images,
		mailer.New(config.Email, config.App, logger),
		logger,
	)

	if *createAdmin {
		created, err := app.Service.Auth.EnsureAdmin(ctx, config.Admin)
		if err != nil {
			logger.Fatal("Failed to create admin", zap.Error(err))
		}
		if created {
			logger.Info("Admin account created", zap.String("email", utils.MaskEmail(config.Admin.Email)))
		} else {
			logger.Info("Admin account already exists", zap.String("email", utils.MaskEmail(config.Admin.Email)))
		}
		return
	}

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}

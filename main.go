package main

import (
	"context"
	"log"

	"hostel-management/cmd"
	"hostel-management/internal/access"
	"hostel-management/internal/data/migrations"
	"hostel-management/internal/data/repository"
	"hostel-management/internal/wire"
	"hostel-management/pkg/database"
	"hostel-management/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.Log, config.App.Debug)
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

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.AutoMigrate {
		if err := migrate(db, logger); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	repos := repository.NewRepository(db, logger)
	engine := access.NewDefaultEngine()

	app := wire.Wiring(db, repos, engine, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, repos.Session, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return
	}
	logger.Info("Server stopped")
}

func migrate(db *database.DB, logger *zap.Logger) error {
	migrator, err := migrations.NewMigrator(db.Pool(), logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return migrator.Up(context.Background())
}

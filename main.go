package main

import (
	"flag"

	"go.uber.org/zap"

	"fritter/auth"
	"fritter/crud"
	"fritter/http"
)

// main is the app's entry point.
func main() {
	// Check if the flag "-prod" has been provided. It means that we're running in production.
	productionBool := flag.Bool("prod", false, "Provide this flag in production to ensure that a .config.json file is provided before the application starts.")
	resetBool := flag.Bool("reset", false, "Drop and recreate all tables before starting. Refused in production.")
	flag.Parse()

	logger := newLogger(*productionBool)
	defer logger.Sync()
	undo := zap.ReplaceGlobals(logger)
	defer undo()

	// Load configuration from a .config.json file if present, otherwise use the default dev setup.
	// In production the .config.json file is required.
	config, err := LoadConfig(*productionBool)
	must(logger, err)

	// Open a database connection and execute migrations.
	db := NewDB(config.Database.ConnectionInfo())
	must(logger, Open(db, config.IsProd()))
	defer Close(db)
	if *resetBool && !config.IsProd() {
		logger.Warn("resetting the database")
		must(logger, DestructiveReset(db))
	} else {
		must(logger, AutoMigrate(db))
	}

	// Start the crud services.
	services, err := crud.NewServices(
		db.Gorm,
		crud.WithUser(config.Pepper),
		crud.WithFreet(),
		crud.WithEngagements(),
		crud.WithPrompt(),
		crud.WithList(),
	)
	must(logger, err)

	// Set up a webserver.
	server := http.NewServer(logger, auth.NewTokens(config.JWTKey), config.ClientURL, services)

	// Serve the app.
	must(logger, server.Run(config.Port))
}

// newLogger returns a json logger in production and a human readable one otherwise.
func newLogger(isProd bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if isProd {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

// must is a little helper for shortening the fatal instruction.
func must(logger *zap.Logger, err error) {
	if err != nil {
		logger.Fatal("startup failed", zap.Error(err))
	}
}

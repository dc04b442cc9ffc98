package main

import (
	"go.uber.org/zap"

	"kinograph/crud"
	"kinograph/http"
	"kinograph/storage"
)

// main is the app's entry point.
func main() {
	config, err := LoadConfig()
	must(err)

	log := newLogger(config.IsProd())
	defer log.Sync()
	zap.ReplaceGlobals(log)

	// Set up the in-memory stores. Each store exclusively owns its map;
	// everything else goes through the crud services.
	movies := storage.NewMovieStorage()
	users := storage.NewUserStorage()

	// Start the crud services.
	services, err := crud.NewServices(movies, users, log,
		crud.WithUser(),
		crud.WithMovie(),
	)
	must(err)

	// Set up a webserver.
	server := http.NewServer(services, log)

	// Serve the app.
	log.Info("starting server", zap.Int("port", config.Port), zap.String("env", config.Env))
	if err := server.Run(config.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// newLogger builds the process logger for the given environment.
func newLogger(prod bool) *zap.Logger {
	var log *zap.Logger
	var err error
	if prod {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	must(err)
	return log
}

// must is a little helper for shortening the panic instruction.
func must(err error) {
	if err != nil {
		panic(err)
	}
}

package main

import (
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/crmap/backend/internal/config"
	"github.com/crmap/backend/internal/controllers"
	"github.com/crmap/backend/internal/router"
	"github.com/crmap/backend/internal/storage"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	cfg := config.Load()
	if cfg.UseLocalStore {
		log.Info().Str("dir", cfg.DataDir).Msg("using local store")
	} else {
		log.Info().Str("host", cfg.DBHost).Msg("using postgresql")
	}

	factory, err := storage.NewFactory(cfg)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	co, err := controllers.NewController(factory)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	usuarios, err := factory.Usuarios()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, err := router.Config()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	router.AttachRoutes(co, usuarios, r.Group("/"))

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}

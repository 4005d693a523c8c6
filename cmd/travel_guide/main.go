package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lleukocyte/travel-guide/api"
	"github.com/lleukocyte/travel-guide/config"
	"github.com/lleukocyte/travel-guide/internal/analytics"
	"github.com/lleukocyte/travel-guide/internal/auth"
	"github.com/lleukocyte/travel-guide/internal/geocoder"
	"github.com/lleukocyte/travel-guide/internal/mailer"
	"github.com/lleukocyte/travel-guide/internal/maintenance"
	"github.com/lleukocyte/travel-guide/internal/places"
	"github.com/lleukocyte/travel-guide/internal/ranking"
	"github.com/lleukocyte/travel-guide/internal/tokenizer"
	"github.com/lleukocyte/travel-guide/internal/users"
	"github.com/lleukocyte/travel-guide/store"
)

func main() {
	// Define command-line flags
	var (
		help       = flag.Bool("help", false, "Show help message")
		version    = flag.Bool("version", false, "Show version information")
		configPath = flag.String("config", "", "Optional YAML/JSON/TOML config file")
		envFile    = flag.String("env-file", ".env", "Dotenv file loaded before reading the environment")
		port       = flag.String("port", "", "Port to run the server on (overrides config)")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Travel Guide - place catalog with personalized recommendations\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nEnvironment:\n")
		fmt.Printf("  JWT_SECRET, PEPPER, DB_NAME, GEOCODER_API_KEY, SMTP_SERVER, SMTP_PORT, SMTP_USER, SMTP_PASS\n")
		fmt.Printf("  or any setting as %s_<SECTION>_<KEY>, e.g. %s_SERVER_PORT\n", config.EnvPrefix, config.EnvPrefix)
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                          # Start with .env and environment settings\n", os.Args[0])
		fmt.Printf("  %s --port 9000              # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --config config.yaml     # Read settings from a file\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Travel Guide v1.0.0\n")
		fmt.Printf("Personalized place ranking with Russian stemming\n")
		return
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	entry := logger.WithField("service", "travel-guide")

	settings, err := config.Load(*configPath, *envFile)
	if err != nil {
		entry.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != "" {
		settings.Server.Port = *port
	}
	configureLogger(logger, settings.Log, entry)

	// Storage
	st, err := store.Open(settings.Database.Path)
	if err != nil {
		entry.Fatalf("Failed to open database: %v", err)
	}
	defer st.Close()
	entry.WithField("path", settings.Database.Path).Info("Database ready")

	// Services
	tok := tokenizer.NewRussian(
		tokenizer.WithMinWordLength(settings.Ranking.MinWordLength),
		tokenizer.WithExtraStopwords(settings.Ranking.ExtraStopwords...),
	)
	tracker := analytics.NewService()
	placeService := places.NewService(st, ranking.NewRanker(tok), newGeocoder(settings, logger, entry), tracker, logger)

	userService := users.NewService(st,
		auth.NewPasswordHasher(settings.Auth.Pepper),
		auth.NewTokenIssuer(settings.Auth.JWTSecret, settings.Auth.TokenTTL),
		newSender(settings, logger, entry),
		settings.Auth.CodeLength,
		logger,
	)

	// Background cleanup
	if settings.Maintenance.Enabled {
		cleaner := maintenance.NewCleaner(st, settings.Maintenance.UnverifiedTTL, logger)
		if err := cleaner.Start(settings.Maintenance.Schedule); err != nil {
			entry.Fatalf("Failed to schedule cleanup: %v", err)
		}
		defer cleaner.Stop()
	}

	// Initialize Gin router
	if logger.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	// Setup API routes
	api.SetupRoutes(router, api.Dependencies{
		Users:          userService,
		Places:         placeService,
		Analytics:      tracker,
		Health:         st,
		UploadDir:      settings.Server.UploadDir,
		StaticDir:      settings.Server.StaticDir,
		AllowedOrigins: settings.Server.AllowedOrigins,
		MaxBodyBytes:   settings.Server.MaxBodyBytes,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:              ":" + settings.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		entry.Infof("Starting server on port %s...", settings.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			entry.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	entry.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		entry.WithError(err).Error("Graceful shutdown failed")
	}
}

func configureLogger(logger *logrus.Logger, settings config.LogSettings, entry *logrus.Entry) {
	level, err := logrus.ParseLevel(settings.Level)
	if err != nil {
		entry.Warnf("Unknown log level %q, using info", settings.Level)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if strings.EqualFold(settings.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
}

func newGeocoder(settings *config.Settings, logger *logrus.Logger, entry *logrus.Entry) geocoder.Geocoder {
	if settings.Geocoder.APIKey == "" {
		entry.Warn("GEOCODER_API_KEY not set, places will be stored without coordinates")
	}
	return geocoder.NewYandexClient(settings.Geocoder.APIKey, settings.Geocoder.URL,
		settings.Geocoder.Lang, settings.Geocoder.Timeout, logger)
}

func newSender(settings *config.Settings, logger *logrus.Logger, entry *logrus.Entry) mailer.Sender {
	if !settings.SMTP.Enabled() {
		entry.Warn("SMTP not configured, verification codes will be logged")
		return mailer.NewLogSender(logger)
	}
	return mailer.NewSMTPSender(settings.SMTP.Server, settings.SMTP.Port,
		settings.SMTP.User, settings.SMTP.Password, settings.SMTP.Timeout)
}

package main

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v3"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/seifalaa111/SOBS-Banking-App-sub000/internal/banking"
	"github.com/seifalaa111/SOBS-Banking-App-sub000/internal/events/kafka"
	"github.com/seifalaa111/SOBS-Banking-App-sub000/internal/store/memory"
)

func main() {
	// .env is optional, it only feeds APP_ENV and friends for local runs
	_ = godotenv.Load()

	// the web client reads amounts as plain JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// convert all int64 to string, so it does not break some log visualization tools built with JavaScript
			if a.Value.Kind() == slog.KindInt64 {
				return slog.String(a.Key, strconv.FormatInt(a.Value.Int64(), 10))
			}
			return a
		},
	})).With("app", "sobs-api")

	appConfig, err := banking.LoadConfig()

	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store := memory.New()

	if appConfig.SeedDemoData {
		if err := banking.Seed(store); err != nil {
			logger.Error("failed to seed demo data", "error", err)
			os.Exit(1)
		}

		logger.Info("demo data seeded")
	}

	idProvider, err := banking.NewIDProvider(appConfig.NodeID)

	if err != nil {
		logger.Error("failed to create id provider", "error", err)
		os.Exit(1)
	}

	publisher := banking.NewNoopPublisher()

	if len(appConfig.KafkaBrokers) != 0 {
		kafkaPublisher := kafka.NewPublisher(appConfig.KafkaBrokers, appConfig.KafkaTopic)
		defer kafkaPublisher.Close()

		publisher = kafkaPublisher

		logger.Info("publishing transaction events", "topic", appConfig.KafkaTopic)
	}

	service, err := banking.New(logger, store, idProvider, banking.NewTimeProvider(), publisher)

	if err != nil {
		logger.Error("failed to create service", "error", err)
		os.Exit(1)
	}

	api := banking.NewAPI(logger, service)

	r := chi.NewRouter()

	if appConfig.HTTPLog {
		r.Use(httplog.RequestLogger(logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaOTEL,
		}))
	}

	api.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    appConfig.ListenAddr,
		Handler: r,
	}

	logger.Info("listening", "addr", appConfig.ListenAddr)

	if err := srv.ListenAndServe(); err != nil {
		logger.Error("listen and serve failed", "error", err)
		os.Exit(1)
	}
}

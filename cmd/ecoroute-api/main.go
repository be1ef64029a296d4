// README: Entry point; loads config, wires services, starts the HTTP server and shuts down gracefully.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"ecoroute/internal/ai"
	"ecoroute/internal/config"
	httptransport "ecoroute/internal/http"
	"ecoroute/internal/infra"
	"ecoroute/internal/maps"
	"ecoroute/internal/modules/coach"
	"ecoroute/internal/modules/planner"
	"ecoroute/internal/modules/preference"
	"ecoroute/internal/modules/pricing"
	"ecoroute/internal/modules/trip"
	"ecoroute/internal/modules/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := infra.NewLogger(cfg.Log, cfg.IsDevelopment())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("ecoroute-api stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting ecoroute-api",
		zap.String("addr", cfg.HTTP.Addr),
		zap.String("store", cfg.Store),
		zap.String("directions", cfg.Directions.Provider),
	)

	verifier, err := newVerifier(ctx, cfg, log)
	if err != nil {
		return err
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer func() { _ = redisClient.Close() }()

	var (
		prefStore preference.Store
		tripStore trip.Store
		quota     coach.Quota
		health    httptransport.HealthCheck
	)
	switch cfg.Store {
	case config.StoreMongo:
		client, db, err := infra.NewMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		prefStore = preference.NewMongoStore(db)
		tripStore = trip.NewMongoStore(db)
		health = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		log.Warn("coach quota needs postgres; coach disabled with mongo store")
	default:
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return err
		}
		defer pool.Close()
		if cfg.DB.Migrations != "" {
			if err := infra.ApplyMigrations(ctx, pool, cfg.DB.Migrations); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			log.Info("migrations applied", zap.String("dir", cfg.DB.Migrations))
		}
		prefStore = preference.NewPGStore(pool)
		tripStore = trip.NewPGStore(pool)
		quota = coach.NewStore(pool)
		health = pool.Ping
	}

	provider, err := newDirections(cfg, redisClient, log)
	if err != nil {
		return err
	}

	prefSvc := preference.NewService(prefStore)

	policy := planner.DefaultPolicy()
	policy.MaxAlternatives = cfg.Directions.Alternatives
	plannerSvc := planner.NewService(provider, prefSvc, pricing.NewService(), planner.Options{
		Policy:          policy,
		DirectionsLimit: cfg.Directions.Timeout,
	}, log)

	var events trip.Publisher = trip.NopPublisher{}
	if w := infra.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic); w != nil {
		defer func() { _ = w.Close() }()
		events = trip.NewKafkaPublisher(w)
	}
	tripSvc := trip.NewService(tripStore, prefSvc, events, log.Named("trip"))

	deps := httptransport.ServerDeps{
		Planner:     plannerSvc,
		Trips:       tripSvc,
		Preferences: prefSvc,
		Verifier:    verifier,
		Redis:       redisClient,
		Health:      health,
		Config:      cfg,
		Logger:      log,
	}

	if cfg.Weather.APIKey != "" {
		deps.Weather = weather.NewService(
			weather.NewClient(cfg.Weather.BaseURL, cfg.Weather.APIKey),
			redisClient, cfg.Weather.CacheTTL, log.Named("weather"),
		)
	} else {
		log.Warn("OPENWEATHERMAP_API_KEY not set; weather disabled")
	}

	if cfg.Directions.GoogleKey != "" {
		geocoder, err := maps.NewGeocoder(cfg.Directions.GoogleKey)
		if err != nil {
			return err
		}
		deps.Geocoder = geocoder
	} else {
		log.Warn("GOOGLE_MAPS_API_KEY not set; geocoding disabled")
	}

	if cfg.AI.GeminiKey != "" && quota != nil {
		gemini, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
		if err != nil {
			return err
		}
		defer gemini.Close()
		deps.Coach = coach.NewService(quota, tripSvc, prefSvc, gemini, log.Named("coach"))
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httptransport.NewServer(deps).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Directions.Timeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down ecoroute-api")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}
	return nil
}

func newVerifier(ctx context.Context, cfg config.Config, log *zap.Logger) (infra.TokenVerifier, error) {
	if cfg.Firebase.ProjectID != "" {
		v, err := infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("firebase init: %w", err)
		}
		return v, nil
	}
	if cfg.IsDevelopment() {
		log.Warn("ECO_FIREBASE_PROJECT_ID not set; accepting dev:<uid> tokens")
		return infra.DevVerifier{}, nil
	}
	return nil, errors.New("ECO_FIREBASE_PROJECT_ID is required")
}

func newDirections(cfg config.Config, rdb *redis.Client, log *zap.Logger) (maps.DirectionsProvider, error) {
	var provider maps.DirectionsProvider
	switch cfg.Directions.Provider {
	case config.ProviderGoogle:
		g, err := maps.NewGoogleDirections(cfg.Directions.GoogleKey)
		if err != nil {
			return nil, err
		}
		provider = g
	default:
		provider = maps.NewMapboxDirections(cfg.Directions.MapboxURL, cfg.Directions.MapboxToken)
	}
	if cfg.Directions.CacheTTL > 0 {
		provider = maps.NewCachedDirections(provider, rdb, cfg.Directions.CacheTTL, log.Named("directions"))
	}
	return provider, nil
}

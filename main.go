package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/justbri/cinelog/config"
	"github.com/justbri/cinelog/database"
	"github.com/justbri/cinelog/handlers"
	"github.com/justbri/cinelog/logger"
	"github.com/justbri/cinelog/middleware"
	"github.com/justbri/cinelog/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)

	if err := database.Connect(cfg); err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	if database.Configured() {
		if err := database.RunMigrations(); err != nil {
			logger.Fatal().Err(err).Msg("Failed to run migrations")
		}
		if err := database.SeedQuotes(); err != nil {
			logger.Warn().Err(err).Msg("Failed to seed quotes")
		}
	} else {
		logger.Warn().Msg("DATABASE_URL not set, diary routes will answer 503")
	}

	if cfg.TMDBAPIKey == "" {
		logger.Warn().Msg("TMDB_API_KEY not set, TMDB lookups will fail")
	}
	services.InitTMDB(cfg)
	handlers.Init(cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      buildRouter(cfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.ServerPort).Str("env", cfg.Environment).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Forced shutdown")
	}
}

func buildRouter(cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.Metrics)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/", handlers.GetMovies)
		r.Get("/unique", handlers.GetUniqueMovies)
		r.Get("/top-rated", handlers.GetTopRatedMovies)
		r.Get("/rating-range", handlers.GetMoviesInRatingRange)
		r.Get("/search", handlers.SearchMovies)
		r.Post("/add", handlers.AddMovie)
		r.Put("/", handlers.UpsertMovie)

		r.Route("/stats", func(r chi.Router) {
			r.Get("/", handlers.GetStats)
			r.Get("/dashboard", handlers.StatsDashboard)
			r.Get("/ratings", handlers.StatsRatings)
			r.Get("/rating-distribution", handlers.StatsRatingDistribution)
			r.Get("/genres", handlers.StatsGenres)
			r.Get("/directors", handlers.StatsDirectors)
			r.Get("/runtime", handlers.StatsRuntime)
			r.Get("/release-years", handlers.StatsReleaseYears)
			r.Get("/streaks", handlers.StatsStreaks)
			r.Get("/monthly", handlers.StatsMonthly)
			r.Get("/day-of-week", handlers.StatsDayOfWeek)
			r.Get("/seasonal", handlers.StatsSeasonal)
			r.Get("/rewatches", handlers.StatsRewatches)
			r.Get("/tags", handlers.StatsTags)
			r.Get("/decades", handlers.StatsDecades)
			r.Get("/languages", handlers.StatsLanguages)
			r.Get("/five-star", handlers.StatsFiveStar)
			r.Get("/gaps", handlers.StatsGaps)
			r.Get("/binges", handlers.StatsBinges)
			r.Get("/first-last", handlers.StatsFirstLast)
			r.Get("/votes", handlers.StatsVotes)
			r.Get("/period", handlers.StatsPeriod)
			r.Get("/basic", handlers.StatsBasic)
			r.Get("/temporal", handlers.StatsTemporal)
			r.Get("/content", handlers.StatsContent)
			r.Get("/comprehensive", handlers.StatsComprehensive)
		})

		r.Route("/tmdb", func(r chi.Router) {
			r.Use(httprate.LimitByIP(30, time.Minute))
			r.Get("/search", handlers.TMDBSearch)
			r.Get("/trending", handlers.TMDBTrending)
			r.Get("/genres", handlers.TMDBGenres)
		})

		r.Get("/quotes/random", handlers.RandomQuote)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handlers.GetMovie)
			r.Put("/", handlers.UpdateMovie)
			r.Patch("/rating", handlers.UpdateRating)
			r.Delete("/", handlers.DeleteMovie)
			r.Post("/enhance", handlers.EnhanceMovie)
		})
	})

	return r
}

// cmd/api/main.go
// Main entry point for the application
// Bootstraps all components and starts the server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sparkmatch/sparkmatch-backend/internal/admin"
	"github.com/sparkmatch/sparkmatch-backend/internal/auth"
	"github.com/sparkmatch/sparkmatch-backend/internal/common/database"
	"github.com/sparkmatch/sparkmatch-backend/internal/config"
	"github.com/sparkmatch/sparkmatch-backend/internal/geo"
	"github.com/sparkmatch/sparkmatch-backend/internal/insights"
	"github.com/sparkmatch/sparkmatch-backend/internal/matchmaking"
	"github.com/sparkmatch/sparkmatch-backend/internal/oracle"
	"github.com/sparkmatch/sparkmatch-backend/internal/users"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting Sparkmatch API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found (%v), using environment variables", err)
	}

	// 2. Load and validate configuration
	log.Println("📋 Step 2: Loading configuration...")
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed: ", err)
	}
	log.Println("✅ Configuration is valid")

	// 3. Connect to PostgreSQL
	log.Println("🗄️  Step 3: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL: ", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL")

	// 4. Connect to Redis (optional; only the run lock uses it)
	log.Println("📮 Step 4: Connecting to Redis...")
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable (%v), falling back to in-process run locks", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("✅ Connected to Redis")
		}
	} else {
		log.Println("⚠️  Redis URL not configured, using in-process run locks")
	}

	// 5. Run database migrations
	log.Println("🔨 Step 5: Running database migrations...")
	if err := runMigrations(db); err != nil {
		log.Fatal("❌ Failed to run migrations: ", err)
	}
	log.Println("✅ Database migrations completed")

	// 6. Auth middleware (token issuance lives in the identity service)
	log.Println("🔐 Step 6: Initializing auth middleware...")
	authMiddleware := auth.NewMiddleware(cfg.JWTSecret)
	log.Println("✅ Auth middleware initialized")

	// 7. Users module
	log.Println("👤 Step 7: Initializing Users module...")
	usersRepo := users.NewPostgresRepository(db)

	var geocoder geo.Geocoder
	if cfg.EnableGeocoding {
		geocoder = geo.NewNominatimGeocoder(cfg.NominatimBaseURL, cfg.GeocodeTimeout)
		log.Println("   ✅ Geocoding enabled (Nominatim)")
	} else {
		log.Println("   ⚠️  Geocoding disabled, coordinates must be supplied by clients")
	}

	usersService := users.NewService(usersRepo, geocoder)
	usersHandler := users.NewHandler(usersService)
	log.Println("✅ Users module initialized")

	// 8. Compatibility oracle
	log.Println("🔮 Step 8: Initializing compatibility oracle...")
	oracleClient := oracle.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL, cfg.OracleTimeout)
	log.Printf("✅ Oracle client initialized (model %s)", cfg.GeminiModel)

	// 9. Matchmaking module
	log.Println("💘 Step 9: Initializing Matchmaking module...")
	matchStore := matchmaking.NewPostgresStore(db)
	selector := matchmaking.NewCandidateSelector(usersRepo, matchmaking.SelectorConfig{
		Limit:               cfg.MatchBatchSize,
		MinLookingForLength: cfg.MinLookingForLength,
		DefaultMinAge:       cfg.DefaultMinAge,
		DefaultMaxAge:       cfg.DefaultMaxAge,
	})
	matchService := matchmaking.NewService(matchStore, usersRepo, oracleClient, selector, matchmaking.ServiceConfig{
		Workers:       cfg.MatchWorkers,
		OracleTimeout: cfg.OracleTimeout,
	})

	var locker matchmaking.Locker
	if redisClient != nil {
		locker = matchmaking.NewRedisLocker(redisClient)
	} else {
		locker = matchmaking.NewLocalLocker()
	}

	runner := matchmaking.NewRunner(matchService, locker, matchmaking.RunnerConfig{
		QueueSize: cfg.MatchQueueSize,
		LockTTL:   cfg.MatchRunLockTTL,
	})
	matchHandler := matchmaking.NewHandler(matchService, runner)
	log.Println("✅ Matchmaking module initialized")

	// 10. Insights module
	log.Println("✨ Step 10: Initializing Insights module...")
	insightsHandler := insights.NewHandler(oracleClient, usersRepo)
	log.Println("✅ Insights module initialized")

	// 11. Admin module
	log.Println("📊 Step 11: Initializing Admin module...")
	adminHandler := admin.NewHandler(admin.NewPostgresStore(db))
	log.Println("✅ Admin module initialized")

	// 12. Routes
	log.Println("🛣️  Step 12: Setting up routes...")
	router := mux.NewRouter()

	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	users.RegisterRoutes(router, usersHandler, authMiddleware)
	matchmaking.RegisterRoutes(router, matchHandler, authMiddleware)
	insights.RegisterRoutes(router, insightsHandler, authMiddleware)
	admin.RegisterRoutes(router, adminHandler, authMiddleware)

	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)
	log.Println("✅ Routes registered")

	// 13. Start the background generation runner
	runnerCtx, stopRunner := context.WithCancel(context.Background())
	runner.Start(runnerCtx)
	log.Println("✅ Generation runner started")

	// 14. Start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("========================================")
		log.Printf("🚀 Server listening on http://localhost%s", srv.Addr)
		log.Printf("🌍 Environment: %s", cfg.Environment)
		log.Println("========================================")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server: ", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("⚠️  Shutdown signal received...")

	stopRunner()
	runner.Wait()
	log.Println("   - Generation runner stopped")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown: ", err)
	}

	log.Println("✅ Server exited gracefully")
}

var startTime = time.Now()

// healthCheck returns server health status
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","timestamp":%q,"uptime":%q}`,
		time.Now().Format(time.RFC3339), time.Since(startTime).String())
}

// loggingMiddleware logs all requests with their status and duration
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		log.Printf("%s %s [%d] %v", r.Method, r.RequestURI, wrapped.statusCode, time.Since(start))
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// runMigrations creates the schema when it does not exist yet
func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			name VARCHAR(255) NOT NULL,
			age INTEGER,
			gender VARCHAR(20),
			bio TEXT,
			interests TEXT[] NOT NULL DEFAULT '{}',
			looking_for_description TEXT,
			job_title VARCHAR(255),
			photo_url TEXT,
			location VARCHAR(255),
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			age_range_min INTEGER,
			age_range_max INTEGER,
			interested_in TEXT[] NOT NULL DEFAULT '{}',
			onboarding_completed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS match_recommendations (
			id BIGSERIAL PRIMARY KEY,
			source_user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			target_user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			algorithm TEXT NOT NULL,
			score INTEGER NOT NULL,
			reasoning TEXT,
			match_factors JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT unique_match_recommendation UNIQUE (source_user_id, target_user_id, algorithm)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_users_age ON users(age)`,
		`CREATE INDEX IF NOT EXISTS idx_match_recommendations_source
			ON match_recommendations(source_user_id, algorithm, score DESC)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

// This is the main entry point of the omok game backend. It initializes
// configuration, the database pool, migrations, the session layer, services
// and handlers, sets up the HTTP router and middleware, and starts the server
// with graceful shutdown.
//
// @title Omok Backend API
// @version 1.0
// @description Authentication and score tracking for the omok board game.
// @BasePath /
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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/user/omok-go/apperror"
	"github.com/user/omok-go/auth"
	"github.com/user/omok-go/background"
	"github.com/user/omok-go/config"
	"github.com/user/omok-go/db"
	"github.com/user/omok-go/score"
	"github.com/user/omok-go/sessions"
	"github.com/user/omok-go/users"
)

func main() {
	// .env is a development convenience; in production the variables are set
	// directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pool, err := db.NewDBPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	// pgcrypto must exist before the users migration runs: the id column
	// defaults to gen_random_uuid().
	if err := db.EnableExtensions(pool); err != nil {
		log.Fatalf("Failed to enable extensions: %v", err)
	}

	if err := db.RunMigrations(cfg.DB, "./db/migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Session layer. The Postgres store is the default; the in-memory store
	// serves local development without a durable session table.
	var sessionStore sessions.Store
	switch cfg.Session.Store {
	case config.SessionStoreMemory:
		sessionStore = sessions.NewMemoryStore()
		log.Println("Using in-memory session store (sessions are lost on restart)")
	default:
		sessionStore = sessions.NewPostgresStore(pool)
	}
	sessionManager := sessions.NewManager(sessionStore, *cfg.Session)

	// Expired session rows are swept in the background until shutdown.
	reaperStopChan := make(chan struct{})
	reaperWg := background.StartSessionReaper(sessionStore, reaperStopChan)

	// Services and handlers. Dependencies are injected explicitly at
	// construction; nothing reaches the store through shared global state.
	hasher, err := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatalf("Failed to create password hasher: %v", err)
	}
	userRepo := users.NewPostgresRepository(pool)

	authService := auth.NewService(userRepo, hasher)
	authHandlers := auth.NewHandlers(authService, sessionManager)

	scoreService := score.NewService(userRepo)
	scoreHandlers := score.NewHandlers(scoreService, sessionManager)

	// Router and middleware. Chi requires all middleware to be registered
	// before any routes.
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Panic recovery that answers in the standard error shape instead of an
	// empty 500.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Printf("Panic: %+v", rvr)
					auth.WriteError(ww, r, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(ww, r)
		})
	})

	// Ping route kept for client compatibility.
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("respond with a resource"))
	})

	r.Post("/signup", authHandlers.HandleSignup())
	r.Post("/signin", authHandlers.HandleSignin())
	r.Post("/signout", authHandlers.HandleSignout())
	r.Post("/addscore", scoreHandlers.HandleAddScore())
	r.Get("/score", scoreHandlers.HandleGetScore())

	addr := fmt.Sprintf(":%s", cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for SIGINT/SIGTERM, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Println("Signaling session reaper to stop...")
	close(reaperStopChan)
	reaperWg.Wait()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}

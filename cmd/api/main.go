package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cashlens/internal/api/handlers"
	"cashlens/internal/api/middleware"
	"cashlens/internal/config"
	"cashlens/internal/llm"
	"cashlens/internal/logger"
)

func main() {
	cfg := config.Load()

	// Flags override the environment.
	var (
		port  = flag.String("port", cfg.Server.Port, "HTTP server port")
		model = flag.String("model", cfg.LLM.Model, "model name for classification and explanation")
	)
	flag.Parse()

	log := logger.New()

	if !cfg.LLM.APIKeySet {
		log.Warn().Msg("No GEMINI_API_KEY or GOOGLE_API_KEY configured - briefing and chat will fail")
	}

	ctx := context.Background()

	completer, err := llm.NewGemini(ctx, *model)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create model client")
	}

	// Initialize handlers
	statementsHandler := handlers.NewStatementsHandler(log)
	snapshotHandler := handlers.NewSnapshotHandler(log)
	briefingHandler := handlers.NewBriefingHandler(completer, log)
	chatHandler := handlers.NewChatHandler(completer, log)

	// Create router
	mux := http.NewServeMux()

	mux.HandleFunc("/api/statements/parse", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			statementsHandler.Parse(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/snapshot", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			snapshotHandler.Build(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/briefing", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			briefingHandler.Briefing(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			chatHandler.Chat(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // chat holds two model calls plus the explainer
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", *port).Str("model", *model).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

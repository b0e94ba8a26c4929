package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/halverson/puckcast/internal/api/websocket"
	"github.com/halverson/puckcast/internal/cache"
	"github.com/halverson/puckcast/internal/copilot"
	"github.com/halverson/puckcast/internal/predict"
	"github.com/halverson/puckcast/internal/progress"
	"github.com/halverson/puckcast/internal/rag"
	"github.com/halverson/puckcast/internal/scheduler"
	"github.com/halverson/puckcast/internal/store"
)

// Deps carries the services the API serves. Cache, RAG and Hub may be
// nil; the affected endpoints degrade or 503.
type Deps struct {
	DB           *store.Database
	Cache        *cache.Cache
	Engine       *predict.Engine
	Copilot      *copilot.Copilot
	RAG          *rag.Service
	Orchestrator *scheduler.Orchestrator
	Ledger       *progress.Ledger
	Hub          *websocket.Hub
}

// Server is the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates the API server with all routes mounted
func NewServer(port string, deps Deps) *Server {
	handler := NewHandler(deps)

	router := mux.NewRouter()
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")
	if deps.Hub != nil {
		router.HandleFunc("/ws/updates", deps.Hub.Handler)
	}

	api := router.PathPrefix("/api/v1").Subrouter()

	// Copilot
	api.HandleFunc("/query", handler.Query).Methods("POST")

	// Players and stats
	api.HandleFunc("/players/{name}", handler.GetPlayer).Methods("GET")
	api.HandleFunc("/leaders/{stat}", handler.GetLeaders).Methods("GET")
	api.HandleFunc("/injuries", handler.GetInjuries).Methods("GET")

	// Games
	api.HandleFunc("/games/today", handler.GetTodaysGames).Methods("GET")
	api.HandleFunc("/games/refresh", handler.RefreshGames).Methods("POST")

	// Predictions
	api.HandleFunc("/predictions/matchup/{home}/{away}", handler.GetMatchupPrediction).Methods("GET")
	api.HandleFunc("/predictions/player/{name}", handler.GetPlayerPrediction).Methods("GET")
	api.HandleFunc("/predictions/tonight", handler.GetTonightPredictions).Methods("GET")
	api.HandleFunc("/stats/matchup/{home}/{away}", handler.GetMatchupContext).Methods("GET")

	// Operations
	api.HandleFunc("/data/status", handler.GetDataStatus).Methods("GET")
	api.HandleFunc("/updates/run", handler.RunUpdates).Methods("POST")
	api.HandleFunc("/updates/daily", handler.RunDailyUpdate).Methods("POST")
	api.HandleFunc("/updates/salaries", handler.RunSalaryUpdate).Methods("POST")

	// Documents
	api.HandleFunc("/documents", handler.AddDocument).Methods("POST")
	api.HandleFunc("/documents/search", handler.SearchDocuments).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

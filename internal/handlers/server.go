package handlers

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"marquee/internal/config"
	"marquee/internal/core"
	"marquee/internal/utils"
	"marquee/web"
)

type Server struct {
	config     *config.Config
	manager    *core.Manager
	logger     *utils.Logger
	httpServer *http.Server
	apiHandler *APIHandler
	eventsHub  *EventsHub
}

func NewServer(cfg *config.Config, manager *core.Manager, logger *utils.Logger) *Server {
	return &Server{
		config:     cfg,
		manager:    manager,
		logger:     logger,
		apiHandler: NewAPIHandler(manager, logger),
		eventsHub:  NewEventsHub(manager.Store(), logger),
	}
}

// Router builds the full route table. Split out from Start so tests can
// drive it through httptest.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(requestIDMiddleware)
	router.Use(loggingMiddleware(s.logger))
	router.Use(recoverMiddleware(s.logger))

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/movies", s.apiHandler.GetMovies).Methods("GET")
	api.HandleFunc("/movies/{name}", s.apiHandler.GetMovie).Methods("GET")
	api.HandleFunc("/series", s.apiHandler.GetSeries).Methods("GET")
	api.HandleFunc("/series/{name}", s.apiHandler.GetSeriesByName).Methods("GET")
	api.HandleFunc("/series/{name}/episodes", s.apiHandler.GetEpisodes).Methods("GET")
	api.HandleFunc("/search", s.apiHandler.UniversalSearch).Methods("GET")
	api.HandleFunc("/iframe", s.apiHandler.GetIframe).Methods("GET")
	api.HandleFunc("/trending", s.apiHandler.GetTrending).Methods("GET")
	api.HandleFunc("/stats", s.apiHandler.GetStats).Methods("GET")
	api.HandleFunc("/genres", s.apiHandler.GetGenres).Methods("GET")
	api.HandleFunc("/status", s.apiHandler.GetSystemStatus).Methods("GET")
	api.HandleFunc("/health", s.apiHandler.HealthCheck).Methods("GET")
	api.Handle("/events", s.eventsHub).Methods("GET")

	// Anything else under /api answers with the route catalog.
	api.PathPrefix("/").HandlerFunc(s.apiHandler.NotFoundAPI)
	api.HandleFunc("", s.apiHandler.NotFoundAPI)

	if s.config.App.UIEnabled {
		router.PathPrefix("/").Handler(staticHandler())
	}

	return router
}

// staticHandler serves the embedded front-end. Raw catalog files are
// never reachable over HTTP and directory listings are disabled.
func staticHandler() http.Handler {
	static, err := fs.Sub(web.Files, "static")
	if err != nil {
		panic(err)
	}
	fileServer := http.FileServer(http.FS(static))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/")

		if strings.HasPrefix(path, "data/") || strings.HasSuffix(path, ".json") {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		// Block directory listing for everything but the landing page.
		if path != "" && strings.HasSuffix(r.URL.Path, "/") {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		fileServer.ServeHTTP(w, r)
	})
}

func (s *Server) Start() error {
	go s.eventsHub.Run()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.App.Port),
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	s.logger.Info("Starting server on port", s.config.App.Port)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

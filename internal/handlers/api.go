package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"marquee/internal/core"
	"marquee/internal/utils"
)

// Version is the fixed string reported by the health endpoint.
const Version = "1.0.0"

type APIHandler struct {
	manager *core.Manager
	logger  *utils.Logger
}

func NewAPIHandler(manager *core.Manager, logger *utils.Logger) *APIHandler {
	return &APIHandler{manager: manager, logger: logger}
}

// Envelope is the uniform JSON response wrapper.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
	Total   *int        `json:"total,omitempty"`
	Limit   *int        `json:"limit,omitempty"`
	Offset  *int        `json:"offset,omitempty"`
	HasMore *bool       `json:"hasMore,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondData(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

func respondPage(w http.ResponseWriter, data interface{}, page core.Page) {
	respondJSON(w, http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Total:   &page.Total,
		Limit:   &page.Limit,
		Offset:  &page.Offset,
		HasMore: &page.HasMore,
	})
}

func respondError(w http.ResponseWriter, code int, errType, message string) {
	respondJSON(w, code, Envelope{Success: false, Error: errType, Message: message})
}

// queryInt parses an integer query parameter, returning fallback when the
// parameter is absent or malformed.
func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// GetMovies lists and searches the movie collection.
func (h *APIHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := h.manager.Movies(q.Get("search"), q.Get("genre"),
		queryInt(r, "limit", 0), queryInt(r, "offset", 0))
	respondPage(w, page.Items, page)
}

// GetMovie returns a single movie by its case-insensitive name.
func (h *APIHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	movie := h.manager.MovieByName(name)
	if movie == nil {
		respondError(w, http.StatusNotFound, "movie_not_found", "No movie named "+name)
		return
	}
	respondData(w, movie)
}

// GetSeries lists and searches the series collection.
func (h *APIHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := h.manager.Series(q.Get("search"), q.Get("genre"),
		queryInt(r, "limit", 0), queryInt(r, "offset", 0))
	respondPage(w, page.Items, page)
}

// GetSeriesByName returns a single series, episodes included.
func (h *APIHandler) GetSeriesByName(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	series := h.manager.SeriesByName(name)
	if series == nil {
		respondError(w, http.StatusNotFound, "series_not_found", "No series named "+name)
		return
	}
	respondData(w, series)
}

// GetEpisodes returns a series' episodes, optionally filtered by season
// and episode number.
func (h *APIHandler) GetEpisodes(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	episodes, found := h.manager.Episodes(name,
		queryInt(r, "season", 0), queryInt(r, "episode", 0))
	if !found {
		respondError(w, http.StatusNotFound, "series_not_found", "No series named "+name)
		return
	}
	respondData(w, episodes)
}

// UniversalSearch searches movies and series at once. The q parameter is
// required; type optionally narrows to one collection.
func (h *APIHandler) UniversalSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	term := q.Get("q")
	if term == "" {
		respondError(w, http.StatusBadRequest, "missing_query", "Query parameter 'q' is required")
		return
	}

	results, page := h.manager.Search(term, q.Get("type"),
		queryInt(r, "limit", 0), queryInt(r, "offset", 0))
	h.logger.Debug("Search:", term, "->", page.Total, "results")
	respondPage(w, results, page)
}

// GetIframe resolves one playable iframe URL for a title.
func (h *APIHandler) GetIframe(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	title := q.Get("title")
	if title == "" {
		respondError(w, http.StatusBadRequest, "missing_title", "Query parameter 'title' is required")
		return
	}

	resolution := h.manager.ResolveIframe(title,
		queryInt(r, "season", 0), queryInt(r, "episode", 0), q.Get("source"))
	if resolution == nil {
		h.logger.Info("No playable source for:", title)
		respondError(w, http.StatusNotFound, "iframe_not_found", "No playable source for "+title)
		return
	}
	respondData(w, resolution)
}

// GetTrending returns the shuffled high-rating mix of both collections.
func (h *APIHandler) GetTrending(w http.ResponseWriter, r *http.Request) {
	respondData(w, h.manager.Trending(queryInt(r, "limit", 0)))
}

// GetStats aggregates the whole catalog.
func (h *APIHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	respondData(w, h.manager.Stats())
}

// GetGenres returns the deduplicated genre tag set.
func (h *APIHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	respondData(w, h.manager.Genres())
}

// HealthCheck always succeeds, regardless of data-file state.
func (h *APIHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondData(w, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
	})
}

// GetSystemStatus reports process and host health.
func (h *APIHandler) GetSystemStatus(w http.ResponseWriter, r *http.Request) {
	respondData(w, h.manager.GetSystemStatus())
}

// NotFoundAPI answers unmatched /api paths with the route catalog.
func (h *APIHandler) NotFoundAPI(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusNotFound, Envelope{
		Success: false,
		Error:   "route_not_found",
		Message: "Unknown API route: " + r.URL.Path,
		Data: map[string][]string{
			"routes": {
				"GET /api/movies",
				"GET /api/movies/{name}",
				"GET /api/series",
				"GET /api/series/{name}",
				"GET /api/series/{name}/episodes",
				"GET /api/search",
				"GET /api/iframe",
				"GET /api/trending",
				"GET /api/stats",
				"GET /api/genres",
				"GET /api/status",
				"GET /api/health",
				"GET /api/events",
			},
		},
	})
}

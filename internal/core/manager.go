package core

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"

	"marquee/internal/clients/notifications"
	"marquee/internal/config"
	"marquee/internal/store"
	"marquee/internal/store/models"
	"marquee/internal/utils"
)

// Manager ties the content store, query engine, resolver, and aggregator
// together for the HTTP layer, and runs the periodic catalog census.
type Manager struct {
	config    *config.Config
	store     *store.Store
	notifier  notifications.Notifier
	logger    *utils.Logger
	scheduler *cron.Cron
	started   time.Time

	watchCancel context.CancelFunc

	censusMu  sync.Mutex
	catalogOK bool
}

func NewManager(cfg *config.Config, st *store.Store, logger *utils.Logger) *Manager {
	m := &Manager{
		config:    cfg,
		store:     st,
		logger:    logger,
		scheduler: cron.New(),
		started:   time.Now(),
		catalogOK: true,
	}

	if cfg.Notifications.PushbulletKey != "" {
		m.notifier = notifications.NewPushbulletClient(cfg.Notifications.PushbulletKey, logger)
	}

	return m
}

// Store exposes the underlying content store, mainly so the events hub
// can subscribe to catalog changes.
func (m *Manager) Store() *store.Store {
	return m.store
}

// verifyNotifier sends a test push so a bad API key surfaces at startup
// instead of on the first real alert.
func (m *Manager) verifyNotifier() {
	if m.notifier == nil {
		return
	}
	if err := m.notifier.Test(); err != nil {
		m.logger.Error("Notifier test failed, alerts may not be delivered:", err)
		return
	}
	m.logger.Info("Notifier test succeeded.")
}

// StartScheduler begins the periodic catalog census and, when enabled,
// the data-directory watcher.
func (m *Manager) StartScheduler() {
	go m.verifyNotifier()
	if _, err := m.scheduler.AddFunc(m.config.Catalog.CensusInterval, m.censusCatalog); err != nil {
		m.logger.Error("Invalid census interval, census disabled:", err)
	} else {
		m.scheduler.Start()
	}

	if m.config.Catalog.WatchEnabled {
		ctx, cancel := context.WithCancel(context.Background())
		m.watchCancel = cancel
		go func() {
			if err := m.store.Watch(ctx); err != nil {
				m.logger.Error("Catalog watcher stopped:", err)
			}
		}()
	}

	m.logger.Info("Scheduler started. Performing initial catalog census.")
	go m.censusCatalog()
}

func (m *Manager) Stop() {
	if m.scheduler != nil {
		m.scheduler.Stop()
	}
	if m.watchCancel != nil {
		m.watchCancel()
	}
}

// censusCatalog loads both collections, logs their sizes, and alerts when
// a backing file that the request path silently tolerates is broken.
func (m *Manager) censusCatalog() {
	m.censusMu.Lock()
	defer m.censusMu.Unlock()

	err := m.store.Check()
	if err != nil {
		m.logger.Error("Catalog census failed:", err)
		if m.catalogOK && m.notifier != nil {
			m.notifier.NotifyCatalogUnreadable(err.Error())
		}
		m.catalogOK = false
		return
	}

	movies := m.store.LoadMovies()
	series := m.store.LoadSeries()
	m.logger.Info(fmt.Sprintf("Catalog census: %d movies, %d series", len(movies), len(series)))

	if !m.catalogOK && m.notifier != nil {
		m.notifier.NotifyCatalogRecovered(len(movies), len(series))
	}
	m.catalogOK = true
}

// Movies returns one page of the movie collection after filtering.
func (m *Manager) Movies(search, genre string, limit, offset int) Page {
	filtered := Filter(m.store.LoadMovies(), search, genre)
	return Paginate(filtered, limit, offset)
}

// Series returns one page of the series collection after filtering.
// Episode lists are resolved separately so list pages stay small.
func (m *Manager) Series(search, genre string, limit, offset int) Page {
	series := m.store.LoadSeries()
	filtered := Filter(seriesTitles(series), search, genre)
	return Paginate(filtered, limit, offset)
}

// MovieByName returns the movie with the given name, or nil.
func (m *Manager) MovieByName(name string) *models.Title {
	return FindMovie(m.store.LoadMovies(), name)
}

// SeriesByName returns the series (with episodes) with the given name, or nil.
func (m *Manager) SeriesByName(name string) *models.Series {
	return FindSeries(m.store.LoadSeries(), name)
}

// Episodes returns a series' episodes, optionally narrowed to a season
// and episode number. Zero values leave a dimension unfiltered.
func (m *Manager) Episodes(name string, season, episode int) ([]models.Episode, bool) {
	show := m.SeriesByName(name)
	if show == nil {
		return nil, false
	}

	episodes := []models.Episode{}
	for _, ep := range show.Episodes {
		if season != 0 && ep.Season != season {
			continue
		}
		if episode != 0 && ep.Episode != episode {
			continue
		}
		episodes = append(episodes, ep)
	}
	return episodes, true
}

// SearchResult tags a title with its content type for mixed search output.
type SearchResult struct {
	models.Title
	Type models.ContentType `json:"type"`
}

// Search runs the universal search over both collections. contentType
// narrows the result to "movie" or "series"; anything else means both.
func (m *Manager) Search(term, contentType string, limit, offset int) ([]SearchResult, Page) {
	var pool []SearchResult

	if contentType != string(models.ContentTypeSeries) {
		for _, t := range Filter(m.store.LoadMovies(), term, "") {
			pool = append(pool, SearchResult{Title: t, Type: models.ContentTypeMovie})
		}
	}
	if contentType != string(models.ContentTypeMovie) {
		for _, t := range Filter(seriesTitles(m.store.LoadSeries()), term, "") {
			pool = append(pool, SearchResult{Title: t, Type: models.ContentTypeSeries})
		}
	}

	titles := make([]models.Title, len(pool))
	for i, r := range pool {
		titles[i] = r.Title
	}
	page := Paginate(titles, limit, offset)

	start := page.Offset
	if start > len(pool) {
		start = len(pool)
	}
	end := start + len(page.Items)
	results := pool[start:end]
	if results == nil {
		results = []SearchResult{}
	}
	return results, page
}

// ResolveIframe finds one playable iframe URL for a title.
func (m *Manager) ResolveIframe(title string, season, episode int, source string) *Resolution {
	return Resolve(m.store.LoadMovies(), m.store.LoadSeries(), title, season, episode, source)
}

// Trending returns the shuffled high-rating mix of movies and series.
func (m *Manager) Trending(limit int) []TrendingItem {
	return Trending(m.store.LoadMovies(), seriesTitles(m.store.LoadSeries()), limit)
}

// Stats aggregates the whole catalog.
func (m *Manager) Stats() Stats {
	return Aggregate(m.store.LoadMovies(), m.store.LoadSeries())
}

// Genres returns the deduplicated genre tag set.
func (m *Manager) Genres() []string {
	return Genres(m.store.LoadMovies(), m.store.LoadSeries())
}

// SystemStatus is the snapshot served by /api/status.
type SystemStatus struct {
	CatalogOK      bool    `json:"catalogOk"`
	Movies         int     `json:"movies"`
	Series         int     `json:"series"`
	UptimeSeconds  int64   `json:"uptimeSeconds"`
	Goroutines     int     `json:"goroutines"`
	MemoryUsedPct  float64 `json:"memoryUsedPercent"`
	HostUptimeSecs uint64  `json:"hostUptimeSeconds"`
}

// GetSystemStatus reports process and host health alongside catalog
// reachability.
func (m *Manager) GetSystemStatus() SystemStatus {
	status := SystemStatus{
		CatalogOK:     m.store.Check() == nil,
		Movies:        len(m.store.LoadMovies()),
		Series:        len(m.store.LoadSeries()),
		UptimeSeconds: int64(time.Since(m.started).Seconds()),
		Goroutines:    runtime.NumGoroutine(),
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		status.MemoryUsedPct = vm.UsedPercent
	}
	if uptime, err := host.Uptime(); err == nil {
		status.HostUptimeSecs = uptime
	}

	return status
}

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"marquee/internal/store/models"
	"marquee/internal/utils"
)

const (
	MoviesFile = "movies.json"
	SeriesFile = "series.json"
)

// Store reads the two catalog files anew on every call. There is no
// caching layer: the API never writes, so the files on disk are the only
// source of truth and external edits show up on the next request.
type Store struct {
	dataPath string
	logger   *utils.Logger

	mu          sync.Mutex
	subscribers []chan string
}

func NewStore(dataPath string, logger *utils.Logger) *Store {
	return &Store{dataPath: dataPath, logger: logger}
}

// LoadMovies returns the movie collection. A missing or corrupt file
// degrades to an empty collection rather than an error.
func (s *Store) LoadMovies() []models.Title {
	var movies []models.Title
	if err := s.load(MoviesFile, &movies); err != nil {
		s.logger.Error("Failed to load movie catalog:", err)
		return []models.Title{}
	}
	return movies
}

// LoadSeries returns the series collection, degrading to empty on error.
func (s *Store) LoadSeries() []models.Series {
	var series []models.Series
	if err := s.load(SeriesFile, &series); err != nil {
		s.logger.Error("Failed to load series catalog:", err)
		return []models.Series{}
	}
	return series
}

// Check reports whether both backing files are readable and parseable.
// The census scheduler uses this to alert on catalog breakage that the
// request path deliberately swallows.
func (s *Store) Check() error {
	var movies []models.Title
	if err := s.load(MoviesFile, &movies); err != nil {
		return fmt.Errorf("movie catalog: %w", err)
	}
	var series []models.Series
	if err := s.load(SeriesFile, &series); err != nil {
		return fmt.Errorf("series catalog: %w", err)
	}
	return nil
}

func (s *Store) load(name string, out interface{}) error {
	data, err := os.ReadFile(filepath.Join(s.dataPath, name))
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// Subscribe returns a channel that receives the file name whenever a
// catalog file changes on disk. The channel is closed when the watcher
// stops.
func (s *Store) Subscribe() chan string {
	ch := make(chan string, 4)
	s.mu.Lock()
	s.subscribers = append(s.subscribers, ch)
	s.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel registered with Subscribe.
func (s *Store) Unsubscribe(ch chan string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subscribers {
		if sub == ch {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			close(ch)
			return
		}
	}
}

// NotifyChanged pushes a catalog-change notification to all subscribers.
// The watcher calls this on file writes; slow subscribers miss events
// rather than blocking it.
func (s *Store) NotifyChanged(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subscribers {
		select {
		case sub <- name:
		default: // slow subscriber, drop the event
		}
	}
}

// Watch monitors the data directory and publishes a notification whenever
// one of the catalog files is written. Blocks until ctx is cancelled.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.dataPath); err != nil {
		return fmt.Errorf("watch %s: %w", s.dataPath, err)
	}

	for {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			for _, sub := range s.subscribers {
				close(sub)
			}
			s.subscribers = nil
			s.mu.Unlock()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name := filepath.Base(event.Name)
			if name != MoviesFile && name != SeriesFile {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				s.logger.Info("Catalog file changed:", name)
				s.NotifyChanged(name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("Catalog watcher error:", err)
		}
	}
}

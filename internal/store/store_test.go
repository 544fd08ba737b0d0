package store_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"marquee/internal/store"
	"marquee/internal/utils"
)

func newTestStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	dir := t.TempDir()
	logger := utils.NewLogger(false, io.Discard)
	return store.NewStore(dir, logger), dir
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadMovies(t *testing.T) {
	st, dir := newTestStore(t)
	writeFile(t, dir, store.MoviesFile, `[
		{"name": "Inception", "genre": "Sci-Fi", "rating": "8.8",
		 "sources": {"source1": "https://a/1"}}
	]`)

	movies := st.LoadMovies()
	if len(movies) != 1 {
		t.Fatalf("got %d movies, want 1", len(movies))
	}
	if movies[0].Name != "Inception" || movies[0].Sources.Source1 != "https://a/1" {
		t.Errorf("unexpected movie: %+v", movies[0])
	}
}

func TestLoadSeriesWithEpisodes(t *testing.T) {
	st, dir := newTestStore(t)
	writeFile(t, dir, store.SeriesFile, `[
		{"name": "Show", "genre": "Drama",
		 "episodes": [{"season": 1, "episode": 1, "title": "Pilot",
		               "sources": {"source1": "https://a/s1e1"}}]}
	]`)

	series := st.LoadSeries()
	if len(series) != 1 {
		t.Fatalf("got %d series, want 1", len(series))
	}
	if len(series[0].Episodes) != 1 || series[0].Episodes[0].Title != "Pilot" {
		t.Errorf("unexpected episodes: %+v", series[0].Episodes)
	}
}

func TestMissingFileDegradesToEmpty(t *testing.T) {
	st, _ := newTestStore(t)

	// No file on disk at all: both loads swallow the error.
	if movies := st.LoadMovies(); len(movies) != 0 {
		t.Errorf("got %d movies from missing file, want 0", len(movies))
	}
	if series := st.LoadSeries(); len(series) != 0 {
		t.Errorf("got %d series from missing file, want 0", len(series))
	}
}

func TestCorruptFileDegradesToEmpty(t *testing.T) {
	st, dir := newTestStore(t)
	writeFile(t, dir, store.MoviesFile, `{not json`)

	if movies := st.LoadMovies(); len(movies) != 0 {
		t.Errorf("got %d movies from corrupt file, want 0", len(movies))
	}
}

func TestCheck(t *testing.T) {
	st, dir := newTestStore(t)

	if err := st.Check(); err == nil {
		t.Error("Check on empty data dir should fail")
	}

	writeFile(t, dir, store.MoviesFile, `[]`)
	writeFile(t, dir, store.SeriesFile, `[]`)
	if err := st.Check(); err != nil {
		t.Errorf("Check with valid files failed: %v", err)
	}

	writeFile(t, dir, store.SeriesFile, `broken`)
	if err := st.Check(); err == nil {
		t.Error("Check with corrupt series file should fail")
	}
}

func TestWatchNotifiesSubscribers(t *testing.T) {
	st, dir := newTestStore(t)
	writeFile(t, dir, store.MoviesFile, `[]`)

	ch := st.Subscribe()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- st.Watch(ctx) }()

	// The watcher registers asynchronously; keep rewriting the catalog
	// until the change is observed.
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.After(5 * time.Second)

	var got string
waiting:
	for {
		select {
		case got = <-ch:
			break waiting
		case <-ticker.C:
			writeFile(t, dir, store.MoviesFile, `[{"name": "A"}]`)
		case <-deadline:
			t.Fatal("no catalog change event within deadline")
		}
	}
	if got != store.MoviesFile {
		t.Errorf("event = %q, want %q", got, store.MoviesFile)
	}

	// Cancelling the watcher closes subscriber channels.
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Watch returned error: %v", err)
	}
	for {
		if _, open := <-ch; !open {
			break
		}
	}
}

func TestWatchIgnoresUnrelatedFiles(t *testing.T) {
	st, dir := newTestStore(t)

	ch := st.Subscribe()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go st.Watch(ctx)

	// Give the watcher a moment to register, then touch a non-catalog file.
	time.Sleep(200 * time.Millisecond)
	writeFile(t, dir, "notes.txt", "scratch")

	select {
	case name := <-ch:
		t.Errorf("unexpected event for unrelated file: %q", name)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestExternalEditsAreVisible(t *testing.T) {
	st, dir := newTestStore(t)
	writeFile(t, dir, store.MoviesFile, `[{"name": "A"}]`)

	if got := len(st.LoadMovies()); got != 1 {
		t.Fatalf("got %d movies, want 1", got)
	}

	// The store re-reads per call, so external edits show up immediately.
	writeFile(t, dir, store.MoviesFile, `[{"name": "A"}, {"name": "B"}]`)
	if got := len(st.LoadMovies()); got != 2 {
		t.Errorf("got %d movies after edit, want 2", got)
	}
}

package core_test

import (
	"testing"

	"marquee/internal/core"
	"marquee/internal/store/models"
)

func TestAggregate(t *testing.T) {
	movies := []models.Title{
		{Name: "A", Genre: "Action, Drama", Rating: "9"},
		{Name: "B", Genre: "action , Sci-Fi", Rating: "7"},
	}
	series := []models.Series{
		{
			Title: models.Title{Name: "S", Genre: "Drama, Crime", Rating: "7"},
			Episodes: []models.Episode{
				{Season: 1, Episode: 1},
				{Season: 1, Episode: 2},
			},
		},
	}

	stats := core.Aggregate(movies, series)

	if stats.TotalMovies != 2 || stats.TotalSeries != 1 || stats.TotalContent != 3 {
		t.Errorf("counts = %d/%d/%d, want 2/1/3", stats.TotalMovies, stats.TotalSeries, stats.TotalContent)
	}
	if stats.TotalEpisodes != 2 {
		t.Errorf("totalEpisodes = %d, want 2", stats.TotalEpisodes)
	}
	// Action, Drama, Sci-Fi, Crime — deduplicated case-insensitively.
	if stats.TotalGenres != 4 {
		t.Errorf("totalGenres = %d, want 4", stats.TotalGenres)
	}
	if stats.AverageMovieRating != "8.0" {
		t.Errorf("averageMovieRating = %q, want \"8.0\"", stats.AverageMovieRating)
	}
	if stats.AverageSeriesRating != "7.0" {
		t.Errorf("averageSeriesRating = %q, want \"7.0\"", stats.AverageSeriesRating)
	}
}

func TestAggregateSingleRatings(t *testing.T) {
	movies := []models.Title{{Name: "A", Rating: "9"}}
	series := []models.Series{{Title: models.Title{Name: "S", Rating: "7"}}}

	stats := core.Aggregate(movies, series)
	if stats.AverageMovieRating != "9.0" {
		t.Errorf("averageMovieRating = %q, want \"9.0\"", stats.AverageMovieRating)
	}
	if stats.AverageSeriesRating != "7.0" {
		t.Errorf("averageSeriesRating = %q, want \"7.0\"", stats.AverageSeriesRating)
	}
}

func TestAggregateEmptyIsNaN(t *testing.T) {
	// Division by zero is unguarded by contract: an empty collection
	// reports a non-numeric average.
	stats := core.Aggregate(nil, nil)
	if stats.AverageMovieRating != "NaN" {
		t.Errorf("averageMovieRating = %q, want \"NaN\"", stats.AverageMovieRating)
	}
}

func TestAggregateMissingRatingDefaultsToZero(t *testing.T) {
	movies := []models.Title{{Name: "A", Rating: "8"}, {Name: "B"}}
	stats := core.Aggregate(movies, nil)
	if stats.AverageMovieRating != "4.0" {
		t.Errorf("averageMovieRating = %q, want \"4.0\"", stats.AverageMovieRating)
	}
}

func TestGenres(t *testing.T) {
	movies := []models.Title{
		{Name: "A", Genre: " Action ,Drama"},
		{Name: "B", Genre: "action"},
	}
	series := []models.Series{
		{Title: models.Title{Name: "S", Genre: "Crime, Drama"}},
	}

	got := core.Genres(movies, series)
	want := []string{"Action", "Crime", "Drama"}
	if len(got) != len(want) {
		t.Fatalf("Genres = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Genres = %v, want %v", got, want)
		}
	}
}

func TestGenresEmptyCatalog(t *testing.T) {
	got := core.Genres(nil, nil)
	if got == nil || len(got) != 0 {
		t.Errorf("Genres on empty catalog = %v, want empty non-nil slice", got)
	}
}

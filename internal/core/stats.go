package core

import (
	"fmt"
	"sort"
	"strings"

	"marquee/internal/store/models"
)

// Stats is the aggregate view over the whole catalog.
type Stats struct {
	TotalMovies         int    `json:"totalMovies"`
	TotalSeries         int    `json:"totalSeries"`
	TotalContent        int    `json:"totalContent"`
	TotalEpisodes       int    `json:"totalEpisodes"`
	TotalGenres         int    `json:"totalGenres"`
	AverageMovieRating  string `json:"averageMovieRating"`
	AverageSeriesRating string `json:"averageSeriesRating"`
}

// Aggregate computes catalog-wide statistics. Averages are formatted to
// one decimal place; an empty collection divides by zero and reports
// "NaN", matching the historical behavior of the endpoint.
func Aggregate(movies []models.Title, series []models.Series) Stats {
	episodes := 0
	for _, s := range series {
		episodes += len(s.Episodes)
	}

	return Stats{
		TotalMovies:         len(movies),
		TotalSeries:         len(series),
		TotalContent:        len(movies) + len(series),
		TotalEpisodes:       episodes,
		TotalGenres:         len(Genres(movies, series)),
		AverageMovieRating:  averageRating(movies),
		AverageSeriesRating: averageRating(seriesTitles(series)),
	}
}

// Genres returns the deduplicated, trimmed, sorted set of genre tags
// across both collections.
func Genres(movies []models.Title, series []models.Series) []string {
	seen := make(map[string]bool)
	var genres []string

	collect := func(t models.Title) {
		for _, tag := range t.GenreTags() {
			key := strings.ToLower(tag)
			if !seen[key] {
				seen[key] = true
				genres = append(genres, tag)
			}
		}
	}

	for _, m := range movies {
		collect(m)
	}
	for _, s := range series {
		collect(s.Title)
	}

	sort.Strings(genres)
	if genres == nil {
		genres = []string{}
	}
	return genres
}

func seriesTitles(series []models.Series) []models.Title {
	titles := make([]models.Title, 0, len(series))
	for _, s := range series {
		titles = append(titles, s.Title)
	}
	return titles
}

func averageRating(titles []models.Title) string {
	var sum float64
	for _, t := range titles {
		sum += t.RatingValue()
	}
	return fmt.Sprintf("%.1f", sum/float64(len(titles)))
}

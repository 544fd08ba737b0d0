package core

import (
	"strings"

	"marquee/internal/store/models"
)

// Resolution is the outcome of an iframe lookup.
type Resolution struct {
	URL     string             `json:"url"`
	Name    string             `json:"name"`
	Type    models.ContentType `json:"type"`
	Season  int                `json:"season,omitempty"`
	Episode int                `json:"episode,omitempty"`
}

// FindMovie returns the movie with the given name, matched
// case-insensitively, or nil.
func FindMovie(movies []models.Title, name string) *models.Title {
	for i := range movies {
		if strings.EqualFold(movies[i].Name, name) {
			return &movies[i]
		}
	}
	return nil
}

// FindSeries returns the series with the given name, matched
// case-insensitively, or nil.
func FindSeries(series []models.Series, name string) *models.Series {
	for i := range series {
		if strings.EqualFold(series[i].Name, name) {
			return &series[i]
		}
	}
	return nil
}

// FindEpisode returns the episode matching (season, episode), or nil.
func FindEpisode(s *models.Series, season, episode int) *models.Episode {
	for i := range s.Episodes {
		if s.Episodes[i].Season == season && s.Episodes[i].Episode == episode {
			return &s.Episodes[i]
		}
	}
	return nil
}

// Resolve finds one playable iframe URL for a title. Movies are checked
// first; a matching movie short-circuits the series lookup even when it
// has no usable source. For series, an exact (season, episode) match
// wins, otherwise the first stored episode is used. A nil result means
// nothing resolvable exists.
func Resolve(movies []models.Title, series []models.Series, title string, season, episode int, source string) *Resolution {
	if movie := FindMovie(movies, title); movie != nil {
		url := movie.Sources.Slot(source)
		if url == "" {
			return nil
		}
		return &Resolution{URL: url, Name: movie.Name, Type: models.ContentTypeMovie}
	}

	show := FindSeries(series, title)
	if show == nil || len(show.Episodes) == 0 {
		return nil
	}

	ep := FindEpisode(show, season, episode)
	if ep == nil || ep.Sources == (models.Sources{}) {
		ep = &show.Episodes[0]
	}

	url := ep.Sources.Slot(source)
	if url == "" {
		return nil
	}
	return &Resolution{
		URL:     url,
		Name:    show.Name,
		Type:    models.ContentTypeSeries,
		Season:  ep.Season,
		Episode: ep.Episode,
	}
}

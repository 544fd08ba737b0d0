package models

import (
	"strconv"
	"strings"
)

type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeSeries ContentType = "series"
)

// Sources holds the three alternative streaming iframe URLs for a title
// or episode. Any slot may be empty.
type Sources struct {
	Source1 string `json:"source1,omitempty"`
	Source2 string `json:"source2,omitempty"`
	Source3 string `json:"source3,omitempty"`
}

// Slot returns the URL for a named slot (primary, secondary, tertiary).
// Unknown selectors map to source1, and a missing slot falls back to
// source1 unconditionally. An empty result means no playable URL exists.
func (s Sources) Slot(name string) string {
	var url string
	switch strings.ToLower(name) {
	case "secondary":
		url = s.Source2
	case "tertiary":
		url = s.Source3
	default:
		url = s.Source1
	}
	if url == "" {
		url = s.Source1
	}
	return url
}

// Title is a movie or series record. Name is the only identity key and is
// compared case-insensitively; there are no numeric IDs.
type Title struct {
	Name        string  `json:"name"`
	Genre       string  `json:"genre"`
	Description string  `json:"description"`
	Rating      string  `json:"rating"`
	ReleaseDate string  `json:"releaseDate"`
	Image       string  `json:"image"`
	Sources     Sources `json:"sources"`
}

// RatingValue parses the rating string, defaulting absent or malformed
// ratings to zero.
func (t Title) RatingValue() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(t.Rating), 64)
	if err != nil {
		return 0
	}
	return v
}

// GenreTags splits the comma-separated genre string into trimmed tags.
func (t Title) GenreTags() []string {
	var tags []string
	for _, tag := range strings.Split(t.Genre, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Episode belongs to exactly one series. Uniqueness of (season, episode)
// pairs is assumed but not enforced.
type Episode struct {
	Season  int     `json:"season"`
	Episode int     `json:"episode"`
	Title   string  `json:"title"`
	Sources Sources `json:"sources"`
}

// Series is a title with an ordered list of episodes.
type Series struct {
	Title
	Episodes []Episode `json:"episodes"`
}

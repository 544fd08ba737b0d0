package core

import (
	"math/rand"
	"sort"
	"strings"

	"marquee/internal/store/models"
)

// DefaultLimit is the page size applied when a request does not specify
// one. There is deliberately no upper bound on limit.
const DefaultLimit = 20

// Filter narrows a title collection by an optional search term and genre.
// The search term matches case-insensitively against name, description,
// or genre; the genre filter matches the genre field only and is ANDed
// on top of the search.
func Filter(titles []models.Title, search, genre string) []models.Title {
	filtered := titles

	if search != "" {
		term := strings.ToLower(search)
		var matched []models.Title
		for _, t := range filtered {
			if strings.Contains(strings.ToLower(t.Name), term) ||
				strings.Contains(strings.ToLower(t.Description), term) ||
				strings.Contains(strings.ToLower(t.Genre), term) {
				matched = append(matched, t)
			}
		}
		filtered = matched
	}

	if genre != "" {
		tag := strings.ToLower(genre)
		var matched []models.Title
		for _, t := range filtered {
			if strings.Contains(strings.ToLower(t.Genre), tag) {
				matched = append(matched, t)
			}
		}
		filtered = matched
	}

	return filtered
}

// Page is one window into a filtered collection.
type Page struct {
	Items   []models.Title
	Total   int
	Limit   int
	Offset  int
	HasMore bool
}

// Paginate slices titles[offset : offset+limit], clamped to the
// collection bounds. HasMore is true iff another page exists.
func Paginate(titles []models.Title, limit, offset int) Page {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}

	total := len(titles)
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	items := titles[start:end]
	if items == nil {
		items = []models.Title{}
	}

	return Page{
		Items:   items,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < total,
	}
}

// TrendingItem is a title tagged with its content type for mixed lists.
type TrendingItem struct {
	models.Title
	Type models.ContentType `json:"type"`
}

// Trending builds a mixed list of the highest-rated movies and series:
// limit/2 from each collection sorted by rating descending, concatenated
// and shuffled. The shuffle is intentionally non-deterministic, so two
// identical calls may return different orderings of the same titles.
func Trending(movies []models.Title, series []models.Title, limit int) []TrendingItem {
	if limit <= 0 {
		limit = DefaultLimit
	}
	half := limit / 2

	mixed := append(topRated(movies, half, models.ContentTypeMovie),
		topRated(series, half, models.ContentTypeSeries)...)

	rand.Shuffle(len(mixed), func(i, j int) {
		mixed[i], mixed[j] = mixed[j], mixed[i]
	})

	if len(mixed) > limit {
		mixed = mixed[:limit]
	}
	return mixed
}

func topRated(titles []models.Title, n int, contentType models.ContentType) []TrendingItem {
	sorted := make([]models.Title, len(titles))
	copy(sorted, titles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RatingValue() > sorted[j].RatingValue()
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}

	items := make([]TrendingItem, 0, len(sorted))
	for _, t := range sorted {
		items = append(items, TrendingItem{Title: t, Type: contentType})
	}
	return items
}

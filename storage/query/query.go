// Package query holds the read side of the post store: filtering, search and sorting
// over a snapshot of the collection. Functions never modify the slice they are given.
package query

import (
	"fmt"
	"postsapi/storage"
	"postsapi/storage/models"
	"sort"
	"strings"
)

var (
	AllowedSortFields = []string{string(storage.SortTitle), string(storage.SortContent), string(storage.SortId)}
	AllowedDirections = []string{string(storage.Asc), string(storage.Desc)}
)

func ParseSortField(value string) (storage.SortField, error) {
	switch storage.SortField(value) {
	case storage.SortNone, storage.SortId, storage.SortTitle, storage.SortContent:
		return storage.SortField(value), nil
	}
	return storage.SortNone, storage.NewInvalidQueryParameter("sort", fmt.Sprintf(
		"Invalid sort field: '%s'. Allowed values: %s", value, strings.Join(AllowedSortFields, ", ")))
}

func ParseDirection(value string) (storage.Direction, error) {
	switch storage.Direction(value) {
	case storage.Asc, storage.Desc:
		return storage.Direction(value), nil
	}
	return storage.Asc, storage.NewInvalidQueryParameter("direction", fmt.Sprintf(
		"Invalid direction: '%s'. Allowed values: %s", value, strings.Join(AllowedDirections, ", ")))
}

func contains(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// ListAll filters posts by q (title or content) and orders them by sort.
// Without a sort field the collection order is kept.
func ListAll(posts []models.Post, q string, field storage.SortField, direction storage.Direction) []models.Post {
	result := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if q == "" || contains(p.Title, q) || contains(p.Content, q) {
			result = append(result, p)
		}
	}
	if field == storage.SortNone {
		return result
	}

	less := lessBy(field)
	if direction == storage.Desc {
		// Equal keys keep their relative order in both directions.
		sort.SliceStable(result, func(i, j int) bool { return less(result[j], result[i]) })
	} else {
		sort.SliceStable(result, func(i, j int) bool { return less(result[i], result[j]) })
	}
	return result
}

func lessBy(field storage.SortField) func(a, b models.Post) bool {
	switch field {
	case storage.SortTitle:
		return func(a, b models.Post) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) }
	case storage.SortContent:
		return func(a, b models.Post) bool { return strings.ToLower(a.Content) < strings.ToLower(b.Content) }
	default:
		return func(a, b models.Post) bool { return a.Id < b.Id }
	}
}

// Search keeps posts whose title contains title or whose content contains content.
// An empty query term does not match anything; with both empty every post is returned.
func Search(posts []models.Post, title, content string) []models.Post {
	result := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if title == "" && content == "" {
			result = append(result, p)
			continue
		}
		titleMatch := title != "" && contains(p.Title, title)
		contentMatch := content != "" && contains(p.Content, content)
		if titleMatch || contentMatch {
			result = append(result, p)
		}
	}
	return result
}

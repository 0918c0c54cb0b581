package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/justbri/cinelog/models"
)

// The diary stores one row per viewing, so a film watched three times
// is three rows. "Unique movies" is a read-time view: group rows by
// lower-cased title and keep the best-rated instance. Nothing is
// deduplicated in storage.

// dedupeByTitle picks one entry per title: highest ratings100, then
// highest star rating, then most recent watched_date.
func dedupeByTitle(entries []models.DiaryEntry) []models.DiaryEntry {
	best := make(map[string]models.DiaryEntry, len(entries))
	order := make([]string, 0, len(entries))

	for _, e := range entries {
		key := strings.ToLower(e.Title)
		cur, seen := best[key]
		if !seen {
			best[key] = e
			order = append(order, key)
			continue
		}
		if betterEntry(e, cur) {
			best[key] = e
		}
	}

	out := make([]models.DiaryEntry, 0, len(order))
	for _, key := range order {
		out = append(out, best[key])
	}
	return out
}

func betterEntry(a, b models.DiaryEntry) bool {
	if a.Ratings100 != b.Ratings100 {
		return a.Ratings100 > b.Ratings100
	}
	if a.Rating != b.Rating {
		return a.Rating > b.Rating
	}
	switch {
	case a.WatchedDate == nil:
		return false
	case b.WatchedDate == nil:
		return true
	default:
		return a.WatchedDate.After(*b.WatchedDate)
	}
}

// GetUniqueMovies returns the dedup-by-title view of the whole diary.
func GetUniqueMovies(ctx context.Context) ([]models.Movie, error) {
	entries, err := loadAllEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load diary: %w", err)
	}
	return transformAll(dedupeByTitle(entries)), nil
}

// GetTopRatedMoviesPaginated filters the unique set by detailed rating
// and pages it in-process. The unique set is recomputed on every call;
// at personal-collection scale that keeps the page always fresh.
func GetTopRatedMoviesPaginated(ctx context.Context, minRating, limit, offset int) ([]models.Movie, int, error) {
	entries, err := loadAllEntries(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load diary: %w", err)
	}

	unique := dedupeByTitle(entries)
	filtered := unique[:0]
	for _, e := range unique {
		if e.Ratings100 >= minRating {
			filtered = append(filtered, e)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Ratings100 != filtered[j].Ratings100 {
			return filtered[i].Ratings100 > filtered[j].Ratings100
		}
		return filtered[i].Rating > filtered[j].Rating
	})

	total := len(filtered)
	page := pageWindow(filtered, limit, offset)
	return transformAll(page), total, nil
}

func pageWindow(entries []models.DiaryEntry, limit, offset int) []models.DiaryEntry {
	if offset >= len(entries) {
		return nil
	}
	end := offset + limit
	if end > len(entries) {
		end = len(entries)
	}
	return entries[offset:end]
}

// RatingBracket returns the decile containing rating on the 0-100
// scale: 73 falls in [70, 79]. 100 is clamped into the top decile.
func RatingBracket(rating int) (int, int) {
	if rating < 0 {
		rating = 0
	}
	if rating > 100 {
		rating = 100
	}
	min := (rating / 10) * 10
	if min > 90 {
		min = 90
	}
	return min, min + 9
}

// GetMoviesInRatingRange returns unique movies whose detailed rating
// falls in the decile bracket containing rating, plus the bracket.
func GetMoviesInRatingRange(ctx context.Context, rating int) ([]models.Movie, int, int, error) {
	lo, hi := RatingBracket(rating)

	entries, err := loadAllEntries(ctx)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to load diary: %w", err)
	}

	matched := []models.DiaryEntry{}
	for _, e := range dedupeByTitle(entries) {
		if e.Ratings100 >= lo && e.Ratings100 <= hi {
			matched = append(matched, e)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Ratings100 > matched[j].Ratings100
	})

	return transformAll(matched), lo, hi, nil
}

// GetFiveStarMovies returns the unique movies rated a full five stars,
// best detailed rating first.
func GetFiveStarMovies(ctx context.Context) ([]models.Movie, error) {
	entries, err := loadAllEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load diary: %w", err)
	}

	matched := []models.DiaryEntry{}
	for _, e := range dedupeByTitle(entries) {
		if e.Rating == 5 {
			matched = append(matched, e)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Ratings100 > matched[j].Ratings100
	})

	return transformAll(matched), nil
}

// GetMovieStats computes the aggregate served from GET /api/stats.
// The five-star count runs over the unique set so rewatches of a
// favorite don't count twice.
func GetMovieStats(ctx context.Context) (models.MovieStats, error) {
	stats := models.MovieStats{
		RatingCounts:  map[string]int{},
		WatchesByYear: map[string]int{},
		GenreCounts:   []models.NameCount{},
	}

	entries, err := loadAllEntries(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to load diary: %w", err)
	}

	stats.TotalEntries = len(entries)

	var ratingSum, detailedSum float64
	var rated, detailed int
	genreCounts := map[string]int{}

	for _, e := range entries {
		if e.Rating > 0 {
			ratingSum += e.Rating
			rated++
			stats.RatingCounts[fmt.Sprintf("%.1f", e.Rating)]++
		}
		if e.Ratings100 > 0 {
			detailedSum += float64(e.Ratings100)
			detailed++
		}
		if e.Rewatch == "Yes" {
			stats.RewatchCount++
		}
		if e.WatchedDate != nil {
			stats.WatchesByYear[fmt.Sprintf("%d", e.WatchedDate.Year())]++
		}
		for _, g := range models.SplitList(e.Genres) {
			genreCounts[g]++
		}
	}

	if rated > 0 {
		stats.AverageRating = ratingSum / float64(rated)
	}
	if detailed > 0 {
		stats.AverageDetailedRating = detailedSum / float64(detailed)
	}

	stats.GenreCounts = sortedCounts(genreCounts, 0)

	unique := dedupeByTitle(entries)
	stats.UniqueMovies = len(unique)
	for _, e := range unique {
		if e.Rating == 5 {
			stats.FiveStarCount++
		}
	}

	return stats, nil
}

// sortedCounts flattens a histogram map, largest first; limit 0 means
// no cap.
func sortedCounts(counts map[string]int, limit int) []models.NameCount {
	out := make([]models.NameCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, models.NameCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

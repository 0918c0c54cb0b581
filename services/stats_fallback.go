package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/justbri/cinelog/database"
	"github.com/justbri/cinelog/models"
)

// In-process recomputations for the two procedures most likely to be
// absent on a fresh database. They read the raw rows and reproduce the
// procedure's contract exactly.

func runtimeStatsFallback(ctx context.Context) (models.RuntimeStats, error) {
	var stats models.RuntimeStats

	rows, err := database.DB.QueryContext(ctx, `
		SELECT runtime, title FROM diary
		WHERE runtime > 0
		ORDER BY runtime ASC`)
	if err != nil {
		return stats, fmt.Errorf("failed to load runtimes: %w", err)
	}
	defer rows.Close()

	type entry struct {
		runtime int
		title   string
	}
	entries := []entry{}
	for rows.Next() {
		var e entry
		if err := rows.Scan(&e.runtime, &e.title); err != nil {
			return stats, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return stats, err
	}
	if len(entries) == 0 {
		return stats, nil
	}

	for _, e := range entries {
		stats.TotalMinutes += e.runtime
	}
	stats.Count = len(entries)
	stats.AverageMinutes = float64(stats.TotalMinutes) / float64(len(entries))
	stats.MedianMinutes = entries[len(entries)/2].runtime
	stats.ShortestMinutes = entries[0].runtime
	stats.ShortestTitle = entries[0].title
	stats.LongestMinutes = entries[len(entries)-1].runtime
	stats.LongestTitle = entries[len(entries)-1].title

	return stats, nil
}

func releaseYearFallback(ctx context.Context) (models.ReleaseYearAnalysis, error) {
	stats := models.ReleaseYearAnalysis{ByDecade: []models.NameCount{}}

	rows, err := database.DB.QueryContext(ctx, `
		SELECT year, title FROM diary
		WHERE year > 0
		ORDER BY year ASC, id ASC`)
	if err != nil {
		return stats, fmt.Errorf("failed to load release years: %w", err)
	}
	defer rows.Close()

	var yearSum, count int
	decades := map[string]int{}
	for rows.Next() {
		var year int
		var title string
		if err := rows.Scan(&year, &title); err != nil {
			return stats, err
		}
		if count == 0 {
			stats.OldestYear = year
			stats.OldestTitle = title
		}
		stats.NewestYear = year
		stats.NewestTitle = title
		yearSum += year
		count++
		decades[fmt.Sprintf("%ds", (year/10)*10)]++
	}
	if err := rows.Err(); err != nil {
		return stats, err
	}
	if count == 0 {
		return stats, nil
	}

	stats.AverageYear = float64(yearSum) / float64(count)

	stats.ByDecade = make([]models.NameCount, 0, len(decades))
	for name, n := range decades {
		stats.ByDecade = append(stats.ByDecade, models.NameCount{Name: name, Count: n})
	}
	sort.Slice(stats.ByDecade, func(i, j int) bool {
		return stats.ByDecade[i].Name < stats.ByDecade[j].Name
	})

	return stats, nil
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/justbri/cinelog/database"
	"github.com/justbri/cinelog/models"
)

// Temporal statistics are derived from watch dates directly rather
// than stored procedures; the date math is simpler in-process and the
// data volume is a personal diary, not a warehouse.

const dateLayout = "2006-01-02"

func loadWatchDates(ctx context.Context) ([]time.Time, error) {
	rows, err := database.DB.QueryContext(ctx, `
		SELECT DISTINCT watched_date FROM diary
		WHERE watched_date IS NOT NULL
		ORDER BY watched_date ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to load watch dates: %w", err)
	}
	defer rows.Close()

	dates := []time.Time{}
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// streaksFromDates walks ascending distinct dates once, collecting
// runs of exactly-one-day gaps. A single isolated day is not a streak.
// The result is sorted longest first.
func streaksFromDates(dates []time.Time) []models.Streak {
	streaks := []models.Streak{}
	if len(dates) == 0 {
		return streaks
	}

	start := dates[0]
	prev := dates[0]
	length := 1

	flush := func(end time.Time) {
		if length > 1 {
			streaks = append(streaks, models.Streak{
				StartDate: start.Format(dateLayout),
				EndDate:   end.Format(dateLayout),
				Length:    length,
			})
		}
	}

	for _, d := range dates[1:] {
		if dayDiff(prev, d) == 1 {
			length++
		} else {
			flush(prev)
			start = d
			length = 1
		}
		prev = d
	}
	flush(prev)

	sort.SliceStable(streaks, func(i, j int) bool {
		return streaks[i].Length > streaks[j].Length
	})
	return streaks
}

// dayDiff is the calendar-day difference b-a, ignoring time of day.
func dayDiff(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	at := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bt := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(bt.Sub(at).Hours() / 24)
}

// GetWatchingStreaks computes runs of consecutive watch days.
func GetWatchingStreaks(ctx context.Context) ([]models.Streak, error) {
	dates, err := loadWatchDates(ctx)
	if err != nil {
		return nil, err
	}
	return streaksFromDates(dates), nil
}

// GetWatchGaps lists the pauses between successive watch days, widest
// first.
func GetWatchGaps(ctx context.Context) ([]models.WatchGap, error) {
	dates, err := loadWatchDates(ctx)
	if err != nil {
		return nil, err
	}

	gaps := []models.WatchGap{}
	for i := 1; i < len(dates); i++ {
		days := dayDiff(dates[i-1], dates[i])
		if days > 1 {
			gaps = append(gaps, models.WatchGap{
				From: dates[i-1].Format(dateLayout),
				To:   dates[i].Format(dateLayout),
				Days: days,
			})
		}
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].Days > gaps[j].Days
	})
	return gaps, nil
}

// GetBingeDays lists calendar days with more than one viewing.
func GetBingeDays(ctx context.Context) ([]models.BingeDay, error) {
	rows, err := database.DB.QueryContext(ctx, `
		SELECT watched_date, COUNT(*) FROM diary
		WHERE watched_date IS NOT NULL
		GROUP BY watched_date
		HAVING COUNT(*) > 1
		ORDER BY COUNT(*) DESC, watched_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to load binge days: %w", err)
	}
	defer rows.Close()

	binges := []models.BingeDay{}
	for rows.Next() {
		var d time.Time
		var count int
		if err := rows.Scan(&d, &count); err != nil {
			return nil, err
		}
		binges = append(binges, models.BingeDay{Date: d.Format(dateLayout), Count: count})
	}
	return binges, rows.Err()
}

// GetMonthlyPattern counts viewings per calendar month (01-12) across
// all years.
func GetMonthlyPattern(ctx context.Context) (map[string]int, error) {
	entries, err := loadAllEntries(ctx)
	if err != nil {
		return nil, err
	}

	pattern := map[string]int{}
	for _, e := range entries {
		if e.WatchedDate != nil {
			pattern[e.WatchedDate.Format("01")]++
		}
	}
	return pattern, nil
}

// GetDayOfWeekPattern counts viewings per weekday.
func GetDayOfWeekPattern(ctx context.Context) (map[string]int, error) {
	entries, err := loadAllEntries(ctx)
	if err != nil {
		return nil, err
	}

	pattern := map[string]int{}
	for _, e := range entries {
		if e.WatchedDate != nil {
			pattern[e.WatchedDate.Weekday().String()]++
		}
	}
	return pattern, nil
}

// GetSeasonalPattern counts viewings per meteorological season.
func GetSeasonalPattern(ctx context.Context) (map[string]int, error) {
	entries, err := loadAllEntries(ctx)
	if err != nil {
		return nil, err
	}

	pattern := map[string]int{}
	for _, e := range entries {
		if e.WatchedDate != nil {
			pattern[season(e.WatchedDate.Month())]++
		}
	}
	return pattern, nil
}

func season(m time.Month) string {
	switch m {
	case time.December, time.January, time.February:
		return "Winter"
	case time.March, time.April, time.May:
		return "Spring"
	case time.June, time.July, time.August:
		return "Summer"
	default:
		return "Autumn"
	}
}

// GetFirstLastWatches attributes the earliest and latest diary rows.
// A diary with no dated rows is valid and yields the zero value.
func GetFirstLastWatches(ctx context.Context) (models.FirstLastWatches, error) {
	var result models.FirstLastWatches

	row := database.DB.QueryRowContext(ctx, `
		SELECT title, watched_date FROM diary
		WHERE watched_date IS NOT NULL
		ORDER BY watched_date ASC, id ASC LIMIT 1`)
	var firstDate time.Time
	err := row.Scan(&result.FirstTitle, &firstDate)
	if errors.Is(err, sql.ErrNoRows) {
		return result, nil
	}
	if err != nil {
		return result, fmt.Errorf("failed to load first watch: %w", err)
	}
	result.FirstDate = firstDate.Format(dateLayout)

	row = database.DB.QueryRowContext(ctx, `
		SELECT title, watched_date FROM diary
		WHERE watched_date IS NOT NULL
		ORDER BY watched_date DESC, id DESC LIMIT 1`)
	var lastDate time.Time
	if err := row.Scan(&result.LastTitle, &lastDate); err != nil {
		return result, fmt.Errorf("failed to load last watch: %w", err)
	}
	result.LastDate = lastDate.Format(dateLayout)

	return result, nil
}

// GetCustomPeriodAnalysis breaks down the diary rows whose watch date
// falls in [start, end].
func GetCustomPeriodAnalysis(ctx context.Context, start, end time.Time) (models.PeriodAnalysis, error) {
	analysis := models.PeriodAnalysis{
		StartDate:    start.Format(dateLayout),
		EndDate:      end.Format(dateLayout),
		TopGenres:    []models.NameCount{},
		TopDirectors: []models.NameCount{},
	}

	query := `SELECT ` + diaryColumns + ` FROM diary
		WHERE watched_date BETWEEN $1 AND $2
		ORDER BY watched_date ASC`
	entries, err := queryDiaryEntries(ctx, query, start, end)
	if err != nil {
		return analysis, fmt.Errorf("failed to load period: %w", err)
	}

	analysis.Count = len(entries)

	genreCounts := map[string]int{}
	directorCounts := map[string]int{}
	var ratingSum float64
	var rated int

	for _, e := range entries {
		analysis.TotalRuntime += e.Runtime
		if e.Rating > 0 {
			ratingSum += e.Rating
			rated++
		}
		for _, g := range models.SplitList(e.Genres) {
			genreCounts[g]++
		}
		for _, d := range models.SplitList(e.Director) {
			directorCounts[d]++
		}
	}

	if rated > 0 {
		analysis.AverageRating = ratingSum / float64(rated)
	}
	analysis.TopGenres = sortedCounts(genreCounts, 10)
	analysis.TopDirectors = sortedCounts(directorCounts, 10)

	return analysis, nil
}

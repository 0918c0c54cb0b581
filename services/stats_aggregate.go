package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/justbri/cinelog/logger"
	"github.com/justbri/cinelog/models"
)

// The grouped endpoints fan out their component queries concurrently.
// A failed component is logged and replaced by its zero value so one
// broken procedure doesn't take down the whole response; only context
// cancellation aborts the group.

func statDown(name string, err error) {
	logger.Warn().Err(err).Str("stat", name).Msg("Stat unavailable, serving zero value")
}

// AllBasicStats gathers the headline aggregates.
func AllBasicStats(ctx context.Context) (models.BasicStats, error) {
	var stats models.BasicStats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s, err := GetDashboardStats(ctx)
		if err != nil {
			statDown("dashboard", err)
			return ctx.Err()
		}
		stats.Dashboard = s
		return nil
	})
	g.Go(func() error {
		s, err := GetRatingStats(ctx)
		if err != nil {
			statDown("ratings", err)
			return ctx.Err()
		}
		stats.Ratings = s
		return nil
	})
	g.Go(func() error {
		s, err := GetRuntimeStats(ctx)
		if err != nil {
			statDown("runtime", err)
			return ctx.Err()
		}
		stats.Runtime = s
		return nil
	})

	err := g.Wait()
	return stats, err
}

// AllTemporalStats gathers everything derived from watch dates.
func AllTemporalStats(ctx context.Context) (models.TemporalStats, error) {
	stats := models.TemporalStats{
		Streaks:   []models.Streak{},
		Monthly:   map[string]int{},
		DayOfWeek: map[string]int{},
		Seasonal:  map[string]int{},
		Gaps:      []models.WatchGap{},
		Binges:    []models.BingeDay{},
	}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s, err := GetWatchingStreaks(ctx)
		if err != nil {
			statDown("streaks", err)
			return ctx.Err()
		}
		stats.Streaks = s
		return nil
	})
	g.Go(func() error {
		s, err := GetMonthlyPattern(ctx)
		if err != nil {
			statDown("monthly", err)
			return ctx.Err()
		}
		stats.Monthly = s
		return nil
	})
	g.Go(func() error {
		s, err := GetDayOfWeekPattern(ctx)
		if err != nil {
			statDown("day_of_week", err)
			return ctx.Err()
		}
		stats.DayOfWeek = s
		return nil
	})
	g.Go(func() error {
		s, err := GetSeasonalPattern(ctx)
		if err != nil {
			statDown("seasonal", err)
			return ctx.Err()
		}
		stats.Seasonal = s
		return nil
	})
	g.Go(func() error {
		s, err := GetWatchGaps(ctx)
		if err != nil {
			statDown("gaps", err)
			return ctx.Err()
		}
		stats.Gaps = s
		return nil
	})
	g.Go(func() error {
		s, err := GetBingeDays(ctx)
		if err != nil {
			statDown("binges", err)
			return ctx.Err()
		}
		stats.Binges = s
		return nil
	})

	err := g.Wait()
	return stats, err
}

// AllContentStats gathers everything derived from what was watched.
func AllContentStats(ctx context.Context) (models.ContentStats, error) {
	stats := models.ContentStats{
		Genres:    []models.NameCount{},
		Directors: []models.NameCount{},
		Languages: []models.NameCount{},
		Tags:      []models.NameCount{},
	}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s, err := GetGenreStats(ctx)
		if err != nil {
			statDown("genres", err)
			return ctx.Err()
		}
		stats.Genres = s
		return nil
	})
	g.Go(func() error {
		s, err := GetDirectorStats(ctx)
		if err != nil {
			statDown("directors", err)
			return ctx.Err()
		}
		stats.Directors = s
		return nil
	})
	g.Go(func() error {
		s, err := GetLanguageStats(ctx)
		if err != nil {
			statDown("languages", err)
			return ctx.Err()
		}
		stats.Languages = s
		return nil
	})
	g.Go(func() error {
		s, err := GetTagStats(ctx)
		if err != nil {
			statDown("tags", err)
			return ctx.Err()
		}
		stats.Tags = s
		return nil
	})
	g.Go(func() error {
		s, err := GetReleaseYearAnalysis(ctx)
		if err != nil {
			statDown("release_years", err)
			return ctx.Err()
		}
		stats.ReleaseYears = s
		return nil
	})

	err := g.Wait()
	return stats, err
}

// GetComprehensiveStats is the whole picture in one response.
func GetComprehensiveStats(ctx context.Context) (models.ComprehensiveStats, error) {
	var stats models.ComprehensiveStats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s, err := AllBasicStats(ctx)
		if err != nil {
			return err
		}
		stats.Basic = s
		return nil
	})
	g.Go(func() error {
		s, err := AllTemporalStats(ctx)
		if err != nil {
			return err
		}
		stats.Temporal = s
		return nil
	})
	g.Go(func() error {
		s, err := AllContentStats(ctx)
		if err != nil {
			return err
		}
		stats.Content = s
		return nil
	})

	err := g.Wait()
	return stats, err
}

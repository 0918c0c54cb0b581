package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/justbri/cinelog/logger"
	"github.com/justbri/cinelog/services"
)

// Stats handlers share one shape: call the service, and when the
// backing stored procedure is absent serve the zero value instead of
// failing. A fresh database should render an empty dashboard, not an
// error page. Genuine query failures still surface as 500s.

func respondStat(w http.ResponseWriter, r *http.Request, name string, data interface{}, err error) {
	if err != nil {
		if !errors.Is(err, services.ErrProcMissing) {
			respondServiceError(w, err)
			return
		}
		logger.Warn().Str("stat", name).Msg("Stored procedure missing, serving zero value")
	}
	respondData(w, http.StatusOK, data)
}

func StatsDashboard(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	stats, err := services.GetDashboardStats(r.Context())
	respondStat(w, r, "dashboard", stats, err)
}

func StatsRatings(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	stats, err := services.GetRatingStats(r.Context())
	respondStat(w, r, "ratings", stats, err)
}

func StatsRatingDistribution(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	stats, err := services.GetRatingDistribution(r.Context())
	respondStat(w, r, "rating_distribution", stats, err)
}

func StatsGenres(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	stats, err := services.GetGenreStats(r.Context())
	respondStat(w, r, "genres", stats, err)
}

func StatsDirectors(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	stats, err := services.GetDirectorStats(r.Context())
	respondStat(w, r, "directors", stats, err)
}

func StatsRuntime(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	stats, err := services.GetRuntimeStats(r.Context())
	respondStat(w, r, "runtime", stats, err)
}

func StatsReleaseYears(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	stats, err := services.GetReleaseYearAnalysis(r.Context())
	respondStat(w, r, "release_years", stats, err)
}

func StatsStreaks(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	stats, err := services.GetWatchingStreaks(r.Context())
	respondStat(w, r, "streaks", stats, err)
}

func StatsMonthly(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	stats, err := services.GetMonthlyPattern(r.Context())
	respondStat(w, r, "monthly", stats, err)
}

func StatsDayOfWeek(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	stats, err := services.GetDayOfWeekPattern(r.Context())
	respondStat(w, r, "day_of_week", stats, err)
}

func StatsSeasonal(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	stats, err := services.GetSeasonalPattern(r.Context())
	respondStat(w, r, "seasonal", stats, err)
}

func StatsRewatches(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	stats, err := services.GetRewatchStats(r.Context())
	respondStat(w, r, "rewatches", stats, err)
}

func StatsTags(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	stats, err := services.GetTagStats(r.Context())
	respondStat(w, r, "tags", stats, err)
}

func StatsDecades(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	stats, err := services.GetDecadeStats(r.Context())
	respondStat(w, r, "decades", stats, err)
}

func StatsLanguages(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	stats, err := services.GetLanguageStats(r.Context())
	respondStat(w, r, "languages", stats, err)
}

func StatsFiveStar(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	movies, err := services.GetFiveStarMovies(r.Context())
	respondStat(w, r, "five_star", movies, err)
}

func StatsGaps(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	stats, err := services.GetWatchGaps(r.Context())
	respondStat(w, r, "gaps", stats, err)
}

func StatsBinges(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	stats, err := services.GetBingeDays(r.Context())
	respondStat(w, r, "binges", stats, err)
}

func StatsFirstLast(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	stats, err := services.GetFirstLastWatches(r.Context())
	respondStat(w, r, "first_last", stats, err)
}

func StatsVotes(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	stats, err := services.GetVoteComparison(r.Context())
	respondStat(w, r, "votes", stats, err)
}

// StatsPeriod analyzes a custom date range passed as ?start and ?end
// (YYYY-MM-DD).
func StatsPeriod(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	start, err := time.Parse("2006-01-02", r.URL.Query().Get("start"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "start must be YYYY-MM-DD", nil)
		return
	}
	end, err := time.Parse("2006-01-02", r.URL.Query().Get("end"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "end must be YYYY-MM-DD", nil)
		return
	}
	if end.Before(start) {
		respondError(w, http.StatusBadRequest, "end must not precede start", nil)
		return
	}

	stats, aerr := services.GetCustomPeriodAnalysis(r.Context(), start, end)
	respondStat(w, r, "period", stats, aerr)
}

func StatsBasic(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	stats, err := services.AllBasicStats(r.Context())
	respondStat(w, r, "basic", stats, err)
}

func StatsTemporal(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	stats, err := services.AllTemporalStats(r.Context())
	respondStat(w, r, "temporal", stats, err)
}

func StatsContent(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	stats, err := services.AllContentStats(r.Context())
	respondStat(w, r, "content", stats, err)
}

func StatsComprehensive(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	stats, err := services.GetComprehensiveStats(r.Context())
	respondStat(w, r, "comprehensive", stats, err)
}

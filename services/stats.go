package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/justbri/cinelog/database"
	"github.com/justbri/cinelog/models"
)

// The heavy aggregations live as stored procedures in the database,
// reached by name; their SQL is managed outside this service. Each
// wrapper here normalizes the result shape. A missing procedure is a
// distinct condition (ErrProcMissing) so callers can fall back or
// substitute a zero default without masking real query failures.

// ErrProcMissing means the named stored procedure does not exist in
// the connected database.
var ErrProcMissing = errors.New("stored procedure not available")

// rpc calls a stored procedure and returns its rows as a JSON array,
// mirroring a Supabase-style RPC call.
func rpc(ctx context.Context, fn string, args ...interface{}) ([]byte, error) {
	placeholders := ""
	for i := range args {
		if i > 0 {
			placeholders += ", "
		}
		placeholders += fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("SELECT COALESCE(jsonb_agg(t), '[]'::jsonb) FROM %s(%s) AS t", fn, placeholders)

	var payload []byte
	err := database.DB.QueryRowContext(ctx, query, args...).Scan(&payload)
	if err != nil {
		var pgErr *pgconn.PgError
		// 42883 undefined_function, 42P01 undefined_table
		if errors.As(err, &pgErr) && (pgErr.Code == "42883" || pgErr.Code == "42P01") {
			return nil, fmt.Errorf("%w: %s", ErrProcMissing, fn)
		}
		return nil, fmt.Errorf("rpc %s failed: %w", fn, err)
	}
	return payload, nil
}

// rpcSingle unwraps the common single-row-array result into dst.
func rpcSingle(ctx context.Context, fn string, dst interface{}, args ...interface{}) error {
	payload, err := rpc(ctx, fn, args...)
	if err != nil {
		return err
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(payload, &rows); err != nil {
		return fmt.Errorf("rpc %s returned malformed payload: %w", fn, err)
	}
	if len(rows) == 0 {
		return nil
	}
	if err := json.Unmarshal(rows[0], dst); err != nil {
		return fmt.Errorf("rpc %s returned unexpected shape: %w", fn, err)
	}
	return nil
}

// rpcRows decodes a multi-row result into dst (a pointer to a slice).
func rpcRows(ctx context.Context, fn string, dst interface{}, args ...interface{}) error {
	payload, err := rpc(ctx, fn, args...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("rpc %s returned unexpected shape: %w", fn, err)
	}
	return nil
}

// GetDashboardStats wraps get_dashboard_stats.
func GetDashboardStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	err := rpcSingle(ctx, "get_dashboard_stats", &stats)
	return stats, err
}

// GetRatingStats wraps get_rating_stats.
func GetRatingStats(ctx context.Context) (models.RatingStats, error) {
	var stats models.RatingStats
	err := rpcSingle(ctx, "get_rating_stats", &stats)
	if stats.Distribution == nil {
		stats.Distribution = map[string]int{}
	}
	return stats, err
}

// GetRatingDistribution wraps get_rating_distribution: decile buckets
// over the 0-100 detailed scale.
func GetRatingDistribution(ctx context.Context) ([]models.RatingBucket, error) {
	buckets := []models.RatingBucket{}
	err := rpcRows(ctx, "get_rating_distribution", &buckets)
	return buckets, err
}

// GetGenreStats wraps get_genre_stats.
func GetGenreStats(ctx context.Context) ([]models.NameCount, error) {
	counts := []models.NameCount{}
	err := rpcRows(ctx, "get_genre_stats", &counts)
	return counts, err
}

// GetDirectorStats wraps get_director_stats.
func GetDirectorStats(ctx context.Context) ([]models.NameCount, error) {
	counts := []models.NameCount{}
	err := rpcRows(ctx, "get_director_stats", &counts)
	return counts, err
}

// GetLanguageStats wraps get_language_stats.
func GetLanguageStats(ctx context.Context) ([]models.NameCount, error) {
	counts := []models.NameCount{}
	err := rpcRows(ctx, "get_language_stats", &counts)
	return counts, err
}

// GetDecadeStats wraps get_decade_stats (release decades).
func GetDecadeStats(ctx context.Context) ([]models.NameCount, error) {
	counts := []models.NameCount{}
	err := rpcRows(ctx, "get_decade_stats", &counts)
	return counts, err
}

// GetTagStats wraps get_tag_stats.
func GetTagStats(ctx context.Context) ([]models.NameCount, error) {
	counts := []models.NameCount{}
	err := rpcRows(ctx, "get_tag_stats", &counts)
	return counts, err
}

// GetRewatchStats wraps get_rewatch_stats.
func GetRewatchStats(ctx context.Context) (models.RewatchStats, error) {
	var stats models.RewatchStats
	err := rpcSingle(ctx, "get_rewatch_stats", &stats)
	if stats.MostRewatched == nil {
		stats.MostRewatched = []models.NameCount{}
	}
	return stats, err
}

// GetVoteComparison wraps get_vote_comparison (diary scores vs TMDB
// community votes).
func GetVoteComparison(ctx context.Context) (models.VoteComparison, error) {
	var stats models.VoteComparison
	err := rpcSingle(ctx, "get_vote_comparison", &stats)
	return stats, err
}

// GetRuntimeStats wraps get_runtime_stats and recomputes in-process
// when the procedure is missing.
func GetRuntimeStats(ctx context.Context) (models.RuntimeStats, error) {
	var stats models.RuntimeStats
	err := rpcSingle(ctx, "get_runtime_stats", &stats)
	if errors.Is(err, ErrProcMissing) {
		return runtimeStatsFallback(ctx)
	}
	return stats, err
}

// GetReleaseYearAnalysis wraps get_release_year_analysis with an
// in-process fallback.
func GetReleaseYearAnalysis(ctx context.Context) (models.ReleaseYearAnalysis, error) {
	var stats models.ReleaseYearAnalysis
	err := rpcSingle(ctx, "get_release_year_analysis", &stats)
	if errors.Is(err, ErrProcMissing) {
		return releaseYearFallback(ctx)
	}
	if stats.ByDecade == nil {
		stats.ByDecade = []models.NameCount{}
	}
	return stats, err
}

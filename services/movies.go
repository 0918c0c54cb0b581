package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/justbri/cinelog/config"
	"github.com/justbri/cinelog/database"
	"github.com/justbri/cinelog/logger"
	"github.com/justbri/cinelog/models"
)

// ErrMovieNotFound means TMDB returned zero search hits for a title.
var ErrMovieNotFound = errors.New("movie not found on TMDB")

var tmdb *TMDBClient

// InitTMDB wires the package-level TMDB client. Call once from main.
func InitTMDB(cfg *config.Config) {
	tmdb = NewTMDBClient(cfg)
}

// TMDB exposes the package client for the proxy handlers.
func TMDB() *TMDBClient {
	return tmdb
}

// diaryColumns is the projection every diary SELECT uses. COALESCE
// keeps Scan simple on rows written before later columns existed.
const diaryColumns = `
	id, title, COALESCE(tmdb_id, 0), release_date, COALESCE(year, 0),
	COALESCE(runtime, 0), COALESCE(overview, ''), COALESCE(backdrop_path, ''),
	COALESCE(poster_path, ''), COALESCE(vote_average, 0), COALESCE(vote_count, 0),
	COALESCE(popularity, 0), COALESCE(original_language, ''),
	COALESCE(original_title, ''), COALESCE(tagline, ''), COALESCE(status, ''),
	COALESCE(budget, 0), COALESCE(revenue, 0), COALESCE(imdb_id, ''),
	COALESCE(homepage, ''), COALESCE(director, ''), COALESCE(genres, ''),
	COALESCE(rating, 0), COALESCE(ratings100, 0), watched_date,
	COALESCE(rewatch, 'No'), COALESCE(tags, ''), COALESCE(notes, ''),
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDiaryEntry(row rowScanner) (models.DiaryEntry, error) {
	var e models.DiaryEntry
	err := row.Scan(
		&e.ID, &e.Title, &e.TMDBID, &e.ReleaseDate, &e.Year,
		&e.Runtime, &e.Overview, &e.BackdropPath,
		&e.PosterPath, &e.VoteAverage, &e.VoteCount,
		&e.Popularity, &e.OriginalLanguage,
		&e.OriginalTitle, &e.Tagline, &e.Status,
		&e.Budget, &e.Revenue, &e.IMDBID,
		&e.Homepage, &e.Director, &e.Genres,
		&e.Rating, &e.Ratings100, &e.WatchedDate,
		&e.Rewatch, &e.Tags, &e.Notes,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func queryDiaryEntries(ctx context.Context, query string, args ...interface{}) ([]models.DiaryEntry, error) {
	rows, err := database.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.DiaryEntry{}
	for rows.Next() {
		e, err := scanDiaryEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func loadAllEntries(ctx context.Context) ([]models.DiaryEntry, error) {
	query := `SELECT ` + diaryColumns + ` FROM diary ORDER BY watched_date DESC NULLS LAST, id DESC`
	return queryDiaryEntries(ctx, query)
}

// GetAllMoviesPaginated returns one page of the diary plus the total
// row count, newest watch first.
func GetAllMoviesPaginated(ctx context.Context, limit, offset int) ([]models.Movie, int, error) {
	var total int
	if err := database.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM diary`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count diary entries: %w", err)
	}

	query := `SELECT ` + diaryColumns + ` FROM diary
		ORDER BY watched_date DESC NULLS LAST, id DESC
		LIMIT $1 OFFSET $2`
	entries, err := queryDiaryEntries(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load diary page: %w", err)
	}

	return transformAll(entries), total, nil
}

// GetMovieByID loads one diary entry. sql.ErrNoRows propagates so the
// handler can answer 404.
func GetMovieByID(ctx context.Context, id int) (*models.Movie, error) {
	query := `SELECT ` + diaryColumns + ` FROM diary WHERE id = $1`
	e, err := scanDiaryEntry(database.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	m := models.TransformDiaryEntry(e)
	return &m, nil
}

// FetchAndSaveMovie resolves the title against TMDB, inserts the diary
// row, then upserts directors/genres best-effort. The link-table
// writes never fail the request; their absence only loses the
// normalized view.
func FetchAndSaveMovie(ctx context.Context, req models.AddMovieRequest) (*models.Movie, *MovieData, error) {
	data, err := tmdb.FetchMovieData(ctx, req.Title, req.Year)
	if err != nil {
		return nil, nil, fmt.Errorf("TMDB lookup failed: %w", err)
	}
	if data == nil {
		return nil, nil, ErrMovieNotFound
	}

	var watched *time.Time
	if req.WatchDate != "" {
		t, err := time.Parse("2006-01-02", req.WatchDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid watch_date: %w", err)
		}
		watched = &t
	} else {
		now := time.Now()
		watched = &now
	}

	rewatch := "No"
	if req.IsRewatch {
		rewatch = "Yes"
	}

	directorNames := make([]string, 0, len(data.Directors))
	for _, d := range data.Directors {
		directorNames = append(directorNames, d.Name)
	}
	genreNames := make([]string, 0, len(data.Genres))
	for _, g := range data.Genres {
		genreNames = append(genreNames, g.Name)
	}

	var release *time.Time
	if t, err := time.Parse("2006-01-02", data.ReleaseDate); err == nil {
		release = &t
	}

	query := `
		INSERT INTO diary (
			title, tmdb_id, release_date, year, runtime, overview,
			backdrop_path, poster_path, vote_average, vote_count, popularity,
			original_language, original_title, tagline, status, budget,
			revenue, imdb_id, homepage, director, genres, rating, ratings100,
			watched_date, rewatch, tags, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27
		) RETURNING id`
	var id int
	err = database.DB.QueryRowContext(ctx, query,
		data.Title, data.TMDBID, release, data.Year, data.Runtime, data.Overview,
		data.BackdropPath, data.PosterPath, data.VoteAverage, data.VoteCount, data.Popularity,
		data.OriginalLanguage, data.OriginalTitle, data.Tagline, data.Status, data.Budget,
		data.Revenue, data.IMDBID, data.Homepage,
		models.JoinList(directorNames), models.JoinList(genreNames),
		req.UserRating, req.DetailedRating,
		watched, rewatch, models.JoinList(req.Tags), req.Notes,
	).Scan(&id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to insert diary entry: %w", err)
	}

	linkCredits(ctx, id, data)

	movie, err := GetMovieByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reload saved entry: %w", err)
	}
	return movie, data, nil
}

// linkCredits upserts directors/genres and their link rows. Best
// effort: the lookup tables are optional and failures are only logged.
func linkCredits(ctx context.Context, diaryID int, data *MovieData) {
	for _, d := range data.Directors {
		var directorID int
		err := database.DB.QueryRowContext(ctx, `
			INSERT INTO directors (tmdb_id, name, profile_path)
			VALUES ($1, $2, $3)
			ON CONFLICT (tmdb_id) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`,
			d.ID, d.Name, d.ProfilePath,
		).Scan(&directorID)
		if err != nil {
			logger.Warn().Err(err).Str("director", d.Name).Msg("Director upsert skipped")
			continue
		}
		_, err = database.DB.ExecContext(ctx, `
			INSERT INTO movie_directors (diary_id, director_id)
			VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			diaryID, directorID,
		)
		if err != nil {
			logger.Warn().Err(err).Int("diary_id", diaryID).Msg("Director link skipped")
		}
	}

	for _, g := range data.Genres {
		var genreID int
		err := database.DB.QueryRowContext(ctx, `
			INSERT INTO genres (tmdb_id, name)
			VALUES ($1, $2)
			ON CONFLICT (tmdb_id) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`,
			g.ID, g.Name,
		).Scan(&genreID)
		if err != nil {
			logger.Warn().Err(err).Str("genre", g.Name).Msg("Genre upsert skipped")
			continue
		}
		_, err = database.DB.ExecContext(ctx, `
			INSERT INTO movie_genres (diary_id, genre_id)
			VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			diaryID, genreID,
		)
		if err != nil {
			logger.Warn().Err(err).Int("diary_id", diaryID).Msg("Genre link skipped")
		}
	}
}

// UpdateMovie applies a partial update; omitted fields keep their
// stored values. API field names map back to storage columns here.
func UpdateMovie(ctx context.Context, id int, req models.UpdateMovieRequest) (*models.Movie, error) {
	set := []string{}
	args := []interface{}{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Title != nil {
		add("title", *req.Title)
	}
	if req.Year != nil {
		add("year", *req.Year)
	}
	if req.Rating != nil {
		add("rating", *req.Rating)
	}
	if req.DetailedRating != nil {
		add("ratings100", *req.DetailedRating)
	}
	if req.WatchedDate != nil {
		t, err := time.Parse("2006-01-02", *req.WatchedDate)
		if err != nil {
			return nil, fmt.Errorf("invalid watched_date: %w", err)
		}
		add("watched_date", t)
	}
	if req.IsRewatch != nil {
		rewatch := "No"
		if *req.IsRewatch {
			rewatch = "Yes"
		}
		add("rewatch", rewatch)
	}
	if req.Notes != nil {
		add("notes", *req.Notes)
	}
	if req.Tags != nil {
		add("tags", *req.Tags)
	}
	if req.Overview != nil {
		add("overview", *req.Overview)
	}
	if req.Director != nil {
		add("director", *req.Director)
	}
	if req.Genres != nil {
		add("genres", models.JoinList(req.Genres))
	}

	if len(set) == 0 {
		return GetMovieByID(ctx, id)
	}

	set = append(set, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)
	query := fmt.Sprintf("UPDATE diary SET %s WHERE id = $%d", strings.Join(set, ", "), len(args))

	res, err := database.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update diary entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, sql.ErrNoRows
	}

	return GetMovieByID(ctx, id)
}

// UpdateUserRating touches only the rating columns.
func UpdateUserRating(ctx context.Context, id int, req models.UpdateRatingRequest) (*models.Movie, error) {
	update := models.UpdateMovieRequest{
		Rating:         req.Rating,
		DetailedRating: req.DetailedRating,
	}
	return UpdateMovie(ctx, id, update)
}

// DeleteMovie hard-deletes a diary entry.
func DeleteMovie(ctx context.Context, id int) error {
	res, err := database.DB.ExecContext(ctx, `DELETE FROM diary WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete diary entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SearchDiary does a substring search over title, director, tags and
// overview.
func SearchDiary(ctx context.Context, q string) ([]models.Movie, error) {
	pattern := "%" + q + "%"
	query := `SELECT ` + diaryColumns + ` FROM diary
		WHERE title ILIKE $1 OR director ILIKE $1 OR tags ILIKE $1 OR overview ILIKE $1
		ORDER BY watched_date DESC NULLS LAST`
	entries, err := queryDiaryEntries(ctx, query, pattern)
	if err != nil {
		return nil, fmt.Errorf("diary search failed: %w", err)
	}
	return transformAll(entries), nil
}

// EnhanceWithTMDB re-fetches TMDB metadata for an existing entry and
// overwrites the metadata columns while preserving every user field
// (rating, ratings100, watched_date, rewatch, tags, notes).
func EnhanceWithTMDB(ctx context.Context, id int) (*models.Movie, error) {
	current, err := GetMovieByID(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := tmdb.FetchMovieData(ctx, current.Title, current.Year)
	if err != nil {
		return nil, fmt.Errorf("TMDB lookup failed: %w", err)
	}
	if data == nil {
		return nil, ErrMovieNotFound
	}

	directorNames := make([]string, 0, len(data.Directors))
	for _, d := range data.Directors {
		directorNames = append(directorNames, d.Name)
	}
	genreNames := make([]string, 0, len(data.Genres))
	for _, g := range data.Genres {
		genreNames = append(genreNames, g.Name)
	}

	var release *time.Time
	if t, err := time.Parse("2006-01-02", data.ReleaseDate); err == nil {
		release = &t
	}

	query := `
		UPDATE diary SET
			title = $1, tmdb_id = $2, release_date = $3, year = $4,
			runtime = $5, overview = $6, backdrop_path = $7, poster_path = $8,
			vote_average = $9, vote_count = $10, popularity = $11,
			original_language = $12, original_title = $13, tagline = $14,
			status = $15, budget = $16, revenue = $17, imdb_id = $18,
			homepage = $19, director = $20, genres = $21,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $22`
	_, err = database.DB.ExecContext(ctx, query,
		data.Title, data.TMDBID, release, data.Year,
		data.Runtime, data.Overview, data.BackdropPath, data.PosterPath,
		data.VoteAverage, data.VoteCount, data.Popularity,
		data.OriginalLanguage, data.OriginalTitle, data.Tagline,
		data.Status, data.Budget, data.Revenue, data.IMDBID,
		data.Homepage, models.JoinList(directorNames), models.JoinList(genreNames),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to enhance diary entry: %w", err)
	}

	linkCredits(ctx, id, data)

	return GetMovieByID(ctx, id)
}

// UpsertMovie writes a full diary row: UPDATE when the id is set,
// INSERT otherwise. Returns the stored row.
func UpsertMovie(ctx context.Context, e models.DiaryEntry) (*models.Movie, error) {
	if e.ID > 0 {
		query := `
			UPDATE diary SET
				title = $1, tmdb_id = $2, year = $3, runtime = $4,
				overview = $5, poster_path = $6, director = $7, genres = $8,
				rating = $9, ratings100 = $10, watched_date = $11,
				rewatch = $12, tags = $13, notes = $14,
				updated_at = CURRENT_TIMESTAMP
			WHERE id = $15`
		res, err := database.DB.ExecContext(ctx, query,
			e.Title, e.TMDBID, e.Year, e.Runtime,
			e.Overview, e.PosterPath, e.Director, e.Genres,
			e.Rating, e.Ratings100, e.WatchedDate,
			e.Rewatch, e.Tags, e.Notes, e.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert diary entry: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil, sql.ErrNoRows
		}
		return GetMovieByID(ctx, e.ID)
	}

	query := `
		INSERT INTO diary (
			title, tmdb_id, year, runtime, overview, poster_path,
			director, genres, rating, ratings100, watched_date, rewatch,
			tags, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`
	var id int
	err := database.DB.QueryRowContext(ctx, query,
		e.Title, e.TMDBID, e.Year, e.Runtime, e.Overview, e.PosterPath,
		e.Director, e.Genres, e.Rating, e.Ratings100, e.WatchedDate, e.Rewatch,
		e.Tags, e.Notes,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert diary entry: %w", err)
	}
	return GetMovieByID(ctx, id)
}

func transformAll(entries []models.DiaryEntry) []models.Movie {
	movies := make([]models.Movie, 0, len(entries))
	for _, e := range entries {
		movies = append(movies, models.TransformDiaryEntry(e))
	}
	return movies
}

package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/justbri/cinelog/logger"
	"github.com/justbri/cinelog/models"
	"github.com/justbri/cinelog/services"
)

// GetMovies serves the diary newest-watch-first, paginated.
func GetMovies(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	page, limit, offset := parsePagination(r)

	movies, total, err := services.GetAllMoviesPaginated(r.Context(), limit, offset)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondPage(w, movies, buildPagination(page, limit, total))
}

// GetUniqueMovies serves the dedup-by-title view of the diary.
func GetUniqueMovies(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	movies, err := services.GetUniqueMovies(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, movies)
}

// GetTopRatedMovies serves unique movies at or above minRating
// (detailed scale, default 90), paginated.
func GetTopRatedMovies(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	minRating := minRatingParam(r)
	page, limit, offset := parsePagination(r)

	movies, total, err := services.GetTopRatedMoviesPaginated(r.Context(), minRating, limit, offset)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondPage(w, movies, buildPagination(page, limit, total))
}

// GetMoviesInRatingRange serves unique movies in the decile bracket
// containing ?rating.
func GetMoviesInRatingRange(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	rating := queryInt(r, "rating", -1)
	if rating < 0 || rating > 100 {
		respondError(w, http.StatusBadRequest, "rating must be between 0 and 100", nil)
		return
	}

	movies, lo, hi, err := services.GetMoviesInRatingRange(r.Context(), rating)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{
		"min":    lo,
		"max":    hi,
		"movies": movies,
	})
}

// SearchMovies searches the diary by title, director, tags or overview.
func SearchMovies(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		respondError(w, http.StatusBadRequest, "Query parameter q is required", nil)
		return
	}

	movies, err := services.SearchDiary(r.Context(), q)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, movies)
}

// GetStats serves the diary-wide aggregate.
func GetStats(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	stats, err := services.GetMovieStats(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, stats)
}

// AddMovie logs a viewing: resolves the title against TMDB, stores the
// enriched row and returns it.
func AddMovie(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	var req models.AddMovieRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	movie, data, err := services.FetchAndSaveMovie(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	logger.Info().
		Str("title", movie.Title).
		Int("tmdb_id", data.TMDBID).
		Msg("Movie added")
	respondData(w, http.StatusCreated, movie)
}

// UpsertMovie writes a full diary row without a TMDB round trip:
// update in place when the payload carries an id, insert otherwise.
func UpsertMovie(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	var req models.UpsertMovieRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	entry, err := req.ToDiaryEntry()
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	movie, err := services.UpsertMovie(r.Context(), entry)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	status := http.StatusOK
	if req.ID == 0 {
		status = http.StatusCreated
	}
	respondData(w, status, movie)
}

// GetMovie serves one diary entry by id.
func GetMovie(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	movie, err := services.GetMovieByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, movie)
}

// UpdateMovie applies a partial update to a diary entry.
func UpdateMovie(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.UpdateMovieRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	movie, err := services.UpdateMovie(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, movie)
}

// UpdateRating changes just the ratings of a diary entry.
func UpdateRating(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.UpdateRatingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if req.Rating == nil && req.DetailedRating == nil {
		respondError(w, http.StatusBadRequest, "At least one rating field is required", nil)
		return
	}

	movie, err := services.UpdateUserRating(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, movie)
}

// DeleteMovie removes a diary entry.
func DeleteMovie(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := services.DeleteMovie(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{"deleted": id})
}

// EnhanceMovie re-fetches TMDB metadata for an entry, preserving the
// user's own fields.
func EnhanceMovie(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	movie, err := services.EnhanceWithTMDB(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, movie)
}

// minRatingParam reads the top-rated threshold. The frontend sends
// minRating; the snake_case spelling is accepted as an alias.
func minRatingParam(r *http.Request) int {
	if r.URL.Query().Get("minRating") != "" {
		return queryInt(r, "minRating", 90)
	}
	return queryInt(r, "min_rating", 90)
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		respondError(w, http.StatusBadRequest, "Invalid movie id", nil)
		return 0, false
	}
	return id, true
}

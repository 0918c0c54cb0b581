package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/justbri/cinelog/config"
	"github.com/justbri/cinelog/database"
	"github.com/justbri/cinelog/logger"
	"github.com/justbri/cinelog/models"
	"github.com/justbri/cinelog/services"
)

var (
	cfg      *config.Config
	validate = validator.New(validator.WithRequiredStructEnabled())
)

// Init hands the handlers their config. Call before mounting routes.
func Init(c *config.Config) {
	cfg = c
}

// envelope is the uniform response shape. details carries the raw
// error string and is omitted in production.
type envelope struct {
	Success    bool               `json:"success"`
	Data       interface{}        `json:"data,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
	Error      string             `json:"error,omitempty"`
	Details    string             `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func respondData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func respondPage(w http.ResponseWriter, data interface{}, p models.Pagination) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Pagination: &p})
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	body := envelope{Success: false, Error: message}
	if err != nil {
		logger.Error().Err(err).Int("status", status).Msg(message)
		if cfg != nil && !cfg.IsProduction() {
			body.Details = err.Error()
		}
	}
	writeJSON(w, status, body)
}

// respondServiceError maps service failures onto status codes.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sql.ErrNoRows), errors.Is(err, services.ErrMovieNotFound):
		respondError(w, http.StatusNotFound, "Movie not found", nil)
	default:
		respondError(w, http.StatusInternalServerError, "Internal server error", err)
	}
}

// requireDB short-circuits every data route when no DATABASE_URL was
// configured, so the server still answers /health in that state.
func requireDB(w http.ResponseWriter) bool {
	if !database.Configured() {
		respondError(w, http.StatusServiceUnavailable, "Database not configured", nil)
		return false
	}
	return true
}

// decodeAndValidate parses the JSON body into dst and runs the
// validator over it. Responds 400 itself on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed", err)
		return false
	}
	return true
}

// parsePagination reads page/limit query params with sane bounds.
func parsePagination(r *http.Request) (page, limit, offset int) {
	page = queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	limit = queryInt(r, "limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return page, limit, (page - 1) * limit
}

func buildPagination(page, limit, total int) models.Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return models.Pagination{
		Page:            page,
		Limit:           limit,
		Total:           total,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

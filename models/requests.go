package models

import (
	"fmt"
	"time"
)

// AddMovieRequest is the POST /api/add payload. Only the title is
// required; everything else defaults.
type AddMovieRequest struct {
	Title          string   `json:"title" validate:"required,min=1,max=255"`
	Year           int      `json:"year" validate:"omitempty,min=1870,max=2100"`
	UserRating     float64  `json:"user_rating" validate:"omitempty,min=0,max=5"`
	DetailedRating int      `json:"detailed_rating" validate:"omitempty,min=0,max=100"`
	WatchDate      string   `json:"watch_date" validate:"omitempty,datetime=2006-01-02"`
	IsRewatch      bool     `json:"is_rewatch"`
	Notes          string   `json:"notes"`
	Tags           []string `json:"tags"`
}

// UpdateMovieRequest carries partial updates in API field names;
// omitted fields keep their stored values.
type UpdateMovieRequest struct {
	Title          *string  `json:"title" validate:"omitempty,min=1,max=255"`
	Year           *int     `json:"year" validate:"omitempty,min=1870,max=2100"`
	Rating         *float64 `json:"rating" validate:"omitempty,min=0,max=5"`
	DetailedRating *int     `json:"detailed_rating" validate:"omitempty,min=0,max=100"`
	WatchedDate    *string  `json:"watched_date" validate:"omitempty,datetime=2006-01-02"`
	IsRewatch      *bool    `json:"is_rewatch"`
	Notes          *string  `json:"notes"`
	Tags           *string  `json:"tags"`
	Overview       *string  `json:"overview"`
	Director       *string  `json:"director"`
	Genres         []string `json:"genres"`
}

// UpsertMovieRequest is the PUT /api payload: a full diary row that
// updates in place when id is set and inserts otherwise.
type UpsertMovieRequest struct {
	ID             int      `json:"id"`
	Title          string   `json:"title" validate:"required,min=1,max=255"`
	TMDBID         int      `json:"tmdb_id"`
	Year           int      `json:"year" validate:"omitempty,min=1870,max=2100"`
	Runtime        int      `json:"runtime" validate:"omitempty,min=0"`
	Overview       string   `json:"overview"`
	PosterPath     string   `json:"poster_path"`
	Director       string   `json:"director"`
	Genres         []string `json:"genres"`
	Rating         float64  `json:"rating" validate:"omitempty,min=0,max=5"`
	DetailedRating int      `json:"detailed_rating" validate:"omitempty,min=0,max=100"`
	WatchedDate    string   `json:"watched_date" validate:"omitempty,datetime=2006-01-02"`
	IsRewatch      bool     `json:"is_rewatch"`
	Tags           []string `json:"tags"`
	Notes          string   `json:"notes"`
}

// ToDiaryEntry maps the API payload onto the storage row.
func (r UpsertMovieRequest) ToDiaryEntry() (DiaryEntry, error) {
	e := DiaryEntry{
		ID:         r.ID,
		Title:      r.Title,
		TMDBID:     r.TMDBID,
		Year:       r.Year,
		Runtime:    r.Runtime,
		Overview:   r.Overview,
		PosterPath: r.PosterPath,
		Director:   r.Director,
		Genres:     JoinList(r.Genres),
		Rating:     r.Rating,
		Ratings100: r.DetailedRating,
		Rewatch:    "No",
		Tags:       JoinList(r.Tags),
		Notes:      r.Notes,
	}
	if r.IsRewatch {
		e.Rewatch = "Yes"
	}
	if r.WatchedDate != "" {
		t, err := time.Parse("2006-01-02", r.WatchedDate)
		if err != nil {
			return e, fmt.Errorf("invalid watched_date: %w", err)
		}
		e.WatchedDate = &t
	}
	return e, nil
}

// UpdateRatingRequest is the PATCH /api/{id}/rating payload.
type UpdateRatingRequest struct {
	Rating         *float64 `json:"rating" validate:"omitempty,min=0,max=5"`
	DetailedRating *int     `json:"detailed_rating" validate:"omitempty,min=0,max=100"`
}

// Pagination is the page metadata attached to list responses.
type Pagination struct {
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	Total           int  `json:"total"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

package models

import (
	"strings"
	"time"
)

// DiaryEntry is one logged viewing session as stored in the diary
// table. The same film appears once per viewing; rewatches are
// separate rows sharing a title.
type DiaryEntry struct {
	ID               int        `json:"id"`
	Title            string     `json:"title"`
	TMDBID           int        `json:"tmdb_id"`
	ReleaseDate      *time.Time `json:"release_date"`
	Year             int        `json:"year"`
	Runtime          int        `json:"runtime"`
	Overview         string     `json:"overview"`
	BackdropPath     string     `json:"backdrop_path"`
	PosterPath       string     `json:"poster_path"`
	VoteAverage      float64    `json:"vote_average"`
	VoteCount        int        `json:"vote_count"`
	Popularity       float64    `json:"popularity"`
	OriginalLanguage string     `json:"original_language"`
	OriginalTitle    string     `json:"original_title"`
	Tagline          string     `json:"tagline"`
	Status           string     `json:"status"`
	Budget           int64      `json:"budget"`
	Revenue          int64      `json:"revenue"`
	IMDBID           string     `json:"imdb_id"`
	Homepage         string     `json:"homepage"`
	Director         string     `json:"director"`
	Genres           string     `json:"genres"` // comma-separated in storage
	Rating           float64    `json:"rating"` // 0-5, half-star steps
	Ratings100       int        `json:"ratings100"`
	WatchedDate      *time.Time `json:"watched_date"`
	Rewatch          string     `json:"rewatch"` // 'Yes' / 'No'
	Tags             string     `json:"tags"`
	Notes            string     `json:"notes"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Rating is the vestigial multi-rating element the frontend still
// expects; every movie carries exactly one.
type Rating struct {
	Rating         float64 `json:"rating"`
	DetailedRating int     `json:"detailed_rating"`
}

// Movie is the API shape of a diary entry.
type Movie struct {
	ID               int        `json:"id"`
	Title            string     `json:"title"`
	TMDBID           int        `json:"tmdb_id"`
	ReleaseDate      *time.Time `json:"release_date"`
	Year             int        `json:"year"`
	Runtime          int        `json:"runtime"`
	Overview         string     `json:"overview"`
	BackdropPath     string     `json:"backdrop_path"`
	PosterPath       string     `json:"poster_path"`
	VoteAverage      float64    `json:"vote_average"`
	VoteCount        int        `json:"vote_count"`
	Popularity       float64    `json:"popularity"`
	OriginalLanguage string     `json:"original_language"`
	OriginalTitle    string     `json:"original_title"`
	Tagline          string     `json:"tagline"`
	Status           string     `json:"status"`
	Budget           int64      `json:"budget"`
	Revenue          int64      `json:"revenue"`
	IMDBID           string     `json:"imdb_id"`
	Homepage         string     `json:"homepage"`
	Director         string     `json:"director"`
	Directors        []string   `json:"directors"`
	Genres           []string   `json:"genres"`
	Rating           float64    `json:"rating"`
	DetailedRating   int        `json:"detailed_rating"`
	Ratings          []Rating   `json:"ratings"`
	IsRewatch        bool       `json:"is_rewatch"`
	WatchedDate      *time.Time `json:"watched_date"`
	Tags             string     `json:"tags"`
	Notes            string     `json:"notes"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// TransformDiaryEntry maps a storage row to the API shape. The rewatch
// flag is 'Yes'/'No' in storage; anything but 'Yes' reads as false.
func TransformDiaryEntry(e DiaryEntry) Movie {
	m := Movie{
		ID:               e.ID,
		Title:            e.Title,
		TMDBID:           e.TMDBID,
		ReleaseDate:      e.ReleaseDate,
		Year:             e.Year,
		Runtime:          e.Runtime,
		Overview:         e.Overview,
		BackdropPath:     e.BackdropPath,
		PosterPath:       e.PosterPath,
		VoteAverage:      e.VoteAverage,
		VoteCount:        e.VoteCount,
		Popularity:       e.Popularity,
		OriginalLanguage: e.OriginalLanguage,
		OriginalTitle:    e.OriginalTitle,
		Tagline:          e.Tagline,
		Status:           e.Status,
		Budget:           e.Budget,
		Revenue:          e.Revenue,
		IMDBID:           e.IMDBID,
		Homepage:         e.Homepage,
		Director:         e.Director,
		Genres:           SplitList(e.Genres),
		Rating:           e.Rating,
		DetailedRating:   e.Ratings100,
		Ratings:          []Rating{{Rating: e.Rating, DetailedRating: e.Ratings100}},
		IsRewatch:        e.Rewatch == "Yes",
		WatchedDate:      e.WatchedDate,
		Tags:             e.Tags,
		Notes:            e.Notes,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}

	// No join-table data in the flat row; fall back to the flattened
	// director string so the frontend always gets an array.
	if e.Director != "" {
		m.Directors = SplitList(e.Director)
	} else {
		m.Directors = []string{}
	}

	return m
}

// SplitList splits a comma-separated storage field into a clean slice.
func SplitList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ", ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinList is the inverse of SplitList.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}

// Director is the optional normalized lookup row keyed by TMDB id.
type Director struct {
	ID          int    `json:"id"`
	TMDBID      int    `json:"tmdb_id"`
	Name        string `json:"name"`
	ProfilePath string `json:"profile_path"`
}

// Genre is the optional normalized lookup row keyed by TMDB id.
type Genre struct {
	ID     int    `json:"id"`
	TMDBID int    `json:"tmdb_id"`
	Name   string `json:"name"`
}

// Quote backs the random-quote widget; unrelated to the diary.
type Quote struct {
	ID        int    `json:"id"`
	Quote     string `json:"quote"`
	Movie     string `json:"movie"`
	Character string `json:"character"`
}

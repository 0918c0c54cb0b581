package models

// Stats shapes. Every type here has a usable zero value: the stats
// layer substitutes the zero value when a stored procedure is missing
// or fails, so the frontend never sees a null where it expects an
// object.

// NameCount is a generic histogram bucket (genre, director, tag, ...).
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DashboardStats is the headline card set.
type DashboardStats struct {
	TotalEntries     int     `json:"total_entries"`
	UniqueMovies     int     `json:"unique_movies"`
	AverageRating    float64 `json:"average_rating"`
	AverageDetailed  float64 `json:"average_detailed_rating"`
	TotalRuntime     int     `json:"total_runtime"`
	RewatchCount     int     `json:"rewatch_count"`
	ThisYearCount    int     `json:"this_year_count"`
	FirstWatchedDate string  `json:"first_watched_date"`
	LastWatchedDate  string  `json:"last_watched_date"`
}

// RatingStats summarizes the 0-5 star scale.
type RatingStats struct {
	Average         float64        `json:"average"`
	AverageDetailed float64        `json:"average_detailed"`
	Count           int            `json:"count"`
	Highest         float64        `json:"highest"`
	Lowest          float64        `json:"lowest"`
	Distribution    map[string]int `json:"distribution"`
}

// RatingBucket is one decile of the 0-100 detailed scale.
type RatingBucket struct {
	Min   int `json:"min"`
	Max   int `json:"max"`
	Count int `json:"count"`
}

// RuntimeStats aggregates runtimes with title attribution.
type RuntimeStats struct {
	TotalMinutes    int     `json:"total_minutes"`
	AverageMinutes  float64 `json:"average_minutes"`
	MedianMinutes   int     `json:"median_minutes"`
	LongestTitle    string  `json:"longest_title"`
	LongestMinutes  int     `json:"longest_minutes"`
	ShortestTitle   string  `json:"shortest_title"`
	ShortestMinutes int     `json:"shortest_minutes"`
	Count           int     `json:"count"`
}

// ReleaseYearAnalysis covers the films' release years, not watch dates.
type ReleaseYearAnalysis struct {
	OldestYear  int         `json:"oldest_year"`
	OldestTitle string      `json:"oldest_title"`
	NewestYear  int         `json:"newest_year"`
	NewestTitle string      `json:"newest_title"`
	AverageYear float64     `json:"average_year"`
	ByDecade    []NameCount `json:"by_decade"`
}

// Streak is a run of consecutive watch days; single days don't count.
type Streak struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Length    int    `json:"length"`
}

// WatchGap is a pause between two watch days.
type WatchGap struct {
	From string `json:"from"`
	To   string `json:"to"`
	Days int    `json:"days"`
}

// BingeDay is a calendar day with more than one viewing.
type BingeDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// RewatchStats covers the rewatch habit.
type RewatchStats struct {
	TotalEntries   int         `json:"total_entries"`
	RewatchCount   int         `json:"rewatch_count"`
	RewatchPercent float64     `json:"rewatch_percent"`
	MostRewatched  []NameCount `json:"most_rewatched"`
}

// FirstLastWatches attributes the earliest and latest diary rows.
type FirstLastWatches struct {
	FirstTitle string `json:"first_title"`
	FirstDate  string `json:"first_date"`
	LastTitle  string `json:"last_title"`
	LastDate   string `json:"last_date"`
}

// VoteComparison compares the diary's detailed scores with TMDB votes.
type VoteComparison struct {
	AverageUser    float64 `json:"average_user"`    // detailed rating / 10
	AverageTMDB    float64 `json:"average_tmdb"`    // vote_average
	Count          int     `json:"count"`
	HigherThanTMDB int     `json:"higher_than_tmdb"`
	LowerThanTMDB  int     `json:"lower_than_tmdb"`
}

// PeriodAnalysis is the ad hoc breakdown for a custom date range.
type PeriodAnalysis struct {
	StartDate     string      `json:"start_date"`
	EndDate       string      `json:"end_date"`
	Count         int         `json:"count"`
	AverageRating float64     `json:"average_rating"`
	TotalRuntime  int         `json:"total_runtime"`
	TopGenres     []NameCount `json:"top_genres"`
	TopDirectors  []NameCount `json:"top_directors"`
}

// MovieStats is the aggregate served from GET /api/stats.
type MovieStats struct {
	TotalEntries          int            `json:"total_entries"`
	UniqueMovies          int            `json:"unique_movies"`
	AverageRating         float64        `json:"average_rating"`
	AverageDetailedRating float64        `json:"average_detailed_rating"`
	RatingCounts          map[string]int `json:"rating_counts"`
	GenreCounts           []NameCount    `json:"genre_counts"`
	WatchesByYear         map[string]int `json:"watches_by_year"`
	RewatchCount          int            `json:"rewatch_count"`
	FiveStarCount         int            `json:"five_star_count"`
}

// BasicStats groups the headline aggregates.
type BasicStats struct {
	Dashboard DashboardStats `json:"dashboard"`
	Ratings   RatingStats    `json:"ratings"`
	Runtime   RuntimeStats   `json:"runtime"`
}

// TemporalStats groups everything derived from watch dates.
type TemporalStats struct {
	Streaks   []Streak       `json:"streaks"`
	Monthly   map[string]int `json:"monthly"`
	DayOfWeek map[string]int `json:"day_of_week"`
	Seasonal  map[string]int `json:"seasonal"`
	Gaps      []WatchGap     `json:"gaps"`
	Binges    []BingeDay     `json:"binges"`
}

// ContentStats groups everything derived from what was watched.
type ContentStats struct {
	Genres       []NameCount         `json:"genres"`
	Directors    []NameCount         `json:"directors"`
	Languages    []NameCount         `json:"languages"`
	Tags         []NameCount         `json:"tags"`
	ReleaseYears ReleaseYearAnalysis `json:"release_years"`
}

// ComprehensiveStats is the whole picture in one response.
type ComprehensiveStats struct {
	Basic    BasicStats    `json:"basic"`
	Temporal TemporalStats `json:"temporal"`
	Content  ContentStats  `json:"content"`
}

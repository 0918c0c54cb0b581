package models

import (
	"testing"
)

func TestUpsertMovieRequestToDiaryEntry(t *testing.T) {
	req := UpsertMovieRequest{
		ID:             3,
		Title:          "Paris, Texas",
		Year:           1984,
		Genres:         []string{"Drama", "Road Movie"},
		Rating:         5,
		DetailedRating: 97,
		WatchedDate:    "2025-07-04",
		IsRewatch:      true,
		Tags:           []string{"criterion"},
	}

	e, err := req.ToDiaryEntry()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.ID != 3 || e.Title != "Paris, Texas" {
		t.Errorf("identity fields lost: %+v", e)
	}
	if e.Genres != "Drama, Road Movie" {
		t.Errorf("Genres = %q", e.Genres)
	}
	if e.Tags != "criterion" {
		t.Errorf("Tags = %q", e.Tags)
	}
	if e.Ratings100 != 97 {
		t.Errorf("Ratings100 = %d, want 97", e.Ratings100)
	}
	if e.Rewatch != "Yes" {
		t.Errorf("Rewatch = %q, want Yes", e.Rewatch)
	}
	if e.WatchedDate == nil || e.WatchedDate.Format("2006-01-02") != "2025-07-04" {
		t.Errorf("WatchedDate = %v", e.WatchedDate)
	}
}

func TestUpsertMovieRequestToDiaryEntryDefaults(t *testing.T) {
	e, err := UpsertMovieRequest{Title: "Heat"}.ToDiaryEntry()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Rewatch != "No" {
		t.Errorf("Rewatch = %q, want No", e.Rewatch)
	}
	if e.WatchedDate != nil {
		t.Errorf("empty watch date should stay nil, got %v", e.WatchedDate)
	}
}

func TestUpsertMovieRequestToDiaryEntryBadDate(t *testing.T) {
	if _, err := (UpsertMovieRequest{Title: "Heat", WatchedDate: "07/04/2025"}).ToDiaryEntry(); err == nil {
		t.Error("expected an error for a malformed date")
	}
}

package services

import (
	"testing"
	"time"

	"github.com/justbri/cinelog/models"
)

func day(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestDedupeByTitlePicksHighestDetailedRating(t *testing.T) {
	entries := []models.DiaryEntry{
		{ID: 1, Title: "Heat", Ratings100: 80, Rating: 4},
		{ID: 2, Title: "heat", Ratings100: 95, Rating: 4.5},
		{ID: 3, Title: "HEAT", Ratings100: 70, Rating: 5},
	}

	unique := dedupeByTitle(entries)
	if len(unique) != 1 {
		t.Fatalf("expected 1 unique entry, got %d", len(unique))
	}
	if unique[0].ID != 2 {
		t.Errorf("expected entry 2 (ratings100=95) to win, got entry %d", unique[0].ID)
	}
}

func TestDedupeByTitleFallsBackToStarRating(t *testing.T) {
	entries := []models.DiaryEntry{
		{ID: 1, Title: "Alien", Ratings100: 90, Rating: 4},
		{ID: 2, Title: "Alien", Ratings100: 90, Rating: 5},
	}

	unique := dedupeByTitle(entries)
	if unique[0].ID != 2 {
		t.Errorf("expected higher star rating to break the tie, got entry %d", unique[0].ID)
	}
}

func TestDedupeByTitleFallsBackToWatchedDate(t *testing.T) {
	entries := []models.DiaryEntry{
		{ID: 1, Title: "Dune", Ratings100: 85, Rating: 4, WatchedDate: day("2024-01-01")},
		{ID: 2, Title: "Dune", Ratings100: 85, Rating: 4, WatchedDate: day("2025-06-15")},
		{ID: 3, Title: "Dune", Ratings100: 85, Rating: 4, WatchedDate: nil},
	}

	unique := dedupeByTitle(entries)
	if unique[0].ID != 2 {
		t.Errorf("expected most recent watch to win, got entry %d", unique[0].ID)
	}
}

func TestDedupeByTitlePreservesFirstSeenOrder(t *testing.T) {
	entries := []models.DiaryEntry{
		{ID: 1, Title: "Zodiac"},
		{ID: 2, Title: "Amadeus"},
		{ID: 3, Title: "zodiac", Ratings100: 50},
	}

	unique := dedupeByTitle(entries)
	if len(unique) != 2 {
		t.Fatalf("expected 2 unique entries, got %d", len(unique))
	}
	if unique[0].Title != "zodiac" || unique[1].Title != "Amadeus" {
		t.Errorf("expected first-seen title order, got %q then %q", unique[0].Title, unique[1].Title)
	}
}

func TestRatingBracket(t *testing.T) {
	cases := []struct {
		rating, min, max int
	}{
		{0, 0, 9},
		{9, 0, 9},
		{73, 70, 79},
		{90, 90, 99},
		{100, 90, 99},
		{-5, 0, 9},
		{140, 90, 99},
	}

	for _, c := range cases {
		min, max := RatingBracket(c.rating)
		if min != c.min || max != c.max {
			t.Errorf("RatingBracket(%d) = [%d, %d], want [%d, %d]", c.rating, min, max, c.min, c.max)
		}
	}
}

func TestPageWindow(t *testing.T) {
	entries := make([]models.DiaryEntry, 5)
	for i := range entries {
		entries[i].ID = i + 1
	}

	page := pageWindow(entries, 2, 0)
	if len(page) != 2 || page[0].ID != 1 {
		t.Errorf("expected first page of 2 starting at entry 1, got %+v", page)
	}

	page = pageWindow(entries, 2, 4)
	if len(page) != 1 || page[0].ID != 5 {
		t.Errorf("expected final partial page, got %+v", page)
	}

	if page = pageWindow(entries, 2, 10); page != nil {
		t.Errorf("expected nil beyond the end, got %+v", page)
	}
}

func TestSortedCounts(t *testing.T) {
	counts := map[string]int{"Drama": 3, "Horror": 1, "Comedy": 3, "Action": 2}

	out := sortedCounts(counts, 0)
	if len(out) != 4 {
		t.Fatalf("expected 4 buckets, got %d", len(out))
	}
	// Ties break alphabetically.
	if out[0].Name != "Comedy" || out[1].Name != "Drama" || out[2].Name != "Action" {
		t.Errorf("unexpected order: %+v", out)
	}

	if out = sortedCounts(counts, 2); len(out) != 2 {
		t.Errorf("expected limit to cap at 2, got %d", len(out))
	}
}

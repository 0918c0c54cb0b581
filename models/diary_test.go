package models

import (
	"reflect"
	"testing"
	"time"
)

func TestTransformDiaryEntryRewatchFlag(t *testing.T) {
	if !TransformDiaryEntry(DiaryEntry{Rewatch: "Yes"}).IsRewatch {
		t.Error("rewatch 'Yes' should map to true")
	}
	if TransformDiaryEntry(DiaryEntry{Rewatch: "No"}).IsRewatch {
		t.Error("rewatch 'No' should map to false")
	}
	if TransformDiaryEntry(DiaryEntry{Rewatch: ""}).IsRewatch {
		t.Error("empty rewatch should map to false")
	}
}

func TestTransformDiaryEntryRatings(t *testing.T) {
	watched := time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC)
	m := TransformDiaryEntry(DiaryEntry{
		Title:       "Ran",
		Rating:      4.5,
		Ratings100:  92,
		WatchedDate: &watched,
	})

	if m.DetailedRating != 92 {
		t.Errorf("DetailedRating = %d, want 92", m.DetailedRating)
	}
	if len(m.Ratings) != 1 {
		t.Fatalf("expected exactly one ratings element, got %d", len(m.Ratings))
	}
	if m.Ratings[0].Rating != 4.5 || m.Ratings[0].DetailedRating != 92 {
		t.Errorf("unexpected ratings element: %+v", m.Ratings[0])
	}
}

func TestTransformDiaryEntryDirectorsFallback(t *testing.T) {
	m := TransformDiaryEntry(DiaryEntry{Director: "Joel Coen, Ethan Coen"})
	want := []string{"Joel Coen", "Ethan Coen"}
	if !reflect.DeepEqual(m.Directors, want) {
		t.Errorf("Directors = %v, want %v", m.Directors, want)
	}

	m = TransformDiaryEntry(DiaryEntry{})
	if m.Directors == nil || len(m.Directors) != 0 {
		t.Errorf("expected empty non-nil directors, got %v", m.Directors)
	}
}

func TestSplitList(t *testing.T) {
	if got := SplitList("Drama, Crime, Thriller"); !reflect.DeepEqual(got, []string{"Drama", "Crime", "Thriller"}) {
		t.Errorf("SplitList = %v", got)
	}
	if got := SplitList(""); len(got) != 0 || got == nil {
		t.Errorf("empty input should give empty non-nil slice, got %v", got)
	}
}

func TestJoinListRoundTrip(t *testing.T) {
	items := []string{"Horror", "Comedy"}
	if got := SplitList(JoinList(items)); !reflect.DeepEqual(got, items) {
		t.Errorf("round trip = %v, want %v", got, items)
	}
}

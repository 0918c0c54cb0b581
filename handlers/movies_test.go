package handlers

import (
	"net/http/httptest"
	"testing"
)

func TestMinRatingParam(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/top-rated?minRating=95", nil)
	if got := minRatingParam(r); got != 95 {
		t.Errorf("minRating=95 gave %d", got)
	}

	r = httptest.NewRequest("GET", "/api/top-rated?min_rating=80", nil)
	if got := minRatingParam(r); got != 80 {
		t.Errorf("min_rating alias gave %d", got)
	}

	r = httptest.NewRequest("GET", "/api/top-rated", nil)
	if got := minRatingParam(r); got != 90 {
		t.Errorf("default should be 90, got %d", got)
	}

	// camelCase wins when both are present
	r = httptest.NewRequest("GET", "/api/top-rated?minRating=95&min_rating=80", nil)
	if got := minRatingParam(r); got != 95 {
		t.Errorf("minRating should take precedence, got %d", got)
	}
}

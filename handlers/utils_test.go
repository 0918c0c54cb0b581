package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
)

func TestBuildPagination(t *testing.T) {
	p := buildPagination(1, 2, 5)
	if p.Total != 5 || p.TotalPages != 3 {
		t.Errorf("unexpected totals: %+v", p)
	}
	if !p.HasNextPage || p.HasPreviousPage {
		t.Errorf("page 1 of 3 should only have a next page: %+v", p)
	}

	p = buildPagination(3, 2, 5)
	if p.HasNextPage || !p.HasPreviousPage {
		t.Errorf("page 3 of 3 should only have a previous page: %+v", p)
	}

	p = buildPagination(1, 50, 0)
	if p.TotalPages != 0 || p.HasNextPage {
		t.Errorf("empty result should have no pages: %+v", p)
	}
}

func TestParsePagination(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/?page=3&limit=20", nil)
	page, limit, offset := parsePagination(r)
	if page != 3 || limit != 20 || offset != 40 {
		t.Errorf("got page=%d limit=%d offset=%d", page, limit, offset)
	}

	r = httptest.NewRequest("GET", "/api/", nil)
	page, limit, offset = parsePagination(r)
	if page != 1 || limit != 50 || offset != 0 {
		t.Errorf("defaults: got page=%d limit=%d offset=%d", page, limit, offset)
	}

	r = httptest.NewRequest("GET", "/api/?page=-2&limit=9999", nil)
	page, limit, _ = parsePagination(r)
	if page != 1 || limit != 50 {
		t.Errorf("out-of-range values should fall back: page=%d limit=%d", page, limit)
	}
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/?rating=73&junk=abc", nil)
	if got := queryInt(r, "rating", 0); got != 73 {
		t.Errorf("queryInt(rating) = %d", got)
	}
	if got := queryInt(r, "junk", 7); got != 7 {
		t.Errorf("unparseable value should fall back, got %d", got)
	}
	if got := queryInt(r, "missing", 50); got != 50 {
		t.Errorf("missing key should fall back, got %d", got)
	}
}

func TestRespondErrorEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	respondError(w, 404, "Movie not found", nil)

	if w.Code != 404 {
		t.Errorf("status = %d, want 404", w.Code)
	}
	var body envelope
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Success || body.Error != "Movie not found" {
		t.Errorf("unexpected envelope: %+v", body)
	}
}

func TestRequireDBWithoutDatabase(t *testing.T) {
	w := httptest.NewRecorder()
	if requireDB(w) {
		t.Fatal("requireDB should fail when no database is configured")
	}
	if w.Code != 503 {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

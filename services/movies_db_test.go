package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/justbri/cinelog/database"
	"github.com/justbri/cinelog/models"
)

func mockDatabase(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open mock database: %v", err)
	}
	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		db.Close()
	})
	return mock
}

var diaryRowColumns = []string{
	"id", "title", "tmdb_id", "release_date", "year",
	"runtime", "overview", "backdrop_path",
	"poster_path", "vote_average", "vote_count",
	"popularity", "original_language",
	"original_title", "tagline", "status",
	"budget", "revenue", "imdb_id",
	"homepage", "director", "genres",
	"rating", "ratings100", "watched_date",
	"rewatch", "tags", "notes",
	"created_at", "updated_at",
}

func addDiaryRow(rows *sqlmock.Rows, id int, title string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(
		id, title, 0, nil, 0,
		0, "", "",
		"", 0.0, 0,
		0.0, "",
		"", "", "",
		int64(0), int64(0), "",
		"", "", "",
		0.0, 0, now,
		"No", "", "",
		now, now,
	)
}

func TestGetAllMoviesPaginatedPageAndTotal(t *testing.T) {
	mock := mockDatabase(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM diary`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	page := sqlmock.NewRows(diaryRowColumns)
	addDiaryRow(page, 1, "Heat")
	addDiaryRow(page, 2, "Alien")
	mock.ExpectQuery(`LIMIT \$1 OFFSET \$2`).
		WithArgs(2, 0).
		WillReturnRows(page)

	movies, total, err := GetAllMoviesPaginated(context.Background(), 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(movies) != 2 {
		t.Errorf("expected 2 movies on the page, got %d", len(movies))
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpsertMovieInsertsWithoutID(t *testing.T) {
	mock := mockDatabase(t)

	mock.ExpectQuery(`INSERT INTO diary`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	reload := sqlmock.NewRows(diaryRowColumns)
	addDiaryRow(reload, 7, "Stalker")
	mock.ExpectQuery(`WHERE id = \$1`).
		WithArgs(7).
		WillReturnRows(reload)

	movie, err := UpsertMovie(context.Background(), models.DiaryEntry{Title: "Stalker"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if movie.ID != 7 {
		t.Errorf("expected the inserted row back, got id %d", movie.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpsertMovieUpdatesByID(t *testing.T) {
	mock := mockDatabase(t)

	mock.ExpectExec(`UPDATE diary SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	reload := sqlmock.NewRows(diaryRowColumns)
	addDiaryRow(reload, 7, "Stalker")
	mock.ExpectQuery(`WHERE id = \$1`).
		WithArgs(7).
		WillReturnRows(reload)

	movie, err := UpsertMovie(context.Background(), models.DiaryEntry{ID: 7, Title: "Stalker"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if movie.ID != 7 {
		t.Errorf("expected the updated row back, got id %d", movie.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpsertMovieUpdateMissingRow(t *testing.T) {
	mock := mockDatabase(t)

	mock.ExpectExec(`UPDATE diary SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := UpsertMovie(context.Background(), models.DiaryEntry{ID: 404, Title: "Gone"})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows for a missing id, got %v", err)
	}
}

func TestGetFirstLastWatchesEmptyDiary(t *testing.T) {
	mock := mockDatabase(t)

	mock.ExpectQuery(`SELECT title, watched_date FROM diary`).
		WillReturnRows(sqlmock.NewRows([]string{"title", "watched_date"}))

	result, err := GetFirstLastWatches(context.Background())
	if err != nil {
		t.Fatalf("an empty diary is not an error, got %v", err)
	}
	if result != (models.FirstLastWatches{}) {
		t.Errorf("expected the zero value, got %+v", result)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

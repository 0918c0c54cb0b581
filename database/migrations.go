package database

import (
	"fmt"
)

// RunMigrations creates the diary schema. The aggregate stored
// procedures (get_dashboard_stats, get_rating_stats, ...) live in the
// database itself and are managed outside this service; the stats
// layer probes for them at call time and falls back when absent.
func RunMigrations() error {
	diaryTableSQL := `
	CREATE TABLE IF NOT EXISTS diary (
		id SERIAL PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		tmdb_id INTEGER,
		release_date DATE,
		year INTEGER,
		runtime INTEGER,
		overview TEXT,
		backdrop_path VARCHAR(255),
		poster_path VARCHAR(255),
		vote_average DOUBLE PRECISION,
		vote_count INTEGER,
		popularity DOUBLE PRECISION,
		original_language VARCHAR(10),
		original_title VARCHAR(255),
		tagline TEXT,
		status VARCHAR(50),
		budget BIGINT,
		revenue BIGINT,
		imdb_id VARCHAR(50),
		homepage TEXT,
		director VARCHAR(255),
		genres TEXT,
		rating DOUBLE PRECISION,
		ratings100 INTEGER,
		watched_date DATE,
		rewatch VARCHAR(10) DEFAULT 'No',
		tags TEXT,
		notes TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Migration for existing diary table
	DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name='diary' AND column_name='ratings100') THEN
			ALTER TABLE diary ADD COLUMN ratings100 INTEGER;
		END IF;
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name='diary' AND column_name='tagline') THEN
			ALTER TABLE diary ADD COLUMN tagline TEXT;
		END IF;
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name='diary' AND column_name='budget') THEN
			ALTER TABLE diary ADD COLUMN budget BIGINT;
		END IF;
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name='diary' AND column_name='revenue') THEN
			ALTER TABLE diary ADD COLUMN revenue BIGINT;
		END IF;
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name='diary' AND column_name='homepage') THEN
			ALTER TABLE diary ADD COLUMN homepage TEXT;
		END IF;
	END $$;

	CREATE INDEX IF NOT EXISTS idx_diary_watched_date ON diary (watched_date);
	CREATE INDEX IF NOT EXISTS idx_diary_title_lower ON diary (LOWER(title));
	`
	if _, err := DB.Exec(diaryTableSQL); err != nil {
		return fmt.Errorf("failed to run diary migration: %w", err)
	}

	lookupTablesSQL := `
	CREATE TABLE IF NOT EXISTS directors (
		id SERIAL PRIMARY KEY,
		tmdb_id INTEGER UNIQUE,
		name VARCHAR(255) NOT NULL,
		profile_path VARCHAR(255),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS genres (
		id SERIAL PRIMARY KEY,
		tmdb_id INTEGER UNIQUE,
		name VARCHAR(100) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS movie_directors (
		diary_id INTEGER REFERENCES diary(id) ON DELETE CASCADE,
		director_id INTEGER REFERENCES directors(id) ON DELETE CASCADE,
		PRIMARY KEY (diary_id, director_id)
	);

	CREATE TABLE IF NOT EXISTS movie_genres (
		diary_id INTEGER REFERENCES diary(id) ON DELETE CASCADE,
		genre_id INTEGER REFERENCES genres(id) ON DELETE CASCADE,
		PRIMARY KEY (diary_id, genre_id)
	);
	`
	if _, err := DB.Exec(lookupTablesSQL); err != nil {
		return fmt.Errorf("failed to run lookup table migrations: %w", err)
	}

	quotesTableSQL := `
	CREATE TABLE IF NOT EXISTS quotes (
		id SERIAL PRIMARY KEY,
		quote TEXT NOT NULL,
		movie VARCHAR(255),
		character_name VARCHAR(255),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := DB.Exec(quotesTableSQL); err != nil {
		return fmt.Errorf("failed to run quotes migration: %w", err)
	}

	return nil
}

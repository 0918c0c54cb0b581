package database

import (
	"fmt"
)

// SeedQuotes populates the random-quote widget table on first boot.
func SeedQuotes() error {
	var count int
	err := DB.QueryRow("SELECT COUNT(*) FROM quotes").Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check for existing quotes: %w", err)
	}

	if count > 0 {
		// Already seeded, skip
		return nil
	}

	defaultQuotes := []struct {
		quote     string
		movie     string
		character string
	}{
		{"Here's looking at you, kid.", "Casablanca", "Rick Blaine"},
		{"May the Force be with you.", "Star Wars", "Han Solo"},
		{"I'm going to make him an offer he can't refuse.", "The Godfather", "Vito Corleone"},
		{"You talking to me?", "Taxi Driver", "Travis Bickle"},
		{"Why so serious?", "The Dark Knight", "The Joker"},
		{"I'll be back.", "The Terminator", "The Terminator"},
		{"Roads? Where we're going, we don't need roads.", "Back to the Future", "Doc Brown"},
		{"You can't handle the truth!", "A Few Good Men", "Col. Jessup"},
	}

	for _, q := range defaultQuotes {
		_, err := DB.Exec(
			"INSERT INTO quotes (quote, movie, character_name) VALUES ($1, $2, $3)",
			q.quote, q.movie, q.character,
		)
		if err != nil {
			return fmt.Errorf("failed to seed quote: %w", err)
		}
	}

	return nil
}

package services

import (
	"context"
	"fmt"

	"github.com/justbri/cinelog/database"
	"github.com/justbri/cinelog/models"
)

// GetRandomQuote returns one quote picked by the database. The quotes
// table is tiny, so ORDER BY random() is fine.
func GetRandomQuote(ctx context.Context) (models.Quote, error) {
	var q models.Quote
	err := database.DB.QueryRowContext(ctx, `
		SELECT id, quote, movie, character_name FROM quotes
		ORDER BY random() LIMIT 1`).
		Scan(&q.ID, &q.Quote, &q.Movie, &q.Character)
	if err != nil {
		return q, fmt.Errorf("failed to load quote: %w", err)
	}
	return q, nil
}

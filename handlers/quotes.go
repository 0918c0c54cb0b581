package handlers

import (
	"net/http"

	"github.com/justbri/cinelog/services"
)

// RandomQuote serves one random movie quote.
func RandomQuote(w http.ResponseWriter, r *http.Request) {
	if !requireDB(w) {
		return
	}
	quote, err := services.GetRandomQuote(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, quote)
}

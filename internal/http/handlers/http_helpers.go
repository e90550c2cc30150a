package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/poskit/cashier/internal/models"
	"github.com/poskit/cashier/internal/orgs"
	"github.com/poskit/cashier/internal/repo"
)

type contextKey string

const userIDKey = contextKey("user_id")

// WithUserID stores the authenticated user id in the context. Called by the
// auth middleware after the bearer token has been verified.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user id stored by the auth
// middleware.
func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDKey).(int)
	return userID, ok
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

// organisationFromRequest resolves the authenticated caller's organisation
// from the user id the auth middleware put in the context. On failure it
// writes the response itself and reports ok=false.
func organisationFromRequest(w http.ResponseWriter, r *http.Request) (models.Organisation, bool) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return models.Organisation{}, false
	}

	org, err := orgResolver.OrganisationFor(userID)
	if err != nil {
		switch {
		case errors.Is(err, orgs.ErrNoOrganisation),
			errors.Is(err, repo.ErrUserNotFound),
			errors.Is(err, repo.ErrOrganisationNotFound):
			http.Error(w, "user does not have an associated organisation", http.StatusBadRequest)
		default:
			log.Printf("organisation lookup failed: %v", err)
			http.Error(w, "could not resolve organisation", http.StatusInternalServerError)
		}
		return models.Organisation{}, false
	}
	return org, true
}

func productInput(req ProductRequest) models.ProductInput {
	return models.ProductInput{
		Name:     req.Name,
		Barcode:  req.Barcode,
		Price:    req.Price,
		BuyPrice: req.BuyPrice,
		Stock:    req.Stock,
	}
}

package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"testing"

	api "github.com/poskit/cashier/internal/http"
	handler "github.com/poskit/cashier/internal/http/handlers"
)

func TestLoginHandler_Valid(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/login", handler.UserLogin{Username: "admin", Password: "secret"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a non-empty token")
	}
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/login", handler.UserLogin{Username: "admin", Password: "wrong"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", w.Code)
	}
}

func TestLoginHandler_UnknownUser(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/login", handler.UserLogin{Username: "nobody", Password: "secret"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", w.Code)
	}
}

func TestLoginHandler_MissingCredentials(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/login", handler.UserLogin{Username: "admin"}, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request, got %d", w.Code)
	}
}

func TestBogusTokenRejected(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodGet, "/products", nil, "not-a-jwt")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", w.Code)
	}
}

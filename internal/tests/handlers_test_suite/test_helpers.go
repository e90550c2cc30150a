package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/poskit/cashier/internal/catalog"
	api "github.com/poskit/cashier/internal/http"
	handler "github.com/poskit/cashier/internal/http/handlers"
	rl "github.com/poskit/cashier/internal/http/rate_limiter"
	"github.com/poskit/cashier/internal/models"
	"github.com/poskit/cashier/internal/orgs"
	"github.com/poskit/cashier/internal/repo"
	"github.com/poskit/cashier/internal/sales"
	"golang.org/x/crypto/bcrypt"
)

var (
	token       string
	orphanToken string
	datasetRepo *repo.InMemoryDatasetRepository
)

func init() {
	// httptest sends every request from the same address; keep the
	// limiter out of the way.
	rl.Configure(10000, 10000)

	setupTestRepos("secret")
	r := api.NewRouter()

	var err error
	token, err = generateToken(r, "admin", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
	orphanToken, err = generateToken(r, "orphan", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating orphan token: %v", err))
	}
}

func setupTestRepos(password string) {
	datasetRepo = repo.NewInMemoryDatasetRepository()
	handler.SetCatalogService(catalog.NewService(datasetRepo))
	handler.SetSalesService(sales.NewService(datasetRepo))

	userRepo := repo.NewInMemoryUserRepository()
	orgRepo := repo.NewInMemoryOrganisationRepository()

	org, _ := orgRepo.Create(models.Organisation{Name: "Acme"})

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userRepo.CreateUser(models.User{
		Username:       "admin",
		PasswordHash:   string(hash),
		OrganisationID: org.ID,
	})
	userRepo.CreateUser(models.User{
		Username:     "orphan",
		PasswordHash: string(hash),
	})

	handler.SetUserRepo(userRepo)
	handler.SetOrgResolver(orgs.NewResolver(userRepo, orgRepo, nil, 0))
}

func clearAllDatasets() {
	datasetRepo.Clear()
}

func generateToken(r http.Handler, username, password string) (string, error) {
	payload := handler.UserLogin{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func doJSON(r http.Handler, method, path string, payload any, bearer string) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func addProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/products", handler.AddProductRequest{Product: p}, token)
}

func saveSale(r http.Handler, tx handler.TransactionRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/sales", handler.SaveSaleRequest{Transaction: tx}, token)
}

func floatPtr(v float64) *float64 { return &v }
func int64Ptr(v int64) *int64     { return &v }

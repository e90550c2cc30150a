package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	api "github.com/poskit/cashier/internal/http"
	handler "github.com/poskit/cashier/internal/http/handlers"
	"github.com/poskit/cashier/internal/models"
)

func TestSaveSaleHandler_Valid(t *testing.T) {
	t.Cleanup(clearAllDatasets)
	r := api.NewRouter()

	w := saveSale(r, handler.TransactionRequest{
		Timestamp: int64Ptr(1700000000000),
		Products:  []models.SaleItem{{ProductID: "Widget", Quantity: 2}},
		Total:     19.98,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var resp handler.MessageResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Message == "" {
		t.Error("expected a confirmation message")
	}
}

func TestSaveSaleHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAllDatasets)
	r := api.NewRouter()

	tests := []struct {
		name           string
		payload        handler.TransactionRequest
		expectedErrors []string
	}{
		{
			name:           "Missing timestamp and products",
			payload:        handler.TransactionRequest{},
			expectedErrors: []string{"Timestamp", "Products"},
		},
		{
			name:           "Missing timestamp only",
			payload:        handler.TransactionRequest{Products: []models.SaleItem{}},
			expectedErrors: []string{"Timestamp"},
		},
		{
			name:           "Missing products only",
			payload:        handler.TransactionRequest{Timestamp: int64Ptr(1700000000000)},
			expectedErrors: []string{"Products"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := saveSale(r, tt.payload)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}

			var resp []handler.ValidationError
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}

			for _, field := range tt.expectedErrors {
				found := false
				for _, err := range resp {
					if strings.EqualFold(err.Field, field) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected error for field %q, but not found", field)
				}
			}
		})
	}
}

func TestGetSalesHandler_RoundTrip(t *testing.T) {
	t.Cleanup(clearAllDatasets)
	r := api.NewRouter()

	w := saveSale(r, handler.TransactionRequest{
		Timestamp: int64Ptr(1700000000000),
		Products:  []models.SaleItem{{ProductID: "Widget", Quantity: 3, Name: "Widget", Price: 9.99}},
		Total:     29.97,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	getW := doJSON(r, http.MethodGet, "/sales", nil, token)
	if getW.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", getW.Code)
	}

	var resp handler.SalesResponse
	if err := json.NewDecoder(getW.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(resp.Sales) != 1 {
		t.Fatalf("expected 1 sale, got %d", len(resp.Sales))
	}

	tx := resp.Sales[0]
	if tx.ID != "1700000000000" {
		t.Errorf("expected id 1700000000000, got %q", tx.ID)
	}
	if tx.Timestamp != 1700000000000 {
		t.Errorf("expected timestamp 1700000000000, got %d", tx.Timestamp)
	}
	if tx.Total != 29.97 {
		t.Errorf("expected total 29.97, got %v", tx.Total)
	}
	if len(tx.Products) != 1 || tx.Products[0].ProductID != "Widget" {
		t.Errorf("unexpected products payload: %v", tx.Products)
	}
}

func TestGetSalesHandler_EmptyWithoutSales(t *testing.T) {
	t.Cleanup(clearAllDatasets)
	r := api.NewRouter()

	w := doJSON(r, http.MethodGet, "/sales", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.SalesResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(resp.Sales) != 0 {
		t.Errorf("expected no sales, got %d", len(resp.Sales))
	}
}

func TestSaveSaleHandler_IncrementsSoldCounters(t *testing.T) {
	t.Cleanup(clearAllDatasets)
	r := api.NewRouter()

	w := addProduct(r, handler.ProductRequest{
		Name:  "Widget",
		Price: floatPtr(9.99),
		Stock: []models.StockBatch{{Quantity: 10}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created for product, got %d", w.Code)
	}

	w = saveSale(r, handler.TransactionRequest{
		Timestamp: int64Ptr(1700000000000),
		Products: []models.SaleItem{
			{ProductID: "Widget", Quantity: 3},
			{ProductID: "Unknown", Quantity: 5},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created for sale, got %d", w.Code)
	}

	getW := doJSON(r, http.MethodGet, "/products", nil, token)
	var resp handler.ProductsResponse
	if err := json.NewDecoder(getW.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	p := resp.Products[0]
	if p.Sold != 3 {
		t.Errorf("expected sold 3, got %d", p.Sold)
	}
	if p.AvailableStock != 7 {
		t.Errorf("expected availableStock 7, got %v", p.AvailableStock)
	}
}

func TestGetSalesHandler_MostRecentFirst(t *testing.T) {
	t.Cleanup(clearAllDatasets)
	r := api.NewRouter()

	for _, ts := range []int64{1000, 3000, 2000} {
		w := saveSale(r, handler.TransactionRequest{Timestamp: int64Ptr(ts), Products: []models.SaleItem{}})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201 Created, got %d", w.Code)
		}
	}

	getW := doJSON(r, http.MethodGet, "/sales", nil, token)
	var resp handler.SalesResponse
	if err := json.NewDecoder(getW.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	want := []int64{3000, 2000, 1000}
	for i, ts := range want {
		if resp.Sales[i].Timestamp != ts {
			t.Errorf("position %d: expected timestamp %d, got %d", i, ts, resp.Sales[i].Timestamp)
		}
	}
}

func TestSaveSaleHandler_OrphanUser(t *testing.T) {
	t.Cleanup(clearAllDatasets)
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/sales", handler.SaveSaleRequest{
		Transaction: handler.TransactionRequest{
			Timestamp: int64Ptr(1700000000000),
			Products:  []models.SaleItem{},
		},
	}, orphanToken)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request, got %d", w.Code)
	}
}

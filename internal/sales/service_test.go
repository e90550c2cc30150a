package sales

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/poskit/cashier/internal/catalog"
	"github.com/poskit/cashier/internal/models"
	"github.com/poskit/cashier/internal/repo"
)

var org = models.Organisation{ID: 1, Name: "Acme"}

func newTestServices() (*Service, *catalog.Service, *repo.InMemoryDatasetRepository) {
	datasets := repo.NewInMemoryDatasetRepository()
	return NewService(datasets), catalog.NewService(datasets), datasets
}

func floatPtr(v float64) *float64 { return &v }
func int64Ptr(v int64) *int64     { return &v }

func TestRecordValidation(t *testing.T) {
	svc, _, _ := newTestServices()

	err := svc.Record(org, models.TransactionInput{Products: []models.SaleItem{}})
	if !errors.Is(err, ErrTimestampRequired) {
		t.Errorf("expected ErrTimestampRequired, got %v", err)
	}

	err = svc.Record(org, models.TransactionInput{Timestamp: int64Ptr(1700000000000)})
	if !errors.Is(err, ErrProductsRequired) {
		t.Errorf("expected ErrProductsRequired, got %v", err)
	}
}

func TestRecordIncrementsSoldCounters(t *testing.T) {
	svc, catalogSvc, _ := newTestServices()

	catalogSvc.Add(org, models.ProductInput{Name: "Widget", Price: floatPtr(9.99), Stock: []models.StockBatch{{Quantity: 10}}})

	err := svc.Record(org, models.TransactionInput{
		Timestamp: int64Ptr(1700000000000),
		Products: []models.SaleItem{
			{ProductID: "Widget", Quantity: 3},
			{ProductID: "Unknown", Quantity: 5}, // silently skipped
		},
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	products, _ := catalogSvc.List(org)
	if products[0].Sold != 3 {
		t.Errorf("expected Widget.sold 3, got %d", products[0].Sold)
	}
	if products[0].AvailableStock != 7 {
		t.Errorf("expected availableStock 7, got %v", products[0].AvailableStock)
	}
}

func TestRecordStoresPayloadWithoutIDAndTimestamp(t *testing.T) {
	svc, _, datasets := newTestServices()

	err := svc.Record(org, models.TransactionInput{
		Timestamp: int64Ptr(1700000000000),
		Products:  []models.SaleItem{},
		Total:     42.5,
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	ds, err := datasets.Find(org, repo.PurposeSales)
	if err != nil {
		t.Fatalf("expected sales dataset: %v", err)
	}
	raw, ok := ds.Data.Get("1700000000000")
	if !ok {
		t.Fatal("expected entry keyed by stringified timestamp")
	}
	var stored map[string]any
	if err := json.Unmarshal(raw, &stored); err != nil {
		t.Fatalf("stored record is not valid JSON: %v", err)
	}
	if _, ok := stored["id"]; ok {
		t.Error("expected no id inside the stored record")
	}
	if _, ok := stored["timestamp"]; ok {
		t.Error("expected no timestamp inside the stored record")
	}
	if stored["total"] != 42.5 {
		t.Errorf("expected total 42.5, got %v", stored["total"])
	}
}

func TestRecordPrependsNewEntry(t *testing.T) {
	svc, _, datasets := newTestServices()

	svc.Record(org, models.TransactionInput{Timestamp: int64Ptr(1000), Products: []models.SaleItem{}})
	svc.Record(org, models.TransactionInput{Timestamp: int64Ptr(2000), Products: []models.SaleItem{}})

	ds, _ := datasets.Find(org, repo.PurposeSales)
	keys := ds.Data.Keys()
	if keys[0] != "2000" || keys[1] != "1000" {
		t.Errorf("expected stored order [2000 1000], got %v", keys)
	}
}

func TestListRoundTrip(t *testing.T) {
	svc, _, _ := newTestServices()

	err := svc.Record(org, models.TransactionInput{
		Timestamp: int64Ptr(1700000000000),
		Products:  []models.SaleItem{{ProductID: "Widget", Quantity: 3}},
		Total:     29.97,
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	transactions, err := svc.List(org)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(transactions))
	}
	tx := transactions[0]
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

func TestListMostRecentFirst(t *testing.T) {
	svc, _, _ := newTestServices()

	svc.Record(org, models.TransactionInput{Timestamp: int64Ptr(1000), Products: []models.SaleItem{}})
	svc.Record(org, models.TransactionInput{Timestamp: int64Ptr(3000), Products: []models.SaleItem{}})
	svc.Record(org, models.TransactionInput{Timestamp: int64Ptr(2000), Products: []models.SaleItem{}})

	transactions, _ := svc.List(org)
	want := []int64{3000, 2000, 1000}
	for i, ts := range want {
		if transactions[i].Timestamp != ts {
			t.Errorf("position %d: expected timestamp %d, got %d", i, ts, transactions[i].Timestamp)
		}
	}
}

func TestRecordKeepsExistingEntryOnTimestampCollision(t *testing.T) {
	svc, _, _ := newTestServices()

	err := svc.Record(org, models.TransactionInput{
		Timestamp: int64Ptr(1700000000000),
		Products:  []models.SaleItem{},
		Total:     10,
	})
	if err != nil {
		t.Fatalf("first record failed: %v", err)
	}

	// Same timestamp again: the ledger is append-only, so the first
	// transaction must survive unchanged.
	err = svc.Record(org, models.TransactionInput{
		Timestamp: int64Ptr(1700000000000),
		Products:  []models.SaleItem{},
		Total:     99,
	})
	if err != nil {
		t.Fatalf("second record failed: %v", err)
	}

	transactions, err := svc.List(org)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(transactions))
	}
	if transactions[0].Total != 10 {
		t.Errorf("expected original total 10 to be preserved, got %v", transactions[0].Total)
	}
}

func TestListWithoutDatasetIsEmpty(t *testing.T) {
	svc, _, datasets := newTestServices()

	transactions, err := svc.List(org)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(transactions) != 0 {
		t.Errorf("expected no transactions, got %d", len(transactions))
	}

	// Listing must not create the dataset.
	if _, err := datasets.Find(org, repo.PurposeSales); !errors.Is(err, repo.ErrDatasetNotFound) {
		t.Errorf("expected ErrDatasetNotFound, got %v", err)
	}
}

func TestRecordDoesNotTouchProductsWhenNoneMatch(t *testing.T) {
	svc, catalogSvc, datasets := newTestServices()

	catalogSvc.Add(org, models.ProductInput{Name: "Widget", Price: floatPtr(1)})
	before, _ := datasets.Find(org, repo.PurposeProducts)

	err := svc.Record(org, models.TransactionInput{
		Timestamp: int64Ptr(1700000000000),
		Products:  []models.SaleItem{{ProductID: "Unknown", Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	after, _ := datasets.Find(org, repo.PurposeProducts)
	if after.Version != before.Version {
		t.Errorf("expected products dataset untouched, version went %d -> %d", before.Version, after.Version)
	}
}

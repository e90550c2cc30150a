// Package catalog implements the product catalog: business rules over an
// organisation's products dataset.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/poskit/cashier/internal/datamap"
	"github.com/poskit/cashier/internal/models"
	"github.com/poskit/cashier/internal/repo"
)

var (
	// ErrNameRequired is returned when a product has no name.
	ErrNameRequired = errors.New("product name is required")

	// ErrPriceRequired is returned when a product has no sell price.
	ErrPriceRequired = errors.New("sell price is required")

	// ErrProductExists is returned when a product name is already taken.
	ErrProductExists = errors.New("product with this name already exists")

	// ErrProductNotFound is returned when a product key does not exist.
	ErrProductNotFound = errors.New("product not found")
)

// replaceAttempts bounds the compare-and-swap retry loop around dataset
// mutations. Each attempt re-reads the dataset, so a retry only happens when
// another writer got in between.
const replaceAttempts = 5

// Service provides list/add/edit/delete over an organisation's products
// dataset. Mutations are serialized per dataset through the repository's
// version check.
type Service struct {
	datasets repo.DatasetRepository
}

func NewService(datasets repo.DatasetRepository) *Service {
	return &Service{datasets: datasets}
}

// List returns every product in stored (insertion) order with the derived
// availableStock field. The dataset is created lazily on first access.
func (s *Service) List(org models.Organisation) ([]models.ProductView, error) {
	ds, err := s.datasets.Resolve(org, repo.PurposeProducts)
	if err != nil {
		return nil, err
	}

	views := make([]models.ProductView, 0, ds.Data.Len())
	for _, name := range ds.Data.Keys() {
		raw, _ := ds.Data.Get(name)
		var rec models.ProductRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode product %q: %w", name, err)
		}
		views = append(views, newProductView(name, rec))
	}
	return views, nil
}

// Add stores a new product under its name. The client-facing id equals the
// name; neither is stored inside the record. Sold always starts at zero.
func (s *Service) Add(org models.Organisation, input models.ProductInput) (models.ProductView, error) {
	if err := validateInput(input); err != nil {
		return models.ProductView{}, err
	}

	rec := recordFromInput(input)
	var created models.ProductView
	err := s.mutate(org, func(data *datamap.Map) error {
		if data.Has(input.Name) {
			return ErrProductExists
		}
		raw, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		data.Set(input.Name, raw)
		created = newProductView(input.Name, rec)
		return nil
	})
	return created, err
}

// Edit replaces the product stored under oldName. The sold counter is always
// carried over from the existing record, ignoring whatever the caller sent.
// A rename removes the old key and appends the new one, which moves the
// product to the end of the iteration order.
func (s *Service) Edit(org models.Organisation, oldName string, input models.ProductInput) (models.ProductView, error) {
	if err := validateInput(input); err != nil {
		return models.ProductView{}, err
	}

	var updated models.ProductView
	err := s.mutate(org, func(data *datamap.Map) error {
		raw, ok := data.Get(oldName)
		if !ok {
			return ErrProductNotFound
		}
		if input.Name != oldName && data.Has(input.Name) {
			return ErrProductExists
		}

		var existing models.ProductRecord
		if err := json.Unmarshal(raw, &existing); err != nil {
			return fmt.Errorf("decode product %q: %w", oldName, err)
		}

		rec := recordFromInput(input)
		rec.Sold = existing.Sold

		if input.Name != oldName {
			data.Delete(oldName)
		}
		encoded, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		data.Set(input.Name, encoded)
		updated = newProductView(input.Name, rec)
		return nil
	})
	return updated, err
}

// Delete removes the product stored under name. There is no tombstone:
// transactions referencing the key stay in the ledger and later sold
// increments for it are silently skipped.
func (s *Service) Delete(org models.Organisation, name string) error {
	return s.mutate(org, func(data *datamap.Map) error {
		if !data.Delete(name) {
			return ErrProductNotFound
		}
		return nil
	})
}

// ApplySoldIncrements bumps the sold counter of every referenced product in
// place and reports whether anything changed. Items without a product id or
// quantity, unknown keys and undecodable records are skipped rather than
// failing the whole sale.
func ApplySoldIncrements(data *datamap.Map, items []models.SaleItem) bool {
	changed := false
	for _, item := range items {
		if item.ProductID == "" || item.Quantity == 0 {
			continue
		}
		raw, ok := data.Get(item.ProductID)
		if !ok {
			continue
		}
		var rec models.ProductRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		rec.Sold += item.Quantity
		encoded, err := json.Marshal(rec)
		if err != nil {
			continue
		}
		data.Set(item.ProductID, encoded)
		changed = true
	}
	return changed
}

// mutate runs one read-compute-replace cycle over the products dataset,
// retrying on version conflicts so concurrent writers cannot lose updates.
func (s *Service) mutate(org models.Organisation, apply func(data *datamap.Map) error) error {
	var err error
	for attempt := 0; attempt < replaceAttempts; attempt++ {
		var ds models.Dataset
		ds, err = s.datasets.Resolve(org, repo.PurposeProducts)
		if err != nil {
			return err
		}
		if err = apply(ds.Data); err != nil {
			return err
		}
		err = s.datasets.Replace(repo.DatasetUpdate{
			DatasetID: ds.ID,
			Data:      ds.Data,
			Version:   ds.Version,
		})
		if !errors.Is(err, repo.ErrVersionConflict) {
			return err
		}
	}
	return err
}

func validateInput(input models.ProductInput) error {
	if input.Name == "" {
		return ErrNameRequired
	}
	if input.Price == nil {
		return ErrPriceRequired
	}
	return nil
}

func recordFromInput(input models.ProductInput) models.ProductRecord {
	stock := input.Stock
	if stock == nil {
		stock = []models.StockBatch{}
	}
	return models.ProductRecord{
		Barcode:  input.Barcode,
		Price:    *input.Price,
		BuyPrice: input.BuyPrice,
		Stock:    stock,
	}
}

func newProductView(name string, rec models.ProductRecord) models.ProductView {
	stock := rec.Stock
	if stock == nil {
		stock = []models.StockBatch{}
	}
	total := 0.0
	for _, batch := range stock {
		total += batch.Quantity
	}
	return models.ProductView{
		ID:             name,
		Name:           name,
		Barcode:        rec.Barcode,
		Price:          rec.Price,
		BuyPrice:       rec.BuyPrice,
		Sold:           rec.Sold,
		Stock:          stock,
		AvailableStock: total - float64(rec.Sold),
	}
}

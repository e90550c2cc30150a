// Package sales implements the sales ledger: an append-only transaction log
// per organisation that also reconciles product sold counters.
package sales

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/poskit/cashier/internal/catalog"
	"github.com/poskit/cashier/internal/models"
	"github.com/poskit/cashier/internal/repo"
)

var (
	// ErrTimestampRequired is returned when a transaction has no timestamp.
	ErrTimestampRequired = errors.New("transaction timestamp is required")

	// ErrProductsRequired is returned when a transaction has no products list.
	ErrProductsRequired = errors.New("transaction products are required")
)

const replaceAttempts = 5

// Service appends transactions to the sales dataset and lists them. A
// recorded sale also increments sold counters in the products dataset; both
// writes go through the repository in a single atomic replace.
type Service struct {
	datasets repo.DatasetRepository
}

func NewService(datasets repo.DatasetRepository) *Service {
	return &Service{datasets: datasets}
}

// Record appends a transaction keyed by its stringified timestamp. The
// stored payload never contains the id or timestamp; both derive from the
// key. The new entry is prepended so it sits ahead of older entries in
// stored order. The ledger is append-only: a timestamp that collides with
// an existing entry leaves that entry untouched. Sold counters for every
// known product in the sale are incremented in the same replace; unknown
// product ids are skipped.
func (s *Service) Record(org models.Organisation, input models.TransactionInput) error {
	if input.Timestamp == nil {
		return ErrTimestampRequired
	}
	if input.Products == nil {
		return ErrProductsRequired
	}

	key := strconv.FormatInt(*input.Timestamp, 10)
	raw, err := json.Marshal(models.TransactionRecord{
		Products:      input.Products,
		Total:         input.Total,
		PaymentMethod: input.PaymentMethod,
	})
	if err != nil {
		return fmt.Errorf("encode transaction %s: %w", key, err)
	}

	for attempt := 0; attempt < replaceAttempts; attempt++ {
		salesDS, err := s.datasets.Resolve(org, repo.PurposeSales)
		if err != nil {
			return err
		}
		productsDS, err := s.datasets.Resolve(org, repo.PurposeProducts)
		if err != nil {
			return err
		}

		updates := make([]repo.DatasetUpdate, 0, 2)
		if !salesDS.Data.Has(key) {
			salesDS.Data.Prepend(key, raw)
			updates = append(updates, repo.DatasetUpdate{
				DatasetID: salesDS.ID,
				Data:      salesDS.Data,
				Version:   salesDS.Version,
			})
		}
		if catalog.ApplySoldIncrements(productsDS.Data, input.Products) {
			updates = append(updates, repo.DatasetUpdate{
				DatasetID: productsDS.ID,
				Data:      productsDS.Data,
				Version:   productsDS.Version,
			})
		}
		if len(updates) == 0 {
			return nil
		}

		err = s.datasets.ReplaceAll(updates)
		if !errors.Is(err, repo.ErrVersionConflict) {
			return err
		}
	}
	return repo.ErrVersionConflict
}

// List returns every transaction, most recent first, with id and timestamp
// reconstructed from the dataset key. A missing sales dataset means no sales
// yet; it is not created.
func (s *Service) List(org models.Organisation) ([]models.TransactionView, error) {
	ds, err := s.datasets.Find(org, repo.PurposeSales)
	if errors.Is(err, repo.ErrDatasetNotFound) {
		return []models.TransactionView{}, nil
	}
	if err != nil {
		return nil, err
	}

	views := make([]models.TransactionView, 0, ds.Data.Len())
	for _, key := range ds.Data.Keys() {
		raw, _ := ds.Data.Get(key)
		var rec models.TransactionRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode transaction %q: %w", key, err)
		}
		// Keys are written as stringified epoch millis; anything else
		// keeps a zero timestamp rather than dropping the entry.
		timestamp, _ := strconv.ParseInt(key, 10, 64)
		views = append(views, models.TransactionView{
			ID:            key,
			Timestamp:     timestamp,
			Products:      rec.Products,
			Total:         rec.Total,
			PaymentMethod: rec.PaymentMethod,
		})
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Timestamp > views[j].Timestamp
	})
	return views, nil
}

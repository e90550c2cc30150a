package repo

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/poskit/cashier/internal/datamap"
	"github.com/poskit/cashier/internal/models"
)

// InMemoryDatasetRepository is an in-memory implementation of
// DatasetRepository. Payloads are kept as marshalled JSON so callers never
// share live datamap instances with the store, and replaces are guarded by a
// mutex to give the same atomicity as the Postgres implementation.
type InMemoryDatasetRepository struct {
	mu       sync.Mutex
	datasets map[string]*memoryDataset
	nextID   int
}

type memoryDataset struct {
	id             int
	name           string
	organisationID int
	raw            []byte
	version        int64
}

// NewInMemoryDatasetRepository creates a new instance of InMemoryDatasetRepository.
func NewInMemoryDatasetRepository() *InMemoryDatasetRepository {
	return &InMemoryDatasetRepository{
		datasets: map[string]*memoryDataset{},
		nextID:   1,
	}
}

func (r *InMemoryDatasetRepository) Resolve(org models.Organisation, purpose string) (models.Dataset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := DatasetName(org, purpose)
	ds, ok := r.datasets[name]
	if !ok {
		ds = &memoryDataset{
			id:             r.nextID,
			name:           name,
			organisationID: org.ID,
			raw:            []byte("{}"),
			version:        1,
		}
		r.nextID++
		r.datasets[name] = ds
	}
	return ds.snapshot()
}

func (r *InMemoryDatasetRepository) Find(org models.Organisation, purpose string) (models.Dataset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ds, ok := r.datasets[DatasetName(org, purpose)]
	if !ok {
		return models.Dataset{}, ErrDatasetNotFound
	}
	return ds.snapshot()
}

func (r *InMemoryDatasetRepository) Replace(update DatasetUpdate) error {
	return r.ReplaceAll([]DatasetUpdate{update})
}

func (r *InMemoryDatasetRepository) ReplaceAll(updates []DatasetUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check every version before writing anything so a conflict on the
	// second dataset cannot leave the first one half-replaced.
	targets := make([]*memoryDataset, len(updates))
	for i, update := range updates {
		ds := r.byID(update.DatasetID)
		if ds == nil {
			return ErrDatasetNotFound
		}
		if ds.version != update.Version {
			return ErrVersionConflict
		}
		targets[i] = ds
	}

	for i, update := range updates {
		raw, err := json.Marshal(update.Data)
		if err != nil {
			return fmt.Errorf("encode dataset %d: %w", update.DatasetID, err)
		}
		targets[i].raw = raw
		targets[i].version++
	}
	return nil
}

func (r *InMemoryDatasetRepository) byID(id int) *memoryDataset {
	for _, ds := range r.datasets {
		if ds.id == id {
			return ds
		}
	}
	return nil
}

// Clear drops all datasets.
func (r *InMemoryDatasetRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.datasets = map[string]*memoryDataset{}
	r.nextID = 1
}

func (ds *memoryDataset) snapshot() (models.Dataset, error) {
	data := datamap.New()
	if err := json.Unmarshal(ds.raw, data); err != nil {
		return models.Dataset{}, err
	}
	return models.Dataset{
		ID:             ds.id,
		Name:           ds.name,
		OrganisationID: ds.organisationID,
		Data:           data,
		Version:        ds.version,
	}, nil
}

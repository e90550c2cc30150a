package repo

import (
	"fmt"

	"github.com/poskit/cashier/internal/datamap"
	"github.com/poskit/cashier/internal/models"
)

// Dataset purposes. Each organisation has at most one dataset per purpose.
const (
	PurposeProducts = "products"
	PurposeSales    = "sales"
)

// DatasetName derives the unique blob name for an organisation and purpose.
// The organisation ID is used rather than its display name so renames and
// separator characters in names cannot produce ambiguous dataset names.
func DatasetName(org models.Organisation, purpose string) string {
	return fmt.Sprintf("%d_%s", org.ID, purpose)
}

// DatasetUpdate is a whole-payload replace guarded by the version the caller
// read. The replace fails with ErrVersionConflict when the stored version no
// longer matches.
type DatasetUpdate struct {
	DatasetID int
	Data      *datamap.Map
	Version   int64
}

// DatasetRepository stores named blobs, one per (organisation, purpose).
type DatasetRepository interface {
	// Resolve returns the dataset for org and purpose, creating an empty one
	// when none exists. Creation is idempotent: concurrent first callers
	// converge on the same dataset.
	Resolve(org models.Organisation, purpose string) (models.Dataset, error)

	// Find returns the dataset for org and purpose, or ErrDatasetNotFound.
	Find(org models.Organisation, purpose string) (models.Dataset, error)

	// Replace overwrites a dataset's payload if its version is unchanged.
	Replace(update DatasetUpdate) error

	// ReplaceAll applies several replaces atomically: either every update
	// passes its version check and is written, or none is.
	ReplaceAll(updates []DatasetUpdate) error
}

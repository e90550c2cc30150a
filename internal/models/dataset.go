package models

import "github.com/poskit/cashier/internal/datamap"

// Dataset is a named blob acting as a per-organisation key/value table.
// Name is unique; Version is the optimistic-concurrency counter checked on
// every replace.
type Dataset struct {
	ID             int          `json:"id"`
	Name           string       `json:"name"`
	OrganisationID int          `json:"organisation_id"`
	Data           *datamap.Map `json:"data"`
	Version        int64        `json:"version"`
}

package repo

import "github.com/poskit/cashier/internal/models"

type InMemoryOrganisationRepository struct {
	organisations []models.Organisation
	nextID        int
}

func NewInMemoryOrganisationRepository() *InMemoryOrganisationRepository {
	return &InMemoryOrganisationRepository{
		organisations: []models.Organisation{},
		nextID:        1,
	}
}

func (r *InMemoryOrganisationRepository) GetByID(id int) (models.Organisation, error) {
	for _, org := range r.organisations {
		if org.ID == id {
			return org, nil
		}
	}
	return models.Organisation{}, ErrOrganisationNotFound
}

func (r *InMemoryOrganisationRepository) Create(org models.Organisation) (models.Organisation, error) {
	org.ID = r.nextID
	r.nextID++
	r.organisations = append(r.organisations, org)
	return org, nil
}

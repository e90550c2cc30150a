package repo

import "github.com/poskit/cashier/internal/models"

type OrganisationRepository interface {
	GetByID(id int) (models.Organisation, error)
	Create(org models.Organisation) (models.Organisation, error)
}

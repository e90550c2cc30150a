package repo

import "github.com/poskit/cashier/internal/models"

type UserRepository interface {
	GetByID(id int) (models.User, error)
	GetByUsername(username string) (models.User, error)
	CreateUser(u models.User) (models.User, error)
}

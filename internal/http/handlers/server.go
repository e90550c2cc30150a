package handlers

import (
	"github.com/poskit/cashier/internal/catalog"
	"github.com/poskit/cashier/internal/orgs"
	"github.com/poskit/cashier/internal/repo"
	"github.com/poskit/cashier/internal/sales"
)

var (
	catalogSvc  *catalog.Service
	salesSvc    *sales.Service
	orgResolver *orgs.Resolver
	userRepo    repo.UserRepository
)

func SetCatalogService(s *catalog.Service) {
	catalogSvc = s
}

func SetSalesService(s *sales.Service) {
	salesSvc = s
}

func SetOrgResolver(r *orgs.Resolver) {
	orgResolver = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

// Package orgs resolves authenticated principals to their organisation.
package orgs

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/poskit/cashier/internal/models"
	"github.com/poskit/cashier/internal/redissvc"
	"github.com/poskit/cashier/internal/repo"
)

// ErrNoOrganisation is returned when an authenticated user has no associated
// organisation.
var ErrNoOrganisation = errors.New("user does not have an associated organisation")

// Resolver looks up the organisation of a user, with an optional redis cache
// in front of the repositories. A nil cache disables caching.
type Resolver struct {
	users         repo.UserRepository
	organisations repo.OrganisationRepository
	cache         *redissvc.RedisService
	ttl           time.Duration
}

func NewResolver(users repo.UserRepository, organisations repo.OrganisationRepository, cache *redissvc.RedisService, ttl time.Duration) *Resolver {
	return &Resolver{
		users:         users,
		organisations: organisations,
		cache:         cache,
		ttl:           ttl,
	}
}

// OrganisationFor returns the organisation of the given user.
func (r *Resolver) OrganisationFor(userID int) (models.Organisation, error) {
	key := fmt.Sprintf("orgctx:user:%d", userID)

	if r.cache != nil {
		var org models.Organisation
		hit, err := r.cache.GetJSON(key, &org)
		if err != nil {
			log.Printf("organisation cache read failed: %v", err)
		} else if hit {
			return org, nil
		}
	}

	user, err := r.users.GetByID(userID)
	if err != nil {
		return models.Organisation{}, err
	}
	if user.OrganisationID == 0 {
		return models.Organisation{}, ErrNoOrganisation
	}

	org, err := r.organisations.GetByID(user.OrganisationID)
	if err != nil {
		return models.Organisation{}, err
	}

	if r.cache != nil {
		if err := r.cache.SetJSON(key, org, r.ttl); err != nil {
			log.Printf("organisation cache write failed: %v", err)
		}
	}
	return org, nil
}

package repo

import "errors"

var (
	// ErrDatasetNotFound is returned when no dataset exists for a lookup.
	ErrDatasetNotFound = errors.New("dataset not found")

	// ErrVersionConflict is returned when a replace loses the version check,
	// meaning the dataset changed since it was read.
	ErrVersionConflict = errors.New("dataset version conflict")

	// ErrUserNotFound is returned when a user is not found in the repository.
	ErrUserNotFound = errors.New("user not found")

	// ErrOrganisationNotFound is returned when an organisation is not found.
	ErrOrganisationNotFound = errors.New("organisation not found")
)

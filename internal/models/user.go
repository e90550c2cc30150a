package models

import "time"

type User struct {
	ID             int       `json:"id"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"`
	OrganisationID int       `json:"organisation_id"`
	CreatedAt      time.Time `json:"created_at"`
}

package models

// Organisation owns one dataset per purpose (products, sales).
type Organisation struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

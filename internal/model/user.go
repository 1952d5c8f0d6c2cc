package model

import "time"

// User records are provisioned outside this service; the API only ever
// reads them. Subject is the identity provider's stable subject claim.
type User struct {
	ID        int64     `json:"id"`
	Subject   string    `json:"-"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

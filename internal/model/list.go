package model

import "time"

// MaxListTitleLength bounds list titles; titles are also unique per owning
// user, enforced by the list service before creation.
const MaxListTitleLength = 20

type List struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package model

import "time"

// DefaultExperienceReward is applied when a task is created without an
// explicit reward value.
const DefaultExperienceReward = 10

type Task struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	ListID           *int64    `json:"list_id,omitempty"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	ExperienceReward int       `json:"experience_reward"`
	Completed        bool      `json:"completed"`
	DueDate          *string   `json:"due_date,omitempty"`
	DueTime          *string   `json:"due_time,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

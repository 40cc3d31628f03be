package domain

import "time"

// Professional represents a member of the salon roster
// Только активные профессионалы участвуют в подборе "any"
type Professional struct {
	ID        int64
	Name      string
	Email     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

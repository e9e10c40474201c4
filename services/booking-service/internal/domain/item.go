package domain

import "time"

// Item is the reserved thing. The booking engine only reads it: availability
// and ownership are resolved here, never duplicated onto bookings.
type Item struct {
	ID          string `gorm:"primaryKey"`
	Name        string
	Description string
	Available   bool   `gorm:"index"`
	OwnerID     string `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

package domain

import "time"

type User struct {
	ID    string `gorm:"primaryKey"`
	Name  string
	Email string `gorm:"uniqueIndex"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

package domain

import "time"

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// BlocksSlot reports whether a booking in this status holds its time window.
// Rejected bookings free the slot.
func (s Status) BlocksSlot() bool {
	return s == StatusWaiting || s == StatusApproved
}

type Booking struct {
	ID       string    `gorm:"primaryKey"`
	ItemID   string    `gorm:"index"`
	BookerID string    `gorm:"index"`
	Start    time.Time `gorm:"column:start_date;index"`
	End      time.Time `gorm:"column:end_date"`
	Status   Status    `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps is the half-open interval test: [s1,e1) and [s2,e2) conflict iff
// s1 < e2 && s2 < e1. Windows that merely touch at an endpoint do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// CanView reports whether callerID may read the booking: only the booker and
// the item owner have access.
func CanView(b *Booking, itemOwnerID, callerID string) bool {
	return b.BookerID == callerID || itemOwnerID == callerID
}

package events

import (
	"encoding/json"
	"fmt"
)

const (
	RKBookingCreated  = "booking.created"
	RKBookingApproved = "booking.approved"
	RKBookingRejected = "booking.rejected"
)

// BookingCreated carries enough to render a notice without calling back into
// the booking service.
type BookingCreated struct {
	BookingID string `json:"booking_id"`
	BookerID  string `json:"booker_id"`
	ItemID    string `json:"item_id"`
	Start     int64  `json:"start"` // unix seconds
	End       int64  `json:"end"`
}

type BookingDecided struct {
	BookingID string `json:"booking_id"`
	ItemID    string `json:"item_id"`
}

func Unmarshal[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}

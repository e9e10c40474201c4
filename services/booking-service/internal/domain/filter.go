package domain

import (
	"strings"
	"time"
)

// StateFilter selects a slice of a user's bookings when listing: either by
// position relative to now (CURRENT/PAST/FUTURE) or by status.
type StateFilter string

const (
	FilterAll      StateFilter = "ALL"
	FilterCurrent  StateFilter = "CURRENT"
	FilterPast     StateFilter = "PAST"
	FilterFuture   StateFilter = "FUTURE"
	FilterWaiting  StateFilter = "WAITING"
	FilterRejected StateFilter = "REJECTED"
)

// ParseStateFilter accepts the filter case-insensitively; empty means ALL.
func ParseStateFilter(s string) (StateFilter, error) {
	if s == "" {
		return FilterAll, nil
	}
	f := StateFilter(strings.ToUpper(s))
	switch f {
	case FilterAll, FilterCurrent, FilterPast, FilterFuture, FilterWaiting, FilterRejected:
		return f, nil
	}
	return "", Validationf("unknown state: %s", s)
}

// Matches is the classification rule in one place. CURRENT uses the booking's
// own boundary semantics: start inclusive, end exclusive.
func (f StateFilter) Matches(b *Booking, now time.Time) bool {
	switch f {
	case FilterCurrent:
		return !b.Start.After(now) && now.Before(b.End)
	case FilterPast:
		return !b.End.After(now)
	case FilterFuture:
		return b.Start.After(now)
	case FilterWaiting:
		return b.Status == StatusWaiting
	case FilterRejected:
		return b.Status == StatusRejected
	default:
		return true
	}
}

// Perspective scopes a listing to the user acting as booker or as item owner.
type Perspective string

const (
	AsBooker Perspective = "booker"
	AsOwner  Perspective = "owner"
)

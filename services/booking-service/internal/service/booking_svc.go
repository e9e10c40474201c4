package service

import (
	"context"
	"errors"
	"time"

	"github.com/zvv24/shareit/pkg/clock"
	"github.com/zvv24/shareit/services/booking-service/internal/domain"
)

// Routing keys for booking lifecycle events.
const (
	RKBookingCreated  = "booking.created"
	RKBookingApproved = "booking.approved"
	RKBookingRejected = "booking.rejected"
)

// createAttempts bounds retries on transient storage conflicts.
const createAttempts = 3

// UserStore and ItemStore resolve the external entities a booking references.
// Absent entities come back as domain.ErrNotFound.
type UserStore interface {
	ByID(ctx context.Context, id string) (*domain.User, error)
}

type ItemStore interface {
	ByID(ctx context.Context, id string) (*domain.Item, error)
}

// BookingStore persists bookings. Create must be atomic with respect to the
// overlap invariant; SetStatus must be a compare-and-set from WAITING.
type BookingStore interface {
	Create(ctx context.Context, b *domain.Booking) error
	ByID(ctx context.Context, id string) (*domain.Booking, error)
	SetStatus(ctx context.Context, id string, to domain.Status) (*domain.Booking, error)
	ExistsOverlapping(ctx context.Context, itemID string, start, end time.Time) (bool, error)
	ByBooker(ctx context.Context, bookerID string, f domain.StateFilter, now time.Time) ([]domain.Booking, error)
	ByOwner(ctx context.Context, ownerID string, f domain.StateFilter, now time.Time) ([]domain.Booking, error)
	LastForItem(ctx context.Context, itemID string, t time.Time) (*domain.Booking, error)
	NextForItem(ctx context.Context, itemID string, t time.Time) (*domain.Booking, error)
	HasCompletedBooking(ctx context.Context, itemID, bookerID string, t time.Time) (bool, error)
}

type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type BookingSvc struct {
	users    UserStore
	items    ItemStore
	bookings BookingStore
	clk      clock.Clock
	pub      EventPublisher
}

func NewBookingSvc(users UserStore, items ItemStore, bookings BookingStore, clk clock.Clock, pub EventPublisher) *BookingSvc {
	return &BookingSvc{users: users, items: items, bookings: bookings, clk: clk, pub: pub}
}

// Create admits a new reservation request. Checks run in a fixed order and
// short-circuit; on success the booking is persisted as WAITING.
func (s *BookingSvc) Create(ctx context.Context, itemID, bookerID string, start, end time.Time) (*domain.Booking, error) {
	if _, err := s.users.ByID(ctx, bookerID); err != nil {
		return nil, err
	}
	item, err := s.items.ByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, domain.Validationf("item %s is unavailable", itemID)
	}
	if item.OwnerID == bookerID {
		return nil, domain.Validationf("owner cannot book own item")
	}
	if !end.After(start) {
		return nil, domain.Validationf("invalid date range")
	}
	if start.Before(s.clk.Now()) {
		return nil, domain.Validationf("start date is in the past")
	}

	taken, err := s.bookings.ExistsOverlapping(ctx, itemID, start, end)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.Validationf("item already booked for that period")
	}

	b := &domain.Booking{ItemID: itemID, BookerID: bookerID, Start: start, End: end, Status: domain.StatusWaiting}
	for attempt := 0; ; attempt++ {
		err = s.bookings.Create(ctx, b)
		if err == nil || attempt == createAttempts-1 || !errors.Is(err, domain.ErrUnavailable) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	_ = s.pub.PublishJSON(ctx, RKBookingCreated, map[string]any{
		"booking_id": b.ID, "booker_id": b.BookerID, "item_id": b.ItemID,
		"start": b.Start.Unix(), "end": b.End.Unix(),
	})
	return b, nil
}

// SetStatus decides a waiting booking. Only the item owner may call it, and
// only once: APPROVED and REJECTED are terminal.
func (s *BookingSvc) SetStatus(ctx context.Context, bookingID, callerID string, approve bool) (*domain.Booking, error) {
	b, err := s.bookings.ByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	item, err := s.items.ByID(ctx, b.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != callerID {
		return nil, domain.Forbiddenf("only the item owner may decide a booking")
	}
	if b.Status != domain.StatusWaiting {
		return nil, domain.Forbiddenf("booking %s already decided (%s)", bookingID, b.Status)
	}

	to := domain.StatusRejected
	key := RKBookingRejected
	if approve {
		to = domain.StatusApproved
		key = RKBookingApproved
	}
	updated, err := s.bookings.SetStatus(ctx, bookingID, to)
	if err != nil {
		return nil, err
	}

	_ = s.pub.PublishJSON(ctx, key, map[string]any{"booking_id": updated.ID, "item_id": updated.ItemID})
	return updated, nil
}

// Get returns a booking to its booker or the item owner; anyone else is
// denied.
func (s *BookingSvc) Get(ctx context.Context, bookingID, callerID string) (*domain.Booking, error) {
	b, err := s.bookings.ByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	item, err := s.items.ByID(ctx, b.ItemID)
	if err != nil {
		return nil, err
	}
	if !domain.CanView(b, item.OwnerID, callerID) {
		return nil, domain.Forbiddenf("no access to booking %s", bookingID)
	}
	return b, nil
}

// List returns the subject's bookings for the given perspective and state
// filter, ordered by start descending. No matches is an empty slice.
func (s *BookingSvc) List(ctx context.Context, subjectID string, p domain.Perspective, f domain.StateFilter) ([]domain.Booking, error) {
	if _, err := s.users.ByID(ctx, subjectID); err != nil {
		return nil, err
	}
	now := s.clk.Now()
	if p == domain.AsOwner {
		return s.bookings.ByOwner(ctx, subjectID, f, now)
	}
	return s.bookings.ByBooker(ctx, subjectID, f, now)
}

// ItemSchedule holds the neighbouring bookings around now for an item, the
// owner-facing view of an item's calendar.
type ItemSchedule struct {
	Last *domain.Booking
	Next *domain.Booking
}

// Schedule returns the item's last finished and next upcoming blocking
// booking. Owner only.
func (s *BookingSvc) Schedule(ctx context.Context, itemID, callerID string) (*ItemSchedule, error) {
	item, err := s.items.ByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != callerID {
		return nil, domain.Forbiddenf("only the item owner may view the schedule")
	}
	now := s.clk.Now()
	last, err := s.bookings.LastForItem(ctx, itemID, now)
	if err != nil {
		return nil, err
	}
	next, err := s.bookings.NextForItem(ctx, itemID, now)
	if err != nil {
		return nil, err
	}
	return &ItemSchedule{Last: last, Next: next}, nil
}

// HasFinishedBooking reports whether the user completed a rental of the item,
// the precondition review flows check before accepting a review.
func (s *BookingSvc) HasFinishedBooking(ctx context.Context, itemID, userID string) (bool, error) {
	if _, err := s.users.ByID(ctx, userID); err != nil {
		return false, err
	}
	if _, err := s.items.ByID(ctx, itemID); err != nil {
		return false, err
	}
	return s.bookings.HasCompletedBooking(ctx, itemID, userID, s.clk.Now())
}

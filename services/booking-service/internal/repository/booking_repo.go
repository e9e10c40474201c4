package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/zvv24/shareit/services/booking-service/internal/domain"
)

type BookingRepo struct{ db *gorm.DB }

func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Booking{})
}

// Create persists a new booking and enforces the per-item non-overlap
// invariant. A transaction-scoped advisory lock on the item serializes
// check+insert: row locks alone cannot do it, since an empty schedule has no
// rows to lock and two concurrent creates would both pass the check.
func (r *BookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// held until commit/rollback
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", b.ItemID).Error; err != nil {
			return err
		}

		var existing domain.Booking
		err := tx.Model(&domain.Booking{}).
			Where("item_id = ? AND status IN ?", b.ItemID,
				[]domain.Status{domain.StatusWaiting, domain.StatusApproved}).
			Where("start_date < ? AND end_date > ?", b.End, b.Start).
			Take(&existing).Error

		if err == nil {
			return domain.Validationf("item already booked for that period")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if b.ID == "" {
			b.ID = uuid.NewString()
		}
		return tx.Create(b).Error
	})
	return classify(err)
}

func (r *BookingRepo) ByID(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundf("booking %s not found", id)
		}
		return nil, err
	}
	return &b, nil
}

// SetStatus flips WAITING to the given terminal status as a compare-and-set.
// A booking that is missing or already decided never changes.
func (r *BookingRepo) SetStatus(ctx context.Context, id string, to domain.Status) (*domain.Booking, error) {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND status = ?", id, domain.StatusWaiting).
		Update("status", to)
	if res.Error != nil {
		return nil, classify(res.Error)
	}
	if res.RowsAffected == 0 {
		// Either gone or a concurrent decision won; look to tell which.
		b, err := r.ByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, domain.Forbiddenf("booking %s already decided (%s)", id, b.Status)
	}
	return r.ByID(ctx, id)
}

func (r *BookingRepo) ExistsOverlapping(ctx context.Context, itemID string, start, end time.Time) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("item_id = ? AND status IN ?", itemID,
			[]domain.Status{domain.StatusWaiting, domain.StatusApproved}).
		Where("start_date < ? AND end_date > ?", end, start).
		Count(&n).Error
	if err != nil {
		return false, classify(err)
	}
	return n > 0, nil
}

func (r *BookingRepo) ByBooker(ctx context.Context, bookerID string, f domain.StateFilter, now time.Time) ([]domain.Booking, error) {
	qb := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("booker_id = ?", bookerID)
	return listFiltered(qb, f, now)
}

func (r *BookingRepo) ByOwner(ctx context.Context, ownerID string, f domain.StateFilter, now time.Time) ([]domain.Booking, error) {
	qb := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID)
	return listFiltered(qb, f, now)
}

// listFiltered applies the state filter and the listing order. The filter
// switch mirrors domain.StateFilter.Matches; keep the two in sync.
func listFiltered(qb *gorm.DB, f domain.StateFilter, now time.Time) ([]domain.Booking, error) {
	switch f {
	case domain.FilterCurrent:
		qb = qb.Where("start_date <= ? AND end_date > ?", now, now)
	case domain.FilterPast:
		qb = qb.Where("end_date <= ?", now)
	case domain.FilterFuture:
		qb = qb.Where("start_date > ?", now)
	case domain.FilterWaiting:
		qb = qb.Where("bookings.status = ?", domain.StatusWaiting)
	case domain.FilterRejected:
		qb = qb.Where("bookings.status = ?", domain.StatusRejected)
	}
	var out []domain.Booking
	if err := qb.Order("start_date DESC").Find(&out).Error; err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// LastForItem returns the most recently finished blocking booking before t,
// or nil when the item has none.
func (r *BookingRepo) LastForItem(ctx context.Context, itemID string, t time.Time) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND end_date < ? AND status IN ?", itemID, t,
			[]domain.Status{domain.StatusWaiting, domain.StatusApproved}).
		Order("end_date DESC").
		Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return &b, nil
}

// NextForItem returns the soonest blocking booking starting after t, or nil.
func (r *BookingRepo) NextForItem(ctx context.Context, itemID string, t time.Time) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND start_date > ? AND status IN ?", itemID, t,
			[]domain.Status{domain.StatusWaiting, domain.StatusApproved}).
		Order("start_date ASC").
		Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return &b, nil
}

func (r *BookingRepo) HasCompletedBooking(ctx context.Context, itemID, bookerID string, t time.Time) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("item_id = ? AND booker_id = ? AND end_date < ?", itemID, bookerID, t).
		Count(&n).Error
	if err != nil {
		return false, classify(err)
	}
	return n > 0, nil
}

// classify maps Postgres failure codes onto the engine's error kinds:
// serialization/deadlock/lock-timeout are retryable, an exclusion-constraint
// race is the same overlap rejection the locked check produces.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03":
			return fmt.Errorf("storage conflict (%s): %w", pgErr.Code, domain.ErrUnavailable)
		case "23P01":
			return domain.Validationf("item already booked for that period")
		}
	}
	return err
}

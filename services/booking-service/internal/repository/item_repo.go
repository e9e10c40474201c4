package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zvv24/shareit/services/booking-service/internal/domain"
)

// ItemRepo is the engine's read-side view of items. Listing management lives
// elsewhere; Create exists for seeding and tests.
type ItemRepo struct{ db *gorm.DB }

func NewItemRepo(db *gorm.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

func (r *ItemRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Item{})
}

func (r *ItemRepo) Create(ctx context.Context, it *domain.Item) error {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *ItemRepo) ByID(ctx context.Context, id string) (*domain.Item, error) {
	var it domain.Item
	if err := r.db.WithContext(ctx).First(&it, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundf("item %s not found", id)
		}
		return nil, err
	}
	return &it, nil
}

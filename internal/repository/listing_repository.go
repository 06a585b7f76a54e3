package repository

import (
	"context"

	"github.com/agrolink/agrolink-backend/internal/model"
	"gorm.io/gorm"
)

type ListingRepository interface {
	Create(ctx context.Context, l *model.SaleListing) error
	ListByFarmerProfile(ctx context.Context, profileID uint64, status model.ListingStatus) ([]model.SaleListing, error)
	SetDB(db *gorm.DB)
}

type listingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, l *model.SaleListing) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *listingRepository) ListByFarmerProfile(ctx context.Context, profileID uint64, status model.ListingStatus) ([]model.SaleListing, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	q := r.db.WithContext(ctx).Where("farmer_profile_id = ?", profileID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []model.SaleListing
	if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *listingRepository) SetDB(db *gorm.DB) {
	r.db = db
}

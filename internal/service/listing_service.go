package service

import (
	"context"
	"errors"
	"strings"

	"github.com/agrolink/agrolink-backend/internal/model"
	"github.com/agrolink/agrolink-backend/internal/repository"
	"gorm.io/gorm"
)

type ListingService interface {
	Create(ctx context.Context, uid, cropType string, quantity float64) (*model.SaleListing, error)
	ListMine(ctx context.Context, uid string) ([]model.SaleListing, error)
}

type listingService struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
}

func NewListingService(listingRepo repository.ListingRepository, userRepo repository.UserRepository) ListingService {
	return &listingService{listingRepo: listingRepo, userRepo: userRepo}
}

func (s *listingService) Create(ctx context.Context, uid, cropType string, quantity float64) (*model.SaleListing, error) {
	cropType = strings.TrimSpace(cropType)
	if cropType == "" || quantity <= 0 {
		return nil, ErrInvalid
	}
	profile, err := s.farmerProfile(ctx, uid)
	if err != nil {
		return nil, err
	}
	l := &model.SaleListing{
		FarmerProfileID: profile.ID,
		CropType:        cropType,
		Quantity:        quantity,
		Status:          model.StatusActive,
	}
	if err := s.listingRepo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *listingService) ListMine(ctx context.Context, uid string) ([]model.SaleListing, error) {
	profile, err := s.farmerProfile(ctx, uid)
	if err != nil {
		return nil, err
	}
	return s.listingRepo.ListByFarmerProfile(ctx, profile.ID, "")
}

func (s *listingService) farmerProfile(ctx context.Context, uid string) (*model.FarmerProfile, error) {
	u, err := s.userRepo.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	profile, err := s.userRepo.FindFarmerProfileByUserID(ctx, u.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

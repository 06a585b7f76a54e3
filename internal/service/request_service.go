package service

import (
	"context"
	"errors"
	"strings"

	"github.com/agrolink/agrolink-backend/internal/model"
	"github.com/agrolink/agrolink-backend/internal/repository"
	"gorm.io/gorm"
)

type RequestService interface {
	Create(ctx context.Context, uid, cropType string, quantity, pricePerUnit float64) (*model.PurchaseRequest, error)
	ListForContractor(ctx context.Context, uid string) ([]model.PurchaseRequest, error)
	ExpressInterest(ctx context.Context, uid string, requestID uint64) error
	ListInterestedFarmers(ctx context.Context, uid string, contractorProfileID uint64) ([]FarmerDetail, error)
}

type requestService struct {
	requestRepo repository.RequestRepository
	userRepo    repository.UserRepository
	listingRepo repository.ListingRepository
	notify      NotificationService
}

func NewRequestService(requestRepo repository.RequestRepository, userRepo repository.UserRepository, listingRepo repository.ListingRepository, notify NotificationService) RequestService {
	return &requestService{requestRepo: requestRepo, userRepo: userRepo, listingRepo: listingRepo, notify: notify}
}

func (s *requestService) Create(ctx context.Context, uid, cropType string, quantity, pricePerUnit float64) (*model.PurchaseRequest, error) {
	cropType = strings.TrimSpace(cropType)
	if cropType == "" || quantity <= 0 || pricePerUnit <= 0 {
		return nil, ErrInvalid
	}
	profile, err := s.contractorProfile(ctx, uid)
	if err != nil {
		return nil, err
	}
	pr := &model.PurchaseRequest{
		ContractorProfileID: profile.ID,
		CropType:            cropType,
		Quantity:            quantity,
		PricePerUnit:        pricePerUnit,
		Status:              model.StatusPending,
	}
	if err := s.requestRepo.Create(ctx, pr); err != nil {
		return nil, err
	}
	return pr, nil
}

func (s *requestService) ListForContractor(ctx context.Context, uid string) ([]model.PurchaseRequest, error) {
	profile, err := s.contractorProfile(ctx, uid)
	if err != nil {
		return nil, err
	}
	return s.requestRepo.ListByContractorProfile(ctx, profile.ID)
}

func (s *requestService) ExpressInterest(ctx context.Context, uid string, requestID uint64) error {
	farmer, err := s.userRepo.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	pr, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.requestRepo.AddInterest(ctx, pr.ID, farmer.ID); err != nil {
		return err
	}
	if s.notify != nil {
		if profile, perr := s.userRepo.FindContractorProfileByID(ctx, pr.ContractorProfileID); perr == nil {
			s.notify.Notify(ctx, profile.UserID, "interest_expressed",
				"New farmer interest",
				farmer.Name+" is interested in your "+pr.CropType+" request",
				&pr.ID, nil)
		}
	}
	return nil
}

// ListInterestedFarmers resolves the distinct farmers interested in the
// contractor's ACTIVE requests. The profile must belong to the caller.
func (s *requestService) ListInterestedFarmers(ctx context.Context, uid string, contractorProfileID uint64) ([]FarmerDetail, error) {
	caller, err := s.userRepo.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	profile, err := s.userRepo.FindContractorProfileByID(ctx, contractorProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if profile.UserID != caller.ID {
		return nil, ErrForbidden
	}

	ids, err := s.requestRepo.ListInterestedFarmerIDs(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []FarmerDetail{}, nil
	}
	farmers, err := s.userRepo.ListByIDs(ctx, ids, model.RoleFarmer)
	if err != nil {
		return nil, err
	}
	details := make([]FarmerDetail, 0, len(farmers))
	for _, f := range farmers {
		d := FarmerDetail{User: f, Listings: []model.SaleListing{}}
		fp, err := s.userRepo.FindFarmerProfileByUserID(ctx, f.ID)
		if err == nil {
			d.FarmerProfile = fp
			if listings, lerr := s.listingRepo.ListByFarmerProfile(ctx, fp.ID, model.StatusActive); lerr == nil {
				d.Listings = listings
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

func (s *requestService) contractorProfile(ctx context.Context, uid string) (*model.ContractorProfile, error) {
	u, err := s.userRepo.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	profile, err := s.userRepo.FindContractorProfileByUserID(ctx, u.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

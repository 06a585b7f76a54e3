package service

import (
	"context"
	"errors"
	"strings"

	"github.com/agrolink/agrolink-backend/internal/model"
	"github.com/agrolink/agrolink-backend/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrInvalid   = errors.New("invalid input")
	ErrDuplicate = errors.New("duplicate")
)

type CompleteProfileInput struct {
	UID         string
	Name        string
	Phone       string
	Email       string
	Role        string
	State       string
	City        string
	CompanyName string
}

// FarmerDetail is a farmer user with their profile and sale listings.
type FarmerDetail struct {
	User          model.User           `json:"user"`
	FarmerProfile *model.FarmerProfile `json:"farmerProfile,omitempty"`
	Listings      []model.SaleListing  `json:"listings"`
}

type UserService interface {
	CompleteProfile(ctx context.Context, in CompleteProfileInput) (*model.User, error)
	GetByUID(ctx context.Context, uid string) (*model.User, error)
	FilterUsers(ctx context.Context, ids []uint64, role model.Role) ([]model.User, error)
	UpdateContact(ctx context.Context, uid, name string, email *string) (*model.User, error)
	GetFarmerDetail(ctx context.Context, uid string) (*FarmerDetail, error)
	GetContractorProfile(ctx context.Context, uid string) (*model.ContractorProfile, error)
}

type userService struct {
	userRepo    repository.UserRepository
	listingRepo repository.ListingRepository
}

func NewUserService(userRepo repository.UserRepository, listingRepo repository.ListingRepository) UserService {
	return &userService{userRepo: userRepo, listingRepo: listingRepo}
}

// CompleteProfile creates the user plus its role profile. Profile
// completion is one-shot: a phone or email already in use means the caller
// has a profile (or stole someone's number) and gets ErrDuplicate.
func (s *userService) CompleteProfile(ctx context.Context, in CompleteProfileInput) (*model.User, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	state := strings.TrimSpace(in.State)
	city := strings.TrimSpace(in.City)
	uid := strings.TrimSpace(in.UID)
	role := model.Role(strings.ToUpper(strings.TrimSpace(in.Role)))
	if name == "" || phone == "" || state == "" || city == "" || uid == "" {
		return nil, ErrInvalid
	}
	if role != model.RoleFarmer && role != model.RoleContractor {
		return nil, ErrInvalid
	}

	var email *string
	if trimmed := strings.TrimSpace(in.Email); trimmed != "" {
		email = &trimmed
	}

	exists, err := s.userRepo.ExistsByPhoneOrEmail(ctx, phone, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicate
	}

	u := &model.User{
		UID:   uid,
		Name:  name,
		Phone: phone,
		Email: email,
		Role:  role,
		State: state,
		City:  city,
	}
	if err := s.userRepo.CreateWithProfile(ctx, u, strings.TrimSpace(in.CompanyName)); err != nil {
		// The uniqueness check above races with concurrent completions;
		// the unique indexes are the source of truth.
		if isDuplicateKeyErr(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return u, nil
}

func (s *userService) GetByUID(ctx context.Context, uid string) (*model.User, error) {
	if uid == "" {
		return nil, ErrInvalid
	}
	u, err := s.userRepo.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *userService) FilterUsers(ctx context.Context, ids []uint64, role model.Role) ([]model.User, error) {
	if role != "" && role != model.RoleFarmer && role != model.RoleContractor {
		return nil, ErrInvalid
	}
	return s.userRepo.ListByIDs(ctx, ids, role)
}

func (s *userService) UpdateContact(ctx context.Context, uid, name string, email *string) (*model.User, error) {
	if uid == "" {
		return nil, ErrInvalid
	}
	u, err := s.userRepo.UpdateContact(ctx, uid, strings.TrimSpace(name), email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *userService) GetFarmerDetail(ctx context.Context, uid string) (*FarmerDetail, error) {
	u, err := s.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	detail := &FarmerDetail{User: *u, Listings: []model.SaleListing{}}
	profile, err := s.userRepo.FindFarmerProfileByUserID(ctx, u.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return detail, nil
		}
		return nil, err
	}
	detail.FarmerProfile = profile
	listings, err := s.listingRepo.ListByFarmerProfile(ctx, profile.ID, "")
	if err != nil {
		return nil, err
	}
	detail.Listings = listings
	return detail, nil
}

func (s *userService) GetContractorProfile(ctx context.Context, uid string) (*model.ContractorProfile, error) {
	u, err := s.GetByUID(ctx, uid)
	if err != nil {
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

func isDuplicateKeyErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}

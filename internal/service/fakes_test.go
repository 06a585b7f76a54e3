package service

import (
	"context"

	"github.com/agrolink/agrolink-backend/internal/model"
	"github.com/agrolink/agrolink-backend/internal/repository"
	"gorm.io/gorm"
)

// In-memory repository fakes mirroring the gorm-backed behavior the
// services depend on, including gorm.ErrRecordNotFound on misses.

type fakeUserRepo struct {
	users              []model.User
	farmerProfiles     []model.FarmerProfile
	contractorProfiles []model.ContractorProfile
	nextID             uint64
	findByIDErr        error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1}
}

func (f *fakeUserRepo) addFarmer(uid, name, phone, state, city string) (model.User, model.FarmerProfile) {
	u := model.User{ID: f.nextID, UID: uid, Name: name, Phone: phone, Role: model.RoleFarmer, State: state, City: city}
	f.nextID++
	p := model.FarmerProfile{ID: f.nextID, UserID: u.ID}
	f.nextID++
	f.users = append(f.users, u)
	f.farmerProfiles = append(f.farmerProfiles, p)
	return u, p
}

func (f *fakeUserRepo) addContractor(uid, name, phone, state, city, company string) (model.User, model.ContractorProfile) {
	u := model.User{ID: f.nextID, UID: uid, Name: name, Phone: phone, Role: model.RoleContractor, State: state, City: city}
	f.nextID++
	p := model.ContractorProfile{ID: f.nextID, UserID: u.ID, CompanyName: company}
	f.nextID++
	f.users = append(f.users, u)
	f.contractorProfiles = append(f.contractorProfiles, p)
	return u, p
}

func (f *fakeUserRepo) CreateWithProfile(_ context.Context, u *model.User, companyName string) error {
	u.ID = f.nextID
	f.nextID++
	f.users = append(f.users, *u)
	switch u.Role {
	case model.RoleFarmer:
		f.farmerProfiles = append(f.farmerProfiles, model.FarmerProfile{ID: f.nextID, UserID: u.ID})
	case model.RoleContractor:
		f.contractorProfiles = append(f.contractorProfiles, model.ContractorProfile{ID: f.nextID, UserID: u.ID, CompanyName: companyName})
	}
	f.nextID++
	return nil
}

func (f *fakeUserRepo) FindByUID(_ context.Context, uid string) (*model.User, error) {
	for i := range f.users {
		if f.users[i].UID == uid {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint64) (*model.User, error) {
	if f.findByIDErr != nil {
		return nil, f.findByIDErr
	}
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) ExistsByPhoneOrEmail(_ context.Context, phone string, email *string) (bool, error) {
	for i := range f.users {
		if f.users[i].Phone == phone {
			return true, nil
		}
		if email != nil && f.users[i].Email != nil && *f.users[i].Email == *email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) ListByIDs(_ context.Context, ids []uint64, role model.Role) ([]model.User, error) {
	idSet := map[uint64]bool{}
	for _, id := range ids {
		idSet[id] = true
	}
	var out []model.User
	for i := range f.users {
		if len(ids) > 0 && !idSet[f.users[i].ID] {
			continue
		}
		if role != "" && f.users[i].Role != role {
			continue
		}
		out = append(out, f.users[i])
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateContact(_ context.Context, uid, name string, email *string) (*model.User, error) {
	for i := range f.users {
		if f.users[i].UID == uid {
			if name != "" {
				f.users[i].Name = name
			}
			if email != nil {
				f.users[i].Email = email
			}
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindFarmerProfileByUserID(_ context.Context, userID uint64) (*model.FarmerProfile, error) {
	for i := range f.farmerProfiles {
		if f.farmerProfiles[i].UserID == userID {
			p := f.farmerProfiles[i]
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindContractorProfileByUserID(_ context.Context, userID uint64) (*model.ContractorProfile, error) {
	for i := range f.contractorProfiles {
		if f.contractorProfiles[i].UserID == userID {
			p := f.contractorProfiles[i]
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindContractorProfileByID(_ context.Context, id uint64) (*model.ContractorProfile, error) {
	for i := range f.contractorProfiles {
		if f.contractorProfiles[i].ID == id {
			p := f.contractorProfiles[i]
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) SetDB(*gorm.DB) {}

type searchCall struct {
	state, city, cropType string
	maxQuantity           *float64
}

type fakeRequestRepo struct {
	requests     []model.PurchaseRequest
	interests    []model.RequestInterest
	rooms        []model.ChatRoom
	userRepo     *fakeUserRepo
	searchCalls  []searchCall
	searchResult []repository.MatchedRequest
	nextID       uint64
}

func newFakeRequestRepo(userRepo *fakeUserRepo) *fakeRequestRepo {
	return &fakeRequestRepo{userRepo: userRepo, nextID: 100}
}

func (f *fakeRequestRepo) Create(_ context.Context, pr *model.PurchaseRequest) error {
	pr.ID = f.nextID
	f.nextID++
	f.requests = append(f.requests, *pr)
	return nil
}

func (f *fakeRequestRepo) FindByID(_ context.Context, id uint64) (*model.PurchaseRequest, error) {
	for i := range f.requests {
		if f.requests[i].ID == id {
			pr := f.requests[i]
			return &pr, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRequestRepo) ListByContractorProfile(_ context.Context, profileID uint64) ([]model.PurchaseRequest, error) {
	var out []model.PurchaseRequest
	for i := range f.requests {
		if f.requests[i].ContractorProfileID == profileID {
			out = append(out, f.requests[i])
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) SearchPending(_ context.Context, state, city, cropType string, maxQuantity *float64) ([]repository.MatchedRequest, error) {
	f.searchCalls = append(f.searchCalls, searchCall{state: state, city: city, cropType: cropType, maxQuantity: maxQuantity})
	return f.searchResult, nil
}

func (f *fakeRequestRepo) Confirm(ctx context.Context, requestID, farmerUserID uint64, roomKey string) (*model.PurchaseRequest, *model.ChatRoom, error) {
	for i := range f.requests {
		if f.requests[i].ID != requestID {
			continue
		}
		if f.requests[i].Status != model.StatusPending {
			return nil, nil, repository.ErrRequestNotPending
		}
		f.requests[i].Status = model.StatusActive
		profile, err := f.userRepo.FindContractorProfileByID(ctx, f.requests[i].ContractorProfileID)
		if err != nil {
			return nil, nil, err
		}
		room := model.ChatRoom{
			ID:                f.nextID,
			RoomKey:           roomKey,
			FarmerID:          farmerUserID,
			ContractorID:      profile.UserID,
			PurchaseRequestID: requestID,
		}
		f.nextID++
		f.rooms = append(f.rooms, room)
		pr := f.requests[i]
		return &pr, &room, nil
	}
	return nil, nil, gorm.ErrRecordNotFound
}

func (f *fakeRequestRepo) AddInterest(_ context.Context, requestID, farmerUserID uint64) error {
	for i := range f.interests {
		if f.interests[i].PurchaseRequestID == requestID && f.interests[i].FarmerUserID == farmerUserID {
			return nil
		}
	}
	f.interests = append(f.interests, model.RequestInterest{PurchaseRequestID: requestID, FarmerUserID: farmerUserID})
	return nil
}

func (f *fakeRequestRepo) ListInterestedFarmerIDs(_ context.Context, contractorProfileID uint64) ([]uint64, error) {
	active := map[uint64]bool{}
	for i := range f.requests {
		if f.requests[i].ContractorProfileID == contractorProfileID && f.requests[i].Status == model.StatusActive {
			active[f.requests[i].ID] = true
		}
	}
	seen := map[uint64]bool{}
	var ids []uint64
	for i := range f.interests {
		if active[f.interests[i].PurchaseRequestID] && !seen[f.interests[i].FarmerUserID] {
			seen[f.interests[i].FarmerUserID] = true
			ids = append(ids, f.interests[i].FarmerUserID)
		}
	}
	return ids, nil
}

func (f *fakeRequestRepo) SetDB(*gorm.DB) {}

type fakeListingRepo struct {
	listings []model.SaleListing
	nextID   uint64
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{nextID: 500}
}

func (f *fakeListingRepo) Create(_ context.Context, l *model.SaleListing) error {
	l.ID = f.nextID
	f.nextID++
	f.listings = append(f.listings, *l)
	return nil
}

func (f *fakeListingRepo) ListByFarmerProfile(_ context.Context, profileID uint64, status model.ListingStatus) ([]model.SaleListing, error) {
	var out []model.SaleListing
	for i := range f.listings {
		if f.listings[i].FarmerProfileID != profileID {
			continue
		}
		if status != "" && f.listings[i].Status != status {
			continue
		}
		out = append(out, f.listings[i])
	}
	return out, nil
}

func (f *fakeListingRepo) SetDB(*gorm.DB) {}

type fakeNotificationRepo struct {
	notifications []model.Notification
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	f.notifications = append(f.notifications, *n)
	return nil
}

func (f *fakeNotificationRepo) ListByUser(_ context.Context, userID uint64, unreadOnly bool, _ int) ([]model.Notification, error) {
	var out []model.Notification
	for i := range f.notifications {
		if f.notifications[i].UserID != userID {
			continue
		}
		if unreadOnly && f.notifications[i].ReadAt != nil {
			continue
		}
		out = append(out, f.notifications[i])
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, userID uint64) error {
	for i := range f.notifications {
		if f.notifications[i].UserID == userID && f.notifications[i].ReadAt == nil {
			now := f.notifications[i].CreatedAt
			f.notifications[i].ReadAt = &now
		}
	}
	return nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, userID uint64) (int64, error) {
	var cnt int64
	for i := range f.notifications {
		if f.notifications[i].UserID == userID && f.notifications[i].ReadAt == nil {
			cnt++
		}
	}
	return cnt, nil
}

func (f *fakeNotificationRepo) SetDB(*gorm.DB) {}

package service

import (
	"context"
	"testing"

	"github.com/agrolink/agrolink-backend/internal/model"
)

func newRequestFixture() (*fakeUserRepo, *fakeRequestRepo, *fakeListingRepo, RequestService) {
	userRepo := newFakeUserRepo()
	reqRepo := newFakeRequestRepo(userRepo)
	listRepo := newFakeListingRepo()
	notif := NewNotificationService(&fakeNotificationRepo{}, userRepo)
	return userRepo, reqRepo, listRepo, NewRequestService(reqRepo, userRepo, listRepo, notif)
}

func TestCreateRequestValidation(t *testing.T) {
	tests := []struct {
		name         string
		cropType     string
		quantity     float64
		pricePerUnit float64
	}{
		{"empty crop", "", 100, 2000},
		{"blank crop", "   ", 100, 2000},
		{"zero quantity", "Wheat", 0, 2000},
		{"negative quantity", "Wheat", -5, 2000},
		{"zero price", "Wheat", 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo, reqRepo, _, svc := newRequestFixture()
			userRepo.addContractor("contractor-1", "Rajesh", "+911", "Punjab", "Ludhiana", "")
			if _, err := svc.Create(context.Background(), "contractor-1", tt.cropType, tt.quantity, tt.pricePerUnit); err != ErrInvalid {
				t.Fatalf("err = %v, want ErrInvalid", err)
			}
			if len(reqRepo.requests) != 0 {
				t.Fatalf("invalid input must not persist a request")
			}
		})
	}
}

func TestCreateRequestRequiresContractorProfile(t *testing.T) {
	userRepo, _, _, svc := newRequestFixture()
	// A farmer has no contractor profile.
	userRepo.addFarmer("farmer-1", "Harpreet", "+911", "Punjab", "Ludhiana")

	if _, err := svc.Create(context.Background(), "farmer-1", "Wheat", 100, 2000); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if _, err := svc.Create(context.Background(), "nobody", "Wheat", 100, 2000); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateRequestStartsPending(t *testing.T) {
	userRepo, _, _, svc := newRequestFixture()
	_, profile := userRepo.addContractor("contractor-1", "Rajesh", "+911", "Punjab", "Ludhiana", "")

	pr, err := svc.Create(context.Background(), "contractor-1", "  Wheat ", 100, 2000)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if pr.Status != model.StatusPending {
		t.Fatalf("status = %s, want PENDING", pr.Status)
	}
	if pr.CropType != "Wheat" {
		t.Fatalf("cropType = %q, want trimmed", pr.CropType)
	}
	if pr.ContractorProfileID != profile.ID {
		t.Fatalf("owner = %d, want %d", pr.ContractorProfileID, profile.ID)
	}
}

func TestExpressInterestIsIdempotent(t *testing.T) {
	userRepo, reqRepo, _, svc := newRequestFixture()
	userRepo.addFarmer("farmer-1", "Harpreet", "+911", "Punjab", "Ludhiana")
	_, profile := userRepo.addContractor("contractor-1", "Rajesh", "+912", "Punjab", "Ludhiana", "")
	reqRepo.requests = append(reqRepo.requests, model.PurchaseRequest{
		ID: 1, ContractorProfileID: profile.ID, CropType: "Wheat", Quantity: 100, PricePerUnit: 2000, Status: model.StatusPending,
	})

	for i := 0; i < 3; i++ {
		if err := svc.ExpressInterest(context.Background(), "farmer-1", 1); err != nil {
			t.Fatalf("express interest: %v", err)
		}
	}
	if len(reqRepo.interests) != 1 {
		t.Fatalf("interests = %d, want set semantics (1)", len(reqRepo.interests))
	}
}

func TestExpressInterestMissingRequest(t *testing.T) {
	userRepo, _, _, svc := newRequestFixture()
	userRepo.addFarmer("farmer-1", "Harpreet", "+911", "Punjab", "Ludhiana")

	if err := svc.ExpressInterest(context.Background(), "farmer-1", 42); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListInterestedFarmersScopedToOwner(t *testing.T) {
	userRepo, reqRepo, listRepo, svc := newRequestFixture()
	farmer, farmerProfile := userRepo.addFarmer("farmer-1", "Harpreet", "+911", "Punjab", "Ludhiana")
	userRepo.addContractor("contractor-1", "Rajesh", "+912", "Punjab", "Ludhiana", "")
	_, otherProfile := userRepo.addContractor("contractor-2", "Sunita", "+913", "Haryana", "Karnal", "")

	reqRepo.requests = append(reqRepo.requests, model.PurchaseRequest{
		ID: 1, ContractorProfileID: otherProfile.ID, CropType: "Wheat", Quantity: 100, PricePerUnit: 2000, Status: model.StatusActive,
	})
	reqRepo.interests = append(reqRepo.interests, model.RequestInterest{PurchaseRequestID: 1, FarmerUserID: farmer.ID})
	listRepo.listings = append(listRepo.listings, model.SaleListing{
		ID: 1, FarmerProfileID: farmerProfile.ID, CropType: "Wheat", Quantity: 120, Status: model.StatusActive,
	})

	// Owner sees the interested farmer with ACTIVE listings attached.
	details, err := svc.ListInterestedFarmers(context.Background(), "contractor-2", otherProfile.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("details = %d, want 1", len(details))
	}
	if details[0].User.ID != farmer.ID {
		t.Fatalf("farmer = %d, want %d", details[0].User.ID, farmer.ID)
	}
	if len(details[0].Listings) != 1 {
		t.Fatalf("listings = %d, want 1", len(details[0].Listings))
	}

	// Another contractor may not read someone else's interests.
	if _, err := svc.ListInterestedFarmers(context.Background(), "contractor-1", otherProfile.ID); err != ErrForbidden {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestListInterestedFarmersIgnoresPendingRequests(t *testing.T) {
	userRepo, reqRepo, _, svc := newRequestFixture()
	farmer, _ := userRepo.addFarmer("farmer-1", "Harpreet", "+911", "Punjab", "Ludhiana")
	_, profile := userRepo.addContractor("contractor-1", "Rajesh", "+912", "Punjab", "Ludhiana", "")

	reqRepo.requests = append(reqRepo.requests, model.PurchaseRequest{
		ID: 1, ContractorProfileID: profile.ID, CropType: "Wheat", Quantity: 100, PricePerUnit: 2000, Status: model.StatusPending,
	})
	reqRepo.interests = append(reqRepo.interests, model.RequestInterest{PurchaseRequestID: 1, FarmerUserID: farmer.ID})

	details, err := svc.ListInterestedFarmers(context.Background(), "contractor-1", profile.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(details) != 0 {
		t.Fatalf("details = %d, want 0 for non-ACTIVE requests", len(details))
	}
}

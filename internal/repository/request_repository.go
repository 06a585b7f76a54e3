package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/agrolink/agrolink-backend/internal/model"
	"gorm.io/gorm"
)

// ErrRequestNotPending is returned by Confirm when the request exists but
// has already left the PENDING state.
var ErrRequestNotPending = errors.New("request not pending")

// MatchedRequest is a purchase request annotated with the owning
// contractor's display name and company for farmer-facing listings.
type MatchedRequest struct {
	ID                  uint64              `json:"id"`
	ContractorProfileID uint64              `json:"contractorProfileId"`
	CropType            string              `json:"cropType"`
	Quantity            float64             `json:"quantity"`
	PricePerUnit        float64             `json:"pricePerUnit"`
	Status              model.ListingStatus `json:"status"`
	ContractorName      string              `json:"contractorName"`
	CompanyName         string              `json:"companyName"`
	CreatedAt           time.Time           `json:"createdAt"`
}

type RequestRepository interface {
	Create(ctx context.Context, pr *model.PurchaseRequest) error
	FindByID(ctx context.Context, id uint64) (*model.PurchaseRequest, error)
	ListByContractorProfile(ctx context.Context, profileID uint64) ([]model.PurchaseRequest, error)
	SearchPending(ctx context.Context, state, city, cropType string, maxQuantity *float64) ([]MatchedRequest, error)
	Confirm(ctx context.Context, requestID, farmerUserID uint64, roomKey string) (*model.PurchaseRequest, *model.ChatRoom, error)
	AddInterest(ctx context.Context, requestID, farmerUserID uint64) error
	ListInterestedFarmerIDs(ctx context.Context, contractorProfileID uint64) ([]uint64, error)
	SetDB(db *gorm.DB)
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, pr *model.PurchaseRequest) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(pr).Error
}

func (r *requestRepository) FindByID(ctx context.Context, id uint64) (*model.PurchaseRequest, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var pr model.PurchaseRequest
	if err := r.db.WithContext(ctx).First(&pr, id).Error; err != nil {
		return nil, err
	}
	return &pr, nil
}

func (r *requestRepository) ListByContractorProfile(ctx context.Context, profileID uint64) ([]model.PurchaseRequest, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.PurchaseRequest
	if err := r.db.WithContext(ctx).
		Where("contractor_profile_id = ?", profileID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// SearchPending returns PENDING requests whose owning contractor is in the
// given state and city, newest first. cropType narrows by case-insensitive
// substring, maxQuantity by an inclusive ceiling.
func (r *requestRepository) SearchPending(ctx context.Context, state, city, cropType string, maxQuantity *float64) ([]MatchedRequest, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	q := r.db.WithContext(ctx).
		Table("purchase_requests").
		Select("purchase_requests.id, purchase_requests.contractor_profile_id, purchase_requests.crop_type, purchase_requests.quantity, purchase_requests.price_per_unit, purchase_requests.status, purchase_requests.created_at, users.name AS contractor_name, contractor_profiles.company_name AS company_name").
		Joins("JOIN contractor_profiles ON contractor_profiles.id = purchase_requests.contractor_profile_id").
		Joins("JOIN users ON users.id = contractor_profiles.user_id").
		Where("purchase_requests.status = ?", model.StatusPending).
		Where("users.state = ? AND users.city = ?", state, city)
	if cropType != "" {
		q = q.Where("LOWER(purchase_requests.crop_type) LIKE ?", "%"+strings.ToLower(cropType)+"%")
	}
	if maxQuantity != nil {
		q = q.Where("purchase_requests.quantity <= ?", *maxQuantity)
	}
	var rows []MatchedRequest
	if err := q.Order("purchase_requests.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Confirm moves a PENDING request to ACTIVE and opens the chat room in a
// single transaction. The conditional update plus the unique index on
// chat_rooms.purchase_request_id keep concurrent confirms from producing
// two rooms.
func (r *requestRepository) Confirm(ctx context.Context, requestID, farmerUserID uint64, roomKey string) (*model.PurchaseRequest, *model.ChatRoom, error) {
	if r.db == nil {
		return nil, nil, ErrDBNotReady
	}
	var (
		pr   model.PurchaseRequest
		room model.ChatRoom
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&pr, requestID).Error; err != nil {
			return err
		}
		res := tx.Model(&model.PurchaseRequest{}).
			Where("id = ? AND status = ?", requestID, model.StatusPending).
			Update("status", model.StatusActive)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRequestNotPending
		}
		pr.Status = model.StatusActive

		var profile model.ContractorProfile
		if err := tx.First(&profile, pr.ContractorProfileID).Error; err != nil {
			return err
		}
		room = model.ChatRoom{
			RoomKey:           roomKey,
			FarmerID:          farmerUserID,
			ContractorID:      profile.UserID,
			PurchaseRequestID: requestID,
		}
		return tx.Create(&room).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &pr, &room, nil
}

func (r *requestRepository) AddInterest(ctx context.Context, requestID, farmerUserID uint64) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	in := model.RequestInterest{PurchaseRequestID: requestID, FarmerUserID: farmerUserID}
	return r.db.WithContext(ctx).
		Where("purchase_request_id = ? AND farmer_user_id = ?", requestID, farmerUserID).
		FirstOrCreate(&in).Error
}

// ListInterestedFarmerIDs returns the distinct farmers interested in the
// contractor's ACTIVE requests.
func (r *requestRepository) ListInterestedFarmerIDs(ctx context.Context, contractorProfileID uint64) ([]uint64, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var ids []uint64
	if err := r.db.WithContext(ctx).
		Table("request_interests").
		Distinct("request_interests.farmer_user_id").
		Joins("JOIN purchase_requests ON purchase_requests.id = request_interests.purchase_request_id").
		Where("purchase_requests.contractor_profile_id = ? AND purchase_requests.status = ?", contractorProfileID, model.StatusActive).
		Pluck("request_interests.farmer_user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *requestRepository) SetDB(db *gorm.DB) {
	r.db = db
}

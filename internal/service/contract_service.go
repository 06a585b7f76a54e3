package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/agrolink/agrolink-backend/internal/model"
	"github.com/agrolink/agrolink-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrForbidden        = errors.New("forbidden")
	ErrAlreadyConfirmed = errors.New("already_confirmed")
)

// ConfirmedContract is the confirmation result: the activated request,
// the contractor annotation, and the freshly opened chat room.
type ConfirmedContract struct {
	Request        model.PurchaseRequest `json:"request"`
	ContractorName string                `json:"contractorName"`
	CompanyName    string                `json:"companyName"`
	Room           model.ChatRoom        `json:"room"`
}

type ContractService interface {
	Search(ctx context.Context, uid, cropType, maxQuantity string) ([]repository.MatchedRequest, error)
	Confirm(ctx context.Context, uid string, requestID uint64) (*ConfirmedContract, error)
}

type contractService struct {
	requestRepo repository.RequestRepository
	userRepo    repository.UserRepository
	notify      NotificationService
}

func NewContractService(requestRepo repository.RequestRepository, userRepo repository.UserRepository, notify NotificationService) ContractService {
	return &contractService{requestRepo: requestRepo, userRepo: userRepo, notify: notify}
}

// Search finds PENDING requests from contractors in the farmer's own state
// and city. cropType narrows by case-insensitive substring, maxQuantity by
// an inclusive ceiling; both are optional.
func (s *contractService) Search(ctx context.Context, uid, cropType, maxQuantity string) ([]repository.MatchedRequest, error) {
	farmer, err := s.userRepo.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var maxQ *float64
	if trimmed := strings.TrimSpace(maxQuantity); trimmed != "" {
		v, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || v < 0 {
			return nil, ErrInvalid
		}
		maxQ = &v
	}

	rows, err := s.requestRepo.SearchPending(ctx, farmer.State, farmer.City, strings.TrimSpace(cropType), maxQ)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []repository.MatchedRequest{}
	}
	return rows, nil
}

// Confirm transitions the request PENDING -> ACTIVE and opens the chat
// room atomically. A request that already left PENDING is rejected with
// ErrAlreadyConfirmed rather than treated as an idempotent no-op.
func (s *contractService) Confirm(ctx context.Context, uid string, requestID uint64) (*ConfirmedContract, error) {
	farmer, err := s.userRepo.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	pr, room, err := s.requestRepo.Confirm(ctx, requestID, farmer.ID, uuid.NewString())
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrRequestNotPending):
			return nil, ErrAlreadyConfirmed
		}
		return nil, err
	}

	profile, err := s.userRepo.FindContractorProfileByID(ctx, pr.ContractorProfileID)
	if err != nil {
		return nil, err
	}
	contractor, err := s.userRepo.FindByID(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}
	out := &ConfirmedContract{
		Request:        *pr,
		ContractorName: contractor.Name,
		CompanyName:    profile.CompanyName,
		Room:           *room,
	}
	if s.notify != nil {
		s.notify.Notify(ctx, room.ContractorID, "contract_confirmed",
			"Contract confirmed",
			farmer.Name+" confirmed your "+pr.CropType+" request",
			&pr.ID, &room.ID)
	}
	return out, nil
}

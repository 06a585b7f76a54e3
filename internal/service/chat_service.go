package service

import (
	"context"
	"errors"
	"strings"

	"github.com/agrolink/agrolink-backend/internal/model"
	"github.com/agrolink/agrolink-backend/internal/repository"
	"gorm.io/gorm"
)

type ChatService interface {
	ListRooms(ctx context.Context, uid string) ([]model.ChatRoom, error)
	ListMessages(ctx context.Context, uid, roomKey string) ([]model.ChatMessage, error)
	PostMessage(ctx context.Context, uid, roomKey, body string) (*model.ChatMessage, error)
}

type chatService struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
}

func NewChatService(chatRepo repository.ChatRepository, userRepo repository.UserRepository) ChatService {
	return &chatService{chatRepo: chatRepo, userRepo: userRepo}
}

func (s *chatService) ListRooms(ctx context.Context, uid string) ([]model.ChatRoom, error) {
	u, err := s.user(ctx, uid)
	if err != nil {
		return nil, err
	}
	return s.chatRepo.ListByUser(ctx, u.ID)
}

func (s *chatService) ListMessages(ctx context.Context, uid, roomKey string) ([]model.ChatMessage, error) {
	_, room, err := s.memberRoom(ctx, uid, roomKey)
	if err != nil {
		return nil, err
	}
	return s.chatRepo.ListMessages(ctx, room.ID)
}

func (s *chatService) PostMessage(ctx context.Context, uid, roomKey, body string) (*model.ChatMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrInvalid
	}
	u, room, err := s.memberRoom(ctx, uid, roomKey)
	if err != nil {
		return nil, err
	}
	msg := &model.ChatMessage{ChatRoomID: room.ID, SenderID: u.ID, Body: body}
	if err := s.chatRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// memberRoom resolves the room and checks the caller is one of its two
// parties.
func (s *chatService) memberRoom(ctx context.Context, uid, roomKey string) (*model.User, *model.ChatRoom, error) {
	u, err := s.user(ctx, uid)
	if err != nil {
		return nil, nil, err
	}
	room, err := s.chatRepo.FindByKey(ctx, roomKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if room.FarmerID != u.ID && room.ContractorID != u.ID {
		return nil, nil, ErrForbidden
	}
	return u, room, nil
}

func (s *chatService) user(ctx context.Context, uid string) (*model.User, error) {
	u, err := s.userRepo.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

package repository

import (
	"context"

	"github.com/agrolink/agrolink-backend/internal/model"
	"gorm.io/gorm"
)

type ChatRepository interface {
	FindByKey(ctx context.Context, roomKey string) (*model.ChatRoom, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.ChatRoom, error)
	CreateMessage(ctx context.Context, msg *model.ChatMessage) error
	ListMessages(ctx context.Context, roomID uint64) ([]model.ChatMessage, error)
	SetDB(db *gorm.DB)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) FindByKey(ctx context.Context, roomKey string) (*model.ChatRoom, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var room model.ChatRoom
	if err := r.db.WithContext(ctx).Where("room_key = ?", roomKey).First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *chatRepository) ListByUser(ctx context.Context, userID uint64) ([]model.ChatRoom, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.ChatRoom
	if err := r.db.WithContext(ctx).
		Where("farmer_id = ? OR contractor_id = ?", userID, userID).
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *chatRepository) CreateMessage(ctx context.Context, msg *model.ChatMessage) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *chatRepository) ListMessages(ctx context.Context, roomID uint64) ([]model.ChatMessage, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var msgs []model.ChatMessage
	if err := r.db.WithContext(ctx).
		Where("chat_room_id = ?", roomID).
		Order("id ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *chatRepository) SetDB(db *gorm.DB) {
	r.db = db
}

package repository

import (
	"context"
	"errors"

	"github.com/agrolink/agrolink-backend/internal/model"
	"gorm.io/gorm"
)

var ErrDBNotReady = errors.New("database not initialized")

type UserRepository interface {
	CreateWithProfile(ctx context.Context, u *model.User, companyName string) error
	FindByUID(ctx context.Context, uid string) (*model.User, error)
	FindByID(ctx context.Context, id uint64) (*model.User, error)
	ExistsByPhoneOrEmail(ctx context.Context, phone string, email *string) (bool, error)
	ListByIDs(ctx context.Context, ids []uint64, role model.Role) ([]model.User, error)
	UpdateContact(ctx context.Context, uid, name string, email *string) (*model.User, error)
	FindFarmerProfileByUserID(ctx context.Context, userID uint64) (*model.FarmerProfile, error)
	FindContractorProfileByUserID(ctx context.Context, userID uint64) (*model.ContractorProfile, error)
	FindContractorProfileByID(ctx context.Context, id uint64) (*model.ContractorProfile, error)
	SetDB(db *gorm.DB)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateWithProfile inserts the user and its role profile in one
// transaction so a half-completed profile is never visible.
func (r *userRepository) CreateWithProfile(ctx context.Context, u *model.User, companyName string) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		switch u.Role {
		case model.RoleFarmer:
			return tx.Create(&model.FarmerProfile{UserID: u.ID}).Error
		case model.RoleContractor:
			return tx.Create(&model.ContractorProfile{UserID: u.ID, CompanyName: companyName}).Error
		}
		return nil
	})
}

func (r *userRepository) FindByUID(ctx context.Context, uid string) (*model.User, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var u model.User
	if err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) ExistsByPhoneOrEmail(ctx context.Context, phone string, email *string) (bool, error) {
	if r.db == nil {
		return false, ErrDBNotReady
	}
	q := r.db.WithContext(ctx).Model(&model.User{})
	if email != nil {
		q = q.Where("phone = ? OR email = ?", phone, *email)
	} else {
		q = q.Where("phone = ?", phone)
	}
	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// ListByIDs returns users matching the id set; an empty set means all
// users. Role filters further when non-empty.
func (r *userRepository) ListByIDs(ctx context.Context, ids []uint64, role model.Role) ([]model.User, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	q := r.db.WithContext(ctx).Model(&model.User{})
	if len(ids) > 0 {
		q = q.Where("id IN ?", ids)
	}
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var list []model.User
	if err := q.Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *userRepository) UpdateContact(ctx context.Context, uid, name string, email *string) (*model.User, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var u model.User
	if err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&u).Error; err != nil {
		return nil, err
	}
	if name != "" {
		u.Name = name
	}
	if email != nil {
		u.Email = email
	}
	if err := r.db.WithContext(ctx).Save(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindFarmerProfileByUserID(ctx context.Context, userID uint64) (*model.FarmerProfile, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var p model.FarmerProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *userRepository) FindContractorProfileByUserID(ctx context.Context, userID uint64) (*model.ContractorProfile, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var p model.ContractorProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *userRepository) FindContractorProfileByID(ctx context.Context, id uint64) (*model.ContractorProfile, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var p model.ContractorProfile
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *userRepository) SetDB(db *gorm.DB) {
	r.db = db
}

package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smilecare/internal/models/db_models"
)

type UserRepository interface {
	Insert(ctx context.Context, user *db_models.User) error
	InsertWithProfile(ctx context.Context, user *db_models.User, profile *db_models.DentistProfile) error
	Update(ctx context.Context, user *db_models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	// HardDeleteWithProfile removes the user and any dentist profile for
	// good; used as the compensating action when invite delivery fails.
	HardDeleteWithProfile(ctx context.Context, id uuid.UUID) error

	FindByID(ctx context.Context, id string) (*db_models.User, error)
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	FindByEmailAndOtp(ctx context.Context, email, otp string, role db_models.UserRole) (*db_models.User, error)
	ListByRole(ctx context.Context, role db_models.UserRole) ([]db_models.User, error)
	CountByRole(ctx context.Context, role db_models.UserRole) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Insert(ctx context.Context, user *db_models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) InsertWithProfile(ctx context.Context, user *db_models.User, profile *db_models.DentistProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(profile).Error
	})
}

func (r *userRepository) Update(ctx context.Context, user *db_models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.User{}, "id = ?", id).Error
}

func (r *userRepository) HardDeleteWithProfile(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", id).Delete(&db_models.DentistProfile{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&db_models.User{}, "id = ?", id).Error
	})
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).Preload("Profile").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmailAndOtp(ctx context.Context, email, otp string, role db_models.UserRole) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).
		Where("email = ? AND otp_code = ? AND role = ?", email, otp, role).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListByRole(ctx context.Context, role db_models.UserRole) ([]db_models.User, error) {
	var users []db_models.User
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("role = ?", role).
		Order("created_at ASC").
		Find(&users).Error
	return users, err
}

func (r *userRepository) CountByRole(ctx context.Context, role db_models.UserRole) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("role = ?", role).
		Count(&count).Error
	return count, err
}

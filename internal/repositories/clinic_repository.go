package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smilecare/internal/models/db_models"
)

type ClinicRepository interface {
	GetProfile(ctx context.Context) (*db_models.ClinicProfile, error)
	SaveProfile(ctx context.Context, profile *db_models.ClinicProfile) error

	ListFaqs(ctx context.Context) ([]db_models.FAQEntry, error)
	FindFaq(ctx context.Context, id string) (*db_models.FAQEntry, error)
	SaveFaq(ctx context.Context, faq *db_models.FAQEntry) error
	DeleteFaq(ctx context.Context, id uuid.UUID) error

	ListGallery(ctx context.Context) ([]db_models.GalleryImage, error)
	FindGalleryImage(ctx context.Context, id string) (*db_models.GalleryImage, error)
	SaveGalleryImage(ctx context.Context, image *db_models.GalleryImage) error
	DeleteGalleryImage(ctx context.Context, id uuid.UUID) error
}

type clinicRepository struct {
	db *gorm.DB
}

func NewClinicRepository(db *gorm.DB) ClinicRepository {
	return &clinicRepository{db: db}
}

func (r *clinicRepository) GetProfile(ctx context.Context) (*db_models.ClinicProfile, error) {
	var profile db_models.ClinicProfile
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *clinicRepository) SaveProfile(ctx context.Context, profile *db_models.ClinicProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *clinicRepository) ListFaqs(ctx context.Context) ([]db_models.FAQEntry, error) {
	var faqs []db_models.FAQEntry
	err := r.db.WithContext(ctx).Order("position ASC, created_at ASC").Find(&faqs).Error
	return faqs, err
}

func (r *clinicRepository) FindFaq(ctx context.Context, id string) (*db_models.FAQEntry, error) {
	var faq db_models.FAQEntry
	err := r.db.WithContext(ctx).First(&faq, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &faq, nil
}

func (r *clinicRepository) SaveFaq(ctx context.Context, faq *db_models.FAQEntry) error {
	return r.db.WithContext(ctx).Save(faq).Error
}

func (r *clinicRepository) DeleteFaq(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.FAQEntry{}, "id = ?", id).Error
}

func (r *clinicRepository) ListGallery(ctx context.Context) ([]db_models.GalleryImage, error) {
	var images []db_models.GalleryImage
	err := r.db.WithContext(ctx).Order("position ASC, created_at ASC").Find(&images).Error
	return images, err
}

func (r *clinicRepository) FindGalleryImage(ctx context.Context, id string) (*db_models.GalleryImage, error) {
	var image db_models.GalleryImage
	err := r.db.WithContext(ctx).First(&image, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

func (r *clinicRepository) SaveGalleryImage(ctx context.Context, image *db_models.GalleryImage) error {
	return r.db.WithContext(ctx).Save(image).Error
}

func (r *clinicRepository) DeleteGalleryImage(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.GalleryImage{}, "id = ?", id).Error
}

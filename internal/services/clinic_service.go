package services

import (
	"context"

	"gorm.io/datatypes"

	"smilecare/internal/models/db_models"
	"smilecare/internal/models/request_models"
	"smilecare/internal/repositories"
	"smilecare/pkg/utils"
)

type ClinicServiceInterface interface {
	GetProfile(ctx context.Context) (*db_models.ClinicProfile, error)
	UpsertProfile(ctx context.Context, actingRole db_models.UserRole, request request_models.UpsertClinicProfileRequest) (*db_models.ClinicProfile, error)

	ListFaqs(ctx context.Context) ([]db_models.FAQEntry, error)
	CreateFaq(ctx context.Context, actingRole db_models.UserRole, request request_models.UpsertFaqRequest) (*db_models.FAQEntry, error)
	UpdateFaq(ctx context.Context, actingRole db_models.UserRole, id string, request request_models.UpsertFaqRequest) (*db_models.FAQEntry, error)
	DeleteFaq(ctx context.Context, actingRole db_models.UserRole, id string) error

	ListGallery(ctx context.Context) ([]db_models.GalleryImage, error)
	CreateGalleryImage(ctx context.Context, actingRole db_models.UserRole, request request_models.UpsertGalleryImageRequest) (*db_models.GalleryImage, error)
	DeleteGalleryImage(ctx context.Context, actingRole db_models.UserRole, id string) error
}

type ClinicService struct {
	clinicRepo repositories.ClinicRepository
}

func NewClinicService(clinicRepo repositories.ClinicRepository) ClinicServiceInterface {
	return &ClinicService{clinicRepo: clinicRepo}
}

func (s *ClinicService) GetProfile(ctx context.Context) (*db_models.ClinicProfile, error) {
	profile, err := s.clinicRepo.GetProfile(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if profile == nil {
		return nil, utils.ErrClinicProfileNotFound
	}
	return profile, nil
}

// UpsertProfile keeps a single profile row, creating it on first write.
func (s *ClinicService) UpsertProfile(ctx context.Context, actingRole db_models.UserRole, request request_models.UpsertClinicProfileRequest) (*db_models.ClinicProfile, error) {
	if actingRole != db_models.RoleAdmin {
		return nil, utils.ErrForbidden
	}

	profile, err := s.clinicRepo.GetProfile(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if profile == nil {
		profile = &db_models.ClinicProfile{}
	}

	profile.Name = request.Name
	profile.About = request.About
	profile.Address = request.Address
	profile.Phone = request.Phone
	profile.Email = request.Email
	if request.OpeningHours != nil {
		profile.OpeningHours = datatypes.JSON(request.OpeningHours)
	}
	if request.SocialLinks != nil {
		profile.SocialLinks = datatypes.JSON(request.SocialLinks)
	}

	if err := s.clinicRepo.SaveProfile(ctx, profile); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return profile, nil
}

func (s *ClinicService) ListFaqs(ctx context.Context) ([]db_models.FAQEntry, error) {
	faqs, err := s.clinicRepo.ListFaqs(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return faqs, nil
}

func (s *ClinicService) CreateFaq(ctx context.Context, actingRole db_models.UserRole, request request_models.UpsertFaqRequest) (*db_models.FAQEntry, error) {
	if actingRole != db_models.RoleAdmin {
		return nil, utils.ErrForbidden
	}

	faq := &db_models.FAQEntry{
		Question: request.Question,
		Answer:   request.Answer,
		Position: request.Position,
	}
	if err := s.clinicRepo.SaveFaq(ctx, faq); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return faq, nil
}

func (s *ClinicService) UpdateFaq(ctx context.Context, actingRole db_models.UserRole, id string, request request_models.UpsertFaqRequest) (*db_models.FAQEntry, error) {
	if actingRole != db_models.RoleAdmin {
		return nil, utils.ErrForbidden
	}

	faq, err := s.clinicRepo.FindFaq(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if faq == nil {
		return nil, utils.ErrFaqNotFound
	}

	faq.Question = request.Question
	faq.Answer = request.Answer
	faq.Position = request.Position

	if err := s.clinicRepo.SaveFaq(ctx, faq); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return faq, nil
}

func (s *ClinicService) DeleteFaq(ctx context.Context, actingRole db_models.UserRole, id string) error {
	if actingRole != db_models.RoleAdmin {
		return utils.ErrForbidden
	}

	faq, err := s.clinicRepo.FindFaq(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if faq == nil {
		return utils.ErrFaqNotFound
	}
	if err := s.clinicRepo.DeleteFaq(ctx, faq.ID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *ClinicService) ListGallery(ctx context.Context) ([]db_models.GalleryImage, error) {
	images, err := s.clinicRepo.ListGallery(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return images, nil
}

func (s *ClinicService) CreateGalleryImage(ctx context.Context, actingRole db_models.UserRole, request request_models.UpsertGalleryImageRequest) (*db_models.GalleryImage, error) {
	if actingRole != db_models.RoleAdmin {
		return nil, utils.ErrForbidden
	}

	image := &db_models.GalleryImage{
		Title:    request.Title,
		URL:      request.URL,
		Position: request.Position,
	}
	if err := s.clinicRepo.SaveGalleryImage(ctx, image); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return image, nil
}

func (s *ClinicService) DeleteGalleryImage(ctx context.Context, actingRole db_models.UserRole, id string) error {
	if actingRole != db_models.RoleAdmin {
		return utils.ErrForbidden
	}

	image, err := s.clinicRepo.FindGalleryImage(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if image == nil {
		return utils.ErrGalleryImageNotFound
	}
	if err := s.clinicRepo.DeleteGalleryImage(ctx, image.ID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

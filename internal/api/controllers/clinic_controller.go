package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smilecare/internal/models/request_models"
	"smilecare/internal/services"
	"smilecare/pkg/utils"
)

type ClinicController struct {
	clinicService services.ClinicServiceInterface
}

func NewClinicController(clinicService services.ClinicServiceInterface) *ClinicController {
	return &ClinicController{clinicService: clinicService}
}

func (cl *ClinicController) GetProfile(c *gin.Context) {
	profile, err := cl.clinicService.GetProfile(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, profile, "")
}

func (cl *ClinicController) UpsertProfile(c *gin.Context) {
	var req request_models.UpsertClinicProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	profile, err := cl.clinicService.UpsertProfile(c.Request.Context(), actingRole(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, profile, "Clinic profile saved")
}

func (cl *ClinicController) ListFaqs(c *gin.Context) {
	faqs, err := cl.clinicService.ListFaqs(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, faqs, "")
}

func (cl *ClinicController) CreateFaq(c *gin.Context) {
	var req request_models.UpsertFaqRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	faq, err := cl.clinicService.CreateFaq(c.Request.Context(), actingRole(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, faq, "FAQ created")
}

func (cl *ClinicController) UpdateFaq(c *gin.Context) {
	var req request_models.UpsertFaqRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	faq, err := cl.clinicService.UpdateFaq(c.Request.Context(), actingRole(c), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, faq, "FAQ updated")
}

func (cl *ClinicController) DeleteFaq(c *gin.Context) {
	if err := cl.clinicService.DeleteFaq(c.Request.Context(), actingRole(c), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "FAQ deleted")
}

func (cl *ClinicController) ListGallery(c *gin.Context) {
	images, err := cl.clinicService.ListGallery(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, images, "")
}

func (cl *ClinicController) CreateGalleryImage(c *gin.Context) {
	var req request_models.UpsertGalleryImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	image, err := cl.clinicService.CreateGalleryImage(c.Request.Context(), actingRole(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, image, "Image added")
}

func (cl *ClinicController) DeleteGalleryImage(c *gin.Context) {
	if err := cl.clinicService.DeleteGalleryImage(c.Request.Context(), actingRole(c), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Image removed")
}

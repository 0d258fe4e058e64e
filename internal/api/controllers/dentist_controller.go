package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smilecare/internal/models/request_models"
	"smilecare/internal/services"
	"smilecare/pkg/utils"
)

type DentistController struct {
	dentistService services.DentistServiceInterface
}

func NewDentistController(dentistService services.DentistServiceInterface) *DentistController {
	return &DentistController{dentistService: dentistService}
}

// Create invites a dentist: the account is created pending OTP setup. A
// failed invite mail does not undo the account; the response's email_sent
// flag tells the admin to use resend.
func (d *DentistController) Create(c *gin.Context) {
	var req request_models.CreateDentistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := d.dentistService.Provision(c.Request.Context(), actingRole(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, result, "Dentist invited")
}

// CreateWithProfile creates the account together with its dentist profile.
// On this path a failed invite mail rolls the whole invite back.
func (d *DentistController) CreateWithProfile(c *gin.Context) {
	var req request_models.CreateDentistWithProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := d.dentistService.ProvisionWithProfile(c.Request.Context(), actingRole(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, result, "Dentist invited")
}

func (d *DentistController) ResendOtp(c *gin.Context) {
	result, err := d.dentistService.ResendOtp(c.Request.Context(), actingRole(c), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, result, "A new code has been generated")
}

func (d *DentistController) List(c *gin.Context) {
	dentists, err := d.dentistService.ListDentists(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, dentists, "")
}

func (d *DentistController) Get(c *gin.Context) {
	dentist, err := d.dentistService.GetDentist(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, dentist, "")
}

func (d *DentistController) Update(c *gin.Context) {
	var req request_models.UpdateDentistProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := d.dentistService.UpdateDentist(c.Request.Context(), actingRole(c), c.Param("id"), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Dentist updated")
}

func (d *DentistController) Delete(c *gin.Context) {
	if err := d.dentistService.DeleteDentist(c.Request.Context(), actingRole(c), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Dentist removed")
}

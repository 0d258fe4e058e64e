package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smilecare/internal/models/db_models"
	"smilecare/internal/models/request_models"
	"smilecare/internal/services"
	"smilecare/pkg/utils"
)

type ServiceController struct {
	catalogService services.CatalogServiceInterface
}

func NewServiceController(catalogService services.CatalogServiceInterface) *ServiceController {
	return &ServiceController{catalogService: catalogService}
}

// List is public: the marketing site shows active services only. Admins can
// pass all=true to include retired entries.
func (s *ServiceController) List(c *gin.Context) {
	includeInactive := c.Query("all") == "true" && actingRole(c) == db_models.RoleAdmin

	services, err := s.catalogService.ListServices(c.Request.Context(), includeInactive)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, services, "")
}

func (s *ServiceController) Get(c *gin.Context) {
	service, err := s.catalogService.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, service, "")
}

func (s *ServiceController) Create(c *gin.Context) {
	var req request_models.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	service, err := s.catalogService.CreateService(c.Request.Context(), actingRole(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, service, "Service created")
}

func (s *ServiceController) Update(c *gin.Context) {
	var req request_models.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	service, err := s.catalogService.UpdateService(c.Request.Context(), actingRole(c), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, service, "Service updated")
}

func (s *ServiceController) Delete(c *gin.Context) {
	if err := s.catalogService.DeleteService(c.Request.Context(), actingRole(c), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Service deleted")
}

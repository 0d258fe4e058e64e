package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smilecare/internal/models/request_models"
	"smilecare/internal/repositories"
	"smilecare/internal/services"
	"smilecare/pkg/utils"
)

type VisitController struct {
	billingService services.BillingServiceInterface
}

func NewVisitController(billingService services.BillingServiceInterface) *VisitController {
	return &VisitController{billingService: billingService}
}

func (v *VisitController) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req request_models.CreateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	visit, err := v.billingService.CreateVisit(c.Request.Context(), actor, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, visit, "Visit recorded")
}

func (v *VisitController) Update(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req request_models.UpdateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	visit, err := v.billingService.UpdateVisit(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, visit, "Visit updated")
}

func (v *VisitController) Get(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	visit, err := v.billingService.GetVisit(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, visit, "")
}

func (v *VisitController) List(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	filter := repositories.VisitFilter{
		From:     parseInt64Query(c, "from"),
		To:       parseInt64Query(c, "to"),
		Page:     parseIntQuery(c, "page", 1),
		PageSize: parseIntQuery(c, "pageSize", 50),
	}
	if paidStr := c.Query("paid"); paidStr != "" {
		paid := paidStr == "true"
		filter.Paid = &paid
	}

	visits, err := v.billingService.ListVisits(c.Request.Context(), actor, filter)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, visits, "")
}

func (v *VisitController) Delete(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := v.billingService.DeleteVisit(c.Request.Context(), actor, c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Visit deleted")
}

func parseInt64Query(c *gin.Context, key string) int64 {
	value, err := strconv.ParseInt(c.Query(key), 10, 64)
	if err != nil {
		return 0
	}
	return value
}

func parseIntQuery(c *gin.Context, key string, fallback int) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

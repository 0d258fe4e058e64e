package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"smilecare/internal/models/db_models"
	"smilecare/internal/services"
	"smilecare/pkg/middleware"
)

// actingRole returns the canonical role of the authenticated caller, or ""
// when there is no usable session. Services re-check the role themselves;
// this only feeds them their input.
func actingRole(c *gin.Context) db_models.UserRole {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return ""
	}
	role, ok := db_models.ParseRole(claims.Role)
	if !ok {
		return ""
	}
	return role
}

func actorFromContext(c *gin.Context) (services.Actor, bool) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return services.Actor{}, false
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return services.Actor{}, false
	}
	role, ok := db_models.ParseRole(claims.Role)
	if !ok {
		return services.Actor{}, false
	}
	return services.Actor{ID: id, Role: role}, true
}

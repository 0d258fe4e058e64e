package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smilecare/internal/models/db_models"
	"smilecare/pkg/middleware"
)

// PagesController serves the back-office shell. The SPA assets live behind a
// CDN in production; these handlers only anchor the guarded routes and the
// role-based landing redirect.
type PagesController struct{}

func NewPagesController() *PagesController {
	return &PagesController{}
}

// Landing routes a freshly authenticated user to their home area. STAFF has
// no dedicated area and the admin sub-pages would bounce it back here, so it
// gets a neutral shell at the landing itself instead of a redirect.
func (p *PagesController) Landing(c *gin.Context) {
	switch actingRole(c) {
	case db_models.RoleAdmin:
		c.Redirect(http.StatusFound, "/admin/clinic")
	case db_models.RoleDoctor:
		c.Redirect(http.StatusFound, "/dentist")
	default:
		p.renderShell(c, "Back office")
	}
}

func (p *PagesController) AdminArea(c *gin.Context) {
	p.renderShell(c, "Back office")
}

func (p *PagesController) DentistArea(c *gin.Context) {
	p.renderShell(c, "Dentist workspace")
}

func (p *PagesController) Login(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(
		`<!doctype html><title>Sign in</title><h1>Sign in</h1>`))
}

func (p *PagesController) renderShell(c *gin.Context, title string) {
	claims := middleware.ClaimsFromContext(c)
	name := ""
	if claims != nil {
		name = claims.Name
	}
	body := `<!doctype html><title>` + title + `</title><h1>` + title + `</h1><p>` + name + `</p>`
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
}

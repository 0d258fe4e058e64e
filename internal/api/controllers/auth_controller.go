package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smilecare/internal/models/request_models"
	"smilecare/internal/services"
	"smilecare/pkg/middleware"
	"smilecare/pkg/utils"
)

type AuthController struct {
	accountService services.AccountServiceInterface
	dentistService services.DentistServiceInterface
}

func NewAuthController(accountService services.AccountServiceInterface, dentistService services.DentistServiceInterface) *AuthController {
	return &AuthController{
		accountService: accountService,
		dentistService: dentistService,
	}
}

// Login godoc
// @Summary Log in with email and password
// @Description Authenticates a back-office user and sets the session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/login [post]
func (a *AuthController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	token, account, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SetSessionCookie(c, token)
	utils.RespondSuccess(c, gin.H{"token": token, "user": account}, "Login successful")
}

// Logout clears the session cookie. The token itself stays valid until it
// expires; there is no server-side revocation list.
func (a *AuthController) Logout(c *gin.Context) {
	utils.ClearSessionCookie(c)
	utils.RespondSuccess(c, nil, "Logged out")
}

func (a *AuthController) Me(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	account, err := a.accountService.CurrentUser(c.Request.Context(), claims.Subject)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, account, "")
}

// VerifyOtp godoc
// @Summary Verify a password-setup code
// @Description Pre-checks an (email, otp) pair before the setup form is shown
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.VerifyOtpRequest true "OTP payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /auth/verify-otp [post]
func (a *AuthController) VerifyOtp(c *gin.Context) {
	var req request_models.VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	account, err := a.dentistService.VerifyOtp(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, account, "Code verified")
}

// SetupPassword godoc
// @Summary Set the first password using an OTP code
// @Description Completes dentist onboarding and opens a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.SetupPasswordRequest true "Setup payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /auth/setup-password [post]
func (a *AuthController) SetupPassword(c *gin.Context) {
	var req request_models.SetupPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	token, account, err := a.dentistService.SetupPassword(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SetSessionCookie(c, token)
	utils.RespondSuccess(c, gin.H{"token": token, "user": account}, "Password set")
}

func (a *AuthController) ForgotPassword(c *gin.Context) {
	var req request_models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.accountService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "If the email exists, a reset link has been sent")
}

func (a *AuthController) ResetPassword(c *gin.Context) {
	var req request_models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.accountService.ResetPassword(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Password has been reset")
}

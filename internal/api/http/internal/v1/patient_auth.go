package v1

import (
	"net/http"
	"time"

	"github.com/nitt-hospital/backend/internal/domain"
	"github.com/nitt-hospital/backend/internal/service"
	"github.com/nitt-hospital/backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initPatientAuthRoutes(api *gin.RouterGroup) {
	patient := api.Group("/auth/patient")

	patient.POST("/register/request-otp", h.patientRequestOtp)
	patient.POST("/register/verify", h.patientRegister)
	patient.POST("/login", h.patientLogin)
	patient.POST("/forgot-password", h.patientForgotPassword)
	patient.POST("/reset-password", h.patientResetPassword)
	patient.POST("/logout", h.logout)
	patient.GET("/me", h.identityMiddleware, h.requireSubject(auth.SubjectPatient), h.patientMe)
}

type patientRequestOtpInput struct {
	Email      string `json:"email" binding:"required,email,max=255"`
	Identifier string `json:"identifier" binding:"required,max=64"`
}

type patientRegisterInput struct {
	Name         string `json:"name" binding:"required,min=2,max=100"`
	Email        string `json:"email" binding:"required,email,max=255"`
	Password     string `json:"password" binding:"required,min=8,max=72"`
	Identifier   string `json:"identifier" binding:"required,max=64"`
	Type         string `json:"type" binding:"required,oneof=STUDENT FACULTY STAFF OTHER"`
	Gender       string `json:"gender" binding:"required,oneof=MALE FEMALE OTHER"`
	Department   string `json:"department" binding:"max=100"`
	Address      string `json:"address" binding:"max=255"`
	ProfileImage string `json:"profile_image" binding:"max=512"`
	Otp          string `json:"otp" binding:"required,otpcode"`
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type forgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	Otp         string `json:"otp" binding:"required,otpcode"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	User        any    `json:"user"`
}

// @Summary Request registration otp
// @Tags Patient Auth
// @Accept  json
// @Produce  json
// @Param input body patientRequestOtpInput true "email and identifier"
// @Success 200 {object} messageResponse
// @Failure 400 {object} ErrorStruct
// @Failure 409 {object} ErrorStruct
// @Failure 429 {object} ErrorStruct
// @Router /auth/patient/register/request-otp [post]
func (h *Handler) patientRequestOtp(c *gin.Context) {
	var inp patientRequestOtpInput
	if err := c.ShouldBindJSON(&inp); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.PatientAuth.RequestRegistrationOtp(c.Request.Context(), inp.Email, inp.Identifier); err != nil {
		serviceErrorResponse(c, "request registration otp", err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "OTP sent successfully"})
}

// @Summary Verify otp and register
// @Tags Patient Auth
// @Accept  json
// @Produce  json
// @Param input body patientRegisterInput true "patient"
// @Success 201 {object} domain.Patient
// @Failure 400 {object} ErrorStruct
// @Failure 409 {object} ErrorStruct
// @Failure 429 {object} ErrorStruct
// @Router /auth/patient/register/verify [post]
func (h *Handler) patientRegister(c *gin.Context) {
	var inp patientRegisterInput
	if err := c.ShouldBindJSON(&inp); err != nil {
		validationErrorResponse(c, err)
		return
	}

	patient, err := h.services.PatientAuth.VerifyAndRegister(c.Request.Context(), service.RegisterPatientInput{
		Name:         inp.Name,
		Email:        inp.Email,
		Password:     inp.Password,
		Identifier:   inp.Identifier,
		Type:         domain.PatientType(inp.Type),
		Gender:       domain.Gender(inp.Gender),
		Department:   inp.Department,
		Address:      inp.Address,
		ProfileImage: inp.ProfileImage,
		Otp:          inp.Otp,
	})
	if err != nil {
		serviceErrorResponse(c, "register patient", err)
		return
	}

	c.JSON(http.StatusCreated, patient)
}

// @Summary Patient login
// @Tags Patient Auth
// @Accept  json
// @Produce  json
// @Param input body loginInput true "credentials"
// @Success 200 {object} loginResponse
// @Failure 401 {object} ErrorStruct
// @Router /auth/patient/login [post]
func (h *Handler) patientLogin(c *gin.Context) {
	var inp loginInput
	if err := c.ShouldBindJSON(&inp); err != nil {
		validationErrorResponse(c, err)
		return
	}

	res, err := h.services.PatientAuth.Login(c.Request.Context(), inp.Email, inp.Password)
	if err != nil {
		serviceErrorResponse(c, "patient login", err)
		return
	}

	h.setAuthCookie(c, res.AccessToken, res.ExpiresIn)

	c.JSON(http.StatusOK, loginResponse{
		AccessToken: res.AccessToken,
		ExpiresIn:   int64(res.ExpiresIn / time.Second),
		User:        res.Patient,
	})
}

// @Summary Forgot password
// @Tags Patient Auth
// @Accept  json
// @Produce  json
// @Param input body forgotPasswordInput true "email"
// @Success 200 {object} messageResponse
// @Router /auth/patient/forgot-password [post]
func (h *Handler) patientForgotPassword(c *gin.Context) {
	var inp forgotPasswordInput
	if err := c.ShouldBindJSON(&inp); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.PatientAuth.ForgotPassword(c.Request.Context(), inp.Email); err != nil {
		serviceErrorResponse(c, "forgot password", err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "If email exists, OTP has been sent"})
}

// @Summary Reset password
// @Tags Patient Auth
// @Accept  json
// @Produce  json
// @Param input body resetPasswordInput true "email, otp and new password"
// @Success 200 {object} messageResponse
// @Failure 400 {object} ErrorStruct
// @Failure 429 {object} ErrorStruct
// @Router /auth/patient/reset-password [post]
func (h *Handler) patientResetPassword(c *gin.Context) {
	var inp resetPasswordInput
	if err := c.ShouldBindJSON(&inp); err != nil {
		validationErrorResponse(c, err)
		return
	}

	err := h.services.PatientAuth.ResetPassword(c.Request.Context(), service.ResetPasswordInput{
		Email:       inp.Email,
		Otp:         inp.Otp,
		NewPassword: inp.NewPassword,
	})
	if err != nil {
		serviceErrorResponse(c, "reset password", err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "Password reset successfully"})
}

// @Summary Current patient
// @Tags Patient Auth
// @Produce  json
// @Success 200 {object} domain.Patient
// @Failure 401 {object} ErrorStruct
// @Security BearerAuth
// @Router /auth/patient/me [get]
func (h *Handler) patientMe(c *gin.Context) {
	id, err := getPrincipalID(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, UnauthorizedCode)
		return
	}

	patient, err := h.services.PatientAuth.GetMe(c.Request.Context(), id)
	if err != nil {
		serviceErrorResponse(c, "get patient", err)
		return
	}

	c.JSON(http.StatusOK, patient)
}

func (h *Handler) logout(c *gin.Context) {
	h.clearAuthCookie(c)
	c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

package v1

import (
	"net/http"

	"github.com/nitt-hospital/backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) initOtpRoutes(api *gin.RouterGroup) {
	otps := api.Group("/otps", h.identityMiddleware, h.requirePermission(domain.PermOtpManage))

	otps.GET("", h.getOtps)
	otps.POST("/create", h.createOtp)
	otps.PATCH("/:id/mark-used", h.markOtpUsed)
	otps.DELETE("/cleanup/expired", h.deleteExpiredOtps)
	otps.DELETE("/:id", h.deleteOtp)
}

type createOtpInput struct {
	Email string `json:"email" binding:"required,email"`
}

type createOtpResponse struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

// @Summary List otps
// @Tags Otps
// @Produce  json
// @Success 200 {object} []domain.Otp
// @Failure 401 {object} ErrorStruct
// @Failure 403 {object} ErrorStruct
// @Security BearerAuth
// @Router /otps [get]
func (h *Handler) getOtps(c *gin.Context) {
	otps, err := h.services.Otps.GetAll(c.Request.Context())
	if err != nil {
		serviceErrorResponse(c, "get otps", err)
		return
	}

	c.JSON(http.StatusOK, otps)
}

// @Summary Issue otp manually
// @Tags Otps
// @Accept  json
// @Produce  json
// @Param input body createOtpInput true "email"
// @Success 201 {object} createOtpResponse
// @Security BearerAuth
// @Router /otps/create [post]
func (h *Handler) createOtp(c *gin.Context) {
	var inp createOtpInput
	if err := c.ShouldBindJSON(&inp); err != nil {
		validationErrorResponse(c, err)
		return
	}

	code, err := h.services.Otps.CreateManual(c.Request.Context(), inp.Email)
	if err != nil {
		serviceErrorResponse(c, "create otp", err)
		return
	}

	c.JSON(http.StatusCreated, createOtpResponse{Email: inp.Email, Otp: code})
}

// @Summary Mark otp used
// @Tags Otps
// @Produce  json
// @Param id path string true "otp id"
// @Success 200 {object} domain.Otp
// @Failure 404 {object} ErrorStruct
// @Security BearerAuth
// @Router /otps/{id}/mark-used [patch]
func (h *Handler) markOtpUsed(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	otp, err := h.services.Otps.MarkUsed(c.Request.Context(), id)
	if err != nil {
		serviceErrorResponse(c, "mark otp used", err)
		return
	}

	c.JSON(http.StatusOK, otp)
}

// @Summary Delete otp
// @Tags Otps
// @Produce  json
// @Param id path string true "otp id"
// @Success 200 {object} domain.Otp
// @Failure 404 {object} ErrorStruct
// @Security BearerAuth
// @Router /otps/{id} [delete]
func (h *Handler) deleteOtp(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	otp, err := h.services.Otps.DeleteOne(c.Request.Context(), id)
	if err != nil {
		serviceErrorResponse(c, "delete otp", err)
		return
	}

	c.JSON(http.StatusOK, otp)
}

// @Summary Purge expired otps
// @Tags Otps
// @Produce  json
// @Success 200 {object} countResponse
// @Security BearerAuth
// @Router /otps/cleanup/expired [delete]
func (h *Handler) deleteExpiredOtps(c *gin.Context) {
	count, err := h.services.Otps.DeleteExpired(c.Request.Context())
	if err != nil {
		serviceErrorResponse(c, "delete expired otps", err)
		return
	}

	c.JSON(http.StatusOK, countResponse{Count: count})
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, InvalidRequestCode)
		return uuid.Nil, false
	}
	return id, true
}

package v1

import (
	"net/http"
	"time"

	"github.com/nitt-hospital/backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initStaffAuthRoutes(api *gin.RouterGroup) {
	staff := api.Group("/auth/staff")

	staff.POST("/login", h.staffLogin)
	staff.POST("/logout", h.logout)
	staff.GET("/me", h.identityMiddleware, h.requireSubject(auth.SubjectStaff), h.staffMe)
}

// @Summary Staff login
// @Tags Staff Auth
// @Accept  json
// @Produce  json
// @Param input body loginInput true "credentials"
// @Success 200 {object} loginResponse
// @Failure 401 {object} ErrorStruct
// @Router /auth/staff/login [post]
func (h *Handler) staffLogin(c *gin.Context) {
	var inp loginInput
	if err := c.ShouldBindJSON(&inp); err != nil {
		validationErrorResponse(c, err)
		return
	}

	res, err := h.services.StaffAuth.Login(c.Request.Context(), inp.Email, inp.Password)
	if err != nil {
		serviceErrorResponse(c, "staff login", err)
		return
	}

	h.setAuthCookie(c, res.AccessToken, res.ExpiresIn)

	c.JSON(http.StatusOK, loginResponse{
		AccessToken: res.AccessToken,
		ExpiresIn:   int64(res.ExpiresIn / time.Second),
		User:        res.Staff,
	})
}

func (h *Handler) staffMe(c *gin.Context) {
	id, err := getPrincipalID(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, UnauthorizedCode)
		return
	}

	staff, err := h.services.StaffAuth.GetMe(c.Request.Context(), id)
	if err != nil {
		serviceErrorResponse(c, "get staff", err)
		return
	}

	c.JSON(http.StatusOK, staff)
}

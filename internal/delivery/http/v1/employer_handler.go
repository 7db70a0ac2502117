package v1

import (
	"net/http"

	"go-jobboard-gateway/internal/delivery/http/middleware"
	"go-jobboard-gateway/internal/delivery/http/response"
	"go-jobboard-gateway/internal/domain"
	"go-jobboard-gateway/internal/usecase"
	"go-jobboard-gateway/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type EmployerHandler struct {
	profileUC usecase.ProfileUsecase
}

func NewEmployerHandler(protected *gin.RouterGroup, profileUC usecase.ProfileUsecase) {
	handler := &EmployerHandler{profileUC: profileUC}

	group := protected.Group("/employers")
	group.Use(middleware.RequireRole(domain.RoleEmployer))
	{
		group.GET("/me", handler.GetProfile)
		group.PATCH("/me", handler.UpdateProfile)
		group.GET("/me/verification", handler.GetVerification)
		group.POST("/me/verification", handler.SubmitVerification)
	}
}

// GetProfile godoc
// @Summary      Get own employer profile
// @Tags         employers
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /employers/me [get]
func (h *EmployerHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileUC.GetEmployerProfile(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile fetched", profile)
}

// UpdateProfile godoc
// @Summary      Update own employer profile (company info step)
// @Tags         employers
// @Accept       json
// @Produce      json
// @Param        profile  body      domain.EmployerProfileUpdate  true  "Fields to update"
// @Success      200  {object}  response.Response
// @Router       /employers/me [patch]
func (h *EmployerHandler) UpdateProfile(c *gin.Context) {
	var upd domain.EmployerProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile, err := h.profileUC.UpdateEmployerProfile(c.Request.Context(), &upd)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", profile)
}

// GetVerification godoc
// @Summary      Get own verification record
// @Description  Returns null data when verification was never submitted.
// @Tags         employers
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /employers/me/verification [get]
func (h *EmployerHandler) GetVerification(c *gin.Context) {
	verification, err := h.profileUC.GetEmployerVerification(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Verification fetched", verification)
}

// SubmitVerification godoc
// @Summary      Submit company verification
// @Description  Submit or resubmit the verification step. Resubmission is required after a rejection.
// @Tags         employers
// @Accept       json
// @Produce      json
// @Param        verification  body      domain.EmployerVerificationSubmission  true  "Verification details"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /employers/me/verification [post]
func (h *EmployerHandler) SubmitVerification(c *gin.Context) {
	var sub domain.EmployerVerificationSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	verification, err := h.profileUC.SubmitEmployerVerification(c.Request.Context(), &sub)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Verification submitted", verification)
}

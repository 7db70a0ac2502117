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

type JobSeekerHandler struct {
	profileUC usecase.ProfileUsecase
}

func NewJobSeekerHandler(protected *gin.RouterGroup, profileUC usecase.ProfileUsecase) {
	handler := &JobSeekerHandler{profileUC: profileUC}

	group := protected.Group("/job-seekers")
	group.Use(middleware.RequireRole(domain.RoleJobSeeker))
	{
		group.GET("/me", handler.GetProfile)
		group.PATCH("/me", handler.UpdateProfile)
	}
}

// GetProfile godoc
// @Summary      Get own job seeker profile
// @Tags         job-seekers
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /job-seekers/me [get]
func (h *JobSeekerHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileUC.GetJobSeekerProfile(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile fetched", profile)
}

// UpdateProfile godoc
// @Summary      Update own job seeker profile
// @Description  Save one wizard step. Only the provided fields are forwarded.
// @Tags         job-seekers
// @Accept       json
// @Produce      json
// @Param        profile  body      domain.JobSeekerProfileUpdate  true  "Fields to update"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /job-seekers/me [patch]
func (h *JobSeekerHandler) UpdateProfile(c *gin.Context) {
	var upd domain.JobSeekerProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile, err := h.profileUC.UpdateJobSeekerProfile(c.Request.Context(), &upd)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", profile)
}

package v1

import (
	"net/http"

	"go-jobboard-gateway/internal/delivery/http/response"
	"go-jobboard-gateway/internal/domain"
	"go-jobboard-gateway/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type SkillHandler struct {
	skillUC domain.SkillUsecase
}

func NewSkillHandler(protected *gin.RouterGroup, skillUC domain.SkillUsecase) {
	handler := &SkillHandler{skillUC: skillUC}

	group := protected.Group("/skills")
	{
		group.GET("", handler.Search)
		group.POST("/suggest", handler.Suggest)
	}
}

// Search godoc
// @Summary      Search skills
// @Tags         skills
// @Produce      json
// @Param        q  query  string  true  "Search term"
// @Success      200  {object}  response.Response
// @Router       /skills [get]
func (h *SkillHandler) Search(c *gin.Context) {
	skills, err := h.skillUC.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skills fetched", skills)
}

// Suggest godoc
// @Summary      Suggest a new skill
// @Description  Create a SUGGESTED skill and attach it to the caller's profile.
// @Tags         skills
// @Accept       json
// @Produce      json
// @Param        suggestion  body      domain.SkillSuggestion  true  "Skill suggestion"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /skills/suggest [post]
func (h *SkillHandler) Suggest(c *gin.Context) {
	var suggestion domain.SkillSuggestion
	if err := c.ShouldBindJSON(&suggestion); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	skill, err := h.skillUC.Suggest(c.Request.Context(), &suggestion)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Skill suggested", skill)
}

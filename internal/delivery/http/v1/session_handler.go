package v1

import (
	"net/http"

	"go-jobboard-gateway/internal/delivery/http/response"
	"go-jobboard-gateway/internal/domain"
	"go-jobboard-gateway/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionUC domain.SessionUsecase
}

func NewSessionHandler(protected *gin.RouterGroup, sessionUC domain.SessionUsecase) {
	handler := &SessionHandler{sessionUC: sessionUC}

	session := protected.Group("/session")
	{
		session.GET("/redirect", handler.Redirect)
		session.POST("/refresh-profile", handler.RefreshProfile)
	}
}

func (h *SessionHandler) requireSessionID(c *gin.Context) (string, bool) {
	sessionID := c.GetString(string(domain.KeySessionID))
	if sessionID == "" {
		c.Error(apperror.Unauthorized("This endpoint requires a gateway session"))
		return "", false
	}
	return sessionID, true
}

// Redirect godoc
// @Summary      Resolve profile-completion redirect
// @Description  Re-fetch the profile and return the onboarding path the user must visit, or null when the profile is complete
// @Tags         session
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /session/redirect [get]
func (h *SessionHandler) Redirect(c *gin.Context) {
	sessionID, ok := h.requireSessionID(c)
	if !ok {
		return
	}

	path, err := h.sessionUC.CheckProfileCompletion(c.Request.Context(), sessionID)
	if err != nil {
		c.Error(err)
		return
	}

	var redirect *string
	if path != "" {
		redirect = &path
	}
	response.Success(c, http.StatusOK, "Redirect resolved", gin.H{"redirect": redirect})
}

// RefreshProfile godoc
// @Summary      Refresh the cached profile snapshot
// @Description  Re-fetch the role-specific profile after a wizard step. Redirects only when the profile was never started.
// @Tags         session
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /session/refresh-profile [post]
func (h *SessionHandler) RefreshProfile(c *gin.Context) {
	sessionID, ok := h.requireSessionID(c)
	if !ok {
		return
	}

	snapshot, path, err := h.sessionUC.RefreshProfile(c.Request.Context(), sessionID)
	if err != nil {
		c.Error(err)
		return
	}

	var redirect *string
	if path != "" {
		redirect = &path
	}
	response.Success(c, http.StatusOK, "Profile refreshed", gin.H{
		"profile":  snapshot,
		"redirect": redirect,
	})
}

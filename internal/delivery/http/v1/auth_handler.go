package v1

import (
	"net/http"

	"go-jobboard-gateway/config"
	"go-jobboard-gateway/internal/delivery/http/middleware"
	"go-jobboard-gateway/internal/delivery/http/response"
	"go-jobboard-gateway/internal/domain"
	"go-jobboard-gateway/pkg/apperror"
	"go-jobboard-gateway/pkg/security"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authGateway  domain.AuthGateway
	sessionUC    domain.SessionUsecase
	loginTracker *security.LoginTracker
	config       *config.Config
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, authGateway domain.AuthGateway, sessionUC domain.SessionUsecase, loginTracker *security.LoginTracker, cfg *config.Config) {
	handler := &AuthHandler{
		authGateway:  authGateway,
		sessionUC:    sessionUC,
		loginTracker: loginTracker,
		config:       cfg,
	}

	// Public Routes
	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/login", middleware.RateLimitMiddleware(middleware.LoginRateLimitConfig(cfg)), handler.Login)
		publicAuth.POST("/register", handler.Register)
		publicAuth.POST("/verify-email", handler.VerifyEmail)
		publicAuth.POST("/resend-otp", handler.ResendOtp)
		publicAuth.POST("/forgot-password", handler.ForgotPassword)
		publicAuth.POST("/reset-password", handler.ResetPassword)
		// Logout only needs the cookie; an expired session must still clear it
		publicAuth.POST("/logout", handler.Logout)
	}

	// Protected Routes
	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.GET("/me", handler.Me)
		protectedAuth.POST("/refresh", handler.Refresh)
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Otp   string `json:"otp" binding:"required,len=6"`
}

type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Otp         string `json:"otp" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// Login godoc
// @Summary      User Login
// @Description  Login with email and password, establish a gateway session and resolve the post-login redirect
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Login Credentials"
// @Success      200    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Failure      429    {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	requestID := c.GetString("RequestID")
	sl := security.DefaultLogger()

	blocked, err := h.loginTracker.IsBlocked(c.Request.Context(), req.Email, c.ClientIP())
	if err == nil && blocked {
		sl.LogLoginBlocked(c.Request.Context(), req.Email, c.ClientIP(), c.Request.UserAgent(), requestID)
		c.Error(apperror.TooManyRequests("Too many failed attempts. Please try again later."))
		return
	}

	result, err := h.authGateway.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.loginTracker.RecordFailedAttempt(c.Request.Context(), req.Email, c.ClientIP(), c.Request.UserAgent(), requestID)
		sl.LogLoginFailed(c.Request.Context(), req.Email, c.ClientIP(), c.Request.UserAgent(), requestID, "invalid_credentials")
		// Keep the message generic regardless of the upstream reason
		c.Error(apperror.Unauthorized("Wrong password or account not found"))
		return
	}

	_ = h.loginTracker.ClearAttempts(c.Request.Context(), req.Email, c.ClientIP())

	outcome, err := h.sessionUC.Login(c.Request.Context(), result)
	if err != nil {
		c.Error(err)
		return
	}

	sl.Log(c.Request.Context(), security.SecurityEvent{
		Event:        security.EventLoginSuccess,
		SubjectType:  "user_id",
		SubjectValue: outcome.User.ID,
		IP:           c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
		RequestID:    requestID,
	})

	h.setSessionCookie(c, outcome.SessionID)
	response.Success(c, http.StatusOK, "Login successful", loginPayload(outcome))
}

// Register godoc
// @Summary      User Registration
// @Description  Register a new account with the platform; an OTP is emailed for verification
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      RegisterRequest  true  "Registration Details"
// @Success      201    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      409    {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	role := domain.NormalizeRole(req.Role)
	if role != domain.RoleJobSeeker && role != domain.RoleEmployer {
		c.Error(apperror.BadRequest("Role must be job seeker or employer"))
		return
	}

	input := &domain.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		Role:      string(role),
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := h.authGateway.Register(c.Request.Context(), input); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Registration successful. Please check your email for the verification code.", nil)
}

// VerifyEmail godoc
// @Summary      Verify Email
// @Description  Confirm the emailed OTP; on success a gateway session is established
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      VerifyEmailRequest  true  "Email and OTP"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Router       /auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	result, err := h.authGateway.VerifyEmail(c.Request.Context(), req.Email, req.Otp)
	if err != nil {
		security.DefaultLogger().Log(c.Request.Context(), security.SecurityEvent{
			Event:        security.EventOtpFailed,
			SubjectType:  "email",
			SubjectValue: security.MaskEmail(req.Email),
			IP:           c.ClientIP(),
			RequestID:    c.GetString("RequestID"),
		})
		c.Error(err)
		return
	}

	outcome, err := h.sessionUC.Login(c.Request.Context(), result)
	if err != nil {
		c.Error(err)
		return
	}

	h.setSessionCookie(c, outcome.SessionID)
	response.Success(c, http.StatusOK, "Email verified", loginPayload(outcome))
}

func (h *AuthHandler) ResendOtp(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	if err := h.authGateway.ResendOtp(c.Request.Context(), req.Email); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Verification code sent", nil)
}

// ForgotPassword always answers the same way so the endpoint cannot be used
// to enumerate registered emails.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	_ = h.authGateway.ForgotPassword(c.Request.Context(), req.Email)
	response.Success(c, http.StatusOK, "If an account with that email exists, a reset code has been sent.", nil)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	if err := h.authGateway.ResetPassword(c.Request.Context(), req.Email, req.Otp, req.NewPassword); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Password updated. Please log in again.", nil)
}

// Logout godoc
// @Summary      Logout
// @Description  Clear the gateway session and cookie. Succeeds even without an active session.
// @Tags         auth
// @Produce      json
// @Success      200    {object}  response.Response
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, _ := c.Cookie(middleware.SessionCookieName)
	if err := h.sessionUC.Logout(c.Request.Context(), sessionID); err != nil {
		c.Error(err)
		return
	}
	if sessionID != "" {
		security.DefaultLogger().LogSessionRevoked(c.Request.Context(), c.GetString(string(domain.KeyUserID)), c.ClientIP(), c.GetString("RequestID"))
	}
	h.clearSessionCookie(c)
	response.Success(c, http.StatusOK, "Logged out", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	sessionID := c.GetString(string(domain.KeySessionID))
	if sessionID == "" {
		// Bearer-token callers have no stored session; echo the token identity
		response.Success(c, http.StatusOK, "User details", gin.H{
			"user": domain.User{
				ID:    c.GetString(string(domain.KeyUserID)),
				Email: c.GetString(string(domain.KeyUserEmail)),
				Role:  domain.Role(c.GetString(string(domain.KeyUserRole))),
			},
		})
		return
	}

	session, err := h.sessionUC.Current(c.Request.Context(), sessionID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User details", gin.H{
		"user":    session.User,
		"profile": session.Profile,
	})
}

// Refresh exchanges the stored refresh token for a new pair.
func (h *AuthHandler) Refresh(c *gin.Context) {
	sessionID := c.GetString(string(domain.KeySessionID))
	if sessionID == "" {
		c.Error(apperror.Unauthorized("Token refresh requires a gateway session"))
		return
	}
	if _, err := h.sessionUC.RefreshTokens(c.Request.Context(), sessionID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Tokens refreshed", nil)
}

// loginPayload shapes the login/verify response. Redirect is null, not "",
// when the user may go straight to their dashboard.
func loginPayload(outcome *domain.LoginOutcome) gin.H {
	var redirect *string
	if outcome.Redirect != "" {
		redirect = &outcome.Redirect
	}
	return gin.H{
		"user":      outcome.User,
		"redirect":  redirect,
		"dashboard": outcome.Dashboard,
	}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, sessionID string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.SessionCookieName,
		sessionID,
		int(h.config.RefreshTokenTTL.Seconds()),
		"/",
		"",
		true, // Secure
		true, // HttpOnly
	)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", true, true)
}

package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/cherry_dining/internal/core/ports/services"
	"github.com/SscSPs/cherry_dining/internal/dto"
	"github.com/SscSPs/cherry_dining/internal/middleware"
	"github.com/SscSPs/cherry_dining/internal/utils"
	"github.com/gin-gonic/gin"
)

// authHandler serves the two independent sign-in paths.
type authHandler struct {
	adminAuth     portssvc.AdminAuthSvcFacade
	staffAuth     portssvc.StaffAuthSvc
	posthogClient *utils.PosthogClientWrapper
}

func newAuthHandler(adminAuth portssvc.AdminAuthSvcFacade, staffAuth portssvc.StaffAuthSvc, posthogClient *utils.PosthogClientWrapper) *authHandler {
	return &authHandler{
		adminAuth:     adminAuth,
		staffAuth:     staffAuth,
		posthogClient: posthogClient,
	}
}

// registerAuthRoutes registers the public authentication routes. Credential checks
// go through limit.
func registerAuthRoutes(r *gin.Engine, h *authHandler, limit gin.HandlerFunc) {
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/signup", limit, h.signUp)
		auth.POST("/signin", limit, h.signIn)
		auth.POST("/google", limit, h.signInWithGoogle)
		auth.POST("/refresh", h.refresh)
		auth.POST("/staff/login", limit, h.staffLogin)
	}
}

// registerSessionRoutes registers routes that need an authenticated admin.
func registerSessionRoutes(rg *gin.RouterGroup, h *authHandler) {
	auth := rg.Group("/auth")
	{
		auth.POST("/signout", h.signOut)
		auth.GET("/me", h.me)
	}
}

// signUp godoc
// @Summary Administrator sign-up
// @Description Creates an administrator account with a profile and returns a token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignUpRequest true "Account details"
// @Success 201 {object} dto.AuthSessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/signup [post]
func (h *authHandler) signUp(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}

	session, err := h.adminAuth.SignUp(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create account")
		return
	}

	logger.Info("Administrator signed up", slog.String("user_id", session.Identity.ID))
	middleware.PosthogEvent(h.posthogClient, session.Identity.ID, "admin_signed_up", nil)
	c.JSON(http.StatusCreated, dto.ToAuthSessionResponse(session))
}

// signIn godoc
// @Summary Administrator sign-in
// @Description Authenticates an administrator by email and password.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignInRequest true "Credentials"
// @Success 200 {object} dto.AuthSessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/signin [post]
func (h *authHandler) signIn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}

	session, err := h.adminAuth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(c, logger, err, "Failed to sign in")
		return
	}

	logger.Info("Administrator signed in", slog.String("user_id", session.Identity.ID))
	middleware.PosthogEvent(h.posthogClient, session.Identity.ID, "admin_signed_in", map[string]any{"method": "password"})
	c.JSON(http.StatusOK, dto.ToAuthSessionResponse(session))
}

// signInWithGoogle godoc
// @Summary Administrator Google sign-in
// @Description Exchanges a Google ID token for a token pair. Only existing administrators may sign in.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.GoogleSignInRequest true "Google ID token"
// @Success 200 {object} dto.AuthSessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google [post]
func (h *authHandler) signInWithGoogle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}

	session, err := h.adminAuth.SignInWithGoogle(c.Request.Context(), req.IDToken)
	if err != nil {
		respondWithError(c, logger, err, "Failed to sign in with Google")
		return
	}

	logger.Info("Administrator signed in with Google", slog.String("user_id", session.Identity.ID))
	middleware.PosthogEvent(h.posthogClient, session.Identity.ID, "admin_signed_in", map[string]any{"method": "google"})
	c.JSON(http.StatusOK, dto.ToAuthSessionResponse(session))
}

// refresh godoc
// @Summary Refresh the administrator session
// @Description Rotates the refresh token and issues a new access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.AuthSessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}

	session, err := h.adminAuth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondWithError(c, logger, err, "Failed to refresh session")
		return
	}
	c.JSON(http.StatusOK, dto.ToAuthSessionResponse(session))
}

// staffLogin godoc
// @Summary Staff login
// @Description Verifies a staff username and password and issues a shift-long session token.
// @Description Unknown usernames, inactive accounts and wrong passwords all return the same 401.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.StaffLoginRequest true "Staff credentials"
// @Success 200 {object} dto.StaffLoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/staff/login [post]
func (h *authHandler) staffLogin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.StaffLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}

	session, err := h.staffAuth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondWithError(c, logger, err, "Failed to log in")
		return
	}

	logger.Info("Staff logged in", slog.String("staff_id", session.Staff.ID), slog.String("role", session.Staff.Role.String()))
	middleware.PosthogEvent(h.posthogClient, session.Staff.ID, "staff_logged_in", map[string]any{"role": session.Staff.Role.String()})
	c.JSON(http.StatusOK, dto.StaffLoginResponse{
		StaffID:    session.Staff.ID,
		StaffName:  session.Staff.FullName,
		StaffEmail: session.Staff.Email,
		StaffRole:  session.Staff.Role.String(),
		Username:   session.Staff.Username,
		Token:      session.Token,
		ExpiresAt:  session.ExpiresAt,
	})
}

// signOut godoc
// @Summary Administrator sign-out
// @Description Revokes the stored refresh token.
// @Tags auth
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/signout [post]
func (h *authHandler) signOut(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := adminIDFromContext(c)
	if !ok {
		return
	}

	if err := h.adminAuth.SignOut(c.Request.Context(), userID); err != nil {
		respondWithError(c, logger, err, "Failed to sign out")
		return
	}
	logger.Info("Administrator signed out")
	c.Status(http.StatusNoContent)
}

// me godoc
// @Summary Current administrator
// @Description Returns the signed-in administrator with profile and role.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AdminIdentityResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *authHandler) me(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := adminIDFromContext(c)
	if !ok {
		return
	}

	identity, err := h.adminAuth.Me(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to load profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToAdminIdentityResponse(identity))
}

package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"real-estate-api/middleware"
	"real-estate-api/services"
)

// RegisterRequest represents the request body for registration. The id_token
// is the identity-provider credential; the profile fields are hints that the
// oracle's verified claims override.
type RegisterRequest struct {
	IDToken   string `json:"id_token" binding:"required"`
	Name      string `json:"name"`
	Email     string `json:"email" binding:"omitempty,email"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// UpdateProfileRequest represents the request body for a profile update
type UpdateProfileRequest struct {
	Name      string `json:"name" binding:"required"`
	AvatarURL string `json:"avatar_url"`
}

// AuthController exposes the account lifecycle endpoints
type AuthController struct {
	auth *services.AuthService
}

// NewAuthController creates a new auth controller
func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register handles POST /auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	user, err := ctrl.auth.Register(c.Request.Context(), req.IDToken, services.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		Role:      req.Role,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		log.Printf("Registration failed: %v", err)
		respondError(c, err)
		return
	}

	// The verified credential is echoed back as the access token; this
	// service does not mint a separate session token
	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"message":      "User registered successfully",
		"user":         user,
		"access_token": req.IDToken,
	})
}

// Login handles POST /auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	user, err := ctrl.auth.Login(c.Request.Context(), req.IDToken)
	if err != nil {
		log.Printf("Login failed: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Login successful",
		"user":         user,
		"access_token": req.IDToken,
	})
}

// Logout handles POST /auth/logout. Tokens are stateless; the call only
// confirms the credential is still valid.
func (ctrl *AuthController) Logout(c *gin.Context) {
	accessToken, err := middleware.GetAccessToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Access token not found",
			},
		})
		return
	}

	if err := ctrl.auth.Logout(c.Request.Context(), accessToken); err != nil {
		log.Printf("Logout failed: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logout successful",
	})
}

// GetProfile handles GET /auth/profile
func (ctrl *AuthController) GetProfile(c *gin.Context) {
	accessToken, err := middleware.GetAccessToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Access token not found",
			},
		})
		return
	}

	user, err := ctrl.auth.GetProfile(c.Request.Context(), accessToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// UpdateProfile handles PUT /auth/profile
func (ctrl *AuthController) UpdateProfile(c *gin.Context) {
	accessToken, err := middleware.GetAccessToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Access token not found",
			},
		})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	user, err := ctrl.auth.UpdateProfile(c.Request.Context(), accessToken, services.ProfileUpdate{
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		log.Printf("Update profile failed: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

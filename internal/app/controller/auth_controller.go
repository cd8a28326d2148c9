package controller

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/artigianatoshop/artigianato-backend/internal/app/model"
	"github.com/artigianatoshop/artigianato-backend/internal/app/service"
	apperrors "github.com/artigianatoshop/artigianato-backend/internal/errors"
	"github.com/artigianatoshop/artigianato-backend/internal/middleware"
	"github.com/artigianatoshop/artigianato-backend/pkg/util"
)

// TokenRevoker blacklists a token until its natural expiry
type TokenRevoker func(ctx context.Context, token string, expiry time.Duration) error

type AuthController struct {
	authService service.AuthService
	jwtSecret   string
	revoker     TokenRevoker
}

func NewAuthController(authService service.AuthService, jwtSecret string, revoker TokenRevoker) *AuthController {
	return &AuthController{
		authService: authService,
		jwtSecret:   jwtSecret,
		revoker:     revoker,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Surname  string `json:"surname" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=client artisan"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Address string `json:"address"`
}

// Register creates a new account
// POST /api/v1/auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid register request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid registration data")
		return
	}

	user, tokens, err := ctrl.authService.Register(req.Email, req.Password, req.Name, req.Surname, model.UserRole(req.Role))
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			log.Warn("Registration with duplicate email", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "An account with this email already exists")
			return
		}
		if errors.Is(err, service.ErrInvalidRole) {
			log.Warn("Registration with invalid role", map[string]interface{}{
				"role": req.Role,
			})
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid role")
			return
		}
		log.Error("Failed to register user", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.RespondWithParsedError(c, err, "user create")
		return
	}

	log.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	})

	c.JSON(http.StatusCreated, gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

// Login authenticates a user
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid login data")
		return
	}

	user, tokens, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Warn("Login failed", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Invalid email or password")
			return
		}
		log.Error("Failed to log in user", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})

	c.JSON(http.StatusOK, gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

// Logout revokes the current access token
// POST /api/v1/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, _ := middleware.GetUserID(c)

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		apperrors.Unauthorized(c, "")
		return
	}
	token := parts[1]

	claims, err := util.ValidateToken(token, ctrl.jwtSecret)
	if err != nil {
		apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid, "Invalid authentication token")
		return
	}

	if ctrl.revoker != nil {
		// Keep the token blacklisted only until it would expire anyway
		remaining := time.Until(claims.ExpiresAt.Time)
		if remaining > 0 {
			if err := ctrl.revoker(c.Request.Context(), token, remaining); err != nil {
				log.Error("Failed to revoke token", err, map[string]interface{}{
					"user_id": userID,
				})
				apperrors.InternalError(c, "")
				return
			}
		}
	}

	log.Info("User logged out", map[string]interface{}{
		"user_id": userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// Me returns the authenticated user's profile
// GET /api/v1/auth/me
func (ctrl *AuthController) Me(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	user, err := ctrl.authService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
			return
		}
		log.Error("Failed to fetch profile", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}

// UpdateProfile updates the authenticated user's profile
// PUT /api/v1/auth/me
func (ctrl *AuthController) UpdateProfile(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid profile update request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid profile data")
		return
	}

	user, err := ctrl.authService.UpdateProfile(userID, req.Name, req.Surname, req.Address)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
			return
		}
		log.Error("Failed to update profile", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Profile updated successfully", map[string]interface{}{
		"user_id": userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"salon-crm-backend/internal/app/model"
	"salon-crm-backend/internal/app/repository"
	"salon-crm-backend/internal/errors"
	"salon-crm-backend/pkg/util"
)

// Context keys for the authenticated caller
const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
	AdminIDKey   = "admin_id"
	AdminKey     = "admin"
)

type AuthMiddleware struct {
	jwtSecret string
	adminRepo repository.AdminRepository
}

func NewAuthMiddleware(jwtSecret string, adminRepo repository.AdminRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
		adminRepo: adminRepo,
	}
}

// Authenticate validates the JWT bearer token (required)
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "ログインが必要です")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "認証形式が正しくありません")
			c.Abort()
			return
		}

		claims, err := util.ValidateToken(parts[1], m.jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})

			if err == util.ErrExpiredToken {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "ログインの有効期限が切れました")
			} else {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "無効な認証トークンです")
			}
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)

		log.Debug("User authenticated successfully", map[string]interface{}{
			"user_id": claims.UserID,
			"email":   claims.Email,
		})

		c.Next()
	}
}

// RequireAdmin resolves the caller's active admin row and rejects the request
// with 403 when none exists. Must run after Authenticate. The matched admin
// row is stored in the context for handlers that need the caller's admin id.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		userID, ok := GetUserID(c)
		if !ok {
			log.Warn("User information not found in context", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "")
			c.Abort()
			return
		}

		admin, err := m.adminRepo.FindActiveByAuthUserID(userID)
		if err != nil {
			log.Warn("No active admin row for caller", map[string]interface{}{
				"user_id": userID,
				"path":    c.Request.URL.Path,
			})
			errors.Forbidden(c, "")
			c.Abort()
			return
		}

		c.Set(AdminIDKey, admin.ID)
		c.Set(AdminKey, admin)

		log.Debug("Admin check passed", map[string]interface{}{
			"user_id":  userID,
			"admin_id": admin.ID,
			"role":     admin.Role,
		})

		c.Next()
	}
}

// GetUserID extracts the identity's user ID from context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

// GetUserEmail extracts the identity's email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(UserEmailKey)
	if !exists {
		return "", false
	}
	return email.(string), true
}

// GetAdminID extracts the caller's admin ID from context
func GetAdminID(c *gin.Context) (uint, bool) {
	adminID, exists := c.Get(AdminIDKey)
	if !exists {
		return 0, false
	}
	return adminID.(uint), true
}

// GetAdmin extracts the caller's admin row from context
func GetAdmin(c *gin.Context) (*model.Admin, bool) {
	admin, exists := c.Get(AdminKey)
	if !exists {
		return nil, false
	}
	return admin.(*model.Admin), true
}

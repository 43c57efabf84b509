package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nagaraj2331P/aura-hr-solutions/internal/auth"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/logger"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/model"
	apperrors "github.com/nagaraj2331P/aura-hr-solutions/pkg/errors"
)

const (
	contextUser     = "user"
	contextUserType = "userType"
)

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func LoggingMiddleware() gin.HandlerFunc {
	log := logger.Get()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("Request handled")
	}
}

func RecoveryMiddleware() gin.HandlerFunc {
	log := logger.Get()
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("Handler panicked")
				respondError(c, http.StatusInternalServerError, "Internal server error")
				c.Abort()
			}
		}()
		c.Next()
	}
}

// Authenticate verifies the bearer token and loads the acting user onto the
// request context. Deactivated accounts are turned away even with a valid
// token.
func (h *Handler) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.ExtractToken(c.GetHeader("Authorization"))
		if token == "" {
			respondError(c, http.StatusUnauthorized, "Access token is required")
			c.Abort()
			return
		}

		claims, err := h.tokens.Verify(token)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		switch claims.UserType {
		case auth.UserTypeStudent:
			student, err := h.repos.Students.GetByID(c.Request.Context(), userID)
			if err != nil || !student.IsActive {
				h.respondDomainError(c, apperrors.ErrAccountDeactivated)
				c.Abort()
				return
			}
			c.Set(contextUser, student)
		case auth.UserTypeAdmin:
			admin, err := h.repos.Admins.GetByID(c.Request.Context(), userID)
			if err != nil || !admin.IsActive {
				h.respondDomainError(c, apperrors.ErrAccountDeactivated)
				c.Abort()
				return
			}
			c.Set(contextUser, admin)
		default:
			respondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(contextUserType, claims.UserType)
		c.Next()
	}
}

// RequireUserType allows only the listed user types through.
func RequireUserType(userTypes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := currentUserType(c)
		for _, t := range userTypes {
			if current == t {
				c.Next()
				return
			}
		}
		respondError(c, http.StatusForbidden, "Access denied. Insufficient permissions.")
		c.Abort()
	}
}

// RequirePermission gates admin routes on a specific grant.
func RequirePermission(permission model.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, ok := currentAdmin(c)
		if !ok {
			respondError(c, http.StatusForbidden, "Admin access required")
			c.Abort()
			return
		}
		if !admin.HasPermission(permission) {
			respondError(c, http.StatusForbidden, "Permission '"+string(permission)+"' required")
			c.Abort()
			return
		}
		c.Next()
	}
}

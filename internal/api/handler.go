package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nagaraj2331P/aura-hr-solutions/internal/auth"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/config"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/db"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/logger"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/model"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/storage"
	apperrors "github.com/nagaraj2331P/aura-hr-solutions/pkg/errors"
)

// SessionGuard reserves the single work-session slot a student may hold.
// *session.Guard is the production implementation.
type SessionGuard interface {
	Acquire(ctx context.Context, studentID, timesheetID string) error
	Release(ctx context.Context, studentID string) error
	ActiveTimesheetID(ctx context.Context, studentID string) (string, error)
}

type Handler struct {
	repos   *db.Repositories
	storage storage.Storage
	guard   SessionGuard
	tokens  *auth.TokenManager
	cfg     *config.Config
	log     zerolog.Logger
}

func NewHandler(
	repos *db.Repositories,
	store storage.Storage,
	guard SessionGuard,
	tokens *auth.TokenManager,
	cfg *config.Config,
) *Handler {
	return &Handler{
		repos:   repos,
		storage: store,
		guard:   guard,
		tokens:  tokens,
		cfg:     cfg,
		log:     logger.Get(),
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.cfg.App.Name,
		"version": h.cfg.App.Version,
	})
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondDomainError maps the error taxonomy onto HTTP statuses: illegal
// transitions and validation failures are the caller's fault, a missing
// document is 404, credential and permission failures are 401/403,
// everything else is a server error.
func (h *Handler) respondDomainError(c *gin.Context, err error) {
	var ise apperrors.InvalidStateError
	var ve apperrors.ValidationError
	switch {
	case errors.As(err, &ise):
		respondError(c, http.StatusBadRequest, ise.Error())
	case errors.As(err, &ve):
		respondError(c, http.StatusBadRequest, ve.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		respondError(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, apperrors.ErrAccountDeactivated):
		respondError(c, http.StatusUnauthorized, "Account is deactivated")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, "Access denied. Insufficient permissions.")
	case errors.Is(err, apperrors.ErrAssignmentForbidden):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

func parseObjectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}

func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

// currentStudent returns the authenticated student, set by Authenticate.
func currentStudent(c *gin.Context) (*model.Student, bool) {
	v, ok := c.Get(contextUser)
	if !ok {
		return nil, false
	}
	student, ok := v.(*model.Student)
	return student, ok
}

func currentAdmin(c *gin.Context) (*model.Admin, bool) {
	v, ok := c.Get(contextUser)
	if !ok {
		return nil, false
	}
	admin, ok := v.(*model.Admin)
	return admin, ok
}

func currentUserType(c *gin.Context) string {
	return c.GetString(contextUserType)
}

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nagaraj2331P/aura-hr-solutions/internal/auth"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/model"
	apperrors "github.com/nagaraj2331P/aura-hr-solutions/pkg/errors"
)

func (h *Handler) RegisterStudent(c *gin.Context) {
	var req model.StudentRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password, h.cfg.Auth.BcryptCost)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	now := time.Now()
	expertise := req.Expertise
	if expertise == "" {
		expertise = "Beginner"
	}
	student := &model.Student{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  hash,
		Skills:    req.Skills,
		Expertise: expertise,
		Bio:       req.Bio,
		Education: req.Education,
		IsActive:  true,
		JoinedAt:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.repos.Students.Create(c.Request.Context(), student); err != nil {
		if errors.Is(err, apperrors.ErrEmailTaken) {
			respondError(c, http.StatusBadRequest, "Student with this email already exists")
			return
		}
		h.respondDomainError(c, err)
		return
	}

	token, err := h.tokens.Issue(student.ID.Hex(), student.Email, student.Name, auth.UserTypeStudent, now)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	respondMessage(c, http.StatusCreated, "Student registered successfully", model.TokenResponse{
		AccessToken: token,
		User: model.UserInfo{
			ID:       student.ID.Hex(),
			Name:     student.Name,
			Email:    student.Email,
			UserType: auth.UserTypeStudent,
		},
	})
}

// RegisterAdmin creates admin accounts; only super admins may call it.
func (h *Handler) RegisterAdmin(c *gin.Context) {
	actor, ok := currentAdmin(c)
	if !ok || actor.Role != model.RoleSuperAdmin {
		h.respondDomainError(c, apperrors.ErrPermissionDenied)
		return
	}

	var req model.AdminRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password, h.cfg.Auth.BcryptCost)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	role := model.AdminRole(req.Role)
	if role == "" {
		role = model.RoleAdmin
	}
	department := req.Department
	if department == "" {
		department = "HR"
	}

	now := time.Now()
	admin := &model.Admin{
		Name:        req.Name,
		Email:       req.Email,
		Password:    hash,
		Role:        role,
		Department:  department,
		Permissions: model.DefaultPermissions(role),
		IsActive:    true,
		CreatedBy:   &actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.repos.Admins.Create(c.Request.Context(), admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailTaken) {
			respondError(c, http.StatusBadRequest, "Admin with this email already exists")
			return
		}
		h.respondDomainError(c, err)
		return
	}

	token, err := h.tokens.Issue(admin.ID.Hex(), admin.Email, admin.Name, auth.UserTypeAdmin, now)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	respondMessage(c, http.StatusCreated, "Admin registered successfully", model.TokenResponse{
		AccessToken: token,
		User: model.UserInfo{
			ID:       admin.ID.Hex(),
			Name:     admin.Name,
			Email:    admin.Email,
			UserType: auth.UserTypeAdmin,
		},
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	now := time.Now()

	var (
		id, name, passwordHash string
		isActive               bool
	)
	var (
		student *model.Student
		admin   *model.Admin
	)
	switch req.UserType {
	case auth.UserTypeStudent:
		s, err := h.repos.Students.GetByEmail(ctx, req.Email)
		if err != nil {
			h.respondDomainError(c, apperrors.ErrInvalidCredentials)
			return
		}
		student = s
		id, name, passwordHash, isActive = s.ID.Hex(), s.Name, s.Password, s.IsActive
	case auth.UserTypeAdmin:
		a, err := h.repos.Admins.GetByEmail(ctx, req.Email)
		if err != nil {
			h.respondDomainError(c, apperrors.ErrInvalidCredentials)
			return
		}
		admin = a
		id, name, passwordHash, isActive = a.ID.Hex(), a.Name, a.Password, a.IsActive
	}

	if !isActive {
		h.respondDomainError(c, apperrors.ErrAccountDeactivated)
		return
	}
	if !auth.CheckPassword(passwordHash, req.Password) {
		h.respondDomainError(c, apperrors.ErrInvalidCredentials)
		return
	}

	// The login timestamp is recorded only once the credentials check out.
	switch {
	case student != nil:
		student.LastLogin = &now
		if err := h.repos.Students.Update(ctx, student); err != nil {
			h.log.Error().Err(err).Msg("Failed to record student login time")
		}
		h.openWorkSession(ctx, student, now, c.ClientIP(), c.Request.UserAgent())
	case admin != nil:
		admin.LastLogin = &now
		if err := h.repos.Admins.Update(ctx, admin); err != nil {
			h.log.Error().Err(err).Msg("Failed to record admin login time")
		}
	}

	token, err := h.tokens.Issue(id, req.Email, name, req.UserType, now)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Login successful", model.TokenResponse{
		AccessToken: token,
		User: model.UserInfo{
			ID:       id,
			Name:     name,
			Email:    req.Email,
			UserType: req.UserType,
		},
	})
}

// openWorkSession starts a timesheet for the student unless one is already
// active. The Redis guard screens out concurrent double logins before the
// database check; a held slot or an open timesheet simply means the existing
// session continues.
func (h *Handler) openWorkSession(ctx context.Context, student *model.Student, now time.Time, ip, userAgent string) {
	timesheet := model.NewTimesheet(student.ID, nil, now, ip, userAgent)
	timesheet.ID = primitive.NewObjectID()

	// The Redis slot is taken before anything is written so two concurrent
	// logins cannot both pass the database check.
	if err := h.guard.Acquire(ctx, student.ID.Hex(), timesheet.ID.Hex()); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateSession) {
			held, _ := h.guard.ActiveTimesheetID(ctx, student.ID.Hex())
			h.log.Warn().
				Str("student", student.ID.Hex()).
				Str("timesheet", held).
				Msg("Session slot already held")
			return
		}
		h.log.Error().Err(err).Msg("Failed to acquire session slot")
		return
	}

	if _, err := h.repos.Timesheets.FindActive(ctx, student.ID); err == nil {
		// An open timesheet outlived its slot (expired key); keep it going.
		return
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		h.log.Error().Err(err).Msg("Failed to look up active timesheet")
		if err := h.guard.Release(ctx, student.ID.Hex()); err != nil {
			h.log.Error().Err(err).Msg("Failed to release session slot")
		}
		return
	}

	if err := h.repos.Timesheets.Create(ctx, timesheet); err != nil {
		h.log.Error().Err(err).Msg("Failed to open timesheet")
		if err := h.guard.Release(ctx, student.ID.Hex()); err != nil {
			h.log.Error().Err(err).Msg("Failed to release session slot")
		}
		return
	}
}

func (h *Handler) Logout(c *gin.Context) {
	if currentUserType(c) == auth.UserTypeStudent {
		student, _ := currentStudent(c)
		ctx := c.Request.Context()

		timesheet, err := h.repos.Timesheets.FindActive(ctx, student.ID)
		switch {
		case err == nil:
			if err := timesheet.Logout(time.Now()); err != nil {
				h.respondDomainError(c, err)
				return
			}
			if err := h.repos.Timesheets.Update(ctx, timesheet); err != nil {
				h.respondDomainError(c, err)
				return
			}
		case !errors.Is(err, apperrors.ErrNotFound):
			h.respondDomainError(c, err)
			return
		}

		if err := h.guard.Release(ctx, student.ID.Hex()); err != nil {
			h.log.Error().Err(err).Msg("Failed to release session slot")
		}
	}

	respondMessage(c, http.StatusOK, "Logout successful", nil)
}

func (h *Handler) Me(c *gin.Context) {
	ctx := c.Request.Context()

	if currentUserType(c) == auth.UserTypeStudent {
		student, _ := currentStudent(c)

		data := gin.H{
			"user":     student,
			"userType": auth.UserTypeStudent,
		}
		if timesheet, err := h.repos.Timesheets.FindActive(ctx, student.ID); err == nil {
			data["activeTimesheet"] = timesheet
		}
		respondOK(c, data)
		return
	}

	admin, _ := currentAdmin(c)
	respondOK(c, gin.H{"user": admin, "userType": auth.UserTypeAdmin})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	ctx := c.Request.Context()

	if currentUserType(c) == auth.UserTypeStudent {
		var req struct {
			Name       string             `json:"name"`
			Phone      string             `json:"phone"`
			Skills     []string           `json:"skills"`
			Expertise  string             `json:"expertise"`
			Bio        string             `json:"bio"`
			Education  *model.Education   `json:"education"`
			Experience []model.Experience `json:"experience"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Validation error: "+err.Error())
			return
		}

		student, _ := currentStudent(c)
		if req.Name != "" {
			student.Name = req.Name
		}
		if req.Phone != "" {
			student.Phone = req.Phone
		}
		if req.Skills != nil {
			student.Skills = req.Skills
		}
		if req.Expertise != "" {
			student.Expertise = req.Expertise
		}
		if req.Bio != "" {
			student.Bio = req.Bio
		}
		if req.Education != nil {
			student.Education = *req.Education
		}
		if req.Experience != nil {
			student.Experience = req.Experience
		}

		if err := h.repos.Students.Update(ctx, student); err != nil {
			h.respondDomainError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "Profile updated successfully", student)
		return
	}

	var req struct {
		Name       string `json:"name"`
		Department string `json:"department"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	admin, _ := currentAdmin(c)
	if req.Name != "" {
		admin.Name = req.Name
	}
	if req.Department != "" {
		admin.Department = req.Department
	}

	if err := h.repos.Admins.Update(ctx, admin); err != nil {
		h.respondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Profile updated successfully", admin)
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Current password and new password are required")
		return
	}

	ctx := c.Request.Context()
	hash, err := auth.HashPassword(req.NewPassword, h.cfg.Auth.BcryptCost)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	if currentUserType(c) == auth.UserTypeStudent {
		student, _ := currentStudent(c)
		if !auth.CheckPassword(student.Password, req.CurrentPassword) {
			respondError(c, http.StatusBadRequest, "Current password is incorrect")
			return
		}
		student.Password = hash
		if err := h.repos.Students.Update(ctx, student); err != nil {
			h.respondDomainError(c, err)
			return
		}
	} else {
		admin, _ := currentAdmin(c)
		if !auth.CheckPassword(admin.Password, req.CurrentPassword) {
			respondError(c, http.StatusBadRequest, "Current password is incorrect")
			return
		}
		admin.Password = hash
		if err := h.repos.Admins.Update(ctx, admin); err != nil {
			h.respondDomainError(c, err)
			return
		}
	}

	respondMessage(c, http.StatusOK, "Password changed successfully", nil)
}

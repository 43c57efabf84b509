package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nagaraj2331P/aura-hr-solutions/internal/db"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/model"
)

func (h *Handler) ListProjects(c *gin.Context) {
	page, limit := parsePagination(c)

	filter := db.ProjectFilter{
		Status:     model.ProjectStatus(c.DefaultQuery("status", string(model.ProjectStatusPublished))),
		Difficulty: c.Query("difficulty"),
		Category:   c.Query("category"),
		Page:       page,
		Limit:      limit,
	}
	if skills := c.Query("skills"); skills != "" {
		filter.Skills = strings.Split(skills, ",")
	}

	projects, total, err := h.repos.Projects.List(c.Request.Context(), filter)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	respondOK(c, gin.H{
		"projects":   projects,
		"pagination": model.NewPagination(page, limit, total),
	})
}

func (h *Handler) GetProject(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	project, err := h.repos.Projects.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	days, hasDeadline := project.DaysUntilDeadline(time.Now())
	data := gin.H{"project": project}
	if hasDeadline {
		data["daysUntilDeadline"] = days
	}
	respondOK(c, data)
}

func (h *Handler) CreateProject(c *gin.Context) {
	var req model.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	validCategory := false
	for _, cat := range model.ProjectCategories {
		if cat == req.Category {
			validCategory = true
			break
		}
	}
	if !validCategory {
		respondError(c, http.StatusBadRequest, "Invalid project category")
		return
	}

	admin, _ := currentAdmin(c)
	now := time.Now()
	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}
	maxStudents := req.MaxStudents
	if maxStudents == 0 {
		maxStudents = 1
	}

	project := &model.Project{
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		SkillsRequired: req.SkillsRequired,
		Difficulty:     req.Difficulty,
		EstimatedHours: req.EstimatedHours,
		HourlyRate:     req.HourlyRate,
		Deadline:       req.Deadline,
		Status:         model.ProjectStatusDraft,
		Priority:       priority,
		MaxStudents:    maxStudents,
		Requirements:   req.Requirements,
		Deliverables:   req.Deliverables,
		Tags:           req.Tags,
		CreatedBy:      admin.ID,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	project.RecalculateBudget()

	if err := h.repos.Projects.Create(c.Request.Context(), project); err != nil {
		h.respondDomainError(c, err)
		return
	}

	respondMessage(c, http.StatusCreated, "Project created successfully", project)
}

func (h *Handler) UpdateProject(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Title          string              `json:"title"`
		Description    string              `json:"description"`
		EstimatedHours *float64            `json:"estimatedHours"`
		HourlyRate     *float64            `json:"hourlyRate"`
		Deadline       *time.Time          `json:"deadline"`
		Status         model.ProjectStatus `json:"status"`
		Priority       string              `json:"priority"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	project, err := h.repos.Projects.GetByID(ctx, id)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	if req.Title != "" {
		project.Title = req.Title
	}
	if req.Description != "" {
		project.Description = req.Description
	}
	if req.EstimatedHours != nil {
		project.EstimatedHours = *req.EstimatedHours
	}
	if req.HourlyRate != nil {
		project.HourlyRate = *req.HourlyRate
	}
	if req.Deadline != nil {
		project.Deadline = req.Deadline
	}
	if req.Status != "" {
		project.Status = req.Status
		if req.Status == model.ProjectStatusCompleted {
			now := time.Now()
			project.CompletedAt = &now
		}
	}
	if req.Priority != "" {
		project.Priority = req.Priority
	}
	project.RecalculateBudget()

	admin, _ := currentAdmin(c)
	project.UpdatedBy = &admin.ID

	if err := h.repos.Projects.Update(ctx, project); err != nil {
		h.respondDomainError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Project updated successfully", project)
}

// AssignStudent attaches a student to a project under the assignment rules.
func (h *Handler) AssignStudent(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var req model.AssignStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	studentID, err := primitive.ObjectIDFromHex(req.StudentID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid student id")
		return
	}

	ctx := c.Request.Context()
	project, err := h.repos.Projects.GetByID(ctx, id)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}
	if _, err := h.repos.Students.GetByID(ctx, studentID); err != nil {
		h.respondDomainError(c, err)
		return
	}

	admin, _ := currentAdmin(c)
	if err := project.AssignStudent(studentID, admin.ID, time.Now()); err != nil {
		h.respondDomainError(c, err)
		return
	}

	if err := h.repos.Projects.Update(ctx, project); err != nil {
		h.respondDomainError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Student assigned successfully", project)
}

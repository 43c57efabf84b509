package api

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nagaraj2331P/aura-hr-solutions/internal/db"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/model"
)

// StudentDashboard aggregates the student's projects, recent activity, and
// approved totals.
func (h *Handler) StudentDashboard(c *gin.Context) {
	student, _ := currentStudent(c)
	ctx := c.Request.Context()

	projects, err := h.repos.Projects.ListAssignedTo(ctx, student.ID)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	submissions, err := h.repos.Submissions.RecentByStudent(ctx, student.ID, 5)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	timesheets, err := h.repos.Timesheets.RecentByStudent(ctx, student.ID, 5)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	totalHours, totalEarnings, err := h.repos.Timesheets.ApprovedTotals(ctx, student.ID)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	var active, completed int64
	for _, p := range projects {
		switch p.Status {
		case model.ProjectStatusAssigned, model.ProjectStatusInProgress:
			active++
		case model.ProjectStatusCompleted:
			completed++
		}
	}

	recentProjects := projects
	if len(recentProjects) > 5 {
		recentProjects = recentProjects[:5]
	}

	respondOK(c, gin.H{
		"stats": model.DashboardStats{
			TotalProjects:     int64(len(projects)),
			ActiveProjects:    active,
			CompletedProjects: completed,
			TotalHours:        totalHours,
			TotalEarnings:     totalEarnings,
		},
		"projects":    recentProjects,
		"submissions": submissions,
		"timesheets":  timesheets,
	})
}

// AvailableProjects lists published projects a student can browse, with the
// same filters as the admin listing.
func (h *Handler) AvailableProjects(c *gin.Context) {
	page, limit := parsePagination(c)

	filter := db.ProjectFilter{
		Status:     model.ProjectStatusPublished,
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

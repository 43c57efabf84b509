package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nagaraj2331P/aura-hr-solutions/internal/db"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/model"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/report"
)

// AdminDashboard returns headline counts, recent activity, and the project
// status distribution.
func (h *Handler) AdminDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	totalStudents, err := h.repos.Students.CountActive(ctx)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}
	totalProjects, err := h.repos.Projects.CountActive(ctx)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}
	pendingSubmissions, err := h.repos.Submissions.CountByStatus(ctx, model.SubmissionStatusSubmitted)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}
	pendingTimesheets, err := h.repos.Timesheets.CountByStatus(ctx, model.TimesheetStatusCompleted)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	recentSubmissions, _, err := h.repos.Submissions.List(ctx, db.SubmissionFilter{
		Status: model.SubmissionStatusSubmitted,
		Page:   1,
		Limit:  5,
	})
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	recentProjects, _, err := h.repos.Projects.List(ctx, db.ProjectFilter{Page: 1, Limit: 5})
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	projectStats, err := h.repos.Projects.StatusDistribution(ctx)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	respondOK(c, gin.H{
		"stats": model.AdminDashboardStats{
			TotalStudents:      totalStudents,
			TotalProjects:      totalProjects,
			PendingSubmissions: pendingSubmissions,
			PendingTimesheets:  pendingTimesheets,
		},
		"recentSubmissions": recentSubmissions,
		"recentProjects":    recentProjects,
		"projectStats":      projectStats,
	})
}

func (h *Handler) ListStudents(c *gin.Context) {
	page, limit := parsePagination(c)

	filter := db.StudentFilter{
		Search:    c.Query("search"),
		Expertise: c.Query("expertise"),
		Page:      page,
		Limit:     limit,
	}
	if skills := c.Query("skills"); skills != "" {
		filter.Skills = strings.Split(skills, ",")
	}

	students, total, err := h.repos.Students.List(c.Request.Context(), filter)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	respondOK(c, gin.H{
		"students":   students,
		"pagination": model.NewPagination(page, limit, total),
	})
}

// TimesheetReport exports approved timesheets for a date range as XLSX.
// The range defaults to the last 30 days.
func (h *Handler) TimesheetReport(c *gin.Context) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if v := c.Query("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			from = t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			to = t
		}
	}

	timesheets, err := h.repos.Timesheets.ListApproved(c.Request.Context(), from, to)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	rows := make([]report.TimesheetRow, 0, len(timesheets))
	for _, ts := range timesheets {
		row := report.TimesheetRow{StudentID: ts.Student.Hex(), Timesheet: ts}
		if ts.Project != nil {
			row.ProjectID = ts.Project.Hex()
		}
		rows = append(rows, row)
	}

	buf, err := report.BuildTimesheetReport(rows)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	filename := fmt.Sprintf("timesheets-%s-%s.xlsx", from.Format("20060102"), to.Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nagaraj2331P/aura-hr-solutions/internal/auth"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/db"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/model"
	apperrors "github.com/nagaraj2331P/aura-hr-solutions/pkg/errors"
)

func (h *Handler) ListTimesheets(c *gin.Context) {
	page, limit := parsePagination(c)

	filter := db.TimesheetFilter{
		Status: model.TimesheetStatus(c.Query("status")),
		Page:   page,
		Limit:  limit,
	}
	if currentUserType(c) == auth.UserTypeStudent {
		student, _ := currentStudent(c)
		filter.Student = &student.ID
	}
	if v := c.Query("startDate"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.StartDate = &t
		}
	}
	if v := c.Query("endDate"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.EndDate = &t
		}
	}

	timesheets, total, err := h.repos.Timesheets.List(c.Request.Context(), filter)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	respondOK(c, gin.H{
		"timesheets": timesheets,
		"pagination": model.NewPagination(page, limit, total),
	})
}

func (h *Handler) StartBreak(c *gin.Context) {
	h.runOwnTimesheetTransition(c, func(timesheet *model.Timesheet, now time.Time) error {
		return timesheet.StartBreak(now)
	}, "Break started")
}

func (h *Handler) EndBreak(c *gin.Context) {
	h.runOwnTimesheetTransition(c, func(timesheet *model.Timesheet, now time.Time) error {
		return timesheet.EndBreak(now)
	}, "Break ended")
}

func (h *Handler) runOwnTimesheetTransition(c *gin.Context, transition func(*model.Timesheet, time.Time) error, message string) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	timesheet, err := h.repos.Timesheets.GetByID(ctx, id)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}
	student, _ := currentStudent(c)
	if timesheet.Student != student.ID {
		respondError(c, http.StatusForbidden, "Access denied. You can only access your own resources.")
		return
	}

	if err := transition(timesheet, time.Now()); err != nil {
		h.respondDomainError(c, err)
		return
	}

	if err := h.repos.Timesheets.Update(ctx, timesheet); err != nil {
		h.respondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, message, timesheet)
}

// ApproveTimesheet accepts a completed session, derives its earnings from
// the project rate, and rolls the totals into the student's aggregates.
func (h *Handler) ApproveTimesheet(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	timesheet, err := h.repos.Timesheets.GetByID(ctx, id)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	var hourlyRate float64
	if timesheet.Project != nil {
		project, err := h.repos.Projects.GetByID(ctx, *timesheet.Project)
		if err != nil {
			refErr := apperrors.MissingReferenceError{Entity: "timesheet", Reference: "project"}
			h.log.Warn().Err(err).Str("timesheet", id.Hex()).Msg(refErr.Error())
		} else {
			hourlyRate = project.HourlyRate
		}
	}

	admin, _ := currentAdmin(c)
	if err := timesheet.Approve(admin.ID, hourlyRate, time.Now()); err != nil {
		h.respondDomainError(c, err)
		return
	}

	if err := h.repos.Timesheets.Update(ctx, timesheet); err != nil {
		h.respondDomainError(c, err)
		return
	}

	if student, err := h.repos.Students.GetByID(ctx, timesheet.Student); err == nil {
		student.RecordApprovedTimesheet(timesheet.TotalHours, timesheet.Earnings)
		if err := h.repos.Students.Update(ctx, student); err != nil {
			h.log.Error().Err(err).Str("student", student.ID.Hex()).Msg("Failed to update student aggregates")
		}
	}

	respondMessage(c, http.StatusOK, "Timesheet approved", timesheet)
}

func (h *Handler) RejectTimesheet(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var req model.RejectTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	timesheet, err := h.repos.Timesheets.GetByID(ctx, id)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	admin, _ := currentAdmin(c)
	if err := timesheet.Reject(admin.ID, req.Reason, time.Now()); err != nil {
		h.respondDomainError(c, err)
		return
	}

	if err := h.repos.Timesheets.Update(ctx, timesheet); err != nil {
		h.respondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Timesheet rejected", timesheet)
}

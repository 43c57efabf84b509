package api

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nagaraj2331P/aura-hr-solutions/internal/auth"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/db"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/model"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/storage"
	apperrors "github.com/nagaraj2331P/aura-hr-solutions/pkg/errors"
)

func (h *Handler) ListSubmissions(c *gin.Context) {
	page, limit := parsePagination(c)

	filter := db.SubmissionFilter{
		Status: model.SubmissionStatus(c.Query("status")),
		Page:   page,
		Limit:  limit,
	}
	// Students only ever see their own submissions.
	if currentUserType(c) == auth.UserTypeStudent {
		student, _ := currentStudent(c)
		filter.Student = &student.ID
	}

	submissions, total, err := h.repos.Submissions.List(c.Request.Context(), filter)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	respondOK(c, gin.H{
		"submissions": submissions,
		"pagination":  model.NewPagination(page, limit, total),
	})
}

func (h *Handler) GetSubmission(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	submission, err := h.repos.Submissions.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}
	if !h.canViewSubmission(c, submission) {
		respondError(c, http.StatusForbidden, "Access denied. You can only access your own resources.")
		return
	}

	respondOK(c, gin.H{
		"submission":     submission,
		"currentVersion": submission.CurrentVersion(),
	})
}

func (h *Handler) canViewSubmission(c *gin.Context, submission *model.Submission) bool {
	if currentUserType(c) == auth.UserTypeAdmin {
		return true
	}
	student, ok := currentStudent(c)
	return ok && student.ID == submission.Student
}

// CreateSubmission opens a draft for an assigned project.
func (h *Handler) CreateSubmission(c *gin.Context) {
	var req model.CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid project id")
		return
	}

	ctx := c.Request.Context()
	project, err := h.repos.Projects.GetByID(ctx, projectID)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	student, _ := currentStudent(c)
	if !project.IsAssignedTo(student.ID) {
		respondError(c, http.StatusForbidden, "You are not assigned to this project")
		return
	}

	submission := model.NewSubmission(project.ID, student.ID, req.Title, req.Description, req.HoursWorked, time.Now())
	if err := h.repos.Submissions.Create(ctx, submission); err != nil {
		h.respondDomainError(c, err)
		return
	}

	respondMessage(c, http.StatusCreated, "Submission created successfully", submission)
}

// UploadSubmissionFiles stores multipart files in object storage and embeds
// their metadata on the draft.
func (h *Handler) UploadSubmissionFiles(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	submission, err := h.repos.Submissions.GetByID(ctx, id)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}
	student, _ := currentStudent(c)
	if submission.Student != student.ID {
		respondError(c, http.StatusForbidden, "Access denied. You can only access your own resources.")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, http.StatusBadRequest, "No files uploaded")
		return
	}
	files := form.File["submissionFiles"]
	if len(files) == 0 {
		respondError(c, http.StatusBadRequest, "No files uploaded")
		return
	}
	if len(files) > h.cfg.Uploads.MaxFiles {
		respondError(c, http.StatusBadRequest, "Too many files")
		return
	}

	now := time.Now()
	for _, header := range files {
		if header.Size > h.cfg.Uploads.MaxFileSize {
			respondError(c, http.StatusBadRequest, apperrors.ErrFileTooLarge.Error())
			return
		}
		if err := storage.ValidateExtension(storage.CategorySubmission, header.Filename); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		src, err := header.Open()
		if err != nil {
			h.respondDomainError(c, err)
			return
		}

		key := storage.NewKey(storage.CategorySubmission, header.Filename)
		contentType := header.Header.Get("Content-Type")
		if err := h.storage.Upload(ctx, key, src, contentType); err != nil {
			src.Close()
			h.respondDomainError(c, err)
			return
		}
		src.Close()

		submission.AddFile(model.FileInfo{
			Filename:     key,
			OriginalName: header.Filename,
			Path:         key,
			Size:         header.Size,
			MimeType:     contentType,
			UploadedAt:   now,
		})
	}

	if err := h.repos.Submissions.Update(ctx, submission); err != nil {
		h.respondDomainError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Files uploaded successfully", submission)
}

// SubmitSubmission runs the draft -> submitted transition with the project
// deadline pre-resolved.
func (h *Handler) SubmitSubmission(c *gin.Context) {
	h.runStudentTransition(c, func(submission *model.Submission, terms model.ProjectTerms, now time.Time) error {
		return submission.Submit(now, terms)
	}, "Submission submitted successfully")
}

func (h *Handler) ResubmitSubmission(c *gin.Context) {
	h.runStudentTransition(c, func(submission *model.Submission, terms model.ProjectTerms, now time.Time) error {
		return submission.Resubmit(now)
	}, "Submission resubmitted successfully")
}

func (h *Handler) runStudentTransition(c *gin.Context, transition func(*model.Submission, model.ProjectTerms, time.Time) error, message string) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	submission, err := h.repos.Submissions.GetByID(ctx, id)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}
	student, _ := currentStudent(c)
	if submission.Student != student.ID {
		respondError(c, http.StatusForbidden, "Access denied. You can only access your own resources.")
		return
	}

	if err := transition(submission, h.resolveTerms(c, submission.Project), time.Now()); err != nil {
		h.respondDomainError(c, err)
		return
	}

	if err := h.repos.Submissions.Update(ctx, submission); err != nil {
		h.respondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, message, submission)
}

// resolveTerms looks the project up ahead of a transition. An unresolvable
// project degrades to zero terms so the transition can still run; the
// derived computation is simply skipped.
func (h *Handler) resolveTerms(c *gin.Context, projectID primitive.ObjectID) model.ProjectTerms {
	project, err := h.repos.Projects.GetByID(c.Request.Context(), projectID)
	if err != nil {
		refErr := apperrors.MissingReferenceError{Entity: "submission", Reference: "project"}
		h.log.Warn().Err(err).Str("project", projectID.Hex()).Msg(refErr.Error())
		return model.ProjectTerms{}
	}
	return project.Terms()
}

func (h *Handler) ApproveSubmission(c *gin.Context) {
	var req model.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	h.runReviewTransition(c, func(submission *model.Submission, reviewer primitive.ObjectID, terms model.ProjectTerms, now time.Time) error {
		return submission.Approve(reviewer, req.Feedback, req.Grade, terms, now)
	}, "Submission approved")
}

func (h *Handler) RejectSubmission(c *gin.Context) {
	var req model.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	if req.Feedback == "" {
		respondError(c, http.StatusBadRequest, "Feedback is required when rejecting")
		return
	}

	h.runReviewTransition(c, func(submission *model.Submission, reviewer primitive.ObjectID, terms model.ProjectTerms, now time.Time) error {
		return submission.Reject(reviewer, req.Feedback, now)
	}, "Submission rejected")
}

func (h *Handler) RequestRevision(c *gin.Context) {
	var req model.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	if req.Feedback == "" {
		respondError(c, http.StatusBadRequest, "Feedback is required when requesting a revision")
		return
	}

	h.runReviewTransition(c, func(submission *model.Submission, reviewer primitive.ObjectID, terms model.ProjectTerms, now time.Time) error {
		return submission.RequestRevision(reviewer, req.Feedback, now)
	}, "Revision requested")
}

func (h *Handler) runReviewTransition(c *gin.Context, transition func(*model.Submission, primitive.ObjectID, model.ProjectTerms, time.Time) error, message string) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	submission, err := h.repos.Submissions.GetByID(ctx, id)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	admin, _ := currentAdmin(c)
	if err := transition(submission, admin.ID, h.resolveTerms(c, submission.Project), time.Now()); err != nil {
		h.respondDomainError(c, err)
		return
	}

	if err := h.repos.Submissions.Update(ctx, submission); err != nil {
		h.respondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, message, submission)
}

// DownloadFile streams a stored object back to an authenticated caller.
func (h *Handler) DownloadFile(c *gin.Context) {
	key := c.Param("category") + "/" + c.Param("filename")

	body, err := h.storage.Download(c.Request.Context(), key)
	if err != nil {
		respondError(c, http.StatusNotFound, "File not found")
		return
	}
	defer body.Close()

	c.Header("Content-Disposition", `attachment; filename="`+c.Param("filename")+`"`)
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, body); err != nil {
		h.log.Error().Err(err).Str("key", key).Msg("Failed to stream file")
	}
}

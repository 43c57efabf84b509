package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nagaraj2331P/aura-hr-solutions/internal/model"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/storage"
	apperrors "github.com/nagaraj2331P/aura-hr-solutions/pkg/errors"
)

// UploadResume stores the student's resume in object storage and records its
// location on the profile.
func (h *Handler) UploadResume(c *gin.Context) {
	h.uploadProfileFile(c, "resume", storage.CategoryResume, "Resume uploaded successfully",
		func(student *model.Student, key string) { student.ResumeLink = key })
}

// UploadProfilePic replaces the student's profile picture.
func (h *Handler) UploadProfilePic(c *gin.Context) {
	h.uploadProfileFile(c, "profilePic", storage.CategoryProfilePic, "Profile picture uploaded successfully",
		func(student *model.Student, key string) { student.ProfilePic = key })
}

func (h *Handler) uploadProfileFile(
	c *gin.Context,
	field string,
	category storage.Category,
	message string,
	record func(*model.Student, string),
) {
	header, err := c.FormFile(field)
	if err != nil {
		respondError(c, http.StatusBadRequest, "No file uploaded")
		return
	}
	if header.Size > h.cfg.Uploads.MaxFileSize {
		respondError(c, http.StatusBadRequest, apperrors.ErrFileTooLarge.Error())
		return
	}
	if err := storage.ValidateExtension(category, header.Filename); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	src, err := header.Open()
	if err != nil {
		h.respondDomainError(c, err)
		return
	}
	defer src.Close()

	ctx := c.Request.Context()
	key := storage.NewKey(category, header.Filename)
	contentType := header.Header.Get("Content-Type")
	if err := h.storage.Upload(ctx, key, src, contentType); err != nil {
		h.respondDomainError(c, err)
		return
	}

	student, _ := currentStudent(c)
	record(student, key)
	if err := h.repos.Students.Update(ctx, student); err != nil {
		h.respondDomainError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, message, model.FileInfo{
		Filename:     key,
		OriginalName: header.Filename,
		Path:         key,
		Size:         header.Size,
		MimeType:     contentType,
		UploadedAt:   time.Now(),
	})
}

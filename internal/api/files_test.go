package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nagaraj2331P/aura-hr-solutions/internal/auth"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/config"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/db"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/model"
	apperrors "github.com/nagaraj2331P/aura-hr-solutions/pkg/errors"
)

type stubStorage struct {
	keys []string
}

func (s *stubStorage) Download(_ context.Context, _ string) (io.ReadCloser, error) {
	return nil, apperrors.ErrNotFound
}

func (s *stubStorage) Upload(_ context.Context, key string, data io.Reader, _ string) error {
	if _, err := io.Copy(io.Discard, data); err != nil {
		return err
	}
	s.keys = append(s.keys, key)
	return nil
}

func (s *stubStorage) Delete(_ context.Context, _ string) error { return nil }

func (s *stubStorage) Exists(_ context.Context, _ string) (bool, error) { return false, nil }

type stubStudentRepo struct {
	db.StudentRepository
	updated *model.Student
}

func (s *stubStudentRepo) Update(_ context.Context, student *model.Student) error {
	s.updated = student
	return nil
}

func newUploadContext(t *testing.T, student *model.Student, target, field, filename string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = io.Copy(part, strings.NewReader("file contents"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, target, &buf)
	c.Request.Header.Set("Content-Type", mw.FormDataContentType())
	c.Set(contextUser, student)
	c.Set(contextUserType, auth.UserTypeStudent)
	return c, w
}

func newUploadHandler(students *stubStudentRepo, store *stubStorage) *Handler {
	cfg := &config.Config{}
	cfg.Uploads.MaxFileSize = 1 << 20
	return NewHandler(&db.Repositories{Students: students}, store, nil, nil, cfg)
}

func TestUploadResume(t *testing.T) {
	student := &model.Student{ID: primitive.NewObjectID(), Name: "Asha", IsActive: true}
	students := &stubStudentRepo{}
	store := &stubStorage{}
	h := newUploadHandler(students, store)

	c, w := newUploadContext(t, student, "/api/v1/files/upload/resume", "resume", "cv.pdf")
	h.UploadResume(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Resume uploaded successfully", decodeBody(t, w)["message"])
	require.Len(t, store.keys, 1)
	assert.True(t, strings.HasPrefix(student.ResumeLink, "resumes/"))
	assert.Equal(t, store.keys[0], student.ResumeLink)
	require.NotNil(t, students.updated)
}

func TestUploadProfilePic(t *testing.T) {
	student := &model.Student{ID: primitive.NewObjectID(), Name: "Asha", IsActive: true}
	students := &stubStudentRepo{}
	store := &stubStorage{}
	h := newUploadHandler(students, store)

	c, w := newUploadContext(t, student, "/api/v1/files/upload/profile-pic", "profilePic", "me.png")
	h.UploadProfilePic(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Profile picture uploaded successfully", decodeBody(t, w)["message"])
	assert.True(t, strings.HasPrefix(student.ProfilePic, "profiles/"))
	require.NotNil(t, students.updated)
}

func TestUploadResumeRejectsWrongType(t *testing.T) {
	student := &model.Student{ID: primitive.NewObjectID(), Name: "Asha", IsActive: true}
	students := &stubStudentRepo{}
	store := &stubStorage{}
	h := newUploadHandler(students, store)

	c, w := newUploadContext(t, student, "/api/v1/files/upload/resume", "resume", "cv.exe")
	h.UploadResume(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.keys)
	assert.Nil(t, students.updated)
	assert.Empty(t, student.ResumeLink)
}

func TestUploadResumeMissingFile(t *testing.T) {
	student := &model.Student{ID: primitive.NewObjectID(), Name: "Asha", IsActive: true}
	h := newUploadHandler(&stubStudentRepo{}, &stubStorage{})

	c, w := newRequestContext(t, http.MethodPost, "/api/v1/files/upload/resume", nil)
	c.Set(contextUser, student)
	c.Set(contextUserType, auth.UserTypeStudent)
	h.UploadResume(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file uploaded", decodeBody(t, w)["message"])
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

func init() {
	gin.SetMode(gin.TestMode)
}

// Stub repositories embed the interface so only the methods a test exercises
// need an implementation; anything else panics loudly.

type stubSubmissionRepo struct {
	db.SubmissionRepository
	byID    map[primitive.ObjectID]*model.Submission
	created *model.Submission
	updated *model.Submission
}

func (s *stubSubmissionRepo) Create(_ context.Context, submission *model.Submission) error {
	s.created = submission
	return nil
}

func (s *stubSubmissionRepo) GetByID(_ context.Context, id primitive.ObjectID) (*model.Submission, error) {
	if sub, ok := s.byID[id]; ok {
		return sub, nil
	}
	return nil, apperrors.ErrNotFound
}

func (s *stubSubmissionRepo) Update(_ context.Context, submission *model.Submission) error {
	s.updated = submission
	return nil
}

type stubProjectRepo struct {
	db.ProjectRepository
	byID map[primitive.ObjectID]*model.Project
}

func (s *stubProjectRepo) GetByID(_ context.Context, id primitive.ObjectID) (*model.Project, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, apperrors.ErrNotFound
}

func newTestHandler(repos *db.Repositories) *Handler {
	cfg := &config.Config{}
	cfg.Uploads.MaxFiles = 5
	cfg.Uploads.MaxFileSize = 1 << 20
	return NewHandler(repos, nil, nil, nil, cfg)
}

func newStudentContext(t *testing.T, student *model.Student, method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	c, w := newRequestContext(t, method, target, body)
	c.Set(contextUser, student)
	c.Set(contextUserType, auth.UserTypeStudent)
	return c, w
}

func newAdminContext(t *testing.T, admin *model.Admin, method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	c, w := newRequestContext(t, method, target, body)
	c.Set(contextUser, admin)
	c.Set(contextUserType, auth.UserTypeAdmin)
	return c, w
}

func newRequestContext(t *testing.T, method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSubmitSubmission(t *testing.T) {
	studentID := primitive.NewObjectID()
	student := &model.Student{ID: studentID, Name: "Asha", IsActive: true}
	project := &model.Project{ID: primitive.NewObjectID(), HourlyRate: 15, Status: model.ProjectStatusAssigned}

	draft := model.NewSubmission(project.ID, studentID, "Sprint 1", "First deliverable", 10, time.Now())
	draft.ID = primitive.NewObjectID()

	submissions := &stubSubmissionRepo{byID: map[primitive.ObjectID]*model.Submission{draft.ID: draft}}
	projects := &stubProjectRepo{byID: map[primitive.ObjectID]*model.Project{project.ID: project}}
	h := newTestHandler(&db.Repositories{Submissions: submissions, Projects: projects})

	c, w := newStudentContext(t, student, http.MethodPost, "/api/v1/submissions/"+draft.ID.Hex()+"/submit", nil)
	c.Params = gin.Params{{Key: "id", Value: draft.ID.Hex()}}
	h.SubmitSubmission(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.SubmissionStatusSubmitted, draft.Status)
	require.NotNil(t, draft.SubmittedAt)
	require.NotNil(t, submissions.updated)
}

func TestSubmitSubmissionTwiceFails(t *testing.T) {
	studentID := primitive.NewObjectID()
	student := &model.Student{ID: studentID, IsActive: true}
	project := &model.Project{ID: primitive.NewObjectID()}

	sub := model.NewSubmission(project.ID, studentID, "Sprint 1", "desc", 5, time.Now())
	sub.ID = primitive.NewObjectID()
	require.NoError(t, sub.Submit(time.Now(), model.ProjectTerms{}))

	submissions := &stubSubmissionRepo{byID: map[primitive.ObjectID]*model.Submission{sub.ID: sub}}
	projects := &stubProjectRepo{byID: map[primitive.ObjectID]*model.Project{project.ID: project}}
	h := newTestHandler(&db.Repositories{Submissions: submissions, Projects: projects})

	c, w := newStudentContext(t, student, http.MethodPost, "/api/v1/submissions/"+sub.ID.Hex()+"/submit", nil)
	c.Params = gin.Params{{Key: "id", Value: sub.ID.Hex()}}
	h.SubmitSubmission(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Nil(t, submissions.updated)
}

func TestSubmitSubmissionNotOwner(t *testing.T) {
	owner := primitive.NewObjectID()
	other := &model.Student{ID: primitive.NewObjectID(), IsActive: true}
	project := &model.Project{ID: primitive.NewObjectID()}

	draft := model.NewSubmission(project.ID, owner, "Sprint 1", "desc", 5, time.Now())
	draft.ID = primitive.NewObjectID()

	submissions := &stubSubmissionRepo{byID: map[primitive.ObjectID]*model.Submission{draft.ID: draft}}
	h := newTestHandler(&db.Repositories{Submissions: submissions})

	c, w := newStudentContext(t, other, http.MethodPost, "/api/v1/submissions/"+draft.ID.Hex()+"/submit", nil)
	c.Params = gin.Params{{Key: "id", Value: draft.ID.Hex()}}
	h.SubmitSubmission(c)

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, model.SubmissionStatusDraft, draft.Status)
}

func TestApproveSubmissionComputesEarnings(t *testing.T) {
	admin := &model.Admin{ID: primitive.NewObjectID(), Role: model.RoleSuperAdmin, IsActive: true}
	project := &model.Project{ID: primitive.NewObjectID(), HourlyRate: 15}

	sub := model.NewSubmission(project.ID, primitive.NewObjectID(), "Sprint 1", "desc", 10, time.Now())
	sub.ID = primitive.NewObjectID()
	require.NoError(t, sub.Submit(time.Now(), model.ProjectTerms{}))

	submissions := &stubSubmissionRepo{byID: map[primitive.ObjectID]*model.Submission{sub.ID: sub}}
	projects := &stubProjectRepo{byID: map[primitive.ObjectID]*model.Project{project.ID: project}}
	h := newTestHandler(&db.Repositories{Submissions: submissions, Projects: projects})

	grade := 92.0
	c, w := newAdminContext(t, admin, http.MethodPost, "/api/v1/submissions/"+sub.ID.Hex()+"/approve",
		model.ReviewRequest{Feedback: "Good work", Grade: &grade})
	c.Params = gin.Params{{Key: "id", Value: sub.ID.Hex()}}
	h.ApproveSubmission(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.SubmissionStatusApproved, sub.Status)
	assert.Equal(t, 150.0, sub.Earnings)
	require.NotNil(t, sub.ReviewedBy)
	assert.Equal(t, admin.ID, *sub.ReviewedBy)
}

func TestApproveSubmissionMissingProjectSkipsEarnings(t *testing.T) {
	admin := &model.Admin{ID: primitive.NewObjectID(), Role: model.RoleSuperAdmin, IsActive: true}

	sub := model.NewSubmission(primitive.NewObjectID(), primitive.NewObjectID(), "Sprint 1", "desc", 10, time.Now())
	sub.ID = primitive.NewObjectID()
	require.NoError(t, sub.Submit(time.Now(), model.ProjectTerms{}))

	submissions := &stubSubmissionRepo{byID: map[primitive.ObjectID]*model.Submission{sub.ID: sub}}
	projects := &stubProjectRepo{byID: map[primitive.ObjectID]*model.Project{}}
	h := newTestHandler(&db.Repositories{Submissions: submissions, Projects: projects})

	c, w := newAdminContext(t, admin, http.MethodPost, "/api/v1/submissions/"+sub.ID.Hex()+"/approve",
		model.ReviewRequest{Feedback: "ok"})
	c.Params = gin.Params{{Key: "id", Value: sub.ID.Hex()}}
	h.ApproveSubmission(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.SubmissionStatusApproved, sub.Status)
	assert.Zero(t, sub.Earnings)
}

func TestRejectSubmissionRequiresFeedback(t *testing.T) {
	admin := &model.Admin{ID: primitive.NewObjectID(), Role: model.RoleSuperAdmin, IsActive: true}
	h := newTestHandler(&db.Repositories{})

	c, w := newAdminContext(t, admin, http.MethodPost, "/api/v1/submissions/"+primitive.NewObjectID().Hex()+"/reject",
		model.ReviewRequest{})
	h.RejectSubmission(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSubmissionRequiresAssignment(t *testing.T) {
	student := &model.Student{ID: primitive.NewObjectID(), IsActive: true}
	project := &model.Project{ID: primitive.NewObjectID(), Status: model.ProjectStatusPublished}

	submissions := &stubSubmissionRepo{}
	projects := &stubProjectRepo{byID: map[primitive.ObjectID]*model.Project{project.ID: project}}
	h := newTestHandler(&db.Repositories{Submissions: submissions, Projects: projects})

	c, w := newStudentContext(t, student, http.MethodPost, "/api/v1/submissions", model.CreateSubmissionRequest{
		ProjectID:   project.ID.Hex(),
		Title:       "Sprint 1",
		Description: "First deliverable",
		HoursWorked: 4,
	})
	h.CreateSubmission(c)

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Nil(t, submissions.created)
}

func TestCreateSubmission(t *testing.T) {
	student := &model.Student{ID: primitive.NewObjectID(), IsActive: true}
	project := &model.Project{
		ID:         primitive.NewObjectID(),
		Status:     model.ProjectStatusAssigned,
		AssignedTo: []model.Assignment{{Student: student.ID, AssignedAt: time.Now()}},
	}

	submissions := &stubSubmissionRepo{}
	projects := &stubProjectRepo{byID: map[primitive.ObjectID]*model.Project{project.ID: project}}
	h := newTestHandler(&db.Repositories{Submissions: submissions, Projects: projects})

	c, w := newStudentContext(t, student, http.MethodPost, "/api/v1/submissions", model.CreateSubmissionRequest{
		ProjectID:   project.ID.Hex(),
		Title:       "Sprint 1",
		Description: "First deliverable",
		HoursWorked: 4,
	})
	h.CreateSubmission(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, submissions.created)
	assert.Equal(t, model.SubmissionStatusDraft, submissions.created.Status)
	assert.Equal(t, student.ID, submissions.created.Student)
}

func TestGetSubmissionScopedToOwner(t *testing.T) {
	owner := primitive.NewObjectID()
	other := &model.Student{ID: primitive.NewObjectID(), IsActive: true}

	sub := model.NewSubmission(primitive.NewObjectID(), owner, "Sprint 1", "desc", 2, time.Now())
	sub.ID = primitive.NewObjectID()

	submissions := &stubSubmissionRepo{byID: map[primitive.ObjectID]*model.Submission{sub.ID: sub}}
	h := newTestHandler(&db.Repositories{Submissions: submissions})

	c, w := newStudentContext(t, other, http.MethodGet, "/api/v1/submissions/"+sub.ID.Hex(), nil)
	c.Params = gin.Params{{Key: "id", Value: sub.ID.Hex()}}
	h.GetSubmission(c)
	require.Equal(t, http.StatusForbidden, w.Code)

	// Admins can read any submission.
	admin := &model.Admin{ID: primitive.NewObjectID(), Role: model.RoleSuperAdmin, IsActive: true}
	c, w = newAdminContext(t, admin, http.MethodGet, "/api/v1/submissions/"+sub.ID.Hex(), nil)
	c.Params = gin.Params{{Key: "id", Value: sub.ID.Hex()}}
	h.GetSubmission(c)
	require.Equal(t, http.StatusOK, w.Code)
}

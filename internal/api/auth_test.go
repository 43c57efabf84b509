package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nagaraj2331P/aura-hr-solutions/internal/auth"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/config"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/db"
	"github.com/nagaraj2331P/aura-hr-solutions/internal/model"
	apperrors "github.com/nagaraj2331P/aura-hr-solutions/pkg/errors"
)

type stubAdminRepo struct {
	db.AdminRepository
	byEmail map[string]*model.Admin
	updated *model.Admin
}

func (s *stubAdminRepo) GetByEmail(_ context.Context, email string) (*model.Admin, error) {
	if a, ok := s.byEmail[email]; ok {
		return a, nil
	}
	return nil, apperrors.ErrNotFound
}

func (s *stubAdminRepo) Update(_ context.Context, admin *model.Admin) error {
	s.updated = admin
	return nil
}

type stubTimesheetRepo struct {
	db.TimesheetRepository
	active    *model.Timesheet
	created   *model.Timesheet
	createErr error
	trace     *[]string
}

func (s *stubTimesheetRepo) Create(_ context.Context, timesheet *model.Timesheet) error {
	if s.trace != nil {
		*s.trace = append(*s.trace, "create")
	}
	if s.createErr != nil {
		return s.createErr
	}
	s.created = timesheet
	return nil
}

func (s *stubTimesheetRepo) FindActive(_ context.Context, _ primitive.ObjectID) (*model.Timesheet, error) {
	if s.active != nil {
		return s.active, nil
	}
	return nil, apperrors.ErrNotFound
}

type stubGuard struct {
	acquireErr error
	activeID   string
	acquired   []string
	released   bool
	trace      *[]string
}

func (g *stubGuard) Acquire(_ context.Context, _, timesheetID string) error {
	if g.trace != nil {
		*g.trace = append(*g.trace, "acquire")
	}
	if g.acquireErr != nil {
		return g.acquireErr
	}
	g.acquired = append(g.acquired, timesheetID)
	return nil
}

func (g *stubGuard) Release(_ context.Context, _ string) error {
	g.released = true
	return nil
}

func (g *stubGuard) ActiveTimesheetID(_ context.Context, _ string) (string, error) {
	return g.activeID, nil
}

func newLoginHandler(repos *db.Repositories) *Handler {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenExpiry = time.Hour
	return NewHandler(repos, nil, &stubGuard{}, auth.NewTokenManager(cfg), cfg)
}

func testAdmin(t *testing.T, password string, active bool) *model.Admin {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	require.NoError(t, err)
	return &model.Admin{
		ID:       primitive.NewObjectID(),
		Name:     "Meera",
		Email:    "meera@example.com",
		Password: hash,
		Role:     model.RoleAdmin,
		IsActive: active,
	}
}

func TestLoginAdminWrongPasswordLeavesNoTrace(t *testing.T) {
	admin := testAdmin(t, "s3cret", true)
	admins := &stubAdminRepo{byEmail: map[string]*model.Admin{admin.Email: admin}}
	h := newLoginHandler(&db.Repositories{Admins: admins})

	c, w := newRequestContext(t, http.MethodPost, "/api/v1/auth/login", model.LoginRequest{
		Email:    admin.Email,
		Password: "not-the-password",
		UserType: auth.UserTypeAdmin,
	})
	h.Login(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decodeBody(t, w)["message"])
	assert.Nil(t, admins.updated, "rejected login must not write the account")
	assert.Nil(t, admin.LastLogin)
}

func TestLoginAdminDeactivated(t *testing.T) {
	admin := testAdmin(t, "s3cret", false)
	admins := &stubAdminRepo{byEmail: map[string]*model.Admin{admin.Email: admin}}
	h := newLoginHandler(&db.Repositories{Admins: admins})

	c, w := newRequestContext(t, http.MethodPost, "/api/v1/auth/login", model.LoginRequest{
		Email:    admin.Email,
		Password: "s3cret",
		UserType: auth.UserTypeAdmin,
	})
	h.Login(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Account is deactivated", decodeBody(t, w)["message"])
	assert.Nil(t, admins.updated)
	assert.Nil(t, admin.LastLogin)
}

func TestLoginAdminRecordsLastLogin(t *testing.T) {
	admin := testAdmin(t, "s3cret", true)
	admins := &stubAdminRepo{byEmail: map[string]*model.Admin{admin.Email: admin}}
	h := newLoginHandler(&db.Repositories{Admins: admins})

	c, w := newRequestContext(t, http.MethodPost, "/api/v1/auth/login", model.LoginRequest{
		Email:    admin.Email,
		Password: "s3cret",
		UserType: auth.UserTypeAdmin,
	})
	h.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, admins.updated)
	assert.NotNil(t, admin.LastLogin)
}

func TestOpenWorkSessionAcquiresSlotBeforeWriting(t *testing.T) {
	var trace []string
	guard := &stubGuard{trace: &trace}
	timesheets := &stubTimesheetRepo{trace: &trace}
	h := NewHandler(&db.Repositories{Timesheets: timesheets}, nil, guard, nil, &config.Config{})

	student := &model.Student{ID: primitive.NewObjectID(), IsActive: true}
	h.openWorkSession(context.Background(), student, time.Now(), "10.0.0.1", "go-test")

	require.Equal(t, []string{"acquire", "create"}, trace)
	require.NotNil(t, timesheets.created)
	require.Len(t, guard.acquired, 1)
	assert.Equal(t, timesheets.created.ID.Hex(), guard.acquired[0])
}

func TestOpenWorkSessionSlotHeldSkipsCreate(t *testing.T) {
	var trace []string
	guard := &stubGuard{trace: &trace, acquireErr: apperrors.ErrDuplicateSession, activeID: primitive.NewObjectID().Hex()}
	timesheets := &stubTimesheetRepo{trace: &trace}
	h := NewHandler(&db.Repositories{Timesheets: timesheets}, nil, guard, nil, &config.Config{})

	student := &model.Student{ID: primitive.NewObjectID(), IsActive: true}
	h.openWorkSession(context.Background(), student, time.Now(), "10.0.0.1", "go-test")

	assert.Equal(t, []string{"acquire"}, trace)
	assert.Nil(t, timesheets.created)
}

func TestOpenWorkSessionKeepsExistingTimesheet(t *testing.T) {
	guard := &stubGuard{}
	existing := model.NewTimesheet(primitive.NewObjectID(), nil, time.Now().Add(-time.Hour), "10.0.0.1", "go-test")
	timesheets := &stubTimesheetRepo{active: existing}
	h := NewHandler(&db.Repositories{Timesheets: timesheets}, nil, guard, nil, &config.Config{})

	student := &model.Student{ID: existing.Student, IsActive: true}
	h.openWorkSession(context.Background(), student, time.Now(), "10.0.0.1", "go-test")

	assert.Nil(t, timesheets.created)
	assert.False(t, guard.released, "an open session keeps its slot")
}

func TestOpenWorkSessionReleasesSlotWhenCreateFails(t *testing.T) {
	guard := &stubGuard{}
	timesheets := &stubTimesheetRepo{createErr: errors.New("insert failed")}
	h := NewHandler(&db.Repositories{Timesheets: timesheets}, nil, guard, nil, &config.Config{})

	student := &model.Student{ID: primitive.NewObjectID(), IsActive: true}
	h.openWorkSession(context.Background(), student, time.Now(), "10.0.0.1", "go-test")

	assert.Nil(t, timesheets.created)
	assert.True(t, guard.released, "a failed insert must free the slot")
}

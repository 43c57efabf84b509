package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nagaraj2331P/aura-hr-solutions/internal/model"
)

type StudentFilter struct {
	Search    string
	Skills    []string
	Expertise string
	Page      int
	Limit     int
}

type ProjectFilter struct {
	Status     model.ProjectStatus
	Skills     []string
	Difficulty string
	Category   string
	Page       int
	Limit      int
}

type SubmissionFilter struct {
	Student *primitive.ObjectID
	Status  model.SubmissionStatus
	Page    int
	Limit   int
}

type TimesheetFilter struct {
	Student   *primitive.ObjectID
	Status    model.TimesheetStatus
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Student, error)
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
	Update(ctx context.Context, student *model.Student) error
	List(ctx context.Context, filter StudentFilter) ([]model.Student, int64, error)
	CountActive(ctx context.Context) (int64, error)
}

type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Admin, error)
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
	Update(ctx context.Context, admin *model.Admin) error
}

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	List(ctx context.Context, filter ProjectFilter) ([]model.Project, int64, error)
	ListAssignedTo(ctx context.Context, studentID primitive.ObjectID) ([]model.Project, error)
	CountActive(ctx context.Context) (int64, error)
	StatusDistribution(ctx context.Context) ([]model.StatusCount, error)
}

type SubmissionRepository interface {
	Create(ctx context.Context, submission *model.Submission) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Submission, error)
	Update(ctx context.Context, submission *model.Submission) error
	List(ctx context.Context, filter SubmissionFilter) ([]model.Submission, int64, error)
	CountByStatus(ctx context.Context, status model.SubmissionStatus) (int64, error)
	RecentByStudent(ctx context.Context, studentID primitive.ObjectID, limit int) ([]model.Submission, error)
}

type TimesheetRepository interface {
	Create(ctx context.Context, timesheet *model.Timesheet) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Timesheet, error)
	Update(ctx context.Context, timesheet *model.Timesheet) error
	List(ctx context.Context, filter TimesheetFilter) ([]model.Timesheet, int64, error)
	FindActive(ctx context.Context, studentID primitive.ObjectID) (*model.Timesheet, error)
	CountByStatus(ctx context.Context, status model.TimesheetStatus) (int64, error)
	ApprovedTotals(ctx context.Context, studentID primitive.ObjectID) (hours float64, earnings float64, err error)
	ListApproved(ctx context.Context, from, to time.Time) ([]model.Timesheet, error)
	RecentByStudent(ctx context.Context, studentID primitive.ObjectID, limit int) ([]model.Timesheet, error)
}

// Repositories bundles the per-collection repositories for wiring.
type Repositories struct {
	Students    StudentRepository
	Admins      AdminRepository
	Projects    ProjectRepository
	Submissions SubmissionRepository
	Timesheets  TimesheetRepository
}

func NewRepositories(database *mongo.Database) *Repositories {
	return &Repositories{
		Students:    NewStudentRepository(database),
		Admins:      NewAdminRepository(database),
		Projects:    NewProjectRepository(database),
		Submissions: NewSubmissionRepository(database),
		Timesheets:  NewTimesheetRepository(database),
	}
}

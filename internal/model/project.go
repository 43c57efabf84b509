package model

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nagaraj2331P/aura-hr-solutions/pkg/errors"
)

type ProjectStatus string

const (
	ProjectStatusDraft       ProjectStatus = "draft"
	ProjectStatusPublished   ProjectStatus = "published"
	ProjectStatusAssigned    ProjectStatus = "assigned"
	ProjectStatusInProgress  ProjectStatus = "in_progress"
	ProjectStatusSubmitted   ProjectStatus = "submitted"
	ProjectStatusUnderReview ProjectStatus = "under_review"
	ProjectStatusCompleted   ProjectStatus = "completed"
	ProjectStatusCancelled   ProjectStatus = "cancelled"
)

var ProjectCategories = []string{
	"Web Development",
	"Mobile Development",
	"Data Analysis",
	"UI/UX Design",
	"Content Writing",
	"Digital Marketing",
	"Research",
	"Other",
}

type Assignment struct {
	Student    primitive.ObjectID `bson:"student" json:"student"`
	AssignedAt time.Time          `bson:"assignedAt" json:"assignedAt"`
	AssignedBy primitive.ObjectID `bson:"assignedBy" json:"assignedBy"`
}

type Project struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title          string              `bson:"title" json:"title"`
	Description    string              `bson:"description" json:"description"`
	Category       string              `bson:"category" json:"category"`
	SkillsRequired []string            `bson:"skillsRequired" json:"skillsRequired"`
	Difficulty     string              `bson:"difficulty" json:"difficulty"`
	EstimatedHours float64             `bson:"estimatedHours" json:"estimatedHours"`
	HourlyRate     float64             `bson:"hourlyRate" json:"hourlyRate"`
	TotalBudget    float64             `bson:"totalBudget" json:"totalBudget"`
	Deadline       *time.Time          `bson:"deadline" json:"deadline"`
	Files          []FileInfo          `bson:"files" json:"files"`
	AssignedTo     []Assignment        `bson:"assignedTo" json:"assignedTo"`
	Status         ProjectStatus       `bson:"status" json:"status"`
	Priority       string              `bson:"priority" json:"priority"`
	MaxStudents    int                 `bson:"maxStudents" json:"maxStudents"`
	Requirements   []string            `bson:"requirements,omitempty" json:"requirements,omitempty"`
	Deliverables   []string            `bson:"deliverables,omitempty" json:"deliverables,omitempty"`
	Tags           []string            `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedBy      primitive.ObjectID  `bson:"createdBy" json:"createdBy"`
	UpdatedBy      *primitive.ObjectID `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	CompletedAt    *time.Time          `bson:"completedAt" json:"completedAt"`
	IsActive       bool                `bson:"isActive" json:"isActive"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// Terms exposes the fields transitions need, pre-resolved. Callers hand this
// to submission and timesheet operations instead of the whole project.
func (p *Project) Terms() ProjectTerms {
	return ProjectTerms{HourlyRate: p.HourlyRate, Deadline: p.Deadline}
}

// DaysUntilDeadline is negative once the deadline has passed; nil deadline
// yields zero and false.
func (p *Project) DaysUntilDeadline(now time.Time) (int, bool) {
	if p.Deadline == nil {
		return 0, false
	}
	diff := p.Deadline.Sub(now)
	return int(math.Ceil(diff.Hours() / 24)), true
}

func (p *Project) IsOverdue(now time.Time) bool {
	if p.Deadline == nil {
		return false
	}
	return now.After(*p.Deadline) && p.Status != ProjectStatusCompleted
}

// IsAssignedTo reports whether the student already holds an assignment.
func (p *Project) IsAssignedTo(studentID primitive.ObjectID) bool {
	for _, a := range p.AssignedTo {
		if a.Student == studentID {
			return true
		}
	}
	return false
}

// CanAssign checks the assignment rules: not already assigned,
// below the student cap, and the project is open for assignment.
func (p *Project) CanAssign(studentID primitive.ObjectID) bool {
	if p.IsAssignedTo(studentID) {
		return false
	}
	if len(p.AssignedTo) >= p.MaxStudents {
		return false
	}
	return p.Status == ProjectStatusPublished || p.Status == ProjectStatusAssigned
}

// AssignStudent records the assignment; the first one moves a published
// project to assigned.
func (p *Project) AssignStudent(studentID, adminID primitive.ObjectID, now time.Time) error {
	if !p.CanAssign(studentID) {
		return errors.ErrAssignmentForbidden
	}

	p.AssignedTo = append(p.AssignedTo, Assignment{
		Student:    studentID,
		AssignedAt: now,
		AssignedBy: adminID,
	})
	if p.Status == ProjectStatusPublished {
		p.Status = ProjectStatusAssigned
	}
	p.UpdatedAt = now
	return nil
}

// RecalculateBudget keeps totalBudget consistent after rate or estimate
// changes.
func (p *Project) RecalculateBudget() {
	p.TotalBudget = p.EstimatedHours * p.HourlyRate
}

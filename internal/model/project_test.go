package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func publishedProject(maxStudents int) *Project {
	deadline := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return &Project{
		ID:             primitive.NewObjectID(),
		Title:          "Marketing site",
		Status:         ProjectStatusPublished,
		HourlyRate:     25,
		EstimatedHours: 40,
		Deadline:       &deadline,
		MaxStudents:    maxStudents,
		IsActive:       true,
	}
}

func TestAssignStudentFlipsStatus(t *testing.T) {
	p := publishedProject(2)
	student := primitive.NewObjectID()
	admin := primitive.NewObjectID()
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, p.AssignStudent(student, admin, now))

	assert.Equal(t, ProjectStatusAssigned, p.Status)
	require.Len(t, p.AssignedTo, 1)
	assert.Equal(t, student, p.AssignedTo[0].Student)
	assert.Equal(t, admin, p.AssignedTo[0].AssignedBy)
	assert.True(t, p.IsAssignedTo(student))
}

func TestAssignSameStudentTwiceFails(t *testing.T) {
	p := publishedProject(5)
	student := primitive.NewObjectID()
	admin := primitive.NewObjectID()
	now := time.Now()

	require.NoError(t, p.AssignStudent(student, admin, now))
	assert.Error(t, p.AssignStudent(student, admin, now))
	assert.Len(t, p.AssignedTo, 1)
}

func TestAssignBeyondCapFails(t *testing.T) {
	p := publishedProject(1)
	admin := primitive.NewObjectID()
	now := time.Now()

	require.NoError(t, p.AssignStudent(primitive.NewObjectID(), admin, now))
	assert.Error(t, p.AssignStudent(primitive.NewObjectID(), admin, now))
}

func TestAssignToDraftProjectFails(t *testing.T) {
	p := publishedProject(3)
	p.Status = ProjectStatusDraft
	assert.False(t, p.CanAssign(primitive.NewObjectID()))
}

func TestRecalculateBudget(t *testing.T) {
	p := publishedProject(1)
	p.RecalculateBudget()
	assert.Equal(t, 1000.0, p.TotalBudget)
}

func TestDaysUntilDeadline(t *testing.T) {
	p := publishedProject(1)
	days, ok := p.DaysUntilDeadline(time.Date(2024, 5, 29, 12, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, 3, days)

	p.Deadline = nil
	_, ok = p.DaysUntilDeadline(time.Now())
	assert.False(t, ok)
}

func TestProjectIsOverdue(t *testing.T) {
	p := publishedProject(1)
	after := p.Deadline.Add(time.Hour)
	assert.True(t, p.IsOverdue(after))

	p.Status = ProjectStatusCompleted
	assert.False(t, p.IsOverdue(after))
}

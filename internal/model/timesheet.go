package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nagaraj2331P/aura-hr-solutions/pkg/errors"
)

type TimesheetStatus string

const (
	TimesheetStatusActive    TimesheetStatus = "active"
	TimesheetStatusCompleted TimesheetStatus = "completed"
	TimesheetStatusApproved  TimesheetStatus = "approved"
	TimesheetStatusRejected  TimesheetStatus = "rejected"
)

// Break is one pause inside a work session. Duration is minutes; it is set
// when the break is closed. At most one break may be open at a time.
type Break struct {
	StartTime time.Time  `bson:"startTime" json:"startTime"`
	EndTime   *time.Time `bson:"endTime" json:"endTime"`
	Duration  float64    `bson:"duration" json:"duration"`
}

// Timesheet is a single work session: login, optional breaks, logout, then
// admin approval. TotalHours and Earnings are derived, never set by callers.
type Timesheet struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Student    primitive.ObjectID  `bson:"student" json:"student"`
	Project    *primitive.ObjectID `bson:"project,omitempty" json:"project,omitempty"`
	Date       time.Time           `bson:"date" json:"date"`
	LoginTime  time.Time           `bson:"loginTime" json:"loginTime"`
	LogoutTime *time.Time          `bson:"logoutTime" json:"logoutTime"`
	Breaks     []Break             `bson:"breaks" json:"breaks"`
	TotalHours float64             `bson:"totalHours" json:"totalHours"`
	Status     TimesheetStatus     `bson:"status" json:"status"`
	Earnings   float64             `bson:"earnings" json:"earnings"`
	ApprovedBy *primitive.ObjectID `bson:"approvedBy" json:"approvedBy"`
	ApprovedAt *time.Time          `bson:"approvedAt" json:"approvedAt"`
	Notes      string              `bson:"notes,omitempty" json:"notes,omitempty"`
	IPAddress  string              `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`
	UserAgent  string              `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time           `bson:"updatedAt" json:"updatedAt"`
}

func NewTimesheet(student primitive.ObjectID, project *primitive.ObjectID, now time.Time, ipAddress, userAgent string) *Timesheet {
	return &Timesheet{
		Student:   student,
		Project:   project,
		Date:      time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		LoginTime: now,
		Status:    TimesheetStatusActive,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasOpenBreak reports whether the last break has not been closed yet.
func (t *Timesheet) HasOpenBreak() bool {
	if len(t.Breaks) == 0 {
		return false
	}
	return t.Breaks[len(t.Breaks)-1].EndTime == nil
}

// BreakMinutes is the sum of all closed break durations.
func (t *Timesheet) BreakMinutes() float64 {
	var total float64
	for _, b := range t.Breaks {
		total += b.Duration
	}
	return total
}

// StartBreak opens a new break. The session must still be active and no
// other break may be open.
func (t *Timesheet) StartBreak(now time.Time) error {
	if t.Status != TimesheetStatusActive || t.LogoutTime != nil {
		return errors.NewInvalidState("timesheet", "start break", string(t.Status))
	}
	if t.HasOpenBreak() {
		return errors.NewInvalidState("timesheet", "start break", "break already open")
	}

	t.Breaks = append(t.Breaks, Break{StartTime: now})
	t.UpdatedAt = now
	return nil
}

// EndBreak closes the open break and records its duration in minutes.
func (t *Timesheet) EndBreak(now time.Time) error {
	if !t.HasOpenBreak() {
		return errors.NewInvalidState("timesheet", "end break", "no open break")
	}

	t.closeOpenBreak(now)
	t.UpdatedAt = now
	return nil
}

func (t *Timesheet) closeOpenBreak(now time.Time) {
	b := &t.Breaks[len(t.Breaks)-1]
	endTime := now
	b.EndTime = &endTime
	b.Duration = endTime.Sub(b.StartTime).Minutes()
}

// Logout ends the session. A still-open break is closed first so it counts
// against the total. TotalHours is elapsed wall-clock time minus breaks,
// never negative.
func (t *Timesheet) Logout(now time.Time) error {
	if t.LogoutTime != nil {
		return errors.NewInvalidState("timesheet", "logout", string(t.Status))
	}

	if t.HasOpenBreak() {
		t.closeOpenBreak(now)
	}

	logoutTime := now
	t.LogoutTime = &logoutTime
	t.Status = TimesheetStatusCompleted

	total := logoutTime.Sub(t.LoginTime).Hours() - t.BreakMinutes()/60
	if total < 0 {
		total = 0
	}
	t.TotalHours = total
	t.UpdatedAt = now
	return nil
}

// Approve accepts a completed session and derives earnings from the hours
// and the pre-resolved project hourly rate (zero when there is no project).
func (t *Timesheet) Approve(adminID primitive.ObjectID, hourlyRate float64, now time.Time) error {
	if t.Status != TimesheetStatusCompleted {
		return errors.NewInvalidState("timesheet", "approve", string(t.Status))
	}

	t.Status = TimesheetStatusApproved
	approvedAt := now
	t.ApprovedAt = &approvedAt
	t.ApprovedBy = &adminID
	t.Earnings = t.TotalHours * hourlyRate
	t.UpdatedAt = now
	return nil
}

// Reject declines a completed session; the reason is kept in Notes.
func (t *Timesheet) Reject(adminID primitive.ObjectID, reason string, now time.Time) error {
	if t.Status != TimesheetStatusCompleted {
		return errors.NewInvalidState("timesheet", "reject", string(t.Status))
	}

	t.Status = TimesheetStatusRejected
	approvedAt := now
	t.ApprovedAt = &approvedAt
	t.ApprovedBy = &adminID
	t.Notes = reason
	t.UpdatedAt = now
	return nil
}

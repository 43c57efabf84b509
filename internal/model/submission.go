package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nagaraj2331P/aura-hr-solutions/pkg/errors"
)

type SubmissionStatus string

const (
	SubmissionStatusDraft            SubmissionStatus = "draft"
	SubmissionStatusSubmitted        SubmissionStatus = "submitted"
	SubmissionStatusUnderReview      SubmissionStatus = "under_review"
	SubmissionStatusApproved         SubmissionStatus = "approved"
	SubmissionStatusRejected         SubmissionStatus = "rejected"
	SubmissionStatusRevisionRequired SubmissionStatus = "revision_required"
)

// FileInfo describes one uploaded file. Files are embedded on the owning
// document so the whole submission is written atomically.
type FileInfo struct {
	Filename     string    `bson:"filename" json:"filename"`
	OriginalName string    `bson:"originalName" json:"originalName"`
	Path         string    `bson:"path" json:"path"`
	Size         int64     `bson:"size" json:"size"`
	MimeType     string    `bson:"mimetype" json:"mimetype"`
	UploadedAt   time.Time `bson:"uploadedAt" json:"uploadedAt"`
}

// RevisionSnapshot is an immutable copy of submission state captured at the
// moment a revision was requested. Entries are append-only.
type RevisionSnapshot struct {
	Version     int        `bson:"version" json:"version"`
	SubmittedAt *time.Time `bson:"submittedAt" json:"submittedAt"`
	Feedback    string     `bson:"feedback,omitempty" json:"feedback,omitempty"`
	Files       []FileInfo `bson:"files" json:"files"`
}

// ProjectTerms carries the project fields a transition needs, pre-resolved by
// the caller. Transitions never perform a lookup mid-mutation; a missing
// deadline means "not late" and a zero rate leaves earnings untouched.
type ProjectTerms struct {
	HourlyRate float64
	Deadline   *time.Time
}

type Submission struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Project         primitive.ObjectID  `bson:"project" json:"project"`
	Student         primitive.ObjectID  `bson:"student" json:"student"`
	Title           string              `bson:"title" json:"title"`
	Description     string              `bson:"description" json:"description"`
	Files           []FileInfo          `bson:"files" json:"files"`
	Status          SubmissionStatus    `bson:"status" json:"status"`
	SubmittedAt     *time.Time          `bson:"submittedAt" json:"submittedAt"`
	ReviewedAt      *time.Time          `bson:"reviewedAt" json:"reviewedAt"`
	ReviewedBy      *primitive.ObjectID `bson:"reviewedBy" json:"reviewedBy"`
	Feedback        string              `bson:"feedback,omitempty" json:"feedback,omitempty"`
	Grade           *float64            `bson:"grade,omitempty" json:"grade,omitempty"`
	HoursWorked     float64             `bson:"hoursWorked" json:"hoursWorked"`
	Earnings        float64             `bson:"earnings" json:"earnings"`
	RevisionHistory []RevisionSnapshot  `bson:"revisionHistory" json:"revisionHistory"`
	IsLate          bool                `bson:"isLate" json:"isLate"`
	QualityScore    *int                `bson:"qualityScore,omitempty" json:"qualityScore,omitempty"`
	Tags            []string            `bson:"tags,omitempty" json:"tags,omitempty"`
	Notes           string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

func NewSubmission(project, student primitive.ObjectID, title, description string, hoursWorked float64, now time.Time) *Submission {
	return &Submission{
		Project:     project,
		Student:     student,
		Title:       title,
		Description: description,
		Status:      SubmissionStatusDraft,
		HoursWorked: hoursWorked,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CurrentVersion is one higher than the number of recorded revisions.
func (s *Submission) CurrentVersion() int {
	return len(s.RevisionHistory) + 1
}

// IsOverdue reports whether the project deadline has passed without approval.
// A submission with no deadline is never overdue.
func (s *Submission) IsOverdue(now time.Time, terms ProjectTerms) bool {
	if terms.Deadline == nil {
		return false
	}
	return now.After(*terms.Deadline) && s.Status != SubmissionStatusApproved
}

// Submit moves a draft to submitted and records whether it arrived past the
// project deadline. Only drafts can be submitted.
func (s *Submission) Submit(now time.Time, terms ProjectTerms) error {
	if s.Status != SubmissionStatusDraft {
		return errors.NewInvalidState("submission", "submit", string(s.Status))
	}

	s.Status = SubmissionStatusSubmitted
	submittedAt := now
	s.SubmittedAt = &submittedAt
	if terms.Deadline != nil {
		s.IsLate = now.After(*terms.Deadline)
	}
	s.UpdatedAt = now
	return nil
}

// Approve marks the submission approved and recomputes earnings from the
// hours worked and the project hourly rate. Approving an already-approved
// submission recomputes identically rather than double-counting. Drafts
// cannot be reviewed.
func (s *Submission) Approve(reviewerID primitive.ObjectID, feedback string, grade *float64, terms ProjectTerms, now time.Time) error {
	if s.Status == SubmissionStatusDraft {
		return errors.NewInvalidState("submission", "approve", string(s.Status))
	}

	s.Status = SubmissionStatusApproved
	reviewedAt := now
	s.ReviewedAt = &reviewedAt
	s.ReviewedBy = &reviewerID
	s.Feedback = feedback
	if grade != nil {
		s.Grade = grade
	}

	if s.HoursWorked > 0 && terms.HourlyRate > 0 {
		s.Earnings = s.HoursWorked * terms.HourlyRate
	}
	s.UpdatedAt = now
	return nil
}

// Reject marks the submission rejected with the reviewer's feedback.
// Earnings are not touched.
func (s *Submission) Reject(reviewerID primitive.ObjectID, feedback string, now time.Time) error {
	if s.Status == SubmissionStatusDraft {
		return errors.NewInvalidState("submission", "reject", string(s.Status))
	}

	s.Status = SubmissionStatusRejected
	reviewedAt := now
	s.ReviewedAt = &reviewedAt
	s.ReviewedBy = &reviewerID
	s.Feedback = feedback
	s.UpdatedAt = now
	return nil
}

// RequestRevision snapshots the current version into the revision history and
// then marks the submission as requiring changes. The snapshot keeps the
// pre-transition feedback and submission timestamp, not the new ones.
func (s *Submission) RequestRevision(reviewerID primitive.ObjectID, feedback string, now time.Time) error {
	if s.Status == SubmissionStatusDraft {
		return errors.NewInvalidState("submission", "request revision", string(s.Status))
	}

	files := make([]FileInfo, len(s.Files))
	copy(files, s.Files)
	s.RevisionHistory = append(s.RevisionHistory, RevisionSnapshot{
		Version:     s.CurrentVersion(),
		SubmittedAt: s.SubmittedAt,
		Feedback:    s.Feedback,
		Files:       files,
	})

	s.Status = SubmissionStatusRevisionRequired
	reviewedAt := now
	s.ReviewedAt = &reviewedAt
	s.ReviewedBy = &reviewerID
	s.Feedback = feedback
	s.UpdatedAt = now
	return nil
}

// Resubmit returns a revision-required submission to the review queue. The
// previous feedback and grade are kept for the reviewer's reference.
func (s *Submission) Resubmit(now time.Time) error {
	if s.Status != SubmissionStatusRevisionRequired {
		return errors.NewInvalidState("submission", "resubmit", string(s.Status))
	}

	s.Status = SubmissionStatusSubmitted
	submittedAt := now
	s.SubmittedAt = &submittedAt
	s.ReviewedAt = nil
	s.ReviewedBy = nil
	s.UpdatedAt = now
	return nil
}

func (s *Submission) AddFile(file FileInfo) {
	s.Files = append(s.Files, file)
}

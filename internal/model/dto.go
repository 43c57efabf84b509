package model

import "time"

type StudentRegisterRequest struct {
	Name      string    `json:"name" binding:"required,max=100"`
	Email     string    `json:"email" binding:"required,email"`
	Phone     string    `json:"phone" binding:"required,len=10,numeric"`
	Password  string    `json:"password" binding:"required,min=6"`
	Skills    []string  `json:"skills"`
	Expertise string    `json:"expertise" binding:"omitempty,oneof=Beginner Intermediate Advanced"`
	Bio       string    `json:"bio" binding:"max=500"`
	Education Education `json:"education"`
}

type AdminRegisterRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Role       string `json:"role" binding:"omitempty,oneof=admin super_admin"`
	Department string `json:"department"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	UserType string `json:"userType" binding:"required,oneof=student admin"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

type CreateProjectRequest struct {
	Title          string     `json:"title" binding:"required,max=200"`
	Description    string     `json:"description" binding:"required,max=2000"`
	Category       string     `json:"category" binding:"required"`
	SkillsRequired []string   `json:"skillsRequired" binding:"required,min=1"`
	Difficulty     string     `json:"difficulty" binding:"required,oneof=Beginner Intermediate Advanced"`
	EstimatedHours float64    `json:"estimatedHours" binding:"required,gte=1"`
	HourlyRate     float64    `json:"hourlyRate" binding:"required,gte=0"`
	Deadline       *time.Time `json:"deadline" binding:"required"`
	Priority       string     `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	MaxStudents    int        `json:"maxStudents" binding:"omitempty,gte=1"`
	Requirements   []string   `json:"requirements"`
	Deliverables   []string   `json:"deliverables"`
	Tags           []string   `json:"tags"`
}

type AssignStudentRequest struct {
	StudentID string `json:"studentId" binding:"required"`
}

type CreateSubmissionRequest struct {
	ProjectID   string  `json:"projectId" binding:"required"`
	Title       string  `json:"title" binding:"required,max=200"`
	Description string  `json:"description" binding:"required,max=1000"`
	HoursWorked float64 `json:"hoursWorked" binding:"gte=0"`
}

type ReviewRequest struct {
	Feedback string   `json:"feedback" binding:"max=1000"`
	Grade    *float64 `json:"grade" binding:"omitempty,gte=0,lte=100"`
}

type RejectTimesheetRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type TokenResponse struct {
	AccessToken string   `json:"accessToken"`
	User        UserInfo `json:"user"`
}

type UserInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	UserType string `json:"userType"`
}

type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
}

func NewPagination(page, limit int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Current: page, Pages: pages, Total: total}
}

type DashboardStats struct {
	TotalProjects     int64   `json:"totalProjects"`
	ActiveProjects    int64   `json:"activeProjects"`
	CompletedProjects int64   `json:"completedProjects"`
	TotalHours        float64 `json:"totalHours"`
	TotalEarnings     float64 `json:"totalEarnings"`
}

type AdminDashboardStats struct {
	TotalStudents      int64 `json:"totalStudents"`
	TotalProjects      int64 `json:"totalProjects"`
	PendingSubmissions int64 `json:"pendingSubmissions"`
	PendingTimesheets  int64 `json:"pendingTimesheets"`
}

type StatusCount struct {
	Status string `bson:"_id" json:"status"`
	Count  int64  `bson:"count" json:"count"`
}

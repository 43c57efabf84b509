package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdminRole string

const (
	RoleAdmin      AdminRole = "admin"
	RoleSuperAdmin AdminRole = "super_admin"
)

type Permission string

const (
	PermManageStudents    Permission = "manage_students"
	PermManageProjects    Permission = "manage_projects"
	PermReviewSubmissions Permission = "review_submissions"
	PermApproveTimesheets Permission = "approve_timesheets"
	PermGenerateReports   Permission = "generate_reports"
	PermManageAdmins      Permission = "manage_admins"
)

type Admin struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name        string              `bson:"name" json:"name"`
	Email       string              `bson:"email" json:"email"`
	Password    string              `bson:"password" json:"-"`
	Role        AdminRole           `bson:"role" json:"role"`
	Department  string              `bson:"department" json:"department"`
	Permissions []Permission        `bson:"permissions" json:"permissions"`
	IsActive    bool                `bson:"isActive" json:"isActive"`
	LastLogin   *time.Time          `bson:"lastLogin" json:"lastLogin"`
	CreatedBy   *primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// HasPermission is true for an explicit grant; super admins hold every
// permission implicitly.
func (a *Admin) HasPermission(p Permission) bool {
	if a.Role == RoleSuperAdmin {
		return true
	}
	for _, granted := range a.Permissions {
		if granted == p {
			return true
		}
	}
	return false
}

// DefaultPermissions mirrors the grants a new account starts with.
func DefaultPermissions(role AdminRole) []Permission {
	perms := []Permission{
		PermManageStudents,
		PermManageProjects,
		PermReviewSubmissions,
		PermApproveTimesheets,
		PermGenerateReports,
	}
	if role == RoleSuperAdmin {
		perms = append(perms, PermManageAdmins)
	}
	return perms
}

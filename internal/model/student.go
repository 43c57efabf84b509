package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Education struct {
	Degree      string `bson:"degree,omitempty" json:"degree,omitempty"`
	Institution string `bson:"institution,omitempty" json:"institution,omitempty"`
	Year        int    `bson:"year,omitempty" json:"year,omitempty"`
}

type Experience struct {
	Company     string `bson:"company,omitempty" json:"company,omitempty"`
	Position    string `bson:"position,omitempty" json:"position,omitempty"`
	Duration    string `bson:"duration,omitempty" json:"duration,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

type Student struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Email            string             `bson:"email" json:"email"`
	Phone            string             `bson:"phone" json:"phone"`
	Password         string             `bson:"password" json:"-"`
	Skills           []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	Expertise        string             `bson:"expertise" json:"expertise"`
	ProfilePic       string             `bson:"profilePic,omitempty" json:"profilePic,omitempty"`
	ResumeLink       string             `bson:"resumeLink,omitempty" json:"resumeLink,omitempty"`
	Bio              string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Education        Education          `bson:"education,omitempty" json:"education,omitempty"`
	Experience       []Experience       `bson:"experience,omitempty" json:"experience,omitempty"`
	TotalHoursWorked float64            `bson:"totalHoursWorked" json:"totalHoursWorked"`
	TotalEarnings    float64            `bson:"totalEarnings" json:"totalEarnings"`
	IsActive         bool               `bson:"isActive" json:"isActive"`
	LastLogin        *time.Time         `bson:"lastLogin" json:"lastLogin"`
	JoinedAt         time.Time          `bson:"joinedAt" json:"joinedAt"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RecordApprovedTimesheet rolls an approved session into the student's
// lifetime aggregates.
func (s *Student) RecordApprovedTimesheet(hours, earnings float64) {
	s.TotalHoursWorked += hours
	s.TotalEarnings += earnings
}

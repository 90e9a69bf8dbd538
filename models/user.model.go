package models

import (
	"time"

	"gorm.io/gorm"
)

// Role values for User.Role
const (
	RoleStudent = "STUDENT"
	RoleTeacher = "TEACHER"
	RoleAdmin   = "ADMIN"
)

// TeacherStatus values for User.TeacherStatus. Only meaningful when Role is TEACHER.
const (
	TeacherPending  = "PENDING"
	TeacherApproved = "APPROVED"
	TeacherRejected = "REJECTED"
)

type User struct {
	gorm.Model
	ProfileImage  string `gorm:"default:''"`
	Name          string `gorm:"default:''"`
	Email         string `gorm:"unique;not null"`
	Role          string `gorm:"default:'STUDENT'"` // STUDENT, TEACHER, ADMIN
	Password      string `gorm:"not null"`
	TeacherStatus string `gorm:"default:''"` // PENDING, APPROVED, REJECTED (teachers only)
	Qualification string `gorm:"default:''"` // e.g. "Bachelor's in Mathematics"
	Subject       string `gorm:"default:''"` // subject expertise (teachers only)
	Experience    int    `gorm:"default:0"`  // years of teaching experience

	LastLogin           time.Time  `gorm:"default:NULL"`
	FailedLoginAttempts int        `gorm:"default:0"`
	LastFailedLogin     *time.Time `json:"last_failed_login"`
	IsBlocked           bool       `gorm:"default:false"`
	IsDeleted           bool       `gorm:"default:false"`
}

// ValidRole reports whether role is one of the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

package course

import (
	"time"

	"gorm.io/gorm"
)

// Status values for Enrollment.Status
const (
	EnrollEnrolled   = "ENROLLED"
	EnrollInProgress = "IN_PROGRESS"
	EnrollCompleted  = "COMPLETED"
)

// Enrollment tracks a student's enrollment in a course with a progress snapshot.
// The snapshot fields are recomputed server-side on every completion mutation;
// clients never derive them locally.
type Enrollment struct {
	gorm.Model
	UserID            uint       `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_course"`
	CourseID          uint       `json:"course_id" gorm:"index;not null;uniqueIndex:idx_user_course"`
	Status            string     `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED
	Progress          float64    `json:"progress" gorm:"default:0"`        // completion percentage (0-100)
	CompletedContents int        `json:"completed_contents" gorm:"default:0"`
	TotalContents     int        `json:"total_contents" gorm:"default:0"`
	CompletedAt       *time.Time `json:"completed_at"`
	IsDeleted         bool       `gorm:"default:false"`
}

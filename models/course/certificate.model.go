package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate represents an issued certificate for course completion.
// At most one exists per (user, course) pair; the unique index is the final
// arbiter when two generate calls race.
type Certificate struct {
	gorm.Model
	UserID            uint      `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_course_cert"`
	CourseID          uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_user_course_cert"`
	CertificateNumber string    `json:"certificate_number" gorm:"unique"`
	StudentName       string    `json:"student_name"`
	CourseTitle       string    `json:"course_title"`
	IssuedAt          time.Time `json:"issued_at"`
	PDFData           []byte    `json:"-" gorm:"type:bytes"` // generated document body
	IsDeleted         bool      `gorm:"default:false"`
}

package course

import (
	"time"

	"gorm.io/gorm"
)

// ContentType values for CourseContent.ContentType
const (
	ContentVideo      = "VIDEO"
	ContentPDF        = "PDF"
	ContentAssignment = "ASSIGNMENT"
	ContentDocument   = "DOCUMENT"
	ContentLink       = "LINK"
	ContentOther      = "OTHER"
)

// ValidContentType reports whether t is one of the closed content type set.
func ValidContentType(t string) bool {
	switch t {
	case ContentVideo, ContentPDF, ContentAssignment, ContentDocument, ContentLink, ContentOther:
		return true
	}
	return false
}

// CourseContent represents a single unit of course material
type CourseContent struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	ContentType string `json:"content_type" gorm:"default:'OTHER'"` // VIDEO, PDF, ASSIGNMENT, DOCUMENT, LINK, OTHER
	FileURL     string `json:"file_url"`                            // where the material lives; storage itself is external
	OrderIndex int `json:"order_index" gorm:"default:0"`
	// No default tag: gorm drops zero-valued defaulted fields on Create,
	// which would make unpublished content unrepresentable.
	IsPublished bool `json:"is_published"`
	IsDeleted   bool `gorm:"default:false"`
}

// ContentCompletion tracks a student's completion of one content item.
// Completion only ever transitions from absent to present; rows are never
// flipped back.
type ContentCompletion struct {
	gorm.Model
	UserID          uint      `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_content"`
	CourseID        uint      `json:"course_id" gorm:"index;not null"`
	CourseContentID uint      `json:"course_content_id" gorm:"not null;uniqueIndex:idx_user_content"`
	CompletedAt     time.Time `json:"completed_at"`
	IsDeleted       bool      `gorm:"default:false"`
}

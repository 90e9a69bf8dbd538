package client

import "time"

// Course is the read-only course record as served to students.
type Course struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Instructor  string `json:"instructor"`
	Description string `json:"description"`
}

// Progress is the server-derived completion snapshot for one enrollment.
// The client displays it as-is; IsCompleted is authoritative even when a
// cached percentage momentarily disagrees after a mutation.
type Progress struct {
	CourseID           uint `json:"course_id"`
	TotalContent       int  `json:"total_content"`
	CompletedContent   int  `json:"completed_content"`
	ProgressPercentage int  `json:"progress_percentage"`
	IsCompleted        bool `json:"is_completed"`
}

// ContentType is the closed set of course material kinds.
type ContentType string

const (
	ContentVideo      ContentType = "VIDEO"
	ContentPDF        ContentType = "PDF"
	ContentAssignment ContentType = "ASSIGNMENT"
	ContentDocument   ContentType = "DOCUMENT"
	ContentLink       ContentType = "LINK"
	ContentOther      ContentType = "OTHER"
)

// ParseContentType maps a wire value onto the closed set; anything the client
// does not recognize renders as OTHER rather than leaking raw strings.
func ParseContentType(s string) ContentType {
	switch ContentType(s) {
	case ContentVideo, ContentPDF, ContentAssignment, ContentDocument, ContentLink, ContentOther:
		return ContentType(s)
	}
	return ContentOther
}

// ContentItem is one unit of course material with this student's completion flag.
type ContentItem struct {
	ID          uint        `json:"id"`
	CourseID    uint        `json:"course_id"`
	ContentType ContentType `json:"content_type"`
	Title       string      `json:"title"`
	Completed   bool        `json:"completed"`
}

// Certificate is an issued completion record for one (student, course) pair.
type Certificate struct {
	ID          uint      `json:"id"`
	CourseID    uint      `json:"course_id"`
	StudentName string    `json:"student_name"`
	CourseTitle string    `json:"course_title"`
	IssuedAt    time.Time `json:"issued_at"`
}

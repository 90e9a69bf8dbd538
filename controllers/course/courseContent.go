package controllers

import (
	"eduvillage/database"
	"eduvillage/middleware"
	courseModels "eduvillage/models/course"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ContentWithCompletion is a content item annotated with the requesting
// student's completion flag.
type ContentWithCompletion struct {
	ID          uint   `json:"id"`
	CourseID    uint   `json:"course_id"`
	ContentType string `json:"content_type"`
	Title       string `json:"title"`
	FileURL     string `json:"file_url"`
	Completed   bool   `json:"completed"`
}

// GetStudentContents lists a course's published content with per-student completion flags.
func GetStudentContents(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	// Check enrollment
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = false", userID, courseID).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	var contents []courseModels.CourseContent
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = false AND is_published = true", courseID).
		Order("order_index asc, created_at asc").Find(&contents).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course content!", nil)
	}

	result := make([]ContentWithCompletion, len(contents))
	for i, content := range contents {
		result[i] = ContentWithCompletion{
			ID:          content.ID,
			CourseID:    content.CourseID,
			ContentType: content.ContentType,
			Title:       content.Title,
			FileURL:     content.FileURL,
		}
		var completion courseModels.ContentCompletion
		if err := database.Database.Db.Where("user_id = ? AND course_content_id = ? AND is_deleted = false", userID, content.ID).
			First(&completion).Error; err == nil {
			result[i].Completed = true
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course content fetched successfully!", fiber.Map{
		"contents": result,
	})
}

// MarkContentComplete records a completion for one content item. Completion
// only moves forward: a repeat is a conflict, never a flip back. The
// enrollment's progress snapshot is recomputed inside the same handler so the
// next progress fetch observes it.
func MarkContentComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID := c.Locals("contentID").(int)

	// Resolve the content item and its course
	var content courseModels.CourseContent
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND is_published = true", contentID).
		First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course content not found!", nil)
	}

	// Check enrollment
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = false", userID, content.CourseID).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	// Check if content is already marked as completed
	var existingCompletion courseModels.ContentCompletion
	if err := database.Database.Db.Where("user_id = ? AND course_content_id = ? AND is_deleted = false", userID, contentID).
		First(&existingCompletion).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Content already marked as completed!", nil)
	}

	completion := courseModels.ContentCompletion{
		UserID:          userID,
		CourseID:        content.CourseID,
		CourseContentID: uint(contentID),
		CompletedAt:     time.Now(),
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&completion).Error; err != nil {
		tx.Rollback()
		// Lost a race with a concurrent mark-complete; the unique index is
		// the final arbiter, so surface the conflict for clients to converge.
		if dbErr := database.Database.Db.Where("user_id = ? AND course_content_id = ?", userID, contentID).
			First(&existingCompletion).Error; dbErr == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Content already marked as completed!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark content as completed!", nil)
	}
	tx.Commit()

	UpdateEnrollmentProgress(database.Database.Db, userID, content.CourseID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content marked as completed successfully!", completion)
}

// EnrollmentProgress is the wire shape of a progress snapshot.
type EnrollmentProgress struct {
	CourseID           uint `json:"course_id"`
	TotalContent       int  `json:"total_content"`
	CompletedContent   int  `json:"completed_content"`
	ProgressPercentage int  `json:"progress_percentage"`
	IsCompleted        bool `json:"is_completed"`
}

// GetStudentProgress returns the server-derived progress snapshot for one
// course. Clients display this; they never derive it themselves.
func GetStudentProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = false", userID, courseID).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	progress := EnrollmentProgress{
		CourseID:           uint(courseID),
		TotalContent:       enrollment.TotalContents,
		CompletedContent:   enrollment.CompletedContents,
		ProgressPercentage: int(math.Round(enrollment.Progress)),
		IsCompleted:        enrollment.Status == courseModels.EnrollCompleted,
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", progress)
}

// UpdateEnrollmentProgress recomputes the enrollment's progress snapshot from
// the completion and content tables. Invariants held: percentage is
// round(100*completed/total) and the enrollment is COMPLETED exactly when
// completed == total with total > 0.
func UpdateEnrollmentProgress(db *gorm.DB, userID uint, courseID uint) {
	var totalContent int64
	var completedContent int64

	db.Model(&courseModels.CourseContent{}).
		Where("course_id = ? AND is_deleted = false AND is_published = true", courseID).
		Count(&totalContent)
	db.Model(&courseModels.ContentCompletion{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = false", userID, courseID).
		Count(&completedContent)

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = false", userID, courseID).
		First(&enrollment).Error; err != nil {
		return
	}

	enrollment.CompletedContents = int(completedContent)
	enrollment.TotalContents = int(totalContent)

	if totalContent > 0 {
		enrollment.Progress = math.Round(float64(completedContent) / float64(totalContent) * 100)
	} else {
		enrollment.Progress = 0
	}

	if totalContent > 0 && completedContent == totalContent {
		enrollment.Status = courseModels.EnrollCompleted
		if enrollment.CompletedAt == nil {
			now := time.Now()
			enrollment.CompletedAt = &now
		}
	} else if completedContent > 0 {
		enrollment.Status = courseModels.EnrollInProgress
		enrollment.CompletedAt = nil
	} else {
		enrollment.Status = courseModels.EnrollEnrolled
		enrollment.CompletedAt = nil
	}

	db.Save(&enrollment)
}

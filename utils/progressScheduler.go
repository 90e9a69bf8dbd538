package utils

import (
	"eduvillage/database"
	courseModels "eduvillage/models/course"
	"log"
	"math"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[PROGRESS-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// reconcileEnrollmentProgress recomputes progress snapshots whose counters no
// longer match the content tables. Content added or unpublished after a
// student finished a course silently changes the denominator; this sweep
// keeps every snapshot consistent with what the progress endpoint promises.
func reconcileEnrollmentProgress() {
	db := database.Database.Db

	var enrollments []courseModels.Enrollment
	if err := db.Where("is_deleted = false").Find(&enrollments).Error; err != nil {
		logScheduler("Error fetching enrollments: " + err.Error())
		return
	}

	fixed := 0
	for _, enrollment := range enrollments {
		var totalContent int64
		var completedContent int64

		db.Model(&courseModels.CourseContent{}).
			Where("course_id = ? AND is_deleted = false AND is_published = true", enrollment.CourseID).
			Count(&totalContent)
		db.Model(&courseModels.ContentCompletion{}).
			Where("user_id = ? AND course_id = ? AND is_deleted = false", enrollment.UserID, enrollment.CourseID).
			Count(&completedContent)

		if enrollment.TotalContents == int(totalContent) && enrollment.CompletedContents == int(completedContent) {
			continue
		}

		enrollment.TotalContents = int(totalContent)
		enrollment.CompletedContents = int(completedContent)
		if totalContent > 0 {
			enrollment.Progress = math.Round(float64(completedContent) / float64(totalContent) * 100)
		} else {
			enrollment.Progress = 0
		}

		if totalContent > 0 && completedContent == totalContent {
			enrollment.Status = courseModels.EnrollCompleted
			if enrollment.CompletedAt == nil {
				completedAt := time.Now()
				enrollment.CompletedAt = &completedAt
			}
		} else if completedContent > 0 {
			enrollment.Status = courseModels.EnrollInProgress
			enrollment.CompletedAt = nil
		} else {
			enrollment.Status = courseModels.EnrollEnrolled
			enrollment.CompletedAt = nil
		}

		db.Save(&enrollment)
		fixed++
	}

	if fixed > 0 {
		log.Printf("[PROGRESS-SCHEDULER] reconciled %d stale enrollment snapshots", fixed)
	}
}

// reportDailyCertificates logs how many certificates were issued today.
func reportDailyCertificates() {
	db := database.Database.Db

	var count int64
	db.Model(&courseModels.Certificate{}).
		Where("issued_at >= ? AND is_deleted = false", now.BeginningOfDay()).
		Count(&count)

	log.Printf("[PROGRESS-SCHEDULER] certificates issued since start of day: %d", count)
}

// StartProgressScheduler runs the reconciliation sweep every 15 minutes and a
// daily certificate report. Returns the cron handle so main can stop it.
func StartProgressScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("*/15 * * * *", reconcileEnrollmentProgress); err != nil {
		log.Fatalf("Failed to schedule progress reconciliation: %v", err)
	}
	if _, err := c.AddFunc("59 23 * * *", reportDailyCertificates); err != nil {
		log.Fatalf("Failed to schedule certificate report: %v", err)
	}

	c.Start()
	logScheduler("Progress scheduler started")
	return c
}

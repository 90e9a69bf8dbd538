package controllers

import (
	"eduvillage/database"
	"eduvillage/middleware"
	"eduvillage/models"
	courseModels "eduvillage/models/course"
	"eduvillage/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// certificateJSON is the wire shape of an issued certificate.
type certificateJSON struct {
	ID          uint      `json:"id"`
	CourseID    uint      `json:"course_id"`
	StudentName string    `json:"student_name"`
	CourseTitle string    `json:"course_title"`
	IssuedAt    time.Time `json:"issued_at"`
}

func toCertificateJSON(cert courseModels.Certificate) certificateJSON {
	return certificateJSON{
		ID:          cert.ID,
		CourseID:    cert.CourseID,
		StudentName: cert.StudentName,
		CourseTitle: cert.CourseTitle,
		IssuedAt:    cert.IssuedAt,
	}
}

// GetStudentCertificates lists all certificates issued to the current student.
func GetStudentCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = false", userID).
		Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	result := make([]certificateJSON, len(certificates))
	for i, cert := range certificates {
		result[i] = toCertificateJSON(cert)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
	})
}

// GenerateCertificate issues a certificate for a completed course. At most one
// exists per (student, course): a repeat call conflicts and returns the
// existing record so racing clients can reconcile. The unique index is the
// final arbiter when two requests slip past the existence check together.
func GenerateCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	// Check enrollment and completion
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = false", userID, courseID).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	if enrollment.Status != courseModels.EnrollCompleted {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please complete the course before requesting a certificate!", nil)
	}

	// Check if certificate already exists
	var existingCert courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = false", userID, courseID).
		First(&existingCert).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate already exists!", fiber.Map{
			"certificate": toCertificateJSON(existingCert),
		})
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	issuedAt := time.Now()
	pdfData, err := utils.GenerateCertificatePDF(user.Name, course.Title, issuedAt)
	if err != nil {
		log.Printf("Error generating certificate document: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate certificate!", nil)
	}

	certificate := courseModels.Certificate{
		UserID:            userID,
		CourseID:          uint(courseID),
		CertificateNumber: uuid.NewString(),
		StudentName:       user.Name,
		CourseTitle:       course.Title,
		IssuedAt:          issuedAt,
		PDFData:           pdfData,
	}

	if err := database.Database.Db.Create(&certificate).Error; err != nil {
		// Lost a race with a concurrent generate; surface the winner.
		if dbErr := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = false", userID, courseID).
			First(&existingCert).Error; dbErr == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate already exists!", fiber.Map{
				"certificate": toCertificateJSON(existingCert),
			})
		}
		log.Printf("Error saving certificate: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate generated successfully!", fiber.Map{
		"certificate": toCertificateJSON(certificate),
	})
}

// DownloadCertificate streams the certificate document to its owner.
func DownloadCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certificateID := c.Locals("certificateID").(int)

	var certificate courseModels.Certificate
	if err := database.Database.Db.Where("id = ? AND user_id = ? AND is_deleted = false", certificateID, userID).
		First(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	if len(certificate.PDFData) == 0 {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Certificate document is missing!", nil)
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", "attachment; filename=certificate-"+certificate.CertificateNumber+".pdf")
	return c.Status(fiber.StatusOK).Send(certificate.PDFData)
}

package courseValidator

import (
	"eduvillage/middleware"
	courseModels "eduvillage/models/course"
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// paramID parses a positive integer route parameter into a Locals entry.
func paramID(param, local string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params(param))
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+" in the URL!", nil)
		}
		c.Locals(local, id)
		return c.Next()
	}
}

// CourseID validates the :course_id route parameter.
func CourseID() fiber.Handler {
	return paramID("course_id", "courseID")
}

// ContentID validates the :content_id route parameter.
func ContentID() fiber.Handler {
	return paramID("content_id", "contentID")
}

// CertificateID validates the :id route parameter of certificate routes.
func CertificateID() fiber.Handler {
	return paramID("id", "certificateID")
}

// CreateCourse validates the course create/update payload.
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Duration    int64  `json:"duration"`
			Status      string `json:"status"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Normalize and sanitize inputs
		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.Status = strings.ToUpper(strings.TrimSpace(reqData.Status))

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else {
			if len(reqData.Title) < 3 {
				errors["title"] = "Title must be at least 3 characters long!"
			}
			if len(reqData.Title) > 255 {
				errors["title"] = "Title must not exceed 255 characters!"
			}
			if matched, _ := regexp.MatchString(`[<>{}]`, reqData.Title); matched {
				errors["title"] = "Title contains invalid characters (e.g., <, >, {, })!"
			}
		}

		if len(reqData.Description) > 5000 {
			errors["description"] = "Description must not exceed 5000 characters!"
		}

		if reqData.Duration < 0 {
			errors["duration"] = "Duration cannot be negative!"
		}

		if reqData.Status == "" {
			reqData.Status = courseModels.StatusDraft
		}
		switch reqData.Status {
		case courseModels.StatusDraft, courseModels.StatusPublished, courseModels.StatusArchived:
		default:
			errors["status"] = "Status must be DRAFT, PUBLISHED or ARCHIVED!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// AddContent validates the content item payload.
func AddContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			ContentType string `json:"content_type"`
			FileURL     string `json:"file_url"`
			OrderIndex  int    `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.ContentType = strings.ToUpper(strings.TrimSpace(reqData.ContentType))
		reqData.FileURL = strings.TrimSpace(reqData.FileURL)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) > 255 {
			errors["title"] = "Title must not exceed 255 characters!"
		}

		if !courseModels.ValidContentType(reqData.ContentType) {
			errors["content_type"] = "Content type must be VIDEO, PDF, ASSIGNMENT, DOCUMENT, LINK or OTHER!"
		}

		if reqData.OrderIndex < 0 {
			errors["order_index"] = "Order index cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedContent", reqData)
		return c.Next()
	}
}

package adminValidator

import (
	"eduvillage/middleware"
	"eduvillage/models"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// TargetUserID validates the :user_id route parameter.
func TargetUserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params("user_id"))
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user_id in the URL!", nil)
		}
		c.Locals("targetUserID", id)
		return c.Next()
	}
}

// UpdateRole validates the role update payload.
func UpdateRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Role string `json:"role"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Role = strings.ToUpper(strings.TrimSpace(reqData.Role))

		if !models.ValidRole(reqData.Role) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"role": "Role must be STUDENT, TEACHER or ADMIN!",
			})
		}

		c.Locals("validatedRole", reqData)
		return c.Next()
	}
}

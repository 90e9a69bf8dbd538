package adminController

import (
	"eduvillage/database"
	"eduvillage/middleware"
	"eduvillage/models"
	"eduvillage/utils"

	"github.com/gofiber/fiber/v2"
)

// GetAllUsers lists all non-deleted accounts.
func GetAllUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.Database.Db.Where("is_deleted = false").Order("created_at desc").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	for i := range users {
		users[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": users,
		"total": len(users),
	})
}

// DeleteUser soft-deletes an account.
func DeleteUser(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(int)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", targetID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if user.Role == models.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Admin accounts cannot be deleted!", nil)
	}

	user.IsDeleted = true
	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully!", nil)
}

// UpdateUserRole changes an account's role.
func UpdateUserRole(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(int)

	reqData, ok := c.Locals("validatedRole").(*struct {
		Role string `json:"role"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", targetID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.Role = reqData.Role
	if reqData.Role == models.RoleTeacher && user.TeacherStatus == "" {
		user.TeacherStatus = models.TeacherPending
	}

	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user role!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User role updated successfully!", user)
}

// GetPendingTeachers lists teacher accounts awaiting approval.
func GetPendingTeachers(c *fiber.Ctx) error {
	return listTeachersByStatus(c, models.TeacherPending)
}

// GetApprovedTeachers lists approved teacher accounts.
func GetApprovedTeachers(c *fiber.Ctx) error {
	return listTeachersByStatus(c, models.TeacherApproved)
}

func listTeachersByStatus(c *fiber.Ctx, status string) error {
	var teachers []models.User
	if err := database.Database.Db.Where("role = ? AND teacher_status = ? AND is_deleted = false", models.RoleTeacher, status).
		Order("created_at desc").Find(&teachers).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch teachers!", nil)
	}

	for i := range teachers {
		teachers[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Teachers fetched successfully!", fiber.Map{
		"teachers": teachers,
		"total":    len(teachers),
	})
}

// ApproveTeacher activates a pending teacher account and notifies them.
func ApproveTeacher(c *fiber.Ctx) error {
	return setTeacherStatus(c, models.TeacherApproved)
}

// RejectTeacher rejects a pending teacher account and notifies them.
func RejectTeacher(c *fiber.Ctx) error {
	return setTeacherStatus(c, models.TeacherRejected)
}

func setTeacherStatus(c *fiber.Ctx, status string) error {
	teacherID := c.Locals("targetUserID").(int)

	var teacher models.User
	if err := database.Database.Db.Where("id = ? AND role = ? AND is_deleted = false", teacherID, models.RoleTeacher).
		First(&teacher).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Teacher not found!", nil)
	}

	if teacher.TeacherStatus == status {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Teacher is already "+status+"!", nil)
	}

	teacher.TeacherStatus = status
	if err := database.Database.Db.Save(&teacher).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update teacher status!", nil)
	}

	// Notify Teacher (Async)
	go func(t models.User, s string) {
		if t.Email == "" {
			return
		}
		if s == models.TeacherApproved {
			utils.SendTeacherApprovedEmail(t.Email, t.Name)
		} else {
			utils.SendTeacherRejectedEmail(t.Email, t.Name)
		}
	}(teacher, status)

	teacher.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Teacher status updated successfully!", teacher)
}

package middleware

import (
	"eduvillage/config"
	"eduvillage/models"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func newProtectedApp(extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := append([]fiber.Handler{JWTMiddleware}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return JsonResponse(c, fiber.StatusOK, true, "ok", fiber.Map{
			"userId": c.Locals("userId"),
			"role":   c.Locals("role"),
		})
	})
	app.Get("/protected", handlers...)
	return app
}

func TestJWTRoundTrip(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	token, err := GenerateJWT(7, "Asha", models.RoleStudent, "asha@example.com")
	require.NoError(t, err)

	app := newProtectedApp()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJWTMissingHeader(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	app := newProtectedApp()
	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTWrongSecretRejected(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}
	token, err := GenerateJWT(7, "Asha", models.RoleStudent, "asha@example.com")
	require.NoError(t, err)

	config.AppConfig = &config.Config{JWTKey: "rotated-secret"}
	app := newProtectedApp()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}
	token, err := GenerateJWT(7, "Asha", models.RoleStudent, "asha@example.com")
	require.NoError(t, err)

	app := newProtectedApp(RequireRole(models.RoleAdmin))
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	app = newProtectedApp(RequireRole(models.RoleStudent, models.RoleAdmin))
	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

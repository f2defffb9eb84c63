package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/dto"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/pkg/jwt"
)

const (
	testJWTSecret = "secret-de-test-au-moins-32-caracteres"
	testUserID    = "user-42"
	testUsername  = "karim"
)

// buildTestApp monte une route protégée par l'authentification et, en option,
// par un garde-fou de rôle.
func buildTestApp(roles ...string) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{AuthMiddleware(testJWTSecret)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  GetUserID(c),
			"username": GetUsername(c),
			"role":     GetRole(c),
		})
	})
	app.Get("/protected", handlers...)
	return app
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := jwt.Generate(testJWTSecret, testUserID, testUsername, role, "test", 60)
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware_SansToken(t *testing.T) {
	app := buildTestApp()
	req := httptest.NewRequest("GET", "/protected", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatInvalide(t *testing.T) {
	app := buildTestApp()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_MauvaisSecret(t *testing.T) {
	app := buildTestApp()
	tok, err := jwt.Generate("un-autre-secret-tout-aussi-long-x", testUserID, testUsername, entity.RoleAdmin, "test", 60)
	require.NoError(t, err)
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_PoseLIdentiteDansLesLocals(t *testing.T) {
	app := buildTestApp()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, entity.RoleGestionnaire))

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, testUserID, got["user_id"])
	assert.Equal(t, testUsername, got["username"])
	assert.Equal(t, entity.RoleGestionnaire, got["role"])
}

func TestRequireRole_RefuseLeRoleInsuffisant(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, entity.RoleCaissier))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRole_AccepteLUnDesRoles(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin, entity.RoleGestionnaire)
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, entity.RoleGestionnaire))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// ────────────────────────────────────────────────────────────────────────────
// Traduction des erreurs de domaine
// ────────────────────────────────────────────────────────────────────────────

func TestRespondError_Statuts(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{domain.ErrStockInsufficient, fiber.StatusUnprocessableEntity, "STOCK_INSUFFICIENT"},
		{domain.ErrAlreadyClosed, fiber.StatusConflict, "ALREADY_CLOSED"},
		{&domain.CreditShortfallError{}, fiber.StatusUnprocessableEntity, "CREDIT_LIMIT_EXCEEDED"},
		{&domain.CashCeilingError{}, fiber.StatusUnprocessableEntity, "CASH_OVER_LIMIT"},
		{assert.AnError, fiber.StatusInternalServerError, "INTERNAL"},
	}

	for _, tc := range cases {
		app := fiber.New()
		app.Get("/err", func(c *fiber.Ctx) error {
			return respondError(c, tc.err)
		})
		resp, err := app.Test(httptest.NewRequest("GET", "/err", nil))
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, "erreur %v", tc.err)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var got dto.ErrorResponse
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, tc.code, got.Code)
	}
}

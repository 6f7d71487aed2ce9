package route

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authModel "masjidku_portal/internals/features/users/auth/model"
	authService "masjidku_portal/internals/features/users/auth/service"
	"masjidku_portal/internals/features/users/user/model"
	helper "masjidku_portal/internals/helpers"
	"masjidku_portal/internals/helpers/testdb"
	authMiddleware "masjidku_portal/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type envelope struct {
	Success    bool              `json:"success"`
	ErrorCode  string            `json:"error_code"`
	Data       json.RawMessage   `json:"data"`
	Pagination helper.Pagination `json:"pagination"`
}

type fixture struct {
	app    *fiber.App
	db     *gorm.DB
	admin  string
	editor string
}

func newUserApp(t *testing.T) fixture {
	t.Helper()
	db := testdb.Open(t, &model.UserModel{}, &authModel.TokenBlacklist{})
	svc := authService.NewAuthService(db, "test-secret", time.Hour)

	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler(zap.NewNop())})
	admin := app.Group("/api/a", authMiddleware.AuthMiddleware(svc, zap.NewNop()))
	UserAdminRoutes(admin, db)

	token := func(name, role string) string {
		hash, err := authService.HashPassword("rahasia123")
		require.NoError(t, err)
		u := model.UserModel{UserName: name, Email: name + "@masjid.test", Password: hash, Role: role, IsActive: true}
		require.NoError(t, db.Create(&u).Error)
		tok, _, err := authService.IssueAccessToken(u, svc.Secret, time.Hour, time.Now())
		require.NoError(t, err)
		return tok
	}
	return fixture{app: app, db: db, admin: token("ketua", "admin"), editor: token("redaksi", "editor")}
}

func (f fixture) call(t *testing.T, method, path, body, token string) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func TestUsers_AdminOnly(t *testing.T) {
	f := newUserApp(t)

	code, env := f.call(t, "GET", "/api/a/users", "", f.editor)
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", env.ErrorCode)

	code, env = f.call(t, "GET", "/api/a/users?role=editor", "", f.admin)
	require.Equal(t, fiber.StatusOK, code)
	assert.EqualValues(t, 1, env.Pagination.Total)
}

func TestUsers_CreateUpdatePassword(t *testing.T) {
	f := newUserApp(t)

	code, env := f.call(t, "POST", "/api/a/users",
		`{"user_name":"bendahara2","email":"Bendahara2@Masjid.test","password":"panjang123","role":"bendahara"}`, f.admin)
	require.Equal(t, fiber.StatusCreated, code)
	var created model.UserModel
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "bendahara2@masjid.test", created.Email)
	assert.True(t, created.IsActive)

	code, _ = f.call(t, "POST", "/api/a/users",
		`{"user_name":"bendahara2","email":"lain@masjid.test","password":"panjang123","role":"bendahara"}`, f.admin)
	assert.Equal(t, fiber.StatusConflict, code)

	code, env = f.call(t, "POST", "/api/a/users",
		`{"user_name":"x","email":"bukan-email","password":"pendek","role":"jamaah"}`, f.admin)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Equal(t, "VALIDATION_ERROR", env.ErrorCode)

	code, env = f.call(t, "PUT", "/api/a/users/"+created.ID.String(), `{"role":"editor","is_active":false}`, f.admin)
	require.Equal(t, fiber.StatusOK, code)
	var updated model.UserModel
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "editor", updated.Role)
	assert.False(t, updated.IsActive)

	code, _ = f.call(t, "PATCH", "/api/a/users/"+created.ID.String()+"/password", `{"new_password":"baru-sekali-123"}`, f.admin)
	require.Equal(t, fiber.StatusOK, code)

	var stored model.UserModel
	require.NoError(t, f.db.First(&stored, "id = ?", created.ID).Error)
	assert.True(t, authService.CheckPassword(stored.Password, "baru-sekali-123"))
	assert.False(t, authService.CheckPassword(stored.Password, "panjang123"))
}

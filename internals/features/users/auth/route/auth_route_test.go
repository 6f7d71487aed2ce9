package route

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authModel "masjidku_portal/internals/features/users/auth/model"
	"masjidku_portal/internals/features/users/auth/service"
	userModel "masjidku_portal/internals/features/users/user/model"
	helper "masjidku_portal/internals/helpers"
	"masjidku_portal/internals/helpers/testdb"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
	Data      json.RawMessage `json:"data"`
}

func newAuthApp(t *testing.T) (*fiber.App, *service.AuthService, *gorm.DB) {
	t.Helper()
	db := testdb.Open(t, &userModel.UserModel{}, &authModel.TokenBlacklist{})
	svc := service.NewAuthService(db, "test-secret", time.Hour)

	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler(zap.NewNop())})
	AuthRoutes(app, svc, zap.NewNop())
	return app, svc, db
}

func seedUser(t *testing.T, db *gorm.DB, name, role string, active bool) userModel.UserModel {
	t.Helper()
	hash, err := service.HashPassword("rahasia123")
	require.NoError(t, err)
	u := userModel.UserModel{
		UserName: name,
		Email:    name + "@masjid.test",
		Password: hash,
		Role:     role,
		IsActive: active,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func do(t *testing.T, app *fiber.App, method, path, body, token string) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func TestLogin_MeLogout(t *testing.T) {
	app, _, db := newAuthApp(t)
	seedUser(t, db, "bendahara1", "bendahara", true)

	code, env := do(t, app, "POST", "/api/auth/login", `{"identifier":"bendahara1@MASJID.test","password":"salah-total"}`, "")
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.Equal(t, "UNAUTHORIZED", env.ErrorCode)

	code, env = do(t, app, "POST", "/api/auth/login", `{"identifier":"bendahara1@MASJID.test","password":"rahasia123"}`, "")
	require.Equal(t, fiber.StatusOK, code)
	var login struct {
		AccessToken string `json:"access_token"`
		User        struct {
			UserName string `json:"user_name"`
			Role     string `json:"role"`
			Password string `json:"password"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.AccessToken)
	assert.Equal(t, "bendahara", login.User.Role)
	assert.Empty(t, login.User.Password, "hash never leaves the server")

	code, env = do(t, app, "GET", "/api/auth/me", "", login.AccessToken)
	require.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, string(env.Data), `"user_name":"bendahara1"`)

	code, _ = do(t, app, "POST", "/api/auth/logout", "", login.AccessToken)
	require.Equal(t, fiber.StatusOK, code)

	var n int64
	require.NoError(t, db.Model(&authModel.TokenBlacklist{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	code, env = do(t, app, "GET", "/api/auth/me", "", login.AccessToken)
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.Contains(t, env.Message, "blacklisted")
}

func TestMe_RejectsMissingOrForeignToken(t *testing.T) {
	app, svc, db := newAuthApp(t)
	u := seedUser(t, db, "editor1", "editor", true)

	code, _ := do(t, app, "GET", "/api/auth/me", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, code)

	forged, _, err := service.IssueAccessToken(u, "kunci-lain", time.Hour, time.Now())
	require.NoError(t, err)
	code, _ = do(t, app, "GET", "/api/auth/me", "", forged)
	assert.Equal(t, fiber.StatusUnauthorized, code)

	expired, _, err := service.IssueAccessToken(u, svc.Secret, time.Minute, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	code, _ = do(t, app, "GET", "/api/auth/me", "", expired)
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestDeactivatedUser(t *testing.T) {
	app, svc, db := newAuthApp(t)
	u := seedUser(t, db, "pengajar1", "pengajar", true)

	token, _, err := service.IssueAccessToken(u, svc.Secret, time.Hour, time.Now())
	require.NoError(t, err)

	require.NoError(t, db.Model(&userModel.UserModel{}).Where("id = ?", u.ID).Update("is_active", false).Error)

	// token lama ikut mati begitu akun dinonaktifkan
	code, _ := do(t, app, "GET", "/api/auth/me", "", token)
	assert.Equal(t, fiber.StatusForbidden, code)

	code, _ = do(t, app, "POST", "/api/auth/login", `{"identifier":"pengajar1","password":"rahasia123"}`, "")
	assert.Equal(t, fiber.StatusForbidden, code)
}

func TestPurgeExpiredBlacklist(t *testing.T) {
	_, svc, db := newAuthApp(t)
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, svc.Logout(t.Context(), "old-token", now.Add(-time.Hour)))
	require.NoError(t, svc.Logout(t.Context(), "fresh-token", now.Add(time.Hour)))
	// logout ganda tidak error
	require.NoError(t, svc.Logout(t.Context(), "fresh-token", now.Add(time.Hour)))

	n, err := svc.PurgeExpiredBlacklist(t.Context(), now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	left, err := svc.IsBlacklisted(t.Context(), "fresh-token")
	require.NoError(t, err)
	assert.True(t, left)

	var count int64
	require.NoError(t, db.Model(&authModel.TokenBlacklist{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

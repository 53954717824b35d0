package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/coverdesk/api-operations/internal/auth"
	"github.com/coverdesk/api-operations/internal/database"
	"github.com/coverdesk/api-operations/internal/notify"
	"github.com/coverdesk/api-operations/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T, withService bool) *database.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Profile{}, &PasswordReset{}))
	s := &database.Store{App: db}
	if withService {
		s.Service = db
	}
	return s
}

func seedProfile(t *testing.T, db *gorm.DB, email, password, role string) *Profile {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	p := &Profile{UserID: uuid.NewString(), Email: email, PasswordHash: hash, Role: role}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestLoginSuccessRedirectsByRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	store := newTestStore(t, false)
	h := NewHandler(store, notify.New(nil), nil)
	seedProfile(t, store.App, "admin@example.com", "s3cret", auth.RoleAdmin)

	body, _ := json.Marshal(loginRequest{Email: "admin@example.com", Password: "s3cret"})
	w := httptest.NewRecorder()
	h.Login(w, httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code)
	var resp loginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "/admin/dashboard", resp.Redirect)
}

func TestLoginWrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	store := newTestStore(t, false)
	h := NewHandler(store, notify.New(nil), nil)
	seedProfile(t, store.App, "user@example.com", "rightpass", auth.RoleClient)

	body, _ := json.Marshal(loginRequest{Email: "user@example.com", Password: "wrongpass"})
	w := httptest.NewRecorder()
	h.Login(w, httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body)))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var resp loginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Empty(t, resp.Token)
	assert.NotEmpty(t, resp.Error)
}

func TestLoginMissingRoleIsRemediation(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	store := newTestStore(t, false)
	h := NewHandler(store, notify.New(nil), nil)
	seedProfile(t, store.App, "lost@example.com", "pw", "")

	body, _ := json.Marshal(loginRequest{Email: "lost@example.com", Password: "pw"})
	w := httptest.NewRecorder()
	h.Login(w, httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body)))

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp loginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "administrator")
}

func TestCreateUserWithoutServiceRole(t *testing.T) {
	store := newTestStore(t, false)
	h := NewHandler(store, notify.New(nil), nil)

	body, _ := json.Marshal(signupRequest{Email: "new@example.com", Role: auth.RoleAgent})
	w := httptest.NewRecorder()
	h.CreateUser(w, httptest.NewRequest("POST", "/admin/users", bytes.NewReader(body)))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, database.ErrServiceRoleUnavailable.Error(), resp["error"])

	// No row was written.
	var n int64
	require.NoError(t, store.App.Model(&Profile{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCreateUserWithServiceRole(t *testing.T) {
	store := newTestStore(t, true)
	h := NewHandler(store, notify.New(nil), nil)

	body, _ := json.Marshal(signupRequest{Email: "agent@example.com", Role: auth.RoleAgent})
	w := httptest.NewRecorder()
	h.CreateUser(w, httptest.NewRequest("POST", "/admin/users", bytes.NewReader(body)))

	require.Equal(t, http.StatusCreated, w.Code)
	var p Profile
	require.NoError(t, store.App.Where("email = ?", "agent@example.com").First(&p).Error)
	assert.Equal(t, auth.RoleAgent, p.Role)
	assert.True(t, p.MustResetPassword)
	assert.NotEmpty(t, p.UserID)
}

func TestCreateUserDetailTimeoutStillCreatesAccount(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	store := newTestStore(t, true)
	h := NewHandler(store, notify.New(nil), nil)

	body, _ := json.Marshal(signupRequest{
		Email:    "slow@example.com",
		Password: "s3cret",
		Role:     auth.RoleAgent,
		FullName: "Slow Writer",
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // the detail fill deadline has already passed
	w := httptest.NewRecorder()
	h.CreateUser(w, httptest.NewRequest("POST", "/admin/users", bytes.NewReader(body)).WithContext(ctx))

	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), "pending")

	// The credential row was written before the raced detail fill, so the
	// account can authenticate.
	var p Profile
	require.NoError(t, store.App.Where("email = ?", "slow@example.com").First(&p).Error)
	assert.Equal(t, auth.RoleAgent, p.Role)

	loginBody, _ := json.Marshal(loginRequest{Email: "slow@example.com", Password: "s3cret"})
	w = httptest.NewRecorder()
	h.Login(w, httptest.NewRequest("POST", "/auth/login", bytes.NewReader(loginBody)))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateUserFillsDetails(t *testing.T) {
	store := newTestStore(t, true)
	h := NewHandler(store, notify.New(nil), nil)

	body, _ := json.Marshal(signupRequest{
		Email:    "full@example.com",
		Role:     auth.RoleClient,
		FullName: "Full Name",
		Phone:    "555-0100",
	})
	w := httptest.NewRecorder()
	h.CreateUser(w, httptest.NewRequest("POST", "/admin/users", bytes.NewReader(body)))

	require.Equal(t, http.StatusCreated, w.Code)
	var p Profile
	require.NoError(t, store.App.Where("email = ?", "full@example.com").First(&p).Error)
	assert.Equal(t, "Full Name", p.FullName)
	assert.Equal(t, "555-0100", p.Phone)
}

func TestCreateWithServiceRoleNilHandle(t *testing.T) {
	err := CreateWithServiceRole(nil, &Profile{Email: "x@example.com"})
	assert.ErrorIs(t, err, database.ErrServiceRoleUnavailable)
}

func TestResetFlow(t *testing.T) {
	store := newTestStore(t, false)
	h := NewHandler(store, notify.New(nil), nil)
	p := seedProfile(t, store.App, "reset@example.com", "oldpass", auth.RoleClient)

	body, _ := json.Marshal(map[string]string{"email": "reset@example.com"})
	w := httptest.NewRecorder()
	h.RequestReset(w, httptest.NewRequest("POST", "/auth/reset", bytes.NewReader(body)))
	require.Equal(t, http.StatusAccepted, w.Code)

	var reset PasswordReset
	require.NoError(t, store.App.Where("profile_id = ?", p.ID).First(&reset).Error)

	body, _ = json.Marshal(map[string]string{"token": reset.Token, "password": "newpass"})
	w = httptest.NewRecorder()
	h.ConfirmReset(w, httptest.NewRequest("POST", "/auth/reset/confirm", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)

	var updated Profile
	require.NoError(t, store.App.First(&updated, p.ID).Error)
	assert.True(t, utils.CheckPassword(updated.PasswordHash, "newpass"))

	// Token is single-use.
	w = httptest.NewRecorder()
	body, _ = json.Marshal(map[string]string{"token": reset.Token, "password": "again"})
	h.ConfirmReset(w, httptest.NewRequest("POST", "/auth/reset/confirm", bytes.NewReader(body)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestResetUnknownEmailStillAccepted(t *testing.T) {
	store := newTestStore(t, false)
	h := NewHandler(store, notify.New(nil), nil)

	body, _ := json.Marshal(map[string]string{"email": "nobody@example.com"})
	w := httptest.NewRecorder()
	h.RequestReset(w, httptest.NewRequest("POST", "/auth/reset", bytes.NewReader(body)))
	assert.Equal(t, http.StatusAccepted, w.Code)
}

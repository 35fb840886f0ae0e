package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/asahina-dev/teamspace-api/internal/constants"
	"github.com/asahina-dev/teamspace-api/internal/database"
	"github.com/asahina-dev/teamspace-api/internal/middleware"
	"github.com/asahina-dev/teamspace-api/internal/models"
	"github.com/asahina-dev/teamspace-api/internal/repository"
	"github.com/asahina-dev/teamspace-api/internal/services"
)

// setupAuthTestRouter wires a full router because login/logout need the
// session middleware in place.
func setupAuthTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Workspace{}, &models.Member{}, &models.Project{}))
	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	authService := services.NewAuthService(repository.NewUserRepository(db))
	handler := NewAuthHandler(authService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions(constants.SessionName, store))

	auth := r.Group("/api/auth")
	auth.POST("/signup", handler.Signup)
	auth.POST("/login", handler.Login)
	auth.POST("/logout", handler.Logout)
	auth.GET("/me", middleware.RequireAuth(), handler.GetCurrentUser)

	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	r := setupAuthTestRouter(t)

	w := postJSON(t, r, "/api/auth/signup", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "correct-horse",
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Data struct {
			ID    uint64 `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Alice", response.Data.Name)
	require.Equal(t, "alice@example.com", response.Data.Email)
}

func TestAuthHandler_Signup_ShortPassword(t *testing.T) {
	r := setupAuthTestRouter(t)

	w := postJSON(t, r, "/api/auth/signup", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "short",
	}, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Signup_DuplicateEmail(t *testing.T) {
	r := setupAuthTestRouter(t)

	payload := map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "correct-horse",
	}
	require.Equal(t, http.StatusCreated, postJSON(t, r, "/api/auth/signup", payload, nil).Code)
	require.Equal(t, http.StatusConflict, postJSON(t, r, "/api/auth/signup", payload, nil).Code)
}

func TestAuthHandler_LoginAndMe(t *testing.T) {
	r := setupAuthTestRouter(t)

	postJSON(t, r, "/api/auth/signup", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "correct-horse",
	}, nil)

	w := postJSON(t, r, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "correct-horse",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	me := httptest.NewRecorder()
	r.ServeHTTP(me, req)

	require.Equal(t, http.StatusOK, me.Code)

	var response struct {
		Data struct {
			Email string `json:"email"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(me.Body.Bytes(), &response))
	require.Equal(t, "alice@example.com", response.Data.Email)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	r := setupAuthTestRouter(t)

	postJSON(t, r, "/api/auth/signup", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "correct-horse",
	}, nil)

	w := postJSON(t, r, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-horse",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Me_NoSession(t *testing.T) {
	r := setupAuthTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"miniboard/config"
	"miniboard/models"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	config.SetForTesting(config.AppConfig{
		AppPort:        "0",
		JWTSecret:      "test-secret-key",
		GinMode:        "test",
		GinPath:        filepath.Join(t.TempDir(), "gin.log"),
		AllowedOrigins: []string{"*"},
		LogLevel:       "error",
		AdminUsernames: []string{"root"},
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}))

	return SetupRouter(db)
}

type apiResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func login(t *testing.T, r *gin.Engine, username, password string) (string, map[string]interface{}) {
	t.Helper()
	w, resp := doJSON(t, r, http.MethodPost, "/api/login", "", map[string]string{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Token string                 `json:"token"`
		User  map[string]interface{} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token, data.User
}

func TestRegisterEndpoint(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{"valid signup", map[string]string{"username": "alice", "password": "pw1"}, http.StatusCreated},
		{"missing username", map[string]string{"password": "pw1"}, http.StatusBadRequest},
		{"missing password", map[string]string{"username": "bob"}, http.StatusBadRequest},
		{"duplicate username", map[string]string{"username": "alice", "password": "pw2"}, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := doJSON(t, r, http.MethodPost, "/api/register", "", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestLoginEndpoint(t *testing.T) {
	r := setupRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/register", "", map[string]string{"username": "alice", "password": "pw1"})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("success", func(t *testing.T) {
		_, user := login(t, r, "alice", "pw1")
		assert.Equal(t, "alice", user["username"])
		assert.Equal(t, false, user["isAdmin"])
		assert.NotEmpty(t, user["id"])
		_, hasPassword := user["password"]
		assert.False(t, hasPassword)
	})

	t.Run("wrong password", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, "/api/login", "", map[string]string{"username": "alice", "password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, "/api/login", "", map[string]string{"username": "nobody", "password": "pw1"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, "/api/login", "", map[string]string{"username": "alice"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPostEndpoints(t *testing.T) {
	r := setupRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/register", "", map[string]string{"username": "alice", "password": "pw1"})
	require.Equal(t, http.StatusCreated, w.Code)
	token, _ := login(t, r, "alice", "pw1")

	t.Run("create requires auth", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, "/api/posts", "", map[string]string{"title": "T", "content": "C"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("create validates fields", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, "/api/posts", token, map[string]string{"title": "", "content": "C"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("attribution comes from the token", func(t *testing.T) {
		// Client-supplied author fields are ignored.
		w, _ := doJSON(t, r, http.MethodPost, "/api/posts", token, map[string]string{
			"title": "Hello", "content": "first", "authorId": "spoofed", "authorUsername": "mallory",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		w, resp := doJSON(t, r, http.MethodGet, "/api/posts", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var posts []map[string]interface{}
		require.NoError(t, json.Unmarshal(resp.Data, &posts))
		require.Len(t, posts, 1)
		assert.Equal(t, "alice", posts[0]["authorUsername"])
		assert.NotEqual(t, "spoofed", posts[0]["authorId"])
	})

	t.Run("list is newest first", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, "/api/posts", token, map[string]string{"title": "Second", "content": "later"})
		require.Equal(t, http.StatusCreated, w.Code)

		_, resp := doJSON(t, r, http.MethodGet, "/api/posts", "", nil)
		var posts []models.Post
		require.NoError(t, json.Unmarshal(resp.Data, &posts))
		require.Len(t, posts, 2)
		for i := 1; i < len(posts); i++ {
			assert.False(t, posts[i-1].CreatedAt.Before(posts[i].CreatedAt))
		}
	})
}

func TestAdminEndpoints(t *testing.T) {
	r := setupRouter(t)

	// "root" is configured as a bootstrap admin in setupRouter.
	w, _ := doJSON(t, r, http.MethodPost, "/api/register", "", map[string]string{"username": "root", "password": "rootpw"})
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = doJSON(t, r, http.MethodPost, "/api/register", "", map[string]string{"username": "alice", "password": "pw1"})
	require.Equal(t, http.StatusCreated, w.Code)

	adminToken, adminUser := login(t, r, "root", "rootpw")
	require.Equal(t, true, adminUser["isAdmin"])
	userToken, _ := login(t, r, "alice", "pw1")

	t.Run("non-admin denied", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodGet, "/api/admin/users", userToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("anonymous denied", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodGet, "/api/admin/users", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("list users omits password material", func(t *testing.T) {
		w, resp := doJSON(t, r, http.MethodGet, "/api/admin/users", adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var users []map[string]interface{}
		require.NoError(t, json.Unmarshal(resp.Data, &users))
		require.Len(t, users, 2)
		for _, u := range users {
			_, hasHash := u["PasswordHash"]
			assert.False(t, hasHash)
			_, hasPassword := u["password"]
			assert.False(t, hasPassword)
		}
	})

	t.Run("delete user id validation", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodDelete, "/api/admin/users/not-a-uuid", adminToken, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w, _ = doJSON(t, r, http.MethodDelete, "/api/admin/users/00000000-0000-0000-0000-000000000000", adminToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// TestEndToEndScenario walks the whole register/login/post/moderate flow.
func TestEndToEndScenario(t *testing.T) {
	r := setupRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/register", "", map[string]string{"username": "alice", "password": "pw1"})
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/register", "", map[string]string{"username": "alice", "password": "pw2"})
	require.Equal(t, http.StatusConflict, w.Code)

	aliceToken, aliceUser := login(t, r, "alice", "pw1")
	require.Equal(t, false, aliceUser["isAdmin"])

	w, _ = doJSON(t, r, http.MethodPost, "/api/posts", aliceToken, map[string]string{"title": "T", "content": "C"})
	require.Equal(t, http.StatusCreated, w.Code)

	_, resp := doJSON(t, r, http.MethodGet, "/api/posts", "", nil)
	var posts []models.Post
	require.NoError(t, json.Unmarshal(resp.Data, &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "alice", posts[0].AuthorUsername)
	postID := posts[0].ID

	// Non-admin may not moderate.
	w, _ = doJSON(t, r, http.MethodDelete, "/api/admin/posts/"+postID, aliceToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// Admin may.
	w, _ = doJSON(t, r, http.MethodPost, "/api/register", "", map[string]string{"username": "root", "password": "rootpw"})
	require.Equal(t, http.StatusCreated, w.Code)
	adminToken, _ := login(t, r, "root", "rootpw")

	w, _ = doJSON(t, r, http.MethodDelete, "/api/admin/posts/"+postID, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, resp = doJSON(t, r, http.MethodGet, "/api/posts", "", nil)
	require.NoError(t, json.Unmarshal(resp.Data, &posts))
	assert.Empty(t, posts)
}

func TestLogoutRevokesToken(t *testing.T) {
	r := setupRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/register", "", map[string]string{"username": "alice", "password": "pw1"})
	require.Equal(t, http.StatusCreated, w.Code)
	token, _ := login(t, r, "alice", "pw1")

	w, _ = doJSON(t, r, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealth(t *testing.T) {
	r := setupRouter(t)
	w, _ := doJSON(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

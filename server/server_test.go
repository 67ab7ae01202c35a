package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gymunity/backend/auth"
	"github.com/gymunity/backend/news"
	"github.com/gymunity/backend/utils"
	"github.com/gymunity/backend/utils/dotenv"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	dotenv.LoadDotEnvsInTests()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db, _ := utils.CreateTempDB(t)
	server := New(db, news.NewService(db), auth.ConfigFromEnv())
	return server.Router(), db
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func registerAndLogin(t *testing.T, router *gin.Engine, email, role string) string {
	t.Helper()
	payload := fmt.Sprintf(`{"name":"Tester","email":"%s","password":"hunter22","role":"%s"}`, email, role)
	resp := doJSON(t, router, http.MethodPost, "/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doJSON(t, router, http.MethodPost, "/auth/login", "", fmt.Sprintf(`{"email":"%s","password":"hunter22"}`, email))
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Equal(t, "bearer", body.TokenType)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(t, router, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doJSON(t, router, http.MethodGet, "/ai/health", "", "")
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "GymUnity AI")
}

func TestRegisterValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/auth/register", "",
		`{"name":"A","email":"a@test.com","password":"hunter22","role":"user"}`)
	require.Equal(t, http.StatusCreated, resp.Code)
	// The password hash never leaves the server.
	require.NotContains(t, resp.Body.String(), "password")

	resp = doJSON(t, router, http.MethodPost, "/auth/register", "",
		`{"name":"A","email":"a@test.com","password":"hunter22","role":"user"}`)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Contains(t, resp.Body.String(), "Email already registered")

	resp = doJSON(t, router, http.MethodPost, "/auth/register", "",
		`{"name":"B","email":"b@test.com","password":"hunter22","role":"superadmin"}`)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Contains(t, resp.Body.String(), "Invalid role")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router, _ := newTestRouter(t)
	registerAndLogin(t, router, "login@test.com", "user")

	resp := doJSON(t, router, http.MethodPost, "/auth/login", "", `{"email":"login@test.com","password":"wrong22"}`)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.Contains(t, resp.Body.String(), "Invalid credentials")

	resp = doJSON(t, router, http.MethodPost, "/auth/login", "", `{"email":"nobody@test.com","password":"hunter22"}`)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAuthenticationRequired(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(t, router, http.MethodGet, "/news/explore", "", "")
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.Contains(t, resp.Body.String(), "Not authenticated")

	resp = doJSON(t, router, http.MethodGet, "/news/explore", "garbage-token", "")
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.Contains(t, resp.Body.String(), "Invalid token")
}

func TestExploreAndSaveFlow(t *testing.T) {
	router, db := newTestRouter(t)
	token := registerAndLogin(t, router, "flow@test.com", "user")

	_, err := news.SeedSources(db)
	require.NoError(t, err)
	_, err = news.SeedMockArticles(db)
	require.NoError(t, err)

	resp := doJSON(t, router, http.MethodGet, "/news/explore?page=1&page_size=5", token, "")
	require.Equal(t, http.StatusOK, resp.Code)

	var page news.FeedPage
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &page))
	require.Equal(t, int64(8), page.Total)
	require.Len(t, page.Items, 5)

	articleID := page.Items[0].Id
	resp = doJSON(t, router, http.MethodPost, fmt.Sprintf("/news/articles/%d/save", articleID), token, "")
	require.Equal(t, http.StatusCreated, resp.Code)
	require.Contains(t, resp.Body.String(), `"status":"saved"`)

	resp = doJSON(t, router, http.MethodPost, fmt.Sprintf("/news/articles/%d/save", articleID), token, "")
	require.Equal(t, http.StatusCreated, resp.Code)
	require.Contains(t, resp.Body.String(), `"status":"already_saved"`)

	resp = doJSON(t, router, http.MethodGet, "/news/saved", token, "")
	require.Equal(t, http.StatusOK, resp.Code)
	var saved news.FeedPage
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &saved))
	require.Equal(t, int64(1), saved.Total)

	resp = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/news/articles/%d/save", articleID), token, "")
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"status":"deleted"`)

	resp = doJSON(t, router, http.MethodPost, fmt.Sprintf("/news/articles/%d/hide", articleID), token, "")
	require.Equal(t, http.StatusCreated, resp.Code)
	require.Contains(t, resp.Body.String(), `"status":"hidden"`)

	resp = doJSON(t, router, http.MethodGet, "/news/articles/999999", token, "")
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestPreferencesEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)
	token := registerAndLogin(t, router, "prefs@test.com", "user")

	resp := doJSON(t, router, http.MethodGet, "/news/preferences", token, "")
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"level":"beginner"`)
	require.Contains(t, resp.Body.String(), `"equipment":"gym"`)

	resp = doJSON(t, router, http.MethodPost, "/news/preferences", token,
		`{"topics":["Strength","CARDIO"],"level":"advanced","equipment":"home","blocked_keywords":["injury"]}`)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"topics":["strength","cardio"]`)
	require.Contains(t, resp.Body.String(), `"level":"advanced"`)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	router, _ := newTestRouter(t)
	userToken := registerAndLogin(t, router, "plain@test.com", "user")

	resp := doJSON(t, router, http.MethodGet, "/admin/news/sources", userToken, "")
	require.Equal(t, http.StatusForbidden, resp.Code)
	require.Contains(t, resp.Body.String(), "Insufficient role")
}

func TestAdminSourceLifecycle(t *testing.T) {
	router, _ := newTestRouter(t)
	adminToken := registerAndLogin(t, router, "admin@test.com", "admin")

	resp := doJSON(t, router, http.MethodPost, "/admin/news/sources", adminToken,
		`{"name":"Test Feed","rss_url":"https://example.com/test/rss","tags":["strength"]}`)
	require.Equal(t, http.StatusCreated, resp.Code)

	var created news.SourceOut
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	require.True(t, created.Enabled)

	resp = doJSON(t, router, http.MethodPost, "/admin/news/sources", adminToken,
		`{"name":"Dup Feed","rss_url":"https://example.com/test/rss"}`)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Contains(t, resp.Body.String(), "RSS URL already exists")

	resp = doJSON(t, router, http.MethodPut, fmt.Sprintf("/admin/news/sources/%d", created.Id), adminToken,
		`{"name":"Renamed Feed"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "Renamed Feed")

	resp = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/admin/news/sources/%d/toggle", created.Id), adminToken, "")
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"enabled":false`)

	resp = doJSON(t, router, http.MethodPost, "/admin/news/fetch-now", adminToken, "")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doJSON(t, router, http.MethodGet, "/admin/news/status", adminToken, "")
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "last_run")

	resp = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/admin/news/sources/%d", created.Id), adminToken, "")
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/admin/news/sources/%d", created.Id), adminToken, "")
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestChatEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)
	token := registerAndLogin(t, router, "chat@test.com", "user")

	resp := doJSON(t, router, http.MethodPost, "/ai/chat", token,
		`{"message":"hello","context":{"goal":"build muscle","level":"beginner","days_per_week":3,"equipment":"gym"}}`)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "muscle gain")
	require.Contains(t, resp.Body.String(), "suggested_plan")

	resp = doJSON(t, router, http.MethodPost, "/news/chat", token, `{"message":"what is new"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "Pipeline not connected yet. I received: 'what is new'.")

	resp = doJSON(t, router, http.MethodPost, "/news/chat", token, `{"message":"  "}`)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "No message provided")
}

func TestRequestIdHeader(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(t, router, http.MethodGet, "/health", "", "")
	require.NotEmpty(t, resp.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "fixed-id")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	require.Equal(t, "fixed-id", recorder.Header().Get("X-Request-Id"))
}

package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fakeaccountrepo "github.com/jrsteele09/surf-club-server/accounts/repofake"
	"github.com/jrsteele09/surf-club-server/auth"
	"github.com/jrsteele09/surf-club-server/comments"
	fakecommentrepo "github.com/jrsteele09/surf-club-server/comments/repofake"
	"github.com/jrsteele09/surf-club-server/internal/config"
	"github.com/jrsteele09/surf-club-server/posts"
	fakepostrepo "github.com/jrsteele09/surf-club-server/posts/repofake"
	"github.com/jrsteele09/surf-club-server/server"
	"github.com/jrsteele09/surf-club-server/token"
)

type stubModel struct{}

func (stubModel) Generate(_ context.Context, prompt string) (string, error) {
	return "Paddle out at dawn 🌊", nil
}

// testFixture holds all test dependencies
type testFixture struct {
	accounts *fakeaccountrepo.FakeAccountRepo
	server   *server.Server
}

func setupTestFixture(t *testing.T, options ...server.Option) *testFixture {
	t.Helper()

	codec, err := token.NewCodec(token.Config{
		AccessSecret:    "access-secret",
		RefreshSecret:   "refresh-secret",
		AccessLifetime:  15 * time.Minute,
		RefreshLifetime: time.Hour,
		Issuer:          "surf-club",
	})
	require.NoError(t, err)

	accountRepo := fakeaccountrepo.NewFakeAccountRepo()
	postRepo := fakepostrepo.NewFakePostRepo()
	sessions, err := auth.NewSessionManager(auth.Repos{Accounts: accountRepo}, codec)
	require.NoError(t, err)

	cfg := &config.Config{Env: "TEST", Cors: config.Cors{AllowedOrigins: []string{"https://club.example"}}}
	srv, err := server.New(cfg, server.Services{
		Sessions: sessions,
		Accounts: accountRepo,
		Posts:    posts.NewService(postRepo, accountRepo),
		Comments: comments.NewService(fakecommentrepo.NewFakeCommentRepo(), postRepo),
	}, options...)
	require.NoError(t, err)

	return &testFixture{accounts: accountRepo, server: srv}
}

func (f *testFixture) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

// signup registers and logs in, returning the access and refresh tokens.
func (f *testFixture) signup(t *testing.T, email string) (string, string, string) {
	t.Helper()
	rec := f.do(t, http.MethodPost, server.RouteRegister, "", map[string]string{
		"firstName": "Kai", "lastName": "Lenny", "email": email, "password": "secret1", "role": "surfer",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodPost, server.RouteLogin, "", map[string]string{"email": email, "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	return body["accessToken"].(string), body["refreshToken"].(string), body["id"].(string)
}

func (f *testFixture) promote(t *testing.T, id string) {
	t.Helper()
	require.NoError(t, f.accounts.SetHost(context.Background(), id, true))
}

func TestRegisterAndLogin(t *testing.T) {
	f := setupTestFixture(t)
	access, refresh, id := f.signup(t, "a@x.com")
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEmpty(t, id)

	rec := f.do(t, http.MethodPost, server.RouteRegister, "", map[string]string{
		"firstName": "Kai", "lastName": "Lenny", "email": "a@x.com", "password": "secret1", "role": "surfer",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodPost, server.RouteLogin, "", map[string]string{"email": "a@x.com", "password": "wrong1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(http.StatusUnauthorized), body["status"])
	assert.Equal(t, "Invalid email or password", body["message"])
}

func TestLoginResponseHidesSecrets(t *testing.T) {
	f := setupTestFixture(t)
	f.signup(t, "a@x.com")

	rec := f.do(t, http.MethodPost, server.RouteLogin, "", map[string]string{"email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "passwordHash")
	assert.NotContains(t, rec.Body.String(), "refreshTokens")
	assert.Equal(t, "a@x.com", decode(t, rec)["user"].(map[string]any)["email"])
}

func TestRefreshAndLogout(t *testing.T) {
	f := setupTestFixture(t)
	_, refresh, _ := f.signup(t, "a@x.com")

	rec := f.do(t, http.MethodPost, server.RouteRefreshToken, "", map[string]string{"token": refresh})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rotated := decode(t, rec)["refreshToken"].(string)
	require.NotEqual(t, refresh, rotated)

	rec = f.do(t, http.MethodPost, server.RouteRefreshToken, "", map[string]string{"token": refresh})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodPost, server.RouteRefreshToken, "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, server.RouteLogout, "", map[string]string{"token": rotated})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "User logged out successfully", decode(t, rec)["message"])

	rec = f.do(t, http.MethodPost, server.RouteLogout, "", map[string]string{"token": rotated})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBearerAuthentication(t *testing.T) {
	f := setupTestFixture(t)
	access, _, id := f.signup(t, "a@x.com")

	rec := f.do(t, http.MethodGet, "/user/getUser/"+id, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodGet, "/user/getUser/"+id, "not-a-token", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodGet, "/user/getUser/"+id, access, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@x.com", decode(t, rec)["email"])

	rec = f.do(t, http.MethodGet, "/user/getUser/missing", access, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateAndDeleteUser(t *testing.T) {
	f := setupTestFixture(t)
	access, _, _ := f.signup(t, "a@x.com")

	rec := f.do(t, http.MethodPut, server.RouteUpdateUser, access, map[string]string{"firstName": "Kai"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPut, server.RouteUpdateUser, access, map[string]string{
		"firstName": "Kai", "lastName": "Lenny", "role": "coach", "profilePicture": "https://img/kai.png", "bio": "maui",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "coach", decode(t, rec)["user"].(map[string]any)["role"])

	rec = f.do(t, http.MethodDelete, server.RouteDeleteUser, access, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, server.RouteActivities, access, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostFlow(t *testing.T) {
	f := setupTestFixture(t)
	hostAccess, _, hostID := f.signup(t, "host@x.com")
	surferAccess, _, _ := f.signup(t, "surfer@x.com")
	f.promote(t, hostID)

	newPost := map[string]any{
		"date": time.Now().AddDate(0, 0, 2).Format("02/01/2006"), "time": "06:30",
		"minimumWaveHeight": 1, "maximumWaveHeight": 2, "description": "dawn patrol",
	}
	rec := f.do(t, http.MethodPost, server.RoutePostCreate, surferAccess, newPost)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodPost, server.RoutePostCreate, hostAccess, newPost)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	postID := decode(t, rec)["post"].(map[string]any)["id"].(string)

	rec = f.do(t, http.MethodPost, "/post/join/"+postID, surferAccess, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["participantCount"])

	rec = f.do(t, http.MethodGet, server.RouteActivities, surferAccess, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var joined []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &joined))
	require.Len(t, joined, 1)

	rec = f.do(t, http.MethodPost, "/post/like/"+postID, surferAccess, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Post liked successfully", decode(t, rec)["message"])

	rec = f.do(t, http.MethodGet, server.RoutePostFuture, surferAccess, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var upcoming []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &upcoming))
	require.Len(t, upcoming, 1)

	rec = f.do(t, http.MethodDelete, "/post/deleteAllParticipants/"+postID, hostAccess, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/post/getById/"+postID, surferAccess, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decode(t, rec)["participantCount"])

	rec = f.do(t, http.MethodGet, "/post/getById/missing", surferAccess, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCommentFlow(t *testing.T) {
	f := setupTestFixture(t)
	hostAccess, _, hostID := f.signup(t, "host@x.com")
	surferAccess, _, surferID := f.signup(t, "surfer@x.com")
	f.promote(t, hostID)

	rec := f.do(t, http.MethodPost, server.RoutePostCreate, hostAccess, map[string]any{
		"date": "20/06/2026", "time": "06:30", "minimumWaveHeight": 1, "maximumWaveHeight": 2, "description": "dawn patrol",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	postID := decode(t, rec)["post"].(map[string]any)["id"].(string)

	rec = f.do(t, http.MethodPost, "/comment/create/"+postID, surferAccess, map[string]string{"content": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/comment/create/"+postID, surferAccess, map[string]string{"content": "count me in"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	commentID := decode(t, rec)["comment"].(map[string]any)["id"].(string)

	rec = f.do(t, http.MethodPut, "/comment/update/"+commentID, hostAccess, map[string]string{"content": "nope"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodGet, "/comment/userId/"+surferID, hostAccess, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(t, http.MethodGet, "/comment/userId/"+hostID, hostAccess, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodDelete, "/comment/delete/"+commentID, surferAccess, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decode(t, rec)["numOfComments"])

	rec = f.do(t, http.MethodGet, "/comment/postId/"+postID, surferAccess, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "No comments found for this post.", decode(t, rec)["message"])

	rec = f.do(t, http.MethodDelete, "/comment/deleteAll/"+postID, surferAccess, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestOptionalCollaborators(t *testing.T) {
	f := setupTestFixture(t)
	access, _, _ := f.signup(t, "a@x.com")

	rec := f.do(t, http.MethodPost, server.RouteChatMessage, access, map[string]string{"message": "hi"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = f.do(t, http.MethodPost, server.RouteMediaPresign, access, map[string]string{"kind": "avatar", "contentType": "image/png"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = f.do(t, http.MethodPost, server.RouteGoogleLogin, "", map[string]string{"credential": "x"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	f = setupTestFixture(t, server.WithChatModel(stubModel{}))
	access, _, _ = f.signup(t, "a@x.com")
	rec = f.do(t, http.MethodPost, server.RouteChatMessage, access, map[string]string{"message": "hi"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Paddle out at dawn 🌊", decode(t, rec)["message"])
}

func TestCors(t *testing.T) {
	f := setupTestFixture(t)

	req := httptest.NewRequest(http.MethodOptions, server.RouteLogin, nil)
	req.Header.Set("Origin", "https://club.example")
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://club.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")

	req = httptest.NewRequest(http.MethodOptions, server.RouteLogin, nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestBadBodyAndHealth(t *testing.T) {
	f := setupTestFixture(t)

	req := httptest.NewRequest(http.MethodPost, server.RouteLogin, bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, server.RouteHealth, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, server.RouteMetrics, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "surfclub_http_requests_total")
}

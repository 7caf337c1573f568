package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robochamp/backend/internal/backend/domain"
	"github.com/robochamp/backend/internal/backend/mail"
	"github.com/robochamp/backend/internal/backend/service"
	"github.com/robochamp/backend/internal/backend/store/drivers/sqlite"
	"github.com/robochamp/backend/pkg/cryptox"
	"github.com/robochamp/backend/pkg/jwtx"
)

type memMailer struct {
	mu   sync.Mutex
	sent []mail.Message
}

func (m *memMailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *memMailer) lastToken(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent)
	body := m.sent[len(m.sent)-1].Text
	i := strings.Index(body, "token=")
	require.GreaterOrEqual(t, i, 0)
	rest := body[i+len("token="):]
	if j := strings.IndexAny(rest, " \n"); j >= 0 {
		rest = rest[:j]
	}
	return rest
}

type apiFixture struct {
	srv    *httptest.Server
	store  *sqlite.Store
	mailer *memMailer
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	cryptox.SetPepperPath(t.TempDir() + "/pepper")

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	access, err := jwtx.NewSigner([]byte("access-secret-0123456789abcdef01"), "robochamp", jwtx.DefaultAccessTokenTTL)
	require.NoError(t, err)
	refresh, err := jwtx.NewSigner([]byte("refresh-secret-0123456789abcdef0"), "robochamp", jwtx.DefaultRefreshTokenTTL)
	require.NoError(t, err)

	mailer := &memMailer{}
	auth := service.NewAuthService(st, mailer, access, refresh, service.AuthConfig{
		FrontendURL: "http://app.test",
	})

	router := NewRouter(Services{
		Auth:       auth,
		Arenas:     service.NewArenaService(st),
		Categories: service.NewCategoryService(st),
		Teams:      service.NewTeamService(st),
		Matches:    service.NewMatchService(st),
		Users:      service.NewUserService(st),
	}, access, st.Ping)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(router.Handler(log))
	t.Cleanup(srv.Close)

	return &apiFixture{srv: srv, store: st, mailer: mailer}
}

func (f *apiFixture) do(t *testing.T, method, path, bearer string, body any) *http.Response {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, f.srv.URL+path, buf)
	require.NoError(t, err)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := f.srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// signUpAdmin registers, verifies and promotes an account, returning a live
// access token with the ADMIN role claim.
func (f *apiFixture) signUpAdmin(t *testing.T, email string) string {
	t.Helper()
	ctx := context.Background()

	resp := f.do(t, http.MethodPost, "/v1/auth/signup", "", map[string]string{
		"email": email, "name": "Admin", "password": "admin-password",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[map[string]string](t, resp)

	require.NoError(t, f.store.Users().UpdateRole(ctx, created["id"], domain.RoleAdmin))

	resp = f.do(t, http.MethodPost, "/v1/auth/verify-email", "", map[string]string{
		"token": f.mailer.lastToken(t),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	pair := decodeBody[domain.TokenPair](t, resp)
	return pair.AccessToken
}

func TestAuthFlowOverHTTP(t *testing.T) {
	f := newAPIFixture(t)

	// Signup, then signin before verification is refused.
	resp := f.do(t, http.MethodPost, "/v1/auth/signup", "", map[string]string{
		"email": "alice@example.com", "name": "Alice", "password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/v1/auth/signin", "", map[string]string{
		"email": "alice@example.com", "password": "correct-horse",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Duplicate signup conflicts.
	resp = f.do(t, http.MethodPost, "/v1/auth/signup", "", map[string]string{
		"email": "alice@example.com", "password": "correct-horse",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Verification signs the user in.
	resp = f.do(t, http.MethodPost, "/v1/auth/verify-email", "", map[string]string{
		"token": f.mailer.lastToken(t),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
	pair := decodeBody[domain.TokenPair](t, resp)
	require.NotEmpty(t, pair.AccessToken)

	// Refresh rotates; the old refresh token dies.
	resp = f.do(t, http.MethodPost, "/v1/auth/refresh", "", map[string]string{
		"refresh_token": pair.RefreshToken,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	next := decodeBody[domain.TokenPair](t, resp)

	resp = f.do(t, http.MethodPost, "/v1/auth/refresh", "", map[string]string{
		"refresh_token": pair.RefreshToken,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Logout requires a bearer token and then kills the session.
	resp = f.do(t, http.MethodPost, "/v1/auth/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/v1/auth/logout", next.AccessToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/v1/auth/refresh", "", map[string]string{
		"refresh_token": next.RefreshToken,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestBadSigninStatusOverHTTP(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodPost, "/v1/auth/signin", "", map[string]string{
		"email": "ghost@example.com", "password": "whatever-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	raw, err := f.srv.Client().Post(f.srv.URL+"/v1/auth/signin", "application/json",
		strings.NewReader("{not json"))
	require.NoError(t, err)
	defer raw.Body.Close()
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
}

func TestCRUDRequiresAdminOverHTTP(t *testing.T) {
	f := newAPIFixture(t)

	// Anonymous create is refused.
	resp := f.do(t, http.MethodPost, "/v1/categories", "", map[string]string{"name": "Sumo"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := f.signUpAdmin(t, "admin@example.com")

	resp = f.do(t, http.MethodPost, "/v1/categories", token, map[string]string{
		"name": "Sumo", "score_rules": "best of 3",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cat := decodeBody[categoryResponse](t, resp)
	require.NotEmpty(t, cat.ID)

	// Public read works without a token.
	resp = f.do(t, http.MethodGet, "/v1/categories/"+cat.ID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/v1/categories/no-such-id", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// A plain USER cannot mutate.
	userResp := f.do(t, http.MethodPost, "/v1/auth/signup", "", map[string]string{
		"email": "user@example.com", "password": "user-password",
	})
	require.Equal(t, http.StatusCreated, userResp.StatusCode)
	verifyResp := f.do(t, http.MethodPost, "/v1/auth/verify-email", "", map[string]string{
		"token": f.mailer.lastToken(t),
	})
	require.Equal(t, http.StatusOK, verifyResp.StatusCode)
	userPair := decodeBody[domain.TokenPair](t, verifyResp)

	resp = f.do(t, http.MethodDelete, "/v1/categories/"+cat.ID, userPair.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Users surface is admin only.
	resp = f.do(t, http.MethodGet, "/v1/users", userPair.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/v1/users", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	users := decodeBody[[]userResponse](t, resp)
	require.Len(t, users, 2)

	// Admin can remove an account.
	var plainUserID string
	for _, u := range users {
		if u.Email == "user@example.com" {
			plainUserID = u.ID
		}
	}
	require.NotEmpty(t, plainUserID)

	resp = f.do(t, http.MethodDelete, "/v1/users/"+plainUserID, token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/v1/users/"+plainUserID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMatchLifecycleOverHTTP(t *testing.T) {
	f := newAPIFixture(t)
	token := f.signUpAdmin(t, "admin@example.com")

	resp := f.do(t, http.MethodPost, "/v1/categories", token, map[string]string{"name": "Sumo"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cat := decodeBody[categoryResponse](t, resp)

	resp = f.do(t, http.MethodPost, "/v1/arenas", token, map[string]string{
		"name": "Main", "category_id": cat.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	arena := decodeBody[arenaResponse](t, resp)

	mkTeam := func(name, robot string) teamResponse {
		resp := f.do(t, http.MethodPost, "/v1/teams", token, map[string]string{
			"name": name, "robot_name": robot, "category_id": cat.ID,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		return decodeBody[teamResponse](t, resp)
	}
	teamA := mkTeam("Alpha", "Crusher")
	teamB := mkTeam("Beta", "Pusher")

	resp = f.do(t, http.MethodPost, "/v1/matches", token, map[string]any{
		"team_a_id": teamA.ID,
		"team_b_id": teamB.ID,
		"arena_id":  arena.ID,
		"date":      "2026-10-01T14:00:00Z",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	m := decodeBody[matchResponse](t, resp)
	assert.Equal(t, "SCHEDULED", m.Status)

	resp = f.do(t, http.MethodPost, "/v1/matches/"+m.ID+"/start", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Starting twice is a state violation.
	resp = f.do(t, http.MethodPost, "/v1/matches/"+m.ID+"/start", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/v1/matches/"+m.ID+"/result", token, map[string]string{
		"result": "TEAM_A",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/v1/matches/"+m.ID+"/end", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	final := decodeBody[matchResponse](t, resp)
	assert.Equal(t, "FINISHED", final.Status)
	assert.Equal(t, "TEAM_A", final.Result)
	assert.NotNil(t, final.EndTime)
}

func TestHealthEndpoints(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodGet, "/livez", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

package score_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/omok-go/auth"
	"github.com/user/omok-go/config"
	"github.com/user/omok-go/score"
	"github.com/user/omok-go/sessions"
)

// newTestRouter assembles the real handler stack over an in-memory session
// store and user repository, mirroring the wiring in main.
func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	repo := newFakeUserRepo()
	store := sessions.NewMemoryStore()
	manager := sessions.NewManager(store, config.SessionConfig{
		CookieName: "session_id",
		TTL:        time.Hour,
	})

	hasher, err := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	authHandlers := auth.NewHandlers(auth.NewService(repo, hasher), manager)
	scoreHandlers := score.NewHandlers(score.NewService(repo), manager)

	r := chi.NewRouter()
	r.Post("/signup", authHandlers.HandleSignup())
	r.Post("/signin", authHandlers.HandleSignin())
	r.Post("/signout", authHandlers.HandleSignout())
	r.Post("/addscore", scoreHandlers.HandleAddScore())
	r.Get("/score", scoreHandlers.HandleGetScore())
	return r
}

func doRequest(t *testing.T, r http.Handler, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// signupAndSignin runs the signup/signin flow and returns the session cookies.
func signupAndSignin(t *testing.T, r http.Handler) []*http.Cookie {
	t.Helper()

	rec := doRequest(t, r, http.MethodPost, "/signup",
		`{"username":"player1","password":"sekret","nickname":"Stone Master"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, r, http.MethodPost, "/signin",
		`{"username":"player1","password":"sekret"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp auth.SigninResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, auth.Success, resp.Result)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies, "signin should set the session cookie")
	return cookies
}

func TestSignupSigninFlow(t *testing.T) {
	r := newTestRouter(t)

	t.Run("signup then signin succeeds with the session snapshot", func(t *testing.T) {
		cookies := signupAndSignin(t, r)

		rec := doRequest(t, r, http.MethodGet, "/score", "", cookies)
		require.Equal(t, http.StatusOK, rec.Code)

		var view score.ScoreResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, "player1", view.Username)
		assert.Equal(t, "Stone Master", view.Nickname)
		assert.Equal(t, int64(0), view.Score)
	})

	t.Run("duplicate signup answers 409", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodPost, "/signup",
			`{"username":"player1","password":"other","nickname":"Other"}`, nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("signup with a missing field answers 400", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodPost, "/signup",
			`{"username":"player2","password":"sekret"}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong password is HTTP 200 with result code 1 and no cookie", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodPost, "/signin",
			`{"username":"player1","password":"wrong"}`, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp auth.SigninResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, auth.InvalidPassword, resp.Result)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("unknown username is HTTP 200 with result code 0", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodPost, "/signin",
			`{"username":"nobody","password":"sekret"}`, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp auth.SigninResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, auth.InvalidUsername, resp.Result)
	})
}

func TestScoreEndpoints(t *testing.T) {
	t.Run("addscore without a session answers 400", func(t *testing.T) {
		r := newTestRouter(t)
		rec := doRequest(t, r, http.MethodPost, "/addscore", `{"score":"42"}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("score without a session answers 403", func(t *testing.T) {
		r := newTestRouter(t)
		rec := doRequest(t, r, http.MethodGet, "/score", "", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("non-numeric score answers 400 without persisting", func(t *testing.T) {
		r := newTestRouter(t)
		cookies := signupAndSignin(t, r)

		rec := doRequest(t, r, http.MethodPost, "/addscore", `{"score":"abc"}`, cookies)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = doRequest(t, r, http.MethodGet, "/score", "", cookies)
		require.Equal(t, http.StatusOK, rec.Code)
		var view score.ScoreResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, int64(0), view.Score)
	})

	t.Run("numeric string score round-trips", func(t *testing.T) {
		r := newTestRouter(t)
		cookies := signupAndSignin(t, r)

		rec := doRequest(t, r, http.MethodPost, "/addscore", `{"score":"42"}`, cookies)
		require.Equal(t, http.StatusOK, rec.Code)

		var ack score.AddScoreResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
		assert.NotEmpty(t, ack.Message)

		rec = doRequest(t, r, http.MethodGet, "/score", "", cookies)
		require.Equal(t, http.StatusOK, rec.Code)
		var view score.ScoreResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, int64(42), view.Score)
	})

	t.Run("JSON number score round-trips", func(t *testing.T) {
		r := newTestRouter(t)
		cookies := signupAndSignin(t, r)

		rec := doRequest(t, r, http.MethodPost, "/addscore", `{"score":7}`, cookies)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(t, r, http.MethodGet, "/score", "", cookies)
		require.Equal(t, http.StatusOK, rec.Code)
		var view score.ScoreResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, int64(7), view.Score)
	})

	t.Run("last score write wins", func(t *testing.T) {
		r := newTestRouter(t)
		cookies := signupAndSignin(t, r)

		for _, body := range []string{`{"score":"10"}`, `{"score":"3"}`} {
			rec := doRequest(t, r, http.MethodPost, "/addscore", body, cookies)
			require.Equal(t, http.StatusOK, rec.Code)
		}

		rec := doRequest(t, r, http.MethodGet, "/score", "", cookies)
		require.Equal(t, http.StatusOK, rec.Code)
		var view score.ScoreResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, int64(3), view.Score)
	})
}

func TestSignout(t *testing.T) {
	r := newTestRouter(t)
	cookies := signupAndSignin(t, r)

	rec := doRequest(t, r, http.MethodPost, "/signout", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	t.Run("score after signout answers 403", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodGet, "/score", "", cookies)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("addscore after signout answers 400", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodPost, "/addscore", `{"score":"42"}`, cookies)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("signout is idempotent", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodPost, "/signout", "", cookies)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

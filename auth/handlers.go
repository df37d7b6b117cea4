// This file holds the HTTP handlers for the auth endpoints, plus the shared
// response helpers the score handlers reuse.
package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/user/omok-go/apperror"
	"github.com/user/omok-go/sessions"
)

// Handlers wraps the auth Service and the session Manager to provide HTTP
// handlers.
type Handlers struct {
	service  *Service
	sessions *sessions.Manager
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *Service, sessionManager *sessions.Manager) *Handlers {
	return &Handlers{service: service, sessions: sessionManager}
}

// HandleSignup godoc
// @Summary Sign up
// @Description Creates a new player account.
// @Tags Auth
// @Accept json
// @Produce plain
// @Param signupBody body auth.SignupRequest true "New account details"
// @Success 201 {string} string "account created"
// @Failure 400 {object} apperror.ErrorResponse "Missing field"
// @Failure 409 {object} apperror.ErrorResponse "Username already exists"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /signup [post]
func (h *Handlers) HandleSignup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if _, err := h.service.Signup(r.Context(), req); err != nil {
			WriteError(w, r, err)
			return
		}

		// The game clients expect a plain text acknowledgement here, not a
		// JSON body.
		writeText(w, http.StatusCreated, "account created")
	}
}

// HandleSignin godoc
// @Summary Sign in
// @Description Verifies credentials and opens a cookie-bound session. The
// three business outcomes (unknown username = 0, wrong password = 1,
// success = 2) all return HTTP 200 with a result code; clients must branch
// on the code, not the status.
// @Tags Auth
// @Accept json
// @Produce json
// @Param signinBody body auth.SigninRequest true "Credentials"
// @Success 200 {object} auth.SigninResponse "Result code"
// @Failure 400 {object} apperror.ErrorResponse "Missing field"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /signin [post]
func (h *Handlers) HandleSignin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SigninRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		result, err := h.service.Signin(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		if result.Code == Success {
			if _, err := h.sessions.Create(r.Context(), w, result.User); err != nil {
				WriteError(w, r, err)
				return
			}
		}

		writeJSON(w, http.StatusOK, SigninResponse{Result: result.Code})
	}
}

// HandleSignout godoc
// @Summary Sign out
// @Description Destroys the current session. Fails with 500 when the backing
// store cannot be updated; the cookie is cleared either way.
// @Tags Auth
// @Produce plain
// @Success 200 {string} string "signed out"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /signout [post]
func (h *Handlers) HandleSignout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
			WriteError(w, r, err)
			return
		}
		writeText(w, http.StatusOK, "signed out")
	}
}

// writeJSON serializes data to JSON and writes it with the given status.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// writeText writes a plain text body with the given status.
func writeText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}

// WriteError converts any error into the standardized error response. 5xx
// causes are logged with request context; the wrapped detail never reaches
// the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}

	if appErr.StatusCode() >= http.StatusInternalServerError {
		log.Printf("Error processing request %s %s: %v", r.Method, r.URL.Path, appErr)
	}

	writeJSON(w, appErr.StatusCode(), appErr.ToResponse())
}

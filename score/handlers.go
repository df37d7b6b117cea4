// This file holds the HTTP handlers for the score endpoints.
package score

import (
	"encoding/json"
	"net/http"

	"github.com/user/omok-go/apperror"
	"github.com/user/omok-go/auth"
	"github.com/user/omok-go/sessions"
)

// Handlers wraps the score Service and the session Manager to provide HTTP
// handlers.
type Handlers struct {
	service  *Service
	sessions *sessions.Manager
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *Service, sessionManager *sessions.Manager) *Handlers {
	return &Handlers{service: service, sessions: sessionManager}
}

// HandleAddScore godoc
// @Summary Record a score
// @Description Persists the submitted score for the signed-in player.
// @Tags Score
// @Accept json
// @Produce json
// @Param scoreBody body score.AddScoreRequest true "Score value (number or numeric string)"
// @Success 200 {object} score.AddScoreResponse "Score updated"
// @Failure 400 {object} apperror.ErrorResponse "Not signed in, invalid score, or user not found"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /addscore [post]
func (h *Handlers) HandleAddScore() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddScoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		sess, _ := h.sessions.Current(r.Context(), r)

		if err := h.service.AddScore(r.Context(), sess, req.Score); err != nil {
			// This endpoint has always answered 400 to unauthenticated
			// callers while GET /score answers 403. Deployed clients key on
			// that, so the authorization failure is downgraded here instead
			// of unified. NotFound is likewise flattened to 400 on this
			// endpoint only.
			if appErr, ok := apperror.FromError(err); ok {
				switch {
				case apperror.IsUnauthorizedError(err):
					err = apperror.NewBadRequestError("sign in required", nil)
				case apperror.IsNotFound(err):
					err = apperror.NewBadRequestError(appErr.Message, nil)
				}
			}
			auth.WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, AddScoreResponse{Message: "score updated"})
	}
}

// HandleGetScore godoc
// @Summary Get the current score
// @Description Returns id, username, nickname and score for the signed-in
// player. Score defaults to 0 when no score has been recorded yet.
// @Tags Score
// @Produce json
// @Success 200 {object} score.ScoreResponse "Score view"
// @Failure 403 {object} apperror.ErrorResponse "Not signed in"
// @Failure 404 {object} apperror.ErrorResponse "User not found"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /score [get]
func (h *Handlers) HandleGetScore() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := h.sessions.Current(r.Context(), r)

		resp, err := h.service.GetScore(r.Context(), sess)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, resp)
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

// Package score exposes the score read/update operations for signed-in
// players.
//
// This file defines the request and response payloads for the score
// endpoints.
package score

import "encoding/json"

// ScoreInput carries the submitted score. Deployed game clients send it
// either as a JSON number or as a numeric string, so both decode to the raw
// textual form and validation happens in the service.
type ScoreInput string

// UnmarshalJSON accepts a JSON string or number token. Anything else is kept
// verbatim and rejected later by numeric validation.
func (v *ScoreInput) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = ScoreInput(s)
		return nil
	}
	*v = ScoreInput(data)
	return nil
}

// AddScoreRequest represents the addscore request payload.
type AddScoreRequest struct {
	Score ScoreInput `json:"score" example:"42"`
}

// AddScoreResponse is the acknowledgement returned after a score write.
type AddScoreResponse struct {
	Message string `json:"message" example:"score updated"`
}

// ScoreResponse is the score read payload. Score is 0 for accounts that have
// never recorded a score.
type ScoreResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Score    int64  `json:"score"`
}

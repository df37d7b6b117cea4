// This file defines the request and response payloads for the auth endpoints.
package auth

// SignupRequest represents the signup request payload.
type SignupRequest struct {
	Username string `json:"username" example:"player1"`
	Password string `json:"password" example:"strongpassword123"`
	Nickname string `json:"nickname" example:"Stone Master"`
}

// SigninRequest represents the signin request payload.
type SigninRequest struct {
	Username string `json:"username" example:"player1"`
	Password string `json:"password" example:"strongpassword123"`
}

// SigninCode distinguishes the three signin outcomes. All three are returned
// inside an HTTP 200 response; clients branch on the code, not on the
// transport status. The numeric values are part of the wire contract.
type SigninCode int

const (
	// InvalidUsername means no account exists for the username.
	InvalidUsername SigninCode = 0
	// InvalidPassword means the account exists but the password mismatched.
	InvalidPassword SigninCode = 1
	// Success means credentials matched and a session was created.
	Success SigninCode = 2
)

// SigninResponse is the flat JSON shape the signin endpoint returns.
type SigninResponse struct {
	Result SigninCode `json:"result" example:"2"`
}

package models

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"

	MwAuthKey = "auth"
)

// AuthPayload is the decoded identity attached to the request context by the
// authentication middleware. SessionID is zero unless the payload was decoded
// from a refresh token.
type AuthPayload struct {
	Sub       string `json:"sub"`
	Role      Role   `json:"role"`
	SessionID int64  `json:"sessionId,omitempty"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

package domain

// TokenPair is what a successful signin, email verification or refresh
// returns: a short-lived access JWT and a longer-lived refresh JWT.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"` // always "Bearer"
	ExpiresIn    int64  `json:"expires_in"`           // access token lifetime, seconds
}

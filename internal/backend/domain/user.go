package domain

import "time"

// User is the credential record for a championship participant or organizer.
//
// PasswordHash is a PHC-encoded Argon2id digest and is always set.
// RefreshTokenHash holds the SHA-256 fingerprint of the single currently
// valid refresh token, or "" when the user has no active session.
// VerificationTokenHash / VerificationTokenExpiresAt are the pending
// email-verification (or password-reset) token; they are set and cleared
// together, never one without the other.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         Role

	EmailVerified              bool
	VerificationTokenHash      string
	VerificationTokenExpiresAt *time.Time

	RefreshTokenHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasActiveSession reports whether a refresh token is currently live.
func (u User) HasActiveSession() bool { return u.RefreshTokenHash != "" }

package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/robochamp/backend/internal/backend/domain"
	"github.com/robochamp/backend/internal/backend/mail"
	"github.com/robochamp/backend/internal/backend/store"
	"github.com/robochamp/backend/pkg/cryptox"
	"github.com/robochamp/backend/pkg/idx"
	"github.com/robochamp/backend/pkg/jwtx"
	"github.com/robochamp/backend/pkg/slogx"
)

// MinPasswordLen is enforced on signup, change and reset.
const MinPasswordLen = 8

// DefaultVerificationTTL bounds how long an emailed verification or
// password-reset link stays usable.
const DefaultVerificationTTL = 24 * time.Hour

// AuthConfig tunes the auth service. Zero values fall back to defaults.
type AuthConfig struct {
	// VerificationTTL is the lifetime of emailed verification and
	// password-reset tokens.
	VerificationTTL time.Duration

	// FrontendURL is the base URL the emailed links point at, e.g.
	// "https://app.robochamp.example".
	FrontendURL string
}

// AuthService implements the account lifecycle: signup, email verification,
// signin, token refresh with rotation, logout, and the two password flows.
//
// Session model: each user holds at most one valid refresh token at a time.
// Its SHA-256 fingerprint is stored on the user row and rotated on every
// signin, verification and refresh. Presenting a refresh token whose
// fingerprint no longer matches is a hard denial.
type AuthService struct {
	store   store.Store
	mailer  mail.Mailer
	access  *jwtx.Signer
	refresh *jwtx.Signer
	cfg     AuthConfig
}

func NewAuthService(st store.Store, mailer mail.Mailer, access, refresh *jwtx.Signer, cfg AuthConfig) *AuthService {
	if cfg.VerificationTTL <= 0 {
		cfg.VerificationTTL = DefaultVerificationTTL
	}
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")

	return &AuthService{
		store:   st,
		mailer:  mailer,
		access:  access,
		refresh: refresh,
		cfg:     cfg,
	}
}

// SignUpInput carries the signup form.
type SignUpInput struct {
	Email    string
	Name     string
	Password string
}

// SignUp registers a new unverified USER account and emails a verification
// link. Mail delivery failure does not fail the signup; the account exists
// and the link can be re-requested. Returns the new user's id.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (string, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return "", fmt.Errorf("%w: invalid email", ErrInvalidRequest)
	}
	if len(in.Password) < MinPasswordLen {
		return "", fmt.Errorf("%w: password must be at least %d characters", ErrInvalidRequest, MinPasswordLen)
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return "", err
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", err
	}
	expiresAt := time.Now().UTC().Add(s.cfg.VerificationTTL)

	u := domain.User{
		ID:                         idx.New().String(),
		Email:                      in.Email,
		Name:                       strings.TrimSpace(in.Name),
		PasswordHash:               hash,
		Role:                       domain.RoleUser,
		VerificationTokenHash:      cryptox.FingerprintToken(token),
		VerificationTokenExpiresAt: &expiresAt,
	}

	if err := s.store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return "", ErrUserExists
		}
		return "", err
	}

	// The account is created either way; a lost email is recoverable via
	// RequestEmailVerification.
	if err := s.sendVerificationMail(ctx, u.Email, token); err != nil {
		slogx.FromContext(ctx).Error("verification mail failed",
			slog.String("user_id", u.ID), slogx.Err(err))
	}

	return u.ID, nil
}

// SignIn authenticates email+password and opens a session. Unknown email and
// wrong password are indistinguishable to the caller. A valid credential on
// an unverified account is refused with ErrEmailNotVerified.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (domain.TokenPair, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	u, err := s.store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.TokenPair{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.TokenPair{}, err
	}

	if !u.EmailVerified {
		return domain.TokenPair{}, ErrEmailNotVerified
	}

	return s.openSession(ctx, u)
}

// RequestEmailVerification issues a fresh verification link for an existing
// unverified account, replacing any pending one. Unlike signup, a mail
// failure here is returned: the caller asked for exactly this delivery.
func (s *AuthService) RequestEmailVerification(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	u, err := s.store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if u.EmailVerified {
		return ErrEmailAlreadyVerified
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return err
	}
	expiresAt := time.Now().UTC().Add(s.cfg.VerificationTTL)

	if err := s.store.Users().SetVerificationToken(ctx, u.ID, cryptox.FingerprintToken(token), expiresAt); err != nil {
		return err
	}

	return s.sendVerificationMail(ctx, u.Email, token)
}

// VerifyEmail consumes a verification token, marks the account verified and
// signs the user straight in. The token is single use: an expired, unknown
// or already-consumed token all yield ErrInvalidVerification.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (domain.TokenPair, error) {
	u, err := s.userByToken(ctx, token)
	if err != nil {
		return domain.TokenPair{}, err
	}

	if err := s.store.Users().MarkEmailVerified(ctx, u.ID); err != nil {
		return domain.TokenPair{}, err
	}
	u.EmailVerified = true

	return s.openSession(ctx, u)
}

// Logout drops the user's active session. Logging out with no active
// session is a successful no-op.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.store.Users().ClearRefreshTokenHash(ctx, userID)
}

// Refresh exchanges a valid, current refresh token for a fresh pair and
// rotates the stored fingerprint, invalidating the presented token. Every
// failure mode is ErrAccessDenied; the caller learns nothing else.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	claims, err := s.refresh.Verify(refreshToken)
	if err != nil {
		return domain.TokenPair{}, ErrAccessDenied
	}

	u, err := s.store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrAccessDenied
		}
		return domain.TokenPair{}, err
	}

	if !u.HasActiveSession() ||
		!cryptox.FingerprintEqual(u.RefreshTokenHash, cryptox.FingerprintToken(refreshToken)) {
		return domain.TokenPair{}, ErrAccessDenied
	}

	return s.openSession(ctx, u)
}

// ChangePassword verifies the current password before setting a new one.
// The active session, if any, survives the change.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, newPassword string) error {
	if len(newPassword) < MinPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidRequest, MinPasswordLen)
	}

	u, err := s.store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := cryptox.VerifyPassword(current, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return ErrAccessDenied
		}
		return err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.store.Users().UpdatePasswordHash(ctx, u.ID, hash)
}

// ForgotPassword emails a password-reset link. The reset token shares the
// verification token slot, so issuing one replaces any pending verification
// link. An unknown email gets the same answer as a bad signin. Mail failure
// is returned so the user is not left waiting for a mail that will never
// arrive.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	u, err := s.store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return err
	}
	expiresAt := time.Now().UTC().Add(s.cfg.VerificationTTL)

	if err := s.store.Users().SetVerificationToken(ctx, u.ID, cryptox.FingerprintToken(token), expiresAt); err != nil {
		return err
	}

	link := s.cfg.FrontendURL + "/reset-password?token=" + token
	msg := mail.Message{
		To:      u.Email,
		Subject: "Reset your password",
		Text: "A password reset was requested for your account.\n\n" +
			"Reset it here: " + link + "\n\n" +
			"The link expires in " + s.cfg.VerificationTTL.String() + ". " +
			"If you did not request this, you can ignore this message.",
		HTML: mailHTML("Reset your password",
			"A password reset was requested for your account.",
			link, "Reset password", s.cfg.VerificationTTL,
			"If you did not request this, you can ignore this message."),
	}
	return s.mailer.Send(ctx, msg)
}

// ResetPassword consumes a reset token and sets the new password. The token
// is single use, and any active session is revoked so a stolen refresh token
// dies with the old password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < MinPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidRequest, MinPasswordLen)
	}

	u, err := s.userByToken(ctx, token)
	if err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.store.Users().UpdatePasswordAndClearVerification(ctx, u.ID, hash); err != nil {
		return err
	}
	return s.store.Users().ClearRefreshTokenHash(ctx, u.ID)
}

func (s *AuthService) userByToken(ctx context.Context, token string) (domain.User, error) {
	if token == "" {
		return domain.User{}, ErrInvalidVerification
	}

	u, err := s.store.Users().GetUserByVerificationTokenHash(ctx,
		cryptox.FingerprintToken(token), time.Now().UTC())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidVerification
		}
		return domain.User{}, err
	}
	return u, nil
}

// openSession issues an access+refresh pair and rotates the stored refresh
// fingerprint. Concurrent callers race on the fingerprint write; last writer
// wins and earlier pairs stop refreshing, which is the intended single
// session semantics.
func (s *AuthService) openSession(ctx context.Context, u domain.User) (domain.TokenPair, error) {
	now := time.Now().UTC()

	accessToken, err := s.access.Sign(u.ID, u.Email, string(u.Role), now)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refreshToken, err := s.refresh.Sign(u.ID, u.Email, string(u.Role), now)
	if err != nil {
		return domain.TokenPair{}, err
	}

	if err := s.store.Users().SetRefreshTokenHash(ctx, u.ID, cryptox.FingerprintToken(refreshToken)); err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.access.TTL().Seconds()),
	}, nil
}

func (s *AuthService) sendVerificationMail(ctx context.Context, to, token string) error {
	link := s.cfg.FrontendURL + "/verify-email?token=" + token
	msg := mail.Message{
		To:      to,
		Subject: "Verify your email",
		Text: "Welcome to the championship!\n\n" +
			"Confirm your email here: " + link + "\n\n" +
			"The link expires in " + s.cfg.VerificationTTL.String() + ".",
		HTML: mailHTML("Welcome to the championship!",
			"One step left: confirm your email address.",
			link, "Confirm email", s.cfg.VerificationTTL, ""),
	}
	return s.mailer.Send(ctx, msg)
}

// mailHTML renders the shared transactional mail layout: a heading, a lead
// line, a button-styled link and the expiry note.
func mailHTML(heading, lead, link, action string, ttl time.Duration, footer string) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family:sans-serif;max-width:480px;margin:0 auto">`)
	b.WriteString("<h2>" + html.EscapeString(heading) + "</h2>")
	b.WriteString("<p>" + html.EscapeString(lead) + "</p>")
	b.WriteString(`<p><a href="` + link + `" style="display:inline-block;padding:10px 20px;` +
		`background:#1a73e8;color:#fff;text-decoration:none;border-radius:4px">` +
		html.EscapeString(action) + "</a></p>")
	b.WriteString("<p>The link expires in " + ttl.String() + ".</p>")
	if footer != "" {
		b.WriteString(`<p style="color:#666;font-size:13px">` + html.EscapeString(footer) + "</p>")
	}
	b.WriteString("</div>")
	return b.String()
}

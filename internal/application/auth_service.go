package application

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nexcruit/ats-backend/config"
	"github.com/nexcruit/ats-backend/internal/domain/entity"
	repo "github.com/nexcruit/ats-backend/internal/domain/repository"
	"github.com/nexcruit/ats-backend/pkg/helpers"
	"github.com/nexcruit/ats-backend/pkg/mailer"
	mailtpl "github.com/nexcruit/ats-backend/pkg/mailer/templates"
)

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// RequestMeta is the client information attached to audit entries.
type RequestMeta struct {
	IP        string
	UserAgent string
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthService owns accounts, sessions and the emailed verification flows.
type AuthService struct {
	Users    repo.UserRepository
	JWT      *helpers.JWTManager
	Sessions SessionStore // optional; nil disables sessions and single-use tokens
	Notifier Notifier
	Google   IdentityVerifier
	Audit    repo.AuditRepository // optional
	Config   *config.Config
	Logger   logrus.FieldLogger
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, sessions SessionStore, notifier Notifier, google IdentityVerifier, audit repo.AuditRepository, cfg *config.Config, logger logrus.FieldLogger) *AuthService {
	return &AuthService{
		Users:    users,
		JWT:      jwt,
		Sessions: sessions,
		Notifier: notifier,
		Google:   google,
		Audit:    audit,
		Config:   cfg,
		Logger:   logger,
	}
}

func withToken(base, token string) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "token=" + url.QueryEscape(token)
}

// Register stages a pending account inside a verify token and emails the link and OTP.
// Nothing is stored until the address is verified.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	email := helpers.NormalizeEmail(in.Email)
	exists, err := s.Users.ExistsByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrUserExists
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return "", err
	}
	code, err := helpers.GenOTPCode()
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(in.Name)
	token, _, err := s.JWT.GenerateActionToken(helpers.ActionClaims{
		Purpose:      helpers.PurposeVerify,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		OTPDigest:    helpers.OTPDigest(s.JWT.ActionSecret, code),
	}, s.Config.VerifyTokenTTL)
	if err != nil {
		return "", err
	}

	_ = dispatch(ctx, s.Notifier, s.Logger, mailer.EmailJob{
		To:       email,
		Template: mailtpl.VerifyEmail,
		Data: mailtpl.NewData(s.Config, "verify", name, email,
			mailtpl.WithActionURL(withToken(s.Config.VerifyEmailURL, token)),
			mailtpl.WithCode(code),
			mailtpl.WithExpiresIn(s.Config.VerifyTokenTTL),
		),
	})
	return token, nil
}

func (s *AuthService) VerifyLink(ctx context.Context, token string) (*entity.User, error) {
	return s.verify(ctx, token, "", false)
}

func (s *AuthService) VerifyOTP(ctx context.Context, token, otp string) (*entity.User, error) {
	return s.verify(ctx, token, otp, true)
}

func (s *AuthService) verify(ctx context.Context, token, otp string, checkOTP bool) (*entity.User, error) {
	claims, err := s.JWT.ParseActionToken(token, helpers.PurposeVerify)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if checkOTP && !helpers.CheckOTP(s.JWT.ActionSecret, otp, claims.OTPDigest) {
		return nil, ErrInvalidOTP
	}
	if err := s.consume(ctx, claims); err != nil {
		return nil, err
	}
	u, err := s.Users.UpsertVerified(ctx, &entity.User{
		Name:       claims.Name,
		Email:      claims.Email,
		Password:   claims.PasswordHash,
		IsVerified: true,
	})
	if err != nil {
		return nil, err
	}
	s.audit(ctx, "verify_email", u, RequestMeta{}, nil)
	return u, nil
}

// consume burns the token id so a link or OTP works once. Without a session store tokens stay reusable until expiry.
func (s *AuthService) consume(ctx context.Context, claims *helpers.ActionClaims) error {
	if s.Sessions == nil || claims.ID == "" {
		return nil
	}
	ttl := time.Hour
	if claims.ExpiresAt != nil {
		if left := time.Until(claims.ExpiresAt.Time); left > 0 {
			ttl = left
		}
	}
	ok, err := s.Sessions.ClaimOnce(ctx, helpers.KeyUsedToken(claims.ID), ttl)
	if err != nil {
		s.Logger.WithError(err).Warn("single-use token check failed, allowing")
		return nil
	}
	if !ok {
		return ErrTokenUsed
	}
	return nil
}

// Login authenticates a verified password account. Every failure reads the same to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string, meta RequestMeta) (*entity.User, TokenPair, error) {
	email = helpers.NormalizeEmail(email)
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, TokenPair{}, err
	}
	if u == nil || !u.HasPassword() || !u.IsVerified || !helpers.CompareHashAndPassword(u.Password, password) {
		s.audit(ctx, "login_failed", &entity.User{Email: email}, meta, nil)
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	pair, err := s.issue(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	s.audit(ctx, "login", u, meta, map[string]any{"method": "password"})
	return u, pair, nil
}

// issue generates a token pair under a fresh session id and records the session.
func (s *AuthService) issue(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, u.Email, sid)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, u.Email, sid)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		return TokenPair{}, err
	}
	if s.Sessions != nil {
		sess := Session{UserID: u.ID, Email: u.Email, Name: u.Name, SessionID: sid}
		if err := s.Sessions.Save(ctx, sess, s.JWT.RefreshTTL); err != nil {
			return TokenPair{}, err
		}
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh rotates the session id and both tokens. The presented token must belong to the live session.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*entity.User, TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, TokenPair{}, ErrInvalidSession
	}
	if s.Sessions != nil {
		sess, err := s.Sessions.Get(ctx, claims.UserID)
		if err != nil {
			return nil, TokenPair{}, err
		}
		if sess == nil || sess.SessionID != claims.SessionID {
			return nil, TokenPair{}, ErrInvalidSession
		}
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	if u == nil {
		return nil, TokenPair{}, ErrInvalidSession
	}
	pair, err := s.issue(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

func (s *AuthService) Logout(ctx context.Context, userID string, meta RequestMeta) error {
	if s.Sessions != nil {
		if err := s.Sessions.Delete(ctx, userID); err != nil {
			return err
		}
	}
	s.audit(ctx, "logout", &entity.User{ID: userID}, meta, nil)
	return nil
}

// ValidateSession checks that sid is the user's live session.
func (s *AuthService) ValidateSession(ctx context.Context, userID, sid string) (*Session, error) {
	if s.Sessions == nil {
		return &Session{UserID: userID, SessionID: sid}, nil
	}
	sess, err := s.Sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.SessionID != sid {
		return nil, ErrInvalidSession
	}
	return sess, nil
}

// GoogleLogin signs in with a Google ID token, creating or linking the account by email.
func (s *AuthService) GoogleLogin(ctx context.Context, credential string, meta RequestMeta) (*entity.User, TokenPair, error) {
	id, err := s.Google.Verify(ctx, credential)
	if err != nil {
		s.Logger.WithError(err).Info("google credential rejected")
		return nil, TokenPair{}, ErrInvalidGoogleToken
	}
	u, err := s.Users.GetByEmail(ctx, id.Email)
	if err != nil {
		return nil, TokenPair{}, err
	}
	switch {
	case u == nil:
		name := id.Name
		if name == "" {
			name = strings.Split(id.Email, "@")[0]
		}
		u = &entity.User{Name: name, Email: id.Email, GoogleID: id.Subject, IsVerified: true}
		if err := s.Users.Create(ctx, u); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return nil, TokenPair{}, ErrEmailTaken
			}
			return nil, TokenPair{}, err
		}
	case u.GoogleID == "" || !u.IsVerified:
		u.GoogleID = id.Subject
		u.IsVerified = true
		if err := s.Users.Update(ctx, u); err != nil {
			return nil, TokenPair{}, err
		}
	}
	pair, err := s.issue(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	s.audit(ctx, "login", u, meta, map[string]any{"method": "google"})
	return u, pair, nil
}

// ForgotPassword emails a reset link when the account exists and reports success either way.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = helpers.NormalizeEmail(email)
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return nil
	}
	token, _, err := s.JWT.GenerateActionToken(helpers.ActionClaims{
		Purpose: helpers.PurposeReset,
		UserID:  u.ID,
		Email:   u.Email,
	}, s.Config.ResetTokenTTL)
	if err != nil {
		return err
	}
	_ = dispatch(ctx, s.Notifier, s.Logger, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.ResetPassword,
		Data: mailtpl.NewData(s.Config, "reset", u.Name, u.Email,
			mailtpl.WithActionURL(withToken(s.Config.ResetPasswordURL, token)),
			mailtpl.WithExpiresIn(s.Config.ResetTokenTTL),
		),
	})
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string, meta RequestMeta) error {
	claims, err := s.JWT.ParseActionToken(token, helpers.PurposeReset)
	if err != nil {
		return ErrInvalidToken
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrInvalidToken
	}
	if err := s.consume(ctx, claims); err != nil {
		return err
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.Password = hash
	if err := s.Users.Update(ctx, u); err != nil {
		return err
	}
	if s.Sessions != nil {
		if err := s.Sessions.Delete(ctx, u.ID); err != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("drop session after reset failed")
		}
	}
	s.audit(ctx, "password_reset", u, meta, nil)
	return nil
}

// SetPassword adds a password to an account that signed up with Google.
func (s *AuthService) SetPassword(ctx context.Context, userID, password string) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	if u.HasPassword() {
		return ErrPasswordAlreadySet
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hash
	if err := s.Users.Update(ctx, u); err != nil {
		return err
	}
	s.audit(ctx, "password_set", u, RequestMeta{}, nil)
	return nil
}

// RequestEmailChange sends a confirmation link and OTP to the new address.
func (s *AuthService) RequestEmailChange(ctx context.Context, userID, newEmail string) (string, error) {
	newEmail = helpers.NormalizeEmail(newEmail)
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}
	taken, err := s.Users.ExistsByEmail(ctx, newEmail)
	if err != nil {
		return "", err
	}
	if taken {
		return "", ErrEmailTaken
	}
	code, err := helpers.GenOTPCode()
	if err != nil {
		return "", err
	}
	token, _, err := s.JWT.GenerateActionToken(helpers.ActionClaims{
		Purpose:   helpers.PurposeEmailChange,
		UserID:    u.ID,
		Email:     u.Email,
		NewEmail:  newEmail,
		OTPDigest: helpers.OTPDigest(s.JWT.ActionSecret, code),
	}, s.Config.VerifyTokenTTL)
	if err != nil {
		return "", err
	}
	_ = dispatch(ctx, s.Notifier, s.Logger, mailer.EmailJob{
		To:       newEmail,
		Template: mailtpl.EmailChange,
		Data: mailtpl.NewData(s.Config, "email_change", u.Name, newEmail,
			mailtpl.WithActionURL(withToken(s.Config.EmailChangeVerificationURL, token)),
			mailtpl.WithCode(code),
			mailtpl.WithExpiresIn(s.Config.VerifyTokenTTL),
		),
	})
	return token, nil
}

func (s *AuthService) VerifyEmailChangeLink(ctx context.Context, token string) (*entity.User, error) {
	return s.verifyEmailChange(ctx, token, "", false)
}

func (s *AuthService) VerifyEmailChangeOTP(ctx context.Context, token, otp string) (*entity.User, error) {
	return s.verifyEmailChange(ctx, token, otp, true)
}

func (s *AuthService) verifyEmailChange(ctx context.Context, token, otp string, checkOTP bool) (*entity.User, error) {
	claims, err := s.JWT.ParseActionToken(token, helpers.PurposeEmailChange)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if checkOTP && !helpers.CheckOTP(s.JWT.ActionSecret, otp, claims.OTPDigest) {
		return nil, ErrInvalidOTP
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	taken, err := s.Users.ExistsByEmail(ctx, claims.NewEmail)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}
	if err := s.consume(ctx, claims); err != nil {
		return nil, err
	}
	old := u.Email
	u.Email = claims.NewEmail
	if err := s.Users.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	s.audit(ctx, "email_changed", u, RequestMeta{}, map[string]any{"from": old})
	return u, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID, name string) (*entity.User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.Name = strings.TrimSpace(name)
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// audit writes a best-effort trail entry when the audit store is configured.
func (s *AuthService) audit(ctx context.Context, action string, u *entity.User, meta RequestMeta, extra map[string]any) {
	if s.Audit == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	entry := entity.AuditLog{
		UserID:    u.ID,
		Email:     u.Email,
		Action:    action,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		Metadata:  extra,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Audit.Insert(ctx, entry); err != nil {
		s.Logger.WithError(err).WithField("action", action).Warn("audit write failed")
	}
}

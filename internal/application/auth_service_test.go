package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexcruit/ats-backend/internal/domain/entity"
	"github.com/nexcruit/ats-backend/pkg/helpers"
	mailtpl "github.com/nexcruit/ats-backend/pkg/mailer/templates"
)

type authFixture struct {
	svc      *AuthService
	users    *memUsers
	sessions *memSessions
	notifier *fakeNotifier
	audit    *memAudit
	google   *fakeGoogle
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:    newMemUsers(),
		sessions: newMemSessions(),
		notifier: &fakeNotifier{},
		audit:    &memAudit{},
		google:   &fakeGoogle{},
	}
	f.svc = NewAuthService(f.users, testJWT(), f.sessions, f.notifier, f.google, f.audit, testConfig(), testLogger())
	return f
}

func (f *authFixture) lastCode(t *testing.T) string {
	t.Helper()
	jobs := f.notifier.sent()
	require.NotEmpty(t, jobs)
	code, _ := jobs[len(jobs)-1].Data["Code"].(string)
	require.Len(t, code, 6)
	return code
}

// register and verify a password account
func (f *authFixture) signup(t *testing.T, name, email, password string) *entity.User {
	t.Helper()
	token, err := f.svc.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: password})
	require.NoError(t, err)
	u, err := f.svc.VerifyLink(context.Background(), token)
	require.NoError(t, err)
	return u
}

func TestRegisterStoresNothingUntilVerified(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	token, err := f.svc.Register(ctx, RegisterInput{Name: " Ana ", Email: "Ana@Example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	u, err := f.users.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)

	jobs := f.notifier.sentTo("ana@example.com")
	require.Len(t, jobs, 1)
	assert.Equal(t, mailtpl.VerifyEmail, jobs[0].Template)
	assert.Contains(t, jobs[0].Data["ActionURL"], "http://app/verify?token=")
}

func TestRegisterRejectsExistingEmailCaseInsensitive(t *testing.T) {
	f := newAuthFixture()
	f.signup(t, "Ana", "ana@example.com", "secret123")

	_, err := f.svc.Register(context.Background(), RegisterInput{Name: "Ana", Email: "ANA@example.com", Password: "other123"})
	assert.ErrorIs(t, err, ErrUserExists)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestVerifyOTP(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	token, err := f.svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)
	code := f.lastCode(t)

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	_, err = f.svc.VerifyOTP(ctx, token, wrong)
	assert.ErrorIs(t, err, ErrInvalidOTP)
	u, _ := f.users.GetByEmail(ctx, "ana@example.com")
	assert.Nil(t, u)

	u, err = f.svc.VerifyOTP(ctx, token, code)
	require.NoError(t, err)
	assert.True(t, u.IsVerified)
	assert.Equal(t, "Ana", u.Name)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "secret123"))
}

func TestVerifyTokenIsSingleUse(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	token, err := f.svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = f.svc.VerifyLink(ctx, token)
	require.NoError(t, err)
	_, err = f.svc.VerifyLink(ctx, token)
	assert.ErrorIs(t, err, ErrTokenUsed)
}

func TestExpiredVerifyTokenWritesNothing(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	token, _, err := f.svc.JWT.GenerateActionToken(helpers.ActionClaims{
		Purpose: helpers.PurposeVerify,
		Name:    "Late",
		Email:   "late@example.com",
	}, -time.Minute)
	require.NoError(t, err)

	_, err = f.svc.VerifyLink(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	u, _ := f.users.GetByEmail(ctx, "late@example.com")
	assert.Nil(t, u)
}

func TestVerifyRejectsTokenOfOtherPurpose(t *testing.T) {
	f := newAuthFixture()
	token, _, err := f.svc.JWT.GenerateActionToken(helpers.ActionClaims{Purpose: helpers.PurposeReset, Email: "x@example.com"}, time.Hour)
	require.NoError(t, err)

	_, err = f.svc.VerifyLink(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogin(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	created := f.signup(t, "Ana", "ana@example.com", "secret123")

	u, pair, err := f.svc.Login(ctx, " ANA@example.com ", "secret123", RequestMeta{IP: "10.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := f.svc.JWT.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	sess, err := f.svc.ValidateSession(ctx, u.ID, claims.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", sess.Email)

	_, _, err = f.svc.Login(ctx, "ana@example.com", "wrong", RequestMeta{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = f.svc.Login(ctx, "nobody@example.com", "secret123", RequestMeta{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	assert.Contains(t, f.audit.actions(), "login")
	assert.Contains(t, f.audit.actions(), "login_failed")
}

func TestLoginRejectsUnverifiedAccount(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	hash, err := helpers.HashPassword("secret123")
	require.NoError(t, err)
	require.NoError(t, f.users.Create(ctx, &entity.User{Name: "Bo", Email: "bo@example.com", Password: hash}))

	_, _, err = f.svc.Login(ctx, "bo@example.com", "secret123", RequestMeta{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotatesSession(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.signup(t, "Ana", "ana@example.com", "secret123")
	u, first, err := f.svc.Login(ctx, "ana@example.com", "secret123", RequestMeta{})
	require.NoError(t, err)

	_, second, err := f.svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)

	// the first pair belongs to a rotated-out session
	_, _, err = f.svc.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidSession)

	claims, err := f.svc.JWT.ParseAccessToken(second.AccessToken)
	require.NoError(t, err)
	_, err = f.svc.ValidateSession(ctx, u.ID, claims.SessionID)
	assert.NoError(t, err)

	_, _, err = f.svc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestLogoutDropsSession(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.signup(t, "Ana", "ana@example.com", "secret123")
	u, pair, err := f.svc.Login(ctx, "ana@example.com", "secret123", RequestMeta{})
	require.NoError(t, err)
	claims, _ := f.svc.JWT.ParseAccessToken(pair.AccessToken)

	require.NoError(t, f.svc.Logout(ctx, u.ID, RequestMeta{}))
	_, err = f.svc.ValidateSession(ctx, u.ID, claims.SessionID)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestGoogleLoginCreatesAndLinks(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.google.id = &GoogleIdentity{Subject: "g-1", Email: "new@example.com", EmailVerified: true}

	u, pair, err := f.svc.GoogleLogin(ctx, "cred", RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, "new", u.Name)
	assert.Equal(t, "g-1", u.GoogleID)
	assert.False(t, u.HasPassword())
	assert.NotEmpty(t, pair.AccessToken)

	existing := f.signup(t, "Ana", "ana@example.com", "secret123")
	f.google.id = &GoogleIdentity{Subject: "g-2", Email: "ana@example.com", Name: "Ana G"}
	linked, _, err := f.svc.GoogleLogin(ctx, "cred", RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, linked.ID)
	assert.Equal(t, "g-2", linked.GoogleID)

	f.google.err = errors.New("bad audience")
	_, _, err = f.svc.GoogleLogin(ctx, "cred", RequestMeta{})
	assert.ErrorIs(t, err, ErrInvalidGoogleToken)
}

func TestForgotAndResetPassword(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	u := f.signup(t, "Ana", "ana@example.com", "secret123")
	_, _, err := f.svc.Login(ctx, "ana@example.com", "secret123", RequestMeta{})
	require.NoError(t, err)

	require.NoError(t, f.svc.ForgotPassword(ctx, "nobody@example.com"))
	assert.Empty(t, f.notifier.sentTo("nobody@example.com"))

	require.NoError(t, f.svc.ForgotPassword(ctx, "ana@example.com"))
	jobs := f.notifier.sentTo("ana@example.com")
	last := jobs[len(jobs)-1]
	assert.Equal(t, mailtpl.ResetPassword, last.Template)

	token, _, err := f.svc.JWT.GenerateActionToken(helpers.ActionClaims{Purpose: helpers.PurposeReset, UserID: u.ID, Email: u.Email}, time.Minute)
	require.NoError(t, err)
	require.NoError(t, f.svc.ResetPassword(ctx, token, "newsecret1", RequestMeta{}))

	sess, _ := f.sessions.Get(ctx, u.ID)
	assert.Nil(t, sess)
	_, _, err = f.svc.Login(ctx, "ana@example.com", "secret123", RequestMeta{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = f.svc.Login(ctx, "ana@example.com", "newsecret1", RequestMeta{})
	assert.NoError(t, err)

	assert.ErrorIs(t, f.svc.ResetPassword(ctx, token, "again1234", RequestMeta{}), ErrTokenUsed)
}

func TestSetPasswordOnlyForGoogleAccounts(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.google.id = &GoogleIdentity{Subject: "g-1", Email: "g@example.com"}
	g, _, err := f.svc.GoogleLogin(ctx, "cred", RequestMeta{})
	require.NoError(t, err)

	require.NoError(t, f.svc.SetPassword(ctx, g.ID, "secret123"))
	assert.ErrorIs(t, f.svc.SetPassword(ctx, g.ID, "secret456"), ErrPasswordAlreadySet)
	assert.ErrorIs(t, f.svc.SetPassword(ctx, "missing", "secret456"), ErrUserNotFound)
}

func TestEmailChange(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	u := f.signup(t, "Ana", "ana@example.com", "secret123")
	f.signup(t, "Bo", "bo@example.com", "secret123")

	_, err := f.svc.RequestEmailChange(ctx, u.ID, "BO@example.com")
	assert.ErrorIs(t, err, ErrEmailTaken)

	token, err := f.svc.RequestEmailChange(ctx, u.ID, "ana.new@example.com")
	require.NoError(t, err)
	code := f.lastCode(t)
	assert.Len(t, f.notifier.sentTo("ana.new@example.com"), 1)

	changed, err := f.svc.VerifyEmailChangeOTP(ctx, token, code)
	require.NoError(t, err)
	assert.Equal(t, "ana.new@example.com", changed.Email)

	_, _, err = f.svc.Login(ctx, "ana.new@example.com", "secret123", RequestMeta{})
	assert.NoError(t, err)
}

func TestProfile(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	u := f.signup(t, "Ana", "ana@example.com", "secret123")

	updated, err := f.svc.UpdateProfile(ctx, u.ID, "  Ana Maria ")
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", updated.Name)

	_, err = f.svc.GetProfile(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

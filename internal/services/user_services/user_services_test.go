package user_services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iyunix/go-chatbot/internal/apperr"
	"github.com/iyunix/go-chatbot/internal/auth"
	"github.com/iyunix/go-chatbot/internal/repository/session"
	"github.com/iyunix/go-chatbot/internal/repository/user"
	"github.com/iyunix/go-chatbot/internal/testutil"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

type fixture struct {
	auth     *AuthService
	sessions *SessionService
	repo     session.SessionRepository
	clock    *time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := session.NewSessionRepository(db)
	sessions := NewSessionService(repo, DefaultSessionTTL, nopLogger{})
	sessions.now = func() time.Time { return now }

	authSvc, err := NewAuthService(user.NewGormUserRepository(db), sessions, auth.NewPasswordHasher(bcrypt.MinCost), nopLogger{})
	require.NoError(t, err)

	return &fixture{auth: authSvc, sessions: sessions, repo: repo, clock: &now}
}

func TestSignupThenLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	signup, err := f.auth.Signup(ctx, "a@x.com", "p", "A")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", signup.User.Email)
	assert.Equal(t, "A", signup.User.Name)
	assert.Len(t, signup.Session.Token, auth.TokenLength)

	login, err := f.auth.Login(ctx, "a@x.com", "p")
	require.NoError(t, err)
	assert.NotEqual(t, signup.Session.Token, login.Session.Token)

	u1, err := f.sessions.ResolveSession(ctx, signup.Session.Token)
	require.NoError(t, err)
	u2, err := f.sessions.ResolveSession(ctx, login.Session.Token)
	require.NoError(t, err)
	require.NotNil(t, u1)
	require.NotNil(t, u2)
	assert.Equal(t, signup.User.ID, u1.ID)
	assert.Equal(t, u1.ID, u2.ID)
}

func TestSignupDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Signup(ctx, "a@x.com", "p", "A")
	require.NoError(t, err)

	_, err = f.auth.Signup(ctx, "a@x.com", "other", "B")
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Equal(t, "Email already registered", apperr.MessageOf(err))

	// Emails are case-sensitive as stored.
	_, err = f.auth.Signup(ctx, "A@x.com", "p", "A")
	assert.NoError(t, err)
}

func TestSignupRejectsOverlongPassword(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Signup(context.Background(), "a@x.com", strings.Repeat("p", 73), "A")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestLoginWrongPasswordAlwaysFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.auth.Signup(ctx, "a@x.com", "p", "A")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = f.auth.Login(ctx, "a@x.com", "p")
		require.NoError(t, err)

		_, err = f.auth.Login(ctx, "a@x.com", "wrong")
		assert.True(t, apperr.Is(err, apperr.KindAuth))
		assert.Equal(t, "Invalid email or password", apperr.MessageOf(err))
	}

	_, err = f.auth.Login(ctx, "nobody@x.com", "p")
	assert.True(t, apperr.Is(err, apperr.KindAuth))
}

func TestSessionExpiry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, err := f.auth.Signup(ctx, "a@x.com", "p", "A")
	require.NoError(t, err)
	token := res.Session.Token

	assert.Equal(t, res.Session.CreatedAt.Add(30*24*time.Hour), res.Session.ExpiresAt)

	*f.clock = res.Session.ExpiresAt.Add(-time.Second)
	u, err := f.sessions.ResolveSession(ctx, token)
	require.NoError(t, err)
	assert.NotNil(t, u)

	*f.clock = res.Session.ExpiresAt
	u, err = f.sessions.ResolveSession(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, u)

	removed, err := f.sessions.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}

func TestResolveSessionAbsentOrMalformed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, token := range []string{"", "short", strings.Repeat("a", auth.TokenLength+1), strings.Repeat("*", auth.TokenLength)} {
		u, err := f.sessions.ResolveSession(ctx, token)
		require.NoError(t, err)
		assert.Nil(t, u, "token %q", token)
	}

	fresh, err := auth.NewSessionToken()
	require.NoError(t, err)
	u, err := f.sessions.ResolveSession(ctx, fresh)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestLogoutIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, err := f.auth.Signup(ctx, "a@x.com", "p", "A")
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(ctx, res.Session.Token))
	require.NoError(t, f.auth.Logout(ctx, res.Session.Token))
	require.NoError(t, f.auth.Logout(ctx, ""))

	_, err = f.auth.CurrentUser(ctx, res.Session.Token)
	assert.True(t, apperr.Is(err, apperr.KindAuth))
}

func TestCreateSessionRegeneratesOnCollision(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, err := f.auth.Signup(ctx, "a@x.com", "p", "A")
	require.NoError(t, err)

	fresh, err := auth.NewSessionToken()
	require.NoError(t, err)
	tokens := []string{res.Session.Token, fresh}
	f.sessions.newToken = func() (string, error) {
		next := tokens[0]
		tokens = tokens[1:]
		return next, nil
	}

	sess, err := f.sessions.CreateSession(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, fresh, sess.Token)

	count, err := f.repo.CountByUserID(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "al****@example.com", maskEmail("alice@example.com"))
	assert.Equal(t, "a****@x.com", maskEmail("a@x.com"))
	assert.Equal(t, "no****", maskEmail("no-at-sign"))
}

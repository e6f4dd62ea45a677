package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/iyunix/go-chatbot/internal/domain"
	"github.com/iyunix/go-chatbot/internal/testutil"
)

func seedUser(t *testing.T, db *gorm.DB, email string) *domain.User {
	t.Helper()
	u := &domain.User{Email: email, PasswordHash: "hash", Name: "A", CreatedAt: time.Now().UTC()}
	require.NoError(t, db.Create(u).Error)
	return u
}

func newSession(userID uint, token string, createdAt time.Time) *domain.Session {
	return &domain.Session{UserID: userID, Token: token, CreatedAt: createdAt, ExpiresAt: createdAt.Add(time.Hour)}
}

func TestCreateAndFindByTokenJoinsUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()
	u := seedUser(t, db, "a@x.com")
	now := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, newSession(u.ID, "token-1", now)))

	found, err := repo.FindByToken(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.UserID)
	assert.Equal(t, "a@x.com", found.User.Email)
	assert.WithinDuration(t, now.Add(time.Hour), found.ExpiresAt, time.Millisecond)
}

func TestCreateDuplicateTokenIsCollision(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()
	u := seedUser(t, db, "a@x.com")
	now := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, newSession(u.ID, "same", now)))
	err := repo.Create(ctx, newSession(u.ID, "same", now))
	assert.ErrorIs(t, err, ErrTokenCollision)
}

func TestMultipleConcurrentSessionsPerUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()
	u := seedUser(t, db, "a@x.com")
	now := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, newSession(u.ID, "t1", now)))
	require.NoError(t, repo.Create(ctx, newSession(u.ID, "t2", now)))

	count, err := repo.CountByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestDeleteByTokenIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()
	u := seedUser(t, db, "a@x.com")

	require.NoError(t, repo.Create(ctx, newSession(u.ID, "t1", time.Now().UTC())))

	require.NoError(t, repo.DeleteByToken(ctx, "t1"))
	require.NoError(t, repo.DeleteByToken(ctx, "t1"))
	require.NoError(t, repo.DeleteByToken(ctx, "never-issued"))

	_, err := repo.FindByToken(ctx, "t1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestPurgeExpired(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()
	u := seedUser(t, db, "a@x.com")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newSession(u.ID, "old", now.Add(-48*time.Hour))))
	require.NoError(t, repo.Create(ctx, newSession(u.ID, "fresh", now)))

	purged, err := repo.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)

	_, err = repo.FindByToken(ctx, "old")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = repo.FindByToken(ctx, "fresh")
	assert.NoError(t, err)
}

func TestCreateRejectsIncompleteSession(t *testing.T) {
	repo := NewSessionRepository(testutil.NewTestDB(t))

	assert.Error(t, repo.Create(context.Background(), &domain.Session{Token: "t"}))
	assert.Error(t, repo.Create(context.Background(), nil))
}

package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bridge-yp/erp-backend/pkg/db/models"
	"github.com/bridge-yp/erp-backend/pkg/enums"
)

func setupNotificationsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS notifications (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  type TEXT NOT NULL,
  title TEXT NOT NULL,
  message TEXT NOT NULL,
  link TEXT,
  read_at DATETIME,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func seedNotification(t *testing.T, repo Repository, userID uuid.UUID, createdAt time.Time) models.Notification {
	t.Helper()
	n := models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      enums.NotificationStatusChange,
		Title:     "Order YP-1 moved to RECEIVE",
		Message:   "Status changed from NEW to RECEIVE.",
		CreatedAt: createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), &n))
	return n
}

func TestRepoListIsUserScopedAndOrdered(t *testing.T) {
	db := setupNotificationsTestDB(t)
	repo := NewRepository(db)

	userID := uuid.New()
	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	older := seedNotification(t, repo, userID, base.Add(-time.Hour))
	newer := seedNotification(t, repo, userID, base)
	seedNotification(t, repo, uuid.New(), base) // other user

	rows, cursor, err := repo.List(context.Background(), listNotificationsParams{UserID: userID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, newer.ID, rows[0].ID)
	assert.Equal(t, older.ID, rows[1].ID)
	assert.Nil(t, cursor)
}

func TestRepoListReturnsCursorForNextPage(t *testing.T) {
	db := setupNotificationsTestDB(t)
	repo := NewRepository(db)

	userID := uuid.New()
	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		seedNotification(t, repo, userID, base.Add(time.Duration(i)*time.Minute))
	}

	rows, cursor, err := repo.List(context.Background(), listNotificationsParams{UserID: userID, Limit: 2})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.NotNil(t, cursor)

	rows, cursor, err = repo.List(context.Background(), listNotificationsParams{UserID: userID, Limit: 2, Cursor: cursor})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, cursor)
}

func TestRepoMarkReadOnlyTouchesUnread(t *testing.T) {
	db := setupNotificationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	n := seedNotification(t, repo, userID, time.Now().UTC())

	result, err := repo.MarkRead(ctx, userID, n.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.True(t, result.Updated)

	// already read: found but not updated
	result, err = repo.MarkRead(ctx, userID, n.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.False(t, result.Updated)

	// wrong user: not found
	result, err = repo.MarkRead(ctx, uuid.New(), n.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, result.Found)
}

func TestRepoMarkAllRead(t *testing.T) {
	db := setupNotificationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	seedNotification(t, repo, userID, time.Now().UTC())
	seedNotification(t, repo, userID, time.Now().UTC())
	seedNotification(t, repo, uuid.New(), time.Now().UTC())

	count, err := repo.MarkAllRead(ctx, userID, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.MarkAllRead(ctx, userID, time.Now().UTC())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRepoListUnreadOnly(t *testing.T) {
	db := setupNotificationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	read := seedNotification(t, repo, userID, time.Now().UTC().Add(-time.Minute))
	unread := seedNotification(t, repo, userID, time.Now().UTC())

	_, err := repo.MarkRead(ctx, userID, read.ID, time.Now().UTC())
	require.NoError(t, err)

	rows, _, err := repo.List(ctx, listNotificationsParams{UserID: userID, Limit: 10, UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, unread.ID, rows[0].ID)
}

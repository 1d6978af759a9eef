package chats

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bridge-yp/erp-backend/internal/lifecycle"
	"github.com/bridge-yp/erp-backend/pkg/db/models"
	"github.com/bridge-yp/erp-backend/pkg/enums"
)

func setupChatsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	chatMessages := `
CREATE TABLE IF NOT EXISTS chat_messages (
  id TEXT PRIMARY KEY,
  chat_id TEXT NOT NULL,
  seq INTEGER NOT NULL,
  kind TEXT NOT NULL,
  author_id TEXT,
  body TEXT,
  system TEXT,
  created_at DATETIME,
  UNIQUE (chat_id, seq)
);`
	require.NoError(t, db.Exec(chatMessages).Error)
	return db
}

func sampleRecord(actorID uuid.UUID) lifecycle.SystemMessageRecord {
	return lifecycle.SystemMessageRecord{
		Kind:       enums.ChatMessageKindStatusChange,
		FromStatus: enums.OrderStatusNew,
		ToStatus:   enums.OrderStatusReceive,
		Action:     enums.OrderActionReceiveAccept,
		ActorID:    actorID,
		ActorRole:  enums.ActorRoleAdmin,
		AtISO:      time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC).Format(time.RFC3339),
	}
}

func TestAppendSystemMessageAssignsSequentialSeq(t *testing.T) {
	db := setupChatsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	chatID := uuid.New()
	actorID := uuid.New()

	first, err := repo.AppendSystemMessage(ctx, chatID, sampleRecord(actorID))
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Seq)
	assert.Equal(t, enums.ChatMessageKindStatusChange, first.Kind)
	require.NotNil(t, first.System)
	assert.Equal(t, "RECEIVE_ACCEPT", (*first.System)["action"])

	second, err := repo.AppendSystemMessage(ctx, chatID, sampleRecord(actorID))
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Seq)

	// a different chat starts its own sequence
	other, err := repo.AppendSystemMessage(ctx, uuid.New(), sampleRecord(actorID))
	require.NoError(t, err)
	assert.Equal(t, int64(1), other.Seq)
}

func TestAppendTextInterleavesWithSystemMessages(t *testing.T) {
	db := setupChatsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	chatID := uuid.New()
	authorID := uuid.New()

	_, err := repo.AppendText(ctx, chatID, authorID, "where is my shipment?")
	require.NoError(t, err)

	sys, err := repo.AppendSystemMessage(ctx, chatID, sampleRecord(authorID))
	require.NoError(t, err)
	assert.Equal(t, int64(2), sys.Seq)

	text, err := repo.AppendText(ctx, chatID, authorID, "thanks")
	require.NoError(t, err)
	assert.Equal(t, int64(3), text.Seq)
	require.NotNil(t, text.Body)
	assert.Equal(t, "thanks", *text.Body)
}

func TestListTranscriptPaginatesBySeq(t *testing.T) {
	db := setupChatsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	chatID := uuid.New()
	authorID := uuid.New()
	for i := 0; i < 5; i++ {
		_, err := repo.AppendText(ctx, chatID, authorID, "msg")
		require.NoError(t, err)
	}

	page, next, err := repo.ListTranscript(ctx, ListTranscriptParams{ChatID: chatID, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, int64(1), page[0].Seq)
	assert.Equal(t, int64(2), next)

	page, next, err = repo.ListTranscript(ctx, ListTranscriptParams{ChatID: chatID, AfterSeq: next, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, int64(3), page[0].Seq)
	assert.Equal(t, int64(4), next)

	page, next, err = repo.ListTranscript(ctx, ListTranscriptParams{ChatID: chatID, AfterSeq: next, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, int64(5), page[0].Seq)
	assert.Zero(t, next)
}

func TestUniqueSeqConstraintRejectsDuplicates(t *testing.T) {
	db := setupChatsTestDB(t)
	ctx := context.Background()

	chatID := uuid.New()
	msg := models.ChatMessage{ID: uuid.New(), ChatID: chatID, Seq: 1, Kind: enums.ChatMessageKindText}
	require.NoError(t, db.WithContext(ctx).Create(&msg).Error)

	dup := models.ChatMessage{ID: uuid.New(), ChatID: chatID, Seq: 1, Kind: enums.ChatMessageKindText}
	err := db.WithContext(ctx).Create(&dup).Error
	require.Error(t, err)
}

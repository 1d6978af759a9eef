package chats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bridge-yp/erp-backend/internal/lifecycle"
	"github.com/bridge-yp/erp-backend/pkg/db/models"
	"github.com/bridge-yp/erp-backend/pkg/enums"
	"github.com/bridge-yp/erp-backend/pkg/pagination"
	"github.com/bridge-yp/erp-backend/pkg/types"
)

// Repository exposes persistence helpers for chat transcripts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	AppendSystemMessage(ctx context.Context, chatID uuid.UUID, record lifecycle.SystemMessageRecord) (*models.ChatMessage, error)
	AppendText(ctx context.Context, chatID, authorID uuid.UUID, body string) (*models.ChatMessage, error)
	ListTranscript(ctx context.Context, params ListTranscriptParams) ([]models.ChatMessage, int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a chats repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

// ListTranscriptParams configures a seq-ordered transcript window.
type ListTranscriptParams struct {
	ChatID   uuid.UUID
	AfterSeq int64
	Limit    int
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

// AppendSystemMessage writes an immutable audit entry at the next sequence
// number. The caller is expected to run this inside the same transaction as
// the status update it records; idx_chat_seq rejects concurrent appends that
// raced to the same slot.
func (r *repositoryImpl) AppendSystemMessage(ctx context.Context, chatID uuid.UUID, record lifecycle.SystemMessageRecord) (*models.ChatMessage, error) {
	system, err := recordToJSONMap(record)
	if err != nil {
		return nil, err
	}

	seq, err := r.nextSeq(ctx, chatID)
	if err != nil {
		return nil, err
	}

	msg := &models.ChatMessage{
		ID:     uuid.New(),
		ChatID: chatID,
		Seq:    seq,
		Kind:   enums.ChatMessageKindStatusChange,
		System: system,
	}
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

func (r *repositoryImpl) AppendText(ctx context.Context, chatID, authorID uuid.UUID, body string) (*models.ChatMessage, error) {
	seq, err := r.nextSeq(ctx, chatID)
	if err != nil {
		return nil, err
	}

	msg := &models.ChatMessage{
		ID:       uuid.New(),
		ChatID:   chatID,
		Seq:      seq,
		Kind:     enums.ChatMessageKindText,
		AuthorID: &authorID,
		Body:     &body,
	}
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// ListTranscript returns messages in ascending sequence order starting after
// AfterSeq. The second return value is the seq to resume from, or 0 when the
// transcript is exhausted.
func (r *repositoryImpl) ListTranscript(ctx context.Context, params ListTranscriptParams) ([]models.ChatMessage, int64, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	var messages []models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("chat_id = ? AND seq > ?", params.ChatID, params.AfterSeq).
		Order("seq ASC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}

	if len(messages) > normalized {
		messages = messages[:normalized]
		return messages, messages[len(messages)-1].Seq, nil
	}
	return messages, 0, nil
}

func (r *repositoryImpl) nextSeq(ctx context.Context, chatID uuid.UUID) (int64, error) {
	var maxSeq int64
	err := r.db.WithContext(ctx).
		Model(&models.ChatMessage{}).
		Where("chat_id = ?", chatID).
		Select("COALESCE(MAX(seq), 0)").
		Scan(&maxSeq).Error
	if err != nil {
		return 0, fmt.Errorf("next seq for chat %s: %w", chatID, err)
	}
	return maxSeq + 1, nil
}

func recordToJSONMap(record lifecycle.SystemMessageRecord) (*types.JSONMap, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode system message: %w", err)
	}
	var m types.JSONMap
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode system message: %w", err)
	}
	return &m, nil
}

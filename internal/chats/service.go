package chats

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/bridge-yp/erp-backend/pkg/db/models"
	pkgerrors "github.com/bridge-yp/erp-backend/pkg/errors"
)

const maxMessageLength = 4000

// Service defines transcript read/post operations.
type Service interface {
	Transcript(ctx context.Context, params TranscriptParams) (*TranscriptResult, error)
	PostMessage(ctx context.Context, chatID, authorID uuid.UUID, body string) (*models.ChatMessage, error)
}

type service struct {
	repo Repository
}

// TranscriptParams configures seq-based pagination for a chat transcript.
type TranscriptParams struct {
	ChatID   uuid.UUID
	AfterSeq int64
	Limit    int
}

// TranscriptResult wraps returned messages and the seq to resume from.
type TranscriptResult struct {
	Items   []models.ChatMessage `json:"items"`
	NextSeq int64                `json:"nextSeq"`
}

// NewService wires chat dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "chats repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Transcript(ctx context.Context, params TranscriptParams) (*TranscriptResult, error) {
	if params.ChatID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "chat id required")
	}
	if params.AfterSeq < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "after seq must not be negative")
	}

	items, nextSeq, err := s.repo.ListTranscript(ctx, ListTranscriptParams{
		ChatID:   params.ChatID,
		AfterSeq: params.AfterSeq,
		Limit:    params.Limit,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list transcript")
	}

	return &TranscriptResult{Items: items, NextSeq: nextSeq}, nil
}

func (s *service) PostMessage(ctx context.Context, chatID, authorID uuid.UUID, body string) (*models.ChatMessage, error) {
	if chatID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "chat id required")
	}
	if authorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message body required")
	}
	if len(trimmed) > maxMessageLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message body too long")
	}

	msg, err := s.repo.AppendText(ctx, chatID, authorID, trimmed)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append message")
	}
	return msg, nil
}

package chats

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bridge-yp/erp-backend/internal/lifecycle"
	"github.com/bridge-yp/erp-backend/pkg/db/models"
	pkgerrors "github.com/bridge-yp/erp-backend/pkg/errors"
)

type fakeRepository struct {
	appendSystemFn func(ctx context.Context, chatID uuid.UUID, record lifecycle.SystemMessageRecord) (*models.ChatMessage, error)
	appendTextFn   func(ctx context.Context, chatID, authorID uuid.UUID, body string) (*models.ChatMessage, error)
	listFn         func(ctx context.Context, params ListTranscriptParams) ([]models.ChatMessage, int64, error)
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository {
	return f
}

func (f *fakeRepository) AppendSystemMessage(ctx context.Context, chatID uuid.UUID, record lifecycle.SystemMessageRecord) (*models.ChatMessage, error) {
	if f.appendSystemFn != nil {
		return f.appendSystemFn(ctx, chatID, record)
	}
	return &models.ChatMessage{}, nil
}

func (f *fakeRepository) AppendText(ctx context.Context, chatID, authorID uuid.UUID, body string) (*models.ChatMessage, error) {
	if f.appendTextFn != nil {
		return f.appendTextFn(ctx, chatID, authorID, body)
	}
	return &models.ChatMessage{}, nil
}

func (f *fakeRepository) ListTranscript(ctx context.Context, params ListTranscriptParams) ([]models.ChatMessage, int64, error) {
	if f.listFn != nil {
		return f.listFn(ctx, params)
	}
	return nil, 0, nil
}

func newServiceWithRepo(repo Repository) Service {
	svc, _ := NewService(repo)
	return svc
}

func TestService_TranscriptRequiresChatID(t *testing.T) {
	svc := newServiceWithRepo(&fakeRepository{})
	_, err := svc.Transcript(context.Background(), TranscriptParams{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestService_TranscriptPassesSeqWindow(t *testing.T) {
	repo := &fakeRepository{
		listFn: func(ctx context.Context, params ListTranscriptParams) ([]models.ChatMessage, int64, error) {
			if params.AfterSeq != 7 {
				t.Fatalf("unexpected after seq %d", params.AfterSeq)
			}
			return []models.ChatMessage{{Seq: 8}}, 8, nil
		},
	}
	svc := newServiceWithRepo(repo)
	result, err := svc.Transcript(context.Background(), TranscriptParams{ChatID: uuid.New(), AfterSeq: 7})
	if err != nil {
		t.Fatalf("unexpected transcript error: %v", err)
	}
	if len(result.Items) != 1 || result.NextSeq != 8 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestService_PostMessageTrimsBody(t *testing.T) {
	repo := &fakeRepository{
		appendTextFn: func(ctx context.Context, chatID, authorID uuid.UUID, body string) (*models.ChatMessage, error) {
			if body != "hello" {
				t.Fatalf("expected trimmed body, got %q", body)
			}
			return &models.ChatMessage{Body: &body}, nil
		},
	}
	svc := newServiceWithRepo(repo)
	if _, err := svc.PostMessage(context.Background(), uuid.New(), uuid.New(), "  hello  "); err != nil {
		t.Fatalf("unexpected post error: %v", err)
	}
}

func TestService_PostMessageRejectsEmptyBody(t *testing.T) {
	svc := newServiceWithRepo(&fakeRepository{})
	_, err := svc.PostMessage(context.Background(), uuid.New(), uuid.New(), "   ")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestService_PostMessageRejectsOversizedBody(t *testing.T) {
	svc := newServiceWithRepo(&fakeRepository{})
	_, err := svc.PostMessage(context.Background(), uuid.New(), uuid.New(), strings.Repeat("a", maxMessageLength+1))
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestService_PostMessageWrapsRepoError(t *testing.T) {
	repo := &fakeRepository{
		appendTextFn: func(ctx context.Context, chatID, authorID uuid.UUID, body string) (*models.ChatMessage, error) {
			return nil, errors.New("boom")
		},
	}
	svc := newServiceWithRepo(repo)
	_, err := svc.PostMessage(context.Background(), uuid.New(), uuid.New(), "hi")
	if err == nil {
		t.Fatal("expected error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

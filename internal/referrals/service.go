package referrals

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bridge-yp/erp-backend/pkg/db/models"
	pkgerrors "github.com/bridge-yp/erp-backend/pkg/errors"
	"github.com/bridge-yp/erp-backend/pkg/pagination"
)

const tokenBytes = 24

// Service defines referral token issue/redeem operations.
type Service interface {
	Issue(ctx context.Context, input IssueInput) (*models.ReferralToken, error)
	List(ctx context.Context, issuerID uuid.UUID, params pagination.Params) (*TokenList, error)
	Revoke(ctx context.Context, issuerID, tokenID uuid.UUID) error
	Redeem(ctx context.Context, token string, userID uuid.UUID) (*models.ReferralToken, error)
}

type notifier interface {
	NotifyReferralRedeemed(ctx context.Context, issuerID uuid.UUID, token string) error
}

type service struct {
	repo     Repository
	notifier notifier
	tokenTTL time.Duration
}

// IssueInput carries the fields for minting a referral token.
type IssueInput struct {
	IssuerID     uuid.UUID
	PartnerEmail *string
}

// TokenList wraps a page of tokens and the cursor for the next page.
type TokenList struct {
	Items  []models.ReferralToken `json:"items"`
	Cursor string                 `json:"cursor"`
}

// NewService wires referral dependencies. The notifier is optional.
func NewService(repo Repository, n notifier, tokenTTL time.Duration) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "referrals repository required")
	}
	if tokenTTL <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "token ttl must be positive")
	}
	return &service{repo: repo, notifier: n, tokenTTL: tokenTTL}, nil
}

func (s *service) Issue(ctx context.Context, input IssueInput) (*models.ReferralToken, error) {
	if input.IssuerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.PartnerEmail != nil && strings.TrimSpace(*input.PartnerEmail) == "" {
		input.PartnerEmail = nil
	}

	raw, err := generateToken()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate token")
	}

	now := time.Now().UTC()
	token := &models.ReferralToken{
		ID:           uuid.New(),
		Token:        raw,
		IssuerID:     input.IssuerID,
		PartnerEmail: input.PartnerEmail,
		ExpiresAt:    now.Add(s.tokenTTL),
	}
	if err := s.repo.Create(ctx, token); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create referral token")
	}
	return token, nil
}

func (s *service) List(ctx context.Context, issuerID uuid.UUID, params pagination.Params) (*TokenList, error) {
	if issuerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "issuer id required")
	}

	var cursor *pagination.Cursor
	if params.Cursor != "" {
		parsed, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		cursor = parsed
	}

	rows, next, err := s.repo.ListByIssuer(ctx, issuerID, params.Limit, cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list referral tokens")
	}

	encoded := ""
	if next != nil {
		encoded = pagination.EncodeCursor(*next)
	}
	return &TokenList{Items: rows, Cursor: encoded}, nil
}

func (s *service) Revoke(ctx context.Context, issuerID, tokenID uuid.UUID) error {
	if issuerID == uuid.Nil || tokenID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "issuer id and token id required")
	}

	revoked, err := s.repo.Revoke(ctx, issuerID, tokenID, time.Now().UTC())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke referral token")
	}
	if !revoked {
		return pkgerrors.New(pkgerrors.CodeNotFound, "token not found or already settled")
	}
	return nil
}

func (s *service) Redeem(ctx context.Context, token string, userID uuid.UUID) (*models.ReferralToken, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "token required")
	}
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	claimed, err := s.repo.Redeem(ctx, token, userID, time.Now().UTC())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redeem referral token")
	}
	if !claimed {
		record, findErr := s.repo.FindByToken(ctx, token)
		if findErr != nil {
			if findErr == gorm.ErrRecordNotFound {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "token not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, findErr, "load referral token")
		}
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, redeemFailureMessage(record, time.Now().UTC()))
	}

	record, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load referral token")
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyReferralRedeemed(ctx, record.IssuerID, record.Token)
	}
	return record, nil
}

func redeemFailureMessage(record *models.ReferralToken, now time.Time) string {
	switch {
	case record.RevokedAt != nil:
		return "token revoked"
	case record.RedeemedAt != nil:
		return "token already redeemed"
	case !record.ExpiresAt.After(now):
		return "token expired"
	default:
		return "token not redeemable"
	}
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

package referrals

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bridge-yp/erp-backend/pkg/db/models"
	"github.com/bridge-yp/erp-backend/pkg/pagination"
)

// Repository exposes persistence helpers for referral tokens.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, token *models.ReferralToken) error
	FindByToken(ctx context.Context, token string) (*models.ReferralToken, error)
	ListByIssuer(ctx context.Context, issuerID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.ReferralToken, *pagination.Cursor, error)
	Revoke(ctx context.Context, issuerID, tokenID uuid.UUID, now time.Time) (bool, error)
	Redeem(ctx context.Context, token string, userID uuid.UUID, now time.Time) (bool, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a referrals repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, token *models.ReferralToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *repositoryImpl) FindByToken(ctx context.Context, token string) (*models.ReferralToken, error) {
	var record models.ReferralToken
	err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repositoryImpl) ListByIssuer(ctx context.Context, issuerID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.ReferralToken, *pagination.Cursor, error) {
	buffered := pagination.LimitWithBuffer(limit)
	normalized := pagination.NormalizeLimit(limit)

	query := r.db.WithContext(ctx).Model(&models.ReferralToken{}).Where("issuer_id = ?", issuerID)
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var tokens []models.ReferralToken
	if err := query.Order("created_at DESC, id DESC").Limit(buffered).Find(&tokens).Error; err != nil {
		return nil, nil, err
	}

	if len(tokens) > normalized {
		tokens = tokens[:normalized]
		last := tokens[len(tokens)-1]
		return tokens, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, nil
	}
	return tokens, nil, nil
}

// Revoke marks an unredeemed token revoked. Returns false when the token is
// missing, already redeemed, or owned by a different issuer.
func (r *repositoryImpl) Revoke(ctx context.Context, issuerID, tokenID uuid.UUID, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ReferralToken{}).
		Where("id = ? AND issuer_id = ? AND redeemed_at IS NULL AND revoked_at IS NULL", tokenID, issuerID).
		UpdateColumn("revoked_at", now)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Redeem claims a live token for the user. The guarded update makes the claim
// single-use under concurrency.
func (r *repositoryImpl) Redeem(ctx context.Context, token string, userID uuid.UUID, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ReferralToken{}).
		Where("token = ? AND redeemed_at IS NULL AND revoked_at IS NULL AND expires_at > ?", token, now).
		UpdateColumns(map[string]any{
			"redeemed_by": userID,
			"redeemed_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

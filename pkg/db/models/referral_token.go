package models

import (
	"time"

	"github.com/google/uuid"
)

// ReferralToken is a single-use invitation issued to onboard a partner.
type ReferralToken struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Token        string     `gorm:"column:token;type:text;not null;uniqueIndex"`
	IssuerID     uuid.UUID  `gorm:"column:issuer_id;type:uuid;not null"`
	PartnerEmail *string    `gorm:"column:partner_email;type:text"`
	RedeemedBy   *uuid.UUID `gorm:"column:redeemed_by;type:uuid"`
	RedeemedAt   *time.Time `gorm:"column:redeemed_at"`
	RevokedAt    *time.Time `gorm:"column:revoked_at"`
	ExpiresAt    time.Time  `gorm:"column:expires_at;not null"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
}

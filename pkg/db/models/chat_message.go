package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/bridge-yp/erp-backend/pkg/enums"
	"github.com/bridge-yp/erp-backend/pkg/types"
)

// ChatMessage is one entry in an order's transcript. Audit entries
// (kind=status_change) are immutable and ordered by the per-chat Seq assigned
// at append time.
type ChatMessage struct {
	ID        uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ChatID    uuid.UUID             `gorm:"column:chat_id;type:uuid;not null;uniqueIndex:idx_chat_seq,priority:1"`
	Seq       int64                 `gorm:"column:seq;not null;uniqueIndex:idx_chat_seq,priority:2"`
	Kind      enums.ChatMessageKind `gorm:"column:kind;type:text;not null"`
	AuthorID  *uuid.UUID            `gorm:"column:author_id;type:uuid"`
	Body      *string               `gorm:"column:body"`
	System    *types.JSONMap        `gorm:"column:system;type:jsonb;serializer:json"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime"`
}

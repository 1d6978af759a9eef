package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/bridge-yp/erp-backend/pkg/enums"
)

// Order is a shipment or client request tracked through the status lifecycle.
// Status is mutated only via the lifecycle engine's accepted results, applied
// with a compare-and-swap on the previous status.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Kind            enums.OrderKind   `gorm:"column:kind;type:text;not null;default:'SHIPMENT'"`
	Status          enums.OrderStatus `gorm:"column:status;type:text;not null;default:'NEW'"`
	Title           string            `gorm:"column:title;type:text;not null"`
	Origin          string            `gorm:"column:origin;type:text;not null"`
	Destination     string            `gorm:"column:destination;type:text;not null"`
	CreatorID       uuid.UUID         `gorm:"column:creator_id;type:uuid;not null"`
	AssignedAdminID *uuid.UUID        `gorm:"column:assigned_admin_id;type:uuid"`
	ChatID          uuid.UUID         `gorm:"column:chat_id;type:uuid;not null"`
	Notes           *string           `gorm:"column:notes"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

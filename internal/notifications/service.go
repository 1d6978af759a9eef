package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bridge-yp/erp-backend/pkg/db/models"
	"github.com/bridge-yp/erp-backend/pkg/enums"
	pkgerrors "github.com/bridge-yp/erp-backend/pkg/errors"
	"github.com/bridge-yp/erp-backend/pkg/pagination"
)

// Service defines notification list/read operations and status fan-out.
type Service interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	NotifyStatusChange(ctx context.Context, input StatusChangeInput) error
	NotifyAssigned(ctx context.Context, input AssignedInput) error
	NotifyReferralRedeemed(ctx context.Context, issuerID uuid.UUID, token string) error
}

type service struct {
	repo Repository
}

// ListParams configures pagination for notifications.
type ListParams struct {
	UserID     uuid.UUID
	Limit      int
	Cursor     string
	UnreadOnly bool
}

// ListResult wraps returned notifications and the cursor for the next page.
type ListResult struct {
	Items  []models.Notification `json:"items"`
	Cursor string                `json:"cursor"`
}

// StatusChangeInput identifies a transition and the users who should hear
// about it. The actor who triggered the change is excluded from recipients.
type StatusChangeInput struct {
	OrderID    uuid.UUID
	OrderTitle string
	FromStatus enums.OrderStatus
	ToStatus   enums.OrderStatus
	ActorID    uuid.UUID
	Recipients []uuid.UUID
}

// AssignedInput identifies an order handed to an admin.
type AssignedInput struct {
	OrderID    uuid.UUID
	OrderTitle string
	AdminID    uuid.UUID
}

// NewService wires notifications dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	query := listNotificationsParams{
		UserID:     params.UserID,
		Limit:      params.Limit,
		UnreadOnly: params.UnreadOnly,
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}

	return &ListResult{
		Items:  rows,
		Cursor: cursor,
	}, nil
}

func (s *service) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if notificationID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}

	result, err := s.repo.MarkRead(ctx, userID, notificationID, time.Now().UTC())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notification read")
	}
	if !result.Found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	count, err := s.repo.MarkAllRead(ctx, userID, time.Now().UTC())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notifications read")
	}
	return count, nil
}

// NotifyStatusChange fans one transition out to every recipient except the
// actor. Recipients are deduplicated; a failed insert aborts the remainder.
func (s *service) NotifyStatusChange(ctx context.Context, input StatusChangeInput) error {
	if input.OrderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	title := fmt.Sprintf("Order %s moved to %s", input.OrderTitle, input.ToStatus)
	message := fmt.Sprintf("Status changed from %s to %s.", input.FromStatus, input.ToStatus)
	link := fmt.Sprintf("/orders/%s", input.OrderID)

	seen := map[uuid.UUID]struct{}{}
	for _, recipient := range input.Recipients {
		if recipient == uuid.Nil || recipient == input.ActorID {
			continue
		}
		if _, ok := seen[recipient]; ok {
			continue
		}
		seen[recipient] = struct{}{}

		notification := &models.Notification{
			UserID:  recipient,
			Type:    enums.NotificationStatusChange,
			Title:   title,
			Message: message,
			Link:    &link,
		}
		if err := s.repo.Create(ctx, notification); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create notification")
		}
	}
	return nil
}

// NotifyAssigned tells an admin an order landed on their desk.
func (s *service) NotifyAssigned(ctx context.Context, input AssignedInput) error {
	if input.OrderID == uuid.Nil || input.AdminID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id and admin id required")
	}

	link := fmt.Sprintf("/orders/%s", input.OrderID)
	notification := &models.Notification{
		UserID:  input.AdminID,
		Type:    enums.NotificationOrderAssigned,
		Title:   fmt.Sprintf("Order %s assigned to you", input.OrderTitle),
		Message: "You are now responsible for this order.",
		Link:    &link,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create notification")
	}
	return nil
}

// NotifyReferralRedeemed tells the issuer one of their invitations was used.
func (s *service) NotifyReferralRedeemed(ctx context.Context, issuerID uuid.UUID, token string) error {
	if issuerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "issuer id required")
	}

	suffix := token
	if len(suffix) > 8 {
		suffix = suffix[len(suffix)-8:]
	}
	notification := &models.Notification{
		UserID:  issuerID,
		Type:    enums.NotificationReferralRedeem,
		Title:   "Referral redeemed",
		Message: fmt.Sprintf("Your referral token ending in %s was redeemed.", suffix),
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create notification")
	}
	return nil
}

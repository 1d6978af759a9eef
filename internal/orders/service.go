package orders

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bridge-yp/erp-backend/internal/chats"
	"github.com/bridge-yp/erp-backend/internal/lifecycle"
	"github.com/bridge-yp/erp-backend/internal/notifications"
	"github.com/bridge-yp/erp-backend/pkg/db/models"
	"github.com/bridge-yp/erp-backend/pkg/enums"
	pkgerrors "github.com/bridge-yp/erp-backend/pkg/errors"
	"github.com/bridge-yp/erp-backend/pkg/logger"
	"github.com/bridge-yp/erp-backend/pkg/metrics"
	"github.com/bridge-yp/erp-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type statusNotifier interface {
	NotifyStatusChange(ctx context.Context, input notifications.StatusChangeInput) error
	NotifyAssigned(ctx context.Context, input notifications.AssignedInput) error
}

// Service defines order lifecycle operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Order, error)
	Get(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	List(ctx context.Context, params ListParams) (*OrderList, error)
	Assign(ctx context.Context, input AssignInput) (*models.Order, error)
	Transition(ctx context.Context, input TransitionInput) (*TransitionResult, error)
}

type service struct {
	repo     Repository
	chats    chats.Repository
	tx       txRunner
	notifier statusNotifier
	metrics  *metrics.TransitionMetrics
	logg     *logger.Logger
}

// NewService wires order dependencies. The notifier and metrics are optional;
// everything else is required.
func NewService(repo Repository, chatsRepo chats.Repository, tx txRunner, notifier statusNotifier, m *metrics.TransitionMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "orders repository required")
	}
	if chatsRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "chats repository required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{
		repo:     repo,
		chats:    chatsRepo,
		tx:       tx,
		notifier: notifier,
		metrics:  m,
		logg:     logg,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Order, error) {
	if input.Creator.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	kind := input.Kind
	if kind == "" {
		kind = enums.OrderKindShipment
	}
	if !kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order kind")
	}

	fields := map[string]string{}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		fields["title"] = "required"
	}
	origin := strings.TrimSpace(input.Origin)
	if origin == "" {
		fields["origin"] = "required"
	}
	destination := strings.TrimSpace(input.Destination)
	if destination == "" {
		fields["destination"] = "required"
	}
	if len(fields) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing required fields").WithDetails(fields)
	}

	order := &models.Order{
		ID:          uuid.New(),
		Kind:        kind,
		Status:      enums.OrderStatusNew,
		Title:       title,
		Origin:      origin,
		Destination: destination,
		CreatorID:   input.Creator.UserID,
		ChatID:      uuid.New(),
		Notes:       input.Notes,
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.Find(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*OrderList, error) {
	query := listOrdersParams{
		Status:         params.Status,
		Kind:           params.Kind,
		CreatorID:      params.CreatorID,
		AssignedAdmin:  params.AssignedAdmin,
		IncludeDeleted: params.IncludeDeleted,
		Limit:          params.Pagination.Limit,
	}
	if params.Pagination.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Pagination.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &OrderList{Items: rows, Cursor: cursor}, nil
}

func (s *service) Assign(ctx context.Context, input AssignInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.Actor.Role != enums.ActorRoleAdmin && input.Actor.Role != enums.ActorRoleSuperAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role not permitted to assign orders")
	}

	order, err := s.Get(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cannot assign a closed order")
	}

	if err := s.repo.UpdateAssignment(ctx, order.ID, input.AdminID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update assignment")
	}
	order.AssignedAdminID = input.AdminID

	if s.notifier != nil && input.AdminID != nil && *input.AdminID != input.Actor.UserID {
		if err := s.notifier.NotifyAssigned(ctx, notifications.AssignedInput{
			OrderID:    order.ID,
			OrderTitle: order.Title,
			AdminID:    *input.AdminID,
		}); err != nil {
			s.logg.Warn(s.logg.WithOrderID(ctx, order.ID.String()), "assignment notification failed")
		}
	}
	return order, nil
}

// Transition runs the lifecycle engine against the current order snapshot and,
// when accepted, persists the status move and its audit entry atomically. The
// status update is a compare-and-swap on the snapshot status; losing the race
// surfaces as a retryable conflict without side effects.
func (s *service) Transition(ctx context.Context, input TransitionInput) (*TransitionResult, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.Actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	started := time.Now()
	order, err := s.Get(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	actor := lifecycle.ActorContext{
		UserID:          input.Actor.UserID,
		Role:            input.Actor.Role,
		IsCreator:       order.CreatorID == input.Actor.UserID,
		IsAssignedAdmin: order.AssignedAdminID != nil && *order.AssignedAdminID == input.Actor.UserID,
	}
	view := lifecycle.OrderView{ID: order.ID, Status: order.Status, Kind: order.Kind}

	result := lifecycle.Execute(view, input.Action, actor, input.Payload, time.Now().UTC())
	if !result.OK() {
		s.metrics.IncRejected(input.Action.String(), string(result.Rejected.Kind))
		return nil, rejectionError(result.Rejected)
	}

	accepted := result.Accepted
	var message *models.ChatMessage
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		updated, err := repo.UpdateStatusCAS(ctx, order.ID, order.Status, accepted.ToStatus)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		if !updated {
			return pkgerrors.New(pkgerrors.CodeConflict, "order status changed concurrently")
		}

		message, err = s.chats.WithTx(tx).AppendSystemMessage(ctx, order.ChatID, accepted.SystemMessage)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append audit entry")
		}

		if clearsAssignment(accepted.ToStatus) && order.AssignedAdminID != nil {
			if err := repo.UpdateAssignment(ctx, order.ID, nil); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear assignment")
			}
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err).Code() == pkgerrors.CodeConflict {
			s.metrics.IncConflict(input.Action.String())
		}
		return nil, err
	}

	fromStatus := order.Status
	order.Status = accepted.ToStatus
	recipients := []uuid.UUID{order.CreatorID}
	if order.AssignedAdminID != nil {
		recipients = append(recipients, *order.AssignedAdminID)
	}
	if clearsAssignment(accepted.ToStatus) {
		order.AssignedAdminID = nil
	}

	s.metrics.IncAccepted(input.Action.String())
	s.metrics.ObserveDuration(input.Action.String(), time.Since(started))

	if s.notifier != nil {
		notifyErr := s.notifier.NotifyStatusChange(ctx, notifications.StatusChangeInput{
			OrderID:    order.ID,
			OrderTitle: order.Title,
			FromStatus: fromStatus,
			ToStatus:   order.Status,
			ActorID:    input.Actor.UserID,
			Recipients: recipients,
		})
		if notifyErr != nil {
			s.logg.Warn(s.logg.WithOrderID(ctx, order.ID.String()), "status change notification failed")
		}
	}

	return &TransitionResult{Order: order, Message: message}, nil
}

// clearsAssignment reports whether reaching the status releases the assigned
// admin. Side exits release the assignee; DELIVERED keeps it for the record.
func clearsAssignment(status enums.OrderStatus) bool {
	switch status {
	case enums.OrderStatusCancelled, enums.OrderStatusDeleted, enums.OrderStatusArchived:
		return true
	default:
		return false
	}
}

func rejectionError(rej *lifecycle.Rejection) error {
	switch rej.Kind {
	case lifecycle.RejectForbidden:
		message := "actor not permitted to perform action"
		if rej.Reason == lifecycle.DenyNotOwner {
			message = "actor does not own this order"
		}
		return pkgerrors.New(pkgerrors.CodeForbidden, message).WithDetails(rej)
	case lifecycle.RejectInvalidPayload:
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid action payload").WithDetails(rej.Details)
	case lifecycle.RejectActionUnknown:
		return pkgerrors.New(pkgerrors.CodeStateConflict, "unknown action").WithDetails(rej)
	default:
		return pkgerrors.New(pkgerrors.CodeStateConflict, "action not allowed from current status").WithDetails(rej)
	}
}

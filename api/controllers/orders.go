package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bridge-yp/erp-backend/api/middleware"
	"github.com/bridge-yp/erp-backend/api/responses"
	"github.com/bridge-yp/erp-backend/api/validators"
	"github.com/bridge-yp/erp-backend/internal/chats"
	"github.com/bridge-yp/erp-backend/internal/lifecycle"
	"github.com/bridge-yp/erp-backend/internal/orders"
	"github.com/bridge-yp/erp-backend/pkg/db/models"
	"github.com/bridge-yp/erp-backend/pkg/enums"
	pkgerrors "github.com/bridge-yp/erp-backend/pkg/errors"
	"github.com/bridge-yp/erp-backend/pkg/logger"
	"github.com/bridge-yp/erp-backend/pkg/pagination"
)

// maxAfterSeq bounds the transcript resume position to keep the query param
// within int32 range on every platform.
const maxAfterSeq = 1<<31 - 1

type createOrderRequest struct {
	Kind        string  `json:"kind" validate:"omitempty,oneof=REQUEST SHIPMENT"`
	Title       string  `json:"title" validate:"required,max=200"`
	Origin      string  `json:"origin" validate:"required,max=500"`
	Destination string  `json:"destination" validate:"required,max=500"`
	Notes       *string `json:"notes" validate:"omitempty,max=2000"`
}

type transitionRequest struct {
	Action  string             `json:"action" validate:"required"`
	Payload *lifecycle.Payload `json:"payload"`
}

type assignRequest struct {
	AdminID *string `json:"adminId"`
}

type postMessageRequest struct {
	Body string `json:"body" validate:"required"`
}

// CreateOrder opens a new order in NEW for the calling user.
func CreateOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := orders.CreateInput{
			Title:       req.Title,
			Origin:      req.Origin,
			Destination: req.Destination,
			Notes:       req.Notes,
			Creator:     actor,
		}
		if req.Kind != "" {
			kind, err := enums.ParseOrderKind(req.Kind)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order kind"))
				return
			}
			input.Kind = kind
		}

		order, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// ListOrders returns paginated orders. Regular users only see orders they
// created; admins see everything and may filter freely.
func ListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := orders.ListParams{}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params.Pagination.Limit = limit
		params.Pagination.Cursor = strings.TrimSpace(r.URL.Query().Get("cursor"))

		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			params.Status = &status
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("kind")); raw != "" {
			kind, err := enums.ParseOrderKind(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid kind filter"))
				return
			}
			params.Kind = &kind
		}

		if actor.Role == enums.ActorRoleUser {
			creatorID := actor.UserID
			params.CreatorID = &creatorID
		} else {
			if raw := strings.TrimSpace(r.URL.Query().Get("assignedTo")); raw != "" {
				adminID, err := uuid.Parse(raw)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid assignedTo filter"))
					return
				}
				params.AssignedAdmin = &adminID
			}
			includeDeleted, err := validators.ParseQueryBool(r, "includeDeleted")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			params.IncludeDeleted = includeDeleted
		}

		resp, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// OrderDetail returns a single order visible to the caller.
func OrderDetail(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, order, err := loadVisibleOrder(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// AssignOrder sets or clears the admin responsible for an order.
func AssignOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := orderIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req assignRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := orders.AssignInput{OrderID: orderID, Actor: actor}
		if req.AdminID != nil && strings.TrimSpace(*req.AdminID) != "" {
			adminID, err := uuid.Parse(*req.AdminID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid admin id"))
				return
			}
			input.AdminID = &adminID
		}

		order, err := svc.Assign(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// TransitionOrder applies a lifecycle action to an order.
func TransitionOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := orderIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req transitionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		action, err := enums.ParseOrderAction(req.Action)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid action"))
			return
		}

		result, err := svc.Transition(r.Context(), orders.TransitionInput{
			OrderID: orderID,
			Action:  action,
			Payload: req.Payload,
			Actor:   actor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// OrderTranscript returns the order's chat log in sequence order.
func OrderTranscript(ordersSvc orders.Service, chatsSvc chats.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, order, err := loadVisibleOrder(r, ordersSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		afterSeq, err := validators.ParseQueryInt(r, "afterSeq", 0, 0, maxAfterSeq)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := chatsSvc.Transcript(r.Context(), chats.TranscriptParams{
			ChatID:   order.ChatID,
			AfterSeq: int64(afterSeq),
			Limit:    limit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// PostOrderMessage appends a text message to the order's chat log.
func PostOrderMessage(ordersSvc orders.Service, chatsSvc chats.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, order, err := loadVisibleOrder(r, ordersSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req postMessageRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		msg, err := chatsSvc.PostMessage(r.Context(), order.ChatID, actor.UserID, req.Body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, msg)
	}
}

func actorFromRequest(r *http.Request) (orders.Actor, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return orders.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return orders.Actor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	role := middleware.RoleFromContext(r.Context())
	if role == "" {
		return orders.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor role missing")
	}
	return orders.Actor{UserID: userID, Role: role}, nil
}

func orderIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "orderId")
	orderID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id")
	}
	return orderID, nil
}

// loadVisibleOrder fetches the order and enforces read visibility. Regular
// users only see orders they created; admins see all.
func loadVisibleOrder(r *http.Request, svc orders.Service) (orders.Actor, *models.Order, error) {
	actor, err := actorFromRequest(r)
	if err != nil {
		return orders.Actor{}, nil, err
	}
	orderID, err := orderIDParam(r)
	if err != nil {
		return actor, nil, err
	}
	order, err := svc.Get(r.Context(), orderID)
	if err != nil {
		return actor, nil, err
	}
	if actor.Role == enums.ActorRoleUser && order.CreatorID != actor.UserID {
		return actor, nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return actor, order, nil
}

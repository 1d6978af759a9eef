package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bridge-yp/erp-backend/api/responses"
	"github.com/bridge-yp/erp-backend/api/validators"
	"github.com/bridge-yp/erp-backend/internal/referrals"
	pkgerrors "github.com/bridge-yp/erp-backend/pkg/errors"
	"github.com/bridge-yp/erp-backend/pkg/logger"
	"github.com/bridge-yp/erp-backend/pkg/pagination"
)

type issueReferralRequest struct {
	PartnerEmail *string `json:"partnerEmail" validate:"omitempty,email"`
}

type redeemReferralRequest struct {
	Token string `json:"token" validate:"required"`
}

// IssueReferral mints a referral token on behalf of the calling user.
func IssueReferral(svc referrals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req issueReferralRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := svc.Issue(r.Context(), referrals.IssueInput{
			IssuerID:     userID,
			PartnerEmail: req.PartnerEmail,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, token)
	}
}

// ListReferrals returns the caller's issued tokens, newest first.
func ListReferrals(svc referrals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.List(r.Context(), userID, pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// RevokeReferral invalidates an unredeemed token owned by the caller.
func RevokeReferral(svc referrals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tokenID, err := uuid.Parse(chi.URLParam(r, "tokenId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid token id"))
			return
		}

		if err := svc.Revoke(r.Context(), userID, tokenID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "revoked"})
	}
}

// RedeemReferral claims a token for the calling user. Single use; a settled
// token reports why it cannot be claimed again.
func RedeemReferral(svc referrals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req redeemReferralRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := svc.Redeem(r.Context(), req.Token, userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, token)
	}
}

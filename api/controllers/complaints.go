package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/craftpress/printshop-backend/api/responses"
	"github.com/craftpress/printshop-backend/api/validators"
	"github.com/craftpress/printshop-backend/internal/complaints"
	"github.com/craftpress/printshop-backend/pkg/enums"
	pkgerrors "github.com/craftpress/printshop-backend/pkg/errors"
	"github.com/craftpress/printshop-backend/pkg/logger"
)

// CreateComplaint opens a support case, optionally tied to an order.
func CreateComplaint(svc complaints.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload complaints.CreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		complaint, err := svc.Create(ctx, userID, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, complaint)
	}
}

// ListComplaints returns the caller's complaints; admins see everything and
// can filter by status.
func ListComplaints(svc complaints.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		params, err := listParams(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var filters complaints.Filters
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseComplaintStatus(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid complaint status").
					WithDetails(map[string]any{"status": raw}))
				return
			}
			filters.Status = &status
		}

		list, err := svc.List(ctx, userID, requesterRole(r), filters, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"complaints": list})
	}
}

// GetComplaint returns one complaint.
func GetComplaint(svc complaints.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		complaintID, err := validators.ParsePathUUID(chi.URLParam(r, "complaintID"), "complaintID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		complaint, err := svc.Get(ctx, userID, requesterRole(r), complaintID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, complaint)
	}
}

// UpdateComplaintStatus moves a complaint through triage and records the
// staff response.
func UpdateComplaintStatus(svc complaints.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		complaintID, err := validators.ParsePathUUID(chi.URLParam(r, "complaintID"), "complaintID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload complaints.UpdateStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		complaint, err := svc.UpdateStatus(ctx, complaintID, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, complaint)
	}
}

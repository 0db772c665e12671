// Package handler exposes the booking engine over HTTP. Handlers decode,
// delegate to the service and write; authorization and business rules live
// one layer down.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"piqueunique/internal/bookings/service"
	apperrors "piqueunique/pkg/errors"
	httputil "piqueunique/pkg/http"
	"piqueunique/pkg/logger"
	"piqueunique/pkg/middleware"
	"piqueunique/pkg/model"
)

type BookingHandler struct {
	bookings     *service.BookingService
	availability *service.AvailabilityService
	audit        *service.AuditService
	log          *logger.Logger
}

func NewBookingHandler(
	bookings *service.BookingService,
	availability *service.AvailabilityService,
	audit *service.AuditService,
	log *logger.Logger,
) *BookingHandler {
	return &BookingHandler{
		bookings:     bookings,
		availability: availability,
		audit:        audit,
		log:          log,
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/drafts", h.SaveDraft)
	router.GET("/api/v1/drafts", h.GetDraft)
	router.POST("/api/v1/price-estimates", h.SavePriceEstimate)

	router.POST("/api/v1/bookings", h.Finalize)
	router.GET("/api/v1/bookings", h.List)
	router.GET("/api/v1/bookings/id/:id", h.GetByID)
	router.PATCH("/api/v1/bookings/id/:id", h.Update)
	router.DELETE("/api/v1/bookings/id/:id", h.Delete)
	router.PATCH("/api/v1/bookings/id/:id/status", h.UpdateStatus)

	router.GET("/api/v1/availability", h.Availability)
	router.GET("/api/v1/audit-logs", h.AuditLogs)
}

func (h *BookingHandler) SaveDraft(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var draft model.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		h.writeError(w, "SaveDraft", apperrors.InvalidInput("invalid request body"))
		return
	}

	id, err := h.bookings.SaveDraft(r.Context(), middleware.IdentityFrom(r.Context()), &draft)
	if err != nil {
		h.writeError(w, "SaveDraft", err)
		return
	}

	if err := httputil.WriteSuccess(w, map[string]string{"draft_id": id}); err != nil {
		h.log.Error("failed to write success response", "handler", "SaveDraft", "error", err)
	}
}

func (h *BookingHandler) GetDraft(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	draft, err := h.bookings.GetDraft(r.Context(), middleware.IdentityFrom(r.Context()))
	if err != nil {
		h.writeError(w, "GetDraft", err)
		return
	}

	if err := httputil.WriteSuccess(w, draft); err != nil {
		h.log.Error("failed to write success response", "handler", "GetDraft", "error", err)
	}
}

// priceEstimateRequest is the selection subset that affects the price.
type priceEstimateRequest struct {
	GuestCount         int      `json:"guest_count"`
	AdditionalServices []string `json:"additional_services"`
}

func (h *BookingHandler) SavePriceEstimate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req priceEstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "SavePriceEstimate", apperrors.InvalidInput("invalid request body"))
		return
	}

	breakdown, err := h.bookings.SavePriceEstimate(r.Context(), middleware.IdentityFrom(r.Context()), req.GuestCount, req.AdditionalServices)
	if err != nil {
		h.writeError(w, "SavePriceEstimate", err)
		return
	}

	if err := httputil.WriteSuccess(w, breakdown); err != nil {
		h.log.Error("failed to write success response", "handler", "SavePriceEstimate", "error", err)
	}
}

func (h *BookingHandler) Finalize(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		h.writeError(w, "Finalize", apperrors.InvalidInput("invalid request body"))
		return
	}

	created, err := h.bookings.Finalize(r.Context(), middleware.IdentityFrom(r.Context()), &booking)
	if err != nil {
		h.writeError(w, "Finalize", err)
		return
	}

	if err := httputil.WriteCreated(w, created); err != nil {
		h.log.Error("failed to write created response", "handler", "Finalize", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.bookings.GetByID(r.Context(), middleware.IdentityFrom(r.Context()), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	bookings, total, err := h.bookings.List(r.Context(), middleware.IdentityFrom(r.Context()), limit, offset)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "List", "error", err)
	}
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var patch model.BookingPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.writeError(w, "Update", apperrors.InvalidInput("invalid request body"))
		return
	}

	booking, err := h.bookings.UpdateOwnedFields(r.Context(), middleware.IdentityFrom(r.Context()), ps.ByName("id"), &patch)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "error", err)
	}
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeError(w, "UpdateStatus", apperrors.InvalidInput("invalid request body"))
		return
	}

	booking, err := h.bookings.UpdateStatus(r.Context(), middleware.IdentityFrom(r.Context()), ps.ByName("id"), update.Status)
	if err != nil {
		h.writeError(w, "UpdateStatus", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateStatus", "error", err)
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.bookings.Delete(r.Context(), middleware.IdentityFrom(r.Context()), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

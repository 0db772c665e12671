package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	apperrors "piqueunique/pkg/errors"
	httputil "piqueunique/pkg/http"
	"piqueunique/pkg/middleware"
)

// AuditLogs returns recent audit entries, admins only. An optional
// booking_id narrows the result to one booking's history.
func (h *BookingHandler) AuditLogs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			h.writeError(w, "AuditLogs", apperrors.InvalidInput("invalid limit parameter: "+s))
			return
		}
		limit = v
	}

	entries, err := h.audit.Logs(r.Context(), middleware.IdentityFrom(r.Context()), query.Get("booking_id"), limit)
	if err != nil {
		h.writeError(w, "AuditLogs", err)
		return
	}

	if err := httputil.WriteSuccess(w, entries); err != nil {
		h.log.Error("failed to write success response", "handler", "AuditLogs", "error", err)
	}
}

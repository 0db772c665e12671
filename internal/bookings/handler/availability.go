package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	apperrors "piqueunique/pkg/errors"
	httputil "piqueunique/pkg/http"
)

// availabilityResponse answers both query shapes. BookedTimes is set for a
// single-day query, BookedDates for a range query.
type availabilityResponse struct {
	Location    string   `json:"location"`
	Date        string   `json:"date,omitempty"`
	From        string   `json:"from,omitempty"`
	To          string   `json:"to,omitempty"`
	BookedTimes []string `json:"booked_times,omitempty"`
	BookedDates []string `json:"booked_dates,omitempty"`
}

// Availability serves the public slot calendar. With ?date= it returns the
// occupied slot labels for that day; with ?from=&to= it returns the
// occupied dates in the window.
func (h *BookingHandler) Availability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	location := query.Get("location")
	date := query.Get("date")
	from := query.Get("from")
	to := query.Get("to")

	switch {
	case date != "":
		times, err := h.availability.BookedTimes(r.Context(), location, date)
		if err != nil {
			h.writeError(w, "Availability", err)
			return
		}
		if err := httputil.WriteSuccess(w, availabilityResponse{
			Location:    location,
			Date:        date,
			BookedTimes: times,
		}); err != nil {
			h.log.Error("failed to write success response", "handler", "Availability", "error", err)
		}

	case from != "" && to != "":
		dates, err := h.availability.BookedDates(r.Context(), location, from, to)
		if err != nil {
			h.writeError(w, "Availability", err)
			return
		}
		if err := httputil.WriteSuccess(w, availabilityResponse{
			Location:    location,
			From:        from,
			To:          to,
			BookedDates: dates,
		}); err != nil {
			h.log.Error("failed to write success response", "handler", "Availability", "error", err)
		}

	default:
		h.writeError(w, "Availability", apperrors.InvalidInput("either date or from/to query parameters are required"))
	}
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	redisclient "github.com/glowdesk/salon-backend/internal/redis"
	"github.com/glowdesk/salon-backend/internal/salon"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, ErrorResponse{Error: code, Details: details})
}

// respondError maps a domain outcome to an HTTP response. Internal failures
// surface as a generic message; the cause is logged, not leaked.
func respondError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	var verr *salon.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, "invalid_input", verr.Error())
	case errors.Is(err, salon.ErrCustomerNotFound):
		writeError(w, http.StatusNotFound, "customer_not_found", err.Error())
	case errors.Is(err, salon.ErrStaffNotFound):
		writeError(w, http.StatusNotFound, "staff_not_found", err.Error())
	case errors.Is(err, salon.ErrStaffInactive):
		writeError(w, http.StatusNotFound, "staff_inactive", err.Error())
	case errors.Is(err, salon.ErrServiceNotFound):
		writeError(w, http.StatusNotFound, "service_not_found", err.Error())
	case errors.Is(err, salon.ErrServiceInactive):
		writeError(w, http.StatusNotFound, "service_inactive", err.Error())
	case errors.Is(err, salon.ErrAppointmentNotFound):
		writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
	case errors.Is(err, salon.ErrEmailExists):
		writeError(w, http.StatusConflict, "email_in_use", err.Error())
	case errors.Is(err, salon.ErrScheduleConflict):
		writeError(w, http.StatusConflict, "schedule_conflict", err.Error())
	case errors.Is(err, salon.ErrBookingContended),
		errors.Is(err, redisclient.ErrLockNotAcquired):
		writeError(w, http.StatusConflict, "slot_being_booked", "time slot is currently being booked, please retry shortly")
	default:
		log.WithError(err).Error("request failed")
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// parseLimit reads the limit query parameter, falling back to def and
// clamping to [1, max].
func parseLimit(r *http.Request, def, max int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return false
	}
	return true
}

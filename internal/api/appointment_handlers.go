package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/glowdesk/salon-backend/internal/salon"
)

// AppointmentAPI is the slice of AppointmentService the handlers need.
type AppointmentAPI interface {
	Create(ctx context.Context, in salon.AppointmentCreate) (*salon.Appointment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*salon.Appointment, error)
	Update(ctx context.Context, id uuid.UUID, in salon.AppointmentUpdate) (*salon.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status salon.AppointmentStatus) (*salon.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit int) ([]salon.Appointment, error)
	ByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]salon.Appointment, error)
	ByStaff(ctx context.Context, staffID uuid.UUID, limit int) ([]salon.Appointment, error)
	ByService(ctx context.Context, serviceID uuid.UUID, limit int) ([]salon.Appointment, error)
	ByDate(ctx context.Context, date time.Time, limit int) ([]salon.Appointment, error)
	ByDateAndStaff(ctx context.Context, date time.Time, staffID uuid.UUID, limit int) ([]salon.Appointment, error)
	ByStatus(ctx context.Context, status salon.AppointmentStatus, limit int) ([]salon.Appointment, error)
	Upcoming(ctx context.Context, limit int) ([]salon.Appointment, error)
	Today(ctx context.Context, limit int) ([]salon.Appointment, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status salon.AppointmentStatus) (int, error)
}

func parseDateParam(r *http.Request, name string) (time.Time, bool) {
	date, err := time.Parse(dateLayout, chi.URLParam(r, name))
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

func createAppointmentHandler(svc AppointmentAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAppointmentRequest
		if !decodeBody(w, r, &req) {
			return
		}

		date, err := time.Parse(dateLayout, req.AppointmentDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_date", "appointment_date must be YYYY-MM-DD")
			return
		}
		clock, err := salon.ParseClock(req.AppointmentTime)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_time", "appointment_time must be HH:MM or HH:MM:SS")
			return
		}

		var status salon.AppointmentStatus
		if req.Status != nil {
			status = salon.AppointmentStatus(*req.Status)
		}

		appt, err := svc.Create(r.Context(), salon.AppointmentCreate{
			CustomerID: req.CustomerID,
			StaffID:    req.StaffID,
			ServiceID:  req.ServiceID,
			Date:       date,
			Time:       clock,
			Status:     status,
			Notes:      req.Notes,
			Price:      req.Price,
		})
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAppointmentResponse(appt))
	}
}

func getAppointmentHandler(svc AppointmentAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		appt, err := svc.GetByID(r.Context(), id)
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

func updateAppointmentHandler(svc AppointmentAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		var req UpdateAppointmentRequest
		if !decodeBody(w, r, &req) {
			return
		}

		in := salon.AppointmentUpdate{
			CustomerID: req.CustomerID,
			StaffID:    req.StaffID,
			ServiceID:  req.ServiceID,
			Notes:      req.Notes,
			Price:      req.Price,
		}
		if req.AppointmentDate != nil {
			date, err := time.Parse(dateLayout, *req.AppointmentDate)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_appointment_date", "appointment_date must be YYYY-MM-DD")
				return
			}
			in.Date = &date
		}
		if req.AppointmentTime != nil {
			clock, err := salon.ParseClock(*req.AppointmentTime)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_appointment_time", "appointment_time must be HH:MM or HH:MM:SS")
				return
			}
			in.Time = &clock
		}
		if req.Status != nil {
			status := salon.AppointmentStatus(*req.Status)
			in.Status = &status
		}

		appt, err := svc.Update(r.Context(), id, in)
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

func updateAppointmentStatusHandler(svc AppointmentAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		var req UpdateAppointmentStatusRequest
		if !decodeBody(w, r, &req) {
			return
		}

		appt, err := svc.UpdateStatus(r.Context(), id, salon.AppointmentStatus(req.Status))
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

func deleteAppointmentHandler(svc AppointmentAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			respondError(w, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listAppointmentsHandler(svc AppointmentAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appts, err := svc.List(r.Context(), parseLimit(r, defaultListLimit, maxListLimit))
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponses(appts))
	}
}

func listAppointmentsByCustomerHandler(svc AppointmentAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_customer_id", "id must be a valid UUID")
			return
		}

		appts, err := svc.ByCustomer(r.Context(), id, parseLimit(r, defaultListLimit, maxListLimit))
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponses(appts))
	}
}

func listAppointmentsByStaffHandler(svc AppointmentAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_staff_id", "id must be a valid UUID")
			return
		}

		appts, err := svc.ByStaff(r.Context(), id, parseLimit(r, defaultListLimit, maxListLimit))
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponses(appts))
	}
}

func listAppointmentsByServiceHandler(svc AppointmentAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_service_id", "id must be a valid UUID")
			return
		}

		appts, err := svc.ByService(r.Context(), id, parseLimit(r, defaultListLimit, maxListLimit))
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponses(appts))
	}
}

func listAppointmentsByDateHandler(svc AppointmentAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, ok := parseDateParam(r, "date")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
			return
		}

		appts, err := svc.ByDate(r.Context(), date, parseLimit(r, defaultListLimit, maxListLimit))
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponses(appts))
	}
}

func listAppointmentsByDateAndStaffHandler(svc AppointmentAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, ok := parseDateParam(r, "date")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
			return
		}
		staffID, err := uuidParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_staff_id", "id must be a valid UUID")
			return
		}

		appts, err := svc.ByDateAndStaff(r.Context(), date, staffID, parseLimit(r, defaultListLimit, maxListLimit))
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponses(appts))
	}
}

func listAppointmentsByStatusHandler(svc AppointmentAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := salon.AppointmentStatus(chi.URLParam(r, "status"))
		appts, err := svc.ByStatus(r.Context(), status, parseLimit(r, defaultListLimit, maxListLimit))
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponses(appts))
	}
}

func listUpcomingAppointmentsHandler(svc AppointmentAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appts, err := svc.Upcoming(r.Context(), parseLimit(r, defaultListLimit, maxListLimit))
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponses(appts))
	}
}

func listTodayAppointmentsHandler(svc AppointmentAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appts, err := svc.Today(r.Context(), parseLimit(r, defaultListLimit, maxListLimit))
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponses(appts))
	}
}

func countAppointmentsHandler(svc AppointmentAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := svc.Count(r.Context())
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, CountResponse{Total: count})
	}
}

func countAppointmentsByStatusHandler(svc AppointmentAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := chi.URLParam(r, "status")
		count, err := svc.CountByStatus(r.Context(), salon.AppointmentStatus(status))
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, StatusCountResponse{Status: status, Count: count})
	}
}

package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/glowdesk/salon-backend/internal/salon"
)

// StaffAPI is the slice of StaffService the handlers need.
type StaffAPI interface {
	Create(ctx context.Context, in salon.StaffCreate) (*salon.Staff, error)
	GetByID(ctx context.Context, id uuid.UUID) (*salon.Staff, error)
	GetByEmail(ctx context.Context, email string) (*salon.Staff, error)
	List(ctx context.Context, limit int) ([]salon.Staff, error)
	ListActive(ctx context.Context, limit int) ([]salon.Staff, error)
	ListByRole(ctx context.Context, role string, activeOnly bool, limit int) ([]salon.Staff, error)
	ListBySpecialty(ctx context.Context, specialty string, limit int) ([]salon.Staff, error)
	SearchByName(ctx context.Context, term string, limit int) ([]salon.Staff, error)
	Roles(ctx context.Context) ([]string, error)
	Update(ctx context.Context, id uuid.UUID, in salon.StaffUpdate) (*salon.Staff, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
	CountActive(ctx context.Context) (int, error)
}

func createStaffHandler(svc StaffAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateStaffRequest
		if !decodeBody(w, r, &req) {
			return
		}

		staff, err := svc.Create(r.Context(), salon.StaffCreate{
			Name:        req.Name,
			Email:       req.Email,
			Phone:       req.Phone,
			Role:        req.Role,
			Specialties: req.Specialties,
			IsActive:    req.IsActive,
			HireDate:    req.HireDate,
		})
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, toStaffResponse(staff))
	}
}

func getStaffHandler(svc StaffAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_staff_id", "id must be a valid UUID")
			return
		}

		staff, err := svc.GetByID(r.Context(), id)
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toStaffResponse(staff))
	}
}

func getStaffByEmailHandler(svc StaffAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		staff, err := svc.GetByEmail(r.Context(), chi.URLParam(r, "email"))
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toStaffResponse(staff))
	}
}

func listStaffHandler(svc StaffAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		staff, err := svc.List(r.Context(), parseLimit(r, defaultListLimit, maxListLimit))
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toStaffResponses(staff))
	}
}

func listActiveStaffHandler(svc StaffAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		staff, err := svc.ListActive(r.Context(), parseLimit(r, defaultListLimit, maxListLimit))
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toStaffResponses(staff))
	}
}

func listStaffByRoleHandler(svc StaffAPI, activeOnly bool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		staff, err := svc.ListByRole(r.Context(), chi.URLParam(r, "role"), activeOnly, parseLimit(r, defaultListLimit, maxListLimit))
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toStaffResponses(staff))
	}
}

func listStaffBySpecialtyHandler(svc StaffAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		staff, err := svc.ListBySpecialty(r.Context(), chi.URLParam(r, "specialty"), parseLimit(r, defaultListLimit, maxListLimit))
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toStaffResponses(staff))
	}
}

func searchStaffHandler(svc StaffAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := r.URL.Query().Get("name")
		staff, err := svc.SearchByName(r.Context(), term, parseLimit(r, defaultSearchLimit, maxSearchLimit))
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toStaffResponses(staff))
	}
}

func listStaffRolesHandler(svc StaffAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roles, err := svc.Roles(r.Context())
		if err != nil {
			respondError(w, log, err)
			return
		}
		if roles == nil {
			roles = []string{}
		}
		writeJSON(w, http.StatusOK, RolesResponse{Roles: roles})
	}
}

func updateStaffHandler(svc StaffAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_staff_id", "id must be a valid UUID")
			return
		}

		var req UpdateStaffRequest
		if !decodeBody(w, r, &req) {
			return
		}

		staff, err := svc.Update(r.Context(), id, salon.StaffUpdate{
			Name:        req.Name,
			Email:       req.Email,
			Phone:       req.Phone,
			Role:        req.Role,
			Specialties: req.Specialties,
			IsActive:    req.IsActive,
			HireDate:    req.HireDate,
		})
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toStaffResponse(staff))
	}
}

func deleteStaffHandler(svc StaffAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_staff_id", "id must be a valid UUID")
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			respondError(w, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func countStaffHandler(svc StaffAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := svc.Count(r.Context())
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, CountResponse{Total: count})
	}
}

func countActiveStaffHandler(svc StaffAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := svc.CountActive(r.Context())
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, CountResponse{Total: count})
	}
}

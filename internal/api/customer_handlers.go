package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/glowdesk/salon-backend/internal/salon"
)

// CustomerAPI is the slice of CustomerService the handlers need.
type CustomerAPI interface {
	Create(ctx context.Context, in salon.CustomerCreate) (*salon.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*salon.Customer, error)
	GetByEmail(ctx context.Context, email string) (*salon.Customer, error)
	List(ctx context.Context, limit int) ([]salon.Customer, error)
	Update(ctx context.Context, id uuid.UUID, in salon.CustomerUpdate) (*salon.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SearchByName(ctx context.Context, term string, limit int) ([]salon.Customer, error)
	Count(ctx context.Context) (int, error)
}

func createCustomerHandler(svc CustomerAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateCustomerRequest
		if !decodeBody(w, r, &req) {
			return
		}

		customer, err := svc.Create(r.Context(), salon.CustomerCreate{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Address: req.Address,
		})
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, toCustomerResponse(customer))
	}
}

func getCustomerHandler(svc CustomerAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_customer_id", "id must be a valid UUID")
			return
		}

		customer, err := svc.GetByID(r.Context(), id)
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toCustomerResponse(customer))
	}
}

func getCustomerByEmailHandler(svc CustomerAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customer, err := svc.GetByEmail(r.Context(), chi.URLParam(r, "email"))
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toCustomerResponse(customer))
	}
}

func listCustomersHandler(svc CustomerAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customers, err := svc.List(r.Context(), parseLimit(r, defaultListLimit, maxListLimit))
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toCustomerResponses(customers))
	}
}

func updateCustomerHandler(svc CustomerAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_customer_id", "id must be a valid UUID")
			return
		}

		var req UpdateCustomerRequest
		if !decodeBody(w, r, &req) {
			return
		}

		customer, err := svc.Update(r.Context(), id, salon.CustomerUpdate{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Address: req.Address,
		})
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toCustomerResponse(customer))
	}
}

func deleteCustomerHandler(svc CustomerAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_customer_id", "id must be a valid UUID")
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			respondError(w, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func searchCustomersHandler(svc CustomerAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := r.URL.Query().Get("name")
		customers, err := svc.SearchByName(r.Context(), term, parseLimit(r, defaultSearchLimit, maxSearchLimit))
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toCustomerResponses(customers))
	}
}

func countCustomersHandler(svc CustomerAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := svc.Count(r.Context())
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, CountResponse{Total: count})
	}
}

package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/glowdesk/salon-backend/internal/salon"
)

// ServiceAPI is the slice of ServiceCatalogService the handlers need.
type ServiceAPI interface {
	Create(ctx context.Context, in salon.ServiceCreate) (*salon.Service, error)
	GetByID(ctx context.Context, id uuid.UUID) (*salon.Service, error)
	List(ctx context.Context, limit int) ([]salon.Service, error)
	ListActive(ctx context.Context, limit int) ([]salon.Service, error)
	ListByCategory(ctx context.Context, category string, activeOnly bool, limit int) ([]salon.Service, error)
	SearchByName(ctx context.Context, term string, limit int) ([]salon.Service, error)
	Categories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, id uuid.UUID, in salon.ServiceUpdate) (*salon.Service, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
	CountActive(ctx context.Context) (int, error)
}

func createServiceHandler(svc ServiceAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateServiceRequest
		if !decodeBody(w, r, &req) {
			return
		}

		service, err := svc.Create(r.Context(), salon.ServiceCreate{
			Name:        req.Name,
			Description: req.Description,
			Duration:    req.Duration,
			Price:       req.Price,
			Category:    req.Category,
			IsActive:    req.IsActive,
		})
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, toServiceResponse(service))
	}
}

func getServiceHandler(svc ServiceAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_service_id", "id must be a valid UUID")
			return
		}

		service, err := svc.GetByID(r.Context(), id)
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toServiceResponse(service))
	}
}

func listServicesHandler(svc ServiceAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services, err := svc.List(r.Context(), parseLimit(r, defaultListLimit, maxListLimit))
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toServiceResponses(services))
	}
}

func listActiveServicesHandler(svc ServiceAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services, err := svc.ListActive(r.Context(), parseLimit(r, defaultListLimit, maxListLimit))
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toServiceResponses(services))
	}
}

func listServicesByCategoryHandler(svc ServiceAPI, activeOnly bool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services, err := svc.ListByCategory(r.Context(), chi.URLParam(r, "category"), activeOnly, parseLimit(r, defaultListLimit, maxListLimit))
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toServiceResponses(services))
	}
}

func searchServicesHandler(svc ServiceAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := r.URL.Query().Get("name")
		services, err := svc.SearchByName(r.Context(), term, parseLimit(r, defaultSearchLimit, maxSearchLimit))
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toServiceResponses(services))
	}
}

func listServiceCategoriesHandler(svc ServiceAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.Categories(r.Context())
		if err != nil {
			respondError(w, log, err)
			return
		}
		if categories == nil {
			categories = []string{}
		}
		writeJSON(w, http.StatusOK, CategoriesResponse{Categories: categories})
	}
}

func updateServiceHandler(svc ServiceAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_service_id", "id must be a valid UUID")
			return
		}

		var req UpdateServiceRequest
		if !decodeBody(w, r, &req) {
			return
		}

		service, err := svc.Update(r.Context(), id, salon.ServiceUpdate{
			Name:        req.Name,
			Description: req.Description,
			Duration:    req.Duration,
			Price:       req.Price,
			Category:    req.Category,
			IsActive:    req.IsActive,
		})
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toServiceResponse(service))
	}
}

func deleteServiceHandler(svc ServiceAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_service_id", "id must be a valid UUID")
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			respondError(w, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func countServicesHandler(svc ServiceAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := svc.Count(r.Context())
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, CountResponse{Total: count})
	}
}

func countActiveServicesHandler(svc ServiceAPI, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := svc.CountActive(r.Context())
		if err != nil {
			respondError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, CountResponse{Total: count})
	}
}

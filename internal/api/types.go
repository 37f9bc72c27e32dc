package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/glowdesk/salon-backend/internal/salon"
)

const (
	defaultListLimit   = 100
	maxListLimit       = 1000
	defaultSearchLimit = 50
	maxSearchLimit     = 500
)

const dateLayout = "2006-01-02"

type CreateCustomerRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Address   *string   `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toCustomerResponse(c *salon.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toCustomerResponses(cs []salon.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(cs))
	for i := range cs {
		out = append(out, toCustomerResponse(&cs[i]))
	}
	return out
}

type CreateStaffRequest struct {
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       *string    `json:"phone,omitempty"`
	Role        string     `json:"role"`
	Specialties []string   `json:"specialties,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
	HireDate    *time.Time `json:"hire_date,omitempty"`
}

type UpdateStaffRequest struct {
	Name        *string    `json:"name,omitempty"`
	Email       *string    `json:"email,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	Role        *string    `json:"role,omitempty"`
	Specialties []string   `json:"specialties,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
	HireDate    *time.Time `json:"hire_date,omitempty"`
}

type StaffResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       *string    `json:"phone"`
	Role        string     `json:"role"`
	Specialties []string   `json:"specialties"`
	IsActive    bool       `json:"is_active"`
	HireDate    *time.Time `json:"hire_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toStaffResponse(s *salon.Staff) StaffResponse {
	specialties := s.Specialties
	if specialties == nil {
		specialties = []string{}
	}
	return StaffResponse{
		ID:          s.ID,
		Name:        s.Name,
		Email:       s.Email,
		Phone:       s.Phone,
		Role:        s.Role,
		Specialties: specialties,
		IsActive:    s.IsActive,
		HireDate:    s.HireDate,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toStaffResponses(ss []salon.Staff) []StaffResponse {
	out := make([]StaffResponse, 0, len(ss))
	for i := range ss {
		out = append(out, toStaffResponse(&ss[i]))
	}
	return out
}

type CreateServiceRequest struct {
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Duration    int             `json:"duration"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	IsActive    *bool           `json:"is_active,omitempty"`
}

type UpdateServiceRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Duration    *int             `json:"duration,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    *string          `json:"category,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

type ServiceResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Duration    int             `json:"duration"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toServiceResponse(s *salon.Service) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Duration:    s.Duration,
		Price:       s.Price,
		Category:    s.Category,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toServiceResponses(ss []salon.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(ss))
	for i := range ss {
		out = append(out, toServiceResponse(&ss[i]))
	}
	return out
}

type CreateAppointmentRequest struct {
	CustomerID      uuid.UUID        `json:"customer_id"`
	StaffID         uuid.UUID        `json:"staff_id"`
	ServiceID       uuid.UUID        `json:"service_id"`
	AppointmentDate string           `json:"appointment_date"`
	AppointmentTime string           `json:"appointment_time"`
	Status          *string          `json:"status,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
}

type UpdateAppointmentRequest struct {
	CustomerID      *uuid.UUID       `json:"customer_id,omitempty"`
	StaffID         *uuid.UUID       `json:"staff_id,omitempty"`
	ServiceID       *uuid.UUID       `json:"service_id,omitempty"`
	AppointmentDate *string          `json:"appointment_date,omitempty"`
	AppointmentTime *string          `json:"appointment_time,omitempty"`
	Status          *string          `json:"status,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status"`
}

type AppointmentResponse struct {
	ID              uuid.UUID        `json:"id"`
	CustomerID      uuid.UUID        `json:"customer_id"`
	StaffID         uuid.UUID        `json:"staff_id"`
	ServiceID       uuid.UUID        `json:"service_id"`
	AppointmentDate string           `json:"appointment_date"`
	AppointmentTime string           `json:"appointment_time"`
	Status          string           `json:"status"`
	Notes           *string          `json:"notes"`
	Price           *decimal.Decimal `json:"price"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func toAppointmentResponse(a *salon.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:              a.ID,
		CustomerID:      a.CustomerID,
		StaffID:         a.StaffID,
		ServiceID:       a.ServiceID,
		AppointmentDate: a.Date.Format(dateLayout),
		AppointmentTime: salon.FormatClock(a.Time),
		Status:          string(a.Status),
		Notes:           a.Notes,
		Price:           a.Price,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func toAppointmentResponses(as []salon.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(as))
	for i := range as {
		out = append(out, toAppointmentResponse(&as[i]))
	}
	return out
}

type CountResponse struct {
	Total int `json:"total"`
}

type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type RolesResponse struct {
	Roles []string `json:"roles"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

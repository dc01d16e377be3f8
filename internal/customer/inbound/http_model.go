package inbound

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/gocustomer/internal/customer/entity"
	"github.com/shandysiswandi/gocustomer/internal/customer/usecase"
	"github.com/shandysiswandi/gocustomer/internal/pkg/goerror"
)

const dateLayout = time.DateOnly

type CustomerRequest struct {
	FirstName   string `json:"first_name" example:"Ana"`
	LastName    string `json:"last_name" example:"Souza"`
	Email       string `json:"email" example:"ana.souza@example.com"`
	PhoneNumber string `json:"phone_number" example:"5511999998888"`
	DateOfBirth string `json:"date_of_birth" example:"1990-05-12"`
	Address     string `json:"address" example:"Rua das Flores, 123"`
}

// toInput accepts date_of_birth as YYYY-MM-DD or RFC 3339. An empty value is
// passed through as unset so the rule engine reports it.
func (req CustomerRequest) toInput() (usecase.CustomerInput, error) {
	in := usecase.CustomerInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	}

	raw := strings.TrimSpace(req.DateOfBirth)
	if raw == "" {
		return in, nil
	}

	dob, err := time.Parse(dateLayout, raw)
	if err != nil {
		dob, err = time.Parse(time.RFC3339, raw)
	}
	if err != nil {
		return in, goerror.NewInvalidInput(nil, "date_of_birth", "date of birth must be formatted as YYYY-MM-DD or RFC 3339")
	}

	in.DateOfBirth = dob
	return in, nil
}

type CustomerResponse struct {
	ID          int64  `json:"id" example:"1"`
	FirstName   string `json:"first_name" example:"Ana"`
	LastName    string `json:"last_name" example:"Souza"`
	Email       string `json:"email" example:"ana.souza@example.com"`
	PhoneNumber string `json:"phone_number" example:"5511999998888"`
	DateOfBirth string `json:"date_of_birth" example:"1990-05-12"`
	Address     string `json:"address" example:"Rua das Flores, 123"`
}

func toCustomerResponse(c entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		DateOfBirth: c.DateOfBirth.Format(dateLayout),
		Address:     c.Address,
	}
}

type CustomerListResponse []CustomerResponse

func toCustomerListResponse(customers []entity.Customer) CustomerListResponse {
	return lo.Map(customers, func(c entity.Customer, _ int) CustomerResponse {
		return toCustomerResponse(c)
	})
}

func (CustomerListResponse) Message() string {
	return "Customers retrieved"
}

type CustomerDetailResponse struct {
	CustomerResponse
}

func (CustomerDetailResponse) Message() string {
	return "Customer retrieved"
}

type CustomerCreatedResponse struct {
	CustomerResponse
}

func (CustomerCreatedResponse) StatusCode() int {
	return http.StatusCreated
}

func (CustomerCreatedResponse) Message() string {
	return "Customer created"
}

func (r CustomerCreatedResponse) Location() string {
	return "/api/customers/" + strconv.FormatInt(r.ID, 10)
}

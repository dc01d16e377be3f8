package inbound

import (
	"github.com/shandysiswandi/gocustomer/internal/customer/usecase"
	"github.com/shandysiswandi/gocustomer/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// CustomerList returns every customer in insertion order.
// @Summary List customers
// @Description Returns every stored customer in insertion order.
// @Tags Customers
// @Produce json
// @Success 200 {object} router.successResponse{data=CustomerListResponse} "Customer list"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/customers [get]
func (h *HTTPEndpoint) CustomerList(r *router.Request) (any, error) {
	resp, err := h.uc.CustomerList(r.Context())
	if err != nil {
		return nil, err
	}

	return toCustomerListResponse(resp.Customers), nil
}

// @Summary Get customer detail
// @Description Returns a customer by ID.
// @Tags Customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} router.successResponse{data=CustomerDetailResponse} "Customer detail"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 404 {object} router.errorResponse "Customer not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/customers/{id} [get]
func (h *HTTPEndpoint) CustomerDetail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.CustomerDetail(r.Context(), usecase.CustomerDetailInput{ID: id})
	if err != nil {
		return nil, err
	}

	return CustomerDetailResponse{CustomerResponse: toCustomerResponse(resp.Customer)}, nil
}

// @Summary Create customer
// @Description Validates and stores a new customer. Every rule failure is returned under errors.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body CustomerRequest true "Customer payload"
// @Success 201 {object} router.successResponse{data=CustomerResponse} "Customer created"
// @Header 201 {string} Location "/api/customers/{id}"
// @Failure 400 {object} router.errorResponse "Invalid request body or validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/customers [post]
func (h *HTTPEndpoint) CustomerCreate(r *router.Request) (any, error) {
	var req CustomerRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	in, err := req.toInput()
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.CustomerCreate(r.Context(), usecase.CustomerCreateInput{Customer: in})
	if err != nil {
		return nil, err
	}

	return CustomerCreatedResponse{CustomerResponse: toCustomerResponse(resp.Customer)}, nil
}

// @Summary Update customer
// @Description Replaces every field of an existing customer.
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Param request body CustomerRequest true "Customer payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body or validation error"
// @Failure 404 {object} router.errorResponse "Customer not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/customers/{id} [put]
func (h *HTTPEndpoint) CustomerUpdate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req CustomerRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	in, err := req.toInput()
	if err != nil {
		return nil, err
	}

	if err := h.uc.CustomerUpdate(r.Context(), usecase.CustomerUpdateInput{ID: id, Customer: in}); err != nil {
		return nil, err
	}

	return nil, nil
}

// @Summary Delete customer
// @Description Removes a customer by ID.
// @Tags Customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 404 {object} router.errorResponse "Customer not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/customers/{id} [delete]
func (h *HTTPEndpoint) CustomerDelete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.CustomerDelete(r.Context(), usecase.CustomerDeleteInput{ID: id}); err != nil {
		return nil, err
	}

	return nil, nil
}

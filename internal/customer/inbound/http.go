package inbound

import (
	"context"

	"github.com/shandysiswandi/gocustomer/internal/customer/usecase"
	"github.com/shandysiswandi/gocustomer/internal/pkg/router"
)

type uc interface {
	CustomerList(ctx context.Context) (*usecase.CustomerListOutput, error)
	CustomerDetail(ctx context.Context, in usecase.CustomerDetailInput) (*usecase.CustomerDetailOutput, error)
	CustomerCreate(ctx context.Context, in usecase.CustomerCreateInput) (*usecase.CustomerCreateOutput, error)
	CustomerUpdate(ctx context.Context, in usecase.CustomerUpdateInput) error
	CustomerDelete(ctx context.Context, in usecase.CustomerDeleteInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/customers", end.CustomerList)
	r.GET("/api/customers/:id", end.CustomerDetail)
	r.POST("/api/customers", end.CustomerCreate)
	r.PUT("/api/customers/:id", end.CustomerUpdate)
	r.DELETE("/api/customers/:id", end.CustomerDelete)
}

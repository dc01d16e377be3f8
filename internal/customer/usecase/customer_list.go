package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/gocustomer/internal/customer/entity"
	"github.com/shandysiswandi/gocustomer/internal/pkg/goerror"
)

type CustomerListOutput struct {
	Customers []entity.Customer
}

func (s *Usecase) CustomerList(ctx context.Context) (*CustomerListOutput, error) {
	ctx, span := s.startSpan(ctx, "CustomerList")
	defer span.End()

	customers, err := s.repoDB.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list customers", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CustomerListOutput{Customers: customers}, nil
}

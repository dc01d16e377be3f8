package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gocustomer/internal/customer/entity"
	"github.com/shandysiswandi/gocustomer/internal/pkg/goerror"
)

type (
	CustomerDetailInput struct {
		ID int64
	}

	CustomerDetailOutput struct {
		Customer entity.Customer
	}
)

func (s *Usecase) CustomerDetail(ctx context.Context, in CustomerDetailInput) (*CustomerDetailOutput, error) {
	ctx, span := s.startSpan(ctx, "CustomerDetail")
	defer span.End()

	customer, err := s.findCustomer(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	return &CustomerDetailOutput{Customer: *customer}, nil
}

func (s *Usecase) findCustomer(ctx context.Context, id int64) (*entity.Customer, error) {
	customer, err := s.repoDB.GetByID(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "customer not found", "customer_id", id)
		return nil, goerror.NewBusiness("customer not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get customer by id", "customer_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return customer, nil
}

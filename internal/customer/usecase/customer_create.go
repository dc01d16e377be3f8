package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/gocustomer/internal/customer/entity"
	"github.com/shandysiswandi/gocustomer/internal/pkg/goerror"
)

type (
	CustomerCreateInput struct {
		Customer CustomerInput
	}

	CustomerCreateOutput struct {
		Customer entity.Customer
	}
)

func (s *Usecase) CustomerCreate(ctx context.Context, in CustomerCreateInput) (*CustomerCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "CustomerCreate")
	defer span.End()

	if err := s.validate(ctx, "create", in.Customer); err != nil {
		return nil, err
	}

	customer, err := s.repoDB.Create(ctx, in.Customer.toEntity(0))
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create customer", "email", in.Customer.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "customer created", "customer_id", customer.ID)

	return &CustomerCreateOutput{Customer: *customer}, nil
}

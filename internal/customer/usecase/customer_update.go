package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gocustomer/internal/pkg/goerror"
)

type (
	CustomerUpdateInput struct {
		ID       int64
		Customer CustomerInput
	}
)

// CustomerUpdate replaces every field of an existing customer. Existence is
// checked before the input is validated.
func (s *Usecase) CustomerUpdate(ctx context.Context, in CustomerUpdateInput) error {
	ctx, span := s.startSpan(ctx, "CustomerUpdate")
	defer span.End()

	if _, err := s.findCustomer(ctx, in.ID); err != nil {
		return err
	}

	if err := s.validate(ctx, "update", in.Customer); err != nil {
		return err
	}

	err := s.repoDB.Update(ctx, in.Customer.toEntity(in.ID))
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "customer removed before update", "customer_id", in.ID)
		return goerror.NewBusiness("customer not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update customer", "customer_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

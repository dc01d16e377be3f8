package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gocustomer/internal/pkg/goerror"
)

type (
	CustomerDeleteInput struct {
		ID int64
	}
)

func (s *Usecase) CustomerDelete(ctx context.Context, in CustomerDeleteInput) error {
	ctx, span := s.startSpan(ctx, "CustomerDelete")
	defer span.End()

	err := s.repoDB.Delete(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "customer not found", "customer_id", in.ID)
		return goerror.NewBusiness("customer not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete customer", "customer_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "customer deleted", "customer_id", in.ID)

	return nil
}

package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/gocustomer/internal/customer/entity"
	"github.com/shandysiswandi/gocustomer/internal/pkg/goerror"
	"github.com/shandysiswandi/gocustomer/internal/pkg/instrument"
	"github.com/shandysiswandi/gocustomer/internal/pkg/validator"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	List(ctx context.Context) ([]entity.Customer, error)
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
	Create(ctx context.Context, c entity.Customer) (*entity.Customer, error)
	Update(ctx context.Context, c entity.Customer) error
	Delete(ctx context.Context, id int64) error
}

type customerValidator interface {
	Validate(in CustomerInput) validator.Result
}

type Usecase struct {
	repoDB    repoDB
	validator customerValidator
	ins       instrument.Instrumentation
	failures  metric.Int64Counter
}

type Dependency struct {
	RepoDB     repoDB
	Validator  customerValidator
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	failures, err := dep.Instrument.Meter("customer.usecase").Int64Counter(
		"customer.validation.failures",
		metric.WithDescription("Number of rule failures reported on customer writes"),
	)
	if err != nil {
		slog.Error("failed to create customer validation failure counter", "error", err)
	}

	return &Usecase{
		repoDB:    dep.RepoDB,
		validator: dep.Validator,
		ins:       dep.Instrument,
		failures:  failures,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("customer.usecase").Start(ctx, name)
}

func (s *Usecase) validate(ctx context.Context, op string, in CustomerInput) error {
	res := s.validator.Validate(in)
	if res.Valid {
		return nil
	}

	if s.failures != nil {
		for _, field := range res.Failures.Fields() {
			s.failures.Add(ctx, int64(len(res.Failures.Get(field))), metric.WithAttributes(
				attribute.String("operation", op),
				attribute.String("field", field),
			))
		}
	}

	slog.WarnContext(ctx, "customer input rejected", "operation", op, "fields", res.Failures.Fields())
	return goerror.NewInvalidInput(res.Err())
}

func (in CustomerInput) toEntity(id int64) entity.Customer {
	return entity.Customer{
		ID:          id,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		DateOfBirth: in.DateOfBirth,
		Address:     in.Address,
	}
}

package memory

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/shandysiswandi/gocustomer/internal/customer/entity"
	"github.com/shandysiswandi/gocustomer/internal/pkg/goerror"
	"github.com/shandysiswandi/gocustomer/internal/pkg/instrument"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
)

// Store keeps customers in process memory in insertion order. IDs start at 1
// and are never reused.
type Store struct {
	mu        sync.RWMutex
	customers []entity.Customer
	seq       *atomic.Int64
	ins       instrument.Instrumentation
}

func NewStore(ins instrument.Instrumentation) *Store {
	return &Store{
		seq: atomic.NewInt64(0),
		ins: ins,
	}
}

func (s *Store) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	ctx, span := s.ins.Tracer("customer.outbound.memory").Start(ctx, name)
	span.SetAttributes(attribute.String("db.system", "memory"))
	return ctx, span
}

func (s *Store) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *Store) indexOf(id int64) int {
	return slices.IndexFunc(s.customers, func(c entity.Customer) bool { return c.ID == id })
}

func (s *Store) List(ctx context.Context) (_ []entity.Customer, err error) {
	_, span := s.startSpan(ctx, "List")
	defer func() { s.endSpan(span, err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.customers), nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (_ *entity.Customer, err error) {
	_, span := s.startSpan(ctx, "GetByID")
	defer func() { s.endSpan(span, err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, goerror.ErrNotFound
	}

	customer := s.customers[idx]
	return &customer, nil
}

func (s *Store) Create(ctx context.Context, c entity.Customer) (_ *entity.Customer, err error) {
	_, span := s.startSpan(ctx, "Create")
	defer func() { s.endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.seq.Inc()
	s.customers = append(s.customers, c)

	span.SetAttributes(attribute.Int64("customer.id", c.ID))
	return &c, nil
}

func (s *Store) Update(ctx context.Context, c entity.Customer) (err error) {
	_, span := s.startSpan(ctx, "Update")
	defer func() { s.endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(c.ID)
	if idx < 0 {
		return goerror.ErrNotFound
	}

	s.customers[idx] = c
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) (err error) {
	_, span := s.startSpan(ctx, "Delete")
	defer func() { s.endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return goerror.ErrNotFound
	}

	s.customers = slices.Delete(s.customers, idx, idx+1)
	return nil
}

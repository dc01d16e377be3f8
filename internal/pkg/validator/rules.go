package validator

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Failure describes a single violated rule.
type Failure struct {
	Field   string `json:"field" example:"first_name"`
	Message string `json:"message" example:"first name is required"`
}

// Failures is the ordered list of violations produced by one validation run.
//
// It implements error so it can travel through error returns and be
// recovered with errors.As.
type Failures []Failure

// Error implements the error interface.
func (fs Failures) Error() string {
	if len(fs) == 0 {
		return "validation failed"
	}

	parts := lo.Map(fs, func(f Failure, _ int) string {
		return fmt.Sprintf("%s: %s", f.Field, f.Message)
	})

	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether at least one failure targets field.
func (fs Failures) Has(field string) bool {
	return lo.ContainsBy(fs, func(f Failure) bool { return f.Field == field })
}

// Get returns every message reported for field, in evaluation order, or nil
// when field has none.
func (fs Failures) Get(field string) []string {
	msgs := lo.FilterMap(fs, func(f Failure, _ int) (string, bool) {
		return f.Message, f.Field == field
	})
	if len(msgs) == 0 {
		return nil
	}
	return msgs
}

// Fields returns the distinct failing fields in first-seen order.
func (fs Failures) Fields() []string {
	return lo.Uniq(lo.Map(fs, func(f Failure, _ int) string { return f.Field }))
}

// Result is the outcome of Rules.Validate.
type Result struct {
	Valid    bool
	Failures Failures
}

// Err returns nil for a valid result and the failure list otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}

	return r.Failures
}

// Rule is one declared check. Position is its index inside its chain.
type Rule[T any] struct {
	Field    string
	Position int
	Message  string
	check    func(T) bool
}

type chain[T any] struct {
	field string
	rules []Rule[T]
}

// Rules holds ordered rule chains for candidates of type T.
//
// Declarations happen once at construction; afterwards a Rules value is
// read-only and Validate may be called from many goroutines.
type Rules[T any] struct {
	chains []*chain[T]
}

// NewRules returns an empty rule set.
func NewRules[T any]() *Rules[T] {
	return &Rules[T]{}
}

// Chain appends rules to one field chain.
type Chain[T, V any] struct {
	c        *chain[T]
	selector func(T) V
}

// Field starts a new chain for the named field. selector must be a pure
// accessor. Declaring the same field again starts another independent chain.
func Field[T, V any](rs *Rules[T], name string, selector func(T) V) *Chain[T, V] {
	c := &chain[T]{field: name}
	rs.chains = append(rs.chains, c)

	return &Chain[T, V]{c: c, selector: selector}
}

// Require appends a rule that only looks at the field value.
func (b *Chain[T, V]) Require(pred func(V) bool, message string) *Chain[T, V] {
	return b.Must(func(v V, _ T) bool { return pred(v) }, message)
}

// Must appends a rule that sees the field value and the whole candidate.
func (b *Chain[T, V]) Must(pred func(V, T) bool, message string) *Chain[T, V] {
	selector := b.selector
	b.c.rules = append(b.c.rules, Rule[T]{
		Field:    b.c.field,
		Position: len(b.c.rules),
		Message:  message,
		check: func(candidate T) bool {
			return pred(selector(candidate), candidate)
		},
	})

	return b
}

// Table returns a flat copy of every declared rule in evaluation order.
func (rs *Rules[T]) Table() []Rule[T] {
	return lo.FlatMap(rs.chains, func(c *chain[T], _ int) []Rule[T] {
		return append([]Rule[T](nil), c.rules...)
	})
}

// Validate evaluates every rule against candidate and accumulates all
// failures. Predicates that panic are not recovered.
func (rs *Rules[T]) Validate(candidate T) Result {
	var failures Failures
	for _, c := range rs.chains {
		for _, r := range c.rules {
			if !r.check(candidate) {
				failures = append(failures, Failure{Field: r.Field, Message: r.Message})
			}
		}
	}

	return Result{Valid: len(failures) == 0, Failures: failures}
}

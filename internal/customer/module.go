package customer

import (
	"github.com/shandysiswandi/gocustomer/internal/customer/inbound"
	"github.com/shandysiswandi/gocustomer/internal/customer/outbound/memory"
	"github.com/shandysiswandi/gocustomer/internal/customer/usecase"
	"github.com/shandysiswandi/gocustomer/internal/pkg/clock"
	"github.com/shandysiswandi/gocustomer/internal/pkg/instrument"
	"github.com/shandysiswandi/gocustomer/internal/pkg/router"
	"github.com/shandysiswandi/gocustomer/internal/pkg/validator"
)

type Dependency struct {
	Router     *router.Router             `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  *validator.V10Validator    `validate:"required"`
}

func New(dep Dependency) error {
	if dep.Validator == nil {
		return validator.V10ValidationError{"validator": "validator is a required field"}
	}
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	store := memory.NewStore(dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:     store,
		Validator:  usecase.NewCustomerValidator(dep.Clock, dep.Validator),
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}

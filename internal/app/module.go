package app

import (
	"fmt"

	"github.com/shandysiswandi/gocustomer/internal/customer"
)

func (a *App) initModules() error {
	if !a.config.GetBool("modules.customer.enabled") {
		return nil
	}

	err := customer.New(customer.Dependency{
		Router:     a.router,
		Instrument: a.ins,
		Clock:      a.clock,
		Validator:  a.validator,
	})
	if err != nil {
		return fmt.Errorf("customer: %w", err)
	}
	return nil
}

// Package app assembles the customer service from configuration and owns its
// lifecycle.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shandysiswandi/gocustomer/internal/pkg/clock"
	"github.com/shandysiswandi/gocustomer/internal/pkg/config"
	"github.com/shandysiswandi/gocustomer/internal/pkg/instrument"
	"github.com/shandysiswandi/gocustomer/internal/pkg/router"
	"github.com/shandysiswandi/gocustomer/internal/pkg/uid"
	"github.com/shandysiswandi/gocustomer/internal/pkg/validator"
)

// closer releases one resource during Stop.
type closer struct {
	name string
	fn   func(context.Context) error
}

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	config config.Config
	ins    instrument.Instrumentation

	validator *validator.V10Validator
	clock     clock.Clocker
	uuid      uid.StringID

	router     *router.Router
	httpServer *http.Server

	// closed in order by Stop, after the HTTP server
	closers []closer
}

// New runs every init step in order and stops at the first failure.
func New() (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{ctx: ctx, cancel: cancel}

	steps := []struct {
		name string
		fn   func() error
	}{
		{"config", a.initConfig},
		{"instrument", a.initInstrument},
		{"libraries", a.initLibraries},
		{"http server", a.initHTTPServer},
		{"modules", a.initModules},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			a.Stop(ctx)
			return nil, fmt.Errorf("init %s: %w", step.name, err)
		}
	}

	return a, nil
}

func (a *App) addCloser(name string, fn func(context.Context) error) {
	a.closers = append(a.closers, closer{name: name, fn: fn})
}

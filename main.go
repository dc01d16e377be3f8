package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shandysiswandi/gocustomer/internal/app"
)

const shutdownTimeout = 10 * time.Second

// @title           Customer API
// @version         1.0
// @description     Customer records service. Every write is checked by the customer rule set and all failures are reported together.
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
func main() {
	application, err := app.New()
	if err != nil {
		slog.Error("failed to start application", "error", err)
		os.Exit(1)
	}

	<-application.Start()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	application.Stop(ctx)
}

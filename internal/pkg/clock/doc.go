// Package clock provides a tiny time abstraction.
//
// Production code should depend on the Clocker interface instead of calling
// time.Now() directly. Age and "in the past" checks read the clock on every
// call, so tests pin it with FixedClocker to hit exact calendar boundaries.
package clock

package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shandysiswandi/gocustomer/internal/pkg/clock"
)

func TestTimeClocker(t *testing.T) {
	before := time.Now()
	got := clock.New().Now()

	assert.False(t, got.Before(before))
}

func TestFixedClocker(t *testing.T) {
	at := time.Date(2024, time.February, 29, 12, 0, 0, 0, time.UTC)
	c := clock.NewFixed(at)

	assert.True(t, c.Now().Equal(at))
	assert.True(t, c.Now().Equal(c.Now()))
}

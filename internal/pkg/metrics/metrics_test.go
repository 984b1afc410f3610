package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	Register()
	Register()

	before := testutil.ToFloat64(bookingCreated.WithLabelValues("banho"))
	IncBookingCreated("banho")
	assert.Equal(t, before+1, testutil.ToFloat64(bookingCreated.WithLabelValues("banho")))

	SetRealtimeClients(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(realtimeClients))
}

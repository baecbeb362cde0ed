package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDefaultIsIdempotent(t *testing.T) {
	require.NotPanics(t, func() {
		RegisterDefault()
		RegisterDefault()
	})

	families, err := Registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestOrdersProcessedCounterIncrements(t *testing.T) {
	RegisterDefault()
	before := testutil.ToFloat64(OrdersProcessed.WithLabelValues("placed"))
	OrdersProcessed.WithLabelValues("placed").Inc()
	after := testutil.ToFloat64(OrdersProcessed.WithLabelValues("placed"))
	assert.Equal(t, before+1, after)
}

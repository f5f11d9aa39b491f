package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveFetch_CountsByOutcome(t *testing.T) {
	before := testutil.ToFloat64(FetchesTotal.WithLabelValues(OutcomeHTTPError))

	ObserveFetch(OutcomeHTTPError, 120*time.Millisecond)
	ObserveFetch(OutcomeHTTPError, 80*time.Millisecond)

	after := testutil.ToFloat64(FetchesTotal.WithLabelValues(OutcomeHTTPError))
	assert.Equal(t, before+2, after)
}

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Submission("ok")
	m.Submission("ok")
	m.Submission("already_reviewed")
	m.Funding("fund", "ok")
	m.Payout("lock", "ok")
	m.VerificationFailure("wrong_sender")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissions.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissions.WithLabelValues("already_reviewed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fundings.WithLabelValues("fund", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.payouts.WithLabelValues("lock", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.verificationFailures.WithLabelValues("wrong_sender")))

	count, err := testutil.GatherAndCount(reg)
	assert.NoError(t, err)
	assert.Equal(t, 5, count)
}

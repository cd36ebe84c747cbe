package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAPICall(t *testing.T) {
	before := testutil.ToFloat64(APICallCounter.WithLabelValues("predict_test", "error"))
	RecordAPICall("predict_test", 500, 0.2)
	RecordAPICall("predict_test", 0, 0.1)
	RecordAPICall("predict_test", 200, 0.1)

	assert.Equal(t, before+2, testutil.ToFloat64(APICallCounter.WithLabelValues("predict_test", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(APICallCounter.WithLabelValues("predict_test", "success")))
}

func TestInitIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Init()
		Init()
	})
}

func TestRecordFlow(t *testing.T) {
	RecordFlow("detection_test", "success")
	assert.Equal(t, 1.0, testutil.ToFloat64(FlowOutcomes.WithLabelValues("detection_test", "success")))
}

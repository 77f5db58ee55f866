package observability

import (
	"testing"
	"time"

	"github.com/flightlink/msp/internal/testutil/testlog"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	testlog.Start(t)

	RegisterMetrics()
	RegisterMetrics()

	RecordRequest("MSP_IDENT", OutcomeOK, 12*time.Millisecond)
	RecordRequest("MSP_ATTITUDE", OutcomeTimeout, 500*time.Millisecond)
	RecordFrameError(FrameErrorChecksum)
}

package fsm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pazzk-labs/ocpp/internal/catalog"
)

func TestRequestRemoteStopEndsChargingOnNextStep(t *testing.T) {
	c, req, _ := newTestConnector()
	now := time.Unix(0, 0)

	c.Step(Context{Now: now, RFID: "tag-7"})
	c.Step(Context{Now: now.Add(time.Second), Signal: SignalC})
	require.Equal(t, Charging, c.State, "precondition: connector must be Charging")
	c.SetTransactionID(99)
	req.sent = nil

	c.RequestRemoteStop()
	c.Step(Context{Now: now.Add(2 * time.Second), Signal: SignalC})

	assert.Equal(t, Occupied, c.State, "RequestRemoteStop should end the session on the very next Step")
	assert.Contains(t, req.sent, catalog.StopTransaction)
	assert.Equal(t, 0, c.Session.TransactionID, "session should be cleared after the stop")
}

func TestRequestRemoteStopIsOneShot(t *testing.T) {
	c, _, _ := newTestConnector()
	now := time.Unix(0, 0)

	c.Step(Context{Now: now, RFID: "tag-7"})
	c.Step(Context{Now: now.Add(time.Second), Signal: SignalC})
	require.Equal(t, Charging, c.State)

	c.RequestRemoteStop()
	c.Step(Context{Now: now.Add(2 * time.Second), Signal: SignalC}) // consumes the pending stop
	require.Equal(t, Occupied, c.State)

	// Re-plugging and charging again must not be retroactively stopped by
	// the earlier RequestRemoteStop call — the flag is one-shot.
	c.Step(Context{Now: now.Add(3 * time.Second), RFID: "tag-8"})
	c.Step(Context{Now: now.Add(4 * time.Second), Signal: SignalC})
	assert.Equal(t, Charging, c.State, "a stale RequestRemoteStop must not fire again on a later session")
}

package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pazzk-labs/ocpp/internal/catalog"
)

func TestPushRequestDeferWaitsForScheduledTime(t *testing.T) {
	ft := &fakeTransport{}
	e := New(Config{PoolSize: 4, Transport: ft, Policy: DefaultPolicy()})

	now := time.Now()
	at := now.Add(10 * time.Second)
	id, err := e.PushRequestDefer(catalog.StartTransaction, &catalog.StartTransactionReq{ConnectorID: 1, IDTag: "tag-1"}, at)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	ready, wait, timer := e.QueueDepths()
	assert.Equal(t, 0, ready)
	assert.Equal(t, 0, wait)
	assert.Equal(t, 1, timer, "deferred request should sit on the timer queue until its deadline")

	require.NoError(t, e.Step(now))
	ready, _, timer = e.QueueDepths()
	assert.Equal(t, 0, ready, "still too early to move to ready")
	assert.Equal(t, 1, timer)

	// Timer promotion is the last phase of a step, so the promoted
	// message goes out on the tick after its deadline arrives.
	require.NoError(t, e.Step(at))
	ready, _, timer = e.QueueDepths()
	assert.Equal(t, 1, ready, "due timer entry promoted to ready")
	assert.Equal(t, 0, timer)

	require.NoError(t, e.Step(at.Add(time.Second)))
	assert.Len(t, ft.sent, 1, "the deferred StartTransaction should have been sent once its deadline arrived")
	assert.Equal(t, id, ft.sent[0].ID)
}

func TestPushResponseSkipsWaitQueueAndSendsOnNextStep(t *testing.T) {
	ft := &fakeTransport{}
	e := New(Config{PoolSize: 4, Transport: ft})

	err := e.PushResponse("central-req-1", catalog.GetConfiguration, catalog.RoleCallResult, &catalog.GetConfigurationConf{})
	require.NoError(t, err)

	ready, wait, _ := e.QueueDepths()
	assert.Equal(t, 1, ready, "a response goes straight to ready")
	assert.Equal(t, 0, wait)

	require.NoError(t, e.Step(time.Now()))
	require.Len(t, ft.sent, 1)
	assert.Equal(t, "central-req-1", ft.sent[0].ID)
	assert.Equal(t, catalog.RoleCallResult, ft.sent[0].Role)

	ready, wait, _ = e.QueueDepths()
	assert.Equal(t, 0, ready, "responses are fire-and-forget, never parked on wait")
	assert.Equal(t, 0, wait)
}

func TestPushResponseRejectsCallRole(t *testing.T) {
	e := New(Config{PoolSize: 4, Transport: &fakeTransport{}})

	err := e.PushResponse("id", catalog.Heartbeat, catalog.RoleCall, &catalog.HeartbeatReq{})
	assert.Error(t, err, "PushResponse must reject RoleCall, it is only for CallResult/CallError")
}

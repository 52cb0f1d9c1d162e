package main

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/natefinch/atomic"

	ocpp "github.com/pazzk-labs/ocpp"
	"github.com/pazzk-labs/ocpp/internal/catalog"
	"github.com/pazzk-labs/ocpp/internal/logging"
	"github.com/pazzk-labs/ocpp/internal/metrics"
	"github.com/pazzk-labs/ocpp/internal/queue"
)

// connectorInput is the one-shot and sticky state the REPL accumulates
// for a connector between Tick calls. Signal is sticky (it models a
// control-pilot line that stays at whatever level it was last driven
// to); RFID and the two hardware-fault flags are one-shot events that
// Tick consumes and clears, mirroring how a real RFID reader or relay
// fault line only reports an edge, not a level.
type connectorInput struct {
	signal            ocpp.CPSignal
	rfid              string
	hardwareError     bool
	hardwareRecovered bool
}

// App owns the engine and every piece of host state chargepoint-sim
// layers around it: the simulated central system, the per-connector
// guard-event state the REPL mutates, and snapshot persistence.
type App struct {
	engine   *ocpp.Engine
	settings Settings
	central  *CentralSim
	input    map[int]*connectorInput
	metrics  *metrics.Metrics
}

func parseLogLevel(level string) logging.LogLevel {
	switch level {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func NewApp(settings Settings) *App {
	transport := ocpp.NewMockTransport()
	logger := logging.NewLogger(&logging.Config{Level: parseLogLevel(settings.LogLevel), Output: os.Stderr})
	collector := metrics.New("chargepoint_sim")

	engine := ocpp.New(ocpp.Params{
		Transport:  transport,
		IDGen:      ocpp.MockIDGenerator{},
		Logger:     logger,
		Observer:   collector,
		Connectors: settings.Connectors,
		PoolSize:   settings.PoolSize,
		Policy:     queue.DefaultPolicy(),
	})

	// The heartbeat cadence lives in the OCPP configuration store, the
	// same place a central system's ChangeConfiguration would land, so
	// the YAML setting is applied through the same path.
	if settings.HeartbeatInterval >= 0 {
		if err := engine.Configuration().Set("HeartbeatInterval", strconv.Itoa(settings.HeartbeatInterval)); err != nil {
			logger.Warn("applying heartbeat_interval_sec", "err", err)
		}
	}

	app := &App{
		engine:   engine,
		settings: settings,
		central:  NewCentralSim(transport),
		input:    make(map[int]*connectorInput),
		metrics:  collector,
	}
	for _, c := range engine.Connectors() {
		app.input[c.ID] = &connectorInput{signal: ocpp.SignalA}
	}
	return app
}

// Metrics returns the Prometheus collector wired as the engine's
// Observer, for main.go to mount behind promhttp when --metrics-addr is
// set.
func (a *App) Metrics() *metrics.Metrics {
	return a.metrics
}

// ApplyOverrides pushes a set of key/value pairs through the same Set
// path ChangeConfiguration uses, so a misconfigured key in the override
// file fails the same way a malformed central-system command would.
func (a *App) ApplyOverrides(overrides map[string]string) error {
	for key, value := range overrides {
		if err := a.engine.Configuration().Set(key, value); err != nil {
			return fmt.Errorf("applying override %s=%s: %w", key, value, err)
		}
	}
	return nil
}

// Boot queues the initial BootNotification, the one request
// chargepoint-sim always sends before anything else, matching every
// real charge point's own startup sequence.
func (a *App) Boot() error {
	_, err := a.engine.PushRequest(ocpp.BootNotification, &catalog.BootNotificationReq{
		ChargePointVendor: a.settings.ChargePointVendor,
		ChargePointModel:  a.settings.ChargePointModel,
	})
	return err
}

func (a *App) SetSignal(connectorID int, signal ocpp.CPSignal) {
	if in := a.input[connectorID]; in != nil {
		in.signal = signal
	}
}

func (a *App) SetRFID(connectorID int, tag string) {
	if in := a.input[connectorID]; in != nil {
		in.rfid = tag
	}
}

func (a *App) SetHardwareError(connectorID int) {
	if in := a.input[connectorID]; in != nil {
		in.hardwareError = true
	}
}

func (a *App) SetHardwareRecovered(connectorID int) {
	if in := a.input[connectorID]; in != nil {
		in.hardwareRecovered = true
	}
}

// RemoteStart arbitrates a simulated RemoteStartTransaction.req directly
// against the target connector, the same call control.Dispatcher makes
// when a real one arrives over the wire.
func (a *App) RemoteStart(connectorID int, idTag string) bool {
	c := a.engine.Connector(connectorID)
	if c == nil {
		return false
	}
	return c.ArbitrateRemoteStart(idTag)
}

// RemoteStop arms every connector currently running the given
// transaction id, mirroring control.Dispatcher.handleRemoteStop's own
// connector scan.
func (a *App) RemoteStop(transactionID int) {
	for _, c := range a.engine.Connectors() {
		if c.State == ocpp.StateCharging && c.Session.TransactionID == transactionID {
			c.RequestRemoteStop()
		}
	}
}

// Tick advances the engine by one Step, folding every connector's
// accumulated input into that Step's Context, then lets the simulated
// central system answer whatever was just sent so the next Tick sees
// the reply.
func (a *App) Tick() {
	now := time.Now()
	signals := make(map[int]ocpp.ConnectorCtx, len(a.input))
	for id, in := range a.input {
		signals[id] = ocpp.ConnectorCtx{
			Signal:            in.signal,
			RFID:              in.rfid,
			HardwareError:     in.hardwareError,
			HardwareRecovered: in.hardwareRecovered,
		}
		in.rfid = ""
		in.hardwareError = false
		in.hardwareRecovered = false
	}

	if err := a.engine.Step(now, signals); err != nil {
		fmt.Fprintln(os.Stderr, "step error:", err)
	}
	a.central.Poll(now)
}

// SaveSnapshot writes the engine's combined snapshot to path with
// natefinch/atomic's temp-file-then-rename write, so a crash mid-write
// never leaves a half-written snapshot on disk.
func (a *App) SaveSnapshot(path string) error {
	buf := a.engine.SnapshotTo()
	return atomic.WriteFile(path, bytes.NewReader(buf))
}

// LoadSnapshot restores the engine from a snapshot written by
// SaveSnapshot, replacing its message-pool and configuration state.
func (a *App) LoadSnapshot(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return a.engine.SnapshotFrom(data)
}

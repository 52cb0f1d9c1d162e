package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	ocpp "github.com/pazzk-labs/ocpp"
)

// replCommands lists every verb the completer and help text offer.
// Ordered by how a demo session would actually use them: connect a
// vehicle, authenticate, let it charge, then fault/recover/disconnect.
var replCommands = []string{
	"plug", "unplug", "rfid", "remote-start", "remote-stop",
	"fault", "recover", "status", "save", "load", "help", "exit",
}

// REPL drives the engine's connector FSMs one line at a time, standing
// in for the RFID reader, control-pilot line and relay extension points
// a real charge point would wire to hardware: a liner.State, a history
// file under the user's home directory, and a switch over the first
// whitespace-separated token.
type REPL struct {
	app   *App
	liner *liner.State
}

func NewREPL(app *App) *REPL {
	return &REPL{app: app}
}

func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".chargepoint_sim_history")
}

// Run starts the prompt loop and blocks until the user exits or aborts
// with Ctrl-C/EOF. Each guard-event command (plug, unplug, rfid,
// remote-start, remote-stop, fault, recover) advances the engine by
// exactly one Step, with the line's guard event folded into that
// connector's Context for the tick, so the prompt itself acts as
// chargepoint-sim's clock; help, status, save and load do not Step.
func (r *REPL) Run() error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(historyFilePath()); err == nil {
		r.liner.ReadHistory(f)
		f.Close()
	}

	fmt.Printf("chargepoint-sim - %d connector(s), vendor=%q model=%q\n",
		len(r.app.engine.Connectors()), r.app.settings.ChargePointVendor, r.app.settings.ChargePointModel)
	fmt.Println("Type 'help' for available commands, 'exit' to quit.")

	for {
		line, err := r.liner.Prompt("chargepoint-sim> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println("\nbye")
				break
			}
			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.liner.AppendHistory(line)

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		if cmd == "exit" || cmd == "quit" {
			break
		}
		r.dispatch(cmd, args)
	}

	r.saveHistory()
	return nil
}

func (r *REPL) saveHistory() {
	path := historyFilePath()
	if path == "" {
		return
	}
	if f, err := os.Create(path); err == nil {
		r.liner.WriteHistory(f)
		f.Close()
	}
}

func (r *REPL) completer(line string) []string {
	var out []string
	for _, c := range replCommands {
		if strings.HasPrefix(c, line) {
			out = append(out, c)
		}
	}
	return out
}

func (r *REPL) dispatch(cmd string, args []string) {
	switch cmd {
	case "help", "?":
		r.printHelp()
	case "plug":
		r.cmdSignal(args, true)
	case "unplug":
		r.cmdSignal(args, false)
	case "rfid":
		r.cmdRFID(args)
	case "remote-start":
		r.cmdRemoteStart(args)
	case "remote-stop":
		r.cmdRemoteStop(args)
	case "fault":
		r.cmdFault(args)
	case "recover":
		r.cmdRecover(args)
	case "status":
		r.cmdStatus()
	case "save":
		r.cmdSave(args)
	case "load":
		r.cmdLoad(args)
	default:
		fmt.Printf("unknown command %q (type 'help')\n", cmd)
	}
}

func (r *REPL) printHelp() {
	fmt.Println(`commands:
  plug <connector> [A|B|C]     present a control-pilot signal (default C, vehicle ready)
  unplug <connector>           drop the control-pilot signal back to A
  rfid <connector> <tag>       present an RFID tag for one tick
  remote-start <connector> <tag> simulate a central-system RemoteStartTransaction.req
  remote-stop <transaction-id> simulate a central-system RemoteStopTransaction.req
  fault <connector>            report a hardware fault
  recover <connector>          clear a hardware fault
  status                       print every connector's state and queue depths
  save <path>                  snapshot the engine to disk (atomic write)
  load <path>                  restore the engine from a snapshot on disk
  exit                         quit`)
}

func (r *REPL) connectorID(args []string) (int, []string, error) {
	if len(args) == 0 {
		return 0, args, fmt.Errorf("missing connector id")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, args, fmt.Errorf("bad connector id %q: %w", args[0], err)
	}
	return id, args[1:], nil
}

func (r *REPL) cmdSignal(args []string, plug bool) {
	id, rest, err := r.connectorID(args)
	if err != nil {
		fmt.Println(err)
		return
	}
	signal := ocpp.SignalC
	if !plug {
		signal = ocpp.SignalA
	} else if len(rest) > 0 {
		switch strings.ToUpper(rest[0]) {
		case "A":
			signal = ocpp.SignalA
		case "B":
			signal = ocpp.SignalB
		case "C":
			signal = ocpp.SignalC
		default:
			fmt.Printf("unknown signal %q, using C\n", rest[0])
		}
	}
	r.app.SetSignal(id, signal)
	r.app.Tick()
	r.printConnector(id)
}

func (r *REPL) cmdRFID(args []string) {
	id, rest, err := r.connectorID(args)
	if err != nil || len(rest) == 0 {
		fmt.Println("usage: rfid <connector> <tag>")
		return
	}
	r.app.SetRFID(id, rest[0])
	r.app.Tick()
	r.printConnector(id)
}

func (r *REPL) cmdRemoteStart(args []string) {
	id, rest, err := r.connectorID(args)
	if err != nil || len(rest) == 0 {
		fmt.Println("usage: remote-start <connector> <tag>")
		return
	}
	if !r.app.RemoteStart(id, rest[0]) {
		fmt.Println("rejected: connector is not Ready or vehicle-free Occupied")
		return
	}
	r.app.Tick()
	r.printConnector(id)
}

func (r *REPL) cmdRemoteStop(args []string) {
	if len(args) == 0 {
		fmt.Println("usage: remote-stop <transaction-id>")
		return
	}
	txID, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("bad transaction id:", err)
		return
	}
	r.app.RemoteStop(txID)
	r.app.Tick()
	r.cmdStatus()
}

func (r *REPL) cmdFault(args []string) {
	id, _, err := r.connectorID(args)
	if err != nil {
		fmt.Println(err)
		return
	}
	r.app.SetHardwareError(id)
	r.app.Tick()
	r.printConnector(id)
}

func (r *REPL) cmdRecover(args []string) {
	id, _, err := r.connectorID(args)
	if err != nil {
		fmt.Println(err)
		return
	}
	r.app.SetHardwareRecovered(id)
	r.app.Tick()
	r.printConnector(id)
}

func (r *REPL) cmdStatus() {
	ready, wait, timer := r.app.engine.QueueDepths()
	fmt.Printf("queues: ready=%d wait=%d timer=%d  boot-accepted=%v\n", ready, wait, timer, r.app.engine.BootAccepted())
	for _, c := range r.app.engine.Connectors() {
		fmt.Printf("  connector %d: %s  session=%+v\n", c.ID, c.State, c.Session)
	}
}

func (r *REPL) printConnector(id int) {
	c := r.app.engine.Connector(id)
	if c == nil {
		fmt.Printf("no such connector %d\n", id)
		return
	}
	fmt.Printf("connector %d: %s\n", c.ID, c.State)
}

func (r *REPL) cmdSave(args []string) {
	if len(args) == 0 {
		fmt.Println("usage: save <path>")
		return
	}
	if err := r.app.SaveSnapshot(args[0]); err != nil {
		fmt.Println("save failed:", err)
		return
	}
	fmt.Println("snapshot written to", args[0])
}

func (r *REPL) cmdLoad(args []string) {
	if len(args) == 0 {
		fmt.Println("usage: load <path>")
		return
	}
	if err := r.app.LoadSnapshot(args[0]); err != nil {
		fmt.Println("load failed:", err)
		return
	}
	fmt.Println("snapshot restored from", args[0])
}

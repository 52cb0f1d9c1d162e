// Command chargepoint-sim is an interactive demo charge point built on
// top of the embedded OCPP 1.6 core in this module: a cobra CLI wraps a
// liner REPL that fires connector guard events (plug/unplug, RFID,
// remote-start/stop, hardware faults) at a live ocpp.Engine, with a
// simulated central system answering every request over an in-memory
// transport.
package main

import (
	"encoding/binary"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var (
	settingsPath string
	overridePath string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "chargepoint-sim:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chargepoint-sim",
		Short: "Interactive OCPP 1.6 charge point simulator",
		Long:  "chargepoint-sim drives the embedded OCPP core's connector FSM from a REPL, standing in for a real charge point's hardware and central system for demos and manual testing.",
	}
	cmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "path to a YAML charger settings file")
	cmd.PersistentFlags().StringVar(&overridePath, "config-overrides", "", "path to a HuJSON file of OCPP configuration key overrides")
	cmd.AddCommand(runCmd())
	cmd.AddCommand(snapshotCmd())
	return cmd
}

func runCmd() *cobra.Command {
	var loadPath string
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Boot a simulated charge point and start the REPL",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := LoadSettings(settingsPath)
			if err != nil {
				return err
			}
			overrides, err := LoadConfigOverrides(overridePath)
			if err != nil {
				return err
			}

			app := NewApp(settings)
			if err := app.ApplyOverrides(overrides); err != nil {
				return err
			}

			if loadPath != "" {
				if err := app.LoadSnapshot(loadPath); err != nil {
					return fmt.Errorf("loading snapshot: %w", err)
				}
			} else if err := app.Boot(); err != nil {
				return fmt.Errorf("queuing boot notification: %w", err)
			}

			if metricsAddr != "" {
				serveMetrics(metricsAddr, app)
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigCh
				fmt.Println("\nreceived shutdown signal, exiting")
				os.Exit(0)
			}()

			return NewREPL(app).Run()
		},
	}
	cmd.Flags().StringVar(&loadPath, "resume", "", "resume from a snapshot written by 'save' instead of sending a fresh BootNotification")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "if set, serve the engine's Prometheus metrics at /metrics on this address")
	return cmd
}

// serveMetrics mounts app's Observer-backed Prometheus registry behind
// promhttp and starts it in the background; the REPL still owns the
// foreground. A listener failure is logged, not fatal — the demo runs
// fine without metrics, it just won't be scraped.
func serveMetrics(addr string, app *App) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(app.Metrics().Registry(), promhttp.HandlerOpts{}))
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			fmt.Fprintln(os.Stderr, "metrics listener:", err)
		}
	}()
	fmt.Printf("serving Prometheus metrics on %s/metrics\n", addr)
}

func snapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Inspect snapshot files written by the REPL's save command",
	}
	cmd.AddCommand(snapshotInspectCmd())
	return cmd
}

func snapshotInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <path>",
		Short: "Print a snapshot file's header without restoring it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspectSnapshot(args[0])
		},
	}
}

// inspectSnapshot decodes only the root Engine header (magic, version,
// embedded queue-snapshot length) rather than constructing a whole Engine
// to call SnapshotFrom against, so a corrupt file can be diagnosed
// without a running charger.
func inspectSnapshot(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(data) < 10 {
		return fmt.Errorf("snapshot too short (%d bytes)", len(data))
	}
	magic := binary.BigEndian.Uint32(data[0:4])
	version := binary.BigEndian.Uint16(data[4:6])
	mqLen := binary.BigEndian.Uint32(data[6:10])
	cfgLen := len(data) - 10 - int(mqLen)

	fmt.Printf("file:            %s\n", path)
	fmt.Printf("total size:      %d bytes\n", len(data))
	fmt.Printf("magic:           %#x (%s)\n", magic, magicName(magic))
	fmt.Printf("version:         %d\n", version)
	fmt.Printf("queue section:   %d bytes\n", mqLen)
	fmt.Printf("config section:  %d bytes\n", cfgLen)
	if magic != 0x4f435056 {
		fmt.Println("warning: magic does not match the engine's expected \"OCPV\" header")
	}
	return nil
}

func magicName(magic uint32) string {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, magic)
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return "non-ASCII"
		}
	}
	return string(b)
}

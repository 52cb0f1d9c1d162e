package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

// Settings is the charger-level configuration chargepoint-sim loads from
// a YAML file: everything that shapes how the demo is wired up rather
// than an OCPP configuration key, which instead belongs in the override
// file LoadConfigOverrides reads.
type Settings struct {
	ChargePointVendor string `yaml:"charge_point_vendor"`
	ChargePointModel  string `yaml:"charge_point_model"`
	Connectors        int    `yaml:"connectors"`
	PoolSize          int    `yaml:"pool_size"`
	HeartbeatInterval int    `yaml:"heartbeat_interval_sec"`
	LogLevel          string `yaml:"log_level"`
	Transport         string `yaml:"transport"` // "loopback" is the only mode this demo implements
}

// DefaultSettings is the demo's own baseline (a 16-slot pool and a 300s
// heartbeat, not the engine's 8 slots and the HeartbeatInterval key's
// 86400s default), so a missing settings file still produces a runnable
// charge point.
func DefaultSettings() Settings {
	return Settings{
		ChargePointVendor: "pazzk-labs",
		ChargePointModel:  "chargepoint-sim",
		Connectors:        1,
		PoolSize:          16,
		HeartbeatInterval: 300,
		LogLevel:          "info",
		Transport:         "loopback",
	}
}

// LoadSettings reads a YAML settings file. A missing path is not an
// error: DefaultSettings is returned as-is, matching the pattern of
// run having a workable default with no config file at all.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("reading settings %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	return s, nil
}

// LoadConfigOverrides reads a HuJSON (JSON-with-comments) file mapping
// OCPP configuration keys to the values ChangeConfiguration would set,
// applied once at startup before the REPL takes over. HuJSON instead of
// plain JSON so a deployer can annotate *why* a given key was
// overridden right next to the value.
func LoadConfigOverrides(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config overrides %s: %w", path, err)
	}
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config overrides %s: %w", path, err)
	}
	var overrides map[string]string
	if err := json.Unmarshal(standardized, &overrides); err != nil {
		return nil, fmt.Errorf("decoding config overrides %s: %w", path, err)
	}
	return overrides, nil
}

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if s != DefaultSettings() {
		t.Fatalf("LoadSettings() = %+v, want defaults", s)
	}
}

func TestLoadSettingsParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	contents := "connectors: 3\nlog_level: debug\nheartbeat_interval_sec: 60\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if s.Connectors != 3 {
		t.Errorf("Connectors = %d, want 3", s.Connectors)
	}
	if s.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", s.LogLevel)
	}
	if s.HeartbeatInterval != 60 {
		t.Errorf("HeartbeatInterval = %d, want 60", s.HeartbeatInterval)
	}
	// Fields absent from the file keep their DefaultSettings value.
	if s.ChargePointVendor != DefaultSettings().ChargePointVendor {
		t.Errorf("ChargePointVendor = %q, want default to survive a partial override", s.ChargePointVendor)
	}
}

func TestLoadConfigOverridesParsesHuJSONComments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overrides.hujson")
	contents := `{
  // comment explaining the override
  "ConnectionTimeOut": "600",
}`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	overrides, err := LoadConfigOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigOverrides() error = %v", err)
	}
	if overrides["ConnectionTimeOut"] != "600" {
		t.Fatalf("overrides[ConnectionTimeOut] = %q, want 600", overrides["ConnectionTimeOut"])
	}
}

func TestLoadConfigOverridesMissingFileReturnsNil(t *testing.T) {
	overrides, err := LoadConfigOverrides(filepath.Join(t.TempDir(), "missing.hujson"))
	if err != nil {
		t.Fatalf("LoadConfigOverrides() error = %v", err)
	}
	if overrides != nil {
		t.Fatalf("overrides = %v, want nil", overrides)
	}
}

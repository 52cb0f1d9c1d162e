// Package config is the declarative configuration store: a fixed table
// of OCPP 1.6 keys (plus vendor extensions) backing ChangeConfiguration
// and GetConfiguration, with access control and fixed-capacity storage.
// The table in keys.go is the single source of truth; this file is the
// behavior that walks it.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pazzk-labs/ocpp/internal/bindings"
)

// value is the live storage cell for one key. Exactly one of the
// fields is meaningful, selected by table[key].dataType.
type value struct {
	b bool
	i int
	s string
}

// Store holds the live value of every declared key plus a read-only
// cursor order (GetByIndex) for paginated GetConfiguration responses.
type Store struct {
	values [keyMax]value
	locker bindings.ConfigLocker
}

// noopLocker is used when New is called with a nil ConfigLocker, mirroring
// the engine's own "nil collaborator means single-threaded caller" stance.
type noopLocker struct{}

func (noopLocker) Lock()   {}
func (noopLocker) Unlock() {}

// New builds a Store with every key at its declared default. locker may
// be nil if the caller guarantees single-threaded access.
func New(locker bindings.ConfigLocker) *Store {
	if locker == nil {
		locker = noopLocker{}
	}
	s := &Store{locker: locker}
	s.Reset()
	return s
}

// Reset restores every key to its table default. Used at boot, and by
// tests and the demo CLI when they want a clean slate.
func (s *Store) Reset() {
	s.locker.Lock()
	defer s.locker.Unlock()
	for k := Key(0); k < keyMax; k++ {
		e := table[k]
		switch e.dataType {
		case TypeBool:
			s.values[k] = value{b: e.defBool}
		case TypeInt, TypeCSL:
			s.values[k] = value{i: e.defInt}
		case TypeStr:
			s.values[k] = value{s: e.defStr}
		}
	}
}

// Has reports whether name identifies a declared key.
func (s *Store) Has(name string) bool {
	_, ok := lookup(name)
	return ok
}

// Count returns the number of declared keys.
func (s *Store) Count() int {
	return int(keyMax)
}

// TotalSize returns the sum of every key's backing-store capacity in
// bytes — the size of the value pool a snapshot carries.
func (s *Store) TotalSize() int {
	total := 0
	for k := Key(0); k < keyMax; k++ {
		total += table[k].cap
	}
	return total
}

// DataType reports key's declared storage type.
func (s *Store) DataType(name string) (DataType, error) {
	k, ok := lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownKey, name)
	}
	return table[k].dataType, nil
}

// Size reports key's declared backing-store capacity in bytes.
func (s *Store) Size(name string) (int, error) {
	k, ok := lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownKey, name)
	}
	return table[k].cap, nil
}

// IsWritable reports whether name accepts ChangeConfiguration.
func (s *Store) IsWritable(name string) bool {
	k, ok := lookup(name)
	return ok && table[k].access == AccessReadWrite
}

// IsReadable reports whether name is exposed by GetConfiguration. Every
// declared key is readable; the method exists for symmetry with
// IsWritable and to centralize the one place that would change if a
// future key became write-only.
func (s *Store) IsReadable(name string) bool {
	return s.Has(name)
}

// KeyString renders key's name, the string every catalog.KeyValue.Key
// field uses on the wire.
func (s *Store) KeyString(k Key) string {
	if k < 0 || k >= keyMax {
		return ""
	}
	return table[k].name
}

// GetByIndex returns the i'th declared key's catalog.KeyValue, in table
// declaration order. Used to page through GetConfiguration's "all keys"
// form without allocating the whole list up front.
func (s *Store) GetByIndex(i int) (name string, rendered string, readonly bool, err error) {
	if i < 0 || i >= int(keyMax) {
		return "", "", false, ErrIndexOutOfRange
	}
	k := Key(i)
	s.locker.Lock()
	defer s.locker.Unlock()
	return table[k].name, s.render(k), table[k].access == AccessRead, nil
}

// Get returns name's current value rendered as the OCPP wire string
// (e.g. "true"/"false", a decimal integer, or a comma-separated list).
func (s *Store) Get(name string) (string, error) {
	k, ok := lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, name)
	}
	s.locker.Lock()
	defer s.locker.Unlock()
	return s.render(k), nil
}

// render assumes the lock is held.
func (s *Store) render(k Key) string {
	e := table[k]
	v := s.values[k]
	switch e.dataType {
	case TypeBool:
		if v.b {
			return "true"
		}
		return "false"
	case TypeInt:
		return strconv.Itoa(v.i)
	case TypeCSL:
		return renderCSL(cslVocab(k), v.i)
	case TypeStr:
		return v.s
	default:
		return ""
	}
}

// Set parses raw per name's declared type and stores it, enforcing
// access control and capacity. Returns ErrNotWritable for a read-only
// key — the caller (ChangeConfiguration handling) turns that into
// catalog.ConfigurationRejected rather than failing the whole request.
func (s *Store) Set(name, raw string) error {
	k, ok := lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, name)
	}
	e := table[k]
	if e.access != AccessReadWrite {
		return fmt.Errorf("%w: %s", ErrNotWritable, name)
	}

	s.locker.Lock()
	defer s.locker.Unlock()

	switch e.dataType {
	case TypeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrTypeMismatch, name, err)
		}
		s.values[k] = value{b: b}
	case TypeInt:
		i, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrTypeMismatch, name, err)
		}
		s.values[k] = value{i: i}
	case TypeCSL:
		mask, err := parseCSL(cslVocab(k), raw)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrTypeMismatch, name, err)
		}
		s.values[k] = value{i: mask}
	case TypeStr:
		if len(raw) > e.cap {
			return fmt.Errorf("%w: %s: %d > %d", ErrValueTooLong, name, len(raw), e.cap)
		}
		s.values[k] = value{s: raw}
	}
	return nil
}

// SetInt writes k's integer value directly, without string parsing or
// the access check Set applies. Within this module only tests call it.
func (s *Store) SetInt(k Key, n int) {
	s.locker.Lock()
	defer s.locker.Unlock()
	s.values[k] = value{i: n}
}

// Int returns k's current integer (or CSL bitmask) value. Returns 0 if k
// is not an int/CSL key.
func (s *Store) Int(k Key) int {
	s.locker.Lock()
	defer s.locker.Unlock()
	return s.values[k].i
}

// Bool returns k's current boolean value. Returns false if k is not a
// bool key.
func (s *Store) Bool(k Key) bool {
	s.locker.Lock()
	defer s.locker.Unlock()
	return s.values[k].b
}

// Str returns k's current string value. Returns "" if k is not a string
// key.
func (s *Store) Str(k Key) string {
	s.locker.Lock()
	defer s.locker.Unlock()
	return s.values[k].s
}

// lookup resolves an OCPP wire key name to its internal Key. A linear
// scan over 54 entries is deliberate: this runs on the ChangeConfiguration
// and GetConfiguration path only, never from Step's hot loop, so a map
// would trade a one-time allocation for no measurable benefit.
func lookup(name string) (Key, bool) {
	for k := Key(0); k < keyMax; k++ {
		if table[k].name == name {
			return k, true
		}
	}
	return 0, false
}

// cslName is one bit of a CSL key's vocabulary: the flag and the wire
// name its bit renders as.
type cslName struct {
	flag int
	name string
}

// measurandNames maps each measurand flag bit to its wire name, in the
// same declaration order as the flag constants so render output is
// stable across runs.
var measurandNames = []cslName{
	{MeasurandFlagCurrentExport, "Current.Export"},
	{MeasurandFlagCurrentImport, "Current.Import"},
	{MeasurandFlagCurrentOffered, "Current.Offered"},
	{MeasurandFlagEnergyActiveExportRegister, "Energy.Active.Export.Register"},
	{MeasurandFlagEnergyActiveImportRegister, "Energy.Active.Import.Register"},
	{MeasurandFlagEnergyReactiveExportRegister, "Energy.Reactive.Export.Register"},
	{MeasurandFlagEnergyReactiveImportRegister, "Energy.Reactive.Import.Register"},
	{MeasurandFlagEnergyActiveExportInterval, "Energy.Active.Export.Interval"},
	{MeasurandFlagEnergyActiveImportInterval, "Energy.Active.Import.Interval"},
	{MeasurandFlagEnergyReactiveExportInterval, "Energy.Reactive.Export.Interval"},
	{MeasurandFlagEnergyReactiveImportInterval, "Energy.Reactive.Import.Interval"},
	{MeasurandFlagFrequency, "Frequency"},
	{MeasurandFlagPowerActiveExport, "Power.Active.Export"},
	{MeasurandFlagPowerActiveImport, "Power.Active.Import"},
	{MeasurandFlagPowerFactor, "Power.Factor"},
	{MeasurandFlagPowerOffered, "Power.Offered"},
	{MeasurandFlagPowerReactiveExport, "Power.Reactive.Export"},
	{MeasurandFlagPowerReactiveImport, "Power.Reactive.Import"},
	{MeasurandFlagRPM, "RPM"},
	{MeasurandFlagSoC, "SoC"},
	{MeasurandFlagTemperature, "Temperature"},
	{MeasurandFlagVoltage, "Voltage"},
}

var featureProfileNames = []cslName{
	{FeatureProfileCore, "Core"},
	{FeatureProfileFirmwareManagement, "FirmwareManagement"},
	{FeatureProfileLocalAuthListManagement, "LocalAuthListManagement"},
	{FeatureProfileReservation, "Reservation"},
	{FeatureProfileSmartCharging, "SmartCharging"},
}

var chargingRateUnitNames = []cslName{
	{ChargingRateUnitFlagWatts, "W"},
	{ChargingRateUnitFlagAmps, "A"},
}

var fileTransferProtocolNames = []cslName{
	{FileTransferProtocolFlagFTP, "FTP"},
	{FileTransferProtocolFlagFTPS, "FTPS"},
	{FileTransferProtocolFlagHTTP, "HTTP"},
	{FileTransferProtocolFlagHTTPS, "HTTPS"},
}

var phaseRotationNames = []cslName{
	{PhaseRotationFlagNotApplicable, "NotApplicable"},
	{PhaseRotationFlagUnknown, "Unknown"},
	{PhaseRotationFlagRST, "RST"},
	{PhaseRotationFlagRTS, "RTS"},
	{PhaseRotationFlagSRT, "SRT"},
	{PhaseRotationFlagSTR, "STR"},
	{PhaseRotationFlagTRS, "TRS"},
	{PhaseRotationFlagTSR, "TSR"},
}

// cslVocab selects the name table a CSL key renders and parses with.
// Every CSL key stores an int bitmask; which names the bits carry
// depends on the key.
func cslVocab(k Key) []cslName {
	switch k {
	case KeySupportedFeatureProfiles:
		return featureProfileNames
	case KeyChargingScheduleAllowedChargingRateUnit:
		return chargingRateUnitNames
	case KeySupportedFileTransferProtocols:
		return fileTransferProtocolNames
	case KeyConnectorPhaseRotation:
		return phaseRotationNames
	default:
		return measurandNames
	}
}

func renderCSL(vocab []cslName, mask int) string {
	var parts []string
	for _, m := range vocab {
		if mask&m.flag != 0 {
			parts = append(parts, m.name)
		}
	}
	return strings.Join(parts, ",")
}

func parseCSL(vocab []cslName, raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	mask := 0
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		found := false
		for _, m := range vocab {
			if m.name == part {
				mask |= m.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unrecognized list member %q", part)
		}
	}
	return mask, nil
}

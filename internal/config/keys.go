package config

// DataType is the wire/storage representation of a configuration
// value: a closed enum with a typed accessor per variant.
type DataType int

const (
	TypeBool DataType = iota
	TypeInt
	TypeCSL // comma-separated-list, stored as an int bitmask
	TypeStr
)

func (t DataType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeCSL:
		return "csl"
	case TypeStr:
		return "str"
	default:
		return "unknown"
	}
}

// Access is the read/write policy for a key, as set by ChangeConfiguration
// and reported by GetConfiguration's Readonly field.
type Access int

const (
	AccessRead      Access = iota // central system may only read
	AccessReadWrite               // central system may read and write
)

// Key names every entry in the declarative configuration table below.
// Values are stable small ints used as a Store index, never transmitted
// on the wire; the wire identifier is always the Name string.
type Key int

const (
	KeyAllowOfflineTxForUnknownId Key = iota
	KeyAuthorizationCacheEnabled
	KeyAuthorizeRemoteTxRequests
	KeyBlinkRepeat
	KeyClockAlignedDataInterval
	KeyConnectionTimeOut
	KeyConnectorPhaseRotation
	KeyConnectorPhaseRotationMaxLength
	KeyGetConfigurationMaxKeys
	KeyHeartbeatInterval
	KeyLightIntensity
	KeyLocalAuthorizeOffline
	KeyLocalPreAuthorize
	KeyMaxEnergyOnInvalidId
	KeyMeterValuesAlignedData
	KeyMeterValuesAlignedDataMaxLength
	KeyMeterValuesSampledData
	KeyMeterValuesSampledDataMaxLength
	KeyMeterValueSampleInterval
	KeyMinimumStatusDuration
	KeyNumberOfConnectors
	KeyResetRetries
	KeyStopTransactionOnEVSideDisconnect
	KeyStopTransactionOnInvalidId
	KeyStopTxnAlignedData
	KeyStopTxnAlignedDataMaxLength
	KeyStopTxnSampledData
	KeyStopTxnSampledDataMaxLength
	KeySupportedFeatureProfiles
	KeySupportedFeatureProfilesMaxLength
	KeyTransactionMessageAttempts
	KeyTransactionMessageRetryInterval
	KeyUnlockConnectorOnEVSideDisconnect
	KeyWebSocketPingInterval

	KeyLocalAuthListEnabled
	KeyLocalAuthListMaxLength
	KeySendLocalListMaxLength

	KeyReserveConnectorZeroSupported

	KeyChargeProfileMaxStackLevel
	KeyChargingScheduleAllowedChargingRateUnit
	KeyChargingScheduleMaxPeriods
	KeyConnectorSwitch3to1PhaseSupported
	KeyMaxChargingProfilesInstalled

	KeyAuthorizationKey
	KeySecurityProfile
	KeyAdditionalRootCertificateCheck
	KeyCertificateSignedMaxChainSize
	KeyCertificateStoreMaxLength
	KeyCpoName
	KeySupportedFileTransferProtocols

	KeyPzkConnectorLockRetries
	KeyPzkMaxConcurrentReservations
	KeyPzkRelayActuationDelay
	KeyPzkWatchdogTimeout

	keyMax
)

// csl bitmask flags for the measurand-valued CSL keys, one bit per OCPP
// 1.6 measurand in the standard's own enumeration order (so SoC is bit
// 19 and Temperature bit 20). Real OCPP CSLs are comma-separated
// measurand names on the wire; the Store holds them as a bitmask and
// renders/parses the text form at the Get/Set boundary.
const (
	MeasurandFlagCurrentExport = 1 << iota
	MeasurandFlagCurrentImport
	MeasurandFlagCurrentOffered
	MeasurandFlagEnergyActiveExportRegister
	MeasurandFlagEnergyActiveImportRegister
	MeasurandFlagEnergyReactiveExportRegister
	MeasurandFlagEnergyReactiveImportRegister
	MeasurandFlagEnergyActiveExportInterval
	MeasurandFlagEnergyActiveImportInterval
	MeasurandFlagEnergyReactiveExportInterval
	MeasurandFlagEnergyReactiveImportInterval
	MeasurandFlagFrequency
	MeasurandFlagPowerActiveExport
	MeasurandFlagPowerActiveImport
	MeasurandFlagPowerFactor
	MeasurandFlagPowerOffered
	MeasurandFlagPowerReactiveExport
	MeasurandFlagPowerReactiveImport
	MeasurandFlagRPM
	MeasurandFlagSoC
	MeasurandFlagTemperature
	MeasurandFlagVoltage
)

const (
	FeatureProfileCore = 1 << iota
	FeatureProfileFirmwareManagement
	FeatureProfileLocalAuthListManagement
	FeatureProfileReservation
	FeatureProfileSmartCharging
)

const (
	ChargingRateUnitFlagWatts = 1 << iota
	ChargingRateUnitFlagAmps
)

const (
	FileTransferProtocolFlagFTP = 1 << iota
	FileTransferProtocolFlagFTPS
	FileTransferProtocolFlagHTTP
	FileTransferProtocolFlagHTTPS
)

const (
	PhaseRotationFlagNotApplicable = 1 << iota
	PhaseRotationFlagUnknown
	PhaseRotationFlagRST
	PhaseRotationFlagRTS
	PhaseRotationFlagSRT
	PhaseRotationFlagSTR
	PhaseRotationFlagTRS
	PhaseRotationFlagTSR
)

// entry is one row of the declarative configuration table: a key's
// wire name, type, access policy, storage capacity, and default value.
// The table drives the storage, the string table, the access checks and
// the defaults. The Key enum above is a separate list, so adding a
// configuration means adding both a Key constant and its row here.
type entry struct {
	name     string
	dataType DataType
	access   Access
	cap      int // bytes of backing storage; for TypeStr this is the max string length
	defBool  bool
	defInt   int
	defStr   string
}

// keyCap returns the backing-store byte width for non-string types.
func keyCap(t DataType) int {
	switch t {
	case TypeBool:
		return 1
	case TypeInt, TypeCSL:
		return 4
	default:
		return 0 // TypeStr entries carry their own cap
	}
}

var table = [keyMax]entry{
	KeyAllowOfflineTxForUnknownId: {"AllowOfflineTxForUnknownId", TypeBool, AccessReadWrite, keyCap(TypeBool), false, 0, ""},
	KeyAuthorizationCacheEnabled:  {"AuthorizationCacheEnabled", TypeBool, AccessReadWrite, keyCap(TypeBool), false, 0, ""},
	KeyAuthorizeRemoteTxRequests:  {"AuthorizeRemoteTxRequests", TypeBool, AccessReadWrite, keyCap(TypeBool), true, 0, ""},
	KeyBlinkRepeat:                {"BlinkRepeat", TypeInt, AccessReadWrite, keyCap(TypeInt), false, 0, ""},
	KeyClockAlignedDataInterval:   {"ClockAlignedDataInterval", TypeInt, AccessReadWrite, keyCap(TypeInt), false, 0, ""},
	KeyConnectionTimeOut:          {"ConnectionTimeOut", TypeInt, AccessReadWrite, keyCap(TypeInt), false, 180, ""},
	KeyConnectorPhaseRotation:     {"ConnectorPhaseRotation", TypeCSL, AccessReadWrite, keyCap(TypeCSL), false, 0, ""},
	KeyConnectorPhaseRotationMaxLength: {"ConnectorPhaseRotationMaxLength", TypeInt, AccessRead, keyCap(TypeInt), false, 0, ""},
	KeyGetConfigurationMaxKeys:    {"GetConfigurationMaxKeys", TypeInt, AccessRead, keyCap(TypeInt), false, 50, ""},
	KeyHeartbeatInterval:          {"HeartbeatInterval", TypeInt, AccessReadWrite, keyCap(TypeInt), false, 86400, ""},
	KeyLightIntensity:             {"LightIntensity", TypeInt, AccessReadWrite, keyCap(TypeInt), false, 100, ""},
	KeyLocalAuthorizeOffline:      {"LocalAuthorizeOffline", TypeBool, AccessReadWrite, keyCap(TypeBool), true, 0, ""},
	KeyLocalPreAuthorize:          {"LocalPreAuthorize", TypeBool, AccessReadWrite, keyCap(TypeBool), false, 0, ""},
	KeyMaxEnergyOnInvalidId:       {"MaxEnergyOnInvalidId", TypeInt, AccessReadWrite, keyCap(TypeInt), false, 0, ""},
	KeyMeterValuesAlignedData:     {"MeterValuesAlignedData", TypeCSL, AccessReadWrite, keyCap(TypeCSL), false, MeasurandFlagEnergyActiveImportRegister, ""},
	KeyMeterValuesAlignedDataMaxLength: {"MeterValuesAlignedDataMaxLength", TypeInt, AccessRead, keyCap(TypeInt), false, 0, ""},
	KeyMeterValuesSampledData:     {"MeterValuesSampledData", TypeCSL, AccessReadWrite, keyCap(TypeCSL), false, MeasurandFlagEnergyActiveImportRegister, ""},
	KeyMeterValuesSampledDataMaxLength: {"MeterValuesSampledDataMaxLength", TypeInt, AccessRead, keyCap(TypeInt), false, 0, ""},
	KeyMeterValueSampleInterval:   {"MeterValueSampleInterval", TypeInt, AccessReadWrite, keyCap(TypeInt), false, 0, ""},
	KeyMinimumStatusDuration:      {"MinimumStatusDuration", TypeInt, AccessReadWrite, keyCap(TypeInt), false, 0, ""},
	KeyNumberOfConnectors:         {"NumberOfConnectors", TypeInt, AccessRead, keyCap(TypeInt), false, 1, ""},
	KeyResetRetries:               {"ResetRetries", TypeInt, AccessReadWrite, keyCap(TypeInt), false, 3, ""},
	KeyStopTransactionOnEVSideDisconnect: {"StopTransactionOnEVSideDisconnect", TypeBool, AccessReadWrite, keyCap(TypeBool), true, 0, ""},
	KeyStopTransactionOnInvalidId: {"StopTransactionOnInvalidId", TypeBool, AccessReadWrite, keyCap(TypeBool), true, 0, ""},
	KeyStopTxnAlignedData:         {"StopTxnAlignedData", TypeCSL, AccessReadWrite, keyCap(TypeCSL), false, 0, ""},
	KeyStopTxnAlignedDataMaxLength: {"StopTxnAlignedDataMaxLength", TypeInt, AccessRead, keyCap(TypeInt), false, 0, ""},
	KeyStopTxnSampledData:         {"StopTxnSampledData", TypeCSL, AccessReadWrite, keyCap(TypeCSL), false, 0, ""},
	KeyStopTxnSampledDataMaxLength: {"StopTxnSampledDataMaxLength", TypeInt, AccessRead, keyCap(TypeInt), false, 0, ""},
	KeySupportedFeatureProfiles:   {"SupportedFeatureProfiles", TypeCSL, AccessRead, keyCap(TypeCSL), false, FeatureProfileCore | FeatureProfileFirmwareManagement | FeatureProfileLocalAuthListManagement | FeatureProfileReservation | FeatureProfileSmartCharging, ""},
	KeySupportedFeatureProfilesMaxLength: {"SupportedFeatureProfilesMaxLength", TypeInt, AccessRead, keyCap(TypeInt), false, 0, ""},
	KeyTransactionMessageAttempts: {"TransactionMessageAttempts", TypeInt, AccessReadWrite, keyCap(TypeInt), false, 3, ""},
	KeyTransactionMessageRetryInterval: {"TransactionMessageRetryInterval", TypeInt, AccessReadWrite, keyCap(TypeInt), false, 10, ""},
	KeyUnlockConnectorOnEVSideDisconnect: {"UnlockConnectorOnEVSideDisconnect", TypeBool, AccessReadWrite, keyCap(TypeBool), true, 0, ""},
	KeyWebSocketPingInterval:      {"WebSocketPingInterval", TypeInt, AccessReadWrite, keyCap(TypeInt), false, 0, ""},

	KeyLocalAuthListEnabled:    {"LocalAuthListEnabled", TypeBool, AccessReadWrite, keyCap(TypeBool), false, 0, ""},
	KeyLocalAuthListMaxLength:  {"LocalAuthListMaxLength", TypeInt, AccessRead, keyCap(TypeInt), false, 0, ""},
	KeySendLocalListMaxLength:  {"SendLocalListMaxLength", TypeInt, AccessRead, keyCap(TypeInt), false, 0, ""},

	KeyReserveConnectorZeroSupported: {"ReserveConnectorZeroSupported", TypeBool, AccessRead, keyCap(TypeBool), false, 0, ""},

	KeyChargeProfileMaxStackLevel:  {"ChargeProfileMaxStackLevel", TypeInt, AccessRead, keyCap(TypeInt), false, 0, ""},
	KeyChargingScheduleAllowedChargingRateUnit: {"ChargingScheduleAllowedChargingRateUnit", TypeCSL, AccessRead, keyCap(TypeCSL), false, ChargingRateUnitFlagWatts | ChargingRateUnitFlagAmps, ""},
	KeyChargingScheduleMaxPeriods:  {"ChargingScheduleMaxPeriods", TypeInt, AccessRead, keyCap(TypeInt), false, 0, ""},
	KeyConnectorSwitch3to1PhaseSupported: {"ConnectorSwitch3to1PhaseSupported", TypeBool, AccessRead, keyCap(TypeBool), false, 0, ""},
	KeyMaxChargingProfilesInstalled: {"MaxChargingProfilesInstalled", TypeInt, AccessRead, keyCap(TypeInt), false, 0, ""},

	KeyAuthorizationKey:  {"AuthorizationKey", TypeStr, AccessReadWrite, 40, false, 0, ""},
	KeySecurityProfile:   {"SecurityProfile", TypeInt, AccessReadWrite, keyCap(TypeInt), false, 0, ""},
	KeyAdditionalRootCertificateCheck: {"AdditionalRootCertificateCheck", TypeBool, AccessRead, keyCap(TypeBool), false, 0, ""},
	KeyCertificateSignedMaxChainSize: {"CertificateSignedMaxChainSize", TypeInt, AccessRead, keyCap(TypeInt), false, 0, ""},
	KeyCertificateStoreMaxLength: {"CertificateStoreMaxLength", TypeInt, AccessRead, keyCap(TypeInt), false, 0, ""},
	KeyCpoName:           {"CpoName", TypeStr, AccessReadWrite, 58, false, 0, ""},
	KeySupportedFileTransferProtocols: {"SupportedFileTransferProtocols", TypeCSL, AccessRead, keyCap(TypeCSL), false, FileTransferProtocolFlagFTP | FileTransferProtocolFlagHTTP, ""},

	// Pzk_ keys are vendor extensions (OCPP 1.6 §9.1 permits
	// non-standard keys) for hardware-side knobs. They are stored and
	// served like any other key; no package in this module reads them.
	KeyPzkConnectorLockRetries:      {"Pzk_ConnectorLockRetries", TypeInt, AccessReadWrite, keyCap(TypeInt), false, 3, ""},
	KeyPzkMaxConcurrentReservations: {"Pzk_MaxConcurrentReservations", TypeInt, AccessRead, keyCap(TypeInt), false, 1, ""},
	KeyPzkRelayActuationDelay:       {"Pzk_RelayActuationDelay", TypeInt, AccessReadWrite, keyCap(TypeInt), false, 0, ""},
	KeyPzkWatchdogTimeout:           {"Pzk_WatchdogTimeout", TypeInt, AccessReadWrite, keyCap(TypeInt), false, 0, ""},
}

package catalog

import "time"

// Field-length caps carried verbatim from the OCPP 1.6 JSON schema.
// Keeping them as named constants means a single place documents "why
// is idTag 20 bytes" instead of a magic number showing up in a dozen
// structs.
const (
	IDTagMaxLen            = 20
	VendorIDMaxLen         = 255
	KeyMaxLen              = 50
	ValueMaxLen            = 500
	MeterSerialNumberMaxLen = 25
	URLMaxLen              = 256
	TechInfoMaxLen         = 255
	ChargeBoxSerialMaxLen  = 25
	ModelMaxLen            = 20
	FirmwareVersionMaxLen  = 50
	ICCIDMaxLen            = 20
	IMSIMaxLen             = 20
	MeterTypeMaxLen        = 25
	MessageIDMaxLen        = 50
	InfoMaxLen             = 50
	VendorErrorCodeMaxLen  = 50
	FileNameMaxLen         = 255
	DataTransferDataMaxLen = 2048
)

// IDTagInfo mirrors ocpp_idTagInfo: the authorization verdict returned
// for Authorize/StartTransaction/StopTransaction.
type IDTagInfo struct {
	Status      AuthorizationStatus
	ExpiryDate  time.Time
	ParentIDTag string // capped at IDTagMaxLen
}

type AuthorizationStatus int

const (
	AuthorizationAccepted AuthorizationStatus = iota
	AuthorizationBlocked
	AuthorizationExpired
	AuthorizationInvalid
	AuthorizationConcurrentTx
)

// --- Authorize ---

type AuthorizeReq struct {
	IDTag string // capped at IDTagMaxLen
}

type AuthorizeConf struct {
	IDTagInfo IDTagInfo
}

// --- BootNotification ---

type BootNotificationReq struct {
	ChargeBoxSerialNumber  string // capped at ChargeBoxSerialMaxLen
	ChargePointModel       string // required, capped at ModelMaxLen
	ChargePointSerialNumber string // capped at ChargeBoxSerialMaxLen
	ChargePointVendor      string // required, capped at ModelMaxLen
	FirmwareVersion        string // capped at FirmwareVersionMaxLen
	ICCID                  string // capped at ICCIDMaxLen
	IMSI                   string // capped at IMSIMaxLen
	MeterSerialNumber      string // capped at MeterSerialNumberMaxLen
	MeterType              string // capped at MeterTypeMaxLen
}

type BootStatus int

const (
	BootAccepted BootStatus = iota
	BootPending
	BootRejected
)

type BootNotificationConf struct {
	CurrentTime time.Time
	Interval    int
	Status      BootStatus
}

// --- ChangeAvailability ---

type AvailabilityType int

const (
	AvailabilityInoperative AvailabilityType = iota
	AvailabilityOperative
)

type ChangeAvailabilityReq struct {
	ConnectorID int
	Type        AvailabilityType
}

type AvailabilityStatus int

const (
	AvailabilityAccepted AvailabilityStatus = iota
	AvailabilityRejected
	AvailabilityScheduled
)

type ChangeAvailabilityConf struct {
	Status AvailabilityStatus
}

// --- ChangeConfiguration ---

type ChangeConfigurationReq struct {
	Key   string // capped at KeyMaxLen
	Value string // capped at ValueMaxLen
}

type ConfigurationStatus int

const (
	ConfigurationAccepted ConfigurationStatus = iota
	ConfigurationRejected
	ConfigurationRebootRequired
	ConfigurationNotSupported
)

type ChangeConfigurationConf struct {
	Status ConfigurationStatus
}

// --- ClearCache ---

type ClearCacheReq struct{}

type RemoteStatus int

const (
	RemoteAccepted RemoteStatus = iota
	RemoteRejected
)

type ClearCacheConf struct {
	Status RemoteStatus
}

// --- DataTransfer ---

type DataTransferReq struct {
	VendorID  string // required, capped at VendorIDMaxLen
	MessageID string // capped at MessageIDMaxLen
	Data      []byte // capped at DataTransferDataMaxLen
}

type DataTransferStatus int

const (
	DataTransferAccepted DataTransferStatus = iota
	DataTransferRejected
	DataTransferUnknownMessageID
	DataTransferUnknownVendorID
)

type DataTransferConf struct {
	Status DataTransferStatus
	Data   []byte // capped at DataTransferDataMaxLen
}

// --- GetConfiguration ---

type GetConfigurationReq struct {
	Key string // capped at KeyMaxLen; empty means "all keys"
}

type KeyValue struct {
	Key      string // capped at KeyMaxLen
	Readonly bool
	Value    string // capped at ValueMaxLen
}

type GetConfigurationConf struct {
	ConfigurationKey KeyValue
	UnknownKey       string // capped at KeyMaxLen
}

// --- Heartbeat ---

type HeartbeatReq struct{}

type HeartbeatConf struct {
	CurrentTime time.Time
}

// --- MeterValues ---

type Measurand int

const (
	MeasurandEnergyActiveImportRegister Measurand = iota
	MeasurandPowerActiveImport
	MeasurandCurrentImport
	MeasurandVoltage
	MeasurandSoC
	MeasurandTemperature
)

type SampledValue struct {
	Value     string
	Measurand Measurand
}

type MeterValue struct {
	Timestamp    time.Time
	SampledValue []SampledValue
}

type MeterValuesReq struct {
	ConnectorID   int
	TransactionID int
	MeterValue    []MeterValue
}

type MeterValuesConf struct{}

// --- RemoteStartTransaction ---

type ChargingRateUnit int

const (
	ChargingRateUnitWatts ChargingRateUnit = iota
	ChargingRateUnitAmps
)

type ChargingSchedulePeriod struct {
	StartPeriod  int
	Limit        float64
	NumberPhases int
}

type ChargingSchedule struct {
	Duration         int
	StartSchedule    time.Time
	ChargingRateUnit ChargingRateUnit
	ChargingSchedulePeriod []ChargingSchedulePeriod
	MinChargingRate  float64
}

type ChargingProfilePurpose int

const (
	ChargingProfilePurposeChargePointMaxProfile ChargingProfilePurpose = iota
	ChargingProfilePurposeTxDefaultProfile
	ChargingProfilePurposeTxProfile
)

type ChargingProfileKind int

const (
	ChargingProfileKindAbsolute ChargingProfileKind = iota
	ChargingProfileKindRecurring
	ChargingProfileKindRelative
)

type ChargingProfile struct {
	ChargingProfileID      int
	TransactionID          int
	StackLevel             int
	ChargingProfilePurpose ChargingProfilePurpose
	ChargingProfileKind    ChargingProfileKind
	ChargingSchedule       ChargingSchedule
}

type RemoteStartTransactionReq struct {
	ConnectorID     int
	IDTag           string // capped at IDTagMaxLen
	ChargingProfile ChargingProfile
}

type RemoteStartTransactionConf struct {
	Status RemoteStatus
}

// --- RemoteStopTransaction ---

type RemoteStopTransactionReq struct {
	TransactionID int
}

type RemoteStopTransactionConf struct {
	Status RemoteStatus
}

// --- Reset ---

type ResetType int

const (
	ResetHard ResetType = iota
	ResetSoft
)

type ResetReq struct {
	Type ResetType
}

type ResetConf struct {
	Status RemoteStatus
}

// --- StartTransaction ---

type StartTransactionReq struct {
	ConnectorID   int
	IDTag         string // capped at IDTagMaxLen
	MeterStart    int
	ReservationID int
	Timestamp     time.Time
}

type StartTransactionConf struct {
	IDTagInfo     IDTagInfo
	TransactionID int
}

// --- StatusNotification ---

type ErrorCode int

const (
	ErrorNoError ErrorCode = iota
	ErrorConnectorLockFailure
	ErrorEVCommunicationError
	ErrorGroundFailure
	ErrorHighTemperature
	ErrorInternalError
	ErrorOtherError
	ErrorOverCurrentFailure
	ErrorPowerMeterFailure
	ErrorPowerSwitchFailure
	ErrorReaderFailure
	ErrorResetFailure
	ErrorUnderVoltage
	ErrorOverVoltage
	ErrorWeakSignal
)

type ConnectorStatus int

const (
	StatusAvailable ConnectorStatus = iota
	StatusPreparing
	StatusCharging
	StatusSuspendedEVSE
	StatusSuspendedEV
	StatusFinishing
	StatusReserved
	StatusUnavailable
	StatusFaulted
)

type StatusNotificationReq struct {
	ConnectorID     int
	ErrorCode       ErrorCode
	Info            string // capped at InfoMaxLen
	Status          ConnectorStatus
	Timestamp       time.Time
	VendorID        string // capped at VendorIDMaxLen
	VendorErrorCode string // capped at VendorErrorCodeMaxLen
}

type StatusNotificationConf struct{}

// --- StopTransaction ---

type StopReason int

const (
	StopReasonLocal StopReason = iota
	StopReasonEVDisconnected
	StopReasonRemote
	StopReasonHardReset
	StopReasonSoftReset
	StopReasonPowerLoss
	StopReasonEmergencyStop
	StopReasonOther
	StopReasonUnlockCommand
	StopReasonDeAuthorized
	StopReasonReboot
)

type StopTransactionReq struct {
	IDTag           string // capped at IDTagMaxLen
	MeterStop       int
	Timestamp       time.Time
	TransactionID   int
	Reason          StopReason
	TransactionData []MeterValue
}

type StopTransactionConf struct {
	IDTagInfo IDTagInfo
}

// --- UnlockConnector ---

type UnlockConnectorReq struct {
	ConnectorID int
}

type UnlockStatus int

const (
	UnlockUnlocked UnlockStatus = iota
	UnlockUnlockFailed
	UnlockNotSupported
)

type UnlockConnectorConf struct {
	Status UnlockStatus
}

// --- DiagnosticsStatusNotification / FirmwareStatusNotification ---

type CommStatus int

const (
	CommIdle CommStatus = iota
	CommUploaded
	CommUploadFailed
	CommUploading
	CommDownloaded
	CommDownloadFailed
	CommDownloading
	CommInstallationFailed
	CommInstalled
	CommInstalling
)

type DiagnosticsStatusNotificationReq struct {
	Status CommStatus
}

type DiagnosticsStatusNotificationConf struct{}

type FirmwareStatusNotificationReq struct {
	Status CommStatus
}

type FirmwareStatusNotificationConf struct{}

// --- GetDiagnostics / UpdateFirmware ---

type GetDiagnosticsReq struct {
	URL           string // capped at URLMaxLen
	Retries       int
	RetryInterval int
	StartTime     time.Time
	StopTime      time.Time
}

type GetDiagnosticsConf struct {
	FileName string // capped at FileNameMaxLen
}

type UpdateFirmwareReq struct {
	URL           string // capped at URLMaxLen
	Retries       int
	RetrieveDate  time.Time
	RetryInterval int
}

type UpdateFirmwareConf struct{}

// --- GetLocalListVersion / SendLocalList ---

type GetLocalListVersionReq struct{}

type GetLocalListVersionConf struct {
	ListVersion int
}

type UpdateType int

const (
	UpdateDifferential UpdateType = iota
	UpdateFull
)

type AuthorizationData struct {
	IDTag     string // capped at IDTagMaxLen
	IDTagInfo IDTagInfo
}

type SendLocalListReq struct {
	ListVersion              int
	LocalAuthorizationList   []AuthorizationData
	UpdateType               UpdateType
}

type UpdateStatus int

const (
	UpdateAccepted UpdateStatus = iota
	UpdateFailed
	UpdateNotSupported
	UpdateVersionMismatch
)

type SendLocalListConf struct {
	Status UpdateStatus
}

// --- CancelReservation / ReserveNow ---

type ReservationStatus int

const (
	ReservationAccepted ReservationStatus = iota
	ReservationFaulted
	ReservationOccupied
	ReservationRejected
	ReservationUnavailable
)

type CancelReservationReq struct {
	ReservationID int
}

type CancelReservationConf struct {
	Status ReservationStatus
}

type ReserveNowReq struct {
	ConnectorID   int
	ExpiryDate    time.Time
	IDTag         string // capped at IDTagMaxLen
	ParentIDTag   string // capped at IDTagMaxLen
	ReservationID int
}

type ReserveNowConf struct {
	Status ReservationStatus
}

// --- ClearChargingProfile / GetCompositeSchedule / SetChargingProfile ---

type ClearChargingProfileReq struct {
	ChargingProfileID int
	ConnectorID       int
	StackLevel        int
}

type ClearChargingProfileStatus int

const (
	ClearChargingProfileAccepted ClearChargingProfileStatus = iota
	ClearChargingProfileUnknown
)

type ClearChargingProfileConf struct {
	Status ClearChargingProfileStatus
}

type GetCompositeScheduleReq struct {
	ConnectorID      int
	Duration         int
	ChargingRateUnit ChargingRateUnit
}

type GetCompositeScheduleStatus int

const (
	GetCompositeScheduleAccepted GetCompositeScheduleStatus = iota
	GetCompositeScheduleRejected
)

type GetCompositeScheduleConf struct {
	Status           GetCompositeScheduleStatus
	ConnectorID      int
	ScheduleStart    time.Time
	ChargingSchedule ChargingSchedule
}

type SetChargingProfileReq struct {
	ConnectorID      int
	CSChargingProfiles ChargingProfile
}

type ChargingProfileStatus int

const (
	ChargingProfileAccepted ChargingProfileStatus = iota
	ChargingProfileRejected
	ChargingProfileNotSupported
)

type SetChargingProfileConf struct {
	Status ChargingProfileStatus
}

// --- TriggerMessage ---

type TriggerMessageType int

const (
	TriggerBootNotification TriggerMessageType = iota
	TriggerDiagnosticsStatusNotification
	TriggerFirmwareStatusNotification
	TriggerHeartbeat
	TriggerMeterValues
	TriggerStatusNotification
)

type TriggerMessageReq struct {
	RequestedMessage TriggerMessageType
	ConnectorID      int
}

type TriggerMessageStatus int

const (
	TriggerAccepted TriggerMessageStatus = iota
	TriggerRejected
	TriggerNotImplemented
)

type TriggerMessageConf struct {
	Status TriggerMessageStatus
}

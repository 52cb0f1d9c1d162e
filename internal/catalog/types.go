// Package catalog is the closed enumeration of OCPP 1.6 operation kinds
// and their request/response wire shapes. It owns no queues and no
// scheduling; it is pure data plus the stringify/parse bijection.
package catalog

// Role is the OCPP RPC role of a message.
type Role int

const (
	RoleNone Role = iota
	RoleAlloc
	RoleCall
	RoleCallResult
	RoleCallError
)

func (r Role) String() string {
	switch r {
	case RoleNone:
		return "None"
	case RoleAlloc:
		return "Alloc"
	case RoleCall:
		return "Call"
	case RoleCallResult:
		return "CallResult"
	case RoleCallError:
		return "CallError"
	default:
		return "Unknown"
	}
}

// Type is the closed enumeration of OCPP 1.6 operation kinds handled
// by the core.
type Type int

const (
	Authorize Type = iota
	BootNotification
	ChangeAvailability
	ChangeConfiguration
	ClearCache
	DataTransfer
	GetConfiguration
	Heartbeat
	MeterValues
	RemoteStartTransaction
	RemoteStopTransaction
	Reset
	StartTransaction
	StatusNotification
	StopTransaction
	UnlockConnector
	DiagnosticsStatusNotification
	FirmwareStatusNotification
	GetDiagnostics
	UpdateFirmware
	GetLocalListVersion
	SendLocalList
	CancelReservation
	ReserveNow
	ClearChargingProfile
	GetCompositeSchedule
	SetChargingProfile
	TriggerMessage

	typeMax
)

// Max is the first Type value not in the catalog; used for bounds checks.
const Max = typeMax

// IsTransactionRelated reports whether t is governed by the dedicated
// transaction retry/attempts configuration (TransactionMessageAttempts,
// TransactionMessageRetryInterval) rather than the default policy.
func (t Type) IsTransactionRelated() bool {
	switch t {
	case StartTransaction, StopTransaction, MeterValues:
		return true
	default:
		return false
	}
}

// IsValid reports whether t is a recognized catalog entry.
func (t Type) IsValid() bool {
	return t >= 0 && t < typeMax
}

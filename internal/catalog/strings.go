package catalog

// typeNames is the bijection between Type and its OCPP 1.6 action
// name as it appears on the wire.
var typeNames = [typeMax]string{
	Authorize:                     "Authorize",
	BootNotification:              "BootNotification",
	ChangeAvailability:            "ChangeAvailability",
	ChangeConfiguration:           "ChangeConfiguration",
	ClearCache:                    "ClearCache",
	DataTransfer:                 "DataTransfer",
	GetConfiguration:              "GetConfiguration",
	Heartbeat:                     "Heartbeat",
	MeterValues:                   "MeterValues",
	RemoteStartTransaction:        "RemoteStartTransaction",
	RemoteStopTransaction:         "RemoteStopTransaction",
	Reset:                         "Reset",
	StartTransaction:              "StartTransaction",
	StatusNotification:            "StatusNotification",
	StopTransaction:               "StopTransaction",
	UnlockConnector:               "UnlockConnector",
	DiagnosticsStatusNotification: "DiagnosticsStatusNotification",
	FirmwareStatusNotification:    "FirmwareStatusNotification",
	GetDiagnostics:                "GetDiagnostics",
	UpdateFirmware:                "UpdateFirmware",
	GetLocalListVersion:           "GetLocalListVersion",
	SendLocalList:                 "SendLocalList",
	CancelReservation:             "CancelReservation",
	ReserveNow:                    "ReserveNow",
	ClearChargingProfile:          "ClearChargingProfile",
	GetCompositeSchedule:          "GetCompositeSchedule",
	SetChargingProfile:            "SetChargingProfile",
	TriggerMessage:                "TriggerMessage",
}

// Stringify returns t's action name, or "" if t is out of range —
// callers that must distinguish an unknown tag should check IsValid
// first.
func Stringify(t Type) string {
	if !t.IsValid() {
		return ""
	}
	return typeNames[t]
}

// TypeFromString is the inverse of Stringify. Returns (Max, false) when
// s names no known operation.
func TypeFromString(s string) (Type, bool) {
	for i, name := range typeNames {
		if name == s {
			return Type(i), true
		}
	}
	return typeMax, false
}

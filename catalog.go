package ocpp

import "github.com/pazzk-labs/ocpp/internal/catalog"

// Stringify returns t's OCPP 1.6 RFC action name, or "" if t is out of range.
func Stringify(t Type) string { return catalog.Stringify(t) }

// TypeFromString is the inverse of Stringify.
func TypeFromString(s string) (Type, bool) { return catalog.TypeFromString(s) }

// Message type constants, re-exported so a host never needs to import
// internal/catalog directly to build an Envelope.
const (
	Authorize                     = catalog.Authorize
	BootNotification              = catalog.BootNotification
	ChangeAvailability            = catalog.ChangeAvailability
	ChangeConfiguration           = catalog.ChangeConfiguration
	ClearCache                    = catalog.ClearCache
	DataTransfer                  = catalog.DataTransfer
	GetConfiguration              = catalog.GetConfiguration
	Heartbeat                     = catalog.Heartbeat
	MeterValues                   = catalog.MeterValues
	RemoteStartTransaction        = catalog.RemoteStartTransaction
	RemoteStopTransaction         = catalog.RemoteStopTransaction
	Reset                         = catalog.Reset
	StartTransaction              = catalog.StartTransaction
	StatusNotification            = catalog.StatusNotification
	StopTransaction               = catalog.StopTransaction
	UnlockConnector               = catalog.UnlockConnector
	DiagnosticsStatusNotification = catalog.DiagnosticsStatusNotification
	FirmwareStatusNotification    = catalog.FirmwareStatusNotification
	GetDiagnostics                = catalog.GetDiagnostics
	UpdateFirmware                = catalog.UpdateFirmware
	GetLocalListVersion           = catalog.GetLocalListVersion
	SendLocalList                 = catalog.SendLocalList
	CancelReservation             = catalog.CancelReservation
	ReserveNow                    = catalog.ReserveNow
	ClearChargingProfile          = catalog.ClearChargingProfile
	GetCompositeSchedule          = catalog.GetCompositeSchedule
	SetChargingProfile            = catalog.SetChargingProfile
	TriggerMessage                = catalog.TriggerMessage
)

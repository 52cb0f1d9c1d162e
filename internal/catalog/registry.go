package catalog

// ZeroPayload returns a fresh pointer to the request or response struct
// for (typ, role), or nil if the pair is unrecognized. Used by
// internal/queue's snapshot restore to give json.Unmarshal a
// concretely-typed target instead of decoding into interface{}, since a
// pool slot's Body is stored as an opaque interface{} and there is no
// other place in the core that already maps a wire type back to its Go
// struct — the engine and catalog packages never needed this until
// snapshots required reconstructing a body from bytes.
func ZeroPayload(typ Type, role Role) interface{} {
	request := role == RoleCall
	switch typ {
	case Authorize:
		if request {
			return &AuthorizeReq{}
		}
		return &AuthorizeConf{}
	case BootNotification:
		if request {
			return &BootNotificationReq{}
		}
		return &BootNotificationConf{}
	case ChangeAvailability:
		if request {
			return &ChangeAvailabilityReq{}
		}
		return &ChangeAvailabilityConf{}
	case ChangeConfiguration:
		if request {
			return &ChangeConfigurationReq{}
		}
		return &ChangeConfigurationConf{}
	case ClearCache:
		if request {
			return &ClearCacheReq{}
		}
		return &ClearCacheConf{}
	case DataTransfer:
		if request {
			return &DataTransferReq{}
		}
		return &DataTransferConf{}
	case GetConfiguration:
		if request {
			return &GetConfigurationReq{}
		}
		return &GetConfigurationConf{}
	case Heartbeat:
		if request {
			return &HeartbeatReq{}
		}
		return &HeartbeatConf{}
	case MeterValues:
		if request {
			return &MeterValuesReq{}
		}
		return &MeterValuesConf{}
	case RemoteStartTransaction:
		if request {
			return &RemoteStartTransactionReq{}
		}
		return &RemoteStartTransactionConf{}
	case RemoteStopTransaction:
		if request {
			return &RemoteStopTransactionReq{}
		}
		return &RemoteStopTransactionConf{}
	case Reset:
		if request {
			return &ResetReq{}
		}
		return &ResetConf{}
	case StartTransaction:
		if request {
			return &StartTransactionReq{}
		}
		return &StartTransactionConf{}
	case StatusNotification:
		if request {
			return &StatusNotificationReq{}
		}
		return &StatusNotificationConf{}
	case StopTransaction:
		if request {
			return &StopTransactionReq{}
		}
		return &StopTransactionConf{}
	case UnlockConnector:
		if request {
			return &UnlockConnectorReq{}
		}
		return &UnlockConnectorConf{}
	case DiagnosticsStatusNotification:
		if request {
			return &DiagnosticsStatusNotificationReq{}
		}
		return &DiagnosticsStatusNotificationConf{}
	case FirmwareStatusNotification:
		if request {
			return &FirmwareStatusNotificationReq{}
		}
		return &FirmwareStatusNotificationConf{}
	case GetDiagnostics:
		if request {
			return &GetDiagnosticsReq{}
		}
		return &GetDiagnosticsConf{}
	case UpdateFirmware:
		if request {
			return &UpdateFirmwareReq{}
		}
		return &UpdateFirmwareConf{}
	case GetLocalListVersion:
		if request {
			return &GetLocalListVersionReq{}
		}
		return &GetLocalListVersionConf{}
	case SendLocalList:
		if request {
			return &SendLocalListReq{}
		}
		return &SendLocalListConf{}
	case CancelReservation:
		if request {
			return &CancelReservationReq{}
		}
		return &CancelReservationConf{}
	case ReserveNow:
		if request {
			return &ReserveNowReq{}
		}
		return &ReserveNowConf{}
	case ClearChargingProfile:
		if request {
			return &ClearChargingProfileReq{}
		}
		return &ClearChargingProfileConf{}
	case GetCompositeSchedule:
		if request {
			return &GetCompositeScheduleReq{}
		}
		return &GetCompositeScheduleConf{}
	case SetChargingProfile:
		if request {
			return &SetChargingProfileReq{}
		}
		return &SetChargingProfileConf{}
	case TriggerMessage:
		if request {
			return &TriggerMessageReq{}
		}
		return &TriggerMessageConf{}
	default:
		return nil
	}
}

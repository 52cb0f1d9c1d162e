package ocpp

import "github.com/pazzk-labs/ocpp/internal/constants"

// Re-exported sizing knobs for callers that want the library defaults
// without reaching into internal/constants directly.
const (
	DefaultPoolLen         = constants.DefaultPoolLen
	DefaultTimeoutSec      = constants.DefaultTimeoutSec
	DefaultTxRetries       = constants.DefaultTxRetries
	DefaultMessageIDMaxLen = constants.DefaultMessageIDMaxLen
	DefaultConnectorCount  = constants.DefaultConnectorCount
)

const (
	MinStepInterval = constants.MinStepInterval
	MaxStepInterval = constants.MaxStepInterval
)

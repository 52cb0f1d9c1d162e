package ocpp

import (
	"github.com/pazzk-labs/ocpp/internal/bindings"
	"github.com/pazzk-labs/ocpp/internal/catalog"
)

// Aliases for the extension-point interfaces and wire types a host
// (cmd/chargepoint-sim, or any other command living in this module)
// implements and passes into New. Kept as aliases rather than copies so
// a value satisfying internal/bindings.Transport is interchangeable with
// ocpp.Transport with no adapter needed.
type (
	Transport    = bindings.Transport
	IDGenerator  = bindings.IDGenerator
	Locker       = bindings.Locker
	ConfigLocker = bindings.ConfigLocker
	Logger       = bindings.Logger
	Observer     = bindings.Observer
	EventFunc    = bindings.EventFunc

	Envelope = catalog.Envelope
	Role     = catalog.Role
	Type     = catalog.Type
)

// Re-exported Role/Type constants a host needs to construct Envelopes.
const (
	RoleCall       = catalog.RoleCall
	RoleCallResult = catalog.RoleCallResult
	RoleCallError  = catalog.RoleCallError
)

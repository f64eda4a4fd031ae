package contextkeys

// contextKey is an unexported type to prevent collisions with context keys defined in
// other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "hubsync context key " + string(c)
}

// HubIDKey is the key for the CRM tenant (hub) identifier in context.Context
const HubIDKey = contextKey("hubID")

// AccountIDKey is the key for the internal account identifier in context.Context
const AccountIDKey = contextKey("accountID")

// RunIDKey is the key for the sync run identifier in context.Context
const RunIDKey = contextKey("runID")

// RequestIDKey is the key for the inbound request identifier in context.Context
const RequestIDKey = contextKey("requestID")

// ComponentKey is the key for the emitting component name in context.Context
const ComponentKey = contextKey("component")

// OperationKey is the key for the current operation name in context.Context
const OperationKey = contextKey("operation")

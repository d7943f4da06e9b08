package utils

// contextKey is a type used for context keys to avoid conflicts with other
// packages' context keys.
type contextKey struct {
	name string
}

// String returns the string representation of the context key. gin stores
// values under string keys, so the keys are always set and read via String().
func (c *contextKey) String() string {
	return c.name
}

// ClaimsKey is the context key under which the JWT middleware stores the
// verified token claims.
var ClaimsKey = &contextKey{"claims"}

// UserIdKey is the context key for the authenticated user's id.
var UserIdKey = &contextKey{"userId"}

// IsSuperuserKey is the context key for the authenticated user's admin flag.
var IsSuperuserKey = &contextKey{"isSuperuser"}

// TraceIdKey is the context key for the per-request trace id.
var TraceIdKey = &contextKey{"traceId"}

// SanitizedPayloadKey is the context key for the validated request body.
var SanitizedPayloadKey = &contextKey{"sanitizedPayload"}

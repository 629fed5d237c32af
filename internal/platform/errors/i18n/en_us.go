package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeUnknown             = "UNKNOWN"
	CodeQueryDecodeFailed   = "QUERY_DECODE_FAILED"
	CodeQueryInvalid        = "QUERY_INVALID"
	CodeQueryNotPersisted   = "QUERY_NOT_PERSISTED"
	CodeActionNotAllowed    = "ACTION_NOT_ALLOWED"
	CodePersistenceDisabled = "PERSISTENCE_DISABLED"
	CodeDispatchFailed      = "DISPATCH_FAILED"
)

// KnownCodes lists every code a locale catalog is expected to translate.
var KnownCodes = []Code{
	CodeUnknown,
	CodeQueryDecodeFailed,
	CodeQueryInvalid,
	CodeQueryNotPersisted,
	CodeActionNotAllowed,
	CodePersistenceDisabled,
	CodeDispatchFailed,
}

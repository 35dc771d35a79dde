package askit

// Prompt defaults
const (
	DefaultRetries = 0
	DefaultTrim    = true
)

// User-facing notices written to the sink between attempts
const (
	NoticeEmptyRetry         = "Empty input. Please try again."
	NoticeValidationFallback = "Invalid value"
)

// Error code constants for categorization
const (
	ErrCodeIO         = "ASKIT_IO"
	ErrCodeParse      = "ASKIT_PARSE"
	ErrCodeEmpty      = "ASKIT_EMPTY"
	ErrCodeRetries    = "ASKIT_RETRIES"
	ErrCodeValidation = "ASKIT_VALIDATION"
	ErrCodeForm       = "ASKIT_FORM"
	ErrCodeCatalog    = "ASKIT_CATALOG"
	ErrCodeConfig     = "ASKIT_CONFIG"
)

// Metadata keys for cuserr.WithMetadata
const (
	MetaKeyOperation = "operation"
	MetaKeyAttempts  = "attempts"
	MetaKeyLastError = "last_error"
	MetaKeyTypeName  = "type_name"
	MetaKeyField     = "field"
	MetaKeyFieldType = "field_type"
	MetaKeyForm      = "form"
	MetaKeyPath      = "path"
	MetaKeyTag       = "tag"
	MetaKeyValue     = "value"
)

// I/O operations reported in MetaKeyOperation
const (
	OperationRead  = "read"
	OperationWrite = "write"
	OperationFlush = "flush"
)

// Log messages
const (
	LogMsgPromptCreated      = "prompt created"
	LogMsgResolveStart       = "resolution started"
	LogMsgAttemptStart       = "attempt started"
	LogMsgInputReceived      = "input received"
	LogMsgEndOfStream        = "end of input stream"
	LogMsgDefaultUsed        = "default used"
	LogMsgDefaultUnparsable  = "string default failed to parse - check prompt configuration"
	LogMsgRetryScheduled     = "retry scheduled"
	LogMsgResolveComplete    = "resolution complete"
	LogMsgResolveFailed      = "resolution failed"
	LogMsgHookFailed         = "after hook failed"
	LogMsgFormStart          = "form started"
	LogMsgFormFieldStart     = "form field started"
	LogMsgFormComplete       = "form complete"
	LogMsgCatalogLoaded      = "form loaded from catalog"
	LogMsgCatalogSkippedFile = "skipping unreadable form file"
)

// Log fields
const (
	LogFieldResolutionID = "resolution_id"
	LogFieldMessage      = "message"
	LogFieldAttempt      = "attempt"
	LogFieldAttemptsLeft = "attempts_left"
	LogFieldRetries      = "retries"
	LogFieldInputLength  = "input_length"
	LogFieldReason       = "reason"
	LogFieldDefaultKind  = "default_kind"
	LogFieldTypeName     = "type_name"
	LogFieldErrorKind    = "error_kind"
	LogFieldHookPoint    = "hook_point"
	LogFieldForm         = "form"
	LogFieldField        = "field"
	LogFieldFieldCount   = "field_count"
	LogFieldPath         = "path"
)

// Retry reasons reported in LogFieldReason and HookData.Reason
const (
	RetryReasonEmpty      = "empty"
	RetryReasonParse      = "parse"
	RetryReasonValidation = "validation"
)

// Default kinds reported in LogFieldDefaultKind
const (
	DefaultKindTyped  = "typed"
	DefaultKindString = "string"
)

package internal

// Line handling
const (
	LineDelimiter    byte = '\n'
	CarriageReturn        = "\r"
	LineFeed              = "\n"
	PromptSeparator       = " "
	HintOpenBracket       = "["
	HintDefaultMarker     = "(default"
)

// Hint formats appended to a rendered prompt message
const (
	HintDefaultFormat = "[default: %s] "
	HintDefaultSet    = "[default set] "
)

// Error messages - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	ErrMsgNilParser           = "parser cannot be nil"
	ErrMsgNilType             = "parser type cannot be nil"
	ErrMsgParserAlreadyExists = "parser already registered for type"
	ErrMsgUnsupportedKind     = "no built-in conversion for type"
	ErrMsgNilDestination      = "conversion destination must be a non-nil pointer"
)

// Error format strings
const (
	ErrFmtTypeMessage = "%s: %s"
)

// Log messages
const (
	LogMsgParserRegistryCreated = "parser registry created"
	LogMsgParserRegistered      = "parser registered"
	LogMsgParserCollision       = "parser registration collision - first-come-wins"
	LogMsgParserUnregistered    = "parser unregistered"
)

// Log fields
const (
	LogFieldTypeName = "type_name"
)

package main

// Command names
const (
	CmdNameAsk     = "ask"
	CmdNameForm    = "form"
	CmdNameList    = "list"
	CmdNameVersion = "version"
)

// Flag names - long form
const (
	FlagMessage           = "message"
	FlagType              = "type"
	FlagDefault           = "default"
	FlagRetries           = "retries"
	FlagTrim              = "trim"
	FlagValidate          = "validate"
	FlagValidationMessage = "validation-message"
	FlagChoices           = "choices"
	FlagFile              = "file"
	FlagDir               = "dir"
	FlagName              = "name"
	FlagFormat            = "format"
	FlagQuiet             = "quiet"
	FlagVerbose           = "verbose"
)

// Flag names - short form
const (
	FlagMessageShort = "m"
	FlagTypeShort    = "t"
	FlagDefaultShort = "d"
	FlagRetriesShort = "r"
	FlagFileShort    = "f"
	FlagNameShort    = "n"
	FlagFormatShort  = "F"
	FlagQuietShort   = "q"
	FlagVerboseShort = "v"
)

// Flag usage text
const (
	UsageMessage           = "prompt message shown before reading"
	UsageType              = "value type: string, int, uint, float, bool, duration"
	UsageDefault           = "default used on empty input or end of input"
	UsageRetries           = "extra attempts after the first"
	UsageTrim              = "strip surrounding whitespace from input"
	UsageValidate          = "validation rule, e.g. \"min=1,max=65535\""
	UsageValidationMessage = "message shown when validation fails"
	UsageChoices           = "comma separated list of accepted values"
	UsageFile              = "form file (YAML)"
	UsageDir               = "form catalog directory"
	UsageName              = "form name within the catalog"
	UsageFormat            = "output format: yaml, json"
	UsageQuiet             = "do not write prompts"
	UsageVerbose           = "write debug logs to stderr"
)

// Flag default values
const (
	FlagDefaultType   = "string"
	FlagDefaultFormat = OutputFormatYAML
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatYAML = "yaml"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeValidationError = 3
	ExitCodeInputError      = 4
)

// Environment
const (
	EnvPrefix = "ASKIT"
)

// Error messages - ALL must be constants
const (
	ErrMsgInvalidFormat   = "invalid output format"
	ErrMsgFormSource      = "exactly one of --file or --dir with --name is required"
	ErrMsgDirRequired     = "--dir is required"
	ErrMsgWriteFailed     = "failed to write output"
	ErrMsgEncodeFailed    = "failed to encode answers"
	ErrMsgBindFailed      = "failed to bind configuration"
	ErrMsgUnexpectedArgs  = "unexpected arguments"
	ErrMsgVersionEncoding = "failed to encode version"
)

// CLI metadata
const (
	CLIName             = "askit"
	CLIShortDescription = "Ask typed questions on the terminal"
	CLILongDescription  = `askit reads typed answers from standard input.

Prompts and retry notices are written to stderr and answers to stdout,
so askit composes with shell pipelines:

    port=$(askit ask -m "Port:" -t uint -d 5432 --validate "min=1,max=65535" -r 2)
    askit form -f database.yaml -F json > answers.json

Every flag can also be set through the environment with the ASKIT_
prefix, e.g. ASKIT_RETRIES=3.

Exit codes:
    0  success
    1  error
    2  usage error
    3  validation failed or retries exhausted
    4  input error (I/O failure, empty input without default)`

	CmdAskShort     = "Ask a single question and print the answer"
	CmdFormShort    = "Run a YAML form and print the answers"
	CmdListShort    = "List forms in a catalog directory"
	CmdVersionShort = "Show version information"
)

// Version output
const (
	VersionTextTemplate = "askit version %s\nGo: %s"
	VersionUnknown      = "unknown"
	VersionDevel        = "(devel)"
)

// Format string constants
const (
	FmtError   = "%v\n"
	FmtNewline = "\n"
)

// PromptSeparator keeps typed or echoed input apart from the prompt message.
const PromptSeparator = " "

// Single field form name used by the ask command
const (
	AskFormName  = "ask"
	AskFieldName = "answer"
)

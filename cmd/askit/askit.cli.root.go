package main

import (
	"errors"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	askit "github.com/itsatony/go-askit"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// cli carries the streams and per-invocation configuration shared by all commands.
type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	v      *viper.Viper
	logger *zap.Logger
}

func newCLI(stdin io.Reader, stdout, stderr io.Writer) *cli {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return &cli{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		v:      v,
		logger: zap.NewNop(),
	}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           CLIName,
		Short:         CLIShortDescription,
		Long:          CLILongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.configure(cmd)
		},
	}
	root.SetIn(c.stdin)
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})
	root.CompletionOptions.DisableDefaultCmd = true

	root.PersistentFlags().BoolP(FlagQuiet, FlagQuietShort, false, UsageQuiet)
	root.PersistentFlags().BoolP(FlagVerbose, FlagVerboseShort, false, UsageVerbose)

	root.AddCommand(
		c.askCmd(),
		c.formCmd(),
		c.listCmd(),
		c.versionCmd(),
	)
	root.InitDefaultHelpCmd()
	return root
}

// configure binds the executing command's flags to viper and builds the logger.
func (c *cli) configure(cmd *cobra.Command) error {
	if err := c.v.BindPFlags(cmd.Flags()); err != nil {
		return errors.Join(errors.New(ErrMsgBindFailed), err)
	}
	c.logger = newLogger(c.stderr, c.v.GetBool(FlagVerbose))
	return nil
}

// promptOptions returns the askit options for the current invocation.
// Input is echoed into the transcript when it does not come from a terminal.
func (c *cli) promptOptions() []askit.Option {
	return []askit.Option{
		askit.WithLogger(c.logger),
		askit.WithEcho(!c.quiet() && !isTerminal(c.stdin)),
	}
}

// promptWriter is where prompts and retry notices go.
func (c *cli) promptWriter() io.Writer {
	if c.quiet() {
		return io.Discard
	}
	return c.stderr
}

func (c *cli) quiet() bool {
	return c.v.GetBool(FlagQuiet)
}

// separateMessages pads field messages that would otherwise run into the
// input. Fields with a default already get a separator from the hint.
func separateMessages(form *askit.Form) {
	for _, field := range form.Fields {
		if field == nil || field.Default != nil || field.Message == "" {
			continue
		}
		last, _ := utf8.DecodeLastRuneInString(field.Message)
		if !unicode.IsSpace(last) {
			field.Message += PromptSeparator
		}
	}
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), zapcore.DebugLevel))
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// usageError marks errors caused by how the CLI was invoked.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func newUsageError(msg string) error {
	return &usageError{err: errors.New(msg)}
}

// noArgs rejects positional arguments as a usage error.
func noArgs(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return newUsageError(ErrMsgUnexpectedArgs)
	}
	return nil
}

func exitCodeFor(err error) int {
	var uerr *usageError
	if errors.As(err, &uerr) {
		return ExitCodeUsageError
	}
	switch askit.KindOf(err) {
	case askit.KindValidation, askit.KindRetriesExceeded:
		return ExitCodeValidationError
	case askit.KindIO, askit.KindEmptyNotAllowed:
		return ExitCodeInputError
	default:
		return ExitCodeError
	}
}

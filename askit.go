// Package askit provides typed interactive prompts for command-line programs.
//
// A prompt prints a message, reads one line, converts it to the requested Go
// type and retries on bad input until its retry budget runs out:
//
//	port, err := askit.Get[uint16](askit.New("Port:").Retries(2))
//
// # Basic Usage
//
// New creates an untyped Prompt. Get and GetWith resolve it as any type that
// has a parser:
//
//	name, _ := askit.Input("Name:")
//	age, err := askit.GetWith[int](askit.New("Age:").Retries(1), os.Stdin, os.Stderr)
//
// # Defaults
//
// A string default is used on empty input or end of input and is parsed like
// typed input. The prompt shows it as a hint:
//
//	askit.New("Port:").Default("5432") // prints "Port: [default: 5432] "
//
// Typed prompts also accept a default value that takes precedence over the
// string default and is consumed by the first resolution that uses it:
//
//	p := askit.To[uint16](askit.New("Port:")).DefaultVal(5432)
//
// # Validation
//
// Validate attaches a predicate. Rejected values consume the retry budget
// and print a notice:
//
//	port, err := askit.To[uint16](askit.New("Port:").Retries(2)).
//	    Validate(askit.Between[uint16](1, 65535)).
//	    Message("Invalid port").
//	    Get()
//
// MatchesTag adapts go-playground/validator tags:
//
//	askit.MatchesTag[string]("required,email")
//
// # Custom Types
//
// Types implementing encoding.TextUnmarshaler work out of the box. Other
// types register a parser once, or set one on a single prompt:
//
//	askit.MustRegisterParser[Point](parsePoint)
//	p := askit.To[Point](askit.New("Point:")).Parser(parsePoint)
//
// # Forms
//
// A Form is a YAML document describing a sequence of prompts. Run resolves
// every field in order and returns the ordered Answers:
//
//	form, _ := askit.LoadForm("database.yaml")
//	answers, err := form.Run(ctx, os.Stdin, os.Stderr)
//
// Forms can be looked up by name through a FormCatalog.
//
// # Error Handling
//
// Failures are classified by KindOf and match the sentinel errors with
// errors.Is:
//
//	_, err := askit.Get[int](askit.New("Count:"))
//	switch askit.KindOf(err) {
//	case askit.KindRetriesExceeded:
//	    // attempts are in the error metadata
//	case askit.KindEmptyNotAllowed:
//	    // nothing was entered and there was no default
//	}
//
// # Configuration
//
// Customize prompts with functional options:
//
//	hooks := askit.NewHookRegistry()
//	p := askit.New("Name:",
//	    askit.WithLogger(logger),
//	    askit.WithHooks(hooks),
//	    askit.WithEcho(true),
//	)
package askit

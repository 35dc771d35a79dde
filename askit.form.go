package askit

import (
	"bytes"
	"context"
	"io"
	"os"
	"time"

	"github.com/itsatony/go-askit/internal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Form field types
const (
	FieldTypeString   = "string"
	FieldTypeInt      = "int"
	FieldTypeUint     = "uint"
	FieldTypeFloat    = "float"
	FieldTypeBool     = "bool"
	FieldTypeDuration = "duration"
)

// Form is an ordered list of typed prompts declared in YAML:
//
//	name: database
//	fields:
//	  - name: port
//	    message: "Port: "
//	    type: uint
//	    default: "5432"
//	    retries: 2
//	    validate: "min=1,max=65535"
//	    validation_message: "Port must be 1..65535"
type Form struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Fields      []*FormField `yaml:"fields"`
}

// FormField declares one prompt of a Form.
type FormField struct {
	Name              string   `yaml:"name"`
	Message           string   `yaml:"message"`
	Type              string   `yaml:"type,omitempty"`
	Default           *string  `yaml:"default,omitempty"`
	Retries           int      `yaml:"retries,omitempty"`
	Trim              *bool    `yaml:"trim,omitempty"`
	Validate          string   `yaml:"validate,omitempty"`
	ValidationMessage string   `yaml:"validation_message,omitempty"`
	Choices           []string `yaml:"choices,omitempty"`
}

// FieldType returns the declared type, defaulting to string.
func (f *FormField) FieldType() string {
	if f.Type == "" {
		return FieldTypeString
	}
	return f.Type
}

// fieldCodec binds a field type name to its Go type.
type fieldCodec struct {
	check func(form string, f *FormField) error
	run   func(ctx context.Context, f *FormField, src internal.LineSource, w io.Writer, opts []Option) (any, error)
}

func codecFor[T comparable]() fieldCodec {
	return fieldCodec{check: checkField[T], run: runField[T]}
}

var fieldCodecs = map[string]fieldCodec{
	FieldTypeString:   codecFor[string](),
	FieldTypeInt:      codecFor[int64](),
	FieldTypeUint:     codecFor[uint64](),
	FieldTypeFloat:    codecFor[float64](),
	FieldTypeBool:     codecFor[bool](),
	FieldTypeDuration: codecFor[time.Duration](),
}

// ParseForm decodes a YAML form document and validates it.
// Unknown keys are rejected.
func ParseForm(data []byte) (*Form, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var form Form
	if err := dec.Decode(&form); err != nil {
		return nil, NewFormError(ErrMsgFormInvalid, "", "", err)
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}
	return &form, nil
}

// LoadForm reads and parses the form document at path.
func LoadForm(path string) (*Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewFormError(ErrMsgFormInvalid, "", "", err)
	}
	return ParseForm(data)
}

// Validate checks field names, types, defaults, choices and validation rules.
func (f *Form) Validate() error {
	if len(f.Fields) == 0 {
		return NewFormError(ErrMsgFormEmpty, f.Name, "", nil)
	}
	seen := make(map[string]struct{}, len(f.Fields))
	for _, field := range f.Fields {
		if field == nil || field.Name == "" {
			return NewFormError(ErrMsgFormFieldNameEmpty, f.Name, "", nil)
		}
		if _, dup := seen[field.Name]; dup {
			return NewFormError(ErrMsgFormFieldDuplicate, f.Name, field.Name, nil)
		}
		seen[field.Name] = struct{}{}

		codec, ok := fieldCodecs[field.FieldType()]
		if !ok {
			return NewFormError(ErrMsgFormFieldType, f.Name, field.Name, nil)
		}
		if err := codec.check(f.Name, field); err != nil {
			return err
		}
	}
	return nil
}

// Marshal encodes the form back to YAML.
func (f *Form) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}

// Run resolves every field in declaration order against one shared line
// source. It stops at the first failing field and returns the answers
// collected so far together with a *FieldError. ctx is checked between
// fields; a read in progress is not interrupted.
func (f *Form) Run(ctx context.Context, r io.Reader, w io.Writer, opts ...Option) (*Answers, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	logger := resolveConfig(opts).logger
	logger.Debug(LogMsgFormStart, zap.String(LogFieldForm, f.Name), zap.Int(LogFieldFieldCount, len(f.Fields)))

	src := internal.NewLineSource(r)
	answers := NewAnswers(f.Name)
	for _, field := range f.Fields {
		if err := ctx.Err(); err != nil {
			return answers, &FieldError{Form: f.Name, Field: field.Name, Err: err}
		}
		logger.Debug(LogMsgFormFieldStart, zap.String(LogFieldField, field.Name))

		v, err := fieldCodecs[field.FieldType()].run(ctx, field, src, w, opts)
		if err != nil {
			return answers, &FieldError{Form: f.Name, Field: field.Name, Err: err}
		}
		answers.Set(field.Name, v)
	}
	logger.Debug(LogMsgFormComplete, zap.String(LogFieldForm, f.Name))
	return answers, nil
}

func checkField[T comparable](form string, f *FormField) error {
	if f.Default != nil {
		if _, err := Parse[T](*f.Default); err != nil {
			return NewFormError(ErrMsgFormFieldDefault, form, f.Name, err)
		}
	}
	for _, c := range f.Choices {
		if _, err := Parse[T](c); err != nil {
			return NewFormError(ErrMsgFormFieldChoice, form, f.Name, err)
		}
	}
	if f.Validate != "" {
		if err := CheckTag[T](f.Validate); err != nil {
			return NewFormError(ErrMsgFormFieldRule, form, f.Name, err)
		}
	}
	return nil
}

func runField[T comparable](ctx context.Context, f *FormField, src internal.LineSource, w io.Writer, opts []Option) (any, error) {
	p := New(f.Message, opts...).Retries(f.Retries)
	if f.Default != nil {
		p.Default(*f.Default)
	}
	if f.Trim != nil {
		p.Trim(*f.Trim)
	}
	tp := To[T](p)

	var preds []func(T) bool
	if len(f.Choices) > 0 {
		allowed := make([]T, 0, len(f.Choices))
		for _, c := range f.Choices {
			v, err := Parse[T](c)
			if err != nil {
				return nil, err
			}
			allowed = append(allowed, v)
		}
		preds = append(preds, OneOf(allowed...))
	}
	if f.Validate != "" {
		preds = append(preds, MatchesTag[T](f.Validate))
	}
	if len(preds) > 0 {
		tp.Validate(All(preds...))
	}
	if f.ValidationMessage != "" {
		tp.Message(f.ValidationMessage)
	}

	v, err := tp.resolve(ctx, src, w)
	if err != nil {
		return nil, err
	}
	return v, nil
}

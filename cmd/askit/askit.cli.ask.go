package main

import (
	"errors"
	"fmt"

	askit "github.com/itsatony/go-askit"
	"github.com/spf13/cobra"
)

func (c *cli) askCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   CmdNameAsk,
		Short: CmdAskShort,
		Args:  noArgs,
		RunE:  c.runAsk,
	}
	f := cmd.Flags()
	f.StringP(FlagMessage, FlagMessageShort, "", UsageMessage)
	f.StringP(FlagType, FlagTypeShort, FlagDefaultType, UsageType)
	f.StringP(FlagDefault, FlagDefaultShort, "", UsageDefault)
	f.IntP(FlagRetries, FlagRetriesShort, askit.DefaultRetries, UsageRetries)
	f.Bool(FlagTrim, askit.DefaultTrim, UsageTrim)
	f.String(FlagValidate, "", UsageValidate)
	f.String(FlagValidationMessage, "", UsageValidationMessage)
	f.StringSlice(FlagChoices, nil, UsageChoices)
	return cmd
}

// runAsk resolves a single field form built from the flags and prints the value.
func (c *cli) runAsk(cmd *cobra.Command, _ []string) error {
	form := &askit.Form{
		Name:   AskFormName,
		Fields: []*askit.FormField{c.askField()},
	}
	if err := form.Validate(); err != nil {
		return &usageError{err: err}
	}
	separateMessages(form)

	answers, err := form.Run(cmd.Context(), c.stdin, c.promptWriter(), c.promptOptions()...)
	if err != nil {
		var ferr *askit.FieldError
		if errors.As(err, &ferr) {
			return ferr.Err
		}
		return err
	}

	value, _ := answers.Get(AskFieldName)
	_, err = fmt.Fprintln(c.stdout, value)
	return err
}

func (c *cli) askField() *askit.FormField {
	trim := c.v.GetBool(FlagTrim)
	field := &askit.FormField{
		Name:              AskFieldName,
		Message:           c.v.GetString(FlagMessage),
		Type:              c.v.GetString(FlagType),
		Retries:           c.v.GetInt(FlagRetries),
		Trim:              &trim,
		Validate:          c.v.GetString(FlagValidate),
		ValidationMessage: c.v.GetString(FlagValidationMessage),
		Choices:           c.v.GetStringSlice(FlagChoices),
	}
	if c.v.IsSet(FlagDefault) {
		def := c.v.GetString(FlagDefault)
		field.Default = &def
	}
	return field
}

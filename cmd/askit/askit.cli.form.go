package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	askit "github.com/itsatony/go-askit"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (c *cli) formCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   CmdNameForm,
		Short: CmdFormShort,
		Args:  noArgs,
		RunE:  c.runForm,
	}
	f := cmd.Flags()
	f.StringP(FlagFile, FlagFileShort, "", UsageFile)
	f.String(FlagDir, "", UsageDir)
	f.StringP(FlagName, FlagNameShort, "", UsageName)
	f.StringP(FlagFormat, FlagFormatShort, FlagDefaultFormat, UsageFormat)
	return cmd
}

func (c *cli) listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   CmdNameList,
		Short: CmdListShort,
		Args:  noArgs,
		RunE:  c.runList,
	}
	cmd.Flags().String(FlagDir, "", UsageDir)
	return cmd
}

func (c *cli) runForm(cmd *cobra.Command, _ []string) error {
	format := c.v.GetString(FlagFormat)
	if format != OutputFormatYAML && format != OutputFormatJSON {
		return newUsageError(ErrMsgInvalidFormat)
	}

	form, err := c.loadForm(cmd.Context())
	if err != nil {
		return err
	}
	separateMessages(form)

	answers, err := form.Run(cmd.Context(), c.stdin, c.promptWriter(), c.promptOptions()...)
	if err != nil {
		return err
	}
	return c.writeAnswers(answers, format)
}

// loadForm resolves the form from either --file or --dir and --name.
func (c *cli) loadForm(ctx context.Context) (*askit.Form, error) {
	file := c.v.GetString(FlagFile)
	dir := c.v.GetString(FlagDir)
	name := c.v.GetString(FlagName)

	switch {
	case file != "" && dir == "" && name == "":
		return askit.LoadForm(file)
	case file == "" && dir != "" && name != "":
		catalog, err := askit.NewFilesystemFormCatalog(dir, askit.WithLogger(c.logger))
		if err != nil {
			return nil, err
		}
		defer catalog.Close()
		return catalog.Get(ctx, name)
	default:
		return nil, newUsageError(ErrMsgFormSource)
	}
}

func (c *cli) writeAnswers(answers *askit.Answers, format string) error {
	var (
		out []byte
		err error
	)
	if format == OutputFormatJSON {
		out, err = json.MarshalIndent(answers, "", "  ")
		if err == nil {
			out = append(out, '\n')
		}
	} else {
		out, err = yaml.Marshal(answers)
	}
	if err != nil {
		return errors.Join(errors.New(ErrMsgEncodeFailed), err)
	}
	if _, err := c.stdout.Write(out); err != nil {
		return errors.Join(errors.New(ErrMsgWriteFailed), err)
	}
	return nil
}

func (c *cli) runList(cmd *cobra.Command, _ []string) error {
	dir := c.v.GetString(FlagDir)
	if dir == "" {
		return newUsageError(ErrMsgDirRequired)
	}
	catalog, err := askit.NewFilesystemFormCatalog(dir, askit.WithLogger(c.logger))
	if err != nil {
		return err
	}
	defer catalog.Close()

	names, err := catalog.List(cmd.Context())
	if err != nil {
		return err
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(c.stdout, name); err != nil {
			return errors.Join(errors.New(ErrMsgWriteFailed), err)
		}
	}
	return nil
}

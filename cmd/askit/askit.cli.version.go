package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=v1.2.3".
var version string

// versionOutput represents JSON output for version
type versionOutput struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
}

func (c *cli) versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   CmdNameVersion,
		Short: CmdVersionShort,
		Args:  noArgs,
		RunE:  c.runVersion,
	}
	cmd.Flags().StringP(FlagFormat, FlagFormatShort, OutputFormatText, UsageFormat)
	return cmd
}

func (c *cli) runVersion(_ *cobra.Command, _ []string) error {
	info := versionOutput{
		Version:   resolveVersion(),
		GoVersion: runtime.Version(),
	}

	switch c.v.GetString(FlagFormat) {
	case OutputFormatText:
		_, err := fmt.Fprintf(c.stdout, VersionTextTemplate+FmtNewline, info.Version, info.GoVersion)
		return err
	case OutputFormatJSON:
		out, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return errors.Join(errors.New(ErrMsgVersionEncoding), err)
		}
		_, err = fmt.Fprintln(c.stdout, string(out))
		return err
	default:
		return newUsageError(ErrMsgInvalidFormat)
	}
}

func resolveVersion() string {
	if version != "" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != VersionDevel {
		return bi.Main.Version
	}
	return VersionUnknown
}

// Package root provides the root command for the jget CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/jacoelho/jsmn/internal/cmd/cmdutil"
	"github.com/jacoelho/jsmn/internal/cmd/extract"
	"github.com/jacoelho/jsmn/internal/cmd/get"
	"github.com/jacoelho/jsmn/internal/cmd/tokens"
	"github.com/jacoelho/jsmn/internal/version"
)

// NewCmdRoot creates the root command for jget.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jget",
		Short: "Read top-level JSON members with a fixed token capacity",
		Long: `jget tokenizes JSON documents into a fixed number of token slots and
reads top-level members without building an object model.

A document that needs more tokens than --max-tokens is rejected. Parse
failures exit with status 2.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	cmdutil.AddGlobalFlags(cmd)

	cmd.SetVersionTemplate("jget version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	cmd.AddCommand(get.NewCmdGet())
	cmd.AddCommand(tokens.NewCmdTokens())
	cmd.AddCommand(extract.NewCmdExtract())

	return cmd
}

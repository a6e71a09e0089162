// Package tokens provides the tokens command.
package tokens

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jacoelho/jsmn/internal/cmd/cmdutil"
	"github.com/jacoelho/jsmn/internal/view"
)

const textWidth = 40

// NewCmdTokens creates the tokens command.
func NewCmdTokens() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens [FILE]",
		Short: "Print the token table of a JSON document",
		Example: `  jget tokens order.json
  jget tokens --max-tokens 8 < small.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := "-"
			if len(args) == 1 {
				file = args[0]
			}
			return runTokens(cmd, file)
		},
	}

	return cmd
}

func runTokens(cmd *cobra.Command, file string) error {
	global, err := cmdutil.GlobalOptions(cmd)
	if err != nil {
		return err
	}

	src, err := cmdutil.ReadInput(cmd, file)
	if err != nil {
		return err
	}

	p := global.NewParser(global.Logger(cmd.ErrOrStderr()), 0)
	p.SetJSON(src)

	if _, err := p.Parse(); err != nil {
		return fmt.Errorf("failed to parse %s: %w", file, err)
	}

	rows := make([][]string, 0, p.Len())
	for i, t := range p.Tokens() {
		rows = append(rows, []string{
			strconv.Itoa(i),
			t.Kind.String(),
			strconv.Itoa(t.Start),
			strconv.Itoa(t.End),
			strconv.Itoa(t.Size),
			view.Truncate(t.Text(src), textWidth),
		})
	}

	return global.Renderer(cmd.OutOrStdout()).RenderTable(
		[]string{"INDEX", "KIND", "START", "END", "SIZE", "TEXT"}, rows)
}

// Package get provides the get command.
package get

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacoelho/jsmn/internal/cmd/cmdutil"
	"github.com/jacoelho/jsmn/internal/query"
)

type getOptions struct {
	file   string
	fields []string
}

// NewCmdGet creates the get command.
func NewCmdGet() *cobra.Command {
	opts := &getOptions{}

	cmd := &cobra.Command{
		Use:   "get KEY[:TYPE]...",
		Short: "Print top-level members of a JSON document",
		Long: `Parse one JSON document and print the value of each key.

TYPE is one of string (default), int, uint, float, bool, uuid, raw,
ints, floats or strings.`,
		Example: `  # Read from a file
  jget get -f order.json id:int total:float

  # Read from stdin as JSON
  echo '{"ok": true}' | jget get ok:bool -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.fields = args
			return runGet(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "-", "input file, - for stdin")

	return cmd
}

func runGet(cmd *cobra.Command, opts *getOptions) error {
	global, err := cmdutil.GlobalOptions(cmd)
	if err != nil {
		return err
	}

	q, err := query.FromArgs(opts.fields)
	if err != nil {
		return err
	}

	src, err := cmdutil.ReadInput(cmd, opts.file)
	if err != nil {
		return err
	}

	logger := global.Logger(cmd.ErrOrStderr())
	p := global.NewParser(logger, 0)
	p.SetJSON(src)

	if _, err := p.Parse(); err != nil {
		return fmt.Errorf("failed to parse %s: %w", opts.file, err)
	}

	rows := make([][]string, len(q.Fields))
	var failed error
	for i, f := range q.Fields {
		v, err := f.Extract(p)
		if err != nil {
			failed = fmt.Errorf("%s: %w", f.Key, err)
			logger.Warn("lookup failed", "key", f.Key, "type", f.Type, "error", err)
			v = ""
		}
		rows[i] = []string{f.Key, string(f.Type), v}
	}

	if err := global.Renderer(cmd.OutOrStdout()).RenderTable([]string{"KEY", "TYPE", "VALUE"}, rows); err != nil {
		return err
	}
	return failed
}

// Package extract provides the extract command.
package extract

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jacoelho/jsmn/internal/cmd/cmdutil"
	"github.com/jacoelho/jsmn/internal/query"
	"github.com/jacoelho/jsmn/internal/ratelimit"
)

// maxLineSize bounds one NDJSON record.
const maxLineSize = 16 << 20

type extractOptions struct {
	queryFile string
	rate      float64
	burst     int
	keepGoing bool
	file      string
}

// NewCmdExtract creates the extract command.
func NewCmdExtract() *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract --query FILE [FILE]",
		Short: "Extract fields from newline-delimited JSON",
		Long: `Read one JSON document per line and print one row per document with
the fields listed in a YAML query file:

  max_tokens: 64
  fields:
    - key: id
      type: uuid
    - name: amount
      key: total
      type: float

Lines that fail to parse are logged and make the command fail once all
input is read, unless --keep-going is set.`,
		Example: `  jget extract --query fields.yaml events.ndjson
  tail -f events.ndjson | jget extract --query fields.yaml --rate 100 -o plain`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.file = "-"
			if len(args) == 1 {
				opts.file = args[0]
			}
			return runExtract(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.queryFile, "query", "q", "", "YAML query file")
	cmd.Flags().Float64Var(&opts.rate, "rate", 0, "maximum records per second, 0 for unlimited")
	cmd.Flags().IntVar(&opts.burst, "burst", 1, "records allowed at once above --rate")
	cmd.Flags().BoolVar(&opts.keepGoing, "keep-going", false, "exit successfully even if some records fail to parse")
	_ = cmd.MarkFlagRequired("query")

	return cmd
}

func loadQuery(path string) (*query.Query, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open query: %w", err)
	}
	defer f.Close()

	return query.Parse(f)
}

func runExtract(cmd *cobra.Command, opts *extractOptions) error {
	global, err := cmdutil.GlobalOptions(cmd)
	if err != nil {
		return err
	}
	if opts.rate < 0 {
		return fmt.Errorf("invalid rate: %v, must be >= 0", opts.rate)
	}

	q, err := loadQuery(opts.queryFile)
	if err != nil {
		return err
	}

	in, err := cmdutil.OpenInput(cmd, opts.file)
	if err != nil {
		return err
	}
	defer in.Close()

	ctx := cmd.Context()
	logger := global.Logger(cmd.ErrOrStderr())
	limiter := ratelimit.New(opts.rate, opts.burst)
	p := global.NewParser(logger, q.MaxTokens)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64<<10), maxLineSize)

	var (
		rows     [][]string
		line     int
		records  int
		failed   int
		parseErr error
	)
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if len(text) == 0 {
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		records++

		p.SetJSON(text)
		if _, err := p.Parse(); err != nil {
			failed++
			parseErr = err
			logger.Warn("skipping record", "line", line, "error", err)
			continue
		}

		row, err := q.Extract(p)
		if err != nil {
			logger.Debug("incomplete record", "line", line, "error", err)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	logger.Debug("extract finished", "records", records, "failed", failed)

	if err := global.Renderer(cmd.OutOrStdout()).RenderTable(q.Names(), rows); err != nil {
		return err
	}

	if failed > 0 && !opts.keepGoing {
		return fmt.Errorf("%d of %d records failed, last: %w", failed, records, parseErr)
	}
	return nil
}

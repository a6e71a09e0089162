// Package cmdutil holds the flags and helpers shared by jget commands.
package cmdutil

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jacoelho/jsmn"
	"github.com/jacoelho/jsmn/internal/view"
)

// DefaultMaxTokens is the token capacity used when --max-tokens is not set.
const DefaultMaxTokens = 256

// Options are the global flags.
type Options struct {
	MaxTokens  int
	Strict     bool
	Validating bool
	Flat       bool
	Output     string
	NoColor    bool
	Debug      bool

	// MaxTokensSet reports whether --max-tokens was given explicitly.
	MaxTokensSet bool
}

// AddGlobalFlags registers the global flags on cmd.
func AddGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.Int("max-tokens", DefaultMaxTokens, "token capacity of the parser")
	flags.Bool("strict", false, "reject input that is not strict JSON")
	flags.Bool("validate", false, "validate the full JSON grammar while parsing")
	flags.Bool("flat", false, "match keys anywhere in the document, first match wins")
	flags.StringP("output", "o", "table", "output format: table, json, plain")
	flags.Bool("no-color", false, "disable colored output")
	flags.Bool("debug", false, "log parse details to stderr")
}

// GlobalOptions reads the global flags of cmd.
func GlobalOptions(cmd *cobra.Command) (*Options, error) {
	flags := cmd.Flags()

	opts := &Options{}
	opts.MaxTokens, _ = flags.GetInt("max-tokens")
	opts.Strict, _ = flags.GetBool("strict")
	opts.Validating, _ = flags.GetBool("validate")
	opts.Flat, _ = flags.GetBool("flat")
	opts.Output, _ = flags.GetString("output")
	opts.NoColor, _ = flags.GetBool("no-color")
	opts.Debug, _ = flags.GetBool("debug")
	opts.MaxTokensSet = flags.Changed("max-tokens")

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func (o *Options) Validate() error {
	if o.MaxTokens <= 0 {
		return fmt.Errorf("invalid max tokens: %d, must be > 0", o.MaxTokens)
	}
	if o.Strict && o.Validating {
		return errors.New("--strict and --validate are mutually exclusive")
	}
	return view.ValidateFormat(o.Output)
}

// NewParser returns a parser configured from the flags. maxTokens overrides
// the --max-tokens default when the flag was not given and maxTokens > 0.
func (o *Options) NewParser(logger *slog.Logger, maxTokens int) *jsmn.Parser {
	capacity := o.MaxTokens
	if !o.MaxTokensSet && maxTokens > 0 {
		capacity = maxTokens
	}

	opts := []jsmn.Option{jsmn.WithLogger(logger)}
	if o.Strict {
		opts = append(opts, jsmn.WithStrict())
	}
	if o.Validating {
		opts = append(opts, jsmn.WithValidation())
	}
	if o.Flat {
		opts = append(opts, jsmn.WithFlatKeys())
	}
	return jsmn.New(capacity, opts...)
}

// Logger logs to w at info level, or debug level with --debug.
func (o *Options) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (o *Options) Renderer(w io.Writer) *view.Renderer {
	return view.NewRenderer(w, view.Format(o.Output), o.NoColor)
}

// OpenInput opens path, or the command's stdin for "" and "-".
func OpenInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, nil
}

// ReadInput reads all of path, see OpenInput.
func ReadInput(cmd *cobra.Command, path string) (string, error) {
	r, err := OpenInput(cmd, path)
	if err != nil {
		return "", err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}

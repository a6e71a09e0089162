package jsmn

import (
	"log/slog"

	"github.com/jacoelho/jsmn/internal/scan"
	"github.com/jacoelho/jsmn/internal/stream"
)

// Parser is a fixed-capacity token store bound to one JSON source at a time.
//
// The zero value is an unbound parser with no token slots; use New.
type Parser struct {
	tokens []Token
	n      int
	parsed bool

	src   string
	bound bool

	scope   Scope
	scanner scan.Scanner
	engine  Engine
	logger  *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithJSON binds src at construction.
func WithJSON(src string) Option {
	return func(p *Parser) {
		p.src = src
		p.bound = true
	}
}

// WithEngine replaces the built-in scanner.
func WithEngine(e Engine) Option {
	return func(p *Parser) {
		p.engine = e
	}
}

// WithStrict makes the built-in scanner reject bare keys, unterminated
// primitives and other input that is not JSON.
func WithStrict() Option {
	return func(p *Parser) {
		p.scanner.Strict = true
	}
}

// WithValidation tokenizes with encoding/json, accepting only valid JSON.
// Parsing allocates; lookups do not.
func WithValidation() Option {
	return func(p *Parser) {
		p.engine = stream.New()
	}
}

// WithFlatKeys resolves keys by scanning every token, see ScopeFlat.
func WithFlatKeys() Option {
	return func(p *Parser) {
		p.scope = ScopeFlat
	}
}

// WithLogger logs parse outcomes at debug level. Lookups never log.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = l
	}
}

// New returns a parser with maxTokens token slots. A negative maxTokens is
// treated as zero.
func New(maxTokens int, opts ...Option) *Parser {
	p := &Parser{
		tokens: make([]Token, max(maxTokens, 0)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetJSON binds src. Tokens from an earlier parse stay in place but are not
// readable until Parse succeeds again.
func (p *Parser) SetJSON(src string) {
	p.src = src
	p.bound = true
	p.parsed = false
}

// JSON returns the bound source.
func (p *Parser) JSON() string {
	return p.src
}

func (p *Parser) Bound() bool {
	return p.bound
}

func (p *Parser) Parsed() bool {
	return p.parsed
}

func (p *Parser) MaxTokens() int {
	return len(p.tokens)
}

// Len returns the number of tokens of the last successful parse, or 0.
func (p *Parser) Len() int {
	if !p.parsed {
		return 0
	}
	return p.n
}

func (p *Parser) Scope() Scope {
	return p.scope
}

// Tokens returns the parsed tokens. The slice aliases the parser and is
// invalidated by the next Parse.
func (p *Parser) Tokens() []Token {
	if !p.parsed {
		return nil
	}
	return p.tokens[:p.n:p.n]
}

// Parse tokenizes the bound source, replacing every previous token.
//
// It returns the number of tokens written. On failure it returns one of the
// negative Code constants and a *ParseError, and the parser holds no tokens.
func (p *Parser) Parse() (int, error) {
	p.parsed = false
	p.n = 0

	if !p.bound {
		clear(p.tokens)
		return CodeInvalid, &ParseError{Code: CodeInvalid, Offset: -1, Err: ErrNotBound}
	}

	var engine Engine = &p.scanner
	if p.engine != nil {
		engine = p.engine
	}

	n, err := engine.Tokenize(p.src, p.tokens)
	if err != nil {
		clear(p.tokens)
		pe := newParseError(err)
		if p.logger != nil {
			p.logger.Debug("parse failed",
				"code", pe.Code,
				"offset", pe.Offset,
				"max_tokens", len(p.tokens),
				"error", pe.Err)
		}
		return pe.Code, pe
	}

	clear(p.tokens[n:])
	p.n = n
	p.parsed = true

	if p.logger != nil {
		p.logger.Debug("parsed", "tokens", n, "max_tokens", len(p.tokens), "bytes", len(p.src))
	}
	return n, nil
}

// Clone returns an independent parser with the same capacity, options,
// binding and tokens. The clone gets its own engine state.
func (p *Parser) Clone() *Parser {
	return p.CloneN(len(p.tokens))
}

// CloneN is Clone with a capacity of maxTokens. Parsed tokens are copied when
// they fit; otherwise the clone is bound but unparsed and needs its own Parse.
func (p *Parser) CloneN(maxTokens int) *Parser {
	if maxTokens < 0 {
		maxTokens = 0
	}

	c := &Parser{
		tokens:  make([]Token, maxTokens),
		src:     p.src,
		bound:   p.bound,
		scope:   p.scope,
		scanner: scan.Scanner{Strict: p.scanner.Strict},
		engine:  p.engine,
		logger:  p.logger,
	}
	if p.parsed && p.n <= maxTokens {
		c.n = copy(c.tokens, p.tokens[:p.n])
		c.parsed = true
	}

	if _, ok := p.engine.(*stream.Engine); ok {
		c.engine = stream.New()
	}
	return c
}

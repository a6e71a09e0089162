// Package stream tokenizes JSON with encoding/json and lays the result out in
// the same token layout as the scanner. It accepts only RFC 8259 documents
// and is used when a caller wants full validation before lookups.
package stream

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/jacoelho/jsmn/internal/stack"
	"github.com/jacoelho/jsmn/internal/token"
)

type frame struct {
	index   int // container token
	kind    token.Kind
	needKey bool
	key     int // key token of the value being read, objects only
}

// Engine is a validating tokenizer. It reuses its frame stack between calls,
// so an Engine must not be shared by concurrent parses.
type Engine struct {
	frames *stack.Stack[frame]
	next   int
}

func New() *Engine {
	return &Engine{frames: stack.New[frame](0)}
}

// Tokenize decodes src and writes its tokens, returning how many were written.
func (e *Engine) Tokenize(src string, tokens []token.Token) (int, error) {
	if e.frames == nil {
		e.frames = stack.New[frame](0)
	}
	e.frames.Reset(len(tokens))
	e.next = 0

	dec := json.NewDecoder(strings.NewReader(src))
	dec.UseNumber()

	for {
		start := skipSeparators(src, int(dec.InputOffset()))
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, syntaxError(err, start)
		}
		if e.next > 0 && e.frames.IsEmpty() {
			// a second top-level value
			return 0, &token.SyntaxError{Offset: start, Err: token.ErrInvalid}
		}

		end := int(dec.InputOffset())

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{', '[':
				if err := e.open(v, start, tokens); err != nil {
					return 0, &token.SyntaxError{Offset: start, Err: err}
				}
			default:
				e.close(end, tokens)
			}

		case string:
			top := e.frames.PeekRef()
			if top != nil && top.kind == token.Object && top.needKey {
				i, ok := e.alloc(tokens, token.String, start+1, end-1)
				if !ok {
					return 0, &token.SyntaxError{Offset: start, Err: token.ErrNoMemory}
				}
				tokens[top.index].Size++
				top.key = i
				top.needKey = false
				continue
			}
			if err := e.value(tokens, token.String, start+1, end-1); err != nil {
				return 0, &token.SyntaxError{Offset: start, Err: err}
			}

		default:
			if err := e.value(tokens, token.Primitive, start, end); err != nil {
				return 0, &token.SyntaxError{Offset: start, Err: err}
			}
		}
	}

	if top, ok := e.frames.Peek(); ok {
		return 0, &token.SyntaxError{Offset: tokens[top.index].Start, Err: token.ErrPartial}
	}

	return e.next, nil
}

func (e *Engine) alloc(tokens []token.Token, kind token.Kind, start, end int) (int, bool) {
	if e.next >= len(tokens) {
		return 0, false
	}
	i := e.next
	tokens[i] = token.Token{Kind: kind, Start: start, End: end}
	e.next++
	return i, true
}

// parent counts one more child on the token that owns the next value.
func (e *Engine) parent(tokens []token.Token) {
	top := e.frames.PeekRef()
	if top == nil {
		return
	}
	if top.kind == token.Object {
		tokens[top.key].Size++
		return
	}
	tokens[top.index].Size++
}

func (e *Engine) value(tokens []token.Token, kind token.Kind, start, end int) error {
	if _, ok := e.alloc(tokens, kind, start, end); !ok {
		return token.ErrNoMemory
	}
	e.parent(tokens)
	e.valueDone()
	return nil
}

func (e *Engine) open(d json.Delim, start int, tokens []token.Token) error {
	kind := token.Object
	if d == '[' {
		kind = token.Array
	}
	i, ok := e.alloc(tokens, kind, start, -1)
	if !ok {
		return token.ErrNoMemory
	}
	e.parent(tokens)
	if !e.frames.Push(frame{index: i, kind: kind, needKey: kind == token.Object}) {
		return token.ErrNoMemory
	}
	return nil
}

func (e *Engine) close(end int, tokens []token.Token) {
	top, ok := e.frames.Pop()
	if !ok {
		return
	}
	tokens[top.index].End = end
	e.valueDone()
}

func (e *Engine) valueDone() {
	top := e.frames.PeekRef()
	if top != nil && top.kind == token.Object {
		top.needKey = true
	}
}

func syntaxError(err error, off int) error {
	var se *json.SyntaxError
	switch {
	case errors.As(err, &se):
		return &token.SyntaxError{Offset: int(se.Offset), Err: token.ErrInvalid}
	case errors.Is(err, io.ErrUnexpectedEOF):
		return &token.SyntaxError{Offset: off, Err: token.ErrPartial}
	default:
		return &token.SyntaxError{Offset: off, Err: token.ErrInvalid}
	}
}

func skipSeparators(src string, off int) int {
	for off < len(src) {
		switch src[off] {
		case ' ', '\t', '\r', '\n', ',', ':':
			off++
		default:
			return off
		}
	}
	return off
}

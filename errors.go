package jsmn

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jacoelho/jsmn/internal/token"
)

// Parse failure codes, as returned by Parse.
const (
	CodeNoMemory = token.CodeNoMemory
	CodeInvalid  = token.CodeInvalid
	CodePartial  = token.CodePartial
)

var (
	// ErrNoMemory indicates the document needs more tokens than the parser holds.
	ErrNoMemory = token.ErrNoMemory

	// ErrInvalid indicates malformed JSON.
	ErrInvalid = token.ErrInvalid

	// ErrPartial indicates the document is truncated.
	ErrPartial = token.ErrPartial

	// ErrNotBound indicates Parse was called before a source was bound.
	ErrNotBound = errors.New("jsmn: no JSON bound")

	// ErrNotParsed indicates a lookup on a parser without a successful parse.
	ErrNotParsed = errors.New("jsmn: not parsed")

	// ErrKeyNotFound indicates the key does not resolve to a value.
	ErrKeyNotFound = errors.New("jsmn: key not found")

	// ErrKindMismatch indicates the value token has the wrong kind for the type.
	ErrKindMismatch = errors.New("jsmn: kind mismatch")

	// ErrInvalidValue indicates the value text does not convert to the type.
	ErrInvalidValue = errors.New("jsmn: invalid value")

	// ErrUnsupportedType indicates no decoding rule exists for the type.
	ErrUnsupportedType = errors.New("jsmn: unsupported type")
)

// ParseError describes a failed Parse.
type ParseError struct {
	Code   int // one of the Code constants
	Offset int // byte offset where tokenizing stopped, -1 when unknown
	Err    error
}

func (e *ParseError) Error() string {
	if e.Offset < 0 {
		return e.Err.Error()
	}
	return e.Err.Error() + " at offset " + strconv.Itoa(e.Offset)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(err error) *ParseError {
	pe := &ParseError{Code: token.Code(err), Offset: -1, Err: err}

	var se *token.SyntaxError
	if errors.As(err, &se) {
		pe.Offset = se.Offset
		pe.Err = se.Err
	}
	if pe.Code == CodeInvalid && !errors.Is(pe.Err, ErrInvalid) && !errors.Is(pe.Err, ErrNotBound) {
		// foreign engine error
		pe.Err = fmt.Errorf("%w: %w", ErrInvalid, pe.Err)
	}
	return pe
}

// Package token defines the token layout shared by the tokenizing engines and
// the accessor layer.
package token

import (
	"errors"
	"strconv"
)

// Error codes reported by a failed parse. They match the return values of the
// C jsmn tokenizer so callers that log the numeric code keep their meaning.
const (
	CodeNoMemory = -1
	CodeInvalid  = -2
	CodePartial  = -3
)

var (
	// ErrNoMemory indicates the document needs more tokens than the store holds.
	ErrNoMemory = errors.New("jsmn: not enough tokens")

	// ErrInvalid indicates an invalid character or structure in the document.
	ErrInvalid = errors.New("jsmn: invalid JSON")

	// ErrPartial indicates the document ended before it was complete.
	ErrPartial = errors.New("jsmn: incomplete JSON")
)

// Code returns the numeric code for an engine error, or 0 for nil.
// Unknown errors are reported as CodeInvalid.
func Code(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrNoMemory):
		return CodeNoMemory
	case errors.Is(err, ErrPartial):
		return CodePartial
	default:
		return CodeInvalid
	}
}

// Kind is the type tag of a token.
type Kind uint8

const (
	Undefined Kind = iota
	Object
	Array
	String
	Primitive
)

func (k Kind) String() string {
	switch k {
	case Object:
		return "object"
	case Array:
		return "array"
	case String:
		return "string"
	case Primitive:
		return "primitive"
	default:
		return "undefined"
	}
}

// Token is a typed span over the source document.
//
// Start and End are byte offsets, End exclusive. String tokens exclude the
// surrounding quotes. Engines use -1 for an offset that is not known yet.
// Size is the number of immediate children: members for an object, elements
// for an array and 1 for an object key followed by its value.
type Token struct {
	Kind  Kind
	Start int
	End   int
	Size  int
}

// Len returns the span length, or 0 for an unset span.
func (t Token) Len() int {
	if t.Start < 0 || t.End < t.Start {
		return 0
	}
	return t.End - t.Start
}

// Text returns the span of t inside src, or "" when the span does not fit.
func (t Token) Text(src string) string {
	if t.Start < 0 || t.End < t.Start || t.End > len(src) {
		return ""
	}
	return src[t.Start:t.End]
}

// Open reports whether the token was started but not closed yet.
func (t Token) Open() bool {
	return t.Start != -1 && t.End == -1
}

// SyntaxError reports the byte offset at which an engine gave up.
type SyntaxError struct {
	Offset int
	Err    error
}

func (e *SyntaxError) Error() string {
	return e.Err.Error() + " at offset " + strconv.Itoa(e.Offset)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

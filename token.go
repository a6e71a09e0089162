package jsmn

import "github.com/jacoelho/jsmn/internal/token"

// Token is a typed span over the source document.
type Token = token.Token

// Kind is the type tag of a Token.
type Kind = token.Kind

const (
	Undefined = token.Undefined
	Object    = token.Object
	Array     = token.Array
	String    = token.String
	Primitive = token.Primitive
)

// Engine tokenizes src into tokens and returns how many it wrote.
//
// Tokens are written in document order with the root at index 0. An object
// key is a String token of Size 1 and is immediately followed by its value.
// Failures are, or wrap, ErrNoMemory, ErrInvalid or ErrPartial.
type Engine interface {
	Tokenize(src string, tokens []Token) (int, error)
}

// Scope selects how keys are resolved.
type Scope uint8

const (
	// ScopeRoot matches only the direct members of the root object.
	ScopeRoot Scope = iota

	// ScopeFlat matches the first String token anywhere in the document,
	// including nested keys and string values.
	ScopeFlat
)

func (s Scope) String() string {
	if s == ScopeFlat {
		return "flat"
	}
	return "root"
}

// Package scan implements a jsmn-style JSON tokenizer that writes into a
// caller-provided token slice and never allocates on success.
//
// The scanner does not build values. It records, for every object, array,
// string and primitive, the byte span and the number of immediate children.
// The default mode is lenient, like jsmn built without strict checks.
// Primitives may be object keys and colons may be missing. Any printable run
// of ASCII is a primitive.
package scan

import "github.com/jacoelho/jsmn/internal/token"

// Scanner holds the cursor state of one tokenization.
// The zero value is a lenient scanner ready for use.
type Scanner struct {
	// Strict rejects inputs that only the lenient mode accepts.
	Strict bool

	pos   int // offset in the source
	next  int // next free token slot
	super int // parent token, -1 at top level
}

// Reset rewinds the cursor to the start of a new document.
func (s *Scanner) Reset() {
	s.pos = 0
	s.next = 0
	s.super = -1
}

// Pos returns the offset where the last tokenization stopped. After a failure
// it points at the start of the offending token.
func (s *Scanner) Pos() int {
	return s.pos
}

// Tokenize scans src into tokens and returns the number of tokens written.
// Scanning stops at the end of src or at the first NUL byte.
func (s *Scanner) Tokenize(src string, tokens []token.Token) (int, error) {
	s.Reset()

	for ; s.pos < len(src) && src[s.pos] != 0; s.pos++ {
		c := src[s.pos]
		switch c {
		case '{', '[':
			t := s.alloc(tokens)
			if t == nil {
				return s.fail(token.ErrNoMemory)
			}
			if s.super != -1 {
				parent := &tokens[s.super]
				if s.Strict && parent.Kind == token.Object {
					// an object key must be a string
					return s.fail(token.ErrInvalid)
				}
				parent.Size++
			}
			t.Kind = token.Object
			if c == '[' {
				t.Kind = token.Array
			}
			t.Start = s.pos
			s.super = s.next - 1

		case '}', ']':
			if err := s.close(c, tokens); err != nil {
				return s.fail(err)
			}

		case '"':
			if err := s.string(src, tokens); err != nil {
				return s.fail(err)
			}
			if s.super != -1 {
				tokens[s.super].Size++
			}

		case '\t', '\r', '\n', ' ':

		case ':':
			s.super = s.next - 1

		case ',':
			if s.super != -1 && !isContainer(tokens[s.super].Kind) {
				for i := s.next - 1; i >= 0; i-- {
					if isContainer(tokens[i].Kind) && tokens[i].Open() {
						s.super = i
						break
					}
				}
			}

		default:
			if s.Strict {
				if !startsPrimitive(c) {
					return s.fail(token.ErrInvalid)
				}
				if s.super != -1 {
					parent := tokens[s.super]
					if parent.Kind == token.Object || (parent.Kind == token.String && parent.Size != 0) {
						return s.fail(token.ErrInvalid)
					}
				}
			}
			if err := s.primitive(src, tokens); err != nil {
				return s.fail(err)
			}
			if s.super != -1 {
				tokens[s.super].Size++
			}
		}
	}

	for i := s.next - 1; i >= 0; i-- {
		if tokens[i].Open() {
			s.pos = tokens[i].Start
			return s.fail(token.ErrPartial)
		}
	}

	return s.next, nil
}

func (s *Scanner) fail(err error) (int, error) {
	return 0, &token.SyntaxError{Offset: s.pos, Err: err}
}

func (s *Scanner) alloc(tokens []token.Token) *token.Token {
	if s.next >= len(tokens) {
		return nil
	}
	t := &tokens[s.next]
	s.next++
	*t = token.Token{Start: -1, End: -1}
	return t
}

// close matches c against the innermost open container and makes the next
// enclosing open container the parent.
func (s *Scanner) close(c byte, tokens []token.Token) error {
	kind := token.Object
	if c == ']' {
		kind = token.Array
	}

	i := s.next - 1
	for ; i >= 0; i-- {
		t := &tokens[i]
		if t.Open() {
			if t.Kind != kind {
				return token.ErrInvalid
			}
			s.super = -1
			t.End = s.pos + 1
			break
		}
	}
	if i == -1 {
		// unmatched closing bracket
		return token.ErrInvalid
	}

	for ; i >= 0; i-- {
		if tokens[i].Open() {
			s.super = i
			break
		}
	}
	return nil
}

// string records the string starting at the opening quote under the cursor.
// On return the cursor sits on the closing quote.
func (s *Scanner) string(src string, tokens []token.Token) error {
	start := s.pos
	s.pos++

	for ; s.pos < len(src) && src[s.pos] != 0; s.pos++ {
		c := src[s.pos]

		if c == '"' {
			t := s.alloc(tokens)
			if t == nil {
				s.pos = start
				return token.ErrNoMemory
			}
			t.Kind = token.String
			t.Start = start + 1
			t.End = s.pos
			return nil
		}

		if c == '\\' && s.pos+1 < len(src) {
			s.pos++
			switch src[s.pos] {
			case '"', '/', '\\', 'b', 'f', 'r', 'n', 't':
			case 'u':
				s.pos++
				for i := 0; i < 4 && s.pos < len(src) && src[s.pos] != 0; i++ {
					if !isHex(src[s.pos]) {
						s.pos = start
						return token.ErrInvalid
					}
					s.pos++
				}
				s.pos--
			default:
				s.pos = start
				return token.ErrInvalid
			}
		}
	}

	s.pos = start
	return token.ErrPartial
}

// primitive records the number, literal or bare word under the cursor.
// On return the cursor sits on the last byte of the primitive.
func (s *Scanner) primitive(src string, tokens []token.Token) error {
	start := s.pos

	for ; s.pos < len(src) && src[s.pos] != 0; s.pos++ {
		c := src[s.pos]
		if s.ends(c) {
			break
		}
		if c < 32 || c >= 127 {
			s.pos = start
			return token.ErrInvalid
		}
	}

	if s.Strict && (s.pos >= len(src) || src[s.pos] == 0) {
		// a strict primitive must be followed by a delimiter
		s.pos = start
		return token.ErrPartial
	}

	t := s.alloc(tokens)
	if t == nil {
		s.pos = start
		return token.ErrNoMemory
	}
	t.Kind = token.Primitive
	t.Start = start
	t.End = s.pos
	s.pos--
	return nil
}

func (s *Scanner) ends(c byte) bool {
	switch c {
	case '\t', '\r', '\n', ' ', ',', ']', '}':
		return true
	case ':':
		return !s.Strict
	}
	return false
}

func isContainer(k token.Kind) bool {
	return k == token.Object || k == token.Array
}

func startsPrimitive(c byte) bool {
	return c == '-' || (c >= '0' && c <= '9') || c == 't' || c == 'f' || c == 'n'
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}

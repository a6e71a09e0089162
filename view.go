package jsmn

import (
	"encoding/json"
	"strings"
)

// StringView is the raw text of a String token, quotes excluded and escapes
// left in place. It aliases the parser's source.
type StringView struct {
	s     string
	valid bool
}

// String returns the raw text without copying.
func (v StringView) String() string {
	return v.s
}

func (v StringView) Len() int {
	return len(v.s)
}

// IsValid reports whether the view came from a resolved String token.
func (v StringView) IsValid() bool {
	return v.valid
}

// CopyTo copies the raw text into dst and returns the number of bytes copied.
func (v StringView) CopyTo(dst []byte) int {
	return copy(dst, v.s)
}

// Clone returns a copy of the raw text that does not retain the source.
func (v StringView) Clone() string {
	return strings.Clone(v.s)
}

// Unescape returns the decoded string value. It only allocates when the raw
// text contains an escape sequence.
func (v StringView) Unescape() (string, error) {
	return unescape(v.s)
}

func unescape(raw string) (string, error) {
	if strings.IndexByte(raw, '\\') < 0 {
		return raw, nil
	}

	var s string
	if err := json.Unmarshal([]byte(`"`+raw+`"`), &s); err != nil {
		return "", ErrInvalidValue
	}
	return s, nil
}

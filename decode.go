package jsmn

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
)

// Unmarshaler is implemented by types that decode themselves from a token.
// raw is the token text as it appears in the source, escapes included.
type Unmarshaler interface {
	UnmarshalToken(kind Kind, raw string) error
}

// Get returns the value of key converted to T, or the zero value of T when
// the parser is not parsed, the key is missing or the value does not convert.
//
// Numbers, booleans and StringView never allocate. A string allocates only
// when the value contains escapes. Types implementing Unmarshaler or
// encoding.TextUnmarshaler are supported at the cost of an allocation.
func Get[T any](p *Parser, key string) T {
	v, _ := lookup[T](p, key)
	return v
}

// Lookup is Get with the reason for a zero result. The error wraps one of
// ErrNotParsed, ErrKeyNotFound, ErrKindMismatch, ErrInvalidValue or
// ErrUnsupportedType.
func Lookup[T any](p *Parser, key string) (T, error) {
	v, err := lookup[T](p, key)
	switch {
	case err == nil, err == ErrNotParsed:
		return v, err
	case err == ErrUnsupportedType:
		return v, fmt.Errorf("%w: %v", ErrUnsupportedType, reflect.TypeFor[T]())
	case err == ErrKeyNotFound:
		return v, fmt.Errorf("%w: %q", err, key)
	default:
		return v, fmt.Errorf("%w: key %q", err, key)
	}
}

// lookup returns bare sentinels so that Get stays allocation free.
func lookup[T any](p *Parser, key string) (T, error) {
	var v T
	if !p.parsed {
		return v, ErrNotParsed
	}

	i, ok := p.resolve(key)
	if !ok {
		return v, ErrKeyNotFound
	}

	handled, err := decodeBuiltin(p.tokens[i], p.src, &v)
	if !handled {
		return decodeInto[T](p.tokens[i], p.src)
	}
	return v, err
}

// decodeInto applies the interface rules. Only these types pay for a heap
// destination.
func decodeInto[T any](t Token, src string) (T, error) {
	v := new(T)
	if err := decodeValue(t, src, v); err != nil {
		var zero T
		return zero, err
	}
	return *v, nil
}

// GetArray decodes the elements of the array at key into dst and returns the
// element count. It fails when dst is nil or shorter than the array. Elements
// that do not convert to T, nested containers included, are stored as zero.
func GetArray[T any](p *Parser, key string, dst []T) (int, bool) {
	if dst == nil {
		return 0, false
	}

	i, ok := p.resolve(key)
	if !ok {
		return 0, false
	}

	arr := p.tokens[i]
	if arr.Kind != Array || len(dst) < arr.Size {
		return 0, false
	}

	j := i + 1
	for k := range arr.Size {
		var v T
		if j < p.n {
			decodeBuiltin(p.tokens[j], p.src, &v)
			j = p.skip(j)
		}
		dst[k] = v
	}
	return arr.Size, true
}

// GetString copies the raw text of the string at key into dst. It fails,
// copying nothing, when the value is missing, empty or not a string, or when
// dst is nil or too short.
func (p *Parser) GetString(key string, dst []byte) (int, bool) {
	if dst == nil {
		return 0, false
	}

	v := Get[StringView](p, key)
	if !v.IsValid() || v.Len() == 0 || len(dst) < v.Len() {
		return 0, false
	}
	return v.CopyTo(dst), true
}

// Decode stores the value of key in the value pointed to by dst. Besides the
// types Get handles, dst may implement Unmarshaler or
// encoding.TextUnmarshaler.
func (p *Parser) Decode(key string, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: %T", ErrUnsupportedType, dst)
	}
	if !p.parsed {
		return ErrNotParsed
	}

	i, ok := p.resolve(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}

	if err := decodeValue(p.tokens[i], p.src, dst); err != nil {
		if err == ErrUnsupportedType {
			return fmt.Errorf("%w: %T", ErrUnsupportedType, dst)
		}
		return fmt.Errorf("%w: key %q", err, key)
	}
	return nil
}

func decodeValue(t Token, src string, dst any) error {
	switch d := dst.(type) {
	case Unmarshaler:
		if err := d.UnmarshalToken(t.Kind, t.Text(src)); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		return nil

	case encoding.TextUnmarshaler:
		if t.Kind != String {
			return ErrKindMismatch
		}
		s, err := unescape(t.Text(src))
		if err != nil {
			return err
		}
		if err := d.UnmarshalText([]byte(s)); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		return nil
	}

	if handled, err := decodeBuiltin(t, src, dst); handled {
		return err
	}
	return ErrUnsupportedType
}

// decodeBuiltin converts t into the value dst points to. It must not retain
// dst or call methods on it, so callers can pass stack variables.
func decodeBuiltin(t Token, src string, dst any) (bool, error) {
	switch d := dst.(type) {
	case *int:
		v, err := parseInt(t, src)
		*d = int(v)
		return true, err
	case *int8:
		v, err := parseInt(t, src)
		*d = int8(v)
		return true, err
	case *int16:
		v, err := parseInt(t, src)
		*d = int16(v)
		return true, err
	case *int32:
		v, err := parseInt(t, src)
		*d = int32(v)
		return true, err
	case *int64:
		v, err := parseInt(t, src)
		*d = v
		return true, err
	case *uint:
		v, err := parseUint(t, src)
		*d = uint(v)
		return true, err
	case *uint8:
		v, err := parseUint(t, src)
		*d = uint8(v)
		return true, err
	case *uint16:
		v, err := parseUint(t, src)
		*d = uint16(v)
		return true, err
	case *uint32:
		v, err := parseUint(t, src)
		*d = uint32(v)
		return true, err
	case *uint64:
		v, err := parseUint(t, src)
		*d = v
		return true, err
	case *uintptr:
		v, err := parseUint(t, src)
		*d = uintptr(v)
		return true, err
	case *float32:
		v, err := parseFloat(t, src, 32)
		*d = float32(v)
		return true, err
	case *float64:
		v, err := parseFloat(t, src, 64)
		*d = v
		return true, err
	case *bool:
		v, err := parseBool(t, src)
		*d = v
		return true, err
	case *StringView:
		if t.Kind != String {
			*d = StringView{}
			return true, ErrKindMismatch
		}
		*d = StringView{s: t.Text(src), valid: true}
		return true, nil
	case *string:
		if t.Kind != String {
			*d = ""
			return true, ErrKindMismatch
		}
		s, err := unescape(t.Text(src))
		*d = s
		return true, err
	}
	return false, nil
}

func parseInt(t Token, src string) (int64, error) {
	if t.Kind != Primitive {
		return 0, ErrKindMismatch
	}
	v, err := strconv.ParseInt(t.Text(src), 10, 64)
	if err != nil {
		return 0, ErrInvalidValue
	}
	return v, nil
}

func parseUint(t Token, src string) (uint64, error) {
	if t.Kind != Primitive {
		return 0, ErrKindMismatch
	}
	v, err := strconv.ParseUint(t.Text(src), 10, 64)
	if err != nil {
		return 0, ErrInvalidValue
	}
	return v, nil
}

func parseFloat(t Token, src string, bitSize int) (float64, error) {
	if t.Kind != Primitive {
		return 0, ErrKindMismatch
	}
	v, err := strconv.ParseFloat(t.Text(src), bitSize)
	if err != nil {
		return 0, ErrInvalidValue
	}
	return v, nil
}

func parseBool(t Token, src string) (bool, error) {
	if t.Kind != Primitive {
		return false, ErrKindMismatch
	}
	switch t.Text(src) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, ErrInvalidValue
}

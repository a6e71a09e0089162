// Package query describes which top-level members to pull out of a document
// and how to render them.
package query

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	yaml "github.com/goccy/go-yaml"
	"github.com/google/uuid"

	"github.com/jacoelho/jsmn"
)

var (
	// ErrQuery is returned when a query file cannot be decoded.
	ErrQuery = errors.New("query error")

	// ErrInvalidQuery is returned when a decoded query fails validation.
	ErrInvalidQuery = errors.New("invalid query")
)

// Type names the conversion applied to a member.
type Type string

const (
	TypeString  Type = "string"
	TypeInt     Type = "int"
	TypeUint    Type = "uint"
	TypeFloat   Type = "float"
	TypeBool    Type = "bool"
	TypeUUID    Type = "uuid"
	TypeRaw     Type = "raw"
	TypeInts    Type = "ints"
	TypeFloats  Type = "floats"
	TypeStrings Type = "strings"
)

var types = []Type{TypeString, TypeInt, TypeUint, TypeFloat, TypeBool, TypeUUID, TypeRaw, TypeInts, TypeFloats, TypeStrings}

// Types returns every supported type name.
func Types() []Type {
	return slices.Clone(types)
}

// Field selects one member.
type Field struct {
	Name string `yaml:"name,omitempty"` // column name, defaults to Key
	Key  string `yaml:"key"`
	Type Type   `yaml:"type,omitempty"` // defaults to string
}

// Query is the content of a query file.
type Query struct {
	MaxTokens int     `yaml:"max_tokens,omitempty"`
	Fields    []Field `yaml:"fields"`
}

// Parse decodes and validates a query file. Unknown YAML fields are rejected.
func Parse(r io.Reader) (*Query, error) {
	decoder := yaml.NewDecoder(r, yaml.DisallowUnknownField())

	var q Query
	if err := decoder.Decode(&q); err != nil {
		return nil, fmt.Errorf("%w: failed to decode YAML: %v", ErrQuery, err)
	}

	q.applyDefaults()
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return &q, nil
}

// FromArgs builds a query from command-line field arguments, see ParseField.
func FromArgs(args []string) (*Query, error) {
	q := &Query{Fields: make([]Field, 0, len(args))}
	for _, arg := range args {
		q.Fields = append(q.Fields, ParseField(arg))
	}

	q.applyDefaults()
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// ParseField parses KEY or KEY:TYPE. A suffix that is not a known type is
// part of the key, so keys containing colons need an explicit type.
func ParseField(arg string) Field {
	if i := strings.LastIndexByte(arg, ':'); i >= 0 {
		if t := Type(arg[i+1:]); slices.Contains(types, t) {
			return Field{Key: arg[:i], Type: t}
		}
	}
	return Field{Key: arg}
}

func (q *Query) applyDefaults() {
	for i := range q.Fields {
		f := &q.Fields[i]
		if f.Type == "" {
			f.Type = TypeString
		}
		if f.Name == "" {
			f.Name = f.Key
		}
	}
}

func (q *Query) Validate() error {
	if q.MaxTokens < 0 {
		return fmt.Errorf("%w: max_tokens must be >= 0, got: %d", ErrInvalidQuery, q.MaxTokens)
	}
	if len(q.Fields) == 0 {
		return fmt.Errorf("%w: no fields", ErrInvalidQuery)
	}

	seen := make(map[string]struct{}, len(q.Fields))
	for i, f := range q.Fields {
		if !slices.Contains(types, f.Type) {
			return fmt.Errorf("%w: field %d: unsupported type: %s", ErrInvalidQuery, i+1, f.Type)
		}
		if _, ok := seen[f.Name]; ok {
			return fmt.Errorf("%w: field %d: duplicate name: %s", ErrInvalidQuery, i+1, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

// Names returns the column names in field order.
func (q *Query) Names() []string {
	names := make([]string, len(q.Fields))
	for i, f := range q.Fields {
		names[i] = f.Name
	}
	return names
}

// Extract renders every field of a parsed document. A field that fails leaves
// an empty cell; the returned error joins all field failures.
func (q *Query) Extract(p *jsmn.Parser) ([]string, error) {
	row := make([]string, len(q.Fields))
	var errs []error
	for i, f := range q.Fields {
		v, err := f.Extract(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Name, err))
			continue
		}
		row[i] = v
	}
	return row, errors.Join(errs...)
}

// Extract renders the member selected by f.
func (f Field) Extract(p *jsmn.Parser) (string, error) {
	switch f.Type {
	case TypeString, "":
		return jsmn.Lookup[string](p, f.Key)
	case TypeInt:
		v, err := jsmn.Lookup[int64](p, f.Key)
		return strconv.FormatInt(v, 10), err
	case TypeUint:
		v, err := jsmn.Lookup[uint64](p, f.Key)
		return strconv.FormatUint(v, 10), err
	case TypeFloat:
		v, err := jsmn.Lookup[float64](p, f.Key)
		return strconv.FormatFloat(v, 'g', -1, 64), err
	case TypeBool:
		v, err := jsmn.Lookup[bool](p, f.Key)
		return strconv.FormatBool(v), err
	case TypeUUID:
		var u uuid.UUID
		if err := p.Decode(f.Key, &u); err != nil {
			return "", err
		}
		return u.String(), nil
	case TypeRaw:
		pair, ok := p.Find(f.Key)
		if !ok {
			return "", fmt.Errorf("%w: %q", jsmn.ErrKeyNotFound, f.Key)
		}
		return pair.Value.Text(p.JSON()), nil
	case TypeInts:
		return extractArray(p, f.Key, func(v int64) string { return strconv.FormatInt(v, 10) })
	case TypeFloats:
		return extractArray(p, f.Key, func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) })
	case TypeStrings:
		return extractArray(p, f.Key, func(v string) string { return v })
	}
	return "", fmt.Errorf("%w: %s", jsmn.ErrUnsupportedType, f.Type)
}

func extractArray[T any](p *jsmn.Parser, key string, format func(T) string) (string, error) {
	pair, ok := p.Find(key)
	if !ok {
		return "", fmt.Errorf("%w: %q", jsmn.ErrKeyNotFound, key)
	}
	if pair.Value.Kind != jsmn.Array {
		return "", fmt.Errorf("%w: key %q is %s, want array", jsmn.ErrKindMismatch, key, pair.Value.Kind)
	}

	values := make([]T, pair.Value.Size)
	n, _ := jsmn.GetArray(p, key, values)

	parts := make([]string, n)
	for i, v := range values[:n] {
		parts[i] = format(v)
	}
	return strings.Join(parts, ","), nil
}

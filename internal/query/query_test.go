package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacoelho/jsmn"
)

func TestParse(t *testing.T) {
	input := `max_tokens: 32
fields:
  - key: id
    type: uuid
  - name: amount
    key: total
    type: float
  - key: note
`
	q, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 32, q.MaxTokens)
	assert.Equal(t, []Field{
		{Name: "id", Key: "id", Type: TypeUUID},
		{Name: "amount", Key: "total", Type: TypeFloat},
		{Name: "note", Key: "note", Type: TypeString},
	}, q.Fields)
	assert.Equal(t, []string{"id", "amount", "note"}, q.Names())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		wantMsg string
	}{
		{name: "empty", input: "", wantErr: ErrQuery},
		{name: "unknown field", input: "fields:\n  - key: a\n    path: $.a\n", wantErr: ErrQuery},
		{name: "no fields", input: "max_tokens: 4\n", wantErr: ErrInvalidQuery, wantMsg: "no fields"},
		{name: "bad type", input: "fields:\n  - key: a\n    type: date\n", wantErr: ErrInvalidQuery, wantMsg: "unsupported type: date"},
		{name: "duplicate name", input: "fields:\n  - key: a\n  - key: b\n    name: a\n", wantErr: ErrInvalidQuery, wantMsg: "duplicate name: a"},
		{name: "negative max tokens", input: "max_tokens: -1\nfields:\n  - key: a\n", wantErr: ErrInvalidQuery, wantMsg: "max_tokens"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParseField(t *testing.T) {
	tests := []struct {
		arg  string
		want Field
	}{
		{arg: "id", want: Field{Key: "id"}},
		{arg: "id:int", want: Field{Key: "id", Type: TypeInt}},
		{arg: "tags:strings", want: Field{Key: "tags", Type: TypeStrings}},
		{arg: "time:12:30", want: Field{Key: "time:12:30"}},
		{arg: "a:b:bool", want: Field{Key: "a:b", Type: TypeBool}},
		{arg: ":int", want: Field{Key: "", Type: TypeInt}},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseField(tt.arg))
		})
	}
}

func TestFromArgs(t *testing.T) {
	q, err := FromArgs([]string{"a", "b:int"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, q.Names())
	assert.Equal(t, TypeString, q.Fields[0].Type)

	_, err = FromArgs(nil)
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = FromArgs([]string{"a", "a:int"})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestTypes(t *testing.T) {
	got := Types()
	assert.Len(t, got, 10)

	got[0] = "mutated"
	assert.Equal(t, TypeString, Types()[0])
}

func parsed(t *testing.T, src string) *jsmn.Parser {
	t.Helper()
	p := jsmn.New(64, jsmn.WithJSON(src))
	_, err := p.Parse()
	require.NoError(t, err)
	return p
}

func TestField_Extract(t *testing.T) {
	p := parsed(t, `{
		"s": "café",
		"i": -7,
		"u": 18446744073709551615,
		"f": 2.50,
		"b": false,
		"id": "0b5a3c1e-8a7d-4b3e-9f61-2c4d5e6f7a8b",
		"obj": {"x": [1, 2]},
		"ints": [3, 1, 2],
		"floats": [0.5, 1e2],
		"strs": ["a", "b\"c"],
		"empty": []
	}`)

	tests := []struct {
		field Field
		want  string
	}{
		{field: Field{Key: "s", Type: TypeString}, want: "café"},
		{field: Field{Key: "i", Type: TypeInt}, want: "-7"},
		{field: Field{Key: "u", Type: TypeUint}, want: "18446744073709551615"},
		{field: Field{Key: "f", Type: TypeFloat}, want: "2.5"},
		{field: Field{Key: "b", Type: TypeBool}, want: "false"},
		{field: Field{Key: "id", Type: TypeUUID}, want: "0b5a3c1e-8a7d-4b3e-9f61-2c4d5e6f7a8b"},
		{field: Field{Key: "obj", Type: TypeRaw}, want: `{"x": [1, 2]}`},
		{field: Field{Key: "s", Type: TypeRaw}, want: `café`},
		{field: Field{Key: "ints", Type: TypeInts}, want: "3,1,2"},
		{field: Field{Key: "floats", Type: TypeFloats}, want: "0.5,100"},
		{field: Field{Key: "strs", Type: TypeStrings}, want: `a,b"c`},
		{field: Field{Key: "empty", Type: TypeInts}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.field.Key+":"+string(tt.field.Type), func(t *testing.T) {
			got, err := tt.field.Extract(p)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestField_ExtractErrors(t *testing.T) {
	p := parsed(t, `{"s": "text", "n": 5, "id": "not-a-uuid"}`)

	tests := []struct {
		name    string
		field   Field
		wantErr error
	}{
		{name: "missing", field: Field{Key: "nope", Type: TypeString}, wantErr: jsmn.ErrKeyNotFound},
		{name: "missing raw", field: Field{Key: "nope", Type: TypeRaw}, wantErr: jsmn.ErrKeyNotFound},
		{name: "missing array", field: Field{Key: "nope", Type: TypeInts}, wantErr: jsmn.ErrKeyNotFound},
		{name: "string as int", field: Field{Key: "s", Type: TypeInt}, wantErr: jsmn.ErrKindMismatch},
		{name: "number as array", field: Field{Key: "n", Type: TypeInts}, wantErr: jsmn.ErrKindMismatch},
		{name: "bad uuid", field: Field{Key: "id", Type: TypeUUID}, wantErr: jsmn.ErrInvalidValue},
		{name: "unknown type", field: Field{Key: "s", Type: "date"}, wantErr: jsmn.ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.field.Extract(p)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestQuery_Extract(t *testing.T) {
	q, err := FromArgs([]string{"a:int", "b", "c:bool"})
	require.NoError(t, err)

	row, err := q.Extract(parsed(t, `{"a": 1, "c": true}`))
	assert.Equal(t, []string{"1", "", "true"}, row)
	require.Error(t, err)
	assert.ErrorIs(t, err, jsmn.ErrKeyNotFound)
	assert.Contains(t, err.Error(), "b: ")
}

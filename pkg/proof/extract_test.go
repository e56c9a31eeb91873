package proof

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestExtractionError_Message(t *testing.T) {
	err := FailedParam("id", errors.New("invalid syntax"))

	assert.Equal(t, `could not extract "id": invalid syntax`, err.Error())
	assert.Equal(t, "invalid syntax", err.Unwrap().Error())
}

func TestExtractionError_DefaultMapping(t *testing.T) {
	resp := FailedParam("body", errors.New("unexpected EOF")).Response()

	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Contains(t, string(resp.Body), `could not extract "body"`)
}

func TestExtractBody_Success(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	ctx := newFakeContext()
	ctx.reqBody = []byte(`{"name":"test"}`)

	value, err := ExtractBody[payload](ctx)

	assert.NoError(t, err)
	assert.Equal(t, "test", value.Name)
}

func TestExtractBody_Failure(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	ctx := newFakeContext()
	ctx.reqBody = []byte(`{invalid`)

	_, err := ExtractBody[payload](ctx)

	assert.Error(t, err)
}

func TestBuiltinParsers_Values(t *testing.T) {
	testCases := []struct {
		name     string
		parse    func() (any, error)
		expected any
	}{
		{"string", func() (any, error) { return ParseString("hello") }, "hello"},
		{"bool", func() (any, error) { return ParseBool("true") }, true},
		{"int", func() (any, error) { return ParseInt("-42") }, -42},
		{"int32", func() (any, error) { return ParseInt32("42") }, int32(42)},
		{"int64", func() (any, error) { return ParseInt64("9000000000") }, int64(9000000000)},
		{"uint", func() (any, error) { return ParseUint("7") }, uint(7)},
		{"uint32", func() (any, error) { return ParseUint32("7") }, uint32(7)},
		{"uint64", func() (any, error) { return ParseUint64("7") }, uint64(7)},
		{"float32", func() (any, error) { return ParseFloat32("1.5") }, float32(1.5)},
		{"float64", func() (any, error) { return ParseFloat64("2.25") }, 2.25},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			value, err := tc.parse()
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, value)
		})
	}
}

func TestBuiltinParsers_Failures(t *testing.T) {
	_, err := ParseInt("abc")
	assert.Error(t, err)

	_, err = ParseBool("maybe")
	assert.Error(t, err)

	_, err = ParseUint("-1")
	assert.Error(t, err)

	_, err = ParseUUID("not-a-uuid")
	assert.Error(t, err)
}

func TestParseUUID(t *testing.T) {
	id := uuid.New()

	parsed, err := ParseUUID(id.String())

	assert.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestGetBuiltinParser_Aliases(t *testing.T) {
	parser, ok := GetBuiltinParser("UUID")
	assert.True(t, ok)
	assert.Equal(t, "ParseUUID", parser.FunctionName)

	parser, ok = GetBuiltinParser("float")
	assert.True(t, ok)
	assert.Equal(t, "ParseFloat64", parser.FunctionName)

	_, ok = GetBuiltinParser("time.Time")
	assert.False(t, ok)
}

func TestIsBuiltinType(t *testing.T) {
	assert.True(t, IsBuiltinType("int"))
	assert.True(t, IsBuiltinType("uuid.UUID"))
	assert.True(t, IsBuiltinType("double"))
	assert.False(t, IsBuiltinType("chan int"))
}

func TestResolveTypeAlias(t *testing.T) {
	assert.Equal(t, "uuid.UUID", ResolveTypeAlias("UUID"))
	assert.Equal(t, "float64", ResolveTypeAlias("double"))
	assert.Equal(t, "int", ResolveTypeAlias("int"))
}

func TestAllBuiltinTypes(t *testing.T) {
	types := AllBuiltinTypes()

	assert.Contains(t, types, "int")
	assert.Contains(t, types, "uuid.UUID")
	assert.Contains(t, types, "UUID")
	assert.Len(t, types, len(BuiltinParsers)+len(ParserAliases))
}

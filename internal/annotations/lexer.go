package annotations

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// annotationLexer tokenizes the body of a proof annotation, everything
// after the 'proof::' prefix. The trailing Any rule keeps the lexer total
// so override expressions can carry arbitrary punctuation.
var annotationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Path", Pattern: `/[^\s]*`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?`},
	{Name: "Equals", Pattern: `=`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Any", Pattern: `.`},
})

// chunk is a maximal run of adjacent tokens with no whitespace between
// them, e.g. `-Status=BadRequest`, `uuid.UUID` or `/users/{id:int}`.
type chunk struct {
	text  string // raw source text of the run
	start int    // byte offset of the run within the body
	named bool   // run starts with a dash
}

// lexChunks tokenizes body and groups adjacent tokens into chunks. A
// quoted string is a single token, so quoted values keep their internal
// spaces.
func lexChunks(body string) ([]chunk, error) {
	lx, err := annotationLexer.Lex("", strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	tokens, err := lexer.ConsumeAll(lx)
	if err != nil {
		return nil, err
	}

	symbols := annotationLexer.Symbols()
	whitespace := symbols["Whitespace"]
	dash := symbols["Dash"]

	var chunks []chunk
	var current chunk
	open := false
	end := 0

	flush := func() {
		if open {
			current.text = body[current.start:end]
			chunks = append(chunks, current)
			open = false
		}
	}

	for _, tok := range tokens {
		if tok.EOF() || tok.Type == whitespace {
			flush()
			continue
		}
		if !open {
			open = true
			current = chunk{
				start: tok.Pos.Offset,
				named: tok.Type == dash,
			}
		}
		end = tok.Pos.Offset + len(tok.Value)
	}
	flush()

	return chunks, nil
}

// unquote strips surrounding double quotes and resolves escapes. Values
// that are not quoted come back unchanged.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if unquoted, err := strconv.Unquote(s); err == nil {
			return unquoted
		}
		return s[1 : len(s)-1]
	}
	return s
}

package lexer

import (
	"fmt"

	"minic/internal/source"
)

// TOKEN is the closed set of token kinds.
type TOKEN int

const (
	IGNORE_TOKEN     TOKEN = iota // whitespace and comments, the zero value
	UNKNOWN_TOKEN                 // text no rule accepts; never valid input
	OPERATOR_TOKEN                // see Operator
	KEYWORD_TOKEN                 // see Keyword
	TYPE_TOKEN                    // reserved for type names
	NUMBER_TOKEN                  // decimal int64 literal
	IDENTIFIER_TOKEN              // interned name in Token.Text
	STRING_TOKEN                  // un-escaped literal in Token.Text
)

var tokenNames = [...]string{
	IGNORE_TOKEN:     "IGNORE",
	UNKNOWN_TOKEN:    "UNKNOWN",
	OPERATOR_TOKEN:   "OPERATOR",
	KEYWORD_TOKEN:    "KEYWORD",
	TYPE_TOKEN:       "TYPE",
	NUMBER_TOKEN:     "NUMBER",
	IDENTIFIER_TOKEN: "IDENTIFIER",
	STRING_TOKEN:     "STRING",
}

func (k TOKEN) String() string {
	if k < 0 || int(k) >= len(tokenNames) {
		return fmt.Sprintf("TOKEN(%d)", int(k))
	}
	return tokenNames[k]
}

// Operator is the closed set of operators and punctuation.
type Operator int

const (
	NO_OPERATOR Operator = iota
	ASSIGN
	EQ
	NE
	ADD
	SUBTRACT
	ASTERISK // multiplication and pointers
	DIVIDE
	POWER
	OPEN_PAREN
	CLOSE_PAREN
	OPEN_BRACKET // {
	CLOSE_BRACKET
	OPEN_BRACE // [
	CLOSE_BRACE
	RETURN_ARROW // ->
	END_LINE
)

var operatorNames = [...]string{
	NO_OPERATOR:   "None",
	ASSIGN:        "Assign",
	EQ:            "Eq",
	NE:            "Ne",
	ADD:           "Add",
	SUBTRACT:      "Subtract",
	ASTERISK:      "Asterisk",
	DIVIDE:        "Divide",
	POWER:         "Power",
	OPEN_PAREN:    "OpenParen",
	CLOSE_PAREN:   "CloseParen",
	OPEN_BRACKET:  "OpenBracket",
	CLOSE_BRACKET: "CloseBracket",
	OPEN_BRACE:    "OpenBrace",
	CLOSE_BRACE:   "CloseBrace",
	RETURN_ARROW:  "Return",
	END_LINE:      "EndLine",
}

func (o Operator) String() string {
	if o < 0 || int(o) >= len(operatorNames) {
		return fmt.Sprintf("Operator(%d)", int(o))
	}
	return operatorNames[o]
}

// Keyword is the closed set of reserved words.
type Keyword int

const (
	NO_KEYWORD Keyword = iota
	DEFINE             // let
	MUTABLE            // mut
	FUNCTION           // func
	IF
	ELSE
	WHILE
	PUBLICITY // public, private, interface
	NULL      // null, nullptr
	RETURN
)

var keywordNames = [...]string{
	NO_KEYWORD: "None",
	DEFINE:     "Define",
	MUTABLE:    "Mutable",
	FUNCTION:   "Function",
	IF:         "If",
	ELSE:       "Else",
	WHILE:      "While",
	PUBLICITY:  "Publicity",
	NULL:       "Null",
	RETURN:     "Return",
}

func (k Keyword) String() string {
	if k < 0 || int(k) >= len(keywordNames) {
		return fmt.Sprintf("Keyword(%d)", int(k))
	}
	return keywordNames[k]
}

// Token is a classified lexeme. Value is the exact source slice; the payload
// fields are meaningful only for the Kind that owns them.
type Token struct {
	Kind     TOKEN
	Value    string
	Operator Operator
	Keyword  Keyword
	Number   int64
	Text     string
	Start    source.Position
	End      source.Position
}

// Loc returns the span covered by the token
func (t Token) Loc() *source.Location {
	return source.NewLocation(t.Start, t.End)
}

// Payload renders the variant payload, e.g. "Define" or "5" or `"hi"`
func (t Token) Payload() string {
	switch t.Kind {
	case OPERATOR_TOKEN:
		return t.Operator.String()
	case KEYWORD_TOKEN:
		return t.Keyword.String()
	case NUMBER_TOKEN:
		return fmt.Sprintf("%d", t.Number)
	case IDENTIFIER_TOKEN, STRING_TOKEN:
		return fmt.Sprintf("%q", t.Text)
	default:
		return ""
	}
}

func (t Token) String() string {
	if p := t.Payload(); p != "" {
		return fmt.Sprintf("%s(%s)", t.Kind, p)
	}
	return t.Kind.String()
}

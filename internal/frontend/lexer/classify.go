package lexer

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

var escapes = map[byte]byte{
	'"':  '"',
	'\\': '\\',
	'\'': '\'',
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'0':  0,
}

// classify turns a matched lexeme into a typed token. Positions are left to
// the caller. A non-nil error carries only Kind and Text.
func classify(id RuleID, text string) (Token, *ParsingError) {
	tok := Token{Value: text}

	switch id {
	case WHITESPACE_RULE, COMMENT_RULE:
		tok.Kind = IGNORE_TOKEN

	case KEYWORD_RULE:
		tok.Kind = KEYWORD_TOKEN
		tok.Keyword = keywords[text]

	case IDENTIFIER_RULE:
		tok.Kind = IDENTIFIER_TOKEN
		tok.Text = text

	case NUMBER_RULE:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return unknown(text), &ParsingError{Kind: NUMERIC_OVERFLOW, Text: text}
			}
			return unknown(text), &ParsingError{Kind: UNKNOWN_LEXEME, Text: text}
		}
		tok.Kind = NUMBER_TOKEN
		tok.Number = n

	case STRING_RULE:
		s, bad, ok := unescape(text[1 : len(text)-1])
		if !ok {
			return unknown(text), &ParsingError{Kind: INVALID_ESCAPE, Text: bad}
		}
		tok.Kind = STRING_TOKEN
		tok.Text = s

	case OPERATOR_RULE, PUNCTUATION_RULE:
		op, ok := LookupOperator(text)
		if !ok {
			return unknown(text), &ParsingError{Kind: UNKNOWN_LEXEME, Text: text}
		}
		tok.Kind = OPERATOR_TOKEN
		tok.Operator = op

	default:
		return unknown(text), &ParsingError{Kind: UNKNOWN_LEXEME, Text: text}
	}

	return tok, nil
}

func unknown(text string) Token {
	return Token{Kind: UNKNOWN_TOKEN, Value: text}
}

// unescape resolves backslash escapes. On an unrecognised escape it returns
// the offending sequence and ok=false.
func unescape(body string) (s string, bad string, ok bool) {
	if !strings.ContainsRune(body, '\\') {
		return body, "", true
	}

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(body) {
			return "", `\`, false
		}
		resolved, known := escapes[body[i+1]]
		if !known {
			seq := body[i:]
			_, size := utf8.DecodeRuneInString(seq[1:])
			return "", seq[:1+size], false
		}
		b.WriteByte(resolved)
		i++
	}
	return b.String(), "", true
}

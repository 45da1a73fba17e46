package lexer

import (
	"bytes"
	"unicode"
	"unicode/utf8"
)

// RuleID names a lexical rule
type RuleID int

const (
	WHITESPACE_RULE RuleID = iota
	COMMENT_RULE
	KEYWORD_RULE
	IDENTIFIER_RULE
	NUMBER_RULE
	STRING_RULE
	OPERATOR_RULE
	PUNCTUATION_RULE
)

// noFault marks a match that produced a well-formed lexeme
const noFault ErrorKind = -1

// matchFunc reports how many bytes at the start of rest form the rule's
// lexeme, 0 for no match. A fault other than noFault means the rule saw the
// opening of its lexeme but the lexeme never closes; n then spans the
// malformed text.
type matchFunc func(rest []byte) (n int, fault ErrorKind)

// Rule is one entry of the Rule Table
type Rule struct {
	ID    RuleID
	Name  string
	Match matchFunc
}

// RuleTable is ordered by precedence: on equal match length the earlier rule wins.
type RuleTable []Rule

// Rules is the process-wide Rule Table
var Rules = RuleTable{
	{ID: WHITESPACE_RULE, Name: "whitespace", Match: matchWhitespace},
	{ID: COMMENT_RULE, Name: "comment", Match: matchComment},
	{ID: KEYWORD_RULE, Name: "keyword", Match: matchKeyword},
	{ID: IDENTIFIER_RULE, Name: "identifier", Match: matchIdentifier},
	{ID: NUMBER_RULE, Name: "number", Match: matchNumber},
	{ID: STRING_RULE, Name: "string", Match: matchString},
	{ID: OPERATOR_RULE, Name: "operator", Match: matchOperator},
	{ID: PUNCTUATION_RULE, Name: "punctuation", Match: matchPunctuation},
}

// Longest evaluates every rule at the start of rest and returns the one with
// the longest match, the earliest on ties. A faulting rule is returned as soon
// as it is seen. rule is nil when nothing matches.
func (t RuleTable) Longest(rest []byte) (rule *Rule, n int, fault ErrorKind) {
	for i := range t {
		m, f := t[i].Match(rest)
		if f != noFault {
			return &t[i], m, f
		}
		if m > n {
			rule, n = &t[i], m
		}
	}
	return rule, n, noFault
}

// segments reports whether rest[:n] splits left to right into lexemes the
// table accepts. The last lexeme may extend past n.
func (t RuleTable) segments(rest []byte, n int) bool {
	for p := 0; p < n; {
		rule, m, fault := t.Longest(rest[p:])
		if fault != noFault {
			return true
		}
		if rule == nil {
			return false
		}
		p += m
	}
	return true
}

func matchWhitespace(rest []byte) (int, ErrorKind) {
	n := 0
	for n < len(rest) {
		r, size := utf8.DecodeRune(rest[n:])
		if !unicode.IsSpace(r) {
			break
		}
		n += size
	}
	return n, noFault
}

var (
	lineComment  = []byte("//")
	blockComment = []byte("/*")
	blockEnd     = []byte("*/")
)

func matchComment(rest []byte) (int, ErrorKind) {
	switch {
	case bytes.HasPrefix(rest, lineComment):
		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			return i, noFault
		}
		return len(rest), noFault
	case bytes.HasPrefix(rest, blockComment):
		if i := bytes.Index(rest[2:], blockEnd); i >= 0 {
			return i + 4, noFault
		}
		return len(rest), UNTERMINATED_COMMENT
	}
	return 0, noFault
}

func matchKeyword(rest []byte) (int, ErrorKind) {
	for _, spelling := range keywordSpellings {
		if bytes.HasPrefix(rest, []byte(spelling)) {
			return len(spelling), noFault
		}
	}
	return 0, noFault
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func matchIdentifier(rest []byte) (int, ErrorKind) {
	r, size := utf8.DecodeRune(rest)
	if size == 0 || !isIdentStart(r) {
		return 0, noFault
	}
	n := size
	for n < len(rest) {
		r, size = utf8.DecodeRune(rest[n:])
		if !isIdentPart(r) {
			break
		}
		n += size
	}
	return n, noFault
}

func matchNumber(rest []byte) (int, ErrorKind) {
	n := 0
	for n < len(rest) && rest[n] >= '0' && rest[n] <= '9' {
		n++
	}
	return n, noFault
}

func matchString(rest []byte) (int, ErrorKind) {
	if len(rest) == 0 || rest[0] != '"' {
		return 0, noFault
	}
	for i := 1; i < len(rest); i++ {
		switch rest[i] {
		case '\\':
			i++ // the escaped byte never closes the literal
		case '"':
			return i + 1, noFault
		}
	}
	return len(rest), UNTERMINATED_STRING
}

func matchOperator(rest []byte) (int, ErrorKind) {
	for _, spelling := range operatorSpellings {
		if bytes.HasPrefix(rest, []byte(spelling)) {
			return len(spelling), noFault
		}
	}
	return 0, noFault
}

func matchPunctuation(rest []byte) (int, ErrorKind) {
	if len(rest) > 0 {
		if _, ok := punctuation[rest[0]]; ok {
			return 1, noFault
		}
	}
	return 0, noFault
}

// isSymbol reports runes that can only begin an operator or garbage
func isSymbol(r rune) bool {
	if r == '"' || r < utf8.RuneSelf && punctuation[byte(r)] != NO_OPERATOR {
		return false
	}
	return !unicode.IsSpace(r) && !isIdentPart(r)
}

// symbolRun is the byte length of the run of symbol runes at the start of rest
func symbolRun(rest []byte) int {
	n := 0
	for n < len(rest) {
		r, size := utf8.DecodeRune(rest[n:])
		if !isSymbol(r) {
			break
		}
		n += size
	}
	return n
}

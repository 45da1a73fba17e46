package lexer

import (
	"fmt"
	"strings"

	"minic/internal/source"
)

// ErrorKind classifies a ParsingError
type ErrorKind int

const (
	INVALID_OPERATOR ErrorKind = iota
	INVALID_KEYWORD
	UNKNOWN_LEXEME
	NUMERIC_OVERFLOW
	UNTERMINATED_STRING
	UNTERMINATED_COMMENT
	INVALID_ESCAPE
	DECODE_ERROR
	EMPTY_FILE
	IO_ERROR
)

var errorKindNames = [...]string{
	INVALID_OPERATOR:     "invalid operator",
	INVALID_KEYWORD:      "invalid keyword",
	UNKNOWN_LEXEME:       "unknown token",
	NUMERIC_OVERFLOW:     "numeric literal out of range",
	UNTERMINATED_STRING:  "unterminated string literal",
	UNTERMINATED_COMMENT: "unterminated block comment",
	INVALID_ESCAPE:       "invalid escape sequence",
	DECODE_ERROR:         "source is not valid UTF-8",
	EMPTY_FILE:           "empty file",
	IO_ERROR:             "cannot read source",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(errorKindNames) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return errorKindNames[k]
}

// Sentinels for errors.Is. Any *ParsingError of the same kind matches.
var (
	ErrInvalidOperator     = &ParsingError{Kind: INVALID_OPERATOR}
	ErrInvalidKeyword      = &ParsingError{Kind: INVALID_KEYWORD}
	ErrUnknownToken        = &ParsingError{Kind: UNKNOWN_LEXEME}
	ErrNumericOverflow     = &ParsingError{Kind: NUMERIC_OVERFLOW}
	ErrUnterminatedString  = &ParsingError{Kind: UNTERMINATED_STRING}
	ErrUnterminatedComment = &ParsingError{Kind: UNTERMINATED_COMMENT}
	ErrInvalidEscape       = &ParsingError{Kind: INVALID_ESCAPE}
	ErrDecode              = &ParsingError{Kind: DECODE_ERROR}
	ErrEmptyFile           = &ParsingError{Kind: EMPTY_FILE}
	ErrIO                  = &ParsingError{Kind: IO_ERROR}
)

// Mistake describes a near-miss: what was written and what was probably meant.
type Mistake struct {
	Written         string
	Potential       string
	OtherPotentials []string // best first
	Distance        int
}

// ParsingError is a lexing failure with enough context to render a one-line message.
type ParsingError struct {
	Kind    ErrorKind
	Text    string // offending source text
	Mistake *Mistake
	Start   source.Position
	End     source.Position
	Err     error // underlying cause for IO_ERROR
}

func (e *ParsingError) Error() string {
	var b strings.Builder
	if e.Start.IsValid() {
		fmt.Fprintf(&b, "%s: ", e.Start)
	}
	b.WriteString(e.Kind.String())

	switch {
	case e.Mistake != nil:
		fmt.Fprintf(&b, " %q, did you mean %q?", e.Mistake.Written, e.Mistake.Potential)
		if len(e.Mistake.OtherPotentials) > 0 {
			fmt.Fprintf(&b, " (also: %s)", quoteAll(e.Mistake.OtherPotentials))
		}
	case e.Text != "":
		fmt.Fprintf(&b, " %q", e.Text)
	}

	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ParsingError) Unwrap() error {
	return e.Err
}

// Is matches sentinels by kind
func (e *ParsingError) Is(target error) bool {
	t, ok := target.(*ParsingError)
	return ok && t.Kind == e.Kind
}

// Loc returns the offending span
func (e *ParsingError) Loc() *source.Location {
	return source.NewLocation(e.Start, e.End)
}

func quoteAll(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = fmt.Sprintf("%q", w)
	}
	return strings.Join(quoted, ", ")
}

// ErrorList is every error of a lenient run, in source order.
type ErrorList []*ParsingError

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	lines := make([]string, len(l))
	for i, err := range l {
		lines[i] = err.Error()
	}
	return fmt.Sprintf("%d errors:\n%s", len(l), strings.Join(lines, "\n"))
}

func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, err := range l {
		errs[i] = err
	}
	return errs
}

// Err returns nil for an empty list so callers can compare against nil.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

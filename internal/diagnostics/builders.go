package diagnostics

import (
	"fmt"
	"strings"

	"minic/internal/source"
)

// Diagnostic builders for the lexer

// InvalidKeyword creates a diagnostic for a misspelt keyword
func InvalidKeyword(filepath string, loc *source.Location, written, potential string, others []string) *Diagnostic {
	return nearMiss(NewError("invalid keyword `"+written+"`").WithCode(ErrInvalidKeyword),
		filepath, loc, "not a keyword", potential, others)
}

// InvalidOperator creates a diagnostic for an operator that does not exist
func InvalidOperator(filepath string, loc *source.Location, written, potential string, others []string) *Diagnostic {
	return nearMiss(NewError("invalid operator `"+written+"`").WithCode(ErrInvalidOperator),
		filepath, loc, "not an operator", potential, others)
}

func nearMiss(d *Diagnostic, filepath string, loc *source.Location, label, potential string, others []string) *Diagnostic {
	d.WithPrimaryLabel(filepath, loc, label).
		WithHelp(fmt.Sprintf("did you mean `%s`?", potential))
	if len(others) > 0 {
		d.WithNote("similar: " + backquoteAll(others))
	}
	return d
}

// UnknownToken creates a diagnostic for text that resembles nothing in the language
func UnknownToken(filepath string, loc *source.Location, text string) *Diagnostic {
	return NewError("unknown token `"+text+"`").
		WithCode(ErrUnknownToken).
		WithPrimaryLabel(filepath, loc, "unrecognized").
		WithHelp("remove this text or check if it's a typo")
}

// NumericOverflow creates a diagnostic for an integer literal that does not fit 64 bits
func NumericOverflow(filepath string, loc *source.Location, literal string) *Diagnostic {
	return NewError("integer literal out of range").
		WithCode(ErrNumericOverflow).
		WithPrimaryLabel(filepath, loc, "does not fit in a 64-bit signed integer").
		WithNote(fmt.Sprintf("`%s` has %d digits; the largest value is 9223372036854775807", literal, len(literal)))
}

// UnterminatedString creates a diagnostic for an unterminated string literal
func UnterminatedString(filepath string, loc *source.Location) *Diagnostic {
	d := NewError("unterminated string literal").
		WithCode(ErrUnterminatedString).
		WithPrimaryLabel(filepath, startOnly(loc), "string starts here").
		WithHelp("add a closing quote (\") to terminate the string")
	return withEndOfInput(d, filepath, loc, "input ends before the closing quote")
}

// UnterminatedComment creates a diagnostic for a block comment without */
func UnterminatedComment(filepath string, loc *source.Location) *Diagnostic {
	d := NewError("unterminated block comment").
		WithCode(ErrUnterminatedComment).
		WithPrimaryLabel(filepath, startOnly(loc), "comment starts here").
		WithHelp("add */ to close the comment")
	return withEndOfInput(d, filepath, loc, "input ends before */")
}

// withEndOfInput marks where an unterminated span ran out of input
func withEndOfInput(d *Diagnostic, filepath string, loc *source.Location, message string) *Diagnostic {
	if loc == nil || loc.End == nil || loc.Start == nil || loc.End.Offset <= loc.Start.Offset {
		return d
	}
	return d.WithSecondaryLabel(filepath, &source.Location{Start: loc.End}, message)
}

// InvalidEscapeSequence creates a diagnostic for an invalid escape sequence
func InvalidEscapeSequence(filepath string, loc *source.Location, sequence string) *Diagnostic {
	return NewError("invalid escape sequence `"+sequence+"`").
		WithCode(ErrInvalidEscape).
		WithPrimaryLabel(filepath, loc, "unknown escape sequence in this string").
		WithNote("valid escape sequences are: \\n, \\t, \\r, \\0, \\\\, \\\", \\'").
		WithHelp("use a valid escape sequence or remove the backslash")
}

// InvalidEncoding creates a diagnostic for bytes that are not UTF-8
func InvalidEncoding(filepath string, loc *source.Location) *Diagnostic {
	return NewError("source is not valid UTF-8").
		WithCode(ErrInvalidEncoding).
		WithPrimaryLabel(filepath, loc, "invalid byte").
		WithHelp("re-save the file as UTF-8")
}

// EmptyFile creates a diagnostic for a file with nothing to lex
func EmptyFile(filepath string) *Diagnostic {
	d := NewError("empty file").WithCode(ErrEmptyFile)
	d.FilePath = filepath
	return d.WithNote("the file contains only whitespace")
}

// ReadFailure creates a diagnostic for a source that could not be read
func ReadFailure(filepath string, err error) *Diagnostic {
	d := NewError("cannot read source file").WithCode(ErrReadFailure)
	d.FilePath = filepath
	return d.WithNote(err.Error())
}

func startOnly(loc *source.Location) *source.Location {
	if loc == nil || loc.Start == nil {
		return loc
	}
	return &source.Location{Start: loc.Start, End: nil}
}

func backquoteAll(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = "`" + w + "`"
	}
	return strings.Join(quoted, ", ")
}
